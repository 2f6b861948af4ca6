package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"kabar/internal/domain"
	"kabar/internal/middleware"
	"kabar/internal/service/authz"
	"kabar/internal/service/comment"
)

type CommentHandler struct {
	commentService comment.Service
	gate           authz.Service
}

func NewCommentHandler(commentService comment.Service, gate authz.Service) *CommentHandler {
	return &CommentHandler{commentService: commentService, gate: gate}
}

// ListByPost serves the public threaded view. Anonymous callers always get the
// approved-only tree; a caller holding can_moderate may request ?status= to
// switch to a flat paginated listing across statuses for this post.
func (h *CommentHandler) ListByPost(c *fiber.Ctx) error {
	postID, err := uuid.Parse(c.Params("postId"))
	if err != nil {
		return middleware.BadRequest("Invalid post ID")
	}

	statusParam := c.Query("status")
	principal := middleware.GetCurrentUser(c)

	if statusParam != "" && h.gate.Authorize(principal, domain.PrivilegeModerate) == nil {
		filter := domain.CommentFilter{PostID: &postID}
		if statusParam != "all" {
			status := domain.CommentStatus(statusParam)
			filter.Status = &status
		}

		result, err := h.commentService.ListForModeration(c.Context(), filter, getPaginationParams(c))
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusOK).JSON(result)
	}

	forest, err := h.commentService.GetTree(c.Context(), postID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": forest})
}

func (h *CommentHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateCommentInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	created, err := h.commentService.Create(
		c.Context(),
		input,
		middleware.GetCurrentUser(c),
		middleware.GetClientInfo(c),
	)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *CommentHandler) Reply(c *fiber.Ctx) error {
	parentID, err := uuid.Parse(c.Params("commentId"))
	if err != nil {
		return middleware.BadRequest("Invalid comment ID")
	}

	var input domain.ReplyCommentInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	created, err := h.commentService.Reply(
		c.Context(),
		parentID,
		input,
		middleware.GetCurrentUser(c),
		middleware.GetClientInfo(c),
	)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *CommentHandler) AdminList(c *fiber.Ctx) error {
	filter := domain.CommentFilter{
		Search:    c.Query("search"),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
	}
	if statusParam := c.Query("status"); statusParam != "" && statusParam != "all" {
		status := domain.CommentStatus(statusParam)
		filter.Status = &status
	}

	result, err := h.commentService.ListForModeration(c.Context(), filter, getPaginationParams(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *CommentHandler) UpdateStatus(c *fiber.Ctx) error {
	commentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid comment ID")
	}

	var input domain.UpdateCommentStatusInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	updated, err := h.commentService.SetStatus(c.Context(), commentID, input.Status, middleware.GetCurrentUser(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(updated)
}

func (h *CommentHandler) Delete(c *fiber.Ctx) error {
	commentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid comment ID")
	}

	if err := h.commentService.Delete(c.Context(), commentID); err != nil {
		return err
	}

	return c.Status(fiber.StatusNoContent).SendString("")
}

func (h *CommentHandler) BulkAction(c *fiber.Ctx) error {
	var input domain.BulkCommentActionInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	summary, err := h.commentService.BulkAction(c.Context(), input, middleware.GetCurrentUser(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(summary)
}

func (h *CommentHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.commentService.Stats(c.Context())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(stats)
}
