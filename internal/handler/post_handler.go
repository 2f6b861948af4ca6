package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"kabar/internal/domain"
	"kabar/internal/middleware"
	"kabar/internal/service/post"
)

type PostHandler struct {
	postService post.Service
}

func NewPostHandler(postService post.Service) *PostHandler {
	return &PostHandler{postService: postService}
}

func (h *PostHandler) Create(c *fiber.Ctx) error {
	var input domain.CreatePostInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	created, err := h.postService.Create(c.Context(), input, middleware.GetCurrentUser(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *PostHandler) Get(c *fiber.Ctx) error {
	postID, err := uuid.Parse(c.Params("postId"))
	if err != nil {
		return middleware.BadRequest("Invalid post ID")
	}

	// Publishers see drafts too; visitors only see published posts.
	includeDrafts := middleware.GetCurrentUser(c).HasPrivilege(domain.PrivilegePublish)

	found, err := h.postService.Get(c.Context(), postID, includeDrafts)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(found)
}

func (h *PostHandler) List(c *fiber.Ctx) error {
	result, err := h.postService.ListPublished(c.Context(), getPaginationParams(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *PostHandler) Update(c *fiber.Ctx) error {
	postID, err := uuid.Parse(c.Params("postId"))
	if err != nil {
		return middleware.BadRequest("Invalid post ID")
	}

	var input domain.UpdatePostInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	updated, err := h.postService.Update(c.Context(), postID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(updated)
}

func (h *PostHandler) Delete(c *fiber.Ctx) error {
	postID, err := uuid.Parse(c.Params("postId"))
	if err != nil {
		return middleware.BadRequest("Invalid post ID")
	}

	if err := h.postService.Delete(c.Context(), postID); err != nil {
		return err
	}

	return c.Status(fiber.StatusNoContent).SendString("")
}
