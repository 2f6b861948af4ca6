package handler

import (
	"github.com/gofiber/fiber/v2"

	"kabar/internal/domain"
	"kabar/internal/service"
)

type Handlers struct {
	Auth    *AuthHandler
	Captcha *CaptchaHandler
	Comment *CommentHandler
	Post    *PostHandler
	User    *UserHandler
	Role    *RoleHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Auth:    NewAuthHandler(services.Auth),
		Captcha: NewCaptchaHandler(services.Captcha),
		Comment: NewCommentHandler(services.Comment, services.Authz),
		Post:    NewPostHandler(services.Post),
		User:    NewUserHandler(services.User),
		Role:    NewRoleHandler(services.Role),
	}
}

func getPaginationParams(c *fiber.Ctx) domain.PaginationParams {
	params := domain.DefaultPagination()

	if page := c.QueryInt("page", 1); page > 0 {
		params.Page = page
	}
	if limit := c.QueryInt("limit", 0); limit > 0 {
		params.PageSize = limit
	} else if pageSize := c.QueryInt("page_size", 0); pageSize > 0 {
		params.PageSize = pageSize
	}

	params.Validate()
	return params
}
