package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"kabar/internal/domain"
	"kabar/internal/middleware"
	"kabar/internal/service/role"
)

type RoleHandler struct {
	roleService role.Service
}

func NewRoleHandler(roleService role.Service) *RoleHandler {
	return &RoleHandler{roleService: roleService}
}

func (h *RoleHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateRoleInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	created, err := h.roleService.Create(c.Context(), input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *RoleHandler) Get(c *fiber.Ctx) error {
	roleID, err := uuid.Parse(c.Params("roleId"))
	if err != nil {
		return middleware.BadRequest("Invalid role ID")
	}

	found, err := h.roleService.Get(c.Context(), roleID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(found)
}

func (h *RoleHandler) List(c *fiber.Ctx) error {
	roles, err := h.roleService.List(c.Context())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": roles})
}

func (h *RoleHandler) Update(c *fiber.Ctx) error {
	roleID, err := uuid.Parse(c.Params("roleId"))
	if err != nil {
		return middleware.BadRequest("Invalid role ID")
	}

	var input domain.UpdateRoleInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	updated, err := h.roleService.Update(c.Context(), roleID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(updated)
}

func (h *RoleHandler) Delete(c *fiber.Ctx) error {
	roleID, err := uuid.Parse(c.Params("roleId"))
	if err != nil {
		return middleware.BadRequest("Invalid role ID")
	}

	if err := h.roleService.Delete(c.Context(), roleID); err != nil {
		return err
	}

	return c.Status(fiber.StatusNoContent).SendString("")
}
