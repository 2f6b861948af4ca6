package handler

import (
	"github.com/gofiber/fiber/v2"

	"kabar/internal/middleware"
	"kabar/internal/service/captcha"
)

type CaptchaHandler struct {
	captchaService captcha.Service
}

func NewCaptchaHandler(captchaService captcha.Service) *CaptchaHandler {
	return &CaptchaHandler{captchaService: captchaService}
}

func (h *CaptchaHandler) Challenge(c *fiber.Ctx) error {
	challenge, err := h.captchaService.CreateChallenge(c.Context())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(challenge)
}

// Verify trades a correct text solution for a one-time token, so clients can
// solve the challenge up front and attach the token to the actual submission.
func (h *CaptchaHandler) Verify(c *fiber.Ctx) error {
	var input struct {
		SessionID string `json:"session_id"`
		Answer    string `json:"answer"`
	}
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	token, err := h.captchaService.Verify(c.Context(), input.SessionID, input.Answer)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"token": token})
}
