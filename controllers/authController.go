package controllers

import (
	"strings"

	"gst-billing/middlewares"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type LoginInput struct {
	Operator string `json:"operator"`
	Password string `json:"password" validate:"required"`
}

// Login exchanges the operator password for a bearer token. The desk has a
// single shared password; Operator only labels the session.
func (h *Handler) Login(c *fiber.Ctx) error {
	var in LoginInput
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	if h.OperatorPasswordHash == "" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"message": "operator login not configured",
		})
	}
	if err := bcrypt.CompareHashAndPassword([]byte(h.OperatorPasswordHash), []byte(in.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "invalid credentials",
		})
	}

	operator := strings.TrimSpace(in.Operator)
	if operator == "" {
		operator = "operator"
	}
	token, err := h.Auth.GenerateJWT(operator)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"token":    token,
		"operator": operator,
	})
}

// HashPassword returns the bcrypt hash to put in OPERATOR_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(b), err
}
