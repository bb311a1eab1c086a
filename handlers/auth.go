package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/taskward/taskward/apperr"
)

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleSignup godoc
// @Summary Register a new account
// @Tags auth
// @Accept json
// @Produce json
// @Param body body signupRequest true "credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /user/signup [post]
func (h *Handlers) HandleSignup(c *fiber.Ctx) error {
	req := new(signupRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error(), "reason": apperr.CodeValidation})
	}

	user, token, err := h.auth.Signup(c.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(200).JSON(fiber.Map{
		"email": user.Email,
		"token": token,
		"user":  user,
	})
}

// HandleLogin godoc
// @Summary Log in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param body body loginRequest true "credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /user/login [post]
func (h *Handlers) HandleLogin(c *fiber.Ctx) error {
	req := new(loginRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error(), "reason": apperr.CodeValidation})
	}

	user, token, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(200).JSON(fiber.Map{
		"email": user.Email,
		"token": token,
		"user":  user,
	})
}
