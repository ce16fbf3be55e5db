package server

import (
	"quill/internal/models"
	"quill/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Signup registers a user and returns an access token.
// POST /api/auth/signup
func (s *Server) Signup(c *fiber.Ctx) error {
	var in service.SignupInput
	if err := parseBody(c, &in); err != nil {
		return nil
	}

	res, err := s.authService.Signup(c.UserContext(), in)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

// Login exchanges credentials for an access token.
// POST /api/auth/login
func (s *Server) Login(c *fiber.Ctx) error {
	var in service.LoginInput
	if err := parseBody(c, &in); err != nil {
		return nil
	}

	res, err := s.authService.Login(c.UserContext(), in)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(res)
}

// Logout revokes the token used for this request.
// POST /api/auth/logout
func (s *Server) Logout(c *fiber.Ctx) error {
	claims, ok := currentClaims(c)
	if !ok {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Authorization required"))
	}

	if err := s.authService.Logout(c.UserContext(), claims); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Logged out successfully."})
}

// Me returns the authenticated user.
// GET /api/auth/me
func (s *Server) Me(c *fiber.Ctx) error {
	user, err := s.authService.CurrentUser(c.UserContext(), currentUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(user)
}
