package server

import (
	"github.com/gofiber/fiber/v2"
)

// LoginPage handles GET /login for anonymous visitors. Authenticated users
// never reach it: the guest guard redirects them to their saved return path
// or the landing page first.
func (s *Server) LoginPage(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"page":      "login",
		"return_to": c.Query("return_to"),
	})
}

// StudioPage handles GET /studio, the designer dashboard shell. The route
// guard upstream redirects anonymous visitors to the login page with the
// original path carried in return_to.
func (s *Server) StudioPage(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	user, err := s.userService.GetUserByID(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"page": "studio",
		"user": user,
	})
}
