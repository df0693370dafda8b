package server

import (
	"atelier/internal/models"
	"atelier/internal/repository"
	"atelier/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetWorks handles GET /api/works with tag and author filters.
func (s *Server) GetWorks(c *fiber.Ctx) error {
	ctx := c.Context()
	page := parsePagination(c, 20)

	works, err := s.workService.ListWorks(ctx, repository.ListWorksOptions{
		Limit:    page.Limit,
		Offset:   page.Offset,
		Tag:      c.Query("tag"),
		AuthorID: uint(c.QueryInt("author", 0)),
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(works)
}

// GetWork handles GET /api/works/:id
func (s *Server) GetWork(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	work, err := s.workService.GetWork(ctx, id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(work)
}

// GetUserWorks handles GET /api/users/:id/works
func (s *Server) GetUserWorks(c *fiber.Ctx) error {
	ctx := c.Context()
	authorID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	page := parsePagination(c, 20)

	works, err := s.workService.ListWorks(ctx, repository.ListWorksOptions{
		Limit:    page.Limit,
		Offset:   page.Offset,
		AuthorID: authorID,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(works)
}

// CreateWork handles POST /api/works. The payload goes through the same
// draft validation as an interactive share dialog: title and description
// lengths, at most ten deduplicated tags, one to five images.
func (s *Server) CreateWork(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	var req struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Tags        []string `json:"tags,omitempty"`
		Images      []string `json:"images"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	work, err := s.workService.ShareWork(ctx, service.ShareWorkInput{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
		Images:      req.Images,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(work)
}

// DeleteWork handles DELETE /api/works/:id (owner or admin).
func (s *Server) DeleteWork(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	workID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.workService.DeleteWork(ctx, userID, workID); err != nil {
		return respondServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
