package server

import (
	"atelier/internal/models"
	"atelier/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetReviews handles GET /api/works/:id/reviews (public, newest first).
func (s *Server) GetReviews(c *fiber.Ctx) error {
	ctx := c.Context()

	workID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	page := parsePagination(c, 20)

	reviews, err := s.reviewService.ListReviews(ctx, workID, page.Limit, page.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(reviews)
}

// CreateReview handles POST /api/works/:id/reviews. Validation runs in the
// dialog's order: rating first, then the trimmed comment. The stored review
// comes back wrapped in a "review" envelope.
func (s *Server) CreateReview(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	workID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	review, err := s.reviewService.CreateReview(ctx, service.CreateReviewInput{
		UserID:  userID,
		WorkID:  workID,
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"review": review,
	})
}

// DeleteReview handles DELETE /api/works/:id/reviews/:reviewId (author only).
func (s *Server) DeleteReview(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	reviewID, err := s.parseID(c, "reviewId")
	if err != nil {
		return nil
	}

	if err := s.reviewService.DeleteReview(ctx, userID, reviewID); err != nil {
		return respondServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
