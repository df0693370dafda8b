package server

import (
	"atelier/internal/models"
	"atelier/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetComments returns the active comment tree for a post (public).
// Top-level comments carry their replies preloaded.
func (s *Server) GetComments(c *fiber.Ctx) error {
	ctx := c.Context()

	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID, _ := s.optionalUserID(c)

	comments, err := s.commentService.ListComments(ctx, postID, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(comments)
}

// GetReplies returns the active replies of a single comment (public).
func (s *Server) GetReplies(c *fiber.Ctx) error {
	ctx := c.Context()

	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}
	userID, _ := s.optionalUserID(c)

	replies, err := s.commentService.ListReplies(ctx, commentID, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(replies)
}

// CreateComment creates a comment or a reply on a post (protected)
func (s *Server) CreateComment(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content         string `json:"content"`
		ParentCommentID *uint  `json:"parent_comment_id,omitempty"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.ParentCommentID != nil && s.featureFlags != nil &&
		s.featureFlags.Has("nested_replies") && !s.featureFlags.Enabled("nested_replies", userID) {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("Replies are currently disabled"))
	}

	created, err := s.commentService.CreateComment(ctx, service.CreateCommentInput{
		UserID:          userID,
		PostID:          postID,
		ParentCommentID: req.ParentCommentID,
		Content:         req.Content,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// UpdateComment updates a comment (only owner)
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	updated, err := s.commentService.UpdateComment(ctx, service.UpdateCommentInput{
		UserID:    userID,
		CommentID: commentID,
		Content:   req.Content,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(updated)
}

// DeleteComment deactivates a comment (owner or admin)
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	if _, err := s.commentService.DeleteComment(ctx, service.DeleteCommentInput{
		UserID:    userID,
		CommentID: commentID,
	}); err != nil {
		return respondServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// LikeComment handles POST /api/posts/:id/comments/:commentId/like, toggling
// the caller's like on the comment.
func (s *Server) LikeComment(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	comment, err := s.commentService.ToggleCommentLike(ctx, userID, commentID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(comment)
}
