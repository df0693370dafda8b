package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"atelier/internal/models"
	"atelier/internal/repository"
)

const maxCommentLen = 2000

type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	notify      func(ctx context.Context, userID uint, event string, payload any)
	isAdmin     func(ctx context.Context, userID uint) (bool, error)
}

type CreateCommentInput struct {
	UserID          uint
	PostID          uint
	ParentCommentID *uint
	Content         string
}

type UpdateCommentInput struct {
	UserID    uint
	CommentID uint
	Content   string
}

type DeleteCommentInput struct {
	UserID    uint
	CommentID uint
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	notify func(ctx context.Context, userID uint, event string, payload any),
	isAdmin func(ctx context.Context, userID uint) (bool, error),
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		notify:      notify,
		isAdmin:     isAdmin,
	}
}

func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if strings.TrimSpace(in.Content) == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if utf8.RuneCountInString(in.Content) > maxCommentLen {
		return nil, models.NewValidationError("Content too long (max 2000 characters)")
	}

	post, err := s.postRepo.GetByID(ctx, in.PostID, 0)
	if err != nil {
		return nil, err
	}
	if !post.IsActive {
		return nil, models.NewValidationError("Cannot comment on a removed post")
	}

	if in.ParentCommentID != nil {
		parent, err := s.commentRepo.GetByID(ctx, *in.ParentCommentID, 0)
		if err != nil {
			return nil, err
		}
		// A reply always belongs to the same post as its parent.
		if parent.PostID != in.PostID {
			return nil, models.NewValidationError("Parent comment belongs to a different post")
		}
	}

	comment := &models.Comment{
		Content:         in.Content,
		UserID:          in.UserID,
		PostID:          in.PostID,
		ParentCommentID: in.ParentCommentID,
		IsActive:        true,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	if s.notify != nil && post.UserID != in.UserID {
		s.notify(ctx, post.UserID, "comment_received", comment)
	}

	return s.commentRepo.GetByID(ctx, comment.ID, in.UserID)
}

func (s *CommentService) GetComment(ctx context.Context, id uint, currentUserID uint) (*models.Comment, error) {
	return s.commentRepo.GetByID(ctx, id, currentUserID)
}

// ListComments returns a post's active top-level comments oldest first.
// A deactivated post keeps its comments fetchable by direct ID, but its
// listings are gone along with the post itself.
func (s *CommentService) ListComments(ctx context.Context, postID uint, currentUserID uint) ([]*models.Comment, error) {
	post, err := s.postRepo.GetByID(ctx, postID, 0)
	if err != nil {
		return nil, err
	}
	if !post.IsActive {
		return nil, models.NewNotFoundError("Post", postID)
	}
	return s.commentRepo.ListByPost(ctx, postID, currentUserID)
}

func (s *CommentService) ListReplies(ctx context.Context, parentID uint, currentUserID uint) ([]*models.Comment, error) {
	parent, err := s.commentRepo.GetByID(ctx, parentID, 0)
	if err != nil {
		return nil, err
	}
	post, err := s.postRepo.GetByID(ctx, parent.PostID, 0)
	if err != nil {
		return nil, err
	}
	if !post.IsActive {
		return nil, models.NewNotFoundError("Post", parent.PostID)
	}
	return s.commentRepo.ListReplies(ctx, parentID, currentUserID)
}

func (s *CommentService) UpdateComment(ctx context.Context, in UpdateCommentInput) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID, in.UserID)
	if err != nil {
		return nil, err
	}
	if comment.UserID != in.UserID {
		return nil, models.NewUnauthorizedError("You can only update your own comments")
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if utf8.RuneCountInString(in.Content) > maxCommentLen {
		return nil, models.NewValidationError("Content too long (max 2000 characters)")
	}

	comment.Content = in.Content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, in.CommentID, in.UserID)
}

// DeleteComment deactivates the comment. Replies stay addressable.
func (s *CommentService) DeleteComment(ctx context.Context, in DeleteCommentInput) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID, in.UserID)
	if err != nil {
		return nil, err
	}

	if comment.UserID != in.UserID {
		if s.isAdmin == nil {
			return nil, models.NewUnauthorizedError("You can only delete your own comments")
		}
		admin, err := s.isAdmin(ctx, in.UserID)
		if err != nil {
			return nil, err
		}
		if !admin {
			return nil, models.NewUnauthorizedError("You can only delete your own comments")
		}
	}

	if err := s.commentRepo.Deactivate(ctx, in.CommentID); err != nil {
		return nil, err
	}
	return comment, nil
}

// ToggleCommentLike mirrors post like toggling for comments.
func (s *CommentService) ToggleCommentLike(ctx context.Context, userID, commentID uint) (*models.Comment, error) {
	isLiked, err := s.commentRepo.IsLiked(ctx, userID, commentID)
	if err != nil {
		return nil, err
	}

	if isLiked {
		if err := s.commentRepo.Unlike(ctx, userID, commentID); err != nil {
			return nil, err
		}
	} else {
		if err := s.commentRepo.Like(ctx, userID, commentID); err != nil {
			return nil, err
		}
	}

	return s.commentRepo.GetByID(ctx, commentID, userID)
}
