package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"atelier/internal/models"
	"atelier/internal/repository"
)

type ReviewService struct {
	reviewRepo repository.ReviewRepository
	workRepo   repository.WorkRepository
	notify     func(ctx context.Context, userID uint, event string, payload any)
}

type CreateReviewInput struct {
	UserID  uint
	WorkID  uint
	Rating  int
	Comment string
}

func NewReviewService(
	reviewRepo repository.ReviewRepository,
	workRepo repository.WorkRepository,
	notify func(ctx context.Context, userID uint, event string, payload any),
) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		workRepo:   workRepo,
		notify:     notify,
	}
}

// CreateReview validates and persists a review. The rating is checked before
// the comment, so a zero rating is reported even when the comment is also
// invalid; no repository call happens until both checks pass.
func (s *ReviewService) CreateReview(ctx context.Context, in CreateReviewInput) (*models.Review, error) {
	if in.Rating < models.MinReviewRating || in.Rating > models.MaxReviewRating {
		return nil, models.NewValidationError("Please select a rating")
	}

	comment := strings.TrimSpace(in.Comment)
	if utf8.RuneCountInString(comment) < models.MinReviewCommentLen {
		return nil, models.NewValidationError("Review must be at least 10 characters")
	}
	if utf8.RuneCountInString(comment) > models.MaxReviewCommentLen {
		return nil, models.NewValidationError("Review too long (max 500 characters)")
	}

	work, err := s.workRepo.GetByID(ctx, in.WorkID)
	if err != nil {
		return nil, err
	}
	if !work.IsActive {
		return nil, models.NewValidationError("Cannot review a removed work")
	}
	if work.UserID == in.UserID {
		return nil, models.NewValidationError("You cannot review your own work")
	}

	// Pre-check keeps the common duplicate path off the unique-index error;
	// a concurrent double submit still lands on the index and maps to the
	// same conflict.
	reviewed, err := s.reviewRepo.HasReviewed(ctx, in.WorkID, in.UserID)
	if err != nil {
		return nil, err
	}
	if reviewed {
		return nil, models.NewConflictError("You have already reviewed this work")
	}

	review := &models.Review{
		WorkID:  in.WorkID,
		UserID:  in.UserID,
		Rating:  in.Rating,
		Comment: comment,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	if s.notify != nil {
		s.notify(ctx, work.UserID, "review_received", review)
	}

	return s.reviewRepo.GetByID(ctx, review.ID)
}

func (s *ReviewService) ListReviews(ctx context.Context, workID uint, limit, offset int) ([]*models.Review, error) {
	if _, err := s.workRepo.GetByID(ctx, workID); err != nil {
		return nil, err
	}
	return s.reviewRepo.ListByWork(ctx, workID, limit, offset)
}

// DeleteReview removes a review. Only the author may delete it.
func (s *ReviewService) DeleteReview(ctx context.Context, userID, reviewID uint) error {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if review.UserID != userID {
		return models.NewUnauthorizedError("You can only delete your own reviews")
	}
	return s.reviewRepo.Delete(ctx, reviewID)
}
