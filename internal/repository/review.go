package repository

import (
	"context"
	"errors"

	"atelier/internal/cache"
	"atelier/internal/models"

	"gorm.io/gorm"
)

// ReviewRepository defines the interface for review data operations
type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	GetByID(ctx context.Context, id uint) (*models.Review, error)
	ListByWork(ctx context.Context, workID uint, limit, offset int) ([]*models.Review, error)
	HasReviewed(ctx context.Context, workID, userID uint) (bool, error)
	Delete(ctx context.Context, id uint) error
}

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("You have already reviewed this work")
		}
		return err
	}
	cache.InvalidateWork(ctx, review.WorkID)
	return nil
}

func (r *reviewRepository) GetByID(ctx context.Context, id uint) (*models.Review, error) {
	var review models.Review
	if err := readDB(r.db).WithContext(ctx).Preload("User").First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Review", id)
		}
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) ListByWork(ctx context.Context, workID uint, limit, offset int) ([]*models.Review, error) {
	var reviews []*models.Review
	err := readDB(r.db).WithContext(ctx).
		Preload("User").
		Where("work_id = ?", workID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&reviews).Error
	return reviews, err
}

func (r *reviewRepository) HasReviewed(ctx context.Context, workID, userID uint) (bool, error) {
	var count int64
	if err := readDB(r.db).WithContext(ctx).
		Model(&models.Review{}).
		Where("work_id = ? AND user_id = ?", workID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *reviewRepository) Delete(ctx context.Context, id uint) error {
	var review models.Review
	if err := r.db.WithContext(ctx).First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Review", id)
		}
		return err
	}
	if err := r.db.WithContext(ctx).Delete(&review).Error; err != nil {
		return err
	}
	cache.InvalidateWork(ctx, review.WorkID)
	return nil
}
