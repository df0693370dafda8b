package repository

import (
	"context"
	"errors"

	"atelier/internal/cache"
	"atelier/internal/models"

	"gorm.io/gorm"
)

// ListWorksOptions narrows a work gallery listing. Zero values mean "no filter".
type ListWorksOptions struct {
	Limit    int
	Offset   int
	Tag      string
	AuthorID uint
}

// WorkRepository defines the interface for shared-work data operations
type WorkRepository interface {
	Create(ctx context.Context, work *models.Work) error
	GetByID(ctx context.Context, id uint) (*models.Work, error)
	List(ctx context.Context, opts ListWorksOptions) ([]*models.Work, error)
	Update(ctx context.Context, work *models.Work) error
	Deactivate(ctx context.Context, id uint) error
}

type workRepository struct {
	db *gorm.DB
}

// NewWorkRepository creates a new work repository
func NewWorkRepository(db *gorm.DB) WorkRepository {
	return &workRepository{db: db}
}

func (r *workRepository) Create(ctx context.Context, work *models.Work) error {
	err := r.db.WithContext(ctx).Create(work).Error
	if err == nil {
		cache.InvalidateWorksList(ctx)
	}
	return err
}

// GetByID returns the work regardless of its active state.
func (r *workRepository) GetByID(ctx context.Context, id uint) (*models.Work, error) {
	var work models.Work
	key := cache.WorkKey(id)

	err := cache.Aside(ctx, key, &work, cache.WorkTTL, func() error {
		return r.applyWorkDetails(readDB(r.db).WithContext(ctx)).
			Preload("User").
			Preload("Images").
			Preload("Tags").
			First(&work, id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Work", id)
		}
		return nil, err
	}
	return &work, nil
}

func (r *workRepository) List(ctx context.Context, opts ListWorksOptions) ([]*models.Work, error) {
	var works []*models.Work
	q := r.applyWorkDetails(readDB(r.db).WithContext(ctx)).
		Preload("User").
		Preload("Images").
		Preload("Tags").
		Where("works.is_active = ?", true)

	if opts.AuthorID != 0 {
		q = q.Where("works.user_id = ?", opts.AuthorID)
	}
	if opts.Tag != "" {
		q = q.Where("EXISTS(SELECT 1 FROM work_tags WHERE work_tags.work_id = works.id AND work_tags.tag = ?)", opts.Tag)
	}

	err := q.Order("works.created_at DESC").
		Limit(opts.Limit).
		Offset(opts.Offset).
		Find(&works).Error
	if err != nil {
		return nil, err
	}
	return works, nil
}

// applyWorkDetails adds subqueries for the review count and average rating.
func (r *workRepository) applyWorkDetails(db *gorm.DB) *gorm.DB {
	return db.Select("works.*, " +
		"(SELECT COUNT(*) FROM reviews WHERE reviews.work_id = works.id) as reviews_count, " +
		"(SELECT COALESCE(AVG(rating), 0) FROM reviews WHERE reviews.work_id = works.id) as average_rating")
}

func (r *workRepository) Update(ctx context.Context, work *models.Work) error {
	if err := r.db.WithContext(ctx).Save(work).Error; err != nil {
		return err
	}
	cache.InvalidateWork(ctx, work.ID)
	cache.InvalidateWorksList(ctx)
	return nil
}

func (r *workRepository) Deactivate(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Work{}).
		Where("id = ?", id).
		Update("is_active", false).Error; err != nil {
		return err
	}
	cache.InvalidateWork(ctx, id)
	cache.InvalidateWorksList(ctx)
	return nil
}
