package service

import (
	"context"

	"atelier/internal/cache"
	"atelier/internal/featureflags"
	"atelier/internal/models"
	"atelier/internal/repository"
)

type WorkService struct {
	workRepo repository.WorkRepository
	flags    *featureflags.Manager
	isAdmin  func(ctx context.Context, userID uint) (bool, error)
}

type ShareWorkInput struct {
	UserID      uint
	Title       string
	Description string
	Tags        []string
	Images      []string
}

func NewWorkService(
	workRepo repository.WorkRepository,
	flags *featureflags.Manager,
	isAdmin func(ctx context.Context, userID uint) (bool, error),
) *WorkService {
	return &WorkService{
		workRepo: workRepo,
		flags:    flags,
		isAdmin:  isAdmin,
	}
}

// ShareWork validates and persists a shared work. The input passes through
// a WorkDraft so the API path enforces exactly the same tag and image rules
// as an interactive draft.
func (s *WorkService) ShareWork(ctx context.Context, in ShareWorkInput) (*models.Work, error) {
	if s.flags != nil && s.flags.Has("work_sharing") && !s.flags.Enabled("work_sharing", in.UserID) {
		return nil, models.NewForbiddenError("Work sharing is not available for your account yet")
	}

	draft := NewWorkDraft()
	draft.SetTitle(in.Title)
	draft.SetDescription(in.Description)
	for _, tag := range in.Tags {
		draft.AddTag(tag)
	}
	draft.AddImages(in.Images)

	if err := draft.Validate(); err != nil {
		return nil, err
	}

	work := draft.Build(in.UserID)
	if err := s.workRepo.Create(ctx, work); err != nil {
		return nil, err
	}
	return s.workRepo.GetByID(ctx, work.ID)
}

func (s *WorkService) GetWork(ctx context.Context, id uint) (*models.Work, error) {
	return s.workRepo.GetByID(ctx, id)
}

func (s *WorkService) ListWorks(ctx context.Context, opts repository.ListWorksOptions) ([]*models.Work, error) {
	// First gallery pages are cacheable; deeper pages go to the DB.
	if opts.Offset != 0 || opts.Limit > 20 {
		return s.workRepo.List(ctx, opts)
	}

	var works []*models.Work
	key := cache.WorksListKey(ctx, 0, opts.Limit, opts.Tag, opts.AuthorID)
	err := cache.Aside(ctx, key, &works, cache.ListTTL, func() error {
		var fetchErr error
		works, fetchErr = s.workRepo.List(ctx, opts)
		return fetchErr
	})
	if err != nil {
		return nil, err
	}
	return works, nil
}

// DeleteWork deactivates a work. Reviews stay addressable.
func (s *WorkService) DeleteWork(ctx context.Context, userID, workID uint) error {
	work, err := s.workRepo.GetByID(ctx, workID)
	if err != nil {
		return err
	}

	if work.UserID != userID {
		if s.isAdmin == nil {
			return models.NewUnauthorizedError("You can only delete your own works")
		}
		admin, err := s.isAdmin(ctx, userID)
		if err != nil {
			return err
		}
		if !admin {
			return models.NewUnauthorizedError("You can only delete your own works")
		}
	}

	return s.workRepo.Deactivate(ctx, workID)
}
