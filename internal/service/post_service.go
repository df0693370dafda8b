package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"atelier/internal/cache"
	"atelier/internal/middleware"
	"atelier/internal/models"
	"atelier/internal/repository"
)

type PostService struct {
	postRepo repository.PostRepository
	isAdmin  func(ctx context.Context, userID uint) (bool, error)
}

type CreatePostInput struct {
	UserID   uint
	Title    string
	Content  string
	Category string
	Images   []string
	Tags     []string
}

type ListPostsInput struct {
	Limit         int
	Offset        int
	Category      string
	Tag           string
	AuthorID      uint
	CurrentUserID uint
}

type UpdatePostInput struct {
	UserID  uint
	PostID  uint
	Title   string
	Content string
	Tags    []string
}

type DeletePostInput struct {
	UserID uint
	PostID uint
}

func NewPostService(
	postRepo repository.PostRepository,
	isAdmin func(ctx context.Context, userID uint) (bool, error),
) *PostService {
	return &PostService{
		postRepo: postRepo,
		isAdmin:  isAdmin,
	}
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	const maxTitleLen = 200
	const maxContentLen = 10000

	if strings.TrimSpace(in.Title) == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if utf8.RuneCountInString(in.Title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 200 characters)")
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if utf8.RuneCountInString(in.Content) > maxContentLen {
		return nil, models.NewValidationError("Content too long (max 10000 characters)")
	}

	category := in.Category
	if category == "" {
		category = models.CategoryDiscussion
	}
	if !models.ValidCategory(category) {
		return nil, models.NewValidationError("Invalid category")
	}

	post := &models.Post{
		Title:    strings.TrimSpace(in.Title),
		Content:  in.Content,
		Category: category,
		UserID:   in.UserID,
		IsActive: true,
	}

	for i, img := range in.Images {
		u := strings.TrimSpace(img)
		if u == "" {
			continue
		}
		post.Images = append(post.Images, models.PostImage{URL: u, Position: i})
	}
	for _, tag := range normalizeTags(in.Tags) {
		post.Tags = append(post.Tags, models.PostTag{Tag: tag})
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID, in.UserID)
}

// normalizeTags trims and lower-cases tags, dropping empties. Duplicates are
// kept; deduplication is a dialog concern on the work side, not a store rule.
func normalizeTags(tags []string) []string {
	var out []string
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		out = append(out, t)
	}
	return out
}

func (s *PostService) GetPost(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id, currentUserID)
}

// ViewPost fetches a post and records the view. Every fetch counts: the view
// counter increments monotonically, including repeat views by one user. The
// counter bump is best effort and never fails the read itself.
func (s *PostService) ViewPost(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id, currentUserID)
	if err != nil {
		return nil, err
	}
	if err := s.postRepo.IncrementViews(ctx, id); err != nil {
		middleware.Logger.Warn("view count increment failed", "post_id", id, "error", err.Error())
		return post, nil
	}
	post.Views++
	return post, nil
}

func (s *PostService) ListPosts(ctx context.Context, in ListPostsInput) ([]*models.Post, error) {
	if in.Category != "" && !models.ValidCategory(in.Category) {
		return nil, models.NewValidationError("Invalid category")
	}

	var posts []*models.Post
	var err error

	// Anonymous first pages are cacheable; everything else goes to the DB.
	if in.CurrentUserID == 0 && in.Offset == 0 && in.Limit <= 20 {
		key := cache.PostsListKey(ctx, 0, in.Limit, in.Category, in.Tag, in.AuthorID)
		err = cache.Aside(ctx, key, &posts, cache.ListTTL, func() error {
			var fetchErr error
			posts, fetchErr = s.postRepo.List(ctx, repository.ListPostsOptions{
				Limit:    in.Limit,
				Offset:   in.Offset,
				Category: in.Category,
				Tag:      in.Tag,
				AuthorID: in.AuthorID,
			})
			return fetchErr
		})
	} else {
		posts, err = s.postRepo.List(ctx, repository.ListPostsOptions{
			Limit:         in.Limit,
			Offset:        in.Offset,
			Category:      in.Category,
			Tag:           in.Tag,
			AuthorID:      in.AuthorID,
			CurrentUserID: in.CurrentUserID,
		})
	}
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *PostService) SearchPosts(ctx context.Context, query string, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	if strings.TrimSpace(query) == "" {
		return nil, models.NewValidationError("Search query is required")
	}
	return s.postRepo.Search(ctx, query, limit, offset, currentUserID)
}

func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID, in.UserID)
	if err != nil {
		return nil, err
	}

	if post.UserID != in.UserID {
		return nil, models.NewUnauthorizedError("You can only update your own posts")
	}

	if in.Title != "" {
		if utf8.RuneCountInString(in.Title) > 200 {
			return nil, models.NewValidationError("Title too long (max 200 characters)")
		}
		post.Title = strings.TrimSpace(in.Title)
	}
	if in.Content != "" {
		if utf8.RuneCountInString(in.Content) > 10000 {
			return nil, models.NewValidationError("Content too long (max 10000 characters)")
		}
		post.Content = in.Content
	}
	if in.Tags != nil {
		tags := make([]models.PostTag, 0, len(in.Tags))
		for _, tag := range normalizeTags(in.Tags) {
			tags = append(tags, models.PostTag{PostID: post.ID, Tag: tag})
		}
		post.Tags = tags
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost deactivates the post. Attached comments stay fetchable.
func (s *PostService) DeletePost(ctx context.Context, in DeletePostInput) error {
	post, err := s.postRepo.GetByID(ctx, in.PostID, in.UserID)
	if err != nil {
		return err
	}

	if post.UserID != in.UserID {
		if s.isAdmin == nil {
			return models.NewUnauthorizedError("You can only delete your own posts")
		}
		admin, err := s.isAdmin(ctx, in.UserID)
		if err != nil {
			return err
		}
		if !admin {
			return models.NewUnauthorizedError("You can only delete your own posts")
		}
	}

	return s.postRepo.Deactivate(ctx, in.PostID)
}

// PinPost pins or unpins a post. Admin only.
func (s *PostService) PinPost(ctx context.Context, userID, postID uint, pinned bool) (*models.Post, error) {
	if s.isAdmin == nil {
		return nil, models.NewUnauthorizedError("Only admins can pin posts")
	}
	admin, err := s.isAdmin(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !admin {
		return nil, models.NewUnauthorizedError("Only admins can pin posts")
	}

	if err := s.postRepo.SetPinned(ctx, postID, pinned); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, postID, userID)
}

// ToggleLike adds the user's like if absent and removes it if present.
// Applying it twice returns the post to its original state.
func (s *PostService) ToggleLike(ctx context.Context, userID, postID uint) (*models.Post, error) {
	isLiked, err := s.postRepo.IsLiked(ctx, userID, postID)
	if err != nil {
		return nil, err
	}

	if isLiked {
		if err := s.postRepo.Unlike(ctx, userID, postID); err != nil {
			return nil, err
		}
	} else {
		if err := s.postRepo.Like(ctx, userID, postID); err != nil {
			return nil, err
		}
	}

	return s.postRepo.GetByID(ctx, postID, userID)
}
