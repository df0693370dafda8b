// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"atelier/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedOptions tune how factories generate and persist data.
type SeedOptions struct {
	// SkipBcrypt stores a plaintext password instead of hashing. Dev fast
	// mode only; never usable against a real login flow.
	SkipBcrypt bool
	// DryRun builds entities and assigns synthetic IDs without touching
	// the database.
	DryRun bool
	// MaxDays spreads generated CreatedAt timestamps over the past N days.
	MaxDays int
}

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by seed presets and tests.
type Factory struct {
	db   *gorm.DB
	opts SeedOptions
	rng  *rand.Rand
	// synthetic ID counter when running in DryRun mode
	nextID uint
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts SeedOptions) *Factory {
	// seed gofakeit for richer content
	gofakeit.Seed(time.Now().UnixNano())
	//nolint:gosec // weak randomness is fine for seed data
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &Factory{db: db, opts: opts, rng: rng, nextID: 1000}
}

// designTags is the pool work and post tags are drawn from.
var designTags = []string{
	"branding", "typography", "illustration", "poster", "packaging",
	"editorial", "logo", "ui", "icons", "lettering", "motion",
	"print", "identity", "web", "minimal",
}

// randomCreatedAt returns a timestamp spread over the past MaxDays days.
func (f *Factory) randomCreatedAt() time.Time {
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	daysBack := f.rng.Intn(maxDays)
	hoursBack := f.rng.Intn(24)
	minsBack := f.rng.Intn(60)
	return time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(hoursBack)*time.Hour -
		time.Duration(minsBack)*time.Minute)
}

func (f *Factory) randomTags(max int) []string {
	n := 1 + f.rng.Intn(max)
	picked := make([]string, 0, n)
	seen := make(map[string]bool, n)
	for len(picked) < n {
		tag := designTags[f.rng.Intn(len(designTags))]
		if seen[tag] {
			continue
		}
		seen[tag] = true
		picked = append(picked, tag)
	}
	return picked
}

// CreateUser constructs and persists a sample `models.User`.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Username: strings.ToLower(gofakeit.Username()) + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:    gofakeit.Email(),
		Bio:      gofakeit.Sentence(10),
		Avatar:   fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
	}

	// Password handling: allow skipping bcrypt in dev fast mode
	if f.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		user.Password = string(hashedPassword)
	}

	for _, override := range overrides {
		override(user)
	}

	if f.opts.DryRun {
		f.nextID++
		user.ID = f.nextID
		log.Printf("[dry-run] CreateUser: %s <%s>", user.Username, user.Email)
		return user, nil
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// BuildPost constructs a post for the given user without persisting it.
// Useful for batching.
func (f *Factory) BuildPost(user *models.User, overrides ...func(*models.Post)) *models.Post {
	category := models.Categories[f.rng.Intn(len(models.Categories))]
	post := &models.Post{
		Title:     gofakeit.Sentence(5),
		Content:   gofakeit.Paragraph(1, 3, 5, "\n"),
		Category:  category,
		UserID:    user.ID,
		IsActive:  true,
		CreatedAt: f.randomCreatedAt(),
	}

	for _, tag := range f.randomTags(4) {
		post.Tags = append(post.Tags, models.PostTag{Tag: tag})
	}
	if category == models.CategoryShowcase || f.rng.Intn(3) == 0 {
		n := 1 + f.rng.Intn(3)
		for i := 0; i < n; i++ {
			post.Images = append(post.Images, models.PostImage{
				URL:      fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID()),
				Position: i,
			})
		}
	}

	for _, override := range overrides {
		override(post)
	}
	return post
}

// CreatePost persists a generated post for the given user.
func (f *Factory) CreatePost(user *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	post := f.BuildPost(user, overrides...)
	if f.opts.DryRun {
		f.nextID++
		post.ID = f.nextID
		log.Printf("[dry-run] CreatePost: %q (%s)", post.Title, post.Category)
		return post, nil
	}
	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreatePostsBatch persists multiple posts in a single DB call when possible.
func (f *Factory) CreatePostsBatch(posts []*models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	if f.opts.DryRun {
		for _, p := range posts {
			f.nextID++
			p.ID = f.nextID
		}
		log.Printf("[dry-run] CreatePostsBatch: %d posts (no DB write)", len(posts))
		return nil
	}
	return f.db.Create(&posts).Error
}

// CreateComment persists a comment by the given user on the given post.
// Pass a non-nil parent to create a threaded reply.
func (f *Factory) CreateComment(user *models.User, post *models.Post, parent *models.Comment) (*models.Comment, error) {
	comment := &models.Comment{
		Content:   gofakeit.Sentence(8 + f.rng.Intn(10)),
		UserID:    user.ID,
		PostID:    post.ID,
		IsActive:  true,
		CreatedAt: f.randomCreatedAt(),
	}
	if parent != nil {
		comment.ParentCommentID = &parent.ID
	}

	if f.opts.DryRun {
		f.nextID++
		comment.ID = f.nextID
		return comment, nil
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateWork constructs and persists a shared work for the given user,
// with one to five images and a handful of tags.
func (f *Factory) CreateWork(user *models.User, overrides ...func(*models.Work)) (*models.Work, error) {
	work := &models.Work{
		Title:       gofakeit.Sentence(3),
		Description: gofakeit.Paragraph(1, 2, 6, " "),
		UserID:      user.ID,
		IsActive:    true,
		CreatedAt:   f.randomCreatedAt(),
	}
	if len(work.Title) > models.MaxWorkTitleLen {
		work.Title = work.Title[:models.MaxWorkTitleLen]
	}
	if len(work.Description) > models.MaxWorkDescLen {
		work.Description = work.Description[:models.MaxWorkDescLen]
	}

	n := models.MinWorkImages + f.rng.Intn(models.MaxWorkImages)
	for i := 0; i < n; i++ {
		work.Images = append(work.Images, models.WorkImage{
			URL:      fmt.Sprintf("https://picsum.photos/seed/work-%s/1200/900", gofakeit.UUID()),
			Position: i,
		})
	}
	for _, tag := range f.randomTags(5) {
		work.Tags = append(work.Tags, models.WorkTag{Tag: tag})
	}

	for _, override := range overrides {
		override(work)
	}

	if f.opts.DryRun {
		f.nextID++
		work.ID = f.nextID
		log.Printf("[dry-run] CreateWork: %q (%d images)", work.Title, len(work.Images))
		return work, nil
	}
	if err := f.db.Create(work).Error; err != nil {
		return nil, err
	}
	return work, nil
}

// CreateReview persists a review by the given user on the given work.
// Callers must not reuse the same user/work pair; the unique index rejects it.
func (f *Factory) CreateReview(user *models.User, work *models.Work, overrides ...func(*models.Review)) (*models.Review, error) {
	comment := gofakeit.Sentence(6 + f.rng.Intn(12))
	for len(comment) < models.MinReviewCommentLen {
		comment += " " + gofakeit.Word()
	}
	review := &models.Review{
		WorkID:    work.ID,
		UserID:    user.ID,
		Rating:    models.MinReviewRating + f.rng.Intn(models.MaxReviewRating),
		Comment:   comment,
		CreatedAt: f.randomCreatedAt(),
	}

	for _, override := range overrides {
		override(review)
	}

	if f.opts.DryRun {
		f.nextID++
		review.ID = f.nextID
		return review, nil
	}
	if err := f.db.Create(review).Error; err != nil {
		return nil, err
	}
	return review, nil
}

// CreateLike records a like by the given user on the given post.
func (f *Factory) CreateLike(user *models.User, post *models.Post) error {
	if f.opts.DryRun {
		return nil
	}
	return f.db.Create(&models.Like{UserID: user.ID, PostID: post.ID}).Error
}
