package seed

import (
	"fmt"
	"log"

	"atelier/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	NumWorks    int
	ShouldClean bool
	SkipBcrypt  bool
	MaxDays     int
}

// Seed populates the database with test data: users, posts with comments
// and likes, and shared works with reviews.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Starting database seeding with %d users, %d posts, %d works...",
		opts.NumUsers, opts.NumPosts, opts.NumWorks)

	if opts.ShouldClean {
		if err := ClearAll(db); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	factory := NewFactory(db, SeedOptions{
		SkipBcrypt: opts.SkipBcrypt,
		MaxDays:    opts.MaxDays,
	})

	users, err := createUsers(factory, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d test users created", len(users))

	posts, err := createPosts(factory, users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("✓ %d posts created", len(posts))

	if err := createEngagement(factory, users, posts); err != nil {
		return fmt.Errorf("failed to create comments and likes: %w", err)
	}
	log.Println("✓ comments and likes created")

	works, err := createWorks(factory, users, opts.NumWorks)
	if err != nil {
		return fmt.Errorf("failed to create works: %w", err)
	}
	log.Printf("✓ %d works created", len(works))

	if err := createReviews(factory, users, works); err != nil {
		return fmt.Errorf("failed to create reviews: %w", err)
	}
	log.Println("✓ reviews created")

	log.Println("🎉 Database seeding completed successfully!")
	return nil
}

// ClearAll truncates every seeded table and resets identity sequences.
// Postgres only; sqlite-backed tests clear tables themselves.
func ClearAll(db *gorm.DB) error {
	log.Println("🗑️  Clearing existing data...")
	sql := `TRUNCATE TABLE reviews, work_tags, work_images, works,
		comment_likes, likes, comments, post_tags, post_images, posts, users
		RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}

func createUsers(factory *Factory, n int) ([]*models.User, error) {
	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		user, err := factory.CreateUser()
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func createPosts(factory *Factory, users []*models.User, n int) ([]*models.Post, error) {
	if len(users) == 0 {
		return nil, nil
	}
	posts := make([]*models.Post, 0, n)
	for i := 0; i < n; i++ {
		author := users[factory.rng.Intn(len(users))]
		post, err := factory.CreatePost(author)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

// createEngagement adds comments, threaded replies and likes so seeded
// posts render with realistic counters.
func createEngagement(factory *Factory, users []*models.User, posts []*models.Post) error {
	for _, post := range posts {
		numComments := factory.rng.Intn(5)
		var parents []*models.Comment
		for i := 0; i < numComments; i++ {
			commenter := users[factory.rng.Intn(len(users))]
			comment, err := factory.CreateComment(commenter, post, nil)
			if err != nil {
				return err
			}
			parents = append(parents, comment)
		}
		// reply to roughly a third of top-level comments
		for _, parent := range parents {
			if factory.rng.Intn(3) != 0 {
				continue
			}
			replier := users[factory.rng.Intn(len(users))]
			if _, err := factory.CreateComment(replier, post, parent); err != nil {
				return err
			}
		}

		numLikes := factory.rng.Intn(len(users) + 1)
		for _, liker := range pickUsers(factory, users, numLikes) {
			if err := factory.CreateLike(liker, post); err != nil {
				return err
			}
		}
	}
	return nil
}

func createWorks(factory *Factory, users []*models.User, n int) ([]*models.Work, error) {
	if len(users) == 0 {
		return nil, nil
	}
	works := make([]*models.Work, 0, n)
	for i := 0; i < n; i++ {
		author := users[factory.rng.Intn(len(users))]
		work, err := factory.CreateWork(author)
		if err != nil {
			return nil, err
		}
		works = append(works, work)
	}
	return works, nil
}

// createReviews adds up to a handful of reviews per work, never by the
// work's author and never twice by the same user.
func createReviews(factory *Factory, users []*models.User, works []*models.Work) error {
	for _, work := range works {
		numReviews := factory.rng.Intn(4)
		reviewers := pickUsers(factory, users, numReviews)
		for _, reviewer := range reviewers {
			if reviewer.ID == work.UserID {
				continue
			}
			if _, err := factory.CreateReview(reviewer, work); err != nil {
				return err
			}
		}
	}
	return nil
}

// pickUsers returns up to n distinct users in random order.
func pickUsers(factory *Factory, users []*models.User, n int) []*models.User {
	if n > len(users) {
		n = len(users)
	}
	perm := factory.rng.Perm(len(users))
	picked := make([]*models.User, 0, n)
	for _, idx := range perm[:n] {
		picked = append(picked, users[idx])
	}
	return picked
}
