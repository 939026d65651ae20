// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"microblog/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// Seeder populates the database with demo users and posts.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
	rng     *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	// #nosec G404: acceptable for seeding
	return &Seeder{
		db:      db,
		factory: NewFactory(db),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run seeds the database according to opts.
func (s *Seeder) Run(opts Options) error {
	log.Printf("Seeding %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			return fmt.Errorf("clear existing data: %w", err)
		}
	}

	users, err := s.seedUsers(opts.NumUsers)
	if err != nil {
		return fmt.Errorf("seed users: %w", err)
	}
	log.Printf("✓ %d users created", len(users))

	posts, err := s.seedPosts(users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("seed posts: %w", err)
	}
	log.Printf("✓ %d posts created", len(posts))

	return nil
}

// ClearAll removes all seeded data. Posts go first to satisfy the
// foreign key on user.
func (s *Seeder) ClearAll() error {
	if err := s.db.Exec("DELETE FROM post").Error; err != nil {
		return fmt.Errorf("clear posts: %w", err)
	}
	if err := s.db.Exec("DELETE FROM \"user\"").Error; err != nil {
		return fmt.Errorf("clear users: %w", err)
	}
	return nil
}

func (s *Seeder) seedUsers(count int) ([]*models.User, error) {
	users := make([]*models.User, 0, count)
	for i := 0; i < count; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

// seedPosts spreads posts across users with a realistic timestamp spread
// over the last 90 days. Newest-first ordering in the timeline only looks
// right when the timestamps are not all identical.
func (s *Seeder) seedPosts(users []*models.User, count int) ([]*models.Post, error) {
	if len(users) == 0 {
		return nil, nil
	}

	posts := make([]*models.Post, 0, count)
	for i := 0; i < count; i++ {
		author := users[s.rng.Intn(len(users))]
		post, err := s.factory.CreatePost(author, func(p *models.Post) {
			daysBack := s.rng.Intn(90)
			minsBack := s.rng.Intn(24 * 60)
			p.Timestamp = time.Now().UTC().
				Add(-time.Duration(daysBack) * 24 * time.Hour).
				Add(-time.Duration(minsBack) * time.Minute)
		})
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}
