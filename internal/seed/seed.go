package seed

import (
	"fmt"
	"log"

	"helenite/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// Seeder populates the database with generated accounts, friendships and
// engagement. Development and testing only.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db)}
}

// Run executes the full seeding pipeline.
func (s *Seeder) Run(opts Options) error {
	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			return fmt.Errorf("cleanup failed: %w", err)
		}
	}

	users, err := s.SeedUsers(opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d users created", len(users))

	if err := s.SeedFriendships(users); err != nil {
		return fmt.Errorf("failed to create friendships: %w", err)
	}
	log.Println("✓ friendships and pending requests created")

	posts, err := s.SeedEngagement(users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("✓ %d posts created with likes and comments", len(posts))

	return nil
}

// ClearAll removes all seeded data, children before parents.
func (s *Seeder) ClearAll() error {
	log.Println("🗑️  Clearing existing data...")
	tables := []string{
		"comments", "likes", "posts",
		"profile_friends", "friend_requests",
		"profiles", "users",
	}
	for _, table := range tables {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}

// SeedUsers creates count users with profiles. The first account is a fixed
// demo login so the frontend always has a known user to sign in with.
func (s *Seeder) SeedUsers(count int) ([]*models.User, error) {
	users := make([]*models.User, 0, count)

	if count > 0 {
		demo, err := s.factory.CreateUser(func(user *models.User, profile *models.Profile) {
			user.Username = "demo"
			user.Email = "demo@example.com"
			profile.FirstName = "Demo"
			profile.LastName = "User"
			profile.Slug = "demo"
			profile.Private = false
		})
		if err != nil {
			return nil, err
		}
		users = append(users, demo)
	}

	for i := len(users); i < count; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			// Username collisions are rare but possible with generated names.
			log.Printf("Skipping user after create failure: %v", err)
			continue
		}
		users = append(users, user)

		if i > 0 && i%100 == 0 {
			log.Printf("Created %d users...", i)
		}
	}

	return users, nil
}

// SeedFriendships links each user to a handful of random others and leaves a
// few requests pending so the requests UI has something to show.
func (s *Seeder) SeedFriendships(users []*models.User) error {
	if len(users) < 2 {
		return nil
	}

	linked := make(map[[2]uint]bool)
	pair := func(a, b uint) [2]uint {
		if a > b {
			a, b = b, a
		}
		return [2]uint{a, b}
	}

	for _, user := range users {
		friendCount := gofakeit.Number(1, 5)
		for j := 0; j < friendCount; j++ {
			other := users[gofakeit.Number(0, len(users)-1)]
			if other.ID == user.ID || linked[pair(user.ID, other.ID)] {
				continue
			}
			linked[pair(user.ID, other.ID)] = true

			// Roughly one in five stays a pending request.
			if gofakeit.Number(0, 4) == 0 {
				if _, err := s.factory.CreatePendingRequest(user, other); err != nil {
					return err
				}
				continue
			}
			if err := s.factory.CreateFriendship(user.Profile, other.Profile); err != nil {
				return err
			}
		}
	}

	return nil
}

// SeedEngagement creates posts spread over the user base, then sprinkles
// likes and comments on them.
func (s *Seeder) SeedEngagement(users []*models.User, numPosts int) ([]*models.Post, error) {
	if len(users) == 0 {
		return nil, nil
	}

	posts := make([]*models.Post, 0, numPosts)
	for i := 0; i < numPosts; i++ {
		author := users[gofakeit.Number(0, len(users)-1)]
		post, err := s.factory.CreatePost(author)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)

		if i > 0 && i%100 == 0 {
			log.Printf("Created %d posts...", i)
		}
	}

	for _, post := range posts {
		for j := 0; j < gofakeit.Number(0, 8); j++ {
			liker := users[gofakeit.Number(0, len(users)-1)]
			if err := s.factory.CreateLike(liker, post); err != nil {
				return nil, err
			}
		}
		for j := 0; j < gofakeit.Number(0, 3); j++ {
			commenter := users[gofakeit.Number(0, len(users)-1)]
			if _, err := s.factory.CreateComment(commenter, post); err != nil {
				return nil, err
			}
		}
	}

	return posts, nil
}
