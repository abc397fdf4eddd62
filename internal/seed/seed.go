package seed

import (
	"fmt"
	"log"

	"forkful/internal/models"

	"gorm.io/gorm"
)

// Seeder populates the database with realistic demo data.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db)}
}

// ClearAll deletes all seeded data in foreign-key order.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")

	tables := []string{"comments", "ratings", "items", "profiles", "users"}
	for _, table := range tables {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	return nil
}

// Seed creates numUsers accounts, each with recipes, and spreads
// ratings and comments across them. Roughly one recipe in five is left
// unrated so the seeded listing exercises the rated-only filter.
func (s *Seeder) Seed(numUsers, numItems int) error {
	users := make([]*models.User, 0, numUsers)
	for i := 0; i < numUsers; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return fmt.Errorf("creating user: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("Created %d users", len(users))

	items := make([]*models.Item, 0, numItems)
	rated := 0
	for i := 0; i < numItems; i++ {
		owner := users[s.factory.r.Intn(len(users))]
		item, err := s.factory.CreateItem(owner)
		if err != nil {
			return fmt.Errorf("creating item: %w", err)
		}
		items = append(items, item)

		if s.factory.r.Intn(5) != 0 {
			if _, err := s.factory.CreateRating(item); err != nil {
				return fmt.Errorf("creating rating: %w", err)
			}
			rated++
		}
	}
	log.Printf("Created %d recipes (%d rated)", len(items), rated)

	commentCount := 0
	for _, item := range items {
		n := s.factory.r.Intn(5)
		for i := 0; i < n; i++ {
			// Pick a commenter other than the author when possible
			idx := s.factory.r.Intn(len(users))
			if len(users) > 1 && users[idx].ID == item.UserID {
				idx = (idx + 1) % len(users)
			}
			if _, err := s.factory.CreateComment(users[idx], item); err != nil {
				return fmt.Errorf("creating comment: %w", err)
			}
			commentCount++
		}
	}
	log.Printf("Created %d comments", commentCount)

	return nil
}
