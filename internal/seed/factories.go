// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"forkful/internal/models"
	"forkful/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedPassword is the plaintext password shared by all generated users.
const SeedPassword = "password123"

// Factory builds domain entities and persists them to the database.
// Ratings go through the repository so the seeder writes them the same
// way the aggregator ingest does.
type Factory struct {
	db      *gorm.DB
	ratings repository.RatingRepository
	r       *rand.Rand
	// bcrypt of SeedPassword, computed once
	hashedPassword string
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	hashed, _ := bcrypt.GenerateFromPassword([]byte(SeedPassword), bcrypt.MinCost)
	return &Factory{
		db:             db,
		ratings:        repository.NewRatingRepository(db),
		r:              rand.New(rand.NewSource(time.Now().UnixNano())),
		hashedPassword: string(hashed),
	}
}

// CreateUser constructs and persists a sample user with a profile.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Username: fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 999)),
		Email:    gofakeit.Email(),
		Password: f.hashedPassword,
	}
	for _, override := range overrides {
		override(user)
	}

	err := f.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		profile := &models.Profile{
			UserID:   user.ID,
			Image:    models.DefaultProfileImage,
			Location: gofakeit.City(),
		}
		return tx.Create(profile).Error
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// mealNames draws from gofakeit's food generators so the listing reads
// like actual recipes rather than lorem ipsum.
func (f *Factory) mealName() string {
	switch f.r.Intn(5) {
	case 0:
		return gofakeit.Breakfast()
	case 1:
		return gofakeit.Lunch()
	case 2:
		return gofakeit.Dinner()
	case 3:
		return gofakeit.Dessert()
	default:
		return gofakeit.Snack()
	}
}

// CreateItem constructs and persists a recipe owned by the given user.
func (f *Factory) CreateItem(user *models.User, overrides ...func(*models.Item)) (*models.Item, error) {
	// 10 minutes to ~3 hours, whole minutes
	cookingMinutes := 10 + f.r.Intn(170)

	item := &models.Item{
		UserID:      user.ID,
		Name:        f.mealName(),
		Description: gofakeit.Paragraph(1, 3, 8, "\n"),
		Image:       fmt.Sprintf("https://picsum.photos/seed/%s/800/600", gofakeit.UUID()),
		CookingTime: models.Duration(time.Duration(cookingMinutes) * time.Minute),
		Views:       uint(f.r.Intn(500)),
	}
	for _, override := range overrides {
		override(item)
	}

	if err := f.db.Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// CreateRating upserts the aggregate row the rating component would
// normally produce. Items without one are invisible in listings.
func (f *Factory) CreateRating(item *models.Item, overrides ...func(*models.Rating)) (*models.Rating, error) {
	rating := &models.Rating{
		ItemID:  item.ID,
		Average: 1 + f.r.Float64()*4, // 1.0 .. 5.0
		Count:   1 + f.r.Intn(40),
	}
	for _, override := range overrides {
		override(rating)
	}

	ctx := context.Background()
	if err := f.ratings.Upsert(ctx, rating); err != nil {
		return nil, err
	}
	// The conflict path does not populate the struct; read back the row.
	return f.ratings.GetByItemID(ctx, rating.ItemID)
}

// CreateComment persists a comment by the given user on the given recipe.
func (f *Factory) CreateComment(user *models.User, item *models.Item, overrides ...func(*models.Comment)) (*models.Comment, error) {
	comment := &models.Comment{
		UserID: user.ID,
		ItemID: item.ID,
		Text:   gofakeit.Sentence(8 + f.r.Intn(10)),
	}
	for _, override := range overrides {
		override(comment)
	}

	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}
