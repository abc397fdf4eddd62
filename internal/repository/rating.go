package repository

import (
	"context"
	"errors"

	"forkful/internal/cache"
	"forkful/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RatingRepository defines persistence operations for rating aggregates.
// Aggregates arrive from an external scorer; the app only reads and
// upserts them.
type RatingRepository interface {
	GetByItemID(ctx context.Context, itemID uint) (*models.Rating, error)
	Upsert(ctx context.Context, rating *models.Rating) error
}

type ratingRepository struct {
	db *gorm.DB
}

// NewRatingRepository returns a new RatingRepository implementation.
func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) GetByItemID(ctx context.Context, itemID uint) (*models.Rating, error) {
	var rating models.Rating
	if err := r.db.WithContext(ctx).Where("item_id = ?", itemID).First(&rating).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Rating", itemID)
		}
		return nil, models.NewInternalError(err)
	}
	return &rating, nil
}

func (r *ratingRepository) Upsert(ctx context.Context, rating *models.Rating) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "item_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"average", "count", "updated_at"}),
	}).Create(rating).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateItemsList(ctx)
	return nil
}
