// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"
	"strings"

	"forkful/internal/cache"
	"forkful/internal/models"

	"gorm.io/gorm"
)

// NoResultsInfo is the informational message attached to an empty listing page.
const NoResultsInfo = "No results found."

// ItemRepository defines the interface for recipe data operations
type ItemRepository interface {
	Create(ctx context.Context, item *models.Item) error
	GetByID(ctx context.Context, id uint) (*models.Item, error)
	GetDetail(ctx context.Context, id uint) (*models.Item, error)
	List(ctx context.Context, query string, page int) (*models.ItemPage, error)
	ListByUserID(ctx context.Context, userID uint) ([]*models.Item, error)
	Update(ctx context.Context, item *models.Item) error
	Delete(ctx context.Context, id uint) error
}

// itemRepository implements ItemRepository
type itemRepository struct {
	db *gorm.DB
}

// NewItemRepository creates a new item repository
func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) Create(ctx context.Context, item *models.Item) error {
	err := r.db.WithContext(ctx).Create(item).Error
	if err == nil {
		cache.InvalidateItemsList(ctx)
	}
	return err
}

// GetByID loads the item without touching its view counter. Mutation
// handlers use it for the ownership check before writing.
func (r *itemRepository) GetByID(ctx context.Context, id uint) (*models.Item, error) {
	var item models.Item
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Rating").
		First(&item, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Item", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &item, nil
}

// GetDetail loads the full item for display and increments its view count
// in the same transaction. UpdateColumn bypasses the autoUpdateTime hook so
// reads never shift update_date.
func (r *itemRepository) GetDetail(ctx context.Context, id uint) (*models.Item, error) {
	var item models.Item
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Preload("User").
			Preload("Rating").
			Preload("Comments", func(db *gorm.DB) *gorm.DB {
				return db.Order("comments.created_at ASC")
			}).
			Preload("Comments.User").
			First(&item, id).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Item{}).
			Where("id = ?", id).
			UpdateColumn("views", gorm.Expr("views + 1")).Error; err != nil {
			return err
		}
		item.Views++
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Item", id)
		}
		return nil, models.NewInternalError(err)
	}
	cache.InvalidateItemsList(ctx)
	return &item, nil
}

// List returns one page of rated items, newest-best first. Unrated items
// are excluded via the INNER JOIN on ratings; the search term matches the
// recipe name, description, or author username case-insensitively.
func (r *itemRepository) List(ctx context.Context, query string, page int) (*models.ItemPage, error) {
	if page < 1 {
		page = 1
	}

	var itemPage models.ItemPage
	trimmed := strings.TrimSpace(query)

	// Only the unfiltered first page is hot enough to cache.
	if trimmed == "" && page == 1 {
		err := cache.Aside(ctx, cache.ItemsFirstPageKey, &itemPage, cache.ItemsListTTL, func() error {
			return r.fetchPage(ctx, trimmed, page, &itemPage)
		})
		if err != nil {
			return nil, err
		}
		return &itemPage, nil
	}

	if err := r.fetchPage(ctx, trimmed, page, &itemPage); err != nil {
		return nil, err
	}
	return &itemPage, nil
}

func (r *itemRepository) fetchPage(ctx context.Context, query string, page int, out *models.ItemPage) error {
	base := r.db.WithContext(ctx).
		Model(&models.Item{}).
		Joins("INNER JOIN ratings ON ratings.item_id = items.id").
		Joins("INNER JOIN users ON users.id = items.user_id")

	if query != "" {
		like := "%" + strings.ToLower(query) + "%"
		base = base.Where(
			"LOWER(items.name) LIKE ? OR LOWER(items.description) LIKE ? OR LOWER(users.username) LIKE ?",
			like, like, like,
		)
	}

	var count int64
	if err := base.Session(&gorm.Session{}).Count(&count).Error; err != nil {
		return err
	}

	var items []*models.Item
	err := base.Session(&gorm.Session{}).
		Preload("User").
		Preload("Rating").
		Order("ratings.average DESC, items.id ASC").
		Limit(models.ItemPageSize).
		Offset((page - 1) * models.ItemPageSize).
		Find(&items).Error
	if err != nil {
		return err
	}

	totalPages := int(count) / models.ItemPageSize
	if int(count)%models.ItemPageSize != 0 {
		totalPages++
	}

	out.Results = items
	out.Count = count
	out.Page = page
	out.PageSize = models.ItemPageSize
	out.TotalPages = totalPages
	out.Info = ""
	if len(items) == 0 {
		out.Info = NoResultsInfo
	}
	return nil
}

func (r *itemRepository) ListByUserID(ctx context.Context, userID uint) ([]*models.Item, error) {
	var items []*models.Item
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Rating").
		Where("user_id = ?", userID).
		Order("publish_date DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *itemRepository) Update(ctx context.Context, item *models.Item) error {
	if err := r.db.WithContext(ctx).Save(item).Error; err != nil {
		return err
	}
	cache.InvalidateItemsList(ctx)
	return nil
}

func (r *itemRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("item_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("item_id = ?", id).Delete(&models.Rating{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Item{}, id).Error
	})
	if err != nil {
		return err
	}
	cache.InvalidateItemsList(ctx)
	return nil
}
