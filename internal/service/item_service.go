// Package service contains the business logic between handlers and repositories.
package service

import (
	"context"
	"strings"

	"forkful/internal/authz"
	"forkful/internal/models"
	"forkful/internal/repository"
)

type ItemService struct {
	itemRepo repository.ItemRepository
}

type CreateItemInput struct {
	UserID      uint
	Name        string
	Description string
	Image       string
	CookingTime string
}

// UpdateItemInput carries a partial update; nil pointers leave the
// field untouched.
type UpdateItemInput struct {
	UserID      uint
	ItemID      uint
	Name        *string
	Description *string
	Image       *string
	CookingTime *string
}

type DeleteItemInput struct {
	UserID uint
	ItemID uint
}

func NewItemService(itemRepo repository.ItemRepository) *ItemService {
	return &ItemService{itemRepo: itemRepo}
}

const (
	maxItemNameLen = 200
	maxItemDescLen = 10000
)

func (s *ItemService) CreateItem(ctx context.Context, in CreateItemInput) (*models.Item, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, models.NewValidationError("Name is required")
	}
	if len(name) > maxItemNameLen {
		return nil, models.NewValidationError("Name too long (max 200 characters)")
	}
	if strings.TrimSpace(in.Description) == "" {
		return nil, models.NewValidationError("Description is required")
	}
	if len(in.Description) > maxItemDescLen {
		return nil, models.NewValidationError("Description too long (max 10000 characters)")
	}

	cookingTime, err := models.ParseDuration(in.CookingTime)
	if err != nil {
		return nil, models.NewValidationError("Cooking time must be in HH:MM:SS format")
	}

	image := strings.TrimSpace(in.Image)
	if image == "" {
		image = models.DefaultItemImage
	}

	item := &models.Item{
		UserID:      in.UserID,
		Name:        name,
		Description: in.Description,
		Image:       image,
		CookingTime: cookingTime,
	}
	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return s.itemRepo.GetByID(ctx, item.ID)
}

// ListItems returns one page of the rated-item listing, optionally
// filtered by a search term.
func (s *ItemService) ListItems(ctx context.Context, query string, page int) (*models.ItemPage, error) {
	return s.itemRepo.List(ctx, query, page)
}

// GetItemDetail loads an item for display. Each call counts as one view.
func (s *ItemService) GetItemDetail(ctx context.Context, id uint) (*models.Item, error) {
	return s.itemRepo.GetDetail(ctx, id)
}

// GetItem loads an item without recording a view.
func (s *ItemService) GetItem(ctx context.Context, id uint) (*models.Item, error) {
	return s.itemRepo.GetByID(ctx, id)
}

func (s *ItemService) UpdateItem(ctx context.Context, in UpdateItemInput) (*models.Item, error) {
	item, err := s.itemRepo.GetByID(ctx, in.ItemID)
	if err != nil {
		return nil, err
	}

	if !authz.CanMutate(in.UserID, item) {
		return nil, models.NewForbiddenError("You can only edit your own recipes")
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, models.NewValidationError("Name cannot be empty")
		}
		if len(name) > maxItemNameLen {
			return nil, models.NewValidationError("Name too long (max 200 characters)")
		}
		item.Name = name
	}
	if in.Description != nil {
		if strings.TrimSpace(*in.Description) == "" {
			return nil, models.NewValidationError("Description cannot be empty")
		}
		if len(*in.Description) > maxItemDescLen {
			return nil, models.NewValidationError("Description too long (max 10000 characters)")
		}
		item.Description = *in.Description
	}
	if in.Image != nil && strings.TrimSpace(*in.Image) != "" {
		item.Image = strings.TrimSpace(*in.Image)
	}
	if in.CookingTime != nil {
		cookingTime, err := models.ParseDuration(*in.CookingTime)
		if err != nil {
			return nil, models.NewValidationError("Cooking time must be in HH:MM:SS format")
		}
		item.CookingTime = cookingTime
	}

	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *ItemService) DeleteItem(ctx context.Context, in DeleteItemInput) error {
	item, err := s.itemRepo.GetByID(ctx, in.ItemID)
	if err != nil {
		return err
	}

	if !authz.CanMutate(in.UserID, item) {
		return models.NewForbiddenError("You can only delete your own recipes")
	}

	return s.itemRepo.Delete(ctx, in.ItemID)
}
