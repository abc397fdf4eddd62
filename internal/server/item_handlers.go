package server

import (
	"forkful/internal/models"
	"forkful/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetItems handles GET /api/items. Only rated recipes appear, best
// average first, three per page.
func (s *Server) GetItems(c *fiber.Ctx) error {
	query := c.Query("search", c.Query("q"))
	page := parsePage(c)

	itemPage, err := s.itemService.ListItems(c.Context(), query, page)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(itemPage)
}

// GetItem handles GET /api/items/:id. Every hit counts as a view.
func (s *Server) GetItem(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	item, err := s.itemService.GetItemDetail(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(item)
}

// CreateItem handles POST /api/items
func (s *Server) CreateItem(c *fiber.Ctx) error {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Image       string `json:"image"`
		CookingTime string `json:"cooking_time"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	item, err := s.itemService.CreateItem(c.Context(), service.CreateItemInput{
		UserID:      currentUserID(c),
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		CookingTime: req.CookingTime,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// UpdateItem handles PUT/PATCH /api/items/:id. Absent fields are left
// untouched.
func (s *Server) UpdateItem(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		Image       *string `json:"image"`
		CookingTime *string `json:"cooking_time"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	item, err := s.itemService.UpdateItem(c.Context(), service.UpdateItemInput{
		UserID:      currentUserID(c),
		ItemID:      id,
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		CookingTime: req.CookingTime,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(item)
}

// DeleteItem handles DELETE /api/items/:id
func (s *Server) DeleteItem(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.itemService.DeleteItem(c.Context(), service.DeleteItemInput{
		UserID: currentUserID(c),
		ItemID: id,
	}); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
