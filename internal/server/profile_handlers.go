package server

import (
	"io"
	"strings"

	"forkful/internal/models"
	"forkful/internal/service"

	"github.com/gofiber/fiber/v2"
)

// profileImageURL turns a stored image path into an absolute URL.
// Already-absolute URLs (e.g. external defaults) pass through.
func (s *Server) profileImageURL(c *fiber.Ctx, image string) string {
	if image == "" {
		image = models.DefaultProfileImage
	}
	if strings.HasPrefix(image, "http://") || strings.HasPrefix(image, "https://") {
		return image
	}
	base := s.config.BaseURL
	if base == "" {
		base = c.Protocol() + "://" + c.Hostname()
	}
	return strings.TrimRight(base, "/") + "/media/" + strings.TrimLeft(image, "/")
}

func (s *Server) profileResponse(c *fiber.Ctx, profile *models.Profile) fiber.Map {
	return fiber.Map{
		"id":       profile.ID,
		"user":     profile.User,
		"image":    s.profileImageURL(c, profile.Image),
		"location": profile.Location,
	}
}

// GetProfile handles GET /api/profiles/:id
func (s *Server) GetProfile(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	profile, err := s.profileService.GetProfile(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(s.profileResponse(c, profile))
}

// UpdateProfile handles PUT/PATCH /api/profiles/:id. A nested "user"
// object cascades username/email changes to the account atomically.
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Location *string                         `json:"location"`
		User     *service.UpdateProfileUserInput `json:"user"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	profile, err := s.profileService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		RequesterID: currentUserID(c),
		ProfileID:   id,
		Location:    req.Location,
		User:        req.User,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(s.profileResponse(c, profile))
}

// UploadProfileImage handles POST /api/profiles/:id/upload-image with a
// multipart "image" field. Responds with {"id": ..., "image": <url>}.
func (s *Server) UploadProfileImage(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("An image file is required"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Could not read uploaded file"))
	}
	defer func() { _ = file.Close() }()

	content, err := io.ReadAll(file)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Could not read uploaded file"))
	}

	profile, err := s.avatarService.Upload(c.Context(), service.UploadAvatarInput{
		RequesterID: currentUserID(c),
		ProfileID:   id,
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Content:     content,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{
		"id":    profile.ID,
		"image": s.profileImageURL(c, profile.Image),
	})
}

// ServeMedia handles GET /media/* for uploaded profile pictures.
func (s *Server) ServeMedia(c *fiber.Ctx) error {
	path, err := s.avatarService.ResolveForServing(c.Params("*"))
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.SendFile(path)
}
