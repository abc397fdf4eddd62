package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"forkful/internal/authz"
	"forkful/internal/config"
	"forkful/internal/models"
	"forkful/internal/repository"

	"github.com/google/uuid"
	xdraw "golang.org/x/image/draw"

	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/webp" // Register WebP decoder
)

const (
	DefaultAvatarUploadDir       = "/tmp/forkful/uploads"
	DefaultAvatarMaxUploadSizeMB = 5

	// AvatarDir is the subdirectory of the upload root where profile
	// pictures land; its name is part of every stored image path.
	AvatarDir = "profile_pictures"

	avatarMaxSize     = 512
	avatarJPEGQuality = 85
)

type UploadAvatarInput struct {
	RequesterID uint
	ProfileID   uint
	Filename    string
	ContentType string
	Content     []byte
}

type AvatarService struct {
	profileRepo        repository.ProfileRepository
	uploadDir          string
	maxUploadSizeBytes int64
}

func NewAvatarService(profileRepo repository.ProfileRepository, cfg *config.Config) *AvatarService {
	uploadDir := DefaultAvatarUploadDir
	maxUploadSizeMB := DefaultAvatarMaxUploadSizeMB

	if cfg != nil {
		if cfg.UploadDir != "" {
			uploadDir = cfg.UploadDir
		}
		if cfg.AvatarMaxUploadSizeMB > 0 {
			maxUploadSizeMB = cfg.AvatarMaxUploadSizeMB
		}
	}

	return &AvatarService{
		profileRepo:        profileRepo,
		uploadDir:          uploadDir,
		maxUploadSizeBytes: int64(maxUploadSizeMB) * 1024 * 1024,
	}
}

// Upload replaces a profile's picture. The stored filename is a fresh
// UUID so uploads never collide or overwrite each other; the original
// filename only contributes its place in logs.
func (s *AvatarService) Upload(ctx context.Context, in UploadAvatarInput) (*models.Profile, error) {
	if len(in.Content) == 0 {
		return nil, models.NewValidationError("No file uploaded")
	}
	if int64(len(in.Content)) > s.maxUploadSizeBytes {
		return nil, models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", s.maxUploadSizeBytes/(1024*1024)))
	}

	profile, err := s.profileRepo.GetByID(ctx, in.ProfileID)
	if err != nil {
		return nil, err
	}
	if !authz.CanMutate(in.RequesterID, profile) {
		return nil, models.NewForbiddenError("You can only change your own profile picture")
	}

	detectedType := http.DetectContentType(in.Content)
	if !isAllowedAvatarMIME(detectedType) {
		return nil, models.NewValidationError("Invalid image type")
	}

	decoded, format, err := image.Decode(bytes.NewReader(in.Content))
	if err != nil {
		return nil, models.NewValidationError("Invalid image file")
	}
	if provided := normalizeAvatarContentType(in.ContentType); strings.HasPrefix(provided, "image/") {
		if !avatarContentTypeMatches(provided, format) {
			return nil, models.NewValidationError("Image content type mismatch")
		}
	}

	resized := downscaleAvatar(decoded, avatarMaxSize)
	encoded, err := encodeAvatarJPEG(resized)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	relPath := filepath.ToSlash(filepath.Join(AvatarDir, uuid.New().String()+".jpg"))
	absPath := filepath.Join(s.uploadDir, relPath)
	if err := writeAvatarFile(absPath, encoded); err != nil {
		return nil, models.NewInternalError(err)
	}

	oldImage := profile.Image
	profile.Image = relPath
	if err := s.profileRepo.Update(ctx, profile); err != nil {
		// The DB still points at the old file; drop the orphan.
		_ = os.Remove(absPath)
		return nil, err
	}

	if oldImage != "" && oldImage != models.DefaultProfileImage {
		_ = os.Remove(filepath.Join(s.uploadDir, oldImage))
	}

	return profile, nil
}

// ResolveForServing maps a stored image path to its file on disk.
func (s *AvatarService) ResolveForServing(imagePath string) (string, error) {
	cleaned := filepath.Clean("/" + imagePath)
	full := filepath.Join(s.uploadDir, cleaned)
	if !strings.HasPrefix(full, filepath.Clean(s.uploadDir)+string(os.PathSeparator)) {
		return "", models.NewValidationError("Invalid image path")
	}
	if _, err := os.Stat(full); err != nil {
		if os.IsNotExist(err) {
			return "", models.NewNotFoundError("Image", imagePath)
		}
		return "", models.NewInternalError(err)
	}
	return full, nil
}

func downscaleAvatar(src image.Image, maxSize int) image.Image {
	bounds := src.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	if w <= maxSize && h <= maxSize {
		return src
	}

	scale := float64(maxSize) / float64(w)
	if sh := float64(maxSize) / float64(h); sh < scale {
		scale = sh
	}
	newW := int(float64(w) * scale)
	newH := int(float64(h) * scale)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)
	return dst
}

func encodeAvatarJPEG(img image.Image) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: avatarJPEGQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func isAllowedAvatarMIME(contentType string) bool {
	switch normalizeAvatarContentType(contentType) {
	case "image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp":
		return true
	default:
		return false
	}
}

func normalizeAvatarContentType(contentType string) string {
	if contentType == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return strings.ToLower(strings.TrimSpace(mediaType))
}

func avatarContentTypeMatches(provided, decodedFormat string) bool {
	switch strings.ToLower(decodedFormat) {
	case "jpeg", "jpg":
		return provided == "image/jpeg" || provided == "image/jpg"
	case "png":
		return provided == "image/png"
	case "gif":
		return provided == "image/gif"
	case "webp":
		return provided == "image/webp"
	default:
		return false
	}
}

func writeAvatarFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
