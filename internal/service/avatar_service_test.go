package service

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"forkful/internal/config"
	"forkful/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func avatarTestService(t *testing.T, repo *profileRepoStub) *AvatarService {
	t.Helper()
	return NewAvatarService(repo, &config.Config{
		UploadDir:             t.TempDir(),
		AvatarMaxUploadSizeMB: 1,
	})
}

func TestAvatarService_Upload(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("stores uuid-named jpeg and updates profile", func(t *testing.T) {
		var saved *models.Profile
		repo := ownedProfileRepo()
		repo.updateFn = func(_ context.Context, profile *models.Profile) error {
			saved = profile
			return nil
		}
		svc := avatarTestService(t, repo)

		profile, err := svc.Upload(ctx, UploadAvatarInput{
			RequesterID: 1,
			ProfileID:   1,
			Filename:    "me.png",
			ContentType: "image/png",
			Content:     pngBytes(t, 64, 64),
		})
		require.NoError(t, err)
		require.NotNil(t, saved)
		assert.True(t, strings.HasPrefix(profile.Image, AvatarDir+"/"))
		assert.True(t, strings.HasSuffix(profile.Image, ".jpg"))
		assert.NotContains(t, profile.Image, "me.png")

		full, err := svc.ResolveForServing(profile.Image)
		require.NoError(t, err)
		_, statErr := os.Stat(full)
		assert.NoError(t, statErr)
	})

	t.Run("non-owner is rejected", func(t *testing.T) {
		svc := avatarTestService(t, ownedProfileRepo())
		profile, err := svc.Upload(ctx, UploadAvatarInput{
			RequesterID: 2,
			ProfileID:   1,
			Content:     pngBytes(t, 8, 8),
		})
		assert.Nil(t, profile)
		assertForbiddenError(t, err)
	})

	t.Run("non-image payload is rejected", func(t *testing.T) {
		svc := avatarTestService(t, ownedProfileRepo())
		profile, err := svc.Upload(ctx, UploadAvatarInput{
			RequesterID: 1,
			ProfileID:   1,
			Content:     []byte("definitely not an image"),
		})
		assert.Nil(t, profile)
		assertValidationError(t, err)
	})

	t.Run("empty upload is rejected", func(t *testing.T) {
		svc := avatarTestService(t, ownedProfileRepo())
		profile, err := svc.Upload(ctx, UploadAvatarInput{RequesterID: 1, ProfileID: 1})
		assert.Nil(t, profile)
		assertValidationError(t, err)
	})

	t.Run("db failure removes the written file", func(t *testing.T) {
		repo := ownedProfileRepo()
		repo.updateFn = func(_ context.Context, _ *models.Profile) error {
			return models.NewInternalError(assert.AnError)
		}
		dir := t.TempDir()
		svc := NewAvatarService(repo, &config.Config{UploadDir: dir, AvatarMaxUploadSizeMB: 1})

		profile, err := svc.Upload(ctx, UploadAvatarInput{
			RequesterID: 1,
			ProfileID:   1,
			Content:     pngBytes(t, 8, 8),
		})
		assert.Nil(t, profile)
		assert.Error(t, err)

		entries, readErr := os.ReadDir(filepath.Join(dir, AvatarDir))
		if readErr == nil {
			assert.Empty(t, entries)
		}
	})
}

func TestAvatarService_ResolveForServing_RejectsTraversal(t *testing.T) {
	t.Parallel()

	svc := avatarTestService(t, noopProfileRepo())
	_, err := svc.ResolveForServing("../../etc/passwd")
	assert.Error(t, err)
}
