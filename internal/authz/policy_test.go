package authz

import (
	"testing"

	"forkful/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestCanMutate(t *testing.T) {
	t.Parallel()

	item := &models.Item{ID: 1, UserID: 7}
	comment := &models.Comment{ID: 2, UserID: 7, ItemID: 1}
	profile := &models.Profile{ID: 3, UserID: 7}

	t.Run("owner may mutate", func(t *testing.T) {
		t.Parallel()
		assert.True(t, CanMutate(7, item))
		assert.True(t, CanMutate(7, comment))
		assert.True(t, CanMutate(7, profile))
	})

	t.Run("non-owner may not mutate", func(t *testing.T) {
		t.Parallel()
		assert.False(t, CanMutate(8, item))
		assert.False(t, CanMutate(8, comment))
		assert.False(t, CanMutate(8, profile))
	})

	t.Run("anonymous may not mutate", func(t *testing.T) {
		t.Parallel()
		assert.False(t, CanMutate(0, item))
	})

	t.Run("nil resource never passes", func(t *testing.T) {
		t.Parallel()
		assert.False(t, CanMutate(7, nil))
	})
}
