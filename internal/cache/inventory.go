package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix = "user:%d"
	// ItemsFirstPageKey caches only the unfiltered first page; filtered
	// and deeper pages always hit the database. Item detail is never
	// cached, so there is no per-item key.
	ItemsFirstPageKey = "items:page:1"
)

const (
	UserTTL      = 5 * time.Minute
	ItemsListTTL = time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateItemsList(ctx context.Context) {
	Invalidate(ctx, ItemsFirstPageKey)
}
