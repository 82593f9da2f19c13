package app

import (
	"context"

	"github.com/cristianoliveira/notitray/internal/cache"
	"github.com/cristianoliveira/notitray/internal/domain"
)

// CachedClient serves list and status reads from the local cache so the
// status bar keeps working when the server is unreachable. It satisfies
// StatusClient and ListClient.
type CachedClient struct {
	cache *cache.Cache
}

// NewCachedClient creates a cache-backed read client.
func NewCachedClient(c *cache.Cache) *CachedClient {
	if c == nil {
		panic("NewCachedClient: cache dependency cannot be nil")
	}
	return &CachedClient{cache: c}
}

// ListNotifications returns the cached notification list.
func (c *CachedClient) ListNotifications(_ context.Context) ([]domain.Notification, error) {
	notifs, _, err := c.cache.Snapshot()
	return notifs, err
}

// UnreadCount returns the cached unread count.
func (c *CachedClient) UnreadCount(_ context.Context) (int, error) {
	_, unread, err := c.cache.Snapshot()
	return unread, err
}
