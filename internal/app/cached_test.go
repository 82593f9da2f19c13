package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristianoliveira/notitray/internal/cache"
	"github.com/cristianoliveira/notitray/internal/domain"
)

func TestCachedClient(t *testing.T) {
	c, err := cache.Open(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	defer c.Close() //nolint:errcheck // teardown

	require.NoError(t, c.ReplaceAll([]domain.Notification{
		{ID: "a", Title: "cached", Kind: domain.KindInfo},
	}, 1))

	client := NewCachedClient(c)

	notifs, err := client.ListNotifications(context.Background())
	require.NoError(t, err)
	require.Len(t, notifs, 1)
	assert.Equal(t, "cached", notifs[0].Title)

	unread, err := client.UnreadCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, unread)
}

func TestCachedClient_EmptyCache(t *testing.T) {
	c, err := cache.Open(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	defer c.Close() //nolint:errcheck // teardown

	_, err = NewCachedClient(c).ListNotifications(context.Background())
	assert.ErrorIs(t, err, cache.ErrEmpty)
}
