package cache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristianoliveira/notitray/internal/domain"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestSnapshot_EmptyCache(t *testing.T) {
	c := openTestCache(t)

	_, _, err := c.Snapshot()
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestReplaceAllAndSnapshot(t *testing.T) {
	c := openTestCache(t)

	readAt := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	notifs := []domain.Notification{
		{
			ID:        "b",
			SubjectID: "user-1",
			Title:     "second",
			Message:   "body",
			Kind:      domain.KindWarning,
			IsRead:    false,
			Metadata:  map[string]any{"env": "prod"},
			CreatedAt: time.Date(2026, 8, 30, 9, 30, 0, 0, time.UTC),
			UpdatedAt: time.Date(2026, 8, 30, 9, 30, 0, 0, time.UTC),
		},
		{
			ID:        "a",
			Title:     "first",
			Kind:      domain.KindInfo,
			IsRead:    true,
			ReadAt:    &readAt,
			CreatedAt: time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC),
		},
	}

	require.NoError(t, c.ReplaceAll(notifs, 1))

	got, unread, err := c.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, 1, unread)
	require.Len(t, got, 2)

	// Store order survives the roundtrip.
	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, "a", got[1].ID)

	assert.Equal(t, "user-1", got[0].SubjectID)
	assert.Equal(t, domain.KindWarning, got[0].Kind)
	assert.Equal(t, "prod", got[0].Metadata["env"])
	assert.True(t, got[0].CreatedAt.Equal(notifs[0].CreatedAt))

	assert.True(t, got[1].IsRead)
	require.NotNil(t, got[1].ReadAt)
	assert.True(t, got[1].ReadAt.Equal(readAt))
}

func TestReplaceAll_ReplacesPreviousSnapshot(t *testing.T) {
	c := openTestCache(t)

	require.NoError(t, c.ReplaceAll([]domain.Notification{
		{ID: "old", Title: "old", Kind: domain.KindInfo},
	}, 1))
	require.NoError(t, c.ReplaceAll([]domain.Notification{
		{ID: "new", Title: "new", Kind: domain.KindInfo, IsRead: true},
	}, 0))

	got, unread, err := c.Snapshot()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "new", got[0].ID)
	assert.Zero(t, unread)
}

func TestReplaceAll_EmptyListStillSyncs(t *testing.T) {
	c := openTestCache(t)

	require.NoError(t, c.ReplaceAll(nil, 0))

	got, unread, err := c.Snapshot()
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Zero(t, unread)
}

func TestSyncedAt(t *testing.T) {
	c := openTestCache(t)

	_, err := c.SyncedAt()
	assert.Error(t, err, "no sync recorded yet")

	before := time.Now().Add(-time.Second)
	require.NoError(t, c.ReplaceAll(nil, 0))

	at, err := c.SyncedAt()
	require.NoError(t, err)
	assert.True(t, at.After(before))
}
