package app

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cristianoliveira/notitray/internal/domain"
	"github.com/cristianoliveira/notitray/internal/store"
)

func TestNewFollowUseCase_PanicsOnNilStore(t *testing.T) {
	assert.Panics(t, func() { NewFollowUseCase(nil) })
}

func TestFollowHandleSnapshot(t *testing.T) {
	u := &FollowUseCase{}
	created := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)

	t.Run("prints only unseen notifications", func(t *testing.T) {
		var buf bytes.Buffer
		seen := map[string]bool{}
		snap := store.Snapshot{Notifications: []domain.Notification{
			{ID: "a", Kind: domain.KindInfo, Title: "first", CreatedAt: created},
			{ID: "b", Kind: domain.KindError, Title: "second", CreatedAt: created},
		}}

		u.handleSnapshot(snap, seen, &buf)
		assert.Contains(t, buf.String(), "first")
		assert.Contains(t, buf.String(), "second")

		buf.Reset()
		snap.Notifications = append([]domain.Notification{
			{ID: "c", Kind: domain.KindInfo, Title: "third", CreatedAt: created},
		}, snap.Notifications...)
		u.handleSnapshot(snap, seen, &buf)
		assert.Contains(t, buf.String(), "third")
		assert.NotContains(t, buf.String(), "first")
	})

	t.Run("loading snapshots are skipped", func(t *testing.T) {
		var buf bytes.Buffer
		snap := store.Snapshot{
			IsLoading:     true,
			Notifications: []domain.Notification{{ID: "a", Title: "first", CreatedAt: created}},
		}
		u.handleSnapshot(snap, map[string]bool{}, &buf)
		assert.Empty(t, buf.String())
	})
}

func TestPrintFollowNotification(t *testing.T) {
	var buf bytes.Buffer
	n := domain.Notification{
		ID:        "a",
		Kind:      domain.KindWarning,
		Title:     "Disk almost full",
		Message:   "90% used",
		CreatedAt: time.Date(2026, 8, 30, 9, 15, 0, 0, time.UTC),
	}

	printFollowNotification(n, &buf)

	out := buf.String()
	assert.Contains(t, out, "2026-08-30 09:15:00")
	assert.Contains(t, out, "[warning]")
	assert.Contains(t, out, "Disk almost full")
	assert.Contains(t, out, "90% used")
}
