package app

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristianoliveira/notitray/internal/domain"
)

type fakeListClient struct {
	notifs []domain.Notification
	err    error
}

func (f *fakeListClient) ListNotifications(_ context.Context) ([]domain.Notification, error) {
	return f.notifs, f.err
}

func TestNewListUseCase_PanicsOnNilClient(t *testing.T) {
	assert.Panics(t, func() { NewListUseCase(nil) })
}

func TestListUseCase_Execute(t *testing.T) {
	client := &fakeListClient{notifs: []domain.Notification{
		{ID: "a", Kind: domain.KindInfo, Title: "first"},
		{ID: "b", Kind: domain.KindError, Title: "second", IsRead: true},
		{ID: "c", Kind: domain.KindError, Title: "third"},
	}}

	t.Run("prints all rows by default", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewListUseCase(client).Execute(context.Background(), ListOptions{}, &buf))
		assert.Contains(t, buf.String(), "first")
		assert.Contains(t, buf.String(), "second")
		assert.Contains(t, buf.String(), "third")
	})

	t.Run("filters by kind", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewListUseCase(client).Execute(context.Background(), ListOptions{Kind: "error"}, &buf))
		assert.NotContains(t, buf.String(), "first")
		assert.Contains(t, buf.String(), "second")
	})

	t.Run("filters unread", func(t *testing.T) {
		var buf bytes.Buffer
		opts := ListOptions{ReadFilter: domain.ReadFilterUnread}
		require.NoError(t, NewListUseCase(client).Execute(context.Background(), opts, &buf))
		assert.Contains(t, buf.String(), "first")
		assert.NotContains(t, buf.String(), "second")
	})

	t.Run("applies limit", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewListUseCase(client).Execute(context.Background(), ListOptions{Limit: 1}, &buf))
		assert.Contains(t, buf.String(), "first")
		assert.NotContains(t, buf.String(), "third")
	})

	t.Run("json output", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewListUseCase(client).Execute(context.Background(), ListOptions{Format: "json"}, &buf))
		assert.Contains(t, buf.String(), `"id": "a"`)
	})

	t.Run("no matches prints friendly message", func(t *testing.T) {
		var buf bytes.Buffer
		opts := ListOptions{Kind: "task"}
		require.NoError(t, NewListUseCase(client).Execute(context.Background(), opts, &buf))
		assert.Contains(t, buf.String(), "No notifications found")
	})

	t.Run("invalid kind", func(t *testing.T) {
		err := NewListUseCase(client).Execute(context.Background(), ListOptions{Kind: "nope"}, &bytes.Buffer{})
		assert.Error(t, err)
	})

	t.Run("fetch failure propagates", func(t *testing.T) {
		failing := &fakeListClient{err: errors.New("down")}
		err := NewListUseCase(failing).Execute(context.Background(), ListOptions{}, &bytes.Buffer{})
		assert.Error(t, err)
	})
}
