package app

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristianoliveira/notitray/internal/domain"
	"github.com/cristianoliveira/notitray/internal/format"
)

type fakeStatusClient struct {
	notifs   []domain.Notification
	unread   int
	listErr  error
	countErr error
}

func (f *fakeStatusClient) ListNotifications(_ context.Context) ([]domain.Notification, error) {
	return f.notifs, f.listErr
}

func (f *fakeStatusClient) UnreadCount(_ context.Context) (int, error) {
	return f.unread, f.countErr
}

func TestNewStatusUseCase_PanicsOnNilClient(t *testing.T) {
	assert.Panics(t, func() { NewStatusUseCase(nil) })
}

func TestDetermineStatusFormat(t *testing.T) {
	tests := []struct {
		name        string
		flag        string
		config      string
		flagChanged bool
		want        string
	}{
		{"explicit flag wins", "json", "detailed", true, "json"},
		{"config fills unset flag", "", "detailed", false, "detailed"},
		{"fallback to compact", "", "", false, format.StatusCompact},
		{"changed flag beats config", "count-only", "json", true, "count-only"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetermineStatusFormat(tt.flag, tt.config, tt.flagChanged))
		})
	}
}

func TestValidateStatusFormat(t *testing.T) {
	for _, f := range format.StatusFormats {
		assert.NoError(t, ValidateStatusFormat(f))
	}
	assert.Error(t, ValidateStatusFormat("fancy"))
}

func TestStatusUseCase_Execute(t *testing.T) {
	t.Run("writes the status line", func(t *testing.T) {
		client := &fakeStatusClient{
			notifs: []domain.Notification{{ID: "a"}, {ID: "b", IsRead: true}},
			unread: 1,
		}
		var buf bytes.Buffer

		err := NewStatusUseCase(client).Execute(context.Background(), format.StatusCompact, &buf)

		require.NoError(t, err)
		assert.Equal(t, "1 unread (2 total)\n", buf.String())
	})

	t.Run("list failure propagates", func(t *testing.T) {
		client := &fakeStatusClient{listErr: errors.New("down")}
		err := NewStatusUseCase(client).Execute(context.Background(), format.StatusCompact, &bytes.Buffer{})
		assert.Error(t, err)
	})

	t.Run("count failure propagates", func(t *testing.T) {
		client := &fakeStatusClient{countErr: errors.New("down")}
		err := NewStatusUseCase(client).Execute(context.Background(), format.StatusCompact, &bytes.Buffer{})
		assert.Error(t, err)
	})
}
