package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristianoliveira/notitray/internal/api"
	"github.com/cristianoliveira/notitray/internal/domain"
)

type fakeMutationClient struct {
	markedRead  []string
	deleted     []string
	markAllRan  int
	created     []api.CreateNotificationRequest
	failOn      string
	markAllErr  error
	markAllSize int
}

func (f *fakeMutationClient) MarkRead(_ context.Context, id string) error {
	if id == f.failOn {
		return errors.New("boom")
	}
	f.markedRead = append(f.markedRead, id)
	return nil
}

func (f *fakeMutationClient) MarkAllRead(_ context.Context) (int, error) {
	if f.markAllErr != nil {
		return 0, f.markAllErr
	}
	f.markAllRan++
	return f.markAllSize, nil
}

func (f *fakeMutationClient) DeleteNotification(_ context.Context, id string) error {
	if id == f.failOn {
		return errors.New("boom")
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeMutationClient) CreateNotification(_ context.Context, req api.CreateNotificationRequest) (*domain.Notification, error) {
	if req.Title == f.failOn {
		return nil, errors.New("boom")
	}
	f.created = append(f.created, req)
	return &domain.Notification{ID: "created-1", Title: req.Title, Kind: req.Kind}, nil
}

func TestMarkReadUseCase(t *testing.T) {
	t.Run("marks each id", func(t *testing.T) {
		client := &fakeMutationClient{}
		require.NoError(t, NewMarkReadUseCase(client).Execute(context.Background(), []string{"a", "b"}))
		assert.Equal(t, []string{"a", "b"}, client.markedRead)
	})

	t.Run("requires at least one id", func(t *testing.T) {
		assert.Error(t, NewMarkReadUseCase(&fakeMutationClient{}).Execute(context.Background(), nil))
	})

	t.Run("first failure aborts the batch", func(t *testing.T) {
		client := &fakeMutationClient{failOn: "b"}
		err := NewMarkReadUseCase(client).Execute(context.Background(), []string{"a", "b", "c"})
		assert.Error(t, err)
		assert.Equal(t, []string{"a"}, client.markedRead)
	})
}

func TestMarkAllReadUseCase(t *testing.T) {
	ci := func() bool { return true }

	t.Run("runs after confirmation", func(t *testing.T) {
		client := &fakeMutationClient{markAllSize: 3}
		input := MarkAllReadInput{ConfirmAll: func() bool { return true }}
		require.NoError(t, NewMarkAllReadUseCase(client).Execute(context.Background(), input))
		assert.Equal(t, 1, client.markAllRan)
	})

	t.Run("declined confirmation is a no-op", func(t *testing.T) {
		client := &fakeMutationClient{}
		input := MarkAllReadInput{
			ConfirmAll:    func() bool { return false },
			IsCIOrTestEnv: func() bool { return false },
		}
		require.NoError(t, NewMarkAllReadUseCase(client).Execute(context.Background(), input))
		assert.Zero(t, client.markAllRan)
	})

	t.Run("server failure propagates", func(t *testing.T) {
		client := &fakeMutationClient{markAllErr: errors.New("boom")}
		input := MarkAllReadInput{IsCIOrTestEnv: ci}
		assert.Error(t, NewMarkAllReadUseCase(client).Execute(context.Background(), input))
	})
}

func TestDeleteUseCase(t *testing.T) {
	t.Run("deletes each id", func(t *testing.T) {
		client := &fakeMutationClient{}
		require.NoError(t, NewDeleteUseCase(client).Execute(context.Background(), []string{"a", "b"}))
		assert.Equal(t, []string{"a", "b"}, client.deleted)
	})

	t.Run("requires at least one id", func(t *testing.T) {
		assert.Error(t, NewDeleteUseCase(&fakeMutationClient{}).Execute(context.Background(), nil))
	})

	t.Run("first failure aborts the batch", func(t *testing.T) {
		client := &fakeMutationClient{failOn: "a"}
		err := NewDeleteUseCase(client).Execute(context.Background(), []string{"a", "b"})
		assert.Error(t, err)
		assert.Empty(t, client.deleted)
	})
}

func TestSendUseCase(t *testing.T) {
	t.Run("creates with parsed kind", func(t *testing.T) {
		client := &fakeMutationClient{}
		input := SendInput{Title: "Deploy failed", Message: "halted", Kind: "error"}
		require.NoError(t, NewSendUseCase(client).Execute(context.Background(), input))

		require.Len(t, client.created, 1)
		assert.Equal(t, "Deploy failed", client.created[0].Title)
		assert.Equal(t, domain.KindError, client.created[0].Kind)
	})

	t.Run("defaults to info kind", func(t *testing.T) {
		client := &fakeMutationClient{}
		require.NoError(t, NewSendUseCase(client).Execute(context.Background(), SendInput{Title: "hi"}))
		assert.Equal(t, domain.KindInfo, client.created[0].Kind)
	})

	t.Run("title is required", func(t *testing.T) {
		assert.Error(t, NewSendUseCase(&fakeMutationClient{}).Execute(context.Background(), SendInput{}))
	})

	t.Run("invalid kind", func(t *testing.T) {
		input := SendInput{Title: "hi", Kind: "nope"}
		assert.Error(t, NewSendUseCase(&fakeMutationClient{}).Execute(context.Background(), input))
	})

	t.Run("metadata pairs", func(t *testing.T) {
		client := &fakeMutationClient{}
		input := SendInput{Title: "review", Meta: []string{"pr=1482", "repo=api"}}
		require.NoError(t, NewSendUseCase(client).Execute(context.Background(), input))

		require.Len(t, client.created, 1)
		assert.Equal(t, map[string]any{"pr": "1482", "repo": "api"}, client.created[0].Metadata)
	})

	t.Run("malformed metadata pair", func(t *testing.T) {
		input := SendInput{Title: "hi", Meta: []string{"no-equals"}}
		assert.Error(t, NewSendUseCase(&fakeMutationClient{}).Execute(context.Background(), input))
	})

	t.Run("server failure propagates", func(t *testing.T) {
		client := &fakeMutationClient{failOn: "bad"}
		assert.Error(t, NewSendUseCase(client).Execute(context.Background(), SendInput{Title: "bad"}))
	})
}
