package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/cristianoliveira/notitray/internal/api"
	"github.com/cristianoliveira/notitray/internal/colors"
	"github.com/cristianoliveira/notitray/internal/domain"
)

// SendClient defines dependencies required to create notifications.
type SendClient interface {
	CreateNotification(ctx context.Context, req api.CreateNotificationRequest) (*domain.Notification, error)
}

// SendInput represents send command inputs after flag parsing.
type SendInput struct {
	Title   string
	Message string
	Kind    string
	Subject string
	Meta    []string // key=value pairs
}

// SendUseCase coordinates send behavior.
type SendUseCase struct {
	client SendClient
}

// NewSendUseCase creates a new send use-case.
func NewSendUseCase(client SendClient) *SendUseCase {
	if client == nil {
		panic("NewSendUseCase: client dependency cannot be nil")
	}
	return &SendUseCase{client: client}
}

// Execute creates a notification on the server.
func (u *SendUseCase) Execute(ctx context.Context, input SendInput) error {
	if input.Title == "" {
		return fmt.Errorf("send: title is required")
	}

	kind := domain.KindInfo
	if input.Kind != "" {
		parsed, err := domain.ParseKind(input.Kind)
		if err != nil {
			return fmt.Errorf("send: %w", err)
		}
		kind = parsed
	}

	metadata, err := parseMetaPairs(input.Meta)
	if err != nil {
		return fmt.Errorf("send: %w", err)
	}

	created, err := u.client.CreateNotification(ctx, api.CreateNotificationRequest{
		SubjectID: input.Subject,
		Title:     input.Title,
		Message:   input.Message,
		Kind:      kind,
		Metadata:  metadata,
	})
	if err != nil {
		return fmt.Errorf("send: failed to create notification: %w", err)
	}

	colors.Success("Notification " + created.ID + " created")
	return nil
}

func parseMetaPairs(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	metadata := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid metadata pair %q, expected key=value", pair)
		}
		metadata[key] = value
	}
	return metadata, nil
}
