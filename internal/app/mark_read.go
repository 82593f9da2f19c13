package app

import (
	"context"
	"fmt"

	"github.com/cristianoliveira/notitray/internal/colors"
)

// MarkReadClient defines dependencies required for mark-read operations.
type MarkReadClient interface {
	MarkRead(ctx context.Context, id string) error
}

// MarkReadUseCase coordinates mark-read behavior.
type MarkReadUseCase struct {
	client MarkReadClient
}

// NewMarkReadUseCase creates a new mark-read use-case.
func NewMarkReadUseCase(client MarkReadClient) *MarkReadUseCase {
	if client == nil {
		panic("NewMarkReadUseCase: client dependency cannot be nil")
	}
	return &MarkReadUseCase{client: client}
}

// Execute marks the given notifications as read, one at a time. The first
// server failure aborts the batch so local accounting never runs ahead of
// what the server confirmed.
func (u *MarkReadUseCase) Execute(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return fmt.Errorf("mark-read: at least one notification id is required")
	}
	for _, id := range ids {
		if err := u.client.MarkRead(ctx, id); err != nil {
			return fmt.Errorf("mark-read: failed to mark notification %s: %w", id, err)
		}
		colors.Success("Notification " + id + " marked as read")
	}
	return nil
}
