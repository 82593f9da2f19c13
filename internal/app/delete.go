package app

import (
	"context"
	"fmt"

	"github.com/cristianoliveira/notitray/internal/colors"
)

// DeleteClient defines dependencies required for delete operations.
type DeleteClient interface {
	DeleteNotification(ctx context.Context, id string) error
}

// DeleteUseCase coordinates delete behavior.
type DeleteUseCase struct {
	client DeleteClient
}

// NewDeleteUseCase creates a new delete use-case.
func NewDeleteUseCase(client DeleteClient) *DeleteUseCase {
	if client == nil {
		panic("NewDeleteUseCase: client dependency cannot be nil")
	}
	return &DeleteUseCase{client: client}
}

// Execute deletes the given notifications. The first server failure aborts
// the batch.
func (u *DeleteUseCase) Execute(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return fmt.Errorf("delete: at least one notification id is required")
	}
	for _, id := range ids {
		if err := u.client.DeleteNotification(ctx, id); err != nil {
			return fmt.Errorf("delete: failed to delete notification %s: %w", id, err)
		}
		colors.Success("Notification " + id + " deleted")
	}
	return nil
}
