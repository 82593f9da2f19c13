package app

import (
	"context"
	"fmt"
	"os"

	"github.com/cristianoliveira/notitray/internal/colors"
)

// MarkAllReadClient defines dependencies required for mark-all-read operations.
type MarkAllReadClient interface {
	MarkAllRead(ctx context.Context) (int, error)
}

// MarkAllReadInput represents mark-all-read command inputs after flag parsing.
type MarkAllReadInput struct {
	ConfirmAll    func() bool
	IsCIOrTestEnv func() bool
}

// MarkAllReadUseCase coordinates mark-all-read behavior.
type MarkAllReadUseCase struct {
	client MarkAllReadClient
}

// NewMarkAllReadUseCase creates a new mark-all-read use-case.
func NewMarkAllReadUseCase(client MarkAllReadClient) *MarkAllReadUseCase {
	if client == nil {
		panic("NewMarkAllReadUseCase: client dependency cannot be nil")
	}
	return &MarkAllReadUseCase{client: client}
}

// Execute marks every notification as read after confirmation.
func (u *MarkAllReadUseCase) Execute(ctx context.Context, input MarkAllReadInput) error {
	isCIOrTest := input.IsCIOrTestEnv
	if isCIOrTest == nil {
		isCIOrTest = func() bool {
			return os.Getenv("CI") != ""
		}
	}

	if !isCIOrTest() {
		confirm := input.ConfirmAll
		if confirm != nil && !confirm() {
			colors.Info("Operation cancelled")
			return nil
		}
	} else {
		colors.Debug("skipping confirmation due to CI/test environment")
	}

	updated, err := u.client.MarkAllRead(ctx)
	if err != nil {
		return fmt.Errorf("mark-all-read: failed to mark all as read: %w", err)
	}

	if updated == 0 {
		colors.Info("No unread notifications")
		return nil
	}
	colors.Success(fmt.Sprintf("%d notifications marked as read", updated))
	return nil
}
