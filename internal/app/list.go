package app

import (
	"context"
	"fmt"
	"io"

	"github.com/cristianoliveira/notitray/internal/colors"
	"github.com/cristianoliveira/notitray/internal/domain"
	"github.com/cristianoliveira/notitray/internal/format"
)

// ListClient defines dependencies required to list notifications.
type ListClient interface {
	ListNotifications(ctx context.Context) ([]domain.Notification, error)
}

// ListOptions holds all filter parameters for listing notifications.
type ListOptions struct {
	Kind       string
	ReadFilter string
	Limit      int
	Format     string
}

// ListUseCase coordinates list notifications behavior.
type ListUseCase struct {
	client ListClient
}

// NewListUseCase creates a new list use-case.
func NewListUseCase(client ListClient) *ListUseCase {
	if client == nil {
		panic("NewListUseCase: client dependency cannot be nil")
	}
	return &ListUseCase{client: client}
}

// Execute prints notifications according to the provided options.
func (u *ListUseCase) Execute(ctx context.Context, opts ListOptions, w io.Writer) error {
	filterOpts := domain.FilterOptions{Kind: opts.Kind, ReadFilter: opts.ReadFilter}
	filter, err := filterOpts.ToFilter()
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}

	notifications, err := u.client.ListNotifications(ctx)
	if err != nil {
		return fmt.Errorf("list: failed to list notifications: %w", err)
	}

	notifications = domain.FilterNotifications(notifications, filter)
	if opts.Limit > 0 {
		notifications = domain.Limit(notifications, opts.Limit)
	}

	if len(notifications) == 0 {
		_, _ = fmt.Fprintf(w, "%s%s%s\n", colors.Blue, "No notifications found", colors.Reset)
		return nil
	}

	if opts.Format == "json" {
		return format.FormatJSON(w, notifications)
	}
	return format.NewTableFormatter().FormatNotifications(notifications, w)
}
