// Package app contains the use cases behind each CLI command. Use cases
// depend on small client interfaces so commands and tests can wire the
// remote API, the local cache, or fakes behind the same behavior.
package app

import (
	"context"
	"fmt"
	"io"

	"github.com/cristianoliveira/notitray/internal/domain"
	"github.com/cristianoliveira/notitray/internal/format"
)

// StatusClient defines dependencies for the status command.
type StatusClient interface {
	ListNotifications(ctx context.Context) ([]domain.Notification, error)
	UnreadCount(ctx context.Context) (int, error)
}

// StatusUseCase coordinates status behavior.
type StatusUseCase struct {
	client StatusClient
}

// NewStatusUseCase creates a status use-case.
func NewStatusUseCase(client StatusClient) *StatusUseCase {
	if client == nil {
		panic("NewStatusUseCase: client dependency cannot be nil")
	}
	return &StatusUseCase{client: client}
}

// DetermineStatusFormat resolves effective format preserving CLI precedence.
// The flag wins when set explicitly, then the configured default.
func DetermineStatusFormat(formatFlag, configFormat string, flagChanged bool) string {
	result := formatFlag
	if !flagChanged && configFormat != "" {
		result = configFormat
	}
	if result == "" {
		result = format.StatusCompact
	}
	return result
}

// ValidateStatusFormat validates status output format.
func ValidateStatusFormat(formatValue string) error {
	for _, f := range format.StatusFormats {
		if f == formatValue {
			return nil
		}
	}
	return fmt.Errorf("status: unknown format: %s", formatValue)
}

// Execute fetches list and unread count and writes the status line.
func (u *StatusUseCase) Execute(ctx context.Context, formatValue string, w io.Writer) error {
	notifications, err := u.client.ListNotifications(ctx)
	if err != nil {
		return fmt.Errorf("status: failed to list notifications: %w", err)
	}
	unread, err := u.client.UnreadCount(ctx)
	if err != nil {
		return fmt.Errorf("status: failed to fetch unread count: %w", err)
	}

	data := format.BuildStatus(notifications, unread)
	return format.FormatStatus(w, data, formatValue)
}
