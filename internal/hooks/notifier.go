package hooks

import (
	"fmt"

	"github.com/cristianoliveira/notitray/internal/domain"
	"github.com/cristianoliveira/notitray/internal/push"
)

// Notifier forwards push-delivered notifications to the on-notify hook
// point. It satisfies the store's Notifier interface.
type Notifier struct{}

// NewNotifier creates a hook-backed notifier.
func NewNotifier() *Notifier {
	return &Notifier{}
}

// Notify runs the on-notify hooks with the notification exposed through
// the environment.
func (h *Notifier) Notify(n domain.Notification, eventType push.EventType) {
	readState := "unread"
	if n.IsRead {
		readState = "read"
	}
	err := Run(PointNotify,
		fmt.Sprintf("NOTIFICATION_ID=%s", n.ID),
		fmt.Sprintf("NOTIFICATION_TITLE=%s", n.Title),
		fmt.Sprintf("NOTIFICATION_MESSAGE=%s", n.Message),
		fmt.Sprintf("NOTIFICATION_KIND=%s", n.Kind),
		fmt.Sprintf("NOTIFICATION_STATE=%s", readState),
		fmt.Sprintf("NOTIFICATION_EVENT=%s", eventType),
	)
	if err != nil {
		// Hook failures never disturb tray state.
		return
	}
}
