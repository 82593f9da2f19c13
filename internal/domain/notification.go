// Package domain provides the domain layer for notifications.
// It contains business logic, value objects, and domain services.
package domain

import (
	"fmt"
	"time"
)

// Notification represents a single notification record as delivered by the
// remote API. ID is the merge key: exactly one record per ID exists in any
// synchronized view.
type Notification struct {
	ID          string         `json:"id"`
	SubjectID   string         `json:"user_id,omitempty"`
	Title       string         `json:"title"`
	Message     string         `json:"message"`
	Kind        Kind           `json:"notification_type"`
	IsRead      bool           `json:"is_read"`
	ReadAt      *time.Time     `json:"read_at,omitempty"`
	RelatedKind string         `json:"related_model,omitempty"`
	RelatedID   string         `json:"related_id,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// Kind represents the category of a notification.
type Kind string

const (
	KindInfo    Kind = "info"
	KindSuccess Kind = "success"
	KindWarning Kind = "warning"
	KindError   Kind = "error"
	KindTask    Kind = "task"
	KindUser    Kind = "user"
	KindSystem  Kind = "system"
)

// Kinds lists all valid notification kinds in display order.
var Kinds = []Kind{KindInfo, KindSuccess, KindWarning, KindError, KindTask, KindUser, KindSystem}

// IsValid checks if the notification kind is valid.
func (k Kind) IsValid() bool {
	switch k {
	case KindInfo, KindSuccess, KindWarning, KindError, KindTask, KindUser, KindSystem:
		return true
	default:
		return false
	}
}

// String returns the string representation of the kind.
func (k Kind) String() string {
	return string(k)
}

// ParseKind parses a string into a Kind.
func ParseKind(kind string) (Kind, error) {
	k := Kind(kind)
	if !k.IsValid() {
		return "", fmt.Errorf("invalid notification kind: %s", kind)
	}
	return k, nil
}

// MarkRead sets the read flag and stamps the read time if not already set.
func (n *Notification) MarkRead(at time.Time) *Notification {
	n.IsRead = true
	if n.ReadAt == nil {
		t := at.UTC()
		n.ReadAt = &t
	}
	return n
}

// Validate validates the notification and returns an error if invalid.
func (n *Notification) Validate() error {
	if n.ID == "" {
		return fmt.Errorf("notification ID cannot be empty")
	}

	if !n.Kind.IsValid() {
		return fmt.Errorf("invalid notification kind: %s", n.Kind)
	}

	if n.Title == "" {
		return fmt.Errorf("notification title cannot be empty")
	}

	return nil
}

// MatchesFilter checks if the notification matches the given filter criteria.
func (n *Notification) MatchesFilter(filter Filter) bool {
	if filter.Kind != "" && n.Kind != filter.Kind {
		return false
	}
	if filter.ReadFilter != "" {
		isRead := n.IsRead
		if filter.ReadFilter == ReadFilterRead && !isRead {
			return false
		}
		if filter.ReadFilter == ReadFilterUnread && isRead {
			return false
		}
	}
	if filter.Subject != "" && n.SubjectID != filter.Subject {
		return false
	}
	return true
}

// CountUnread returns the number of notifications with IsRead == false.
// This is the single derivation used for the unread counter; callers must
// never track the counter by delta across overlapping update events.
func CountUnread(notifs []Notification) int {
	count := 0
	for i := range notifs {
		if !notifs[i].IsRead {
			count++
		}
	}
	return count
}

// CountByKind returns per-kind counts over the given notifications.
func CountByKind(notifs []Notification) map[Kind]int {
	counts := make(map[Kind]int)
	for i := range notifs {
		counts[notifs[i].Kind]++
	}
	return counts
}
