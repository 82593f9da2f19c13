// Package domain provides the domain layer for notifications.
package domain

import "fmt"

// Read filter constants.
const (
	ReadFilterRead   = "read"
	ReadFilterUnread = "unread"
)

// Filter holds filter criteria for notifications.
type Filter struct {
	Kind       Kind
	Subject    string
	ReadFilter string // "read", "unread", or "" (no filter)
}

// FilterOptions holds filter parameters similar to CLI options.
type FilterOptions struct {
	Kind       string
	Subject    string
	ReadFilter string // "read", "unread", or ""
}

// ToFilter converts FilterOptions to a Filter struct.
func (fo FilterOptions) ToFilter() (Filter, error) {
	var kind Kind
	var err error

	if fo.Kind != "" {
		kind, err = ParseKind(fo.Kind)
		if err != nil {
			return Filter{}, err
		}
	}

	if fo.ReadFilter != "" && fo.ReadFilter != ReadFilterRead && fo.ReadFilter != ReadFilterUnread {
		return Filter{}, fmt.Errorf("invalid read filter: %s", fo.ReadFilter)
	}

	return Filter{
		Kind:       kind,
		Subject:    fo.Subject,
		ReadFilter: fo.ReadFilter,
	}, nil
}

// IsEmpty returns true if the filter has no criteria set.
func (f Filter) IsEmpty() bool {
	return f.Kind == "" && f.Subject == "" && f.ReadFilter == ""
}

// FilterNotifications filters a slice of notifications based on the given filter.
// Returns a new slice containing only matching notifications.
func FilterNotifications(notifs []Notification, filter Filter) []Notification {
	if filter.IsEmpty() {
		return notifs
	}

	result := make([]Notification, 0, len(notifs))
	for _, n := range notifs {
		if n.MatchesFilter(filter) {
			result = append(result, n)
		}
	}
	return result
}

// FilterByKind filters notifications by kind.
func FilterByKind(notifs []Notification, kind string) []Notification {
	if kind == "" {
		return notifs
	}
	return FilterNotifications(notifs, Filter{Kind: Kind(kind)})
}

// FilterByReadStatus filters notifications by read status.
func FilterByReadStatus(notifs []Notification, readFilter string) []Notification {
	if readFilter == "" {
		return notifs
	}
	return FilterNotifications(notifs, Filter{ReadFilter: readFilter})
}

// Limit truncates the slice to at most n notifications. n <= 0 means no limit.
func Limit(notifs []Notification, n int) []Notification {
	if n <= 0 || len(notifs) <= n {
		return notifs
	}
	return notifs[:n]
}
