// Package push provides the real-time notification event channel.
//
// A Channel is an abstract event source: it opens a subscription scoped to
// one subscriber identity and delivers insert/update events for that
// identity's records until closed. It performs no deduplication, reordering,
// or retry; lost messages are repaired by a store-level refresh.
package push

import (
	"context"

	"github.com/cristianoliveira/notitray/internal/domain"
)

// EventType tags a push event.
type EventType string

const (
	// EventInsert is a newly created record, not seen by this client before.
	EventInsert EventType = "insert"
	// EventUpdate is a changed record delivered as a full row.
	EventUpdate EventType = "update"
)

// Event is a single push delivery carrying a full notification record.
type Event struct {
	Type   EventType
	Record domain.Notification
}

// Sink receives events from an open subscription. It is registered at open
// time and invoked from the channel's delivery goroutine in transport order.
type Sink func(Event)

// Handle is an open subscription. Close is idempotent and safe on an
// already-closed handle.
type Handle interface {
	Close() error
}

// Channel opens scoped subscriptions. At most one handle per store instance
// is open at a time; that discipline is enforced by the caller, not here.
type Channel interface {
	Open(ctx context.Context, identity string, sink Sink) (Handle, error)
}
