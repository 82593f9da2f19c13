// Package store implements the client-side notification synchronization
// engine. A Store owns the canonical in-memory notification list and unread
// counter, reconciling three inputs into one consistent view: the initial
// REST fetch, the live push stream, and server-confirmed local mutations.
//
// All state transitions are applied atomically with respect to observers:
// a listener never sees the list updated with a stale counter or vice versa.
package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/cristianoliveira/notitray/internal/api"
	"github.com/cristianoliveira/notitray/internal/domain"
	"github.com/cristianoliveira/notitray/internal/logging"
	"github.com/cristianoliveira/notitray/internal/push"
)

// API is the REST surface the store consumes.
type API interface {
	ListNotifications(ctx context.Context) ([]domain.Notification, error)
	UnreadCount(ctx context.Context) (int, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context) (int, error)
	DeleteNotification(ctx context.Context, id string) error
}

// Cache persists the synchronized view so status-bar consumers can read it
// without a network round-trip. Persistence is best-effort.
type Cache interface {
	ReplaceAll(notifs []domain.Notification, unread int) error
}

// Notifier surfaces a push-delivered record outside the tray (desktop
// notification hooks). Failures never affect the merge.
type Notifier interface {
	Notify(n domain.Notification, eventType push.EventType)
}

// Snapshot is the presentation-facing view of the store at one instant.
type Snapshot struct {
	Notifications []domain.Notification
	UnreadCount   int
	IsLoading     bool
	Err           error
}

// Listener receives a snapshot after every state transition.
type Listener func(Snapshot)

// lifecycle states
type state int

const (
	stateInactive state = iota
	stateActivating
	stateActive
)

// Store is the notification synchronization engine. The zero value is not
// usable; construct with New.
type Store struct {
	api      API
	channel  push.Channel
	cache    Cache
	notifier Notifier
	logger   logging.Logger

	mu            sync.Mutex
	state         state
	identity      string
	handle        push.Handle
	notifications []domain.Notification
	unread        int
	loading       bool
	err           error
	listeners     map[int]Listener
	nextListener  int
}

// Option configures a Store.
type Option func(*Store)

// WithChannel sets the push channel. Without one the store always runs in
// fetch-only mode.
func WithChannel(c push.Channel) Option {
	return func(s *Store) { s.channel = c }
}

// WithCache sets the local snapshot cache.
func WithCache(c Cache) Option {
	return func(s *Store) { s.cache = c }
}

// WithNotifier sets the push-event side-effect sink.
func WithNotifier(n Notifier) Option {
	return func(s *Store) { s.notifier = n }
}

// WithLogger sets the structured logger.
func WithLogger(l logging.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// New creates a Store over the given API client.
func New(apiClient API, opts ...Option) *Store {
	if apiClient == nil {
		panic("store.New: api client cannot be nil")
	}
	s := &Store{
		api:       apiClient,
		listeners: make(map[int]Listener),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.GetGlobal()
	}
	return s
}

// Subscribe registers a listener and immediately delivers the current
// snapshot. The returned function unsubscribes; calling it more than once
// is safe.
func (s *Store) Subscribe(l Listener) func() {
	s.mu.Lock()
	id := s.nextListener
	s.nextListener++
	s.listeners[id] = l
	snap := s.snapshotLocked()
	s.mu.Unlock()

	l(snap)

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// Snapshot returns the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// snapshotLocked builds a copy-safe snapshot. Callers hold s.mu.
func (s *Store) snapshotLocked() Snapshot {
	notifs := make([]domain.Notification, len(s.notifications))
	copy(notifs, s.notifications)
	return Snapshot{
		Notifications: notifs,
		UnreadCount:   s.unread,
		IsLoading:     s.loading,
		Err:           s.err,
	}
}

// notifyLocked captures listeners and the snapshot under the lock, then
// invokes them after releasing it so a listener may call back into the store.
// The snapshot itself is atomic: list and counter were updated together.
func (s *Store) notifyLocked() func() {
	snap := s.snapshotLocked()
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	return func() {
		for _, l := range listeners {
			l(snap)
		}
	}
}

// Activate opens the identity-scoped push subscription (unless identity is
// empty, which selects fetch-only mode) and seeds state with a refresh.
// It never fails: a channel-open error degrades to fetch-only mode, and a
// failed initial refresh still leaves the store active with the error
// recorded. Repeated activation with the same identity does not reopen the
// channel but still refreshes.
func (s *Store) Activate(ctx context.Context, identity string) {
	s.mu.Lock()
	sameIdentity := s.state == stateActive && s.identity == identity && s.handle != nil
	var stale push.Handle
	if !sameIdentity && s.handle != nil {
		// At most one open subscription at a time. Close after unlock: the
		// handle's teardown waits for in-flight delivery, and delivery needs
		// this lock.
		stale = s.handle
		s.handle = nil
	}
	s.state = stateActivating
	s.identity = identity
	needOpen := !sameIdentity && identity != "" && s.channel != nil
	s.mu.Unlock()

	if stale != nil {
		_ = stale.Close()
	}

	if needOpen {
		handle, err := s.channel.Open(ctx, identity, s.onPushEvent)
		if err != nil {
			// Channel failure is never fatal: REST-backed operation continues.
			s.logger.Warn("push channel unavailable, running fetch-only", "error", err)
		} else {
			s.mu.Lock()
			s.handle = handle
			s.mu.Unlock()
		}
	} else if identity == "" {
		s.logger.Debug("no realtime identity, running fetch-only")
	}

	s.Refresh(ctx)

	s.mu.Lock()
	s.state = stateActive
	s.mu.Unlock()
}

// Deactivate closes the subscription (if any), releases all listeners, and
// clears in-memory state. Idempotent, safe even when never activated.
func (s *Store) Deactivate() {
	s.mu.Lock()
	handle := s.handle
	s.handle = nil
	s.identity = ""
	s.state = stateInactive
	s.notifications = nil
	s.unread = 0
	s.loading = false
	s.err = nil
	s.listeners = make(map[int]Listener)
	s.mu.Unlock()

	if handle != nil {
		_ = handle.Close()
	}
}

// Refresh fetches the full list and the unread counter concurrently and
// replaces local state with the result — a hard reset that resynchronizes
// any drift between the store and the push stream. On failure the existing
// state is left untouched and the error is recorded for listeners to
// surface; Refresh itself never propagates it.
//
// Concurrent Refresh calls proceed independently; results are applied in
// completion order (last completed response wins).
func (s *Store) Refresh(ctx context.Context) {
	s.mu.Lock()
	s.loading = true
	notify := s.notifyLocked()
	s.mu.Unlock()
	notify()

	var (
		notifs   []domain.Notification
		unread   int
		listErr  error
		countErr error
		wg       sync.WaitGroup
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		notifs, listErr = s.api.ListNotifications(ctx)
	}()
	go func() {
		defer wg.Done()
		unread, countErr = s.api.UnreadCount(ctx)
	}()
	wg.Wait()

	if errors.Is(listErr, api.ErrUnexpectedShape) {
		s.logger.Warn("notification list had unexpected shape, treating as empty")
		notifs, listErr = []domain.Notification{}, nil
	}

	s.mu.Lock()
	s.loading = false
	if listErr != nil || countErr != nil {
		s.err = errors.Join(listErr, countErr)
		s.logger.Warn("refresh failed", "error", s.err)
	} else {
		s.notifications = notifs
		s.unread = unread
		s.err = nil
	}
	notify = s.notifyLocked()
	persist := s.persistLocked()
	s.mu.Unlock()

	notify()
	persist()
}

// onPushEvent merges a push delivery into local state: upsert by ID,
// prepending true inserts and replacing known records in place. Invoked by
// the push channel, never by external callers.
func (s *Store) onPushEvent(ev push.Event) {
	s.mu.Lock()
	if s.state == stateInactive {
		// Delivery raced a teardown; the subscription is already gone and
		// merging now would resurrect state (and the cache) behind it.
		s.mu.Unlock()
		return
	}
	existing := -1
	for i := range s.notifications {
		if s.notifications[i].ID == ev.Record.ID {
			existing = i
			break
		}
	}

	if existing >= 0 {
		// Replace in place, order preserved. Re-derive the counter from the
		// full list: overlapping update events make deltas unreliable.
		s.notifications[existing] = ev.Record
		s.unread = domain.CountUnread(s.notifications)
	} else {
		// True insert: newest first.
		s.notifications = append([]domain.Notification{ev.Record}, s.notifications...)
		if !ev.Record.IsRead {
			s.unread++
		}
	}

	notify := s.notifyLocked()
	persist := s.persistLocked()
	s.mu.Unlock()

	notify()
	persist()

	if s.notifier != nil {
		// Best-effort side effect; must never block or fail the merge.
		go s.notifier.Notify(ev.Record, ev.Type)
	}
}

// MarkAsRead marks one notification read on the server, then applies the
// change locally. A failure leaves local state untouched and is returned to
// the caller. Unknown IDs are a server-side concern; locally they are a
// no-op after a successful call.
func (s *Store) MarkAsRead(ctx context.Context, id string) error {
	if err := s.api.MarkRead(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	for i := range s.notifications {
		if s.notifications[i].ID == id {
			s.notifications[i].MarkRead(time.Now())
			break
		}
	}
	s.unread = domain.CountUnread(s.notifications)
	notify := s.notifyLocked()
	persist := s.persistLocked()
	s.mu.Unlock()

	notify()
	persist()
	return nil
}

// MarkAllAsRead marks every notification read on the server, then locally.
// Returns the number of records the server reported updating.
func (s *Store) MarkAllAsRead(ctx context.Context) (int, error) {
	updated, err := s.api.MarkAllRead(ctx)
	if err != nil {
		return 0, err
	}

	now := time.Now()
	s.mu.Lock()
	for i := range s.notifications {
		s.notifications[i].MarkRead(now)
	}
	s.unread = 0
	notify := s.notifyLocked()
	persist := s.persistLocked()
	s.mu.Unlock()

	notify()
	persist()
	return updated, nil
}

// DeleteNotification deletes on the server, then removes the local record.
// Deleting an unread notification decrements the counter by one, floored at
// zero.
func (s *Store) DeleteNotification(ctx context.Context, id string) error {
	if err := s.api.DeleteNotification(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	for i := range s.notifications {
		if s.notifications[i].ID == id {
			wasUnread := !s.notifications[i].IsRead
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			if wasUnread && s.unread > 0 {
				s.unread--
			}
			break
		}
	}
	notify := s.notifyLocked()
	persist := s.persistLocked()
	s.mu.Unlock()

	notify()
	persist()
	return nil
}

// persistLocked captures the current view for the cache while holding s.mu
// and returns a function that writes it after release. Cache failures are
// logged, never surfaced.
func (s *Store) persistLocked() func() {
	if s.cache == nil {
		return func() {}
	}
	notifs := make([]domain.Notification, len(s.notifications))
	copy(notifs, s.notifications)
	unread := s.unread
	return func() {
		if err := s.cache.ReplaceAll(notifs, unread); err != nil {
			s.logger.Warn("cache write failed", "error", err)
		}
	}
}
