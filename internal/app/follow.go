package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cristianoliveira/notitray/internal/colors"
	"github.com/cristianoliveira/notitray/internal/domain"
	"github.com/cristianoliveira/notitray/internal/store"
)

// FollowOptions holds all parameters for follow behavior.
type FollowOptions struct {
	Identity string
	Interval time.Duration
	Output   io.Writer
	TickChan <-chan time.Time
}

// FollowUseCase streams notifications to the terminal as they arrive.
// With a push channel configured the store delivers them live; without
// one the periodic tick refreshes from the server instead.
type FollowUseCase struct {
	store *store.Store
}

// NewFollowUseCase creates a follow use-case.
func NewFollowUseCase(s *store.Store) *FollowUseCase {
	if s == nil {
		panic("NewFollowUseCase: store dependency cannot be nil")
	}
	return &FollowUseCase{store: s}
}

// Execute starts monitoring notifications until interruption/cancellation.
func (u *FollowUseCase) Execute(ctx context.Context, opts FollowOptions) error {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Interval <= 0 {
		opts.Interval = 30 * time.Second
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	colors.Info("Monitoring notifications (Ctrl+C to stop)...")
	_, _ = fmt.Fprintln(opts.Output)

	seen := make(map[string]bool)
	snapshots := make(chan store.Snapshot, 16)
	unsubscribe := u.store.Subscribe(func(s store.Snapshot) {
		select {
		case snapshots <- s:
		default:
			// Follow only prints deltas, dropping a snapshot under
			// backpressure loses nothing the next one won't carry.
		}
	})
	defer unsubscribe()

	u.store.Activate(ctx, opts.Identity)
	defer u.store.Deactivate()

	tickChan, cleanupTicker := setupFollowTickChan(opts)
	defer cleanupTicker()

	for {
		select {
		case <-ctx.Done():
			return nil
		case sig := <-sigChan:
			_, _ = fmt.Fprintf(opts.Output, "\nReceived signal %v, stopping...\n", sig)
			return nil
		case snap := <-snapshots:
			u.handleSnapshot(snap, seen, opts.Output)
		case <-tickChan:
			u.store.Refresh(ctx)
		}
	}
}

func setupFollowTickChan(opts FollowOptions) (<-chan time.Time, func()) {
	if opts.TickChan != nil {
		return opts.TickChan, func() {}
	}

	ticker := time.NewTicker(opts.Interval)
	return ticker.C, ticker.Stop
}

func (u *FollowUseCase) handleSnapshot(snap store.Snapshot, seen map[string]bool, output io.Writer) {
	if snap.IsLoading {
		return
	}
	if snap.Err != nil {
		colors.Warning(fmt.Sprintf("refresh failed: %v", snap.Err))
		return
	}
	for _, n := range snap.Notifications {
		if seen[n.ID] {
			continue
		}
		printFollowNotification(n, output)
		seen[n.ID] = true
	}
}

func printFollowNotification(n domain.Notification, w io.Writer) {
	timeStr := n.CreatedAt.Format("2006-01-02 15:04:05")
	msg := fmt.Sprintf("[%s] [%s] %s", timeStr, n.Kind.String(), n.Title)
	color := colors.ForKind(n.Kind.String())
	reset := colors.Reset
	if color != "" {
		_, _ = fmt.Fprintf(w, "%s%s%s\n", color, msg, reset)
	} else {
		_, _ = fmt.Fprintln(w, msg)
	}
	if n.Message != "" {
		_, _ = fmt.Fprintf(w, "  └─ %s\n", n.Message)
	}
}
