package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cristianoliveira/notitray/internal/store"
)

// ProgramRunner defines the interface for running a bubbletea program.
// This abstraction allows for easier testing and swapping of implementations.
type ProgramRunner interface {
	// Run starts the bubbletea program with the given model.
	Run(model tea.Model) error
}

// DefaultProgramRunner wraps tea.NewProgram with standard options.
type DefaultProgramRunner struct{}

// NewDefaultProgramRunner creates a new DefaultProgramRunner.
func NewDefaultProgramRunner() *DefaultProgramRunner {
	return &DefaultProgramRunner{}
}

// Run starts a bubbletea program with the given model.
func (r *DefaultProgramRunner) Run(model tea.Model) error {
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Run activates the store for the identity, subscribes the tray to its
// snapshots, and blocks in the bubbletea loop until the user quits.
func Run(ctx context.Context, s *store.Store, identity string, runner ProgramRunner) error {
	if runner == nil {
		runner = NewDefaultProgramRunner()
	}

	snapshots := make(chan store.Snapshot, 16)
	unsubscribe := s.Subscribe(func(snap store.Snapshot) {
		select {
		case snapshots <- snap:
		default:
			// The tray always renders the latest snapshot it received,
			// dropping one under backpressure is recoverable.
		}
	})
	defer unsubscribe()

	s.Activate(ctx, identity)
	defer s.Deactivate()

	model := NewModel(ctx, s, snapshots)
	if err := runner.Run(model); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
