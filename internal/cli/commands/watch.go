package commands

import (
	"context"
	"fmt"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/lathaniel/alfa/internal/cli/output"
	"github.com/lathaniel/alfa/pkg/alfa"
)

// Watch event types.
const (
	EventReady      = "ready"
	EventRunAdded   = "run_added"
	EventRunRemoved = "run_removed"
	EventLocked     = "locked"
	EventUnlocked   = "unlocked"
)

// DefaultWatchDebounce is how long the directory must stay quiet before it is
// re-read.
const DefaultWatchDebounce = 250 * time.Millisecond

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Report new runs and lock changes as they happen",
		Long: `Watch the model directory and report when runs appear or disappear and
when the model is locked or unlocked. Runs until interrupted.

With --output json one event object is written per line.`,
		Example: `  alfa watch
  alfa watch --output json | jq .`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx := NewCommandContext(cmd)
			model, err := cmdCtx.OpenModel()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return watchModel(ctx, model, debounce, watchPrinter(cmdCtx.Renderer))
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", DefaultWatchDebounce, "Quiet period before the directory is re-read")

	return cmd
}

// watchPrinter renders events in the renderer's mode.
func watchPrinter(r *output.Renderer) func(output.WatchEvent) {
	return func(ev output.WatchEvent) {
		if r.EffectiveMode() == output.ModeJSON {
			_ = r.JSON(ev)
			return
		}
		stamp := ev.Time.Local().Format(time.TimeOnly)
		switch ev.Type {
		case EventReady:
			r.Muted(fmt.Sprintf("%s watching %s", stamp, ev.Path))
		case EventRunAdded:
			r.StatusLine("run "+ev.Run, "success", stamp+" added")
		case EventRunRemoved:
			r.StatusLine("run "+ev.Run, "error", stamp+" removed")
		case EventLocked:
			r.StatusLine("model", "warning", stamp+" locked")
		case EventUnlocked:
			r.StatusLine("model", "success", stamp+" unlocked")
		}
	}
}

type watchState struct {
	runs   []string
	locked bool
}

func snapshot(model *alfa.Model) (watchState, error) {
	runs, err := model.DistinctRuns()
	if err != nil {
		return watchState{}, err
	}
	return watchState{runs: runs, locked: model.Locked()}, nil
}

// watchModel reports changes to model's runs and lock state through emit
// until ctx is done. Events are coalesced until the directory has been quiet
// for debounce. A ready event is emitted once the watcher is in place.
func watchModel(ctx context.Context, model *alfa.Model, debounce time.Duration, emit func(output.WatchEvent)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(model.Dir()); err != nil {
		return fmt.Errorf("failed to watch %s: %w", model.Dir(), err)
	}

	prev, err := snapshot(model)
	if err != nil {
		return err
	}
	emit(output.WatchEvent{Type: EventReady, Path: model.Dir(), Time: time.Now()})

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			timer.Reset(debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch %s: %w", model.Dir(), err)
		case <-timer.C:
			next, err := snapshot(model)
			if err != nil {
				return err
			}
			for _, ev := range diffStates(prev, next) {
				emit(ev)
			}
			prev = next
		}
	}
}

func diffStates(prev, next watchState) []output.WatchEvent {
	now := time.Now()
	var events []output.WatchEvent
	for _, id := range next.runs {
		if !slices.Contains(prev.runs, id) {
			events = append(events, output.WatchEvent{Type: EventRunAdded, Run: id, Time: now})
		}
	}
	for _, id := range prev.runs {
		if !slices.Contains(next.runs, id) {
			events = append(events, output.WatchEvent{Type: EventRunRemoved, Run: id, Time: now})
		}
	}
	if next.locked != prev.locked {
		typ := EventUnlocked
		if next.locked {
			typ = EventLocked
		}
		events = append(events, output.WatchEvent{Type: typ, Time: now})
	}
	return events
}
