package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/penwyp/go-peak-window/internal/data/watcher"
	"github.com/penwyp/go-peak-window/internal/util"
)

// debounceInterval groups bursts of file events into one re-run
const debounceInterval = 200 * time.Millisecond

// Watch runs once and then again whenever a watched case file changes,
// until ctx is cancelled. onReport, if set, receives every run's outcome.
func (r *Runner) Watch(ctx context.Context, onReport func(error)) error {
	paths := r.watchPaths()
	if len(paths) == 0 {
		return errors.New("watch mode needs case files or a directory")
	}

	fw, err := watcher.NewFileWatcher(paths)
	if err != nil {
		return fmt.Errorf("failed to watch case files: %w", err)
	}
	defer fw.Close()

	runOnce := func() {
		_, err := r.Run(ctx)
		if err != nil && ctx.Err() == nil {
			util.LogWarn("Evaluation failed", util.F("error", err))
		}
		if onReport != nil {
			onReport(err)
		}
	}
	runOnce()

	var (
		timer   *time.Timer
		timerCh <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-fw.Events():
			if !ok {
				return nil
			}
			util.LogDebug("Case file changed", util.F("file", event.Path), util.F("op", event.Operation))
			r.parser.Forget(event.Path)
			r.cache.Clear()
			if timer == nil {
				timer = time.NewTimer(debounceInterval)
			} else {
				timer.Reset(debounceInterval)
			}
			timerCh = timer.C

		case <-timerCh:
			timerCh = nil
			runOnce()
		}
	}
}
