package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// rerunDelay coalesces the bursts of events editors produce on save.
const rerunDelay = 100 * time.Millisecond

// runWatch runs the pipeline once, then again after every change to the
// listing until interrupted. The parent directory is watched because many
// editors save by renaming a temporary file over the original.
func runWatch(opts options, log *zap.Logger) error {
	if opts.in == "-" {
		return fmt.Errorf("-watch needs a file, not stdin")
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	target, err := filepath.Abs(opts.in)
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(target)); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	_ = runOnce(opts, os.Stdout, os.Stderr)

	timer := time.NewTimer(rerunDelay)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			name, err := filepath.Abs(ev.Name)
			if err != nil || name != target {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			log.Debug("listing changed", zap.String("path", ev.Name), zap.Stringer("op", ev.Op))
			timer.Reset(rerunDelay)

		case <-timer.C:
			fmt.Fprintln(os.Stdout, summaryStyle.Render(";; "+time.Now().Format(time.TimeOnly)+" "+opts.in))
			_ = runOnce(opts, os.Stdout, os.Stderr)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("watch error", zap.Error(err))
		}
	}
}
