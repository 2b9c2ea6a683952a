package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/matzehuels/anchorlayout/pkg/pipeline"
)

// watchDebounce coalesces the burst of events editors emit for one save.
const watchDebounce = 100 * time.Millisecond

// watchCommand creates the watch command, which re-resolves a declaration
// file every time it changes.
func (c *CLI) watchCommand() *cobra.Command {
	var lf layoutFlags

	cmd := &cobra.Command{
		Use:               "watch [file]",
		Short:             "Re-resolve a declaration file whenever it changes",
		Example:           `  anchorlayout watch ui.yaml --policy clamp --width 1280 --height 720`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeDeclaration,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runWatch(cmd, args[0], &lf)
		},
	}
	lf.register(cmd)
	return cmd
}

func (c *CLI) runWatch(cmd *cobra.Command, path string, lf *layoutFlags) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	path, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx)
	if err != nil {
		return err
	}
	defer runner.Close()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Editors often replace the file on save, so watch the directory.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	c.watchOnce(ctx, cmd, runner, path, lf)
	printInfo("Watching %s", path)

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path || !changed(event) {
				continue
			}
			logger.Debug("file event", "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
			} else {
				timer.Reset(watchDebounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			c.watchOnce(ctx, cmd, runner, path, lf)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "err", err)
		}
	}
}

func changed(event fsnotify.Event) bool {
	return event.Op&fsnotify.Write == fsnotify.Write ||
		event.Op&fsnotify.Create == fsnotify.Create ||
		event.Op&fsnotify.Rename == fsnotify.Rename
}

// watchOnce resolves path and prints a one-line summary. Errors are printed
// rather than returned so the watch loop survives a broken edit.
func (c *CLI) watchOnce(ctx context.Context, cmd *cobra.Command, runner *pipeline.Runner, path string, lf *layoutFlags) {
	snap, hit, err := c.resolveFile(ctx, cmd, runner, path, lf)
	if err != nil {
		printError("%v", err)
		return
	}
	fmt.Fprintln(c.Out, statsLine(snap, hit))
	printDiagnostics(snap.Diagnostics)
}
