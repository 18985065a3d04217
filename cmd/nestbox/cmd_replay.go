package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/phanxgames/nestbox"
)

// watchDebounce is how long to wait for more writes before replaying.
const watchDebounce = 100 * time.Millisecond

// replayResult describes one headless replay run.
type replayResult struct {
	RunID     string
	Dir       string
	Frames    int
	Snapshots []string
	Editor    *nestbox.Editor
}

// replayer runs scripts headlessly with a manual clock.
type replayer struct {
	outDir    string
	opts      nestbox.SnapshotOptions
	maxFrames int
	logger    *slog.Logger
	newID     func() string
}

func newReplayer(c Config, outDir string, logger *slog.Logger) *replayer {
	if outDir == "" {
		outDir = c.Replay.Out
	}
	return &replayer{
		outDir: outDir,
		opts: nestbox.SnapshotOptions{
			Width:      c.Replay.Width,
			Height:     c.Replay.Height,
			PixelScale: c.Surface.PixelScale,
			Border:     c.Surface.Border,
		},
		maxFrames: c.Replay.MaxFrames,
		logger:    logger,
		newID:     uuid.NewString,
	}
}

// replayFile loads the script at path and replays it.
func (r *replayer) replayFile(path string) (replayResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return replayResult{}, fmt.Errorf("read script: %w", err)
	}
	return r.replay(data, nestbox.ScriptFormatFromPath(path))
}

// replay runs a script to completion. Each snapshot step writes a PNG into
// a directory named after a fresh run id. When outDir is empty, snapshot
// steps are skipped.
func (r *replayer) replay(data []byte, format nestbox.ScriptFormat) (replayResult, error) {
	runner, err := nestbox.LoadScript(data, format)
	if err != nil {
		return replayResult{}, err
	}

	clock := nestbox.NewManualClock(time.Unix(0, 0))
	ed := nestbox.NewEditor(nestbox.EditorConfig{Clock: clock, Logger: r.logger})
	res := replayResult{Editor: ed}
	if r.outDir != "" {
		res.RunID = r.newID()
		res.Dir = filepath.Join(r.outDir, res.RunID)
	}

	var snapErr error
	runner.OnSnapshot = func(label string) {
		if res.Dir == "" || snapErr != nil {
			return
		}
		name := fmt.Sprintf("%03d_%s.png", len(res.Snapshots), nestbox.SanitizeLabel(label))
		path := filepath.Join(res.Dir, name)
		img := nestbox.RenderSnapshot(ed.Flatten(), r.opts)
		if err := nestbox.WriteSnapshotPNG(path, img); err != nil {
			snapErr = err
			return
		}
		res.Snapshots = append(res.Snapshots, path)
		r.logger.Debug("snapshot", "label", label, "path", path)
	}

	res.Frames, err = nestbox.RunScript(ed, clock, runner, r.maxFrames)
	if err = errors.Join(err, snapErr); err != nil {
		return res, err
	}
	r.logger.Info("replay finished", "run", res.RunID, "frames", res.Frames, "snapshots", len(res.Snapshots))
	return res, nil
}

func runReplay(cmd *cobra.Command, args []string) error {
	out, _ := cmd.Flags().GetString("out")
	watch, _ := cmd.Flags().GetBool("watch")
	r := newReplayer(cfg, out, logger)
	path := args[0]

	report := func() error {
		res, err := r.replayFile(path)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d frames, %d snapshots in %s\n",
			res.RunID, res.Frames, len(res.Snapshots), res.Dir)
		return nil
	}

	if err := report(); err != nil {
		if !watch {
			return err
		}
		logger.Error("replay", "err", err)
	}
	if !watch {
		return nil
	}
	return watchFile(cmd.Context(), path, logger, func() {
		if err := report(); err != nil {
			logger.Error("replay", "err", err)
		}
	})
}

// watchFile calls fn after the file at path is written, debouncing bursts
// of writes. It watches the parent directory so editors that replace the
// file on save are seen. Blocks until ctx is done.
func watchFile(ctx context.Context, path string, logger *slog.Logger, fn func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	logger.Info("watching", "path", abs)

	var timer *time.Timer
	fire := make(chan struct{}, 1)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(watchDebounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})
		case <-fire:
			fn()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher", "err", err)
		}
	}
}
