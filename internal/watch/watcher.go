package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"transcriptor/internal/logging"
	"transcriptor/internal/pipeline"
	"transcriptor/internal/transcript"
)

// DefaultSettle is the quiet period applied when none is configured.
const DefaultSettle = 2 * time.Second

// Runner executes the pipeline for one detected file. Satisfied by
// *pipeline.Pipeline; tests substitute stubs.
type Runner interface {
	Run(ctx context.Context, input string, opts pipeline.Options) (*pipeline.Report, error)
}

// Watcher processes media files as they appear in a directory. Files are
// handled strictly one at a time in arrival order; a per-file failure is
// logged and watching continues.
type Watcher struct {
	dir      string
	runner   Runner
	opts     pipeline.Options
	settle   time.Duration
	exts     map[string]struct{}
	logger   *slog.Logger
	onReport func(*pipeline.Report)
}

// New creates a Watcher over dir. extensions filters which files are picked
// up (dot-prefixed, case-insensitive); settle is the quiet period after the
// last write before a file counts as complete.
func New(dir string, runner Runner, opts pipeline.Options, extensions []string, settle time.Duration, logger *slog.Logger) (*Watcher, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("watch directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("watch path %s is not a directory", dir)
	}
	if runner == nil {
		return nil, errors.New("watcher requires a pipeline runner")
	}
	if settle <= 0 {
		settle = DefaultSettle
	}

	exts := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts[ext] = struct{}{}
	}

	return &Watcher{
		dir:    dir,
		runner: runner,
		opts:   opts,
		settle: settle,
		exts:   exts,
		logger: logging.NewComponentLogger(logger, "watch"),
	}, nil
}

// OnReport registers a callback invoked after each successful run.
func (w *Watcher) OnReport(fn func(*pipeline.Report)) {
	w.onReport = fn
}

// Watch blocks handling events until the context is cancelled. Files already
// present in the directory are processed first.
func (w *Watcher) Watch(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()
	if err := fsw.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}

	w.logger.Info("watching directory",
		logging.String("dir", w.dir),
		logging.Duration("settle", w.settle),
		logging.Int("extensions", len(w.exts)))

	w.processExisting(ctx)

	pending := make(map[string]time.Time)
	tick := w.settle / 2
	if tick < 100*time.Millisecond {
		tick = 100 * time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("watch stopped")
			return ctx.Err()

		case event, ok := <-fsw.Events:
			if !ok {
				return errors.New("watcher event channel closed")
			}
			if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
				continue
			}
			if !w.eligible(event.Name) {
				continue
			}
			if _, seen := pending[event.Name]; !seen {
				w.logger.Info("media file detected", logging.String("path", event.Name))
			}
			pending[event.Name] = time.Now()

		case err, ok := <-fsw.Errors:
			if !ok {
				return errors.New("watcher error channel closed")
			}
			w.logger.Warn("watch error", logging.Error(err))

		case now := <-ticker.C:
			for _, path := range settled(pending, now, w.settle) {
				delete(pending, path)
				w.process(ctx, path)
			}
		}
	}
}

// settled returns the pending paths whose quiet period elapsed, oldest
// event first so arrival order is preserved.
func settled(pending map[string]time.Time, now time.Time, settle time.Duration) []string {
	due := make([]string, 0, len(pending))
	for path, last := range pending {
		if now.Sub(last) >= settle {
			due = append(due, path)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		if !pending[due[i]].Equal(pending[due[j]]) {
			return pending[due[i]].Before(pending[due[j]])
		}
		return due[i] < due[j]
	})
	return due
}

// processExisting handles files sitting in the directory before the watch
// started, in name order.
func (w *Watcher) processExisting(ctx context.Context) {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		w.logger.Warn("initial directory scan failed", logging.Error(err))
		return
	}
	for _, entry := range entries {
		if ctx.Err() != nil {
			return
		}
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(w.dir, entry.Name())
		if w.eligible(path) {
			w.process(ctx, path)
		}
	}
}

// eligible filters events down to regular media files. Dot-prefixed names
// cover editor and atomic-write temp files.
func (w *Watcher) eligible(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return false
	}
	if _, ok := w.exts[strings.ToLower(filepath.Ext(base))]; !ok {
		return false
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	return true
}

func (w *Watcher) process(ctx context.Context, path string) {
	if w.transcriptExists(path) {
		w.logger.Info("transcript already present, skipping",
			logging.String("path", path))
		return
	}

	report, err := w.runner.Run(ctx, path, w.opts)
	if err != nil {
		w.logger.Error("processing failed",
			logging.String("path", path),
			logging.Error(err))
		return
	}
	w.logger.Info("processing completed",
		logging.String("path", path),
		logging.String("transcript", report.Transcript),
		logging.Duration("elapsed", report.Elapsed))
	if w.onReport != nil {
		w.onReport(report)
	}
}

// transcriptExists reports whether a valid transcript for the file is
// already on disk. An existing but malformed transcript does not count, so
// interrupted runs are redone.
func (w *Watcher) transcriptExists(path string) bool {
	opts := w.opts
	if pipeline.IsAudioPath(path) {
		opts.SkipExtraction = true
	}
	paths := pipeline.DerivePaths(path, opts)
	if _, err := os.Stat(paths.Transcript); err != nil {
		return false
	}
	if issues := transcript.ValidateFile(paths.Transcript); len(issues) != 0 {
		w.logger.Warn("existing transcript failed validation, reprocessing",
			logging.String("transcript", paths.Transcript),
			logging.String("issues", strings.Join(issues, ", ")))
		return false
	}
	return true
}
