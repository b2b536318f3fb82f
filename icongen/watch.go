package icongen

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce groups the burst of events an editor emits when saving.
const DefaultDebounce = 250 * time.Millisecond

// RunFunc receives the outcome of each regeneration.
type RunFunc func(report *Report, err error)

// Watch regenerates the icons every time inputPath is written, created or
// replaced, until ctx is done. It does not run an initial generation.
// Fatal errors of a regeneration are passed to onRun and watching
// continues, since a source that is half written decodes badly.
func (g *Generator) Watch(ctx context.Context, inputPath, outputDir string, debounce time.Duration, onRun RunFunc) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: editors often replace the file, which drops a
	// watch placed on the file itself.
	absInput, err := filepath.Abs(inputPath)
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(absInput)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(absInput), err)
	}

	log := g.logger.With(zap.String("input", inputPath))
	log.Info("watching source for changes")

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("watch stopped")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != absInput {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			log.Debug("source changed", zap.String("op", event.Op.String()))
			timer.Reset(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("watcher error", zap.Error(err))

		case <-timer.C:
			report, err := g.Generate(ctx, inputPath, outputDir)
			if onRun != nil {
				onRun(report, err)
			}
		}
	}
}
