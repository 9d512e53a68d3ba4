package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/releasegate/relgate/pkg/console"
	"github.com/releasegate/relgate/pkg/constants"
	"github.com/releasegate/relgate/pkg/fileutil"
	"github.com/releasegate/relgate/pkg/logger"
	"github.com/releasegate/relgate/pkg/timeutil"
)

var watchLog = logger.New("cli:watch")

const watchDebounce = 250 * time.Millisecond

// RunValidateWatch validates the configured manifests once, then keeps
// watching them and revalidates on every change until interrupted. When the
// schema comes from a file rather than the embedded copy, schema edits
// trigger a run too.
//
// The parent directories are watched rather than the files themselves, so
// editors that save through a rename still trigger a run. Rapid event
// bursts are debounced into one run. The watch loop itself exits cleanly on
// interrupt; per-run failures show up in the reports only.
func RunValidateWatch(ctx context.Context, config ValidateConfig) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	watched := make(map[string]struct{}, len(config.ManifestFiles))
	dirs := make(map[string]struct{})
	for _, manifestPath := range config.ManifestFiles {
		abs, err := filepath.Abs(manifestPath)
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", manifestPath, err)
		}
		watched[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	if schemaFile := schemaFileToWatch(config.SchemaPath); schemaFile != "" {
		abs, err := filepath.Abs(schemaFile)
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", schemaFile, err)
		}
		watched[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		watchLog.Printf("watching directory: %s", dir)
	}

	run := func() {
		start := time.Now()
		if err := RunValidate(config); err != nil {
			watchLog.Printf("validation run failed: %v", err)
		}
		fmt.Println(console.FormatVerboseMessage(fmt.Sprintf("Run finished in %s", timeutil.FormatDuration(time.Since(start)))))
	}

	run()
	fmt.Println()
	fmt.Println(console.FormatInfoMessage(fmt.Sprintf("Watching %d manifest(s) for changes. Press Ctrl+C to stop.", len(config.ManifestFiles))))

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	pending := make(map[string]time.Time)
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			fmt.Println()
			fmt.Println(console.FormatInfoMessage("Watch stopped."))
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}
			if _, tracked := watched[abs]; !tracked {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			watchLog.Printf("%s event for %s", event.Op, event.Name)
			pending[abs] = time.Now()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			watchLog.Printf("watcher error: %v", err)

		case <-ticker.C:
			settled := false
			now := time.Now()
			for path, eventTime := range pending {
				if now.Sub(eventTime) >= watchDebounce {
					delete(pending, path)
					settled = true
				}
			}
			if settled {
				fmt.Println()
				run()
			}
		}
	}
}

// schemaFileToWatch returns the on-disk schema file a run will read, so that
// schema edits also trigger a revalidation. Empty when runs use the embedded
// schema.
func schemaFileToWatch(schemaPath string) string {
	if schemaPath != "" {
		return schemaPath
	}
	if fileutil.FileExists(constants.DefaultSchemaPath) {
		return constants.DefaultSchemaPath
	}
	return ""
}
