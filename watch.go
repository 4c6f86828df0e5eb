package swiftdaddy

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce is how long Watch waits after the last change before it
// rebuilds.
const watchDebounce = 500 * time.Millisecond

// Watch calls rebuild whenever files below dirs change, until ctx is
// canceled. Bursts of changes result in a single rebuild. Directories that
// do not exist are ignored; new subdirectories are watched as they appear.
// Rebuild errors are logged, not returned.
func (a *App) Watch(ctx context.Context, dirs []string, rebuild func(context.Context) error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	for _, root := range dirs {
		if _, err := os.Stat(root); os.IsNotExist(err) {
			a.Logger.Infof("watch: %s not found, not watching", root)
			continue
		}
		err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if d.IsDir() {
				if err := watcher.Add(p); err != nil {
					a.Logger.Warnf("watch: %s: %v", p, err)
				}
			}
			return nil
		})
		if err != nil {
			return err
		}
	}

	timer := time.NewTimer(watchDebounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := watcher.Add(event.Name); err != nil {
						a.Logger.Warnf("watch: %s: %v", event.Name, err)
					}
				}
			}
			a.Logger.Debugf("watch: %s (%s)", event.Name, event.Op)
			timer.Reset(watchDebounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			a.Logger.Warnf("watch: %v", err)
		case <-timer.C:
			a.Logger.Infof("rebuilding after changes")
			if err := rebuild(ctx); err != nil {
				a.Logger.Errorf("rebuild failed: %v", err)
			}
		}
	}
}
