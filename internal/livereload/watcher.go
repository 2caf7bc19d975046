package livereload

import (
	"context"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for changes to settle.
const DefaultDebounce = 300 * time.Millisecond

// Watcher rebuilds after file changes settle and then notifies the hub.
type Watcher struct {
	Paths    []string // files or directories; directories are watched recursively
	Excludes []string // directory names to skip
	Ignore   []string // file patterns to skip
	Outputs  []string // generated files; writing them must not trigger a rebuild
	Debounce time.Duration

	// Rebuild regenerates the site. A failed rebuild is logged and clients
	// are not reloaded.
	Rebuild func() error
	// OnReload is called after a successful rebuild, e.g. Hub.Reload.
	OnReload func(changed string)

	fsw   *fsnotify.Watcher
	mu    sync.Mutex
	trees map[string]bool // directories watched for any change
	files map[string]bool // single files watched through their parent
}

// NewWatcher creates a Watcher with the default filters and debounce.
func NewWatcher(paths []string, rebuild func() error, onReload func(string)) *Watcher {
	return &Watcher{
		Paths:    paths,
		Excludes: DefaultExcludes,
		Ignore:   DefaultIgnore,
		Debounce: DefaultDebounce,
		Rebuild:  rebuild,
		OnReload: onReload,
	}
}

// Start adds the watches. Missing paths are logged and skipped.
func (w *Watcher) Start() error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	w.fsw = fsw
	w.trees = make(map[string]bool)
	w.files = make(map[string]bool)

	for _, root := range w.Paths {
		info, err := os.Stat(root)
		if err != nil {
			log.Printf("livereload: %s not found, not watching", root)
			continue
		}
		if !info.IsDir() {
			// Watch the parent so editors that replace the file are seen.
			if abs, err := filepath.Abs(root); err == nil {
				w.files[abs] = true
			}
			w.add(filepath.Dir(root))
			continue
		}
		w.addTree(root)
	}
	return nil
}

// Run delivers debounced rebuilds until ctx is done. Start must be called
// first.
func (w *Watcher) Run(ctx context.Context) {
	if w.fsw == nil {
		return
	}
	defer w.fsw.Close()

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	var (
		timer   *time.Timer
		fire    <-chan time.Time
		changed string
	)

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			if event.Has(fsnotify.Create) && isDir(event.Name) {
				w.addTree(event.Name)
			}
			changed = event.Name
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.rebuild(changed)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Printf("livereload: watcher error: %v", err)
		}
	}
}

func (w *Watcher) rebuild(changed string) {
	log.Printf("livereload: change detected in %s, rebuilding", changed)
	if w.Rebuild != nil {
		if err := w.Rebuild(); err != nil {
			log.Printf("livereload: rebuild failed: %v", err)
			return
		}
	}
	if w.OnReload != nil {
		w.OnReload(changed)
	}
}

// relevant reports whether event should trigger a rebuild.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)) {
		return false
	}
	if matchesAny(event.Name, w.Ignore) || w.isOutput(event.Name) {
		return false
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.files[abs] || w.trees[filepath.Dir(abs)]
}

func (w *Watcher) isOutput(name string) bool {
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	for _, out := range w.Outputs {
		if o, err := filepath.Abs(out); err == nil && o == abs {
			return true
		}
	}
	return false
}

func (w *Watcher) addTree(root string) {
	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Printf("livereload: walking %s: %v", path, err)
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && shouldExcludeDir(d.Name(), w.Excludes) {
			return filepath.SkipDir
		}
		if abs, err := filepath.Abs(path); err == nil {
			w.mu.Lock()
			w.trees[abs] = true
			w.mu.Unlock()
		}
		w.add(path)
		return nil
	})
}

func (w *Watcher) add(dir string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.fsw.Add(dir); err != nil {
		log.Printf("livereload: failed to watch %s: %v", dir, err)
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
