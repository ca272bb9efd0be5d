package watcher

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/penwyp/go-peak-window/internal/core/model"
	"github.com/penwyp/go-peak-window/internal/data/scanner"
	"github.com/penwyp/go-peak-window/internal/util"
)

// fileVersion identifies the content of a case file
type fileVersion struct {
	info        util.FileInfo
	fingerprint string
}

// FileWatcher reports changes to case files
type FileWatcher struct {
	watcher *fsnotify.Watcher
	events  chan model.FileEvent
	done    chan struct{}

	mu       sync.Mutex
	versions map[string]fileVersion
	closeOne sync.Once
}

// NewFileWatcher watches the given files and directories. Directories are
// watched recursively; files are watched through their parent directory so
// editors that replace files on save are still observed.
func NewFileWatcher(paths []string) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	fw := &FileWatcher{
		watcher:  watcher,
		events:   make(chan model.FileEvent, 100),
		done:     make(chan struct{}),
		versions: make(map[string]fileVersion),
	}

	for _, path := range paths {
		if err := fw.addPath(path); err != nil {
			watcher.Close()
			return nil, err
		}
	}

	go fw.processEvents()

	return fw, nil
}

func (fw *FileWatcher) addPath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	if !info.IsDir() {
		fw.remember(path)
		return fw.watcher.Add(filepath.Dir(path))
	}

	return filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			return fw.watcher.Add(p)
		}
		if scanner.IsCaseFile(p) {
			fw.remember(p)
		}
		return nil
	})
}

// remember records the current version of path and reports whether it changed
func (fw *FileWatcher) remember(path string) bool {
	var current fileVersion
	if info, err := util.GetFileInfo(path); err == nil {
		current.info = *info
	}
	if fp, err := util.CalculateFileFingerprint(path); err == nil {
		current.fingerprint = fp
	}

	fw.mu.Lock()
	defer fw.mu.Unlock()

	previous, known := fw.versions[path]
	fw.versions[path] = current
	return !known || previous.fingerprint != current.fingerprint || !previous.info.Same(current.info)
}

func (fw *FileWatcher) processEvents() {
	defer close(fw.events)

	for {
		select {
		case <-fw.done:
			return

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if !scanner.IsCaseFile(event.Name) {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				if !fw.remember(event.Name) {
					util.LogDebug("Ignoring event for unchanged case file", util.F("file", event.Name))
					continue
				}
			}

			select {
			case fw.events <- model.FileEvent{Path: event.Name, Operation: event.Op.String()}:
			case <-fw.done:
				return
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			util.LogError("File monitoring error: " + err.Error())
		}
	}
}

// Events returns the channel of case file changes. It is closed after Close.
func (fw *FileWatcher) Events() <-chan model.FileEvent {
	return fw.events
}

func (fw *FileWatcher) Close() error {
	var err error
	fw.closeOne.Do(func() {
		close(fw.done)
		err = fw.watcher.Close()
	})
	return err
}
