// ============================================================================
// throwables - Scarpet Exception Taxonomy
// ============================================================================
//
// Package:     declloader
// Description: Declaration file loader with hot-reload support
// Author:      Mike Stoffels
// Created:     2026-10-14
// License:     MIT
// ============================================================================

package declloader

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	mdwerrors "github.com/msto63/throwables/pkg/core/errors"
	"github.com/msto63/throwables/pkg/core/logging"
	"github.com/msto63/throwables/pkg/scarpet"
	"github.com/msto63/throwables/pkg/taxonomy"
)

// DeclareFunc is called for every type a file declared
type DeclareFunc func(et *taxonomy.ExceptionType, source string)

// Loader registers exception types from YAML files in a directory and
// optionally keeps watching it. Types are never removed: editing a file
// can only add types, and deleting one only logs.
type Loader struct {
	mu           sync.Mutex
	reg          *taxonomy.Registry
	dir          string
	rootBranch   string
	debounce     time.Duration
	descriptions map[string]string // id -> description
	sources      map[string]string // id -> file
	logger       *logging.Logger
	onDeclare    DeclareFunc

	watcher *fsnotify.Watcher
	timers  map[string]*time.Timer
	reloads sync.WaitGroup // debounced reloads in progress
	stopCh  chan struct{}
	done    chan struct{}
	running bool
}

// Option configures a Loader
type Option func(*Loader)

// WithLogger sets the logger
func WithLogger(logger *logging.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithRootBranch sets the parent for entries that name none
func WithRootBranch(id string) Option {
	return func(l *Loader) {
		if id != "" {
			l.rootBranch = id
		}
	}
}

// WithDebounce sets how long a file must stay quiet before it is reloaded
func WithDebounce(d time.Duration) Option {
	return func(l *Loader) {
		if d > 0 {
			l.debounce = d
		}
	}
}

// NewLoader creates a loader for dir registering into reg
func NewLoader(reg *taxonomy.Registry, dir string, opts ...Option) *Loader {
	l := &Loader{
		reg:          reg,
		dir:          dir,
		rootBranch:   taxonomy.UserException,
		debounce:     250 * time.Millisecond,
		descriptions: make(map[string]string),
		sources:      make(map[string]string),
		logger:       logging.New("declloader"),
		timers:       make(map[string]*time.Timer),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// SetOnDeclare sets the callback for newly registered types
func (l *Loader) SetOnDeclare(fn DeclareFunc) {
	l.mu.Lock()
	l.onDeclare = fn
	l.mu.Unlock()
}

// Directory returns the watched directory
func (l *Loader) Directory() string {
	return l.dir
}

// LoadAll loads every *.yaml / *.yml file in lexical order and returns the
// number of types registered. A failing file does not stop the others;
// all failures are returned joined.
func (l *Loader) LoadAll() (int, error) {
	if err := os.MkdirAll(l.dir, 0755); err != nil {
		return 0, mdwerrors.Wrap(err, "failed to create declarations directory").
			WithCode(mdwerrors.CodeInvalidDeclaration).
			WithDetail("dir", l.dir)
	}

	files, err := filepath.Glob(filepath.Join(l.dir, "*.yaml"))
	if err != nil {
		return 0, fmt.Errorf("failed to list declaration files: %w", err)
	}
	ymlFiles, _ := filepath.Glob(filepath.Join(l.dir, "*.yml"))
	files = append(files, ymlFiles...)
	sort.Strings(files)

	if len(files) == 0 {
		l.logger.Info("No declaration files found in directory", "dir", l.dir)
		return 0, nil
	}

	total := 0
	var errs []error
	for _, file := range files {
		n, err := l.LoadFile(file)
		total += n
		if err != nil {
			l.logger.Warn("Failed to load declaration file", "file", file, "error", err)
			errs = append(errs, err)
		}
	}

	l.logger.Info("Declarations loaded from directory", "types", total, "files", len(files), "dir", l.dir)
	return total, stderrors.Join(errs...)
}

// LoadFile registers the types declared in one file. Ids already
// registered under the same parent are skipped, so reloading a file is
// harmless; an id registered under another parent is a collision.
func (l *Loader) LoadFile(path string) (int, error) {
	file, err := l.readFile(path)
	if err != nil {
		return 0, err
	}

	l.mu.Lock()
	var pending []taxonomy.Declaration
	for _, d := range file.Declarations() {
		if et, err := l.reg.Lookup(d.ID); err == nil && et.ParentID() == d.Parent {
			continue
		}
		pending = append(pending, d)
	}

	declared, err := scarpet.DeclareAll(l.reg, pending)
	for _, et := range declared {
		l.sources[et.ID()] = path
		for _, e := range file.Exceptions {
			if e.ID == et.ID() && e.Description != "" {
				l.descriptions[et.ID()] = e.Description
			}
		}
		l.logger.Info("Exception type declared", "id", et.ID(), "parent", et.ParentID(), "file", filepath.Base(path))
	}
	onDeclare := l.onDeclare
	l.mu.Unlock()

	// callbacks run unlocked so they may query the loader
	if onDeclare != nil {
		for _, et := range declared {
			onDeclare(et, path)
		}
	}

	if err != nil {
		return len(declared), mdwerrors.Wrap(err, "declaration file "+filepath.Base(path)).
			WithDetail("file", path)
	}
	return len(declared), nil
}

// readFile parses and validates a single YAML file
func (l *Loader) readFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, mdwerrors.Wrap(err, "failed to read declaration file").
			WithCode(mdwerrors.CodeInvalidDeclaration).
			WithDetail("file", path)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, mdwerrors.Wrap(fmt.Errorf("%w: %v", ErrInvalidYAML, err), "failed to parse declaration file").
			WithCode(mdwerrors.CodeInvalidDeclaration).
			WithDetail("file", path)
	}

	file.Defaults(l.rootBranch)
	if err := file.Validate(); err != nil {
		return nil, err
	}
	file.SourceFile = path

	return &file, nil
}

// Description returns the description a file gave id
func (l *Loader) Description(id string) (string, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	d, ok := l.descriptions[id]
	return d, ok
}

// Source returns the file that declared id
func (l *Loader) Source(id string) (string, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	s, ok := l.sources[id]
	return s, ok
}

// Watch reloads files as they are created or written until ctx is done
// or Stop is called. It returns once the watcher is running.
func (l *Loader) Watch(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.running {
		return nil
	}

	if err := os.MkdirAll(l.dir, 0755); err != nil {
		return fmt.Errorf("failed to create declarations directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(l.dir); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch directory: %w", err)
	}

	l.watcher = watcher
	l.stopCh = make(chan struct{})
	l.done = make(chan struct{})
	l.running = true
	l.logger.Info("Started watching for declaration changes", "dir", l.dir)

	go l.watchLoop(ctx, watcher, l.stopCh, l.done)
	return nil
}

// Stop stops the watcher and waits for it and any running reload to exit
func (l *Loader) Stop() {
	l.mu.Lock()
	if !l.running {
		l.mu.Unlock()
		return
	}
	close(l.stopCh)
	done := l.done
	l.mu.Unlock()

	<-done
}

func (l *Loader) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, stopCh <-chan struct{}, done chan<- struct{}) {
	defer func() {
		watcher.Close()
		l.mu.Lock()
		for name, t := range l.timers {
			t.Stop()
			delete(l.timers, name)
		}
		l.running = false
		l.mu.Unlock()

		// no reload can start once the timers are gone
		l.reloads.Wait()
		close(done)
	}()

	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Stopping declaration watcher (context cancelled)")
			return

		case <-stopCh:
			l.logger.Info("Stopping declaration watcher (stop signal)")
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !isYAMLFile(event.Name) {
				continue
			}
			l.handleFileEvent(event)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			l.logger.Error("Watcher error", "error", err)
		}
	}
}

// handleFileEvent schedules a reload, or logs a removal
func (l *Loader) handleFileEvent(event fsnotify.Event) {
	fileName := filepath.Base(event.Name)

	switch {
	case event.Has(fsnotify.Create) || event.Has(fsnotify.Write):
		l.scheduleReload(event.Name)

	case event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename):
		l.logger.Warn("Declaration file removed, its types stay registered", "file", fileName)
	}
}

// scheduleReload reloads path once no event arrived for the debounce delay
func (l *Loader) scheduleReload(path string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if t, ok := l.timers[path]; ok {
		t.Reset(l.debounce)
		return
	}
	l.timers[path] = time.AfterFunc(l.debounce, func() {
		l.mu.Lock()
		if _, pending := l.timers[path]; !pending {
			// watcher stopped, or an earlier firing already took it
			l.mu.Unlock()
			return
		}
		delete(l.timers, path)
		l.reloads.Add(1)
		l.mu.Unlock()
		defer l.reloads.Done()

		fileName := filepath.Base(path)
		l.logger.Info("Declaration file changed, reloading", "file", fileName)
		n, err := l.LoadFile(path)
		if err != nil {
			l.logger.Error("Failed to reload declaration file", "file", fileName, "error", err)
			return
		}
		l.logger.Info("Declaration file reloaded", "file", fileName, "new_types", n)
	})
}

func isYAMLFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
