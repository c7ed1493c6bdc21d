// ============================================================================
// throwables - Scarpet Exception Taxonomy
// ============================================================================
//
// Package:     taxonomy
// Description: Copy-on-write exception type registry
// Author:      Mike Stoffels
// Created:     2026-10-14
// License:     MIT
// ============================================================================

package taxonomy

import (
	"strings"
	"sync"
	"sync/atomic"

	"github.com/msto63/throwables/pkg/core/logging"
)

// Registry holds one exception taxonomy. Reads run against the latest
// published snapshot without locking; Register is serialized.
type Registry struct {
	mu      sync.Mutex
	current atomic.Pointer[snapshot]
	logger  *logging.Logger

	bootstrap bool
}

// Option configures a Registry
type Option func(*Registry)

// WithLogger sets the logger used for registration events
func WithLogger(logger *logging.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithoutBuiltins creates an empty registry. The first Register call
// must then create the root.
func WithoutBuiltins() Option {
	return func(r *Registry) {
		r.bootstrap = false
	}
}

// New creates a registry populated with the built-in backbone
func New(opts ...Option) (*Registry, error) {
	r := &Registry{
		logger:    logging.NewNop(),
		bootstrap: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.current.Store(emptySnapshot())

	if r.bootstrap {
		if err := Bootstrap(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Registry) load() *snapshot {
	return r.current.Load()
}

// Lookup returns the type registered under id
func (r *Registry) Lookup(id string) (*ExceptionType, error) {
	t, ok := r.load().byID[id]
	if !ok {
		return nil, errNotRegistered(id)
	}
	return t, nil
}

// Exists reports whether id is registered
func (r *Registry) Exists(id string) bool {
	_, ok := r.load().byID[id]
	return ok
}

// Register adds id below parent. An empty parent creates the root, which
// is only allowed while the registry is empty.
//
// The new type is visible to every reader, with all ancestor closures
// updated, as soon as Register returns.
func (r *Registry) Register(id, parent string) (*ExceptionType, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errEmptyID()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	s := r.load()
	if _, ok := s.byID[id]; ok {
		return nil, errDuplicate(id)
	}

	t := &ExceptionType{
		id:       id,
		index:    len(s.types),
		registry: r,
	}

	if parent == "" {
		if root := s.root(); root != nil {
			return nil, errRootExists(id, root.id)
		}
	} else {
		p, ok := s.byID[parent]
		if !ok {
			return nil, errParentNotRegistered(id, parent)
		}
		t.parent = p
		t.depth = p.depth + 1
	}

	r.current.Store(s.extend(t))

	r.logger.Debug("Exception type registered",
		"id", id,
		"parent", parent,
		"depth", t.depth)

	return t, nil
}

// IsRelevantFor reports whether a handler declared for filter catches a
// thrown exception of type thrown. Both ids must be registered.
func (r *Registry) IsRelevantFor(thrown, filter string) (bool, error) {
	s := r.load()
	t, ok := s.byID[thrown]
	if !ok {
		return false, errNotRegistered(thrown)
	}
	f, ok := s.byID[filter]
	if !ok {
		return false, errNotRegistered(filter)
	}
	return s.closure[f.index].has(t.index), nil
}

// FirstMatch returns the position of the first filter that catches
// thrown, or -1 if none does. Filters are checked in the given order and
// every filter up to the match must be registered.
func (r *Registry) FirstMatch(thrown string, filters ...string) (int, error) {
	s := r.load()
	t, ok := s.byID[thrown]
	if !ok {
		return -1, errNotRegistered(thrown)
	}
	for i, filter := range filters {
		f, ok := s.byID[filter]
		if !ok {
			return -1, errNotRegistered(filter)
		}
		if s.closure[f.index].has(t.index) {
			return i, nil
		}
	}
	return -1, nil
}

// Len returns the number of registered types
func (r *Registry) Len() int {
	return len(r.load().types)
}

// Root returns the root type, or nil for an empty registry
func (r *Registry) Root() *ExceptionType {
	return r.load().root()
}

// IDs returns every registered id in registration order
func (r *Registry) IDs() []string {
	s := r.load()
	ids := make([]string, len(s.types))
	for i, t := range s.types {
		ids[i] = t.id
	}
	return ids
}

// Children returns the direct subtypes of id in registration order
func (r *Registry) Children(id string) ([]*ExceptionType, error) {
	s := r.load()
	t, ok := s.byID[id]
	if !ok {
		return nil, errNotRegistered(id)
	}
	idx := s.children[t.index]
	result := make([]*ExceptionType, len(idx))
	for i, c := range idx {
		result[i] = s.types[c]
	}
	return result, nil
}

// Descendants returns id and all its transitive subtypes, in
// registration order: the set of types a handler for id catches.
func (r *Registry) Descendants(id string) ([]*ExceptionType, error) {
	s := r.load()
	t, ok := s.byID[id]
	if !ok {
		return nil, errNotRegistered(id)
	}
	set := s.closure[t.index]
	result := make([]*ExceptionType, 0, set.count())
	set.each(func(i int) {
		result = append(result, s.types[i])
	})
	return result, nil
}
