package taxonomy

// ExceptionType is a node of the taxonomy. Values are created by
// Registry.Register and are immutable; the parent pointer is a
// back-reference into the same registry.
type ExceptionType struct {
	id       string
	index    int
	depth    int
	parent   *ExceptionType
	registry *Registry
}

// ID returns the script-facing identifier
func (t *ExceptionType) ID() string {
	return t.id
}

// Parent returns the supertype, or nil for the root
func (t *ExceptionType) Parent() *ExceptionType {
	return t.parent
}

// ParentID returns the supertype id, or "" for the root
func (t *ExceptionType) ParentID() string {
	if t.parent == nil {
		return ""
	}
	return t.parent.id
}

// Depth is the number of edges between the type and the root
func (t *ExceptionType) Depth() int {
	return t.depth
}

// IsRoot reports whether the type has no parent
func (t *ExceptionType) IsRoot() bool {
	return t.parent == nil
}

// Ancestors returns the supertypes, nearest first, excluding t itself
func (t *ExceptionType) Ancestors() []*ExceptionType {
	result := make([]*ExceptionType, 0, t.depth)
	for p := t.parent; p != nil; p = p.parent {
		result = append(result, p)
	}
	return result
}

// IsRelevantFor reports whether a handler for filter catches a thrown t
func (t *ExceptionType) IsRelevantFor(filter string) (bool, error) {
	s := t.registry.load()
	f, ok := s.byID[filter]
	if !ok {
		return false, errNotRegistered(filter)
	}
	return s.closure[f.index].has(t.index), nil
}

// IsSubtypeOf reports whether t is filter or a transitive subtype of it.
// Types of different registries are never related.
func (t *ExceptionType) IsSubtypeOf(filter *ExceptionType) bool {
	if filter == nil || filter.registry != t.registry {
		return false
	}
	s := t.registry.load()
	if filter.index >= len(s.closure) {
		return false
	}
	return s.closure[filter.index].has(t.index)
}

// String returns the id
func (t *ExceptionType) String() string {
	return t.id
}
