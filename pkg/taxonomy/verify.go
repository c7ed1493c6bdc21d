package taxonomy

import (
	mdwerrors "github.com/msto63/throwables/pkg/core/errors"
)

// Verify checks the published snapshot: every built-in type is present
// under its built-in parent, and each closure holds exactly the type and
// its transitive subtypes. A failure is an internal error.
func Verify(r *Registry) error {
	s := r.load()

	for _, d := range builtins {
		t, ok := s.byID[d.ID]
		if !ok {
			return corrupt("built-in type %s missing", d.ID)
		}
		if t.ParentID() != d.Parent {
			return corrupt("built-in type %s has parent %q, want %q", d.ID, t.ParentID(), d.Parent)
		}
	}

	counts := make([]int, len(s.types))
	for _, t := range s.types {
		if s.byID[t.id] != t || s.types[t.index] != t {
			return corrupt("type %s not interned consistently", t.id)
		}
		for a := t; a != nil; a = a.parent {
			if !s.closure[a.index].has(t.index) {
				return corrupt("closure of %s lacks %s", a.id, t.id)
			}
			counts[a.index]++
		}
	}
	for i, c := range counts {
		if n := s.closure[i].count(); n != c {
			return corrupt("closure of %s has %d members, want %d", s.types[i].id, n, c)
		}
	}
	return nil
}

func corrupt(format string, args ...interface{}) error {
	return mdwerrors.Newf(format, args...).WithCode(mdwerrors.CodeInternal)
}
