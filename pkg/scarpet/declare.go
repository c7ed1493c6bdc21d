package scarpet

import (
	"github.com/msto63/throwables/pkg/taxonomy"
)

// Declare registers a script-defined exception type. An empty parent
// attaches it to the user exception branch.
func Declare(reg *taxonomy.Registry, id, parent string) (*taxonomy.ExceptionType, error) {
	if parent == "" {
		parent = taxonomy.UserException
	}
	return reg.Register(id, parent)
}

// DeclareAll registers a batch of declarations. Entries may reference
// parents declared later in the same batch; the batch is registered
// parents first and otherwise in input order.
//
// Registration stops at the first failure. Types registered before it
// stay registered. A parent that is neither registered nor declared in
// the batch, or a cycle inside the batch, fails with
// taxonomy.ErrUnknownExceptionType.
func DeclareAll(reg *taxonomy.Registry, decls []taxonomy.Declaration) ([]*taxonomy.ExceptionType, error) {
	pending := make([]taxonomy.Declaration, len(decls))
	for i, d := range decls {
		if d.Parent == "" {
			d.Parent = taxonomy.UserException
		}
		pending[i] = d
	}

	result := make([]*taxonomy.ExceptionType, 0, len(decls))
	for len(pending) > 0 {
		var deferred []taxonomy.Declaration
		for _, d := range pending {
			if !reg.Exists(d.Parent) && declares(pending, d.Parent) {
				deferred = append(deferred, d)
				continue
			}
			et, err := reg.Register(d.ID, d.Parent)
			if err != nil {
				return result, err
			}
			result = append(result, et)
		}

		if len(deferred) == len(pending) {
			// every remaining entry waits on another one: a cycle
			d := deferred[0]
			_, err := reg.Register(d.ID, d.Parent)
			return result, err
		}
		pending = deferred
	}
	return result, nil
}

func declares(decls []taxonomy.Declaration, id string) bool {
	for _, d := range decls {
		if d.ID == id {
			return true
		}
	}
	return false
}
