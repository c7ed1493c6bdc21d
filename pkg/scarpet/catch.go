package scarpet

import (
	"github.com/msto63/throwables/pkg/taxonomy"
)

// Catch returns the index of the first filter that catches thrown, or -1.
// Filters are given in handler declaration order, innermost first.
func Catch(reg *taxonomy.Registry, thrown *Thrown, filters ...string) (int, error) {
	return reg.FirstMatch(thrown.Type.ID(), filters...)
}

// Handler is one catch clause
type Handler struct {
	Filter string
	Handle func(*Thrown) error
}

// Try runs body and hands a *Thrown it returns to the first matching
// handler. Errors that are not thrown exceptions, and exceptions no
// handler catches, are returned unchanged.
func Try(reg *taxonomy.Registry, body func() error, handlers ...Handler) error {
	err := body()
	if err == nil {
		return nil
	}
	thrown, ok := AsThrown(err)
	if !ok {
		return err
	}

	filters := make([]string, len(handlers))
	for i, h := range handlers {
		filters[i] = h.Filter
	}

	idx, matchErr := Catch(reg, thrown, filters...)
	if matchErr != nil {
		return matchErr
	}
	if idx < 0 {
		return err
	}
	if handlers[idx].Handle == nil {
		return nil
	}
	return handlers[idx].Handle(thrown)
}
