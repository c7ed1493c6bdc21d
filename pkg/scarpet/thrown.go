package scarpet

import (
	stderrors "errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/msto63/throwables/pkg/taxonomy"
)

// Thrown is a raised exception. The payload is opaque to this package.
type Thrown struct {
	Type    *taxonomy.ExceptionType
	Payload interface{}
	Message string

	// TraceID identifies one throw across logs
	TraceID string
}

// Throw raises an exception of the registered type typeID. An unknown
// type is a script error and returned as is.
func Throw(reg *taxonomy.Registry, typeID string, payload interface{}) (*Thrown, error) {
	et, err := reg.Lookup(typeID)
	if err != nil {
		return nil, err
	}
	return &Thrown{
		Type:    et,
		Payload: payload,
		TraceID: uuid.New().String(),
	}, nil
}

// Throwf is Throw with a formatted message
func Throwf(reg *taxonomy.Registry, typeID string, payload interface{}, format string, args ...interface{}) (*Thrown, error) {
	t, err := Throw(reg, typeID, payload)
	if err != nil {
		return nil, err
	}
	t.Message = fmt.Sprintf(format, args...)
	return t, nil
}

// Error implements error
func (t *Thrown) Error() string {
	if t.Message == "" {
		return t.Type.ID()
	}
	return t.Type.ID() + ": " + t.Message
}

// AsThrown extracts a *Thrown from an error chain
func AsThrown(err error) (*Thrown, bool) {
	var t *Thrown
	if stderrors.As(err, &t) {
		return t, true
	}
	return nil, false
}
