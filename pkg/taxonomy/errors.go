package taxonomy

import (
	stderrors "errors"
	"fmt"

	mdwerrors "github.com/msto63/throwables/pkg/core/errors"
)

// ErrUnknownExceptionType is the errors.Is target for every taxonomy lookup
// or registration failure.
var ErrUnknownExceptionType = mdwerrors.Sentinel(mdwerrors.CodeUnknownExceptionType)

// Reason distinguishes the cases of ErrUnknownExceptionType
type Reason string

const (
	// ReasonNotRegistered: the referenced id was never registered
	ReasonNotRegistered Reason = "not_registered"

	// ReasonParentNotRegistered: Register was given an unknown parent
	ReasonParentNotRegistered Reason = "parent_not_registered"

	// ReasonDuplicate: Register was given an id that already exists
	ReasonDuplicate Reason = "duplicate"

	// ReasonRootExists: a parentless Register after the root was registered
	ReasonRootExists Reason = "root_exists"

	// ReasonEmptyID: Register was given a blank id
	ReasonEmptyID Reason = "empty_id"
)

const (
	detailID     = "id"
	detailParent = "parent"
	detailReason = "reason"
)

func unknownType(id string, reason Reason, format string, args ...interface{}) *mdwerrors.Error {
	return mdwerrors.Newf(format, args...).
		WithCode(mdwerrors.CodeUnknownExceptionType).
		WithDetail(detailID, id).
		WithDetail(detailReason, string(reason))
}

func errNotRegistered(id string) error {
	return unknownType(id, ReasonNotRegistered, "unknown exception type: %s", id)
}

func errParentNotRegistered(id, parent string) error {
	return unknownType(id, ReasonParentNotRegistered,
		"unknown exception type: %s (parent of %s)", parent, id).
		WithDetail(detailParent, parent)
}

func errDuplicate(id string) error {
	return unknownType(id, ReasonDuplicate, "exception type already registered: %s", id)
}

func errRootExists(id, root string) error {
	return unknownType(id, ReasonRootExists,
		"exception type %s needs a parent: root %s already registered", id, root).
		WithDetail(detailParent, "")
}

func errEmptyID() error {
	return unknownType("", ReasonEmptyID, "exception type id cannot be empty")
}

// ErrorReason returns the Reason of a taxonomy error, or "" if err is not one
func ErrorReason(err error) Reason {
	var e *mdwerrors.Error
	if !stderrors.As(err, &e) || e.Code() != mdwerrors.CodeUnknownExceptionType {
		return ""
	}
	v, ok := e.Detail(detailReason)
	if !ok {
		return ""
	}
	return Reason(fmt.Sprint(v))
}

// ErrorID returns the id that failed to resolve: the unknown parent for
// ReasonParentNotRegistered, the offending id otherwise
func ErrorID(err error) string {
	var e *mdwerrors.Error
	if !stderrors.As(err, &e) || e.Code() != mdwerrors.CodeUnknownExceptionType {
		return ""
	}
	if ErrorReason(err) == ReasonParentNotRegistered {
		if v, ok := e.Detail(detailParent); ok {
			return fmt.Sprint(v)
		}
	}
	v, _ := e.Detail(detailID)
	s, _ := v.(string)
	return s
}

// IsDuplicate reports whether err is a naming collision on Register
func IsDuplicate(err error) bool {
	return ErrorReason(err) == ReasonDuplicate
}
