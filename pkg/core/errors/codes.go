// ============================================================================
// throwables - Scarpet Exception Taxonomy
// ============================================================================
//
// Package:     errors
// Description: Error codes for the taxonomy, loaders and journal
// Author:      Mike Stoffels
// Created:     2026-10-14
// License:     MIT
// ============================================================================

package errors

import "google.golang.org/grpc/codes"

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown  Code = "UNKNOWN"
	CodeInternal Code = "INTERNAL"

	// Taxonomy. Covers every reference to an exception type that does not
	// resolve to exactly one registered node: unknown ids, unknown parents
	// and naming collisions. The "reason" detail tells them apart.
	CodeUnknownExceptionType Code = "UNKNOWN_EXCEPTION_TYPE"

	// Declarations and persistence
	CodeInvalidDeclaration Code = "INVALID_DECLARATION"
	CodeStoreError         Code = "STORE_ERROR"

	// Configuration
	CodeConfigError Code = "CONFIG_ERROR"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// IsValid checks if the error code is a known valid code
func (c Code) IsValid() bool {
	switch c {
	case CodeUnknown, CodeInternal,
		CodeUnknownExceptionType,
		CodeInvalidDeclaration, CodeStoreError,
		CodeConfigError:
		return true
	default:
		return false
	}
}

// Category returns the high-level category of the error code
func (c Code) Category() string {
	switch c {
	case CodeUnknownExceptionType:
		return "taxonomy"
	case CodeInvalidDeclaration:
		return "declaration"
	case CodeStoreError:
		return "storage"
	case CodeConfigError:
		return "configuration"
	default:
		return "generic"
	}
}

// GRPCCode returns the gRPC status code for this error code
func (c Code) GRPCCode() codes.Code {
	switch c {
	case CodeUnknownExceptionType, CodeInvalidDeclaration, CodeConfigError:
		return codes.InvalidArgument
	case CodeStoreError:
		return codes.Unavailable
	case CodeInternal:
		return codes.Internal
	default:
		return codes.Unknown
	}
}
