package declloader

import "errors"

var (
	// Validation errors
	ErrMissingID         = errors.New("exception id is required")
	ErrDuplicateEntry    = errors.New("exception declared twice in one file")
	ErrUnsupportedSchema = errors.New("unsupported declaration schema")

	// Loading errors
	ErrInvalidYAML = errors.New("invalid YAML syntax")
)
