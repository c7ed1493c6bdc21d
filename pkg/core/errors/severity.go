package errors

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow indicates a minor error, e.g. a rejected declaration file
	SeverityLow Severity = iota

	// SeverityMedium indicates an error that affects functionality but has workarounds
	SeverityMedium

	// SeverityHigh indicates a programming or script error that must surface,
	// e.g. an unknown exception type used as a catch filter
	SeverityHigh

	// SeverityCritical indicates an error that makes the registry unusable
	SeverityCritical
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// ShouldAlert returns true if this severity level should trigger alerts
func (s Severity) ShouldAlert() bool {
	return s >= SeverityHigh
}

// SeverityFromCode determines the default severity for an error code
func SeverityFromCode(code Code) Severity {
	switch code {
	case CodeInternal:
		return SeverityCritical
	case CodeUnknownExceptionType:
		return SeverityHigh
	case CodeInvalidDeclaration, CodeConfigError:
		return SeverityLow
	default:
		return SeverityMedium
	}
}
