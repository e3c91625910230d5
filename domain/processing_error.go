package domain

import "fmt"

type ErrorKind string

const (
	ErrorKindNetwork    ErrorKind = "network"
	ErrorKindValidation ErrorKind = "validation"
	ErrorKindProcessing ErrorKind = "processing"
	ErrorKindRendering  ErrorKind = "rendering"
	ErrorKindUnknown    ErrorKind = "unknown"
)

// ProcessingError is the single public failure surface of the client.
// Always built through NewProcessingError so that the Recoverable
// invariant holds: only validation errors are non-recoverable.
type ProcessingError struct {
	Kind        ErrorKind
	Message     string
	Details     map[string]any
	Recoverable bool
	Suggestions []string
}

func (e *ProcessingError) Error() string {
	return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
}

// NewProcessingError builds a classified ProcessingError.
// Unrecognized kinds are downgraded to ErrorKindUnknown.
func NewProcessingError(kind ErrorKind, message string, details map[string]any) *ProcessingError {
	switch kind {
	case ErrorKindNetwork, ErrorKindValidation, ErrorKindProcessing, ErrorKindRendering, ErrorKindUnknown:
	default:
		kind = ErrorKindUnknown
	}
	return &ProcessingError{
		Kind:        kind,
		Message:     message,
		Details:     details,
		Recoverable: kind != ErrorKindValidation,
		Suggestions: suggestionsFor(kind),
	}
}

func suggestionsFor(kind ErrorKind) []string {
	switch kind {
	case ErrorKindNetwork:
		return []string{
			"Check your internet connection",
			"Retry in a few seconds",
		}
	case ErrorKindValidation:
		return []string{
			"Check the file format and size",
			"Pick a supported document type",
		}
	case ErrorKindProcessing:
		return []string{
			"Retry the upload",
			"Try a smaller document if the problem persists",
		}
	case ErrorKindRendering:
		return []string{
			"Refresh and try again",
		}
	default:
		return []string{
			"Retry the operation",
			"Contact support if the problem persists",
		}
	}
}
