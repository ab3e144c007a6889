package corpus

import "fmt"

// LoadError represents a failure reading or decoding a source file
type LoadError struct {
	Path  string
	Cause error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load %s: %v", e.Path, e.Cause)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// ValidationError represents a structural problem in loaded corpus data
type ValidationError struct {
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid corpus data: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid corpus data: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}
