// Package ranking adapts the external text-generation service into the
// selection Ranker contract, with deterministic fallback on any failure.
package ranking

import "fmt"

// ResponseShapeError represents a service reply that violates the expected
// structure: not JSON, not a list, or the wrong element type. It is treated
// identically to a service-level error and resolved by fallback.
type ResponseShapeError struct {
	Message string
	Cause   error
}

func (e *ResponseShapeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed ranking response: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("malformed ranking response: %s", e.Message)
}

func (e *ResponseShapeError) Unwrap() error {
	return e.Cause
}
