package quizgen

import "fmt"

// Validator checks a generated quiz for correctness.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier for this validator (for error
	// messages and logging), e.g. "structural", "answer".
	Name() string

	// Validate checks the quiz and returns nil if it passes.
	// Returns a ValidationError if the quiz fails the check.
	Validate(q *Quiz, input GenerateInput) *ValidationError
}

// ValidationError describes why a quiz failed validation.
type ValidationError struct {
	Validator string // Name of the validator that failed
	Message   string // Human-readable description of the failure
	Retryable bool   // Whether regeneration is likely to fix this
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}
