package quiz

import "fmt"

// Validator checks a generated quiz for correctness.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier for this validator (for error
	// messages and logging), e.g. "structural", "content".
	Name() string

	// Validate checks the quiz and returns nil if it passes. The quiz
	// must already be normalized.
	Validate(q *Quiz, cfg Config) *ValidationError
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

// Validate normalizes the quiz and runs the configured validator chain
// in order. The first failure stops the pipeline.
func Validate(q *Quiz, cfg Config) error {
	q.Normalize()
	for _, v := range cfg.Validators {
		if verr := v.Validate(q, cfg); verr != nil {
			return verr
		}
	}
	return nil
}
