package quiz

// Config controls quiz generation and validation.
type Config struct {
	// Validators is the ordered list of validators to run on every
	// generated quiz. They execute in order; the first failure stops
	// the pipeline.
	Validators []Validator

	// MinQuestions is the minimum number of questions a quiz must
	// contain to be accepted.
	MinQuestions int

	// MaxAttempts bounds the generate-validate-repair loop.
	MaxAttempts int

	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64
}

// DefaultConfig returns a Config with the standard validator chain
// and recommended defaults.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&ContentValidator{},
		},
		MinQuestions: 10,
		MaxAttempts:  4,
		MaxTokens:    8192,
		Temperature:  0.2,
	}
}
