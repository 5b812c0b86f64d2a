package quiz

import (
	"fmt"
	"strings"
)

// ContentValidator enforces quiz-level rules: enough questions, no
// duplicate question text, and a mix of both answer types.
type ContentValidator struct{}

func (v *ContentValidator) Name() string { return "content" }

func (v *ContentValidator) Validate(q *Quiz, cfg Config) *ValidationError {
	if len(q.Questions) < cfg.MinQuestions {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("too few questions: %d < %d", len(q.Questions), cfg.MinQuestions),
			Retryable: true,
		}
	}

	seen := make(map[string]bool, len(q.Questions))
	hasTF := false
	hasMC := false

	for _, qi := range q.Questions {
		key := strings.ToLower(strings.TrimSpace(qi.Text))
		if seen[key] {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("duplicate question %q", qi.Text),
				Retryable: true,
			}
		}
		seen[key] = true

		switch qi.Answer.Type {
		case AnswerTrueFalse:
			hasTF = true
		case AnswerMultiChoice:
			hasMC = true
		}
	}

	if !hasTF || !hasMC {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "quiz must include both true/false and multiple-choice questions",
			Retryable: true,
		}
	}
	return nil
}
