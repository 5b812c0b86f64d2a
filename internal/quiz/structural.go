package quiz

import (
	"fmt"
	"strings"
)

// StructuralValidator checks that every question has the required
// fields for its answer type and that no foreign payload survives.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *Quiz, _ Config) *ValidationError {
	for i := range q.Questions {
		if verr := v.checkQuestion(&q.Questions[i], i); verr != nil {
			return verr
		}
	}
	return nil
}

func (v *StructuralValidator) checkQuestion(qi *Question, idx int) *ValidationError {
	if len(strings.TrimSpace(qi.Text)) < 3 {
		return v.fail(idx, "question text must be at least 3 characters")
	}
	if qi.WaitSeconds < 1 || qi.WaitSeconds > 60 {
		return v.fail(idx, fmt.Sprintf("WaitTimeInSec %d out of range 1-60", qi.WaitSeconds))
	}

	switch qi.Answer.Type {
	case AnswerTrueFalse:
		if qi.Answer.TrueFalse == nil {
			return v.fail(idx, "AnswerType=0 must have TrueFalseAnswers")
		}
		if qi.Answer.Choices != nil {
			return v.fail(idx, "AnswerType=0 must not have MultiChoiceAnswer")
		}

	case AnswerMultiChoice:
		if qi.Answer.TrueFalse != nil {
			return v.fail(idx, "AnswerType=1 must not have TrueFalseAnswers")
		}
		if len(qi.Answer.Choices) != 4 {
			return v.fail(idx, fmt.Sprintf("AnswerType=1 must have exactly 4 options, got %d", len(qi.Answer.Choices)))
		}
		correct := 0
		seen := make(map[string]bool, 4)
		for _, opt := range qi.Answer.Choices {
			key := strings.ToLower(strings.TrimSpace(opt.Text))
			if key == "" {
				return v.fail(idx, "option text is empty")
			}
			if seen[key] {
				return v.fail(idx, fmt.Sprintf("duplicate option text %q", opt.Text))
			}
			seen[key] = true
			if opt.IsCorrect {
				correct++
			}
		}
		if correct != 1 {
			return v.fail(idx, fmt.Sprintf("exactly one option must be correct, got %d", correct))
		}

	default:
		return v.fail(idx, fmt.Sprintf("AnswerType must be 0 or 1, got %d", qi.Answer.Type))
	}
	return nil
}

func (v *StructuralValidator) fail(idx int, msg string) *ValidationError {
	return &ValidationError{
		Validator: v.Name(),
		Message:   fmt.Sprintf("question %d: %s", idx+1, msg),
		Retryable: true,
	}
}
