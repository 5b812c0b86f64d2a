package quiz

// AnswerType selects the answer format of a question.
type AnswerType int

const (
	// AnswerTrueFalse is a statement the player judges true or false.
	AnswerTrueFalse AnswerType = 0

	// AnswerMultiChoice is a question with four options, one correct.
	AnswerMultiChoice AnswerType = 1
)

// Quiz is the top-level generation result. The wire schema wraps the
// question list in an object because structured-output APIs require an
// object at the top level; the saved file contains only the array.
type Quiz struct {
	Questions []Question `json:"Questions"`
}

// Question is a single quiz question in the consuming platform's format.
// Field names follow that format exactly and must not be renamed.
type Question struct {
	// Text is the question or statement shown to the player.
	Text string `json:"Question"`

	// WaitSeconds is how long the player has to answer (1-60).
	WaitSeconds int `json:"WaitTimeInSec"`

	Answer Answer `json:"Answer"`
}

// Answer holds the correct answer. Exactly one payload field is set,
// matching Type; Normalize enforces this before validation.
type Answer struct {
	Type AnswerType `json:"AnswerType"`

	// TrueFalse is set only when Type is AnswerTrueFalse.
	TrueFalse *TrueFalseAnswer `json:"TrueFalseAnswers,omitempty"`

	// Choices is set only when Type is AnswerMultiChoice.
	Choices []ChoiceOption `json:"MultiChoiceAnswer,omitempty"`
}

// TrueFalseAnswer carries the correct boolean for a true/false question.
type TrueFalseAnswer struct {
	// IsTrue reports whether the statement is true. The JSON key keeps
	// the platform's historical misspelling; consumers depend on it.
	IsTrue bool `json:"IsTrueOrFlase"`
}

// ChoiceOption is one multiple-choice option.
type ChoiceOption struct {
	Text      string `json:"Text"`
	IsCorrect bool   `json:"IsCorrect"`
}

// Normalize drops the payload field that does not match each question's
// answer type. Models routinely emit an empty MultiChoiceAnswer on
// true/false questions; that is normalized away rather than rejected.
// Normalize is idempotent.
func (q *Quiz) Normalize() {
	for i := range q.Questions {
		q.Questions[i].Answer.normalize()
	}
}

func (a *Answer) normalize() {
	switch a.Type {
	case AnswerTrueFalse:
		a.Choices = nil
	case AnswerMultiChoice:
		a.TrueFalse = nil
	}
}

// CorrectChoice returns the index of the correct option, or -1 if none
// is marked. Meaningful only after validation.
func (a *Answer) CorrectChoice() int {
	for i, opt := range a.Choices {
		if opt.IsCorrect {
			return i
		}
	}
	return -1
}
