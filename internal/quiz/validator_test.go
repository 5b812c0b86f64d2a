package quiz

import (
	"strings"
	"testing"
)

// validQuiz returns a quiz that passes the default validator chain with
// MinQuestions lowered to its length.
func validQuiz() *Quiz {
	return &Quiz{Questions: []Question{
		tfQuestion("The Danube is longer than the Rhine.", true),
		tfQuestion("Lake Balaton is a saltwater lake.", false),
		mcQuestion("Capital of Hungary?", "Budapest", "Vienna", "Prague", "Bratislava"),
		mcQuestion("Longest river in Europe?", "Volga", "Danube", "Rhine", "Elbe"),
	}}
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.MinQuestions = 4
	return cfg
}

func TestValidate_Passes(t *testing.T) {
	if err := Validate(validQuiz(), testConfig()); err != nil {
		t.Fatalf("expected valid quiz, got: %v", err)
	}
}

func TestValidate_NormalizesBeforeChecking(t *testing.T) {
	q := validQuiz()
	// A glitchy empty MultiChoiceAnswer on a true/false question must
	// be normalized away, not rejected.
	q.Questions[0].Answer.Choices = []ChoiceOption{}
	if err := Validate(q, testConfig()); err != nil {
		t.Fatalf("expected glitch to be normalized, got: %v", err)
	}
}

func TestStructural_Failures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Quiz)
		want   string
	}{
		{
			name:   "short question text",
			mutate: func(q *Quiz) { q.Questions[0].Text = "ab" },
			want:   "at least 3 characters",
		},
		{
			name:   "wait time too low",
			mutate: func(q *Quiz) { q.Questions[1].WaitSeconds = 0 },
			want:   "out of range",
		},
		{
			name:   "wait time too high",
			mutate: func(q *Quiz) { q.Questions[1].WaitSeconds = 61 },
			want:   "out of range",
		},
		{
			name:   "missing true/false payload",
			mutate: func(q *Quiz) { q.Questions[0].Answer.TrueFalse = nil },
			want:   "must have TrueFalseAnswers",
		},
		{
			name: "wrong option count",
			mutate: func(q *Quiz) {
				q.Questions[2].Answer.Choices = q.Questions[2].Answer.Choices[:3]
			},
			want: "exactly 4 options",
		},
		{
			name: "no correct option",
			mutate: func(q *Quiz) {
				q.Questions[2].Answer.Choices[0].IsCorrect = false
			},
			want: "exactly one option must be correct",
		},
		{
			name: "two correct options",
			mutate: func(q *Quiz) {
				q.Questions[2].Answer.Choices[1].IsCorrect = true
			},
			want: "exactly one option must be correct",
		},
		{
			name: "duplicate option text",
			mutate: func(q *Quiz) {
				q.Questions[2].Answer.Choices[1].Text = " budapest "
			},
			want: "duplicate option text",
		},
		{
			name: "empty option text",
			mutate: func(q *Quiz) {
				q.Questions[2].Answer.Choices[3].Text = "  "
			},
			want: "option text is empty",
		},
		{
			name:   "unknown answer type",
			mutate: func(q *Quiz) { q.Questions[0].Answer.Type = 2 },
			want:   "AnswerType must be 0 or 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := validQuiz()
			tt.mutate(q)
			err := Validate(q, testConfig())
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got: %v", tt.want, err)
			}
		})
	}
}

func TestContent_TooFewQuestions(t *testing.T) {
	q := validQuiz()
	cfg := testConfig()
	cfg.MinQuestions = 10
	err := Validate(q, cfg)
	if err == nil || !strings.Contains(err.Error(), "too few questions") {
		t.Fatalf("expected too-few error, got: %v", err)
	}
}

func TestContent_DuplicateQuestions(t *testing.T) {
	q := validQuiz()
	q.Questions[1] = q.Questions[0]
	q.Questions[1].Text = "  " + strings.ToUpper(q.Questions[0].Text) + " "
	err := Validate(q, testConfig())
	if err == nil || !strings.Contains(err.Error(), "duplicate question") {
		t.Fatalf("expected duplicate error, got: %v", err)
	}
}

func TestContent_RequiresBothKinds(t *testing.T) {
	q := &Quiz{Questions: []Question{
		tfQuestion("Statement one is true.", true),
		tfQuestion("Statement two is false.", false),
		tfQuestion("Statement three is true.", true),
		tfQuestion("Statement four is false.", false),
	}}
	err := Validate(q, testConfig())
	if err == nil || !strings.Contains(err.Error(), "both true/false and multiple-choice") {
		t.Fatalf("expected mix error, got: %v", err)
	}
}

func TestValidationError_Fields(t *testing.T) {
	q := validQuiz()
	q.Questions[0].Answer.TrueFalse = nil
	err := Validate(q, testConfig())
	verr, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if verr.Validator != "structural" || !verr.Retryable {
		t.Fatalf("unexpected error fields: %+v", verr)
	}
}
