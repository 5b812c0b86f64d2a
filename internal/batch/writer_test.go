package batch

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mfekete/quizgen/internal/quiz"
)

func sampleQuiz() *quiz.Quiz {
	return &quiz.Quiz{Questions: []quiz.Question{
		{
			Text:        "The Danube flows through Budapest.",
			WaitSeconds: 10,
			Answer: quiz.Answer{
				Type:      quiz.AnswerTrueFalse,
				TrueFalse: &quiz.TrueFalseAnswer{IsTrue: true},
			},
		},
		{
			Text:        "Capital of Hungary?",
			WaitSeconds: 15,
			Answer: quiz.Answer{
				Type: quiz.AnswerMultiChoice,
				Choices: []quiz.ChoiceOption{
					{Text: "Budapest", IsCorrect: true},
					{Text: "Vienna"}, {Text: "Prague"}, {Text: "Bratislava"},
				},
			},
		},
	}}
}

func TestWriteQuiz_BareArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "rivers.json")
	if err := WriteQuiz(path, sampleQuiz()); err != nil {
		t.Fatalf("write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}

	// The platform consumes a bare array, never the Questions wrapper.
	if !strings.HasPrefix(strings.TrimSpace(string(data)), "[") {
		t.Fatalf("output is not a bare array: %s", data)
	}
	if strings.Contains(string(data), `"Questions"`) {
		t.Fatal("output must not contain the Questions wrapper")
	}

	var questions []quiz.Question
	if err := json.Unmarshal(data, &questions); err != nil {
		t.Fatalf("output not parseable: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(questions))
	}

	// Absent payloads are omitted entirely, not written as null.
	s := string(data)
	if strings.Contains(s, "null") {
		t.Fatalf("output contains null payloads: %s", s)
	}
	if !strings.Contains(s, "  ") {
		t.Fatal("output not indented")
	}
}
