package batch

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mfekete/quizgen/internal/quiz"
)

// WriteQuiz saves the quiz to path as a bare JSON array of questions
// with two-space indentation. The consuming platform expects the array,
// not the {"Questions": ...} wrapper used during generation.
func WriteQuiz(path string, q *quiz.Quiz) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	data, err := json.MarshalIndent(q.Questions, "", "  ")
	if err != nil {
		return fmt.Errorf("encode quiz: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write quiz file: %w", err)
	}
	return nil
}
