package quiz

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// LoadFile reads a saved quiz. Saved files hold a bare question array,
// but the {"Questions": ...} generation wrapper is accepted too. Every
// question must pass the structural checks; hand-edited or truncated
// files fail with an error instead of reaching the player half-formed.
func LoadFile(path string) (*Quiz, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read quiz file: %w", err)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("quiz file %s is empty", path)
	}

	var q Quiz
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &q.Questions); err != nil {
			return nil, fmt.Errorf("parse quiz file %s: %w", path, err)
		}
	} else {
		if err := json.Unmarshal(trimmed, &q); err != nil {
			return nil, fmt.Errorf("parse quiz file %s: %w", path, err)
		}
	}

	if len(q.Questions) == 0 {
		return nil, fmt.Errorf("quiz file %s contains no questions", path)
	}
	q.Normalize()
	var structural StructuralValidator
	if verr := structural.Validate(&q, Config{}); verr != nil {
		return nil, fmt.Errorf("quiz file %s: %s", path, verr.Message)
	}
	return &q, nil
}
