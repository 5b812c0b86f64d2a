// Package batch runs quiz generation over a theme file and writes one
// JSON quiz per theme.
package batch

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Entry is one theme to generate a quiz for. Name becomes the output
// filename; Instruction is the model prompt.
type Entry struct {
	Name        string `json:"name"`
	Instruction string `json:"instruction"`
}

// themeFile is the on-disk source format: {"thema": [{name, instruction}]}.
// The key keeps the consuming platform's spelling.
type themeFile struct {
	Thema []json.RawMessage `json:"thema"`
}

// ParseSource reads the theme file and returns the usable entries.
// Malformed entries are skipped, not fatal; the returned skip list
// explains each one. An empty or missing "thema" list is an error.
func ParseSource(path string) ([]Entry, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read theme file: %w", err)
	}

	var file themeFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, nil, fmt.Errorf("parse theme file %s: %w", path, err)
	}
	if len(file.Thema) == 0 {
		return nil, nil, fmt.Errorf("no entries found in %q under key \"thema\"", path)
	}

	var entries []Entry
	var skipped []string

	for i, raw := range file.Thema {
		var e Entry
		if err := json.Unmarshal(raw, &e); err != nil {
			skipped = append(skipped, fmt.Sprintf("entry %d: not an object", i+1))
			continue
		}
		if strings.TrimSpace(e.Name) == "" {
			skipped = append(skipped, fmt.Sprintf("entry %d: missing or empty \"name\"", i+1))
			continue
		}
		if strings.TrimSpace(e.Instruction) == "" {
			skipped = append(skipped, fmt.Sprintf("entry %q: missing or empty \"instruction\"", e.Name))
			continue
		}
		entries = append(entries, e)
	}

	return entries, skipped, nil
}
