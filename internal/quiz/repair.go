package quiz

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/mfekete/quizgen/internal/llm"
)

// repairPrompt builds the follow-up prompt after a failed attempt.
// When the failure carries a salvageable JSON fragment, the model is
// shown its own output and asked to fix it; otherwise the original
// instruction is restated with the rules most often broken.
func repairPrompt(instruction string, err error) string {
	var invalid *llm.ErrInvalidResponse
	if errors.As(err, &invalid) {
		if fragment := salvageJSON(string(invalid.Content)); fragment != "" {
			return fmt.Sprintf(
				"You previously produced invalid JSON for the required schema.\n"+
					"Fix it and output ONLY the corrected JSON object.\n\n"+
					"Original user request:\n%s\n\n"+
					"Invalid JSON you produced:\n%s\n\n"+
					"Fix rules:\n"+
					"- Remove fields that are not allowed for the given AnswerType.\n"+
					"- Ensure at least the minimum number of questions.\n"+
					"- Ensure multiple-choice has 4 options and exactly one correct.\n"+
					"- Output ONLY JSON.\n",
				instruction, fragment)
		}
		return fmt.Sprintf(
			"%s\n\nIMPORTANT: Output ONLY the JSON object. "+
				"Do not include MultiChoiceAnswer when AnswerType=0, and do not include TrueFalseAnswers when AnswerType=1.",
			instruction)
	}

	var verr *ValidationError
	if errors.As(err, &verr) {
		return fmt.Sprintf(
			"%s\n\nIMPORTANT: Follow the schema strictly and output ONLY JSON. "+
				"Previous error: %s",
			instruction, verr.Message)
	}

	return fmt.Sprintf(
		"%s\n\nIMPORTANT: Follow the schema strictly and output ONLY JSON. "+
			"Previous error: %v",
		instruction, err)
}

// salvageJSON extracts the largest parseable JSON object from raw model
// output. It clips to the outermost braces and, when the tail is
// truncated, backs up over closing braces until the prefix parses.
// Returns "" when nothing usable remains.
func salvageJSON(raw string) string {
	first := strings.IndexByte(raw, '{')
	last := strings.LastIndexByte(raw, '}')
	if first == -1 || last <= first {
		return ""
	}

	candidate := raw[first : last+1]
	if gjson.Valid(candidate) {
		return candidate
	}

	end := len(candidate)
	for {
		end = strings.LastIndexByte(candidate[:end-1], '}') + 1
		if end <= 0 {
			return ""
		}
		if sub := candidate[:end]; gjson.Valid(sub) {
			return sub
		}
	}
}
