package quiz

import "github.com/mfekete/quizgen/internal/llm"

// Schema defines the JSON schema for LLM quiz generation responses.
// The top level is an object because structured-output APIs reject a
// bare array; the saved file contains only the Questions array.
var Schema = &llm.Schema{
	Name:        "quiz",
	Description: "A quiz as a list of true/false and multiple-choice questions",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"Questions": map[string]any{
				"type":        "array",
				"description": "The quiz questions as a list",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"Question": map[string]any{
							"type":        "string",
							"minLength":   3,
							"description": "The question text shown to the user",
						},
						"WaitTimeInSec": map[string]any{
							"type":        "integer",
							"minimum":     1,
							"maximum":     60,
							"description": "Time in seconds the user has to answer",
						},
						"Answer": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"AnswerType": map[string]any{
									"type":        "integer",
									"enum":        []any{0, 1},
									"description": "0 = True/False, 1 = Multiple-choice",
								},
								"TrueFalseAnswers": map[string]any{
									"type": "object",
									"properties": map[string]any{
										"IsTrueOrFlase": map[string]any{
											"type":        "boolean",
											"description": "Whether the statement is true",
										},
									},
									"required":             []any{"IsTrueOrFlase"},
									"additionalProperties": false,
									"description":          "Only when AnswerType is 0",
								},
								"MultiChoiceAnswer": map[string]any{
									"type": "array",
									"items": map[string]any{
										"type": "object",
										"properties": map[string]any{
											"Text":      map[string]any{"type": "string", "minLength": 1},
											"IsCorrect": map[string]any{"type": "boolean"},
										},
										"required":             []any{"Text", "IsCorrect"},
										"additionalProperties": false,
									},
									"description": "Only when AnswerType is 1; exactly 4 options",
								},
							},
							"required":             []any{"AnswerType"},
							"additionalProperties": false,
						},
					},
					"required":             []any{"Question", "WaitTimeInSec", "Answer"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"Questions"},
		"additionalProperties": false,
	},
}
