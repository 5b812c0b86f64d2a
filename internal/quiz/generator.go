package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mfekete/quizgen/internal/llm"
)

// ErrExhausted is returned when every generation attempt produced
// output that failed parsing or validation.
var ErrExhausted = errors.New("quiz generation attempts exhausted")

// Runner drives one conversational turn with the model and returns the
// final structured output. The agent package provides the standard
// implementation; tests substitute a fake.
type Runner interface {
	Run(ctx context.Context, prompt string) (json.RawMessage, error)
}

// Generator produces validated quizzes from free-form instructions.
type Generator struct {
	runner Runner
	config Config
	log    zerolog.Logger
}

// NewGenerator creates a Generator with the given runner and config.
func NewGenerator(runner Runner, cfg Config, log zerolog.Logger) *Generator {
	return &Generator{runner: runner, config: cfg, log: log}
}

// Generate runs the generate-validate-repair loop for one instruction.
// Each failed attempt rewrites the prompt from the failure; the
// original instruction is never lost. Returns ErrExhausted when the
// attempt budget runs out.
func (g *Generator) Generate(ctx context.Context, instruction string) (*Quiz, error) {
	ctx = llm.WithPurpose(ctx, "quiz-gen")

	prompt := instruction
	var lastErr error

	for attempt := 1; attempt <= g.config.MaxAttempts; attempt++ {
		quiz, err := g.attempt(ctx, prompt)
		if err == nil {
			return quiz, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		lastErr = err
		prompt = repairPrompt(instruction, err)
		g.log.Warn().
			Int("attempt", attempt).
			Int("max_attempts", g.config.MaxAttempts).
			Err(err).
			Msg("quiz attempt failed, retrying with repair prompt")
	}

	return nil, fmt.Errorf("%w after %d attempts: %v", ErrExhausted, g.config.MaxAttempts, lastErr)
}

func (g *Generator) attempt(ctx context.Context, prompt string) (*Quiz, error) {
	raw, err := g.runner.Run(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var quiz Quiz
	if err := json.Unmarshal(raw, &quiz); err != nil {
		return nil, &llm.ErrInvalidResponse{Content: raw, Err: err}
	}

	if err := Validate(&quiz, g.config); err != nil {
		return nil, err
	}
	return &quiz, nil
}
