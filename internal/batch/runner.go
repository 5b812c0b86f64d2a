package batch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/mfekete/quizgen/internal/quiz"
)

// QuizGenerator produces one validated quiz per instruction.
// *quiz.Generator is the standard implementation.
type QuizGenerator interface {
	Generate(ctx context.Context, instruction string) (*quiz.Quiz, error)
}

// Runner drives a whole batch: parse the theme file, generate each
// quiz sequentially, and write the results. Entries run one at a time
// so the shared conversation stays coherent and rate limits stay calm.
type Runner struct {
	generator QuizGenerator
	outputDir string
	log       zerolog.Logger
}

// NewRunner creates a Runner writing quizzes into outputDir.
func NewRunner(generator QuizGenerator, outputDir string, log zerolog.Logger) *Runner {
	return &Runner{generator: generator, outputDir: outputDir, log: log}
}

// Result summarizes a batch run.
type Result struct {
	Generated int
	Failed    int
	Skipped   int
	// Files maps theme name to the written output path.
	Files map[string]string
}

// Run processes every entry in the theme file. A theme whose attempt
// budget runs out is reported and skipped; the batch continues.
// Returns an error only when nothing could even be attempted.
func (r *Runner) Run(ctx context.Context, sourcePath string) (*Result, error) {
	entries, skipped, err := ParseSource(sourcePath)
	if err != nil {
		return nil, err
	}
	for _, reason := range skipped {
		r.log.Warn().Str("reason", reason).Msg("skipping theme entry")
	}

	result := &Result{
		Skipped: len(skipped),
		Files:   make(map[string]string),
	}
	namer := NewNamer()

	for _, entry := range entries {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}

		outPath := filepath.Join(r.outputDir, namer.Next(entry.Name)+".json")
		log := r.log.With().Str("theme", entry.Name).Logger()
		log.Info().Str("instruction", entry.Instruction).Msg("generating quiz")

		q, err := r.generator.Generate(ctx, entry.Instruction)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return result, err
			}
			result.Failed++
			if errors.Is(err, quiz.ErrExhausted) {
				log.Error().Err(err).Msg("giving up on theme")
			} else {
				log.Error().Err(err).Msg("generation failed")
			}
			continue
		}

		if err := WriteQuiz(outPath, q); err != nil {
			result.Failed++
			log.Error().Err(err).Msg("writing quiz failed")
			continue
		}

		result.Generated++
		result.Files[entry.Name] = outPath
		log.Info().
			Int("questions", len(q.Questions)).
			Str("path", outPath).
			Msg("quiz saved")
	}

	if result.Generated == 0 && result.Failed > 0 {
		return result, fmt.Errorf("all %d themes failed", result.Failed)
	}
	return result, nil
}
