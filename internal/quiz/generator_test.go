package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/mfekete/quizgen/internal/llm"
)

// fakeRunner replays canned outputs and records the prompts it was
// given, so tests can assert on repair-prompt rewriting.
type fakeRunner struct {
	outputs []fakeOutput
	prompts []string
}

type fakeOutput struct {
	raw json.RawMessage
	err error
}

func (f *fakeRunner) Run(_ context.Context, prompt string) (json.RawMessage, error) {
	f.prompts = append(f.prompts, prompt)
	if len(f.outputs) == 0 {
		return nil, errors.New("fakeRunner: no outputs left")
	}
	out := f.outputs[0]
	f.outputs = f.outputs[1:]
	return out.raw, out.err
}

func validQuizJSON(t *testing.T) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(validQuiz())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return data
}

func newTestGenerator(r Runner) *Generator {
	return NewGenerator(r, testConfig(), zerolog.Nop())
}

func TestGenerate_FirstAttemptSucceeds(t *testing.T) {
	runner := &fakeRunner{outputs: []fakeOutput{{raw: validQuizJSON(t)}}}
	g := newTestGenerator(runner)

	quiz, err := g.Generate(context.Background(), "Make a quiz about Hungary.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(quiz.Questions) != 4 {
		t.Fatalf("expected 4 questions, got %d", len(quiz.Questions))
	}
	if len(runner.prompts) != 1 || runner.prompts[0] != "Make a quiz about Hungary." {
		t.Fatalf("unexpected prompts: %v", runner.prompts)
	}
}

func TestGenerate_RepairAfterInvalidJSON(t *testing.T) {
	runner := &fakeRunner{outputs: []fakeOutput{
		{raw: json.RawMessage(`Here you go: {"Questions":[]} enjoy`)},
		{raw: validQuizJSON(t)},
	}}
	g := newTestGenerator(runner)

	quiz, err := g.Generate(context.Background(), "Make a quiz about Hungary.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quiz == nil {
		t.Fatal("expected quiz")
	}
	if len(runner.prompts) != 2 {
		t.Fatalf("expected 2 attempts, got %d", len(runner.prompts))
	}
	// Second prompt embeds the salvaged fragment of the first output.
	if !strings.Contains(runner.prompts[1], `{"Questions":[]}`) {
		t.Fatalf("repair prompt missing fragment: %s", runner.prompts[1])
	}
}

func TestGenerate_RepairAfterValidationFailure(t *testing.T) {
	bad := validQuiz()
	bad.Questions[2].Answer.Choices = bad.Questions[2].Answer.Choices[:3]
	badJSON, _ := json.Marshal(bad)

	runner := &fakeRunner{outputs: []fakeOutput{
		{raw: badJSON},
		{raw: validQuizJSON(t)},
	}}
	g := newTestGenerator(runner)

	if _, err := g.Generate(context.Background(), "Make a quiz."); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(runner.prompts[1], "exactly 4 options") {
		t.Fatalf("repair prompt missing validation detail: %s", runner.prompts[1])
	}
}

func TestGenerate_ProviderInvalidResponseRepaired(t *testing.T) {
	runner := &fakeRunner{outputs: []fakeOutput{
		{err: &llm.ErrInvalidResponse{Content: json.RawMessage(`{"Questions": [}`), Err: errors.New("bad")}},
		{raw: validQuizJSON(t)},
	}}
	g := newTestGenerator(runner)

	if _, err := g.Generate(context.Background(), "Make a quiz."); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.prompts) != 2 {
		t.Fatalf("expected 2 attempts, got %d", len(runner.prompts))
	}
}

func TestGenerate_Exhausted(t *testing.T) {
	bad := fakeOutput{raw: json.RawMessage(`{"Questions":[]}`)}
	runner := &fakeRunner{outputs: []fakeOutput{bad, bad, bad, bad}}
	g := newTestGenerator(runner)

	_, err := g.Generate(context.Background(), "Make a quiz.")
	if !errors.Is(err, ErrExhausted) {
		t.Fatalf("expected ErrExhausted, got: %v", err)
	}
	if len(runner.prompts) != 4 {
		t.Fatalf("expected 4 attempts, got %d", len(runner.prompts))
	}
}

func TestGenerate_ContextCancellationStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	runner := &fakeRunner{outputs: []fakeOutput{
		{err: context.Canceled},
	}}
	cancel()
	g := newTestGenerator(runner)

	_, err := g.Generate(ctx, "Make a quiz.")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got: %v", err)
	}
	if len(runner.prompts) != 1 {
		t.Fatalf("expected 1 attempt, got %d", len(runner.prompts))
	}
}
