package agent

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mfekete/quizgen/internal/llm"
	"github.com/mfekete/quizgen/internal/store"
)

// recordingToolbox answers every call with a fixed payload and records
// invocations.
type recordingToolbox struct {
	calls  []string
	result json.RawMessage
	err    error
}

func (tb *recordingToolbox) Defs() []llm.Tool {
	return []llm.Tool{
		{Name: "search_web", Description: "Search the web", Parameters: map[string]any{"type": "object"}},
	}
}

func (tb *recordingToolbox) Call(_ context.Context, name string, args json.RawMessage) (json.RawMessage, error) {
	tb.calls = append(tb.calls, name+":"+string(args))
	return tb.result, tb.err
}

func TestRun_NoTools(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`{"Questions":[]}`)},
	)
	a := New(mock, WithSystem("system text"))

	out, err := a.Run(context.Background(), "make a quiz")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != `{"Questions":[]}` {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestRun_ToolCallLoop(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{ToolCalls: []llm.ToolCall{
			{ID: "call_1", Name: "search_web", Arguments: json.RawMessage(`{"query":"Danube"}`)},
		}},
		llm.MockResponse{Content: json.RawMessage(`{"Questions":[]}`)},
	)
	tb := &recordingToolbox{result: json.RawMessage(`[{"title":"Danube"}]`)}
	a := New(mock, WithToolbox(tb))

	out, err := a.Run(context.Background(), "make a quiz about rivers")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != `{"Questions":[]}` {
		t.Fatalf("unexpected output: %s", out)
	}
	if len(tb.calls) != 1 || !strings.HasPrefix(tb.calls[0], "search_web:") {
		t.Fatalf("unexpected tool calls: %v", tb.calls)
	}

	// Second provider call must carry the assistant tool-call message
	// and the tool result.
	second := mock.Calls[1]
	if len(second.Messages) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(second.Messages))
	}
	if second.Messages[1].Role != llm.RoleAssistant || len(second.Messages[1].ToolCalls) != 1 {
		t.Fatalf("assistant tool-call message missing: %+v", second.Messages[1])
	}
	last := second.Messages[2]
	if last.Role != llm.RoleTool || last.ToolCallID != "call_1" || last.Content != `[{"title":"Danube"}]` {
		t.Fatalf("tool result message wrong: %+v", last)
	}
}

func TestRun_ToolErrorFedBack(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{ToolCalls: []llm.ToolCall{
			{ID: "call_1", Name: "search_web", Arguments: json.RawMessage(`{}`)},
		}},
		llm.MockResponse{Content: json.RawMessage(`{"Questions":[]}`)},
	)
	tb := &recordingToolbox{err: errors.New("network down")}
	a := New(mock, WithToolbox(tb))

	if _, err := a.Run(context.Background(), "make a quiz"); err != nil {
		t.Fatalf("tool failure must not abort the run: %v", err)
	}
	result := mock.Calls[1].Messages[2].Content
	if !strings.Contains(result, "network down") {
		t.Fatalf("error not fed back to model: %s", result)
	}
}

func TestRun_MaxTurnsExceeded(t *testing.T) {
	loop := llm.MockResponse{ToolCalls: []llm.ToolCall{
		{ID: "c", Name: "search_web", Arguments: json.RawMessage(`{}`)},
	}}
	mock := llm.NewMockProvider(loop, loop, loop)
	tb := &recordingToolbox{result: json.RawMessage(`[]`)}
	a := New(mock, WithToolbox(tb), WithMaxTurns(3))

	_, err := a.Run(context.Background(), "make a quiz")
	if err == nil || !strings.Contains(err.Error(), "no final answer") {
		t.Fatalf("expected max-turns error, got: %v", err)
	}
}

func TestRun_HistoryAccumulatesAcrossRuns(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`{"Questions":[]}`)},
		llm.MockResponse{Content: json.RawMessage(`{"Questions":[]}`)},
	)
	a := New(mock)

	if _, err := a.Run(context.Background(), "first"); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if _, err := a.Run(context.Background(), "second repair prompt"); err != nil {
		t.Fatalf("second run: %v", err)
	}

	second := mock.Calls[1]
	if len(second.Messages) != 3 {
		t.Fatalf("expected history of 3 messages, got %d", len(second.Messages))
	}
	if second.Messages[0].Content != "first" || second.Messages[2].Content != "second repair prompt" {
		t.Fatalf("history order wrong: %+v", second.Messages)
	}
}

func TestRun_Reset(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`{}`)},
		llm.MockResponse{Content: json.RawMessage(`{}`)},
	)
	a := New(mock)

	if _, err := a.Run(context.Background(), "first"); err != nil {
		t.Fatalf("first run: %v", err)
	}
	a.Reset()
	if _, err := a.Run(context.Background(), "fresh"); err != nil {
		t.Fatalf("second run: %v", err)
	}
	if len(mock.Calls[1].Messages) != 1 {
		t.Fatalf("expected fresh history, got %d messages", len(mock.Calls[1].Messages))
	}
}

func TestRun_PersistsSession(t *testing.T) {
	s, err := store.Open(filepath.Join(t.TempDir(), "agent.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer s.Close()
	repo := s.SessionRepo()

	mock := llm.NewMockProvider(
		llm.MockResponse{ToolCalls: []llm.ToolCall{
			{ID: "call_1", Name: "search_web", Arguments: json.RawMessage(`{"query":"x"}`)},
		}},
		llm.MockResponse{Content: json.RawMessage(`{"Questions":[]}`)},
	)
	tb := &recordingToolbox{result: json.RawMessage(`[]`)}
	a := New(mock, WithToolbox(tb), WithSession(repo, "test batch"))

	if _, err := a.Run(context.Background(), "make a quiz"); err != nil {
		t.Fatalf("run: %v", err)
	}

	sessions, err := repo.List(context.Background())
	if err != nil || len(sessions) != 1 {
		t.Fatalf("expected 1 session, got %d (%v)", len(sessions), err)
	}
	msgs, err := repo.Messages(context.Background(), sessions[0].ID)
	if err != nil {
		t.Fatalf("messages: %v", err)
	}
	// user, assistant tool call, tool result, final assistant.
	if len(msgs) != 4 {
		t.Fatalf("expected 4 persisted messages, got %d", len(msgs))
	}
	if msgs[1].ToolCalls == "" {
		t.Fatal("assistant tool calls not persisted")
	}
	if msgs[2].Role != "tool" || msgs[2].ToolCallID != "call_1" {
		t.Fatalf("tool message wrong: %+v", msgs[2])
	}
}
