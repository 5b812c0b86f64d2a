package store

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestEventRepo_AppendAndQuery(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
			Provider:     "openai",
			Model:        "gpt-4o-mini",
			Purpose:      "quiz-gen",
			InputTokens:  100,
			OutputTokens: 50,
			LatencyMs:    200,
			Success:      true,
			RequestBody:  "[user]\nmake a quiz",
			ResponseBody: `{"Questions":[]}`,
		})
		if err != nil {
			t.Fatalf("append event: %v", err)
		}
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("query events: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	// Newest first.
	if events[0].ID <= events[1].ID {
		t.Fatalf("expected descending order, got %d then %d", events[0].ID, events[1].ID)
	}
	if !events[0].Success || events[0].Model != "gpt-4o-mini" {
		t.Fatalf("unexpected event: %+v", events[0])
	}
}

func TestEventRepo_GetByID(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider:     "anthropic",
		Model:        "claude-sonnet",
		Purpose:      "quiz-gen",
		Success:      false,
		ErrorMessage: "rate limited",
	})
	if err != nil {
		t.Fatalf("append event: %v", err)
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil || len(events) != 1 {
		t.Fatalf("query events: %v (%d)", err, len(events))
	}

	ev, err := repo.GetLLMEvent(ctx, events[0].ID)
	if err != nil {
		t.Fatalf("get event: %v", err)
	}
	if ev.Success || ev.ErrorMessage != "rate limited" {
		t.Fatalf("unexpected event: %+v", ev)
	}

	if _, err := repo.GetLLMEvent(ctx, 99999); err == nil {
		t.Fatal("expected error for missing event")
	}
}

func TestEventRepo_UsageByPurpose(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	add := func(purpose string, in, out int) {
		t.Helper()
		err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
			Provider: "openai", Model: "gpt-4o-mini", Purpose: purpose,
			InputTokens: in, OutputTokens: out, LatencyMs: 100, Success: true,
		})
		if err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	add("quiz-gen", 100, 40)
	add("quiz-gen", 200, 60)
	add("repair", 50, 20)

	usage, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage: %v", err)
	}
	if len(usage) != 2 {
		t.Fatalf("expected 2 purposes, got %d", len(usage))
	}
	byPurpose := map[string]PurposeUsage{}
	for _, u := range usage {
		byPurpose[u.Purpose] = u
	}
	qg := byPurpose["quiz-gen"]
	if qg.Calls != 2 || qg.InputTokens != 300 || qg.OutputTokens != 100 {
		t.Fatalf("unexpected quiz-gen usage: %+v", qg)
	}
}

func TestSessionRepo_AppendOrdering(t *testing.T) {
	s := openTestStore(t)
	repo := s.SessionRepo()
	ctx := context.Background()

	id, err := repo.Create(ctx, "batch 2026-08-24")
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if id == "" {
		t.Fatal("expected non-empty session id")
	}

	turns := []SessionMessage{
		{Role: "user", Content: "Make a quiz about rivers."},
		{Role: "assistant", ToolCalls: `[{"id":"call_1","name":"search_web"}]`},
		{Role: "tool", ToolCallID: "call_1", ToolName: "search_web", Content: `[]`},
		{Role: "assistant", Content: `{"Questions":[]}`},
	}
	for _, m := range turns {
		if err := repo.Append(ctx, id, m); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	msgs, err := repo.Messages(ctx, id)
	if err != nil {
		t.Fatalf("messages: %v", err)
	}
	if len(msgs) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(msgs))
	}
	for i, m := range msgs {
		if m.Seq != i+1 {
			t.Fatalf("expected seq %d, got %d", i+1, m.Seq)
		}
	}
	if msgs[2].ToolCallID != "call_1" || msgs[2].ToolName != "search_web" {
		t.Fatalf("tool metadata lost: %+v", msgs[2])
	}
}

func TestSessionRepo_List(t *testing.T) {
	s := openTestStore(t)
	repo := s.SessionRepo()
	ctx := context.Background()

	if _, err := repo.Create(ctx, "first"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := repo.Create(ctx, "second"); err != nil {
		t.Fatalf("create: %v", err)
	}

	sessions, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}
}
