package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

func TestMockProvider_ReturnsCannedResponses(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"a":1}`), Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockResponse{Content: json.RawMessage(`{"b":2}`)},
	)

	resp1, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "first"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp1.Content) != `{"a":1}` {
		t.Fatalf("expected {\"a\":1}, got %s", resp1.Content)
	}
	if resp1.Usage.InputTokens != 10 {
		t.Fatalf("expected 10 input tokens, got %d", resp1.Usage.InputTokens)
	}
	if resp1.StopReason != "end" {
		t.Fatalf("expected stop reason 'end', got %q", resp1.StopReason)
	}

	resp2, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "second"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp2.Content) != `{"b":2}` {
		t.Fatalf("expected {\"b\":2}, got %s", resp2.Content)
	}
}

func TestMockProvider_EmptyQueueReturnsError(t *testing.T) {
	mock := NewMockProvider()
	_, err := mock.Generate(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected error from empty queue")
	}
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %T", err)
	}
}

func TestMockProvider_ToolCallsSetStopReason(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{ToolCalls: []ToolCall{{ID: "call_1", Name: "wikipedia_search", Arguments: json.RawMessage(`{"query":"Danube"}`)}}},
	)

	resp, err := mock.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StopReason != "tool_use" {
		t.Fatalf("expected stop reason 'tool_use', got %q", resp.StopReason)
	}
	if len(resp.ToolCalls) != 1 || resp.ToolCalls[0].Name != "wikipedia_search" {
		t.Fatalf("unexpected tool calls: %+v", resp.ToolCalls)
	}
}

func TestBuildOpenAIMessages_ToolRoundTrip(t *testing.T) {
	req := Request{
		System: "You are a quiz generator.",
		Messages: []Message{
			{Role: RoleUser, Content: "Make a quiz about rivers."},
			{Role: RoleAssistant, ToolCalls: []ToolCall{
				{ID: "call_1", Name: "search_web", Arguments: json.RawMessage(`{"query":"longest rivers"}`)},
			}},
			{Role: RoleTool, ToolCallID: "call_1", ToolName: "search_web", Content: `[{"title":"Nile"}]`},
		},
	}

	msgs := buildOpenAIMessages(req)
	if len(msgs) != 4 {
		t.Fatalf("expected 4 messages (system + 3), got %d", len(msgs))
	}
	if msgs[0].Role != "system" {
		t.Fatalf("expected leading system message, got %q", msgs[0].Role)
	}
	if len(msgs[2].ToolCalls) != 1 || msgs[2].ToolCalls[0].Function.Name != "search_web" {
		t.Fatalf("assistant tool call not mapped: %+v", msgs[2])
	}
	if msgs[3].Role != "tool" || msgs[3].ToolCallID != "call_1" {
		t.Fatalf("tool result not mapped: %+v", msgs[3])
	}
}

func TestConfigValidate_LocalEndpointNeedsNoKey(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = "openai"
	cfg.OpenAI.APIKey = ""
	cfg.OpenAI.BaseURL = "http://localhost:11434/v1"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected local endpoint to validate without key, got: %v", err)
	}

	cfg.OpenAI.BaseURL = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error without key or base URL")
	}
}
