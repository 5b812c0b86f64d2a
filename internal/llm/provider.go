package llm

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Provider is the core abstraction for LLM interaction.
// Consumers call Generate with a Request and receive either structured
// JSON content or a set of tool calls to execute and feed back.
type Provider interface {
	// Generate sends a prompt to the LLM and returns a structured response.
	// The request's Schema field, when set, instructs the provider to return
	// JSON conforming to that schema. When the model requests tool
	// invocations instead, the response carries ToolCalls and no Content.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the LLM.
type Request struct {
	// System is the system prompt. Sets the LLM's role and constraints.
	System string

	// Messages is the conversation history, oldest first. For quiz
	// generation this grows across attempts: user prompts, assistant
	// tool calls, and tool results all accumulate here.
	Messages []Message

	// Tools lists the functions the model may call during this request.
	// Empty means plain generation with no tool use.
	Tools []Tool

	// Schema is the JSON Schema the final response must conform to.
	// When set, the provider uses its native structured output mechanism.
	// When nil, the response Content is raw text as json.RawMessage.
	Schema *Schema

	// MaxTokens is the maximum number of tokens in the response.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	// Default: 0.0 (deterministic) when not set.
	Temperature float64
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string

	// ToolCalls is set on assistant messages that requested tool use.
	ToolCalls []ToolCall

	// ToolCallID and ToolName identify which call a RoleTool message
	// answers. Content then holds the JSON-encoded tool result.
	ToolCallID string
	ToolName   string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Tool describes a function the model may call during generation.
type Tool struct {
	// Name is the function name, snake_case, e.g. "wikipedia_search".
	Name string

	// Description tells the model when to use this tool.
	Description string

	// Parameters is the JSON Schema for the arguments object.
	Parameters map[string]any
}

// ToolCall is a single function invocation requested by the model.
type ToolCall struct {
	// ID correlates the call with its result message. Providers that
	// have no call IDs (Gemini) fall back to the function name.
	ID        string
	Name      string
	Arguments json.RawMessage
}

// Schema defines the JSON structure expected from the LLM.
type Schema struct {
	// Name identifies this schema (schema name for OpenAI, resource
	// name for validation). Kebab-case, e.g. "quiz-document".
	Name string

	// Description is a human-readable description of what this schema
	// represents. Sent to the LLM to guide generation.
	Description string

	// Definition is the JSON Schema definition as a map. Must not be
	// mutated after the schema's first use.
	Definition map[string]any

	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
}

// Response holds the LLM's output.
type Response struct {
	// Content is the generated output. When a Schema was provided in the
	// request, this is the validated JSON object. Empty when the model
	// requested tool calls instead of producing final output.
	Content json.RawMessage

	// ToolCalls lists the tool invocations the model requested.
	// The caller executes them and issues a follow-up request with
	// RoleTool result messages appended.
	ToolCalls []ToolCall

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason indicates why generation stopped.
	// Normalized to: "end", "tool_use", "max_tokens", "error"
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
