// Package agent drives a tool-using conversation with an LLM provider
// until the model produces a final structured answer.
package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mfekete/quizgen/internal/llm"
	"github.com/mfekete/quizgen/internal/store"
)

// DefaultMaxTurns bounds the tool-call loop within a single Run.
const DefaultMaxTurns = 50

// Toolbox exposes callable tools to the agent.
type Toolbox interface {
	// Defs returns the tool definitions advertised to the model.
	Defs() []llm.Tool

	// Call executes the named tool and returns its JSON result.
	Call(ctx context.Context, name string, args json.RawMessage) (json.RawMessage, error)
}

// Agent holds a running conversation. Messages accumulate across Run
// calls, so repair prompts see the model's earlier output. Not safe
// for concurrent use.
type Agent struct {
	provider    llm.Provider
	toolbox     Toolbox
	system      string
	schema      *llm.Schema
	maxTurns    int
	maxTokens   int
	temperature float64
	log         zerolog.Logger

	sessions     store.SessionRepo
	sessionLabel string
	sessionID    string

	messages []llm.Message
}

// Option configures an Agent.
type Option func(*Agent)

// WithToolbox makes the given tools available to the model.
func WithToolbox(tb Toolbox) Option {
	return func(a *Agent) { a.toolbox = tb }
}

// WithSchema requests structured output matching the schema.
func WithSchema(s *llm.Schema) Option {
	return func(a *Agent) { a.schema = s }
}

// WithSystem sets the system instructions.
func WithSystem(system string) Option {
	return func(a *Agent) { a.system = system }
}

// WithMaxTurns overrides the per-Run tool-call budget.
func WithMaxTurns(n int) Option {
	return func(a *Agent) { a.maxTurns = n }
}

// WithSampling sets the token budget and temperature for each request.
func WithSampling(maxTokens int, temperature float64) Option {
	return func(a *Agent) {
		a.maxTokens = maxTokens
		a.temperature = temperature
	}
}

// WithLogger sets the logger for turn-level diagnostics.
func WithLogger(log zerolog.Logger) Option {
	return func(a *Agent) { a.log = log }
}

// WithSession persists every conversation turn to the given repo under
// a session created with the label. Persistence failures are logged
// and never interrupt generation.
func WithSession(repo store.SessionRepo, label string) Option {
	return func(a *Agent) {
		a.sessions = repo
		a.sessionLabel = label
	}
}

// New creates an Agent for the given provider.
func New(provider llm.Provider, opts ...Option) *Agent {
	a := &Agent{
		provider: provider,
		maxTurns: DefaultMaxTurns,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run sends the prompt and loops over tool calls until the model
// returns final content. The returned payload is the model's answer,
// already schema-validated by the provider when a schema is set.
func (a *Agent) Run(ctx context.Context, prompt string) (json.RawMessage, error) {
	a.append(ctx, llm.Message{Role: llm.RoleUser, Content: prompt})

	var tools []llm.Tool
	if a.toolbox != nil {
		tools = a.toolbox.Defs()
	}

	for turn := 0; turn < a.maxTurns; turn++ {
		resp, err := a.provider.Generate(ctx, llm.Request{
			System:      a.system,
			Messages:    a.messages,
			Tools:       tools,
			Schema:      a.schema,
			MaxTokens:   a.maxTokens,
			Temperature: a.temperature,
		})
		if err != nil {
			return nil, err
		}

		if len(resp.ToolCalls) == 0 {
			a.append(ctx, llm.Message{Role: llm.RoleAssistant, Content: string(resp.Content)})
			return resp.Content, nil
		}

		a.append(ctx, llm.Message{
			Role:      llm.RoleAssistant,
			Content:   string(resp.Content),
			ToolCalls: resp.ToolCalls,
		})

		for _, call := range resp.ToolCalls {
			result := a.execute(ctx, call)
			a.append(ctx, llm.Message{
				Role:       llm.RoleTool,
				Content:    string(result),
				ToolCallID: call.ID,
				ToolName:   call.Name,
			})
		}
	}

	return nil, fmt.Errorf("no final answer after %d turns", a.maxTurns)
}

// execute runs one tool call. Tool failures are reported back to the
// model as an error payload rather than aborting the run; research
// tools are best-effort.
func (a *Agent) execute(ctx context.Context, call llm.ToolCall) json.RawMessage {
	if a.toolbox == nil {
		return errPayload(fmt.Sprintf("unknown tool %q", call.Name))
	}

	a.log.Debug().Str("tool", call.Name).RawJSON("args", normalizeArgs(call.Arguments)).Msg("tool call")

	result, err := a.toolbox.Call(ctx, call.Name, call.Arguments)
	if err != nil {
		a.log.Warn().Str("tool", call.Name).Err(err).Msg("tool call failed")
		return errPayload(err.Error())
	}
	return result
}

// Reset clears the conversation so the next Run starts fresh while
// keeping the same configuration and session.
func (a *Agent) Reset() {
	a.messages = nil
}

func (a *Agent) append(ctx context.Context, msg llm.Message) {
	a.messages = append(a.messages, msg)
	a.persist(ctx, msg)
}

func (a *Agent) persist(ctx context.Context, msg llm.Message) {
	if a.sessions == nil {
		return
	}
	if a.sessionID == "" {
		id, err := a.sessions.Create(ctx, a.sessionLabel)
		if err != nil {
			a.log.Warn().Err(err).Msg("session create failed, disabling persistence")
			a.sessions = nil
			return
		}
		a.sessionID = id
	}

	var toolCalls string
	if len(msg.ToolCalls) > 0 {
		if data, err := json.Marshal(msg.ToolCalls); err == nil {
			toolCalls = string(data)
		}
	}

	err := a.sessions.Append(ctx, a.sessionID, store.SessionMessage{
		Role:       string(msg.Role),
		Content:    msg.Content,
		ToolCalls:  toolCalls,
		ToolCallID: msg.ToolCallID,
		ToolName:   msg.ToolName,
	})
	if err != nil {
		a.log.Warn().Err(err).Msg("session append failed")
	}
}

func errPayload(msg string) json.RawMessage {
	data, _ := json.Marshal(map[string]string{"error": msg})
	return data
}

func normalizeArgs(args json.RawMessage) json.RawMessage {
	if len(args) == 0 {
		return json.RawMessage(`{}`)
	}
	return args
}
