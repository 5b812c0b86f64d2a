package store

import (
	"context"
	"time"
)

// LLMRequestEventData captures a single LLM API call for the event log.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a persisted LLM request event.
type LLMEvent struct {
	ID           int64
	Timestamp    time.Time
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// QueryOpts bounds event queries. Zero Limit means a server-side default.
type QueryOpts struct {
	Limit   int
	Purpose string
}

// PurposeUsage aggregates token usage per purpose label.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// EventRepo records and queries LLM request events.
type EventRepo interface {
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)
	GetLLMEvent(ctx context.Context, id int64) (*LLMEvent, error)
	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)
}

// SessionMessage is one turn of a persisted conversation. ToolCalls is
// a JSON blob owned by the caller; the store does not interpret it.
type SessionMessage struct {
	Seq        int
	Role       string
	Content    string
	ToolCalls  string
	ToolCallID string
	ToolName   string
	CreatedAt  time.Time
}

// Session is a persisted conversation with the generator.
type Session struct {
	ID        string
	Label     string
	CreatedAt time.Time
}

// SessionRepo persists generator conversations so a batch run can be
// inspected after the fact.
type SessionRepo interface {
	Create(ctx context.Context, label string) (string, error)
	Append(ctx context.Context, sessionID string, msg SessionMessage) error
	Messages(ctx context.Context, sessionID string) ([]SessionMessage, error)
	List(ctx context.Context) ([]Session, error)
}
