package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

type sessionRepo struct {
	db *sql.DB
}

func (r *sessionRepo) Create(ctx context.Context, label string) (string, error) {
	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sessions (id, label) VALUES (?, ?)`, id, label)
	if err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return id, nil
}

func (r *sessionRepo) Append(ctx context.Context, sessionID string, msg SessionMessage) error {
	// Seq is assigned server-side so callers never race each other.
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO session_messages (
			session_id, seq, role, content, tool_calls, tool_call_id, tool_name
		) VALUES (
			?,
			(SELECT COALESCE(MAX(seq), 0) + 1 FROM session_messages WHERE session_id = ?),
			?, ?, ?, ?, ?
		)`,
		sessionID, sessionID,
		msg.Role, msg.Content, msg.ToolCalls, msg.ToolCallID, msg.ToolName,
	)
	if err != nil {
		return fmt.Errorf("append session message: %w", err)
	}
	return nil
}

func (r *sessionRepo) Messages(ctx context.Context, sessionID string) ([]SessionMessage, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT seq, role, content, tool_calls, tool_call_id, tool_name, created_at
		FROM session_messages
		WHERE session_id = ?
		ORDER BY seq`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query session messages: %w", err)
	}
	defer rows.Close()

	var msgs []SessionMessage
	for rows.Next() {
		var m SessionMessage
		if err := rows.Scan(&m.Seq, &m.Role, &m.Content, &m.ToolCalls, &m.ToolCallID, &m.ToolName, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan session message: %w", err)
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

func (r *sessionRepo) List(ctx context.Context) ([]Session, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, label, created_at FROM sessions ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var s Session
		if err := rows.Scan(&s.ID, &s.Label, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}
