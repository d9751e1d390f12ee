package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/cleanfocus/cleanfocus/internal/llm"
)

// Event is one persisted model request.
type Event struct {
	ID           int64
	CreatedAt    time.Time
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// EventRepo stores model request events. It implements
// llm.EventLogger.
type EventRepo struct {
	db *sql.DB
}

// LogLLMRequest appends one event. Failures are reported on stderr
// and never propagate; losing an event must not break the request.
func (r *EventRepo) LogLLMRequest(ctx context.Context, e llm.RequestEvent) {
	success := 0
	if e.Success {
		success = 1
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO llm_events
		 (created_at, provider, model, purpose, input_tokens, output_tokens, latency_ms, success, error_message)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		time.Now().UTC().Format(time.RFC3339), e.Provider, e.Model, e.Purpose,
		e.InputTokens, e.OutputTokens, e.LatencyMs, success, e.ErrorMessage)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to log LLM request event: %v\n", err)
	}
}

// Recent returns up to limit events, newest first.
func (r *EventRepo) Recent(ctx context.Context, limit int) ([]Event, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, created_at, provider, model, purpose, input_tokens, output_tokens,
		        latency_ms, success, error_message
		 FROM llm_events ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		var createdAt string
		var success int
		if err := rows.Scan(&e.ID, &createdAt, &e.Provider, &e.Model, &e.Purpose,
			&e.InputTokens, &e.OutputTokens, &e.LatencyMs, &success, &e.ErrorMessage); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		e.Success = success == 1
		if e.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, fmt.Errorf("parse created_at: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
