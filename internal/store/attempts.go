package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cleanfocus/cleanfocus/internal/assessment"
)

// Attempt is a persisted, completed assessment.
type Attempt struct {
	ID          int64
	Module      assessment.Module
	Scholar     string
	Score       int
	Total       int
	Answers     []assessment.UserAnswer
	Narrative   string
	CompletedAt time.Time
}

// AttemptRepo stores finished assessment results.
type AttemptRepo struct {
	db *sql.DB
}

// Save records a completed attempt.
func (r *AttemptRepo) Save(ctx context.Context, scholar string, result *assessment.Result) error {
	answers, err := json.Marshal(result.Answers)
	if err != nil {
		return fmt.Errorf("encode answers: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO attempts (module, scholar, score, total, answers, narrative, completed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		string(result.Module), scholar, result.Score, result.Total,
		string(answers), result.Narrative, result.CompletedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save attempt: %w", err)
	}
	return nil
}

// Recent returns up to limit attempts, newest first.
func (r *AttemptRepo) Recent(ctx context.Context, limit int) ([]Attempt, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, module, scholar, score, total, answers, narrative, completed_at
		 FROM attempts ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	var attempts []Attempt
	for rows.Next() {
		var a Attempt
		var module, answers, completedAt string
		if err := rows.Scan(&a.ID, &module, &a.Scholar, &a.Score, &a.Total,
			&answers, &a.Narrative, &completedAt); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		a.Module = assessment.Module(module)
		if err := json.Unmarshal([]byte(answers), &a.Answers); err != nil {
			return nil, fmt.Errorf("decode answers: %w", err)
		}
		if a.CompletedAt, err = time.Parse(time.RFC3339, completedAt); err != nil {
			return nil, fmt.Errorf("parse completed_at: %w", err)
		}
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}
