package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Attempt is one answered question, recorded append-only.
type Attempt struct {
	ID         string
	Profile    string
	FactKey    string
	Answer     int
	Correct    bool
	ElapsedMs  int64
	AnsweredAt time.Time
}

// AttemptTotals aggregates a profile's attempt history.
type AttemptTotals struct {
	Attempts     int
	Correct      int
	AvgElapsedMs int64
}

// FactTotals aggregates attempts for a single fact.
type FactTotals struct {
	FactKey  string
	Attempts int
	Correct  int
}

// AttemptRepo provides append access to the attempt log and the
// aggregate queries the stats views read from.
type AttemptRepo interface {
	// Append records one attempt. A zero ID is assigned, a zero
	// AnsweredAt is stamped with the current time.
	Append(ctx context.Context, a Attempt) error

	// Totals aggregates all attempts for a profile.
	Totals(ctx context.Context, name string) (AttemptTotals, error)

	// HardestFacts returns up to limit facts with the most wrong answers,
	// worst first. Facts never answered wrong are excluded.
	HardestFacts(ctx context.Context, name string, limit int) ([]FactTotals, error)
}

type attemptRepo struct {
	db *sql.DB
}

func (r *attemptRepo) Append(ctx context.Context, a Attempt) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.AnsweredAt.IsZero() {
		a.AnsweredAt = time.Now()
	}
	correct := 0
	if a.Correct {
		correct = 1
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO attempts (id, profile, fact_key, answer, correct, elapsed_ms, answered_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Profile, a.FactKey, a.Answer, correct, a.ElapsedMs,
		a.AnsweredAt.Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("append attempt: %w", err)
	}
	return nil
}

func (r *attemptRepo) Totals(ctx context.Context, name string) (AttemptTotals, error) {
	var t AttemptTotals
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(correct), 0), COALESCE(AVG(elapsed_ms), 0)
		 FROM attempts WHERE profile = ?`, name).
		Scan(&t.Attempts, &t.Correct, &t.AvgElapsedMs)
	if err != nil {
		return AttemptTotals{}, fmt.Errorf("attempt totals: %w", err)
	}
	return t, nil
}

func (r *attemptRepo) HardestFacts(ctx context.Context, name string, limit int) ([]FactTotals, error) {
	if limit <= 0 {
		return nil, nil
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT fact_key, COUNT(*), SUM(correct)
		 FROM attempts
		 WHERE profile = ?
		 GROUP BY fact_key
		 HAVING COUNT(*) > SUM(correct)
		 ORDER BY COUNT(*) - SUM(correct) DESC, fact_key ASC
		 LIMIT ?`, name, limit)
	if err != nil {
		return nil, fmt.Errorf("hardest facts: %w", err)
	}
	defer rows.Close()

	var result []FactTotals
	for rows.Next() {
		var ft FactTotals
		if err := rows.Scan(&ft.FactKey, &ft.Attempts, &ft.Correct); err != nil {
			return nil, err
		}
		result = append(result, ft)
	}
	return result, rows.Err()
}
