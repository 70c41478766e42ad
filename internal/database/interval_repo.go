package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kdimtricp/facetrack/internal/models"
)

type IntervalRepository struct {
	db *DB
}

func NewIntervalRepository(db *DB) *IntervalRepository {
	return &IntervalRepository{db: db}
}

func (r *IntervalRepository) Create(ctx context.Context, iv *models.Interval) error {
	labels, err := json.Marshal(nonNil(iv.Labels))
	if err != nil {
		return fmt.Errorf("failed to marshal labels: %w", err)
	}

	query := `
		INSERT INTO intervals (id, session_id, started_at, ended_at, blinks, frequency, labels, state)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	if _, err := r.db.conn.ExecContext(ctx, query,
		iv.ID,
		iv.SessionID,
		iv.StartedAt,
		iv.EndedAt,
		iv.Blinks,
		iv.Frequency,
		string(labels),
		iv.State,
	); err != nil {
		return fmt.Errorf("failed to insert interval: %w", err)
	}
	return nil
}

// ListBySession returns the intervals of one session in time order.
func (r *IntervalRepository) ListBySession(ctx context.Context, sessionID string) ([]*models.Interval, error) {
	query := `
		SELECT id, session_id, started_at, ended_at, blinks, frequency, labels, state
		FROM intervals
		WHERE session_id = ?
		ORDER BY started_at`

	rows, err := r.db.conn.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query intervals: %w", err)
	}
	defer rows.Close()

	var intervals []*models.Interval
	for rows.Next() {
		var iv models.Interval
		var labels string
		if err := rows.Scan(
			&iv.ID,
			&iv.SessionID,
			&iv.StartedAt,
			&iv.EndedAt,
			&iv.Blinks,
			&iv.Frequency,
			&labels,
			&iv.State,
		); err != nil {
			return nil, fmt.Errorf("failed to scan interval: %w", err)
		}
		if err := json.Unmarshal([]byte(labels), &iv.Labels); err != nil {
			return nil, fmt.Errorf("bad labels column: %w", err)
		}
		intervals = append(intervals, &iv)
	}
	return intervals, rows.Err()
}

// CountSessions returns the number of distinct interview sessions stored.
func (r *IntervalRepository) CountSessions(ctx context.Context) (int, error) {
	var n int
	if err := r.db.conn.QueryRowContext(ctx, "SELECT COUNT(DISTINCT session_id) FROM intervals").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count sessions: %w", err)
	}
	return n, nil
}
