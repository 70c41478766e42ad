package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kdimtricp/facetrack/internal/models"
)

// ErrNotFound is returned when a row does not exist.
var ErrNotFound = errors.New("not found")

type AnalysisRepository struct {
	db *DB
}

func NewAnalysisRepository(db *DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

func (r *AnalysisRepository) Create(ctx context.Context, a *models.Analysis) error {
	labels, err := json.Marshal(nonNil(a.Labels))
	if err != nil {
		return fmt.Errorf("failed to marshal labels: %w", err)
	}
	confidence, err := json.Marshal(a.Confidence)
	if err != nil {
		return fmt.Errorf("failed to marshal confidence: %w", err)
	}
	features, err := json.Marshal(a.Features)
	if err != nil {
		return fmt.Errorf("failed to marshal features: %w", err)
	}

	query := `
		INSERT INTO analyses (id, image, labels, confidence, features, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`

	if _, err := r.db.conn.ExecContext(ctx, query,
		a.ID,
		a.Image,
		string(labels),
		string(confidence),
		string(features),
		a.CreatedAt,
	); err != nil {
		return fmt.Errorf("failed to insert analysis: %w", err)
	}
	return nil
}

func (r *AnalysisRepository) GetByID(ctx context.Context, id string) (*models.Analysis, error) {
	query := `
		SELECT id, image, labels, confidence, features, created_at
		FROM analyses
		WHERE id = ?`

	a, err := scanAnalysis(r.db.conn.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("analysis %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}
	return a, nil
}

// Recent returns the newest analyses first.
func (r *AnalysisRepository) Recent(ctx context.Context, limit int) ([]*models.Analysis, error) {
	query := `
		SELECT id, image, labels, confidence, features, created_at
		FROM analyses
		ORDER BY created_at DESC
		LIMIT ?`

	rows, err := r.db.conn.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query analyses: %w", err)
	}
	defer rows.Close()

	var analyses []*models.Analysis
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		analyses = append(analyses, a)
	}
	return analyses, rows.Err()
}

// LabelCounts returns how often each label was reported across all stored
// analyses.
func (r *AnalysisRepository) LabelCounts(ctx context.Context) (map[string]int, error) {
	query := `
		SELECT label.value, COUNT(*)
		FROM analyses, json_each(analyses.labels) AS label
		GROUP BY label.value`

	rows, err := r.db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count labels: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var label string
		var n int
		if err := rows.Scan(&label, &n); err != nil {
			return nil, fmt.Errorf("failed to scan label count: %w", err)
		}
		counts[label] = n
	}
	return counts, rows.Err()
}

func (r *AnalysisRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM analyses").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count analyses: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAnalysis(row rowScanner) (*models.Analysis, error) {
	var a models.Analysis
	var labels, confidence, features string
	if err := row.Scan(&a.ID, &a.Image, &labels, &confidence, &features, &a.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(labels), &a.Labels); err != nil {
		return nil, fmt.Errorf("bad labels column: %w", err)
	}
	if err := json.Unmarshal([]byte(confidence), &a.Confidence); err != nil {
		return nil, fmt.Errorf("bad confidence column: %w", err)
	}
	if err := json.Unmarshal([]byte(features), &a.Features); err != nil {
		return nil, fmt.Errorf("bad features column: %w", err)
	}
	return &a, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
