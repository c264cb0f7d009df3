// Package history persists scan results so past invocations can be listed
// and replayed through the API. Raw text is never stored, only its hash and
// length.
package history

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wonny/tickerscan/internal/contracts"
)

// Record is one persisted scan.
type Record struct {
	ID          int64                  `json:"id"`
	TextHash    string                 `json:"text_hash"`
	TextLen     int                    `json:"text_len"`
	Portfolios  contracts.PortfolioSet `json:"portfolios"`
	Candidates  contracts.CandidateSet `json:"candidates"`
	Approximate bool                   `json:"approximate"`
	DeadlineHit bool                   `json:"deadline_hit"`
	ElapsedMS   int64                  `json:"elapsed_ms"`
	CreatedAt   time.Time              `json:"created_at"`
}

// Repository handles scan history persistence
// ⭐ SSOT: 스캔 이력 저장/조회는 여기서만
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new history repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// HashText returns the stable identifier stored in place of the raw text.
func HashText(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// Save persists one scan result and returns its assigned id.
func (r *Repository) Save(ctx context.Context, text string, result contracts.ScanResult) (int64, error) {
	portfoliosJSON, err := json.Marshal(result.Portfolios)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal portfolios: %w", err)
	}
	candidatesJSON, err := json.Marshal(result.Candidates)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal candidates: %w", err)
	}

	query := `
		INSERT INTO scans (
			text_hash, text_len, portfolios, candidates,
			approximate, deadline_hit, elapsed_ms
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	var id int64
	err = r.pool.QueryRow(ctx, query,
		HashText(text), len(text), portfoliosJSON, candidatesJSON,
		result.Metrics.Approximate, result.Metrics.DeadlineHit,
		result.Metrics.TotalElapsed.Milliseconds(),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to save scan: %w", err)
	}

	return id, nil
}

// List returns the most recent scans, newest first.
func (r *Repository) List(ctx context.Context, limit int) ([]Record, error) {
	if limit < 1 {
		limit = 20
	}

	query := `
		SELECT id, text_hash, text_len, portfolios, candidates,
		       approximate, deadline_hit, elapsed_ms, created_at
		FROM scans
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list scans: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var portfoliosJSON, candidatesJSON []byte

		err := rows.Scan(
			&rec.ID, &rec.TextHash, &rec.TextLen, &portfoliosJSON, &candidatesJSON,
			&rec.Approximate, &rec.DeadlineHit, &rec.ElapsedMS, &rec.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		if err := json.Unmarshal(portfoliosJSON, &rec.Portfolios); err != nil {
			return nil, fmt.Errorf("failed to unmarshal portfolios: %w", err)
		}
		if err := json.Unmarshal(candidatesJSON, &rec.Candidates); err != nil {
			return nil, fmt.Errorf("failed to unmarshal candidates: %w", err)
		}

		records = append(records, rec)
	}

	return records, rows.Err()
}

// DeleteOlderThan removes scans created before the cutoff and reports how
// many rows were deleted. Used by the retention job.
func (r *Repository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM scans WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old scans: %w", err)
	}
	return tag.RowsAffected(), nil
}
