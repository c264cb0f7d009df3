package history

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/tickerscan/internal/contracts"
	"github.com/wonny/tickerscan/pkg/logger"
)

func TestHashText(t *testing.T) {
	a := HashText("AAPL up")
	b := HashText("AAPL up")
	c := HashText("AAPL down")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}

// Integration test: requires a running PostgreSQL and DATABASE_URL.
func TestRepositoryRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	defer pool.Close()

	require.NoError(t, Migrate(ctx, pool, logger.Nop()))

	repo := NewRepository(pool)
	result := contracts.ScanResult{
		Portfolios: contracts.PortfolioSet{
			Portfolios: []contracts.BuiltPortfolio{{
				Entries: []contracts.BuiltEntry{{
					Symbol: "AAPL", Name: "Apple Inc.", Weight: 1.0,
					Confidence: 1.0, Start: 0, End: 5, Mentions: 1,
				}},
				Score: 1.0,
			}},
		},
	}

	id, err := repo.Save(ctx, "$AAPL to the moon", result)
	require.NoError(t, err)
	assert.Greater(t, id, int64(0))

	records, err := repo.List(ctx, 10)
	require.NoError(t, err)
	require.NotEmpty(t, records)
	assert.Equal(t, HashText("$AAPL to the moon"), records[0].TextHash)
	assert.Equal(t, "AAPL", records[0].Portfolios.Portfolios[0].Entries[0].Symbol)

	deleted, err := repo.DeleteOlderThan(ctx, time.Now().Add(time.Minute))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, deleted, int64(1))
}
