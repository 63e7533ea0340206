package backend

import (
	"context"

	"github.com/dexwatch/stats-api/models"
)

// StatsBackend defines the read path the HTTP handlers use. Aggregates
// are produced by the collector and served as-is; section accessors
// exist so chart and transaction endpoints don't ship the whole
// aggregate.
type StatsBackend interface {
	// GetGlobal returns the exchange-wide aggregate.
	GetGlobal(ctx context.Context) (*models.GlobalAggregate, error)
	// GetGlobalChart returns the daily and weekly global series.
	GetGlobalChart(ctx context.Context) ([]*models.DayBucket, []*models.WeekBucket, error)
	// GetGlobalTxns returns the normalized global transaction feed.
	GetGlobalTxns(ctx context.Context) (*models.TransactionSet, error)

	// GetPairs returns headline stats for every collected pair.
	GetPairs(ctx context.Context) ([]*models.PairStats, error)
	GetPair(ctx context.Context, address string) (*models.PairAggregate, error)
	GetPairChart(ctx context.Context, address string) ([]*models.DayBucket, error)
	GetPairTxns(ctx context.Context, address string) (*models.TransactionSet, error)

	// GetTokens returns headline stats for every collected token.
	GetTokens(ctx context.Context) ([]*models.TokenStats, error)
	GetToken(ctx context.Context, address string) (*models.TokenAggregate, error)
	GetTokenChart(ctx context.Context, address string) ([]*models.TokenDay, error)
	GetTokenTxns(ctx context.Context, address string) (*models.TransactionSet, error)
}
