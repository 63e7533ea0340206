package source

import (
	"context"

	"github.com/dexwatch/stats-api/models"
)

// Client is the remote query service the aggregators pull raw records
// from. Day-record collections are filtered by [startTime, endTime] in
// unix seconds and paged with skip/limit; a response shorter than limit
// means there are no more pages.
type Client interface {
	// GetGlobalDays returns per-pair day-volume records across the whole
	// exchange.
	GetGlobalDays(ctx context.Context, startTime, endTime int64, skip, limit int) ([]*models.PairDay, error)

	// GetPairDays returns day-volume records for a single pair.
	GetPairDays(ctx context.Context, pairAddress string, startTime, endTime int64, skip, limit int) ([]*models.PairDay, error)

	// GetTokenPrices returns price/liquidity snapshots for a token.
	GetTokenPrices(ctx context.Context, tokenAddress string, startTime, endTime int64, skip, limit int) ([]*models.TokenPrice, error)

	// GetPairs returns the current pairs list.
	GetPairs(ctx context.Context) ([]*models.PairInfo, error)

	// GetTokens returns the current tokens list.
	GetTokens(ctx context.Context) ([]*models.TokenInfo, error)

	// GetTransactions returns recent transactions across all pairs.
	GetTransactions(ctx context.Context, skip, limit int) ([]*models.Transaction, error)

	// GetPairTransactions returns recent transactions for one pair.
	GetPairTransactions(ctx context.Context, pairAddress string, skip, limit int) ([]*models.Transaction, error)
}
