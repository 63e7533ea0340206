package collector

import (
	"context"

	"github.com/dexwatch/stats-api/aggregate"
	"github.com/dexwatch/stats-api/models"
	"github.com/dexwatch/stats-api/source"
	"golang.org/x/sync/errgroup"
)

// collectTokens is the second pipeline phase. Token volume is not
// reported directly by the source; it's attributed from the completed
// pair windows depending on which side of each pair the token sits on.
// Price and liquidity history come from the token's own price records,
// and the token's transactions are the global feed filtered to its
// pairs.
func (c *Collector) collectTokens(ctx context.Context, now int64, tokens []*models.TokenInfo, pairResults PairResults, pairMeta map[string]*aggregate.PairMeta) error {
	rawTxns := source.FetchAll(ctx, c.pager, func(ctx context.Context, skip, limit int) ([]*models.Transaction, error) {
		return c.source.GetTransactions(ctx, skip, limit)
	})

	g, ctx := errgroup.WithContext(ctx)
	for _, t := range tokens {
		t := t
		g.Go(func() error {
			agg, err := c.collectToken(ctx, now, t, pairResults, rawTxns, pairMeta)
			if err != nil {
				return err
			}
			c.stores.Tokens.Put(t.TokenAddress, agg)
			return nil
		})
	}
	return g.Wait()
}

func (c *Collector) collectToken(ctx context.Context, now int64, t *models.TokenInfo, pairResults PairResults, rawTxns []*models.Transaction, pairMeta map[string]*aggregate.PairMeta) (*models.TokenAggregate, error) {
	stats := &models.TokenStats{
		TokenAddress: t.TokenAddress,
		Symbol:       t.Symbol,
		Name:         t.Name,
		PriceUSD:     t.PriceUSD,
	}

	// attribute volume from the side the token appears on
	pairSet := map[string]bool{}
	for addr, agg := range pairResults {
		s := agg.Stats
		if s == nil || (s.Token0Address != t.TokenAddress && s.Token1Address != t.TokenAddress) {
			continue
		}
		stats.OneDayVolumeUSD += s.OneDayVolumeUSD
		stats.PrevDayVolumeUSD += s.PrevDayVolumeUSD
		stats.TotalLiquidityUSD += s.ReserveUSD
		stats.PairAddresses = append(stats.PairAddresses, addr)
		pairSet[addr] = true
	}
	stats.VolumeChange = aggregate.PercentChange(stats.OneDayVolumeUSD, stats.PrevDayVolumeUSD)

	yearStart := now - int64(trailingYear.Seconds())
	prices := source.FetchAll(ctx, c.pager, func(ctx context.Context, skip, limit int) ([]*models.TokenPrice, error) {
		return c.source.GetTokenPrices(ctx, t.TokenAddress, yearStart, now, skip, limit)
	})
	chart := aggregate.DailyTokenPrices(prices)
	if n := len(chart); n > 1 {
		stats.PriceChange = aggregate.PercentChange(chart[n-1].PriceUSD, chart[n-2].PriceUSD)
		stats.LiquidityChange = aggregate.PercentChange(chart[n-1].LiquidityUSD, chart[n-2].LiquidityUSD)
	} else {
		stats.PriceChange = aggregate.PercentChange(0, 0)
		stats.LiquidityChange = aggregate.PercentChange(0, 0)
	}

	var mine []*models.Transaction
	for _, tx := range rawTxns {
		if pairSet[tx.PairAddress] {
			mine = append(mine, tx)
		}
	}

	return &models.TokenAggregate{
		Stats:      stats,
		ChartDaily: chart,
		Txns:       aggregate.NormalizeTransactions(mine, pairMeta),
	}, nil
}
