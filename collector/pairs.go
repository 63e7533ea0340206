package collector

import (
	"context"
	"sync"

	"github.com/dexwatch/stats-api/aggregate"
	"github.com/dexwatch/stats-api/models"
	"github.com/dexwatch/stats-api/source"
	"github.com/dexwatch/stats-api/store"
	"github.com/dexwatch/stats-api/utils"
	"github.com/treeder/gotils/v2"
	"golang.org/x/sync/errgroup"
)

// collectPairs aggregates every pair not in the exclusion set, fanned
// out across pairs with sequential page fetches inside each. Returns
// the completed per-pair aggregates for the token phase.
func (c *Collector) collectPairs(ctx context.Context, now int64, pairs []*models.PairInfo, tokens map[string]*models.TokenInfo, pairMeta map[string]*aggregate.PairMeta) (PairResults, error) {
	results := PairResults{}
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	for _, p := range pairs {
		if c.cfg.ExcludedPairs[p.PairAddress] {
			gotils.C(ctx).Printf("skipping excluded pair %v", p.PairAddress)
			continue
		}
		p := p
		g.Go(func() error {
			agg, err := c.collectPair(ctx, now, p, tokens, pairMeta)
			if err != nil {
				return err
			}
			mu.Lock()
			results[p.PairAddress] = agg
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	entries := make([]store.Entry[*models.PairAggregate], 0, len(results))
	for addr, agg := range results {
		entries = append(entries, store.Entry[*models.PairAggregate]{Key: addr, Data: agg})
	}
	c.stores.Pairs.PutBatch(entries)
	return results, nil
}

func (c *Collector) collectPair(ctx context.Context, now int64, p *models.PairInfo, tokens map[string]*models.TokenInfo, pairMeta map[string]*aggregate.PairMeta) (*models.PairAggregate, error) {
	yearStart := now - int64(trailingYear.Seconds())
	records := source.FetchAll(ctx, c.pager, func(ctx context.Context, skip, limit int) ([]*models.PairDay, error) {
		return c.source.GetPairDays(ctx, p.PairAddress, yearStart, now, skip, limit)
	})

	windows := aggregate.TrailingWindows(records, now)
	vol0, vol1, liq := aggregate.DailyPairSeries(records)

	stats := &models.PairStats{
		PairAddress:      p.PairAddress,
		Token0Address:    p.Token0Address,
		Token1Address:    p.Token1Address,
		OneDayVolumeUSD:  windows.OneDayVolumeUSD,
		PrevDayVolumeUSD: windows.PrevDayVolumeUSD,
		OneWeekVolumeUSD: windows.OneWeekVolumeUSD,
		Volume0USDTotal:  windows.Volume0Total,
		Volume1USDTotal:  windows.Volume1Total,
		VolumeChange:     aggregate.PercentChange(windows.OneDayVolumeUSD, windows.PrevDayVolumeUSD),
		Volume0PerDay:    vol0,
		Volume1PerDay:    vol1,
		LiquidityPerDay:  liq,
	}

	if n := len(liq); n > 0 {
		stats.ReserveUSD = liq[n-1].Liquidity
		if n > 1 {
			stats.LiquidityChange = aggregate.PercentChange(liq[n-1].Liquidity, liq[n-2].Liquidity)
		}
	}

	if t0 := tokens[p.Token0Address]; t0 != nil {
		stats.Token0 = t0
		if r, ok := utils.StrToDec(p.Reserve0, t0.Decimals); ok {
			stats.Reserve0 = r
		}
	}
	if t1 := tokens[p.Token1Address]; t1 != nil {
		stats.Token1 = t1
		if r, ok := utils.StrToDec(p.Reserve1, t1.Decimals); ok {
			stats.Reserve1 = r
		}
	}

	rawTxns := source.FetchAll(ctx, c.pager, func(ctx context.Context, skip, limit int) ([]*models.Transaction, error) {
		return c.source.GetPairTransactions(ctx, p.PairAddress, skip, limit)
	})

	return &models.PairAggregate{
		Stats:      stats,
		ChartDaily: aggregate.DailyVolumes(records),
		Txns:       aggregate.NormalizeTransactions(rawTxns, pairMeta),
	}, nil
}
