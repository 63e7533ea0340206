package collector

import (
	"context"

	"github.com/dexwatch/stats-api/aggregate"
	"github.com/dexwatch/stats-api/models"
	"github.com/dexwatch/stats-api/source"
	"github.com/dexwatch/stats-api/store"
	"github.com/dexwatch/stats-api/utils"
)

// collectGlobal aggregates the exchange-wide view: headline windows from
// short fetches, the trailing-year chart through the full
// bucket/week/gap-fill chain, and the global transaction feed.
func (c *Collector) collectGlobal(ctx context.Context, now int64, pairMeta map[string]*aggregate.PairMeta) error {
	oneDay := source.FetchAll(ctx, c.pager, func(ctx context.Context, skip, limit int) ([]*models.PairDay, error) {
		return c.source.GetGlobalDays(ctx, now-utils.SecondsPerDay, now, skip, limit)
	})
	prevDay := source.FetchAll(ctx, c.pager, func(ctx context.Context, skip, limit int) ([]*models.PairDay, error) {
		return c.source.GetGlobalDays(ctx, now-2*utils.SecondsPerDay, now-utils.SecondsPerDay, skip, limit)
	})
	oneWeek := source.FetchAll(ctx, c.pager, func(ctx context.Context, skip, limit int) ([]*models.PairDay, error) {
		return c.source.GetGlobalDays(ctx, now-7*utils.SecondsPerDay, now, skip, limit)
	})

	liquidity := liquiditySum(oneDay)
	prevLiquidity := liquiditySum(prevDay)
	oneDayVolume := volumeSum(oneDay)
	prevDayVolume := volumeSum(prevDay)

	stats := &models.GlobalStats{
		OneDayVolumeUSD:   oneDayVolume,
		OneWeekVolumeUSD:  volumeSum(oneWeek),
		TotalLiquidityUSD: liquidity,
		VolumeChange:      aggregate.PercentChange(oneDayVolume, prevDayVolume),
		LiquidityChange:   aggregate.PercentChange(liquidity, prevLiquidity),
	}

	// chart history, fetched independently of the headline windows
	yearStart := now - int64(trailingYear.Seconds())
	history := source.FetchAll(ctx, c.pager, func(ctx context.Context, skip, limit int) ([]*models.PairDay, error) {
		return c.source.GetGlobalDays(ctx, yearStart, now, skip, limit)
	})
	daily := aggregate.DailyVolumes(history)
	weekly := aggregate.Weekly(daily, c.session)
	daily = aggregate.FillMissingDays(daily, yearStart, now)

	raw := source.FetchAll(ctx, c.pager, func(ctx context.Context, skip, limit int) ([]*models.Transaction, error) {
		return c.source.GetTransactions(ctx, skip, limit)
	})
	txns := aggregate.NormalizeTransactions(raw, pairMeta)

	c.stores.Global.Put(store.GlobalKey, &models.GlobalAggregate{
		Stats:       stats,
		ChartDaily:  daily,
		ChartWeekly: weekly,
		Txns:        txns,
	})
	return nil
}
