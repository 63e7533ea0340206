package aggregate

import (
	"sort"

	"github.com/dexwatch/stats-api/models"
	"github.com/dexwatch/stats-api/utils"
)

// DailyVolumes folds raw per-pair day records into one bucket per UTC
// calendar day. Volume is summed across all records of the day. Reserve
// is trickier: within a day, a pair can report several liquidity
// snapshots, and the latest positive one wins per pair; the day's
// ReserveUSD is the sum of those winners at the boundary. A day where no
// pair reported positive liquidity inherits the previous bucket's
// reserve, since a silent pair still holds what it held yesterday.
//
// Input order doesn't matter, the records are sorted by timestamp first.
// The bucket in flight when the stream ends is always flushed.
func DailyVolumes(records []*models.PairDay) []*models.DayBucket {
	if len(records) == 0 {
		return nil
	}
	recs := make([]*models.PairDay, len(records))
	copy(recs, records)
	sort.SliceStable(recs, func(i, j int) bool { return recs[i].TimeStamp < recs[j].TimeStamp })

	var out []*models.DayBucket
	currentDay := utils.DayStart(recs[0].TimeStamp)
	volume := 0.0
	liquidityByPair := map[string]float64{}
	id := 0

	flush := func(day int64) {
		reserve := 0.0
		for _, l := range liquidityByPair {
			reserve += l
		}
		if reserve == 0 && len(out) > 0 {
			reserve = out[len(out)-1].ReserveUSD
		}
		out = append(out, &models.DayBucket{
			ID:             id,
			Date:           day,
			DailyVolumeUSD: volume,
			ReserveUSD:     reserve,
		})
		id++
		volume = 0
		liquidityByPair = map[string]float64{}
	}

	for _, r := range recs {
		day := utils.DayStart(r.TimeStamp)
		if day > currentDay {
			flush(currentDay)
			currentDay = day
		}
		volume += r.Volume0USD
		if r.LiquidityUSD > 0 {
			liquidityByPair[r.PairAddress] = r.LiquidityUSD
		}
	}
	flush(currentDay)
	return out
}

// DailyPairSeries builds the three per-day chart series for a single
// pair: volume denominated in token0, volume in token1, and liquidity.
// Same day-boundary fold as DailyVolumes, but a single pair means the
// liquidity map degenerates to a last-positive-value scalar.
func DailyPairSeries(records []*models.PairDay) (vol0 []*models.VolumePoint, vol1 []*models.VolumePoint, liq []*models.LiquidityPoint) {
	if len(records) == 0 {
		return nil, nil, nil
	}
	recs := make([]*models.PairDay, len(records))
	copy(recs, records)
	sort.SliceStable(recs, func(i, j int) bool { return recs[i].TimeStamp < recs[j].TimeStamp })

	currentDay := utils.DayStart(recs[0].TimeStamp)
	v0, v1 := 0.0, 0.0
	dayLiquidity := 0.0
	lastLiquidity := 0.0

	flush := func(day int64) {
		reserve := dayLiquidity
		if reserve == 0 {
			reserve = lastLiquidity
		}
		vol0 = append(vol0, &models.VolumePoint{TimeStamp: day, Volume: v0})
		vol1 = append(vol1, &models.VolumePoint{TimeStamp: day, Volume: v1})
		liq = append(liq, &models.LiquidityPoint{TimeStamp: day, Liquidity: reserve})
		if reserve > 0 {
			lastLiquidity = reserve
		}
		v0, v1, dayLiquidity = 0, 0, 0
	}

	for _, r := range recs {
		day := utils.DayStart(r.TimeStamp)
		if day > currentDay {
			flush(currentDay)
			currentDay = day
		}
		v0 += r.Volume0USD
		v1 += r.Volume1USD
		if r.LiquidityUSD > 0 {
			dayLiquidity = r.LiquidityUSD
		}
	}
	flush(currentDay)
	return vol0, vol1, liq
}

// DailyTokenPrices collapses raw token price records to one point per UTC
// day. The last record of each day wins for both price and liquidity, so
// the chart shows the closing snapshot rather than an average.
func DailyTokenPrices(prices []*models.TokenPrice) []*models.TokenDay {
	if len(prices) == 0 {
		return nil
	}
	recs := make([]*models.TokenPrice, len(prices))
	copy(recs, prices)
	sort.SliceStable(recs, func(i, j int) bool { return recs[i].TimeStamp < recs[j].TimeStamp })

	var out []*models.TokenDay
	currentDay := utils.DayStart(recs[0].TimeStamp)
	var last *models.TokenPrice
	id := 0

	flush := func(day int64) {
		out = append(out, &models.TokenDay{
			ID:           id,
			Date:         day,
			PriceUSD:     last.PriceInUSD,
			LiquidityUSD: last.LiquidityUSD,
		})
		id++
	}

	for _, p := range recs {
		day := utils.DayStart(p.TimeStamp)
		if last != nil && day > currentDay {
			flush(currentDay)
			currentDay = day
		}
		last = p
	}
	flush(currentDay)
	return out
}
