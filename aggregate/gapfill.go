package aggregate

import (
	"sort"

	"github.com/dexwatch/stats-api/models"
	"github.com/dexwatch/stats-api/utils"
)

// FillMissingDays inserts a synthetic zero-volume bucket for every UTC
// calendar day absent from the series, walking from the first entry's
// date (or fallbackStart when that date is zero) up to now minus one
// day. Synthetic days carry the last existing entry's reserve forward, no
// interpolation. The result is re-sorted ascending since existing and
// synthetic entries are produced out of order.
func FillMissingDays(days []*models.DayBucket, fallbackStart, now int64) []*models.DayBucket {
	if len(days) == 0 {
		return days
	}
	existing := make([]*models.DayBucket, len(days))
	copy(existing, days)
	sort.SliceStable(existing, func(i, j int) bool { return existing[i].Date < existing[j].Date })

	present := make(map[int64]bool, len(existing))
	for _, d := range existing {
		present[utils.DayIndex(d.Date)] = true
	}

	out := make([]*models.DayBucket, len(existing))
	copy(out, existing)

	ts := existing[0].Date
	if ts == 0 {
		ts = fallbackStart
	}
	latestReserve := existing[0].ReserveUSD
	next := 1
	for ts < now-utils.SecondsPerDay {
		ts += utils.SecondsPerDay
		if present[utils.DayIndex(ts)] {
			if next < len(existing) {
				latestReserve = existing[next].ReserveUSD
				next++
			}
			continue
		}
		out = append(out, &models.DayBucket{
			Date:           utils.DayStart(ts),
			DailyVolumeUSD: 0,
			ReserveUSD:     latestReserve,
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
