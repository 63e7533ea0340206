package aggregate

import "github.com/dexwatch/stats-api/models"

// WindowSums holds the headline trailing-window volume totals for one
// pair, computed by plain timestamp filtering rather than day bucketing:
// the windows slide with the clock and don't align to UTC midnights.
type WindowSums struct {
	OneDayVolumeUSD  float64 // [now-1d, now]
	PrevDayVolumeUSD float64 // [now-2d, now-1d)
	OneWeekVolumeUSD float64 // [now-7d, now]
	Volume0Total     float64
	Volume1Total     float64
}

// TrailingWindows sums raw per-pair day records into explicit timestamp
// windows ending at now. Records outside every window still count toward
// the running totals.
func TrailingWindows(records []*models.PairDay, now int64) WindowSums {
	oneDayAgo := now - 24*60*60
	twoDaysAgo := now - 2*24*60*60
	oneWeekAgo := now - 7*24*60*60

	var w WindowSums
	for _, r := range records {
		if r.TimeStamp >= oneDayAgo {
			w.OneDayVolumeUSD += r.Volume0USD
		} else if r.TimeStamp >= twoDaysAgo {
			w.PrevDayVolumeUSD += r.Volume0USD
		}
		if r.TimeStamp >= oneWeekAgo {
			w.OneWeekVolumeUSD += r.Volume0USD
		}
		w.Volume0Total += r.Volume0USD
		w.Volume1Total += r.Volume1USD
	}
	return w
}
