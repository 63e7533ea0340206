package aggregate

import (
	"github.com/dexwatch/stats-api/models"
	"github.com/dexwatch/stats-api/utils"
)

// Weekly groups ascending day buckets into ISO-8601 weeks and sums their
// volume. Each week bucket's Date is the date of its last contributing
// day. Weeks with no day buckets simply don't appear; run the day series
// through FillMissingDays first if calendar-complete weeks matter.
//
// When the session still holds unapplied volume offsets, they are
// subtracted from the matching day buckets in place before accumulation.
// That mutation is deliberate: the daily chart and the weekly chart must
// agree on the corrected numbers, and the session latch guarantees a
// bucket is never corrected twice.
func Weekly(days []*models.DayBucket, sess *Session) []*models.WeekBucket {
	if len(days) == 0 {
		return nil
	}
	offsets := sess.claimOffsets()

	var weeks []*models.WeekBucket
	curYear, curWeek := 0, -1
	for _, d := range days {
		if off, ok := offsets[d.Date]; ok {
			d.DailyVolumeUSD -= off
		}
		y, w := utils.ISOWeek(d.Date)
		if y != curYear || w != curWeek {
			curYear, curWeek = y, w
			weeks = append(weeks, &models.WeekBucket{})
		}
		wb := weeks[len(weeks)-1]
		wb.Date = d.Date
		wb.WeeklyVolumeUSD += d.DailyVolumeUSD
	}
	return weeks
}
