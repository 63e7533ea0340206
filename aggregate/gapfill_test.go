package aggregate

import (
	"reflect"
	"testing"

	"github.com/dexwatch/stats-api/models"
)

func TestFillMissingDays(t *testing.T) {
	d0 := feb1

	tests := []struct {
		in       []*models.DayBucket
		fallback int64
		now      int64
		exp      []*models.DayBucket
	}{
		{nil, 0, d0 + 10*day, nil},
		// D1 missing between D0 and D2: synthetic day, volume 0, D0's
		// reserve carried forward
		{
			[]*models.DayBucket{
				{Date: d0, DailyVolumeUSD: 100, ReserveUSD: 50},
				{Date: d0 + 2*day, DailyVolumeUSD: 200, ReserveUSD: 70},
			},
			0,
			d0 + 3*day,
			[]*models.DayBucket{
				{Date: d0, DailyVolumeUSD: 100, ReserveUSD: 50},
				{Date: d0 + day, DailyVolumeUSD: 0, ReserveUSD: 50},
				{Date: d0 + 2*day, DailyVolumeUSD: 200, ReserveUSD: 70},
			},
		},
		// the carried reserve advances at each real day
		{
			[]*models.DayBucket{
				{Date: d0, DailyVolumeUSD: 1, ReserveUSD: 10},
				{Date: d0 + 2*day, DailyVolumeUSD: 2, ReserveUSD: 20},
			},
			0,
			d0 + 5*day,
			[]*models.DayBucket{
				{Date: d0, DailyVolumeUSD: 1, ReserveUSD: 10},
				{Date: d0 + day, DailyVolumeUSD: 0, ReserveUSD: 10},
				{Date: d0 + 2*day, DailyVolumeUSD: 2, ReserveUSD: 20},
				{Date: d0 + 3*day, DailyVolumeUSD: 0, ReserveUSD: 20},
				{Date: d0 + 4*day, DailyVolumeUSD: 0, ReserveUSD: 20},
			},
		},
		// a zero first date falls back to the provided start
		{
			[]*models.DayBucket{
				{Date: 0, DailyVolumeUSD: 0, ReserveUSD: 5},
			},
			d0,
			d0 + 2*day,
			[]*models.DayBucket{
				{Date: 0, DailyVolumeUSD: 0, ReserveUSD: 5},
				{Date: d0 + day, DailyVolumeUSD: 0, ReserveUSD: 5},
			},
		},
	}

	for i, test := range tests {
		got := FillMissingDays(test.in, test.fallback, test.now)
		if !reflect.DeepEqual(got, test.exp) {
			t.Errorf("test %v | results mismatch:\nexpected: %v\ngot: %v", i, test.exp, got)
		}
	}
}
