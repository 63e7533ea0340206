package aggregate

import (
	"reflect"
	"testing"

	"github.com/dexwatch/stats-api/models"
)

// 2021-01-04 00:00:00 UTC, a Monday (ISO week 1 of 2021)
const jan4 = int64(1609718400)

func TestWeekly(t *testing.T) {
	tests := []struct {
		in  []*models.DayBucket
		exp []*models.WeekBucket
	}{
		{nil, nil},
		// week boundary on the ISO week change (Sunday -> Monday); the
		// week's date is its last contributing day
		{
			[]*models.DayBucket{
				{Date: jan4, DailyVolumeUSD: 10},
				{Date: jan4 + 6*day, DailyVolumeUSD: 20}, // Sunday, still week 1
				{Date: jan4 + 7*day, DailyVolumeUSD: 40}, // Monday, week 2
			},
			[]*models.WeekBucket{
				{Date: jan4 + 6*day, WeeklyVolumeUSD: 30},
				{Date: jan4 + 7*day, WeeklyVolumeUSD: 40},
			},
		},
	}

	for i, test := range tests {
		got := Weekly(test.in, NewSession(nil))
		if !reflect.DeepEqual(got, test.exp) {
			t.Errorf("test %v | results mismatch:\nexpected: %v\ngot: %v", i, test.exp, got)
			continue
		}

		// volume conservation across the fold
		var days, weeks float64
		for _, d := range test.in {
			days += d.DailyVolumeUSD
		}
		for _, w := range got {
			weeks += w.WeeklyVolumeUSD
		}
		if days != weeks {
			t.Errorf("test %v | volume not conserved: days %v weeks %v", i, days, weeks)
		}
	}
}

func TestWeeklyOffsetsAppliedOnce(t *testing.T) {
	sess := NewSession(map[int64]float64{jan4: 4})

	mkDays := func() []*models.DayBucket {
		return []*models.DayBucket{
			{Date: jan4, DailyVolumeUSD: 10},
			{Date: jan4 + day, DailyVolumeUSD: 5},
		}
	}

	first := mkDays()
	weeks := Weekly(first, sess)
	if len(weeks) != 1 || weeks[0].WeeklyVolumeUSD != 11 {
		t.Fatalf("first pass: expected one week of 11, got %v", weeks)
	}
	// the day bucket itself is corrected so daily and weekly charts agree
	if first[0].DailyVolumeUSD != 6 {
		t.Errorf("first pass: expected day bucket corrected to 6, got %v", first[0].DailyVolumeUSD)
	}

	// a second pass on the same session must not subtract again
	second := mkDays()
	weeks = Weekly(second, sess)
	if len(weeks) != 1 || weeks[0].WeeklyVolumeUSD != 15 {
		t.Errorf("second pass: expected one week of 15, got %v", weeks)
	}
	if second[0].DailyVolumeUSD != 10 {
		t.Errorf("second pass: day bucket should be untouched, got %v", second[0].DailyVolumeUSD)
	}
}
