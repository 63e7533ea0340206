package aggregate

import (
	"testing"

	"github.com/dexwatch/stats-api/models"
)

func TestTrailingWindows(t *testing.T) {
	now := feb1 + 30*day

	in := []*models.PairDay{
		{TimeStamp: now - 3600, Volume0USD: 10, Volume1USD: 1},    // last 24h
		{TimeStamp: now - 25*3600, Volume0USD: 20, Volume1USD: 2}, // 24-48h window
		{TimeStamp: now - 5*day, Volume0USD: 40, Volume1USD: 4},   // in the week only
		{TimeStamp: now - 20*day, Volume0USD: 80, Volume1USD: 8},  // totals only
	}

	got := TrailingWindows(in, now)
	exp := WindowSums{
		OneDayVolumeUSD:  10,
		PrevDayVolumeUSD: 20,
		OneWeekVolumeUSD: 70,
		Volume0Total:     150,
		Volume1Total:     15,
	}
	if got != exp {
		t.Errorf("expected %+v got %+v", exp, got)
	}

	if got := TrailingWindows(nil, now); got != (WindowSums{}) {
		t.Errorf("expected zero sums for empty input, got %+v", got)
	}
}
