package backend

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dexwatch/stats-api/models"
	"github.com/dexwatch/stats-api/store"
	"github.com/treeder/gotils"
)

func seedStores() *store.Stores {
	s := store.NewStores()
	s.Global.Put(store.GlobalKey, &models.GlobalAggregate{
		Stats:       &models.GlobalStats{OneDayVolumeUSD: 100},
		ChartDaily:  []*models.DayBucket{{Date: 1, DailyVolumeUSD: 100}},
		ChartWeekly: []*models.WeekBucket{{Date: 1, WeeklyVolumeUSD: 100}},
	})
	s.Pairs.Put("0xp", &models.PairAggregate{
		Stats:      &models.PairStats{PairAddress: "0xp", OneDayVolumeUSD: 100},
		ChartDaily: []*models.DayBucket{{Date: 1}},
		Txns:       &models.TransactionSet{Swaps: []*models.NormalizedTransaction{{Hash: "0x1"}}},
	})
	s.Tokens.Put("0xt", &models.TokenAggregate{
		Stats: &models.TokenStats{TokenAddress: "0xt", Symbol: "AAA"},
	})
	return s
}

func TestStoreBackend(t *testing.T) {
	ctx := context.Background()
	db := NewStoreBackend(seedStores())

	g, err := db.GetGlobal(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if g.Stats.OneDayVolumeUSD != 100 {
		t.Errorf("global stats mismatch: %+v", g.Stats)
	}

	daily, weekly, err := db.GetGlobalChart(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(daily) != 1 || len(weekly) != 1 {
		t.Errorf("chart mismatch: %v daily, %v weekly", len(daily), len(weekly))
	}

	pairs, err := db.GetPairs(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(pairs) != 1 || pairs[0].PairAddress != "0xp" {
		t.Errorf("pairs mismatch: %+v", pairs)
	}

	txns, err := db.GetPairTxns(ctx, "0xp")
	if err != nil {
		t.Fatal(err)
	}
	if len(txns.Swaps) != 1 {
		t.Errorf("pair txns mismatch: %+v", txns)
	}

	tokens, err := db.GetTokens(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(tokens) != 1 || tokens[0].Symbol != "AAA" {
		t.Errorf("tokens mismatch: %+v", tokens)
	}
}

func TestStoreBackendNotFound(t *testing.T) {
	ctx := context.Background()
	db := NewStoreBackend(store.NewStores())

	if _, err := db.GetGlobal(ctx); !errors.Is(err, gotils.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := db.GetPair(ctx, "0xnope"); !errors.Is(err, gotils.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := db.GetTokenTxns(ctx, "0xnope"); !errors.Is(err, gotils.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCacheBackendDelegates(t *testing.T) {
	ctx := context.Background()
	db, err := NewCacheBackend(ctx, NewStoreBackend(seedStores()), time.Minute)
	if err != nil {
		t.Fatal(err)
	}

	// a cold cache falls through to the wrapped backend
	p, err := db.GetPair(ctx, "0xp")
	if err != nil {
		t.Fatal(err)
	}
	if p.Stats.OneDayVolumeUSD != 100 {
		t.Errorf("pair mismatch through cache: %+v", p.Stats)
	}

	if _, err := db.GetToken(ctx, "0xnope"); !errors.Is(err, gotils.ErrNotFound) {
		t.Errorf("misses must not be cached as values: %v", err)
	}

	daily, weekly, err := db.GetGlobalChart(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(daily) != 1 || len(weekly) != 1 {
		t.Errorf("chart mismatch through cache: %v daily, %v weekly", len(daily), len(weekly))
	}
}
