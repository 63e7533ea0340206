package aggregate

import (
	"testing"

	"github.com/dexwatch/stats-api/models"
	"github.com/shopspring/decimal"
)

func testPairMeta() map[string]*PairMeta {
	return map[string]*PairMeta{
		"0xab": {
			Token0: &models.TokenInfo{TokenAddress: "0xa", Symbol: "AAA", Decimals: 18},
			Token1: &models.TokenInfo{TokenAddress: "0xb", Symbol: "BBB", Decimals: 6},
		},
	}
}

func swap(hash string, a0in string) *models.Transaction {
	return &models.Transaction{
		PairAddress:     "0xab",
		TransactionHash: hash,
		TimeStamp:       feb1,
		Amount0In:       a0in,
		Amount1In:       "0",
		Amount0Out:      "0",
		Amount1Out:      "2000000",
		AmountUSD:       42,
		To:              "0xdead",
	}
}

func TestNormalizeTransactions(t *testing.T) {
	raw := []*models.Transaction{
		swap("0x1", "1000000000000000000"),
	}
	set := NormalizeTransactions(raw, testPairMeta())
	if len(set.Swaps) != 1 {
		t.Fatalf("expected 1 swap, got %v", len(set.Swaps))
	}
	got := set.Swaps[0]
	if got.Token0Symbol != "AAA" || got.Token1Symbol != "BBB" {
		t.Errorf("symbols mismatch: %v / %v", got.Token0Symbol, got.Token1Symbol)
	}
	if !got.Amount0In.Equal(decimal.RequireFromString("1")) {
		t.Errorf("amount0In: expected 1, got %v", got.Amount0In)
	}
	if !got.Amount1Out.Equal(decimal.RequireFromString("2")) {
		t.Errorf("amount1Out: expected 2, got %v", got.Amount1Out)
	}
	if got.Hash != "0x1" || got.AmountUSD != 42 || got.To != "0xdead" {
		t.Errorf("passthrough fields mismatch: %+v", got)
	}
	if set.Mints == nil || set.Burns == nil || len(set.Mints) != 0 || len(set.Burns) != 0 {
		t.Errorf("mints and burns must be present and empty")
	}
}

func TestNormalizeTransactionsDedupe(t *testing.T) {
	tests := []struct {
		hashes []string
		exp    int
	}{
		// adjacent duplicates collapse to one
		{[]string{"0x1", "0x1"}, 1},
		{[]string{"0x1", "0x1", "0x1"}, 1},
		// the same hash separated by a different one is two distinct swaps
		{[]string{"0x1", "0x2", "0x1"}, 3},
		{[]string{"0x1", "0x1", "0x2", "0x2"}, 2},
	}

	for i, test := range tests {
		var raw []*models.Transaction
		for _, h := range test.hashes {
			raw = append(raw, swap(h, "1000000000000000000"))
		}
		set := NormalizeTransactions(raw, testPairMeta())
		if len(set.Swaps) != test.exp {
			t.Errorf("test %v | expected %v swaps, got %v", i, test.exp, len(set.Swaps))
		}
	}
}

func TestNormalizeTransactionsSkips(t *testing.T) {
	raw := []*models.Transaction{
		swap("0x1", "1000000000000000000"),
		{PairAddress: "0xmissing", TransactionHash: "0x2", Amount0In: "0", Amount1In: "0", Amount0Out: "0", Amount1Out: "0"},
		swap("0x3", "not a number"),
		swap("0x4", "2000000000000000000"),
	}
	set := NormalizeTransactions(raw, testPairMeta())
	if len(set.Swaps) != 2 {
		t.Fatalf("expected 2 swaps after skipping bad records, got %v", len(set.Swaps))
	}
	if set.Swaps[0].Hash != "0x1" || set.Swaps[1].Hash != "0x4" {
		t.Errorf("unexpected kept hashes: %v %v", set.Swaps[0].Hash, set.Swaps[1].Hash)
	}
}
