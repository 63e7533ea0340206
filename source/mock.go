package source

import (
	"context"
	"sort"

	"github.com/dexwatch/stats-api/models"
)

// Mock is an in-memory Client, for use in testing. Seed it with any mix
// of record slices; day-granularity collections are sorted ascending by
// time like the real service returns them.
type Mock struct {
	pairs  []*models.PairInfo
	tokens []*models.TokenInfo
	days   []*models.PairDay
	prices []*models.TokenPrice
	txns   []*models.Transaction
}

var _ Client = new(Mock)

func NewMock(args ...interface{}) *Mock {
	m := new(Mock)
	for _, arg := range args {
		switch arg := arg.(type) {
		case []*models.PairInfo:
			m.pairs = arg
		case []*models.TokenInfo:
			m.tokens = arg
		case []*models.PairDay:
			sort.Slice(arg, func(i, j int) bool {
				return arg[i].TimeStamp < arg[j].TimeStamp
			})
			m.days = arg
		case []*models.TokenPrice:
			sort.Slice(arg, func(i, j int) bool {
				return arg[i].TimeStamp < arg[j].TimeStamp
			})
			m.prices = arg
		case []*models.Transaction:
			m.txns = arg
		}
	}
	return m
}

func page[T any](list []T, skip, limit int) []T {
	if skip >= len(list) || limit <= 0 {
		return nil
	}
	end := skip + limit
	if end > len(list) {
		end = len(list)
	}
	return list[skip:end]
}

func (m *Mock) GetGlobalDays(ctx context.Context, startTime, endTime int64, skip, limit int) ([]*models.PairDay, error) {
	var out []*models.PairDay
	for _, d := range m.days {
		if d.TimeStamp < startTime || d.TimeStamp > endTime {
			continue
		}
		out = append(out, d)
	}
	return page(out, skip, limit), nil
}

func (m *Mock) GetPairDays(ctx context.Context, pairAddress string, startTime, endTime int64, skip, limit int) ([]*models.PairDay, error) {
	var out []*models.PairDay
	for _, d := range m.days {
		if d.PairAddress != pairAddress || d.TimeStamp < startTime || d.TimeStamp > endTime {
			continue
		}
		out = append(out, d)
	}
	return page(out, skip, limit), nil
}

func (m *Mock) GetTokenPrices(ctx context.Context, tokenAddress string, startTime, endTime int64, skip, limit int) ([]*models.TokenPrice, error) {
	var out []*models.TokenPrice
	for _, p := range m.prices {
		if p.TokenAddress != tokenAddress || p.TimeStamp < startTime || p.TimeStamp > endTime {
			continue
		}
		out = append(out, p)
	}
	return page(out, skip, limit), nil
}

func (m *Mock) GetPairs(ctx context.Context) ([]*models.PairInfo, error) {
	return m.pairs, nil
}

func (m *Mock) GetTokens(ctx context.Context) ([]*models.TokenInfo, error) {
	return m.tokens, nil
}

func (m *Mock) GetTransactions(ctx context.Context, skip, limit int) ([]*models.Transaction, error) {
	return page(m.txns, skip, limit), nil
}

func (m *Mock) GetPairTransactions(ctx context.Context, pairAddress string, skip, limit int) ([]*models.Transaction, error) {
	var out []*models.Transaction
	for _, t := range m.txns {
		if t.PairAddress != pairAddress {
			continue
		}
		out = append(out, t)
	}
	return page(out, skip, limit), nil
}
