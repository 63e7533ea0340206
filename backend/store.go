package backend

import (
	"context"
	"sort"

	"github.com/dexwatch/stats-api/models"
	"github.com/dexwatch/stats-api/store"
	"github.com/treeder/gotils"
)

// stores reads straight out of the session entity store. A miss means
// the collector hasn't produced that entity yet.
type stores struct {
	s *store.Stores
}

var _ StatsBackend = new(stores)

// NewStoreBackend returns a StatsBackend serving the given stores.
func NewStoreBackend(s *store.Stores) StatsBackend {
	return &stores{s: s}
}

func (b *stores) GetGlobal(ctx context.Context) (*models.GlobalAggregate, error) {
	g, ok := b.s.Global.Get(store.GlobalKey)
	if !ok {
		return nil, gotils.ErrNotFound
	}
	return g, nil
}

func (b *stores) GetGlobalChart(ctx context.Context) ([]*models.DayBucket, []*models.WeekBucket, error) {
	g, err := b.GetGlobal(ctx)
	if err != nil {
		return nil, nil, err
	}
	return g.ChartDaily, g.ChartWeekly, nil
}

func (b *stores) GetGlobalTxns(ctx context.Context) (*models.TransactionSet, error) {
	g, err := b.GetGlobal(ctx)
	if err != nil {
		return nil, err
	}
	if g.Txns == nil {
		return nil, gotils.ErrNotFound
	}
	return g.Txns, nil
}

func (b *stores) GetPairs(ctx context.Context) ([]*models.PairStats, error) {
	keys := b.s.Pairs.Keys()
	sort.Strings(keys)
	out := make([]*models.PairStats, 0, len(keys))
	for _, k := range keys {
		if p, ok := b.s.Pairs.Get(k); ok && p.Stats != nil {
			out = append(out, p.Stats)
		}
	}
	return out, nil
}

func (b *stores) GetPair(ctx context.Context, address string) (*models.PairAggregate, error) {
	p, ok := b.s.Pairs.Get(address)
	if !ok {
		return nil, gotils.ErrNotFound
	}
	return p, nil
}

func (b *stores) GetPairChart(ctx context.Context, address string) ([]*models.DayBucket, error) {
	p, err := b.GetPair(ctx, address)
	if err != nil {
		return nil, err
	}
	return p.ChartDaily, nil
}

func (b *stores) GetPairTxns(ctx context.Context, address string) (*models.TransactionSet, error) {
	p, err := b.GetPair(ctx, address)
	if err != nil {
		return nil, err
	}
	if p.Txns == nil {
		return nil, gotils.ErrNotFound
	}
	return p.Txns, nil
}

func (b *stores) GetTokens(ctx context.Context) ([]*models.TokenStats, error) {
	keys := b.s.Tokens.Keys()
	sort.Strings(keys)
	out := make([]*models.TokenStats, 0, len(keys))
	for _, k := range keys {
		if t, ok := b.s.Tokens.Get(k); ok && t.Stats != nil {
			out = append(out, t.Stats)
		}
	}
	return out, nil
}

func (b *stores) GetToken(ctx context.Context, address string) (*models.TokenAggregate, error) {
	t, ok := b.s.Tokens.Get(address)
	if !ok {
		return nil, gotils.ErrNotFound
	}
	return t, nil
}

func (b *stores) GetTokenChart(ctx context.Context, address string) ([]*models.TokenDay, error) {
	t, err := b.GetToken(ctx, address)
	if err != nil {
		return nil, err
	}
	return t.ChartDaily, nil
}

func (b *stores) GetTokenTxns(ctx context.Context, address string) (*models.TransactionSet, error) {
	t, err := b.GetToken(ctx, address)
	if err != nil {
		return nil, err
	}
	if t.Txns == nil {
		return nil, gotils.ErrNotFound
	}
	return t.Txns, nil
}
