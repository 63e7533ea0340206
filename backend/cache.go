package backend

import (
	"context"
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/dexwatch/stats-api/models"
	"github.com/treeder/gotils"
)

// key prefix format:
// -------------------------------------------
// 1 byte endpoint id | N bytes entity address (empty for list endpoints)
//
// All reads here are point lookups by address with no time windows, so
// the key stays this small. Entries expire on TTL; the cache is never
// explicitly invalidated, a collection pass just outlives the TTL.

type epID uint8

const (
	globalEP epID = 1 + iota
	globalChartEP
	globalTxnsEP
	pairEP
	pairsEP
	pairChartEP
	pairTxnsEP
	tokenEP
	tokensEP
	tokenChartEP
	tokenTxnsEP
)

func key(endpoint epID, rest string) string {
	return string([]byte{byte(endpoint)}) + rest
}

type cache struct {
	cache *ristretto.Cache
	ttl   time.Duration

	db StatsBackend
}

// compiler yelling
var cacheType StatsBackend = new(cache)

// NewCacheBackend returns a caching stats backend wrapping the given
// stats backend.
func NewCacheBackend(ctx context.Context, db StatsBackend, ttl time.Duration) (StatsBackend, error) {
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e7,             // number of keys to track frequency of (10M).
		MaxCost:     100 << (10 * 2), // maximum cost of cache (100MB)
		BufferItems: 64,              // number of keys per Get buffer.
	})
	if err != nil {
		return nil, gotils.C(ctx).Errorf("error on NewCache: %v", err)
	}

	return &cache{
		cache: c,
		db:    db,
		ttl:   ttl,
	}, nil
}

func (c *cache) GetGlobal(ctx context.Context) (*models.GlobalAggregate, error) {
	k := key(globalEP, "")
	if v, ok := c.cache.Get(k); ok {
		return v.(*models.GlobalAggregate), nil
	}

	g, err := c.db.GetGlobal(ctx)
	if err != nil {
		return nil, err
	}

	c.cache.SetWithTTL(k, g, 0, c.ttl)
	return g, nil
}

// globalChart pairs the two series under one cache entry.
type globalChart struct {
	daily  []*models.DayBucket
	weekly []*models.WeekBucket
}

func (c *cache) GetGlobalChart(ctx context.Context) ([]*models.DayBucket, []*models.WeekBucket, error) {
	k := key(globalChartEP, "")
	if v, ok := c.cache.Get(k); ok {
		gc := v.(*globalChart)
		return gc.daily, gc.weekly, nil
	}

	daily, weekly, err := c.db.GetGlobalChart(ctx)
	if err != nil {
		return nil, nil, err
	}

	c.cache.SetWithTTL(k, &globalChart{daily: daily, weekly: weekly}, 0, c.ttl)
	return daily, weekly, nil
}

func (c *cache) GetGlobalTxns(ctx context.Context) (*models.TransactionSet, error) {
	k := key(globalTxnsEP, "")
	if v, ok := c.cache.Get(k); ok {
		return v.(*models.TransactionSet), nil
	}

	txns, err := c.db.GetGlobalTxns(ctx)
	if err != nil {
		return nil, err
	}

	c.cache.SetWithTTL(k, txns, 0, c.ttl)
	return txns, nil
}

func (c *cache) GetPairs(ctx context.Context) ([]*models.PairStats, error) {
	k := key(pairsEP, "")
	if v, ok := c.cache.Get(k); ok {
		return v.([]*models.PairStats), nil
	}

	pairs, err := c.db.GetPairs(ctx)
	if err != nil {
		return nil, err
	}

	c.cache.SetWithTTL(k, pairs, 0, c.ttl)
	return pairs, nil
}

func (c *cache) GetPair(ctx context.Context, address string) (*models.PairAggregate, error) {
	k := key(pairEP, address)
	if v, ok := c.cache.Get(k); ok {
		return v.(*models.PairAggregate), nil
	}

	pair, err := c.db.GetPair(ctx, address)
	if err != nil {
		return nil, err
	}

	c.cache.SetWithTTL(k, pair, 0, c.ttl)
	return pair, nil
}

func (c *cache) GetPairChart(ctx context.Context, address string) ([]*models.DayBucket, error) {
	k := key(pairChartEP, address)
	if v, ok := c.cache.Get(k); ok {
		return v.([]*models.DayBucket), nil
	}

	chart, err := c.db.GetPairChart(ctx, address)
	if err != nil {
		return nil, err
	}

	c.cache.SetWithTTL(k, chart, 0, c.ttl)
	return chart, nil
}

func (c *cache) GetPairTxns(ctx context.Context, address string) (*models.TransactionSet, error) {
	k := key(pairTxnsEP, address)
	if v, ok := c.cache.Get(k); ok {
		return v.(*models.TransactionSet), nil
	}

	txns, err := c.db.GetPairTxns(ctx, address)
	if err != nil {
		return nil, err
	}

	c.cache.SetWithTTL(k, txns, 0, c.ttl)
	return txns, nil
}

func (c *cache) GetTokens(ctx context.Context) ([]*models.TokenStats, error) {
	k := key(tokensEP, "")
	if v, ok := c.cache.Get(k); ok {
		return v.([]*models.TokenStats), nil
	}

	tokens, err := c.db.GetTokens(ctx)
	if err != nil {
		return nil, err
	}

	c.cache.SetWithTTL(k, tokens, 0, c.ttl)
	return tokens, nil
}

func (c *cache) GetToken(ctx context.Context, address string) (*models.TokenAggregate, error) {
	k := key(tokenEP, address)
	if v, ok := c.cache.Get(k); ok {
		return v.(*models.TokenAggregate), nil
	}

	token, err := c.db.GetToken(ctx, address)
	if err != nil {
		return nil, err
	}

	c.cache.SetWithTTL(k, token, 0, c.ttl)
	return token, nil
}

func (c *cache) GetTokenChart(ctx context.Context, address string) ([]*models.TokenDay, error) {
	k := key(tokenChartEP, address)
	if v, ok := c.cache.Get(k); ok {
		return v.([]*models.TokenDay), nil
	}

	chart, err := c.db.GetTokenChart(ctx, address)
	if err != nil {
		return nil, err
	}

	c.cache.SetWithTTL(k, chart, 0, c.ttl)
	return chart, nil
}

func (c *cache) GetTokenTxns(ctx context.Context, address string) (*models.TransactionSet, error) {
	k := key(tokenTxnsEP, address)
	if v, ok := c.cache.Get(k); ok {
		return v.(*models.TransactionSet), nil
	}

	txns, err := c.db.GetTokenTxns(ctx, address)
	if err != nil {
		return nil, err
	}

	c.cache.SetWithTTL(k, txns, 0, c.ttl)
	return txns, nil
}
