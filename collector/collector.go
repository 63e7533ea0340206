// Package collector orchestrates the aggregation pipeline: it pulls raw
// records through the source client, folds them with the aggregate
// package and lands the results in the session store. The pipeline is
// two-phase: global and pair aggregation run first (concurrently), then
// token aggregation runs over the completed pair results, since token
// volume can only be attributed once every pair's windows are summed.
package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/dexwatch/stats-api/aggregate"
	"github.com/dexwatch/stats-api/config"
	"github.com/dexwatch/stats-api/models"
	"github.com/dexwatch/stats-api/source"
	"github.com/dexwatch/stats-api/store"
	"github.com/treeder/gotils/v2"
	"golang.org/x/sync/errgroup"
)

const trailingYear = 365 * 24 * time.Hour

// PairResults is the completed pair phase handed to the token phase:
// every collected pair's aggregate, keyed by pair address.
type PairResults map[string]*models.PairAggregate

// Collector runs collection passes against one source into one store
// bundle. Safe for a single caller; a pass owns the store keys it
// writes.
type Collector struct {
	source  source.Client
	stores  *store.Stores
	cfg     *config.Config
	session *aggregate.Session
	pager   source.Pager

	timeNow func() time.Time
}

func New(src source.Client, st *store.Stores, cfg *config.Config) *Collector {
	return &Collector{
		source:  src,
		stores:  st,
		cfg:     cfg,
		session: aggregate.NewSession(cfg.VolumeOffsets),
		pager:   source.Pager{PageSize: cfg.PageSize, MaxPages: cfg.MaxPages},
		timeNow: time.Now,
	}
}

// Collect runs one full pass: pair/token catalogs, then global and pair
// aggregation fanned out together, then token aggregation over the pair
// results.
func (c *Collector) Collect(ctx context.Context) error {
	start := c.timeNow()
	now := start.UTC().Unix()

	pairs, err := c.source.GetPairs(ctx)
	if err != nil {
		return gotils.C(ctx).Errorf("error fetching pairs: %v", err)
	}
	tokens, err := c.source.GetTokens(ctx)
	if err != nil {
		return gotils.C(ctx).Errorf("error fetching tokens: %v", err)
	}
	fmt.Printf("collecting %v pairs, %v tokens\n", len(pairs), len(tokens))

	tokenMap := make(map[string]*models.TokenInfo, len(tokens))
	for _, t := range tokens {
		tokenMap[t.TokenAddress] = t
	}
	pairMeta := buildPairMeta(pairs, tokenMap)

	var pairResults PairResults
	{ // errgroup ctx scoped so the token phase runs on the original ctx
		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			return c.collectGlobal(ctx, now, pairMeta)
		})
		g.Go(func() error {
			var err error
			pairResults, err = c.collectPairs(ctx, now, pairs, tokenMap, pairMeta)
			return err
		})
		if err := g.Wait(); err != nil {
			return err
		}
	}

	if err := c.collectTokens(ctx, now, tokens, pairResults, pairMeta); err != nil {
		return err
	}

	fmt.Printf("collection pass done in %v\n", time.Since(start))
	return nil
}

func buildPairMeta(pairs []*models.PairInfo, tokens map[string]*models.TokenInfo) map[string]*aggregate.PairMeta {
	meta := make(map[string]*aggregate.PairMeta, len(pairs))
	for _, p := range pairs {
		meta[p.PairAddress] = &aggregate.PairMeta{
			Token0: tokens[p.Token0Address],
			Token1: tokens[p.Token1Address],
		}
	}
	return meta
}

// liquiditySum folds a window of raw records the same way a day bucket
// does: latest positive liquidity wins per pair, winners summed.
func liquiditySum(records []*models.PairDay) float64 {
	byPair := map[string]float64{}
	for _, r := range records {
		if r.LiquidityUSD > 0 {
			byPair[r.PairAddress] = r.LiquidityUSD
		}
	}
	total := 0.0
	for _, l := range byPair {
		total += l
	}
	return total
}

func volumeSum(records []*models.PairDay) float64 {
	total := 0.0
	for _, r := range records {
		total += r.Volume0USD
	}
	return total
}
