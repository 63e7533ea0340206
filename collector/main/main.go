package main

import (
	"context"
	"log"

	"github.com/dexwatch/stats-api/collector"
	"github.com/dexwatch/stats-api/config"
	"github.com/dexwatch/stats-api/source"
	"github.com/dexwatch/stats-api/store"
	"github.com/treeder/gotils/v2"
)

/*
One-shot collection run, for cron or local poking:
1) Global volume and liquidity over time
2) List of all pairs with their windows, charts and transactions
3) Token stats attributed from the pair results
*/
func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("couldn't load config: %v\n", err)
	}

	src := source.NewGraphQL(cfg.GraphQLURL, cfg.RequestTimeout)
	stores := store.NewStores()

	err = collector.New(src, stores, cfg).Collect(ctx)
	if err != nil {
		gotils.C(ctx).Printf("error on Collect: %v", err)
	}

	log.Printf("collected %v pairs, %v tokens\n", stores.Pairs.Len(), stores.Tokens.Len())
}
