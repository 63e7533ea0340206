package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/dexwatch/stats-api/backend"
	"github.com/dexwatch/stats-api/collector"
	"github.com/dexwatch/stats-api/config"
	"github.com/dexwatch/stats-api/models"
	"github.com/dexwatch/stats-api/source"
	"github.com/dexwatch/stats-api/store"
	"github.com/go-chi/chi/v5"
	"github.com/treeder/goapibase"
	"github.com/treeder/gotils"
)

var (
	db   backend.StatsBackend
	coll *collector.Collector

	collectOnce sync.Once
)

// ensureCollected runs the first collection pass lazily, so a read that
// arrives before any POST /collect still gets data. Later misses are
// genuine 404s; the store is never invalidated within a session.
func ensureCollected(ctx context.Context) error {
	var err error
	collectOnce.Do(func() { err = coll.Collect(ctx) })
	return err
}

// fetchOr reads through the backend, triggering the lazy first
// collection on a miss and retrying once.
func fetchOr[T any](ctx context.Context, get func(context.Context) (T, error)) (T, error) {
	v, err := get(ctx)
	if err != nil && errors.Is(err, gotils.ErrNotFound) {
		if cerr := ensureCollected(ctx); cerr != nil {
			return v, cerr
		}
		return get(ctx)
	}
	return v, err
}

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("couldn't load config: %v\n", err)
	}

	stores := store.NewStores()
	src := source.NewGraphQL(cfg.GraphQLURL, cfg.RequestTimeout)
	coll = collector.New(src, stores, cfg)

	// TODO we could add more fine grained ttl, this is a stand in.
	cache, err := backend.NewCacheBackend(ctx, backend.NewStoreBackend(stores), 1*time.Minute)
	if err != nil {
		log.Fatalf("couldn't set up cache: %v\n", err)
	}
	db = cache

	r := goapibase.InitRouter(ctx)
	// Setup your routes
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("welcome"))
	})
	r.Post("/collect", errorHandler(collect))
	r.Route("/global", func(r chi.Router) {
		r.Get("/", errorHandler(getGlobal))
		r.Get("/chart", errorHandler(getGlobalChart))
		r.Get("/txns", errorHandler(getGlobalTxns))
	})
	r.Route("/pairs", func(r chi.Router) {
		r.Get("/", errorHandler(getPairs))
		r.Route("/{pair}", func(r chi.Router) {
			r.Get("/", errorHandler(getPair))
			r.Get("/chart", errorHandler(getPairChart))
			r.Get("/txns", errorHandler(getPairTxns))
		})
	})
	r.Route("/tokens", func(r chi.Router) {
		r.Get("/", errorHandler(getTokens))
		r.Route("/{token}", func(r chi.Router) {
			r.Get("/", errorHandler(getToken))
			r.Get("/chart", errorHandler(getTokenChart))
			r.Get("/txns", errorHandler(getTokenTxns))
		})
	})
	// Start server
	_ = goapibase.Start(ctx, gotils.Port(cfg.Port), r)
}

// todo: move this stuff to gotils
type myHandlerFunc func(w http.ResponseWriter, r *http.Request) error

func errorHandler(h myHandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := h(w, r)
		if err != nil {
			switch e := err.(type) {
			case gotils.HTTPError:
				log.Printf("%v", err)
				gotils.WriteError(w, e.Code(), e)
			default:
				if errors.Is(err, gotils.ErrNotFound) {
					gotils.WriteError(w, http.StatusNotFound, err)
					return
				}
				log.Printf("%v", err)
				gotils.WriteError(w, http.StatusInternalServerError, e)
			}
		}
	}
}

func getGlobal(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	g, err := fetchOr(ctx, db.GetGlobal)
	if err != nil {
		return err
	}

	gotils.WriteObject(w, http.StatusOK, map[string]interface{}{
		"global": g.Stats,
	})
	return nil
}

func getGlobalChart(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	daily, weekly, err := db.GetGlobalChart(ctx)
	if errors.Is(err, gotils.ErrNotFound) {
		if err = ensureCollected(ctx); err != nil {
			return err
		}
		daily, weekly, err = db.GetGlobalChart(ctx)
	}
	if err != nil {
		return err
	}

	gotils.WriteObject(w, http.StatusOK, map[string]interface{}{
		"daily":  daily,
		"weekly": weekly,
	})
	return nil
}

func getGlobalTxns(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	txns, err := fetchOr(ctx, db.GetGlobalTxns)
	if err != nil {
		return err
	}

	gotils.WriteObject(w, http.StatusOK, map[string]interface{}{
		"txns": txns,
	})
	return nil
}

// returns headline stats for all pairs
func getPairs(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	pairs, err := db.GetPairs(ctx)
	if err == nil && len(pairs) == 0 {
		if err = ensureCollected(ctx); err != nil {
			return err
		}
		pairs, err = db.GetPairs(ctx)
	}
	if err != nil {
		return err
	}

	gotils.WriteObject(w, http.StatusOK, map[string]interface{}{
		"pairs": pairs,
	})
	return nil
}

func getPair(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	address := chi.URLParam(r, "pair")
	pair, err := fetchOr(ctx, func(ctx context.Context) (*models.PairAggregate, error) {
		return db.GetPair(ctx, address)
	})
	if err != nil {
		return err
	}

	gotils.WriteObject(w, http.StatusOK, map[string]interface{}{
		"pair": pair.Stats,
	})
	return nil
}

func getPairChart(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	address := chi.URLParam(r, "pair")
	chart, err := fetchOr(ctx, func(ctx context.Context) ([]*models.DayBucket, error) {
		return db.GetPairChart(ctx, address)
	})
	if err != nil {
		return err
	}

	gotils.WriteObject(w, http.StatusOK, map[string]interface{}{
		"daily": chart,
	})
	return nil
}

func getPairTxns(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	address := chi.URLParam(r, "pair")
	txns, err := fetchOr(ctx, func(ctx context.Context) (*models.TransactionSet, error) {
		return db.GetPairTxns(ctx, address)
	})
	if err != nil {
		return err
	}

	gotils.WriteObject(w, http.StatusOK, map[string]interface{}{
		"txns": txns,
	})
	return nil
}

// returns headline stats for all tokens
func getTokens(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	tokens, err := db.GetTokens(ctx)
	if err == nil && len(tokens) == 0 {
		if err = ensureCollected(ctx); err != nil {
			return err
		}
		tokens, err = db.GetTokens(ctx)
	}
	if err != nil {
		return err
	}

	gotils.WriteObject(w, http.StatusOK, map[string]interface{}{
		"tokens": tokens,
	})
	return nil
}

func getToken(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	address := chi.URLParam(r, "token")
	token, err := fetchOr(ctx, func(ctx context.Context) (*models.TokenAggregate, error) {
		return db.GetToken(ctx, address)
	})
	if err != nil {
		return err
	}

	gotils.WriteObject(w, http.StatusOK, map[string]interface{}{
		"token": token.Stats,
	})
	return nil
}

func getTokenChart(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	address := chi.URLParam(r, "token")
	chart, err := fetchOr(ctx, func(ctx context.Context) ([]*models.TokenDay, error) {
		return db.GetTokenChart(ctx, address)
	})
	if err != nil {
		return err
	}

	gotils.WriteObject(w, http.StatusOK, map[string]interface{}{
		"daily": chart,
	})
	return nil
}

func getTokenTxns(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	address := chi.URLParam(r, "token")
	txns, err := fetchOr(ctx, func(ctx context.Context) (*models.TransactionSet, error) {
		return db.GetTokenTxns(ctx, address)
	})
	if err != nil {
		return err
	}

	gotils.WriteObject(w, http.StatusOK, map[string]interface{}{
		"txns": txns,
	})
	return nil
}

func collect(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()
	t := time.Now()
	ctx = gotils.With(ctx, "started_at", t)
	log.Println("Collector starting...")

	if err := coll.Collect(ctx); err != nil {
		return gotils.C(ctx).Errorf("error on collector.Collect: %v", err)
	}

	log.Println("Collector complete")
	gotils.WriteMessage(w, http.StatusOK, "ok")
	return nil
}
