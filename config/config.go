// Package config loads service configuration from the environment (with
// .env support for local runs) and an optional YAML stats file carrying
// the data corrections: the pair exclusion set and the day-indexed
// volume offsets.
package config

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/treeder/gotils/v2"
	"gopkg.in/yaml.v3"
)

const (
	defaultGraphQLURL = "http://localhost:9000/graphql"
	defaultPort       = 8080
	defaultTimeout    = 30 * time.Second
	defaultPageSize   = 1000
	defaultMaxPages   = 200
)

// Config is everything the server and the collector need to run.
type Config struct {
	GraphQLURL     string
	Port           int
	RequestTimeout time.Duration
	PageSize       int
	MaxPages       int

	// ExcludedPairs are pair addresses skipped during pair aggregation,
	// known-bad pools whose numbers would pollute the totals.
	ExcludedPairs map[string]bool
	// VolumeOffsets maps a UTC day start to USD volume subtracted once
	// per session during weekly aggregation.
	VolumeOffsets map[int64]float64
}

// statsFile is the YAML shape of the corrections file.
type statsFile struct {
	ExcludedPairs []string `yaml:"excluded_pairs"`
	VolumeOffsets []struct {
		Date      int64   `yaml:"date"`
		VolumeUSD float64 `yaml:"volume_usd"`
	} `yaml:"volume_offsets"`
}

// Load reads the environment (after best-effort .env loading) and the
// stats file named by DEX_STATS_FILE, when set. Without a stats file the
// correction tables are empty.
func Load(ctx context.Context) (*Config, error) {
	_ = godotenv.Load()

	c := &Config{
		GraphQLURL:     getEnv("DEX_GRAPHQL_URL", defaultGraphQLURL),
		Port:           getEnvInt(ctx, "PORT", defaultPort),
		RequestTimeout: getEnvDuration(ctx, "DEX_REQUEST_TIMEOUT", defaultTimeout),
		PageSize:       getEnvInt(ctx, "DEX_PAGE_SIZE", defaultPageSize),
		MaxPages:       getEnvInt(ctx, "DEX_MAX_PAGES", defaultMaxPages),
		ExcludedPairs:  map[string]bool{},
		VolumeOffsets:  map[int64]float64{},
	}

	if path := os.Getenv("DEX_STATS_FILE"); path != "" {
		if err := c.loadStatsFile(path); err != nil {
			return nil, gotils.C(ctx).Errorf("loading stats file %v: %v", path, err)
		}
	}
	return c, nil
}

func (c *Config) loadStatsFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var f statsFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return err
	}
	for _, p := range f.ExcludedPairs {
		c.ExcludedPairs[p] = true
	}
	for _, o := range f.VolumeOffsets {
		c.VolumeOffsets[o.Date] = o.VolumeUSD
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(ctx context.Context, key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		gotils.C(ctx).Printf("bad %v value %q, using %v", key, v, fallback)
		return fallback
	}
	return n
}

func getEnvDuration(ctx context.Context, key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		gotils.C(ctx).Printf("bad %v value %q, using %v", key, v, fallback)
		return fallback
	}
	return d
}
