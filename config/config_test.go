package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"DEX_GRAPHQL_URL", "PORT", "DEX_REQUEST_TIMEOUT", "DEX_PAGE_SIZE", "DEX_MAX_PAGES", "DEX_STATS_FILE"} {
		os.Unsetenv(k)
	}

	c, err := Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if c.Port != defaultPort || c.PageSize != defaultPageSize || c.MaxPages != defaultMaxPages {
		t.Errorf("defaults not applied: %+v", c)
	}
	if c.RequestTimeout != defaultTimeout {
		t.Errorf("expected timeout %v, got %v", defaultTimeout, c.RequestTimeout)
	}
	if len(c.ExcludedPairs) != 0 || len(c.VolumeOffsets) != 0 {
		t.Errorf("expected empty correction tables: %+v", c)
	}
}

func TestLoadEnvAndStatsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stats.yml")
	body := `excluded_pairs:
  - "0xd4dddf08f12e8ea1d7dd5a47418cdf3d93a5be96"
  - "0xf799aea5df9fc8fac93d5e2a5277b4e82817ccb5"
volume_offsets:
  - date: 1612137600
    volume_usd: 1000.5
`
	if err := os.WriteFile(path, []byte(body), 0600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("DEX_STATS_FILE", path)
	t.Setenv("PORT", "9999")
	t.Setenv("DEX_REQUEST_TIMEOUT", "5s")

	c, err := Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if c.Port != 9999 || c.RequestTimeout != 5*time.Second {
		t.Errorf("env not applied: %+v", c)
	}
	if !c.ExcludedPairs["0xd4dddf08f12e8ea1d7dd5a47418cdf3d93a5be96"] || len(c.ExcludedPairs) != 2 {
		t.Errorf("exclusion set mismatch: %+v", c.ExcludedPairs)
	}
	if c.VolumeOffsets[1612137600] != 1000.5 {
		t.Errorf("volume offsets mismatch: %+v", c.VolumeOffsets)
	}
}

func TestLoadBadStatsFile(t *testing.T) {
	t.Setenv("DEX_STATS_FILE", filepath.Join(t.TempDir(), "missing.yml"))
	if _, err := Load(context.Background()); err == nil {
		t.Fatal("expected error for missing stats file")
	}
}
