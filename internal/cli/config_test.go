package cli

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/matzehuels/ihmgraph/pkg/cache"
	"github.com/matzehuels/ihmgraph/pkg/errors"
	"github.com/matzehuels/ihmgraph/pkg/integrations/pubmed"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
log_level = "debug"
colour = true

[cache]
backend = "redis"
redis_addr = "localhost:6379"
ttl = "168h"

[pubmed]
api_key = "k"
`)
	cfg, unknown, err := loadConfig(path, true)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.LogLevel != "debug" || cfg.Cache.Backend != cache.BackendRedis || cfg.Cache.RedisAddr != "localhost:6379" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Cache.TTL.Duration != 168*time.Hour {
		t.Errorf("ttl = %v", cfg.Cache.TTL)
	}
	if cfg.PubMed.BaseURL != pubmed.DefaultBaseURL || cfg.PubMed.APIKey != "k" {
		t.Errorf("pubmed = %+v, want defaults kept", cfg.PubMed)
	}
	if !slices.Equal(unknown, []string{"colour"}) {
		t.Errorf("unknown keys = %v", unknown)
	}
}

func TestLoadConfigMissing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "none.toml")

	cfg, _, err := loadConfig(missing, false)
	if err != nil {
		t.Fatalf("default path may be missing: %v", err)
	}
	if cfg.Cache.Backend != cache.BackendFile || cfg.Cache.TTL.Duration != defaultCacheTTL {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}

	if _, _, err := loadConfig(missing, true); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("explicit missing file: err = %v, want INVALID_CONFIG", err)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"syntax", "log_level = "},
		{"log level", `log_level = "loud"`},
		{"backend", "[cache]\nbackend = \"memcached\""},
		{"ttl", "[cache]\nttl = \"a week\""},
		{"negative ttl", "[cache]\nttl = \"-1h\""},
		{"base url", "[pubmed]\nbase_url = \"ftp://example.org\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := loadConfig(writeConfig(t, tt.body), true)
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("err = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestCacheConfig(t *testing.T) {
	cfg := defaultConfig()
	cfg.Cache.Backend = "Mongo"
	cfg.Cache.MongoURI = "mongodb://localhost"

	got := cfg.cacheConfig(false)
	if got.Backend != cache.BackendMongo || got.MongoURI != "mongodb://localhost" {
		t.Errorf("cacheConfig = %+v", got)
	}
	if got := cfg.cacheConfig(true); got.Backend != cache.BackendNone {
		t.Errorf("--no-cache backend = %q", got.Backend)
	}
}
