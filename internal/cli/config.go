package cli

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/ihmgraph/pkg/cache"
	"github.com/matzehuels/ihmgraph/pkg/errors"
	"github.com/matzehuels/ihmgraph/pkg/integrations/pubmed"
)

// defaultCacheTTL is how long fetched citations are kept.
const defaultCacheTTL = 30 * 24 * time.Hour

// Config is the contents of config.toml.
//
//	log_level = "debug"
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//	ttl = "168h"
//
//	[pubmed]
//	api_key = "..."
type Config struct {
	LogLevel string       `toml:"log_level"`
	Cache    CacheConfig  `toml:"cache"`
	PubMed   PubMedConfig `toml:"pubmed"`
}

// CacheConfig selects the cache backend used for citation lookups.
type CacheConfig struct {
	Backend       string   `toml:"backend"`
	Dir           string   `toml:"dir"`
	TTL           duration `toml:"ttl"`
	RedisAddr     string   `toml:"redis_addr"`
	RedisPassword string   `toml:"redis_password"`
	RedisDB       int      `toml:"redis_db"`
	MongoURI      string   `toml:"mongo_uri"`
	MongoDatabase string   `toml:"mongo_database"`
}

type PubMedConfig struct {
	BaseURL string `toml:"base_url"`
	APIKey  string `toml:"api_key"`
}

// duration decodes TOML strings such as "720h".
type duration struct{ time.Duration }

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func defaultConfig() Config {
	return Config{
		LogLevel: "info",
		Cache:    CacheConfig{Backend: cache.BackendFile, TTL: duration{defaultCacheTTL}},
		PubMed:   PubMedConfig{BaseURL: pubmed.DefaultBaseURL},
	}
}

// configPath returns ~/.config/ihmgraph/config.toml, or the platform's
// equivalent.
func configPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName, "config.toml"), nil
}

// loadConfig reads path over the defaults. A missing file is not an error
// unless the path was given explicitly. Unknown keys are returned so the
// caller can warn about them.
func loadConfig(path string, explicit bool) (Config, []string, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if stderrors.Is(err, fs.ErrNotExist) && !explicit {
		return defaultConfig(), nil, nil
	}
	if err != nil {
		return cfg, nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config %s", path)
	}
	var unknown []string
	for _, k := range md.Undecoded() {
		unknown = append(unknown, k.String())
	}
	if err := cfg.validate(); err != nil {
		return cfg, unknown, err
	}
	return cfg, unknown, nil
}

func (c Config) validate() error {
	if _, err := parseLevel(c.LogLevel); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "log_level")
	}
	switch strings.ToLower(c.Cache.Backend) {
	case "", cache.BackendFile, cache.BackendRedis, cache.BackendMongo, cache.BackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "cache.backend %q: want file, redis, mongo or none", c.Cache.Backend)
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}
	if c.PubMed.BaseURL != "" {
		if err := errors.ValidateURL(c.PubMed.BaseURL); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "pubmed.base_url")
		}
	}
	return nil
}

// cacheConfig converts the [cache] table for cache.Open. noCache forces the
// null backend.
func (c Config) cacheConfig(noCache bool) cache.Config {
	if noCache {
		return cache.Config{Backend: cache.BackendNone}
	}
	return cache.Config{
		Backend:       strings.ToLower(c.Cache.Backend),
		Dir:           c.Cache.Dir,
		RedisAddr:     c.Cache.RedisAddr,
		RedisPassword: c.Cache.RedisPassword,
		RedisDB:       c.Cache.RedisDB,
		MongoURI:      c.Cache.MongoURI,
		MongoDatabase: c.Cache.MongoDatabase,
	}
}
