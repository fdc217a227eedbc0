// Package config loads acotour settings from a TOML file.
//
// # File Format
//
//	[solver]
//	start_node = 0
//	ants = 10
//	iterations = 100
//	evaporation_rate = 0.5
//	alpha = 1.0
//	beta = 3.0
//	seed = 0
//
//	[server]
//	addr = ":8080"
//	max_upload_bytes = 1048576
//	run_ttl = "168h"
//	max_nodes = 2000
//	max_ants = 1000
//	max_iterations = 100000
//
//	[cache]
//	backend = "file"   # file | redis | none
//	redis_addr = "localhost:6379"
//
//	[store]
//	backend = "memory" # memory | file | mongo
//	mongo_uri = "mongodb://localhost:27017"
//
// Every key is optional; omitted keys keep their defaults. Unknown keys are
// rejected so typos do not silently fall back to defaults.
//
// The environment variables ACOTOUR_REDIS_ADDR and ACOTOUR_MONGO_URI
// override the corresponding file settings.
package config

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/acotour/pkg/aco"
	"github.com/matzehuels/acotour/pkg/errors"
)

const appName = "acotour"

// Backend names.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"

	StoreMemory = "memory"
	StoreFile   = "file"
	StoreMongo  = "mongo"
)

// Config is the complete application configuration.
type Config struct {
	Solver aco.Options  `toml:"solver"`
	Server ServerConfig `toml:"server"`
	Cache  CacheConfig  `toml:"cache"`
	Store  StoreConfig  `toml:"store"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr           string        `toml:"addr"`
	MaxUploadBytes int64         `toml:"max_upload_bytes"`
	RunTTL         time.Duration `toml:"run_ttl"`
	SolveTimeout   time.Duration `toml:"solve_timeout"`
	// MaxNodes bounds accepted inputs; 0 means unlimited.
	MaxNodes int `toml:"max_nodes"`
	// MaxAnts and MaxIterations bound the solver effort a request may ask
	// for; 0 means unlimited.
	MaxAnts       int `toml:"max_ants"`
	MaxIterations int `toml:"max_iterations"`
}

// CacheConfig selects and configures the result cache.
type CacheConfig struct {
	Backend   string        `toml:"backend"`
	Dir       string        `toml:"dir"`
	RedisAddr string        `toml:"redis_addr"`
	TTL       time.Duration `toml:"ttl"`
}

// StoreConfig selects and configures the run store.
type StoreConfig struct {
	Backend       string `toml:"backend"`
	Dir           string `toml:"dir"`
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Solver: aco.DefaultOptions(),
		Server: ServerConfig{
			Addr:           ":8080",
			MaxUploadBytes: 1 << 20,
			RunTTL:         7 * 24 * time.Hour,
			SolveTimeout:   2 * time.Minute,
			MaxNodes:       2000,
			MaxAnts:        1000,
			MaxIterations:  100000,
		},
		Cache: CacheConfig{
			Backend: CacheFile,
			TTL:     30 * 24 * time.Hour,
		},
		Store: StoreConfig{
			Backend:       StoreMemory,
			MongoDatabase: "acotour",
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/acotour/config.toml, falling back to
// ~/.config/acotour/config.toml.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load reads the configuration file at path on top of the defaults. The file
// must exist.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "open config %s", path)
	}
	defer f.Close()

	cfg, err := Read(f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config %s", path)
	}
	return cfg, nil
}

// LoadOrDefault behaves like [Load] but returns the defaults, with
// environment overrides applied, when path does not exist.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := Default()
		cfg.applyEnv()
		return cfg, cfg.Validate()
	}
	return Load(path)
}

// Read decodes TOML from r on top of the defaults, applies environment
// overrides and validates the result.
func Read(r io.Reader) (*Config, error) {
	cfg := Default()
	md, err := toml.NewDecoder(r).Decode(cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown keys: %s", strings.Join(keys, ", "))
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Write encodes cfg as TOML.
func (c *Config) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

func (c *Config) applyEnv() {
	if v := os.Getenv("ACOTOUR_REDIS_ADDR"); v != "" {
		c.Cache.RedisAddr = v
	}
	if v := os.Getenv("ACOTOUR_MONGO_URI"); v != "" {
		c.Store.MongoURI = v
	}
}

// Validate checks solver ranges and backend settings.
func (c *Config) Validate() error {
	if err := c.Solver.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "[solver]")
	}
	if c.Solver.StartNode < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "[solver] start_node must be >= 0, got %d", c.Solver.StartNode)
	}

	switch c.Cache.Backend {
	case CacheFile, CacheNone:
	case CacheRedis:
		if c.Cache.RedisAddr == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "[cache] redis backend requires redis_addr")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "[cache] unknown backend %q (want file, redis or none)", c.Cache.Backend)
	}

	switch c.Store.Backend {
	case StoreMemory, StoreFile:
	case StoreMongo:
		if c.Store.MongoURI == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "[store] mongo backend requires mongo_uri")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "[store] unknown backend %q (want memory, file or mongo)", c.Store.Backend)
	}

	if c.Server.MaxUploadBytes <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "[server] max_upload_bytes must be > 0")
	}
	if c.Server.MaxNodes < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "[server] max_nodes must be >= 0")
	}
	if c.Server.MaxAnts < 0 || c.Server.MaxIterations < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "[server] max_ants and max_iterations must be >= 0")
	}
	return nil
}
