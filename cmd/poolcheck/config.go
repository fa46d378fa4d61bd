package main

import (
	"flag"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the poolcheck CLI.
type Config struct {
	// Pools (comma-separated via POOL_URLS)
	URLs     []string
	Userpass string

	// Algorithm selection
	Algorithm string   // Default algorithm applied by Adjust
	Variant   string   // "auto", "-1", "0" or "1"
	Features  []string // Optional algorithms to enable, e.g. "cn-lite"

	// Behaviour
	KeepAlive int
	NiceHash  bool

	// Output
	DBPath   string // Empty = don't persist
	JSON     bool
	LogLevel string
}

// DefaultConfig returns configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Algorithm: "cryptonight",
		Variant:   "auto",
		Features:  []string{"cn-lite", "cn-heavy", "cn-ipbc"},
		KeepAlive: 0,
		LogLevel:  "info",
	}
}

// LoadConfig loads configuration from .env and environment variables.
func LoadConfig() *Config {
	// Load .env file if present (ignore error if not found)
	_ = godotenv.Load()

	cfg := DefaultConfig()
	applyEnv(cfg, os.Getenv)
	return cfg
}

func applyEnv(cfg *Config, getenv func(string) string) {
	if v := getenv("POOL_URLS"); v != "" {
		cfg.URLs = splitList(v)
	}
	if v := getenv("POOL_USERPASS"); v != "" {
		cfg.Userpass = v
	}
	if v := getenv("POOL_ALGO"); v != "" {
		cfg.Algorithm = v
	}
	if v := getenv("POOL_VARIANT"); v != "" {
		cfg.Variant = v
	}
	if v, ok := lookup(getenv, "POOL_FEATURES"); ok {
		cfg.Features = splitList(v)
	}
	if v := getenv("POOL_KEEPALIVE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.KeepAlive = n
		}
	}
	if v := getenv("POOL_NICEHASH"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.NiceHash = b
		}
	}
	if v := getenv("POOLCHECK_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := getenv("POOLCHECK_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}

// lookup treats "-" as an explicit empty list so POOL_FEATURES can disable
// every optional algorithm.
func lookup(getenv func(string) string, key string) (string, bool) {
	v := getenv(key)
	if v == "" {
		return "", false
	}
	if v == "-" {
		return "", true
	}
	return v, true
}

// ParseFlags overrides cfg with command line flags that were set.
func ParseFlags(cfg *Config, fs *flag.FlagSet, args []string) (listAlgos bool, err error) {
	urls := fs.String("url", strings.Join(cfg.URLs, ","), "Pool URLs, comma separated")
	userpass := fs.String("userpass", cfg.Userpass, "Credentials as user:password")
	algo := fs.String("algo", cfg.Algorithm, "Default algorithm")
	variant := fs.String("variant", cfg.Variant, "Variant: auto, 0 or 1")
	features := fs.String("features", strings.Join(cfg.Features, ","), "Optional algorithms to enable")
	keepAlive := fs.Int("keepalive", cfg.KeepAlive, "Keep-alive seconds, 0 disables")
	niceHash := fs.Bool("nicehash", cfg.NiceHash, "Force NiceHash mode")
	dbPath := fs.String("db", cfg.DBPath, "SQLite file to store descriptors in")
	asJSON := fs.Bool("json", cfg.JSON, "Print descriptors as JSON")
	logLevel := fs.String("log-level", cfg.LogLevel, "Log level")
	list := fs.Bool("list-algos", false, "List enabled algorithms and exit")

	if err := fs.Parse(args); err != nil {
		return false, err
	}

	cfg.URLs = splitList(*urls)
	cfg.Userpass = *userpass
	cfg.Algorithm = *algo
	cfg.Variant = *variant
	cfg.Features = splitList(*features)
	cfg.KeepAlive = *keepAlive
	cfg.NiceHash = *niceHash
	cfg.DBPath = *dbPath
	cfg.JSON = *asJSON
	cfg.LogLevel = *logLevel

	// Positional arguments are extra URLs.
	cfg.URLs = append(cfg.URLs, fs.Args()...)
	return *list, nil
}

func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
