package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress       string
	DatabaseURI      string
	TokenSecret      string
	SessionTTL       time.Duration
	CheckoutInterval time.Duration
	CleanupInterval  time.Duration
	AnonymousTTL     time.Duration
	ShutdownTimeout  time.Duration
	AllowSignup      bool
	SeedCatalog      bool
}

const (
	defaultRunAddress       = ":8080"
	defaultTokenSecret      = "change-me-in-production"
	defaultSessionTTL       = 24 * time.Hour
	defaultCheckoutInterval = 60 * time.Second
	defaultCleanupInterval  = time.Hour
	defaultAnonymousTTL     = 30 * 24 * time.Hour
	defaultShutdownTimeout  = 10 * time.Second
)

// Load parses configuration from an optional .env file, environment
// variables, and flags, in increasing order of precedence.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:       getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:      getString(lookup, "DATABASE_URI", ""),
		TokenSecret:      getString(lookup, "TOKEN_SECRET", defaultTokenSecret),
		SessionTTL:       getDuration(lookup, "SESSION_TTL", defaultSessionTTL),
		CheckoutInterval: getDuration(lookup, "CHECKOUT_INTERVAL", defaultCheckoutInterval),
		CleanupInterval:  getDuration(lookup, "CLEANUP_INTERVAL", defaultCleanupInterval),
		AnonymousTTL:     getDuration(lookup, "ANONYMOUS_TTL", defaultAnonymousTTL),
		ShutdownTimeout:  getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		AllowSignup:      getBool(lookup, "ALLOW_SIGNUP", false),
		SeedCatalog:      getBool(lookup, "SEED_CATALOG", true),
	}

	fs := flag.NewFlagSet("flashmart", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		sessionTTLStr       = cfg.SessionTTL.String()
		checkoutIntervalStr = cfg.CheckoutInterval.String()
		shutdownTimeoutStr  = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.TokenSecret, "token-secret", cfg.TokenSecret, "Secret for signing auth tokens")
	fs.StringVar(&sessionTTLStr, "session-ttl", sessionTTLStr, "Auth token lifetime")
	fs.StringVar(&checkoutIntervalStr, "checkout-interval", checkoutIntervalStr, "Minimum interval between checkouts per identity")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.BoolVar(&cfg.AllowSignup, "allow-signup", cfg.AllowSignup, "Permit self-service account registration")
	fs.BoolVar(&cfg.SeedCatalog, "seed-catalog", cfg.SeedCatalog, "Insert the default catalog when the products table is empty")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.SessionTTL, err = time.ParseDuration(sessionTTLStr); err != nil {
		return nil, fmt.Errorf("invalid session ttl: %w", err)
	}

	if cfg.CheckoutInterval, err = time.ParseDuration(checkoutIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid checkout interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("TOKEN_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read token secret file: %w", err)
		}
		cfg.TokenSecret = string(content)
	}

	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = defaultSessionTTL
	}

	if cfg.CheckoutInterval <= 0 {
		cfg.CheckoutInterval = defaultCheckoutInterval
	}

	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = defaultCleanupInterval
	}

	if cfg.AnonymousTTL <= 0 {
		cfg.AnonymousTTL = defaultAnonymousTTL
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getBool(lookup envLookup, key string, def bool) bool {
	if v, ok := lookup(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
