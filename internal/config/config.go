package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

type Config struct {
	DatabaseURL    string
	HTTPListenAddr string
	LogLevel       string

	// BaseURL is the externally visible origin of this service, used to
	// build the OAuth redirect URI (BaseURL + /auth/google/callback).
	BaseURL string

	GoogleClientID     string
	GoogleClientSecret string

	// SessionHashKey keys the HMAC applied to the session secret before
	// storage. Rotating it invalidates all outstanding sessions.
	SessionHashKey string
	SessionTTL     time.Duration
	StateTTL       time.Duration

	// ExchangeTimeout bounds the authorization-code exchange round trip
	// to the identity provider.
	ExchangeTimeout time.Duration

	// ReturnURLAllowList holds URL prefixes a login return_url may
	// match. One of them must be a prefix of BaseURL, the default
	// login destination; Validate enforces this.
	ReturnURLAllowList []string
}

func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		HTTPListenAddr:     getEnv("HTTP_LISTEN_ADDR", ":3000"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		BaseURL:            getEnv("BASE_URL", "http://127.0.0.1:3000"),
		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		SessionHashKey:     getEnv("SESSION_HASH_KEY", ""),
		SessionTTL:         getDuration("SESSION_TTL", 24*time.Hour),
		StateTTL:           getDuration("STATE_TTL", 10*time.Minute),
		ExchangeTimeout:    getDuration("EXCHANGE_TIMEOUT", 10*time.Second),
	}

	if list := getEnv("RETURN_URL_ALLOW_LIST", ""); list != "" {
		for _, p := range strings.Split(list, ",") {
			if p = strings.TrimSpace(p); p != "" {
				cfg.ReturnURLAllowList = append(cfg.ReturnURLAllowList, p)
			}
		}
	}

	return cfg, nil
}

// Validate checks that fields required to serve traffic are present.
func (c *Config) Validate() error {
	var missing []string
	if c.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if c.GoogleClientID == "" {
		missing = append(missing, "GOOGLE_CLIENT_ID")
	}
	if c.GoogleClientSecret == "" {
		missing = append(missing, "GOOGLE_CLIENT_SECRET")
	}
	if c.SessionHashKey == "" {
		missing = append(missing, "SESSION_HASH_KEY")
	}
	if len(c.ReturnURLAllowList) == 0 {
		missing = append(missing, "RETURN_URL_ALLOW_LIST")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required config: %s", strings.Join(missing, ", "))
	}

	// Login falls back to BaseURL when no return_url is given, so the
	// allow list has to cover it.
	covered := false
	for _, p := range c.ReturnURLAllowList {
		if strings.HasPrefix(c.BaseURL, p) {
			covered = true
			break
		}
	}
	if !covered {
		return fmt.Errorf("RETURN_URL_ALLOW_LIST must contain a prefix of BASE_URL %q", c.BaseURL)
	}

	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
