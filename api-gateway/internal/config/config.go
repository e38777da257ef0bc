package config

import (
	"fmt"
	"net/url"
	"strings"

	sharedconfig "github.com/salesdesk/txbrowser/shared/config"
)

type Config struct {
	Port                  string
	LogLevel              string
	TransactionServiceURL string
	AllowedOrigins        []string
	RateLimitRPS          float64
	RateLimitBurst        int
	// JWTSecret enables bearer-token auth on proxied routes when non-empty.
	JWTSecret string
}

// Load reads the gateway configuration from the environment.
func Load() (*Config, error) {
	v := sharedconfig.New(map[string]any{
		"port":                    "8080",
		"log_level":               "info",
		"transaction_service_url": "http://localhost:8084",
		"allowed_origins":         "*",
		"rate_limit_rps":          20.0,
		"rate_limit_burst":        40,
		"jwt_secret":              "",
	})

	cfg := &Config{
		Port:                  v.GetString("port"),
		LogLevel:              v.GetString("log_level"),
		TransactionServiceURL: strings.TrimSuffix(v.GetString("transaction_service_url"), "/"),
		AllowedOrigins:        splitList(v.GetString("allowed_origins")),
		RateLimitRPS:          v.GetFloat64("rate_limit_rps"),
		RateLimitBurst:        v.GetInt("rate_limit_burst"),
		JWTSecret:             v.GetString("jwt_secret"),
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	u, err := url.Parse(c.TransactionServiceURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("TRANSACTION_SERVICE_URL %q is not an absolute URL", c.TransactionServiceURL)
	}
	if c.RateLimitRPS <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must be positive, got %v", c.RateLimitRPS)
	}
	if c.RateLimitBurst < 1 {
		return fmt.Errorf("RATE_LIMIT_BURST must be at least 1, got %d", c.RateLimitBurst)
	}
	if len(c.AllowedOrigins) == 0 {
		return fmt.Errorf("ALLOWED_ORIGINS must name at least one origin")
	}
	return nil
}

// AllowAllOrigins reports whether the origin list is the "*" wildcard.
func (c *Config) AllowAllOrigins() bool {
	return len(c.AllowedOrigins) == 1 && c.AllowedOrigins[0] == "*"
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
