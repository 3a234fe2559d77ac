package api

import (
	"net/http"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config groups the transport tunables. Values are taken from environment
// variables with the prefix "PEOPLELENS_".
// Example: PEOPLELENS_BASE_URL=https://api.staging.peoplelens.io .
type Config struct {
	BaseURL     string        `envconfig:"BASE_URL"     default:"https://api.peoplelens.io"`
	OrgToken    string        `envconfig:"ORG_TOKEN"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`
}

// LoadConfig populates Config from environment variables (prefix PEOPLELENS_).
func LoadConfig() (Config, error) {
	var c Config
	return c, envconfig.Process("PEOPLELENS", &c)
}

// NewFromEnv constructs a Client from environment configuration. Explicit
// options run after the environment and win on conflict.
func NewFromEnv(opts ...Option) (*Client, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	base := []Option{
		WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}),
		WithOrgToken(cfg.OrgToken),
	}
	return New(cfg.BaseURL, append(base, opts...)...), nil
}
