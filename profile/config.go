package profile

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// PollConfig groups the poll-loop tunables. Values are taken from environment
// variables with the prefix "PEOPLELENS_POLL_".
// Example: PEOPLELENS_POLL_INTERVAL=100ms PEOPLELENS_POLL_MAX_INTERVAL=2s .
//
// The defaults (50ms doubling up to 1s) are a deliberate choice: quick enough
// that short searches return promptly, slow enough that a long wait does not
// hammer the status endpoint.
type PollConfig struct {
	Interval    time.Duration `envconfig:"INTERVAL"     default:"50ms"`
	MaxInterval time.Duration `envconfig:"MAX_INTERVAL" default:"1s"`
}

// LoadPollConfig populates PollConfig from environment variables.
func LoadPollConfig() (PollConfig, error) {
	var c PollConfig
	return c, envconfig.Process("PEOPLELENS_POLL", &c)
}
