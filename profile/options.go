package profile

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Option mutates the SDK during New().
type Option func(*SDK) error

// WithPollInterval sets the initial wait between DidFinish checks. The wait
// doubles per attempt up to the max interval.
func WithPollInterval(d time.Duration) Option {
	return func(s *SDK) error {
		if d <= 0 {
			return fmt.Errorf("poll interval must be positive")
		}
		s.pollInterval = d
		return nil
	}
}

// WithMaxPollInterval caps the wait between DidFinish checks.
func WithMaxPollInterval(d time.Duration) Option {
	return func(s *SDK) error {
		if d <= 0 {
			return fmt.Errorf("max poll interval must be positive")
		}
		s.maxPollInterval = d
		return nil
	}
}

// WithLogger replaces the package-global zerolog logger for this SDK.
func WithLogger(l zerolog.Logger) Option {
	return func(s *SDK) error {
		s.logger = l
		return nil
	}
}
