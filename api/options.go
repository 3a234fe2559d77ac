package api

// This file defines functional options that configure the Client during
// construction. Keeping them in a standalone file avoids cluttering
// api.go and makes it easy to discover all available knobs at a glance.

import (
	"fmt"
	"net/http"
)

// Option mutates the Client during New().
type Option func(*Client) error

// WithHTTPClient injects a custom *http.Client. Useful for setting transport
// timeouts, tracing, custom TLS settings, etc.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return fmt.Errorf("nil http client")
		}
		c.http = hc
		return nil
	}
}

// WithOrgToken sets the org-level token sent as a Bearer credential on every
// request. There is deliberately no package-level token; each Client carries
// its own.
func WithOrgToken(token string) Option {
	return func(c *Client) error {
		c.orgToken = token
		return nil
	}
}

// WithDebugLogging wraps the client's transport such that every request/response
// is logged when `enabled` is true.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		if enabled {
			transport := c.http.Transport
			if transport == nil {
				transport = http.DefaultTransport
			}
			c.http.Transport = &debugTransport{base: transport}
		}
		return nil
	}
}
