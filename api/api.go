package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httputil"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// --------------------------------------------------------------------
// debugTransport – optional HTTP round-trip logger
// --------------------------------------------------------------------

type debugTransport struct{ base http.RoundTripper }

func (dt *debugTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if os.Getenv("PEOPLELENS_DEBUG") == "true" || os.Getenv("DEBUG") == "true" {
		reqDump, err := httputil.DumpRequestOut(req, true)
		if err == nil {
			log.Debug().Str("method", req.Method).Str("url", req.URL.String()).Str("request_dump", string(reqDump)).Msg("HTTP request")
		}
	}

	resp, err := dt.base.RoundTrip(req)
	if err != nil {
		if os.Getenv("PEOPLELENS_DEBUG") == "true" || os.Getenv("DEBUG") == "true" {
			log.Error().Err(err).Str("method", req.Method).Str("url", req.URL.String()).Msg("HTTP request failed")
		}
		return nil, err
	}

	if os.Getenv("PEOPLELENS_DEBUG") == "true" || os.Getenv("DEBUG") == "true" {
		respDump, err := httputil.DumpResponse(resp, true)
		if err == nil {
			log.Debug().Str("method", req.Method).Str("url", req.URL.String()).Int("status_code", resp.StatusCode).Str("response_dump", string(respDump)).Msg("HTTP response")
		}
	}
	return resp, nil
}

// --------------------------------------------------------------------
// Client core
// --------------------------------------------------------------------

// Client performs HTTP calls against the PeopleLens API. It owns the base
// URL, the org-level bearer token and the underlying http.Client; higher
// layers reach the network only through MakeRequest.
type Client struct {
	baseURL  string
	http     *http.Client
	orgToken string
}

// New constructs a Client with optional functional arguments.
func New(base string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(base, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}

	// Auto-enable debug via env variable without changing code.
	if os.Getenv("PEOPLELENS_DEBUG") == "true" || os.Getenv("DEBUG") == "true" {
		opts = append(opts, WithDebugLogging(true))
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			panic(err)
		}
	}
	return c
}

// OrgToken returns the org-level token the client presents on every request.
func (c *Client) OrgToken() string { return c.orgToken }

// errorBody is the shape the backend uses for non-2xx responses. Both field
// names appear in the wild, depending on the API version.
type errorBody struct {
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// MakeRequest issues one JSON round trip. in, when non-nil, is marshalled as
// the request body; on a 2xx response out, when non-nil, is decoded from the
// response body. A non-2xx response yields *Error carrying the status code.
// Failures without a response (DNS, connection reset, context cancellation)
// are returned unchanged.
func (c *Client) MakeRequest(ctx context.Context, method, path string, in, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewBuffer(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if c.orgToken != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.orgToken)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		_ = json.NewDecoder(resp.Body).Decode(&eb)
		msg := eb.Message
		if msg == "" {
			msg = eb.Error
		}
		return &Error{StatusCode: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
