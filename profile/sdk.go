package profile

import (
	"context"
	"encoding/json"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Profile is the result of a successful search. Immutable once built; Info
// and Recommendations are copied verbatim from the finished payload.
type Profile struct {
	Info            json.RawMessage
	Recommendations json.RawMessage
}

// SDK orchestrates profile searches: submit, poll until finished or the
// budget runs out, then fetch the payload. Each Search owns its Request;
// concurrent calls are independent and share no mutable state.
type SDK struct {
	t Transport

	pollInterval    time.Duration
	maxPollInterval time.Duration
	logger          zerolog.Logger
}

// New constructs an SDK around a Transport with optional functional
// arguments. Poll defaults come from the environment (prefix
// PEOPLELENS_POLL_); options run afterwards and win on conflict.
func New(t Transport, opts ...Option) *SDK {
	cfg, err := LoadPollConfig()
	if err != nil {
		panic(err)
	}

	s := &SDK{
		t:               t,
		pollInterval:    cfg.Interval,
		maxPollInterval: cfg.MaxInterval,
		logger:          log.Logger,
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			panic(err)
		}
	}
	return s
}

// Search submits params and waits up to timeout for the result. On expiry it
// returns *NotFoundYetError carrying the still-live Request; pass that to
// Await to keep waiting. Transport errors with a status code are mapped onto
// the package taxonomy at every stage (submit, poll, fetch); everything else
// passes through unchanged.
func (s *SDK) Search(ctx context.Context, params SearchParams, timeout time.Duration) (*Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := ValidateSearchParams(params); err != nil {
		return nil, err
	}

	searchesStartedTotal.Inc()
	start := time.Now()

	req, err := StartSearch(ctx, s.t, params)
	if err != nil {
		return nil, classify(err, s.t.OrgToken())
	}
	s.logger.Debug().Str("request_id", req.ID).Msg("search submitted")

	prof, err := s.Await(ctx, req, timeout)
	if err != nil {
		return nil, err
	}
	searchDuration.Observe(time.Since(start).Seconds())
	return prof, nil
}

// Await polls req until it finishes or timeout elapses, then fetches the
// payload. The wait between polls grows exponentially from the configured
// interval, capped at both the max interval and the remaining budget, so
// expiry is deterministic: one final status check runs at the deadline
// before *NotFoundYetError is returned. A timeout <= 0 still performs one
// status check.
func (s *SDK) Await(ctx context.Context, req *Request, timeout time.Duration) (*Profile, error) {
	deadline := time.Now().Add(timeout)

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = s.pollInterval
	exp.Multiplier = 2
	exp.MaxInterval = s.maxPollInterval
	exp.MaxElapsedTime = 0
	exp.Reset()

	for {
		pollAttemptsTotal.Inc()
		done, err := req.DidFinish(ctx)
		if err != nil {
			return nil, classify(err, s.t.OrgToken())
		}
		if done {
			break
		}
		if !time.Now().Before(deadline) {
			searchTimeoutsTotal.Inc()
			s.logger.Debug().Str("request_id", req.ID).Dur("timeout", timeout).Msg("search not finished within budget")
			return nil, &NotFoundYetError{Request: req}
		}

		wait := exp.NextBackOff()
		if remaining := time.Until(deadline); wait > remaining {
			wait = remaining
		}
		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		}
	}

	info, err := req.ProfileInfo(ctx)
	if err != nil {
		return nil, classify(err, s.t.OrgToken())
	}

	searchesCompletedTotal.Inc()
	return &Profile{Info: info.Info, Recommendations: info.Recommendations}, nil
}

// SearchMany runs one Search per params entry concurrently and returns the
// profiles in input order. The first failure cancels the remaining searches
// and is returned as-is.
func (s *SDK) SearchMany(ctx context.Context, params []SearchParams, timeout time.Duration) ([]*Profile, error) {
	g, gctx := errgroup.WithContext(ctx)
	out := make([]*Profile, len(params))
	for i, p := range params {
		g.Go(func() error {
			prof, err := s.Search(gctx, p, timeout)
			if err != nil {
				return err
			}
			out[i] = prof
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
