package profile

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/peoplelens/peoplelens-go/api"
)

// --------------------------------------------------------------------
// Public errors & helpers
// --------------------------------------------------------------------

// Sentinel errors for status-mapped failures that carry no extra context.
var (
	// ErrNotFound is returned when the API reports the underlying resource
	// does not exist (404).
	ErrNotFound = errors.New("peoplelens: profile not found")

	// ErrRateLimited is returned when the API throttles the request (429).
	ErrRateLimited = errors.New("peoplelens: rate limit hit")
)

// NotAuthedError reports a rejected credential (401). Token is the org-level
// token the transport presented, so callers can tell which credential was
// refused.
type NotAuthedError struct {
	Token string
}

func (e *NotAuthedError) Error() string {
	return fmt.Sprintf("peoplelens: not authed (org token %q)", e.Token)
}

// NotFoundYetError reports that the wait budget elapsed before the search
// finished. Request is still live server-side; pass it to (*SDK).Await to
// keep waiting with a fresh budget, or discard it.
type NotFoundYetError struct {
	Request *Request
}

func (e *NotFoundYetError) Error() string {
	return fmt.Sprintf("peoplelens: search %s not finished yet", e.Request.ID)
}

// IsNotFoundYet reports whether err is a NotFoundYetError and, if so,
// returns the in-flight request.
func IsNotFoundYet(err error) (*Request, bool) {
	var nfy *NotFoundYetError
	if errors.As(err, &nfy) {
		return nfy.Request, true
	}
	return nil, false
}

// classify maps a transport error with a status code onto the taxonomy
// above. Anything without a status code, and any status outside the mapped
// set, passes through with its identity intact.
func classify(err error, token string) error {
	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		return err
	}
	switch apiErr.StatusCode {
	case http.StatusUnauthorized:
		return &NotAuthedError{Token: token}
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusTooManyRequests:
		return ErrRateLimited
	}
	return err
}
