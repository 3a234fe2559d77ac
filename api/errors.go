package api

import "fmt"

// Error is a transport-level failure carrying the HTTP status code the
// PeopleLens API answered with. Only responses produce an Error; failures
// without a response are surfaced as-is and never wrapped.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("peoplelens api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("peoplelens api: status %d: %s", e.StatusCode, e.Message)
}
