package profile

import (
	"fmt"

	"github.com/google/uuid"
)

const (
	// maxFieldLen bounds each free-text search field.
	maxFieldLen = 200

	// maxLimit is the largest result count the backend accepts.
	maxLimit = 50
)

// ValidateRequestID checks that id looks like a server-issued request ID
// (UUIDv4).
func ValidateRequestID(id string) error {
	if id == "" {
		return fmt.Errorf("requestId is required")
	}
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("requestId must be a valid UUID")
	}
	return nil
}

// ValidateSearchParams rejects oversized fields before they hit the wire.
// The zero value is valid; every field is optional.
func ValidateSearchParams(p SearchParams) error {
	fields := map[string]string{
		"fullName": p.FullName,
		"email":    p.Email,
		"company":  p.Company,
		"location": p.Location,
	}
	for name, v := range fields {
		if len(v) > maxFieldLen {
			return fmt.Errorf("%s exceeds %d characters", name, maxFieldLen)
		}
	}
	if p.Limit < 0 || p.Limit > maxLimit {
		return fmt.Errorf("limit must be between 0 and %d", maxLimit)
	}
	return nil
}
