package website

import (
	"fmt"
	"net/url"
)

// maxURLLength bounds accepted URL input.
const maxURLLength = 2048

// ValidationError reports malformed URL input. It is surfaced before any
// network call is attempted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ValidateURL checks that rawURL is a syntactically valid absolute URL with
// both a scheme and a host, within the length bound. Pure string work, no
// network I/O.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return &ValidationError{Field: "url", Reason: "must not be empty"}
	}
	if len(rawURL) > maxURLLength {
		return &ValidationError{Field: "url", Reason: fmt.Sprintf("must be at most %d characters", maxURLLength)}
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return &ValidationError{Field: "url", Reason: "invalid URL format"}
	}
	if u.Scheme == "" || u.Host == "" {
		return &ValidationError{Field: "url", Reason: "invalid URL format"}
	}
	return nil
}
