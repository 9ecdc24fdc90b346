// Package website holds the website record domain: validation, the record
// store with URL-level deduplication, and the repository contract.
package website

import (
	"context"
	"errors"
	"time"
)

// Record is a stored snapshot of a website's extracted metadata. Records are
// immutable after creation apart from UpdatedAt bookkeeping.
type Record struct {
	ID               string    `json:"id"`
	URL              string    `json:"url"`
	DomainName       string    `json:"domain_name"`
	Protocol         string    `json:"protocol"`
	Title            *string   `json:"title"`
	Images           []string  `json:"images"`
	StylesheetsCount int       `json:"stylesheets_count"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// ErrNotFound is returned when a record lookup by ID misses.
var ErrNotFound = errors.New("website record not found")

// ErrURLExists is returned by Insert when another record already holds the
// URL. It only surfaces when two inserts race; the store re-reads and
// returns the winner.
var ErrURLExists = errors.New("website record with this url already exists")

// Repository persists website records. At most one record may exist per
// distinct URL (case-sensitive exact match); Insert enforces this against
// concurrent writers.
type Repository interface {
	// FindByURL returns the record with exactly this URL, or (nil, nil)
	// when none exists.
	FindByURL(ctx context.Context, url string) (*Record, error)
	// FindByID returns ErrNotFound when the ID is unknown.
	FindByID(ctx context.Context, id string) (*Record, error)
	// List returns all records, newest first.
	List(ctx context.Context) ([]*Record, error)
	// Insert stores a new record, returning ErrURLExists when the URL is
	// already taken.
	Insert(ctx context.Context, rec *Record) error
	// Delete returns ErrNotFound when the ID is unknown.
	Delete(ctx context.Context, id string) error
}
