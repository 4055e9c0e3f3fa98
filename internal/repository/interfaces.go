package repository

import (
	"context"
)

// LeadStore is implemented by each storage driver (postgres, supabase, log).
// Table has already been checked against the closed set when a driver sees it.
type LeadStore interface {
	// Insert writes one row and returns the id the store assigned
	Insert(ctx context.Context, table Table, row Row) (string, error)

	// Ping checks the store is reachable
	Ping(ctx context.Context) error
}

// LeadLister is implemented by drivers that can read rows back (operator tooling)
type LeadLister interface {
	ListRecent(ctx context.Context, table Table, limit int) (*Listing, error)
}

// SubmissionRepository is the single write path for lead records
type SubmissionRepository interface {
	Insert(ctx context.Context, table Table, row Row) (string, error)
	Ping(ctx context.Context) error
}

var _ SubmissionRepository = (*LeadRepository)(nil)
