package store

import (
	"context"
	"errors"

	"hotdogstand/backend/internal/domain"
)

var (
	// ErrInvalidSale flags a record or request the ledger refuses to take.
	ErrInvalidSale = errors.New("invalid sale")
	// ErrInsufficientCash blocks a cash checkout short of the amount due.
	ErrInsufficientCash = errors.New("insufficient cash received")
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("not found")
)

// Ledger is the durable append-only history of finalized sales. Append order
// is chronological order. Implementations degrade a missing or unreadable
// store to an empty history on reads; only writes surface errors.
type Ledger interface {
	// Append durably adds exactly one record to the end of the history,
	// creating the store with the current schema if it does not exist yet.
	Append(ctx context.Context, record domain.SaleRecord) error
	// RemoveLast removes the most recently appended record. It reports false,
	// without error, when there is nothing to remove.
	RemoveLast(ctx context.Context) (bool, error)
	// ReadAll returns the full history in append order. A missing or corrupt
	// store yields an empty slice, never an error.
	ReadAll(ctx context.Context) ([]domain.SaleRecord, error)
}
