// Package memory keeps the sales ledger in process memory. It backs tests
// and dev mode with the same append/remove-last/read-all semantics as the
// durable backends.
package memory

import (
	"context"
	"sync"

	"hotdogstand/backend/internal/domain"
	"hotdogstand/backend/internal/store"
)

type Store struct {
	mu      sync.RWMutex
	records []domain.SaleRecord
}

func New() *Store {
	return &Store{records: make([]domain.SaleRecord, 0, 64)}
}

func (s *Store) Append(ctx context.Context, record domain.SaleRecord) error {
	if record.Timestamp == "" || record.Date == "" {
		return store.ErrInvalidSale
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
	return nil
}

func (s *Store) RemoveLast(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.records) == 0 {
		return false, nil
	}
	s.records = s.records[:len(s.records)-1]
	return true, nil
}

func (s *Store) ReadAll(ctx context.Context) ([]domain.SaleRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.SaleRecord, len(s.records))
	copy(out, s.records)
	return out, nil
}
