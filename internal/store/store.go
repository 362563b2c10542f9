// Package store holds the in-memory working set of payments. The store is a
// transient view: callers resynchronize it from disk before every list read.
package store

import (
	"sync"

	"paytrack/internal/core"
)

type Store struct {
	mu       sync.Mutex
	payments []core.Payment
}

func New() *Store {
	return &Store{}
}

// GetAll returns a copy of the current payment list in insertion order.
func (s *Store) GetAll() []core.Payment {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Payment, len(s.payments))
	copy(out, s.payments)
	return out
}

// Add assigns an id to the payment, appends it, and returns the stored
// record.
func (s *Store) Add(p core.Payment) core.Payment {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = core.TimestampID()
	s.payments = append(s.payments, p)
	return p
}

// UpdateByID replaces the payment matching p.ID in place. The id itself is
// never reassigned.
func (s *Store) UpdateByID(p core.Payment) (core.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.payments {
		if s.payments[i].ID == p.ID {
			s.payments[i] = p
			return p, nil
		}
	}
	return core.Payment{}, core.ErrNotFound
}

// DeleteByID removes the payment with the given id, reporting whether a
// record was removed.
func (s *Store) DeleteByID(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.payments {
		if s.payments[i].ID == id {
			s.payments = append(s.payments[:i], s.payments[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payments = nil
}

// ReplaceAll swaps in a fresh payment list, used to resynchronize the store
// from the persisted set.
func (s *Store) ReplaceAll(payments []core.Payment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payments = make([]core.Payment, len(payments))
	copy(s.payments, payments)
}
