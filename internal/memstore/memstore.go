// Package memstore provides in-memory AccountStore implementations.
//
// Store is a plain map-backed store for demos and tests. Flaky and Failing
// wrap any store to inject the two failure kinds the summation engine reacts
// to, without any real transport behind them: a "network failure" is just a
// transient error served a configured number of times.
package memstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/johanblumenberg/accountsum/internal/accounts"
)

// Store is a map-backed AccountStore. A missing ID is a permanent failure.
type Store struct {
	mu    sync.Mutex
	accts map[string]accounts.Account
}

// New creates an empty store.
func New() *Store {
	return &Store{accts: make(map[string]accounts.Account)}
}

// Put inserts or replaces an account.
func (s *Store) Put(acct accounts.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accts[acct.ID] = acct
}

// FetchAccount returns a snapshot of the stored account.
func (s *Store) FetchAccount(_ context.Context, id string) (accounts.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acct, ok := s.accts[id]
	if !ok {
		return accounts.Account{}, accounts.PermanentError(fmt.Errorf("account %q not found", id))
	}
	return acct, nil
}
