package memstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/johanblumenberg/accountsum/internal/accounts"
)

// Flaky wraps a store and injects transient failures: the first N fetches of
// each listed account ID fail with a simulated network error before the
// underlying store is consulted. Counts are consumed, so a retried fetch
// eventually gets through.
type Flaky struct {
	next accounts.AccountStore

	mu        sync.Mutex
	remaining map[string]int
}

// NewFlaky wraps next. failuresPerID maps account IDs to how many transient
// failures to serve before delegating.
func NewFlaky(next accounts.AccountStore, failuresPerID map[string]int) *Flaky {
	remaining := make(map[string]int, len(failuresPerID))
	for id, n := range failuresPerID {
		remaining[id] = n
	}
	return &Flaky{next: next, remaining: remaining}
}

func (f *Flaky) FetchAccount(ctx context.Context, id string) (accounts.Account, error) {
	f.mu.Lock()
	if f.remaining[id] > 0 {
		f.remaining[id]--
		f.mu.Unlock()
		return accounts.Account{}, accounts.TransientError(fmt.Errorf("network failure fetching %q", id))
	}
	f.mu.Unlock()

	return f.next.FetchAccount(ctx, id)
}

// Failing wraps a store and fails every fetch of the listed IDs permanently.
// Unlisted IDs pass through untouched.
type Failing struct {
	next accounts.AccountStore
	ids  map[string]struct{}
}

// NewFailing wraps next, permanently failing fetches of the given IDs.
func NewFailing(next accounts.AccountStore, ids ...string) *Failing {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return &Failing{next: next, ids: set}
}

func (f *Failing) FetchAccount(ctx context.Context, id string) (accounts.Account, error) {
	if _, ok := f.ids[id]; ok {
		return accounts.Account{}, accounts.PermanentError(fmt.Errorf("account %q is unavailable", id))
	}
	return f.next.FetchAccount(ctx, id)
}
