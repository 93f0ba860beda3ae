// Package accounts implements the account summation engine.
//
// A summation walks a caller-supplied list of account IDs, always preceded by
// the fixed master account, fetches each account from an external store, and
// accumulates the strictly positive balances. Fetches are retried in place for
// as long as the store reports transient failures; the first permanent failure
// aborts the whole run with no partial result.
//
// The store and the access logger are capability interfaces supplied at
// construction, so both can be substituted by test doubles. The engine owns no
// state beyond the running total of one call and processes IDs strictly in
// order, which makes the observable side effects (access records, metrics)
// deterministic:
//
//	fetch id -> retry while transient -> record access -> accumulate if > 0
//
// "Network failure" here is whatever the store classifies as transient; the
// engine never inspects error text, only the failure kind.
package accounts

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Summer computes balance sums over accounts fetched from an AccountStore.
//
// Lifecycle: create once with NewSummer and reuse. A Summer is stateless
// between calls; concurrent use is safe exactly when the injected store and
// access logger are, but a single call is fully synchronous and processes one
// account at a time.
type Summer struct {
	store   AccountStore
	access  AccessLogger
	metrics *Metrics
	log     zerolog.Logger
}

// NewSummer creates a Summer over the given store and access logger. A nil
// metrics gets replaced by unregistered counters.
func NewSummer(store AccountStore, access AccessLogger, metrics *Metrics, logger zerolog.Logger) *Summer {
	if metrics == nil {
		metrics = NewMetrics(nil)
	}
	return &Summer{
		store:   store,
		access:  access,
		metrics: metrics,
		log:     logger.With().Str("component", "summer").Logger(),
	}
}

// SumAccounts fetches the master account followed by every requested ID, in
// order and without deduplication, and returns the sum of the strictly
// positive balances.
//
// Each successfully fetched account is reported to the access logger exactly
// once, after the fetch and before the balance is accumulated. The first
// permanent fetch failure aborts the call with a *SumError naming the failing
// ID; nothing after that point is fetched or logged, and no partial sum is
// returned.
func (s *Summer) SumAccounts(ctx context.Context, accountIDs []string) (int64, error) {
	start := time.Now()

	log := s.log.With().Str("run_id", uuid.New().String()).Logger()
	log.Debug().
		Strs("account_ids", accountIDs).
		Msg("summation started")

	ids := make([]string, 0, len(accountIDs)+1)
	ids = append(ids, MasterAccountID)
	ids = append(ids, accountIDs...)

	var total int64
	for _, id := range ids {
		acct, err := s.fetchWithRetry(ctx, log, id)
		if err != nil {
			s.metrics.PermanentFailures.Inc()
			log.Error().Err(err).
				Str("account_id", id).
				Msg("summation aborted")
			return 0, &SumError{AccountID: id, Err: err}
		}

		// Access is recorded only once the fetch has succeeded, never before.
		s.access.RecordAccountAccess(MasterAccountID, id)

		if acct.Balance > 0 {
			total += acct.Balance
		}
	}

	s.metrics.RunsCompleted.Inc()
	log.Info().
		Int("account_count", len(ids)).
		Int64("total", total).
		Dur("duration_ms", time.Since(start)).
		Msg("summation completed")

	return total, nil
}

// fetchWithRetry retries transient store failures in place, immediately and
// without a cap. A permanent failure returns at once; cancelling ctx is the
// only other way out of the loop.
func (s *Summer) fetchWithRetry(ctx context.Context, log zerolog.Logger, id string) (Account, error) {
	for {
		if err := ctx.Err(); err != nil {
			return Account{}, err
		}

		s.metrics.FetchAttempts.Inc()
		acct, err := s.store.FetchAccount(ctx, id)
		if err == nil {
			return acct, nil
		}
		if !IsTransient(err) {
			return Account{}, err
		}

		s.metrics.TransientRetries.Inc()
		log.Debug().Err(err).
			Str("account_id", id).
			Msg("transient fetch failure, retrying")
	}
}
