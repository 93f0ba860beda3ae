package accounts

import "context"

// AccountStore is the external source of accounts. Implementations signal
// retryable failures with TransientError and fatal ones with PermanentError;
// any other error is treated as permanent.
type AccountStore interface {
	FetchAccount(ctx context.Context, id string) (Account, error)
}

// AccessLogger receives one notification per successfully fetched account,
// strictly after the fetch has succeeded. It is fire-and-forget: the
// summation never consults a result and defines no failure contract for it.
type AccessLogger interface {
	RecordAccountAccess(masterID, accountID string)
}
