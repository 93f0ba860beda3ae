package accounts

import (
	"errors"
	"fmt"
)

// FailureKind classifies a fetch failure. It is a closed enum: retry decisions
// are made on the kind, never on message text.
type FailureKind int

const (
	// KindTransient marks a failure expected to resolve on an immediate retry.
	KindTransient FailureKind = iota
	// KindPermanent marks a failure that must abort the whole summation.
	KindPermanent
)

func (k FailureKind) String() string {
	switch k {
	case KindTransient:
		return "transient"
	case KindPermanent:
		return "permanent"
	default:
		return fmt.Sprintf("failure_kind(%d)", int(k))
	}
}

// FetchError is the failure contract of AccountStore.FetchAccount. The Kind
// decides whether the summation retries the fetch or aborts.
type FetchError struct {
	Kind FailureKind
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s fetch failure: %v", e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// TransientError wraps err as a retryable fetch failure.
func TransientError(err error) error {
	return &FetchError{Kind: KindTransient, Err: err}
}

// PermanentError wraps err as a fetch failure that aborts the summation.
func PermanentError(err error) error {
	return &FetchError{Kind: KindPermanent, Err: err}
}

// IsTransient reports whether err is a fetch failure worth retrying. Any
// error that is not an explicit transient FetchError counts as permanent.
func IsTransient(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe) && fe.Kind == KindTransient
}

// SumError identifies the first account whose fetch failed permanently. The
// underlying store failure is available through Unwrap.
type SumError struct {
	AccountID string
	Err       error
}

func (e *SumError) Error() string {
	return fmt.Sprintf("fetch failed for account %q: %v", e.AccountID, e.Err)
}

func (e *SumError) Unwrap() error { return e.Err }
