package accounts

// MasterAccountID is the fixed account that every summation includes, fetched
// before any caller-supplied ID. It is a constant, not configuration.
const MasterAccountID = "master"

// Account is a named balance record in the store. Balances are stored as
// int64 in the smallest currency unit to avoid floating point drift.
//
// Accounts are value snapshots from the summation's point of view: the store
// owns and mutates them, the summation only reads.
type Account struct {
	ID      string
	Balance int64
}
