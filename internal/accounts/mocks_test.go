package accounts

// Expectation-style doubles built on testify's mock package, next to the
// hand-rolled fakes in summer_test.go. The same contract is checked both
// ways: the fakes verify observable state after the fact, the mocks verify
// the interactions as they happen.

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAccountStore struct {
	mock.Mock
}

func (m *MockAccountStore) FetchAccount(ctx context.Context, id string) (Account, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(Account), args.Error(1)
}

type MockAccessLogger struct {
	mock.Mock
}

func (m *MockAccessLogger) RecordAccountAccess(masterID, accountID string) {
	m.Called(masterID, accountID)
}

func expectFetch(store *MockAccountStore, id string, balance int64) {
	store.On("FetchAccount", mock.Anything, id).
		Return(Account{ID: id, Balance: balance}, nil).Once()
}

func TestSumAccounts_Mocked_SumsPositiveBalances(t *testing.T) {
	store := &MockAccountStore{}
	access := &MockAccessLogger{}

	expectFetch(store, "master", 0)
	expectFetch(store, "a", 1)
	expectFetch(store, "b", 1)
	expectFetch(store, "c", 1)

	for _, id := range []string{"master", "a", "b", "c"} {
		access.On("RecordAccountAccess", "master", id).Once()
	}

	summer := NewSummer(store, access, nil, zerolog.Nop())
	total, err := summer.SumAccounts(context.Background(), []string{"a", "b", "c"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	store.AssertExpectations(t)
	access.AssertExpectations(t)
}

func TestSumAccounts_Mocked_TransientThenSuccess(t *testing.T) {
	store := &MockAccountStore{}
	access := &MockAccessLogger{}

	expectFetch(store, "master", 0)
	expectFetch(store, "a", 1)
	store.On("FetchAccount", mock.Anything, "b").
		Return(Account{}, TransientError(errors.New("connection reset"))).Once()
	expectFetch(store, "b", 1)
	expectFetch(store, "c", 1)

	access.On("RecordAccountAccess", "master", mock.Anything)

	summer := NewSummer(store, access, nil, zerolog.Nop())
	total, err := summer.SumAccounts(context.Background(), []string{"a", "b", "c"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	store.AssertExpectations(t)
	access.AssertNumberOfCalls(t, "RecordAccountAccess", 4)
}

func TestSumAccounts_Mocked_PermanentFailureSuppressesLogging(t *testing.T) {
	store := &MockAccountStore{}
	access := &MockAccessLogger{}

	expectFetch(store, "master", 0)
	expectFetch(store, "a", 1)
	store.On("FetchAccount", mock.Anything, "b").
		Return(Account{}, PermanentError(errors.New("account suspended"))).Once()

	access.On("RecordAccountAccess", "master", "master").Once()
	access.On("RecordAccountAccess", "master", "a").Once()

	summer := NewSummer(store, access, nil, zerolog.Nop())
	_, err := summer.SumAccounts(context.Background(), []string{"a", "b", "c"})

	var sumErr *SumError
	require.ErrorAs(t, err, &sumErr)
	assert.Equal(t, "b", sumErr.AccountID)

	store.AssertExpectations(t)
	store.AssertNotCalled(t, "FetchAccount", mock.Anything, "c")
	access.AssertExpectations(t)
	access.AssertNotCalled(t, "RecordAccountAccess", "master", "b")
}
