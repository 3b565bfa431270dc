package ledger_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/amirasaad/bankledger/internal/fixtures"
	"github.com/amirasaad/bankledger/pkg/domain"
	"github.com/amirasaad/bankledger/pkg/service/auth"
	"github.com/amirasaad/bankledger/pkg/service/ledger"
	"github.com/amirasaad/bankledger/pkg/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPassword = "hunter2!"

func setup(t *testing.T) (*fixtures.MemoryUoW, *ledger.Service, *auth.Service) {
	t.Helper()
	uow := fixtures.NewMemoryUoW()
	logger := slog.Default()
	return uow, ledger.New(uow, logger), auth.New(uow, testJwtConfig(), logger)
}

func login(t *testing.T, authSvc *auth.Service, number int64) *auth.Session {
	t.Helper()
	sess, err := authSvc.Login(context.Background(), number, testPassword)
	require.NoError(t, err)
	return sess
}

func seed(t *testing.T, uow *fixtures.MemoryUoW, holder, balance string) int64 {
	t.Helper()
	hash, err := utils.HashPassword(testPassword)
	require.NoError(t, err)
	return uow.Store.SeedAccount(holder, hash, balance)
}

func TestDeposit_CreditsBalanceAndRecordsEntry(t *testing.T) {
	uow, svc, authSvc := setup(t)
	number := seed(t, uow, "Alice", "100.00")
	sess := login(t, authSvc, number)

	tx, err := svc.Deposit(context.Background(), sess, decimal.RequireFromString("50.00"))
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionTypeDeposit, tx.Type)
	assert.True(t, tx.Amount.Equal(decimal.RequireFromString("50.00")))
	assert.True(t, uow.Store.Balance(number).Equal(decimal.RequireFromString("150.00")))
	assert.True(t, sess.Account.Balance.Equal(decimal.RequireFromString("150.00")))
	assert.Equal(t, 1, uow.Store.TransactionCount(number))
}

func TestDeposit_RejectsNonPositiveBeforeStore(t *testing.T) {
	uow, svc, authSvc := setup(t)
	number := seed(t, uow, "Alice", "100.00")
	sess := login(t, authSvc, number)

	_, err := svc.Deposit(context.Background(), sess, decimal.Zero)
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, 0, uow.Store.TransactionCount(number))
	assert.True(t, uow.Store.Balance(number).Equal(decimal.RequireFromString("100.00")))
}

func TestDeposit_RollsBackBalanceWhenEntryInsertFails(t *testing.T) {
	uow, svc, authSvc := setup(t)
	number := seed(t, uow, "Alice", "100.00")
	sess := login(t, authSvc, number)

	uow.Store.FailOn = "tx.create"
	_, err := svc.Deposit(context.Background(), sess, decimal.RequireFromString("50.00"))
	require.Error(t, err)
	var storeErr *domain.StoreError
	require.ErrorAs(t, err, &storeErr)
	// balance and history must not diverge
	assert.True(t, uow.Store.Balance(number).Equal(decimal.RequireFromString("100.00")))
	assert.Equal(t, 0, uow.Store.TransactionCount(number))
}

func TestWithdraw_RoundTripRestoresBalance(t *testing.T) {
	uow, svc, authSvc := setup(t)
	number := seed(t, uow, "Alice", "100.00")
	sess := login(t, authSvc, number)

	amount := decimal.RequireFromString("37.50")
	_, err := svc.Deposit(context.Background(), sess, amount)
	require.NoError(t, err)
	_, err = svc.Withdraw(context.Background(), sess, amount)
	require.NoError(t, err)
	assert.True(t, uow.Store.Balance(number).Equal(decimal.RequireFromString("100.00")))
}

func TestWithdraw_InsufficientFundsLeavesBalanceUnchanged(t *testing.T) {
	uow, svc, authSvc := setup(t)
	number := seed(t, uow, "Alice", "150.00")
	sess := login(t, authSvc, number)

	_, err := svc.Withdraw(context.Background(), sess, decimal.RequireFromString("200.00"))
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)
	assert.True(t, uow.Store.Balance(number).Equal(decimal.RequireFromString("150.00")))
	assert.Equal(t, 0, uow.Store.TransactionCount(number))
}

func TestTransfer_MovesFundsAndWritesBothLegs(t *testing.T) {
	uow, svc, authSvc := setup(t)
	alice := seed(t, uow, "Alice", "150.00")
	bob := seed(t, uow, "Bob", "30.00")
	sess := login(t, authSvc, alice)

	tx, err := svc.Transfer(context.Background(), sess, bob, decimal.RequireFromString("50.00"))
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionTypeTransfer, tx.Type)
	assert.Equal(t, alice, tx.AccountNumber)
	assert.True(t, uow.Store.Balance(alice).Equal(decimal.RequireFromString("100.00")))
	assert.True(t, uow.Store.Balance(bob).Equal(decimal.RequireFromString("80.00")))
	assert.Equal(t, 1, uow.Store.TransactionCount(alice))
	assert.Equal(t, 1, uow.Store.TransactionCount(bob))
}

func TestTransfer_RecipientNotFoundLeavesBothUnchanged(t *testing.T) {
	uow, svc, authSvc := setup(t)
	alice := seed(t, uow, "Alice", "150.00")
	sess := login(t, authSvc, alice)

	_, err := svc.Transfer(context.Background(), sess, 999999, decimal.RequireFromString("50.00"))
	require.ErrorIs(t, err, domain.ErrRecipientNotFound)
	assert.True(t, uow.Store.Balance(alice).Equal(decimal.RequireFromString("150.00")))
	assert.Equal(t, 0, uow.Store.TransactionCount(alice))
}

func TestTransfer_ToSameAccountRejected(t *testing.T) {
	uow, svc, authSvc := setup(t)
	alice := seed(t, uow, "Alice", "150.00")
	sess := login(t, authSvc, alice)

	_, err := svc.Transfer(context.Background(), sess, alice, decimal.RequireFromString("10.00"))
	require.ErrorIs(t, err, domain.ErrCannotTransferToSameAccount)
}

func TestTransfer_PartialFailureRollsEverythingBack(t *testing.T) {
	uow, svc, authSvc := setup(t)
	alice := seed(t, uow, "Alice", "150.00")
	bob := seed(t, uow, "Bob", "30.00")
	sess := login(t, authSvc, alice)

	uow.Store.FailOn = "tx.create"
	_, err := svc.Transfer(context.Background(), sess, bob, decimal.RequireFromString("50.00"))
	require.Error(t, err)
	assert.True(t, uow.Store.Balance(alice).Equal(decimal.RequireFromString("150.00")))
	assert.True(t, uow.Store.Balance(bob).Equal(decimal.RequireFromString("30.00")))
	assert.Equal(t, 0, uow.Store.TransactionCount(alice))
	assert.Equal(t, 0, uow.Store.TransactionCount(bob))
}

func TestOpenAccount_AssignsNumber(t *testing.T) {
	_, svc, _ := setup(t)
	number, err := svc.OpenAccount(context.Background(), ledger.OpenAccountInput{
		Holder:         "Carol Danvers",
		Profession:     "Pilot",
		Address:        "77 Sky Rd",
		PhoneNumber:    "555-0199",
		InitialBalance: "250.00",
		Password:       "s3cret!",
	})
	require.NoError(t, err)
	assert.Greater(t, number, int64(0))
}

func TestOpenAccount_NonNumericBalanceRejected(t *testing.T) {
	uow, svc, _ := setup(t)
	_, err := svc.OpenAccount(context.Background(), ledger.OpenAccountInput{
		Holder:         "Carol Danvers",
		Profession:     "Pilot",
		Address:        "77 Sky Rd",
		PhoneNumber:    "555-0199",
		InitialBalance: "abc",
		Password:       "s3cret!",
	})
	require.ErrorIs(t, err, domain.ErrValidation)
	// no row inserted
	assert.Equal(t, 0, uow.Store.TransactionCount(0))
}

func TestOpenAccount_RequiresAllFields(t *testing.T) {
	_, svc, _ := setup(t)
	_, err := svc.OpenAccount(context.Background(), ledger.OpenAccountInput{
		Holder:         "  ",
		Profession:     "Pilot",
		Address:        "77 Sky Rd",
		PhoneNumber:    "555-0199",
		InitialBalance: "10.00",
		Password:       "s3cret!",
	})
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestOpenAccount_NegativeBalanceRejected(t *testing.T) {
	_, svc, _ := setup(t)
	_, err := svc.OpenAccount(context.Background(), ledger.OpenAccountInput{
		Holder:         "Carol Danvers",
		Profession:     "Pilot",
		Address:        "77 Sky Rd",
		PhoneNumber:    "555-0199",
		InitialBalance: "-5.00",
		Password:       "s3cret!",
	})
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestListTransactions_OrderedAndComplete(t *testing.T) {
	uow, svc, authSvc := setup(t)
	number := seed(t, uow, "Alice", "0.00")
	sess := login(t, authSvc, number)

	amounts := []string{"1.00", "2.00", "3.00", "4.00"}
	for _, a := range amounts {
		_, err := svc.Deposit(context.Background(), sess, decimal.RequireFromString(a))
		require.NoError(t, err)
	}

	// reload through a fresh session so the listing reflects the store
	sess = login(t, authSvc, number)
	txs, err := svc.ListTransactions(sess)
	require.NoError(t, err)
	require.Len(t, txs, len(amounts))
	for i, a := range amounts {
		assert.Equal(t, domain.TransactionTypeDeposit, txs[i].Type)
		assert.True(t, txs[i].Amount.Equal(decimal.RequireFromString(a)))
	}
}

func TestListTransactions_EmptyIsNotAnError(t *testing.T) {
	uow, svc, authSvc := setup(t)
	number := seed(t, uow, "Alice", "10.00")
	sess := login(t, authSvc, number)

	txs, err := svc.ListTransactions(sess)
	require.NoError(t, err)
	assert.Empty(t, txs)
	_ = uow
}

func TestBalance_ReflectsSessionAccount(t *testing.T) {
	uow, svc, authSvc := setup(t)
	number := seed(t, uow, "Alice", "12.34")
	sess := login(t, authSvc, number)

	balance, err := svc.Balance(sess)
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.RequireFromString("12.34")))
	_ = uow
}
