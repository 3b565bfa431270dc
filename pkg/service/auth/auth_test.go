package auth_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/amirasaad/bankledger/internal/fixtures"
	"github.com/amirasaad/bankledger/pkg/config"
	"github.com/amirasaad/bankledger/pkg/domain"
	"github.com/amirasaad/bankledger/pkg/service/auth"
	"github.com/amirasaad/bankledger/pkg/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*fixtures.MemoryUoW, *auth.Service) {
	t.Helper()
	uow := fixtures.NewMemoryUoW()
	cfg := &config.Jwt{Secret: "test-secret", Expiry: time.Hour}
	return uow, auth.New(uow, cfg, slog.Default())
}

func seed(t *testing.T, uow *fixtures.MemoryUoW, password, balance string) int64 {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	return uow.Store.SeedAccount("Alice", hash, balance)
}

func TestLogin_Success(t *testing.T) {
	uow, svc := setup(t)
	number := seed(t, uow, "correct horse", "42.00")

	sess, err := svc.Login(context.Background(), number, "correct horse")
	require.NoError(t, err)
	require.NotNil(t, sess.Account)
	assert.Equal(t, number, sess.Account.Number)
	assert.True(t, sess.Account.Balance.Equal(sess.Account.Balance))
	assert.NotEqual(t, "", sess.ID.String())
}

func TestLogin_WrongPasswordNeverSucceeds(t *testing.T) {
	uow, svc := setup(t)
	number := seed(t, uow, "correct horse", "42.00")

	for _, pw := range []string{"correct hors", "correct horse ", "CORRECT HORSE", ""} {
		sess, err := svc.Login(context.Background(), number, pw)
		require.ErrorIs(t, err, domain.ErrAuthentication)
		assert.Nil(t, sess)
	}
}

func TestLogin_UnknownAccount(t *testing.T) {
	_, svc := setup(t)
	sess, err := svc.Login(context.Background(), 424242, "whatever")
	require.ErrorIs(t, err, domain.ErrAuthentication)
	assert.Nil(t, sess)
}

func TestLogin_LoadsTransactionHistory(t *testing.T) {
	uow, svc := setup(t)
	number := seed(t, uow, "correct horse", "42.00")

	txRepo, err := uow.TransactionRepository()
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err = txRepo.Create(context.Background(), depositEntry(number))
		require.NoError(t, err)
	}

	sess, err := svc.Login(context.Background(), number, "correct horse")
	require.NoError(t, err)
	assert.Len(t, sess.Account.Transactions, 3)
}

func TestChangePassword_Success(t *testing.T) {
	uow, svc := setup(t)
	number := seed(t, uow, "old password", "42.00")
	oldHash := uow.Store.PasswordHash(number)

	err := svc.ChangePassword(context.Background(), number, "old password", "new password", "new password")
	require.NoError(t, err)
	assert.NotEqual(t, oldHash, uow.Store.PasswordHash(number))

	_, err = svc.Login(context.Background(), number, "new password")
	require.NoError(t, err)
	_, err = svc.Login(context.Background(), number, "old password")
	require.ErrorIs(t, err, domain.ErrAuthentication)
}

func TestChangePassword_WrongCurrentLeavesHashUnchanged(t *testing.T) {
	uow, svc := setup(t)
	number := seed(t, uow, "old password", "42.00")
	oldHash := uow.Store.PasswordHash(number)

	err := svc.ChangePassword(context.Background(), number, "not it", "new password", "new password")
	require.ErrorIs(t, err, domain.ErrAuthentication)
	assert.Equal(t, oldHash, uow.Store.PasswordHash(number))
}

func TestChangePassword_ConfirmationMismatch(t *testing.T) {
	uow, svc := setup(t)
	number := seed(t, uow, "old password", "42.00")
	oldHash := uow.Store.PasswordHash(number)

	err := svc.ChangePassword(context.Background(), number, "old password", "new password", "other password")
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, oldHash, uow.Store.PasswordHash(number))
}

func TestChangePassword_EmptyNewPassword(t *testing.T) {
	uow, svc := setup(t)
	number := seed(t, uow, "old password", "42.00")

	err := svc.ChangePassword(context.Background(), number, "old password", "   ", "   ")
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestToken_RoundTrip(t *testing.T) {
	uow, svc := setup(t)
	number := seed(t, uow, "correct horse", "42.00")

	sess, err := svc.Login(context.Background(), number, "correct horse")
	require.NoError(t, err)

	tokenString, err := svc.GenerateToken(sess)
	require.NoError(t, err)

	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	restored, err := svc.SessionFromToken(context.Background(), parsed)
	require.NoError(t, err)
	assert.Equal(t, number, restored.Account.Number)
	assert.Equal(t, sess.ID, restored.ID)
}
