// Package ledger provides the account/transaction business operations:
// opening accounts, deposits, withdrawals, transfers and history listing.
// Every multi-statement sequence runs inside a store transaction, so a
// balance update and its ledger entry commit or roll back together.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/amirasaad/bankledger/pkg/domain"
	"github.com/amirasaad/bankledger/pkg/dto"
	"github.com/amirasaad/bankledger/pkg/mapper"
	"github.com/amirasaad/bankledger/pkg/repository"
	"github.com/amirasaad/bankledger/pkg/service/auth"
	"github.com/amirasaad/bankledger/pkg/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service implements the ledger operations over a UnitOfWork.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a ledger Service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// OpenAccountInput carries the raw operator input for account creation.
// The balance arrives as entered text and is parsed here, so malformed input
// is rejected before anything touches the store.
type OpenAccountInput struct {
	Holder         string
	Profession     string
	Address        string
	PhoneNumber    string
	InitialBalance string
	Password       string
}

// OpenAccount validates the input, hashes the password and inserts the new
// account. Returns the store-assigned account number.
func (s *Service) OpenAccount(ctx context.Context, input OpenAccountInput) (number int64, err error) {
	log := s.logger.With("op", "open_account", "opID", uuid.New())

	balance, err := decimal.NewFromString(strings.TrimSpace(input.InitialBalance))
	if err != nil {
		return 0, fmt.Errorf("%w: initial balance must be a valid number", domain.ErrValidation)
	}
	if balance.IsNegative() {
		return 0, fmt.Errorf("%w: initial balance must not be negative", domain.ErrValidation)
	}
	if strings.TrimSpace(input.Password) == "" {
		return 0, fmt.Errorf("%w: password must not be empty", domain.ErrValidation)
	}
	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		return 0, err
	}

	// the builder enforces the remaining field invariants
	account, err := domain.New().
		WithHolder(input.Holder).
		WithProfession(input.Profession).
		WithAddress(input.Address).
		WithPhoneNumber(input.PhoneNumber).
		WithPasswordHash(hash).
		WithBalance(balance).
		Build()
	if err != nil {
		return 0, err
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		number, err = accounts.Create(ctx, dto.AccountCreate{
			Holder:       account.Holder,
			Profession:   account.Profession,
			Address:      account.Address,
			PhoneNumber:  account.PhoneNumber,
			PasswordHash: account.PasswordHash,
			Balance:      account.Balance,
		})
		return err
	})
	if err != nil {
		log.Error("OpenAccount failed", "error", err)
		return 0, err
	}
	log.Info("OpenAccount successful", "accountNumber", number)
	return number, nil
}

// Deposit credits the session's account and records a Deposit entry. The
// balance update and the ledger insert share one store transaction.
func (s *Service) Deposit(ctx context.Context, sess *auth.Session, amount decimal.Decimal) (*domain.Transaction, error) {
	if sess == nil || sess.Account == nil {
		return nil, domain.ErrNilAccount
	}
	if !amount.IsPositive() {
		return nil, domain.ErrAmountMustBePositive
	}
	log := s.logger.With("op", "deposit", "accountNumber", sess.Account.Number, "opID", uuid.New())

	var (
		entry      *domain.Transaction
		newBalance decimal.Decimal
	)
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		account, accounts, err := s.fetchAccount(ctx, uow, sess.Account.Number)
		if err != nil {
			return err
		}
		if err = account.Deposit(amount); err != nil {
			return err
		}
		if err = accounts.UpdateBalance(ctx, account.Number, account.Balance); err != nil {
			return err
		}
		entry, err = s.record(ctx, uow, account.Number, amount, domain.TransactionTypeDeposit)
		if err != nil {
			return err
		}
		newBalance = account.Balance
		return nil
	})
	if err != nil {
		log.Error("Deposit failed", "error", err)
		return nil, err
	}

	s.applyToSession(sess, newBalance, entry)
	log.Info("Deposit successful", "amount", amount, "balance", newBalance)
	return entry, nil
}

// Withdraw debits the session's account and records a Withdrawal entry.
// Amounts exceeding the balance fail with domain.ErrInsufficientFunds and
// leave the balance unchanged.
func (s *Service) Withdraw(ctx context.Context, sess *auth.Session, amount decimal.Decimal) (*domain.Transaction, error) {
	if sess == nil || sess.Account == nil {
		return nil, domain.ErrNilAccount
	}
	if !amount.IsPositive() {
		return nil, domain.ErrAmountMustBePositive
	}
	log := s.logger.With("op", "withdraw", "accountNumber", sess.Account.Number, "opID", uuid.New())

	var (
		entry      *domain.Transaction
		newBalance decimal.Decimal
	)
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		account, accounts, err := s.fetchAccount(ctx, uow, sess.Account.Number)
		if err != nil {
			return err
		}
		if err = account.Withdraw(amount); err != nil {
			return err
		}
		if err = accounts.UpdateBalance(ctx, account.Number, account.Balance); err != nil {
			return err
		}
		entry, err = s.record(ctx, uow, account.Number, amount, domain.TransactionTypeWithdrawal)
		if err != nil {
			return err
		}
		newBalance = account.Balance
		return nil
	})
	if err != nil {
		log.Error("Withdraw failed", "error", err)
		return nil, err
	}

	s.applyToSession(sess, newBalance, entry)
	log.Info("Withdraw successful", "amount", amount, "balance", newBalance)
	return entry, nil
}

// Transfer moves funds from the session's account to the recipient. Both
// balance updates and both Transfer legs share a single store transaction,
// and the recipient row is read inside that boundary, so partial failure
// leaves every balance and both logs unchanged.
func (s *Service) Transfer(ctx context.Context, sess *auth.Session, recipientNumber int64, amount decimal.Decimal) (*domain.Transaction, error) {
	if sess == nil || sess.Account == nil {
		return nil, domain.ErrNilAccount
	}
	if sess.Account.Number == recipientNumber {
		return nil, domain.ErrCannotTransferToSameAccount
	}
	if !amount.IsPositive() {
		return nil, domain.ErrAmountMustBePositive
	}
	log := s.logger.With(
		"op", "transfer",
		"accountNumber", sess.Account.Number,
		"recipient", recipientNumber,
		"opID", uuid.New(),
	)

	var (
		entry      *domain.Transaction
		newBalance decimal.Decimal
	)
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		sender, accounts, err := s.fetchAccount(ctx, uow, sess.Account.Number)
		if err != nil {
			return err
		}
		recipientRead, err := accounts.Get(ctx, recipientNumber)
		if err != nil {
			if errors.Is(err, domain.ErrAccountNotFound) {
				return domain.ErrRecipientNotFound
			}
			return err
		}
		recipient, err := mapper.AccountFromRead(recipientRead, nil)
		if err != nil {
			return err
		}
		if err = sender.ValidateTransfer(recipient, amount); err != nil {
			return err
		}
		if err = sender.Withdraw(amount); err != nil {
			return err
		}
		if err = accounts.UpdateBalance(ctx, sender.Number, sender.Balance); err != nil {
			return err
		}
		if err = recipient.Deposit(amount); err != nil {
			return err
		}
		if err = accounts.UpdateBalance(ctx, recipient.Number, recipient.Balance); err != nil {
			return err
		}

		// one Transfer leg per party, same amount and timestamp
		txRepo, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		now := time.Now()
		senderLeg, err := txRepo.Create(ctx, dto.TransactionCreate{
			AccountNumber: sender.Number,
			Amount:        amount,
			Type:          string(domain.TransactionTypeTransfer),
			Date:          now,
		})
		if err != nil {
			return err
		}
		if _, err = txRepo.Create(ctx, dto.TransactionCreate{
			AccountNumber: recipient.Number,
			Amount:        amount,
			Type:          string(domain.TransactionTypeTransfer),
			Date:          now,
		}); err != nil {
			return err
		}
		entry = mapper.TransactionFromRead(senderLeg)
		newBalance = sender.Balance
		return nil
	})
	if err != nil {
		log.Error("Transfer failed", "error", err)
		return nil, err
	}

	s.applyToSession(sess, newBalance, entry)
	log.Info("Transfer successful", "amount", amount, "balance", newBalance)
	return entry, nil
}

// Balance returns the session account's current balance.
func (s *Service) Balance(sess *auth.Session) (decimal.Decimal, error) {
	if sess == nil || sess.Account == nil {
		return decimal.Zero, domain.ErrNilAccount
	}
	return sess.Account.Balance, nil
}

// ListTransactions returns the session account's transaction history in
// insertion order. An account with no history yields an empty slice, not an
// error.
func (s *Service) ListTransactions(sess *auth.Session) ([]*domain.Transaction, error) {
	if sess == nil || sess.Account == nil {
		return nil, domain.ErrNilAccount
	}
	if sess.Account.Transactions == nil {
		return []*domain.Transaction{}, nil
	}
	return sess.Account.Transactions, nil
}

// fetchAccount reads the account row inside the current transaction and
// hydrates the entity. The fresh read keeps concurrent mutations from
// operating on a stale balance.
func (s *Service) fetchAccount(
	ctx context.Context,
	uow repository.UnitOfWork,
	number int64,
) (*domain.Account, repository.AccountRepository, error) {
	accounts, err := uow.AccountRepository()
	if err != nil {
		return nil, nil, err
	}
	read, err := accounts.Get(ctx, number)
	if err != nil {
		return nil, nil, err
	}
	account, err := mapper.AccountFromRead(read, nil)
	if err != nil {
		return nil, nil, err
	}
	return account, accounts, nil
}

// record inserts one ledger entry for the account.
func (s *Service) record(
	ctx context.Context,
	uow repository.UnitOfWork,
	accountNumber int64,
	amount decimal.Decimal,
	txType domain.TransactionType,
) (*domain.Transaction, error) {
	txRepo, err := uow.TransactionRepository()
	if err != nil {
		return nil, err
	}
	created, err := txRepo.Create(ctx, dto.TransactionCreate{
		AccountNumber: accountNumber,
		Amount:        amount,
		Type:          string(txType),
		Date:          time.Now(),
	})
	if err != nil {
		return nil, err
	}
	return mapper.TransactionFromRead(created), nil
}

// applyToSession reflects a committed mutation on the in-memory session
// account so callers see the new balance and history without a reload.
func (s *Service) applyToSession(sess *auth.Session, balance decimal.Decimal, entry *domain.Transaction) {
	sess.Account.Balance = balance
	if entry != nil {
		sess.Account.Transactions = append(sess.Account.Transactions, entry)
	}
}
