// Package repository defines the ledger store contract. Implementations live
// under infra/repository; services depend only on these interfaces.
package repository

import (
	"context"

	"github.com/amirasaad/bankledger/pkg/dto"
	"github.com/shopspring/decimal"
)

// AccountRepository defines data access for account rows.
type AccountRepository interface {
	// Create inserts a new account and returns the store-assigned number.
	Create(ctx context.Context, create dto.AccountCreate) (int64, error)
	// Get fetches an account by number. Returns domain.ErrAccountNotFound
	// when no row exists.
	Get(ctx context.Context, number int64) (*dto.AccountRead, error)
	// UpdateBalance persists a new balance for the account.
	UpdateBalance(ctx context.Context, number int64, balance decimal.Decimal) error
	// UpdatePassword persists a new credential hash for the account.
	UpdatePassword(ctx context.Context, number int64, passwordHash string) error
}

// TransactionRepository defines data access for ledger entries.
type TransactionRepository interface {
	// Create inserts a ledger entry and returns it with the assigned ID.
	Create(ctx context.Context, create dto.TransactionCreate) (*dto.TransactionRead, error)
	// ListByAccount returns the account's entries in insertion order.
	ListByAccount(ctx context.Context, accountNumber int64) ([]*dto.TransactionRead, error)
}
