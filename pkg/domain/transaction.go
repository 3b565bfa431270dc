package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType identifies the kind of ledger entry. Direction is encoded
// by the type, not by the sign of the amount.
type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "Deposit"
	TransactionTypeWithdrawal TransactionType = "Withdrawal"
	TransactionTypeTransfer   TransactionType = "Transfer"
)

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionTypeDeposit, TransactionTypeWithdrawal, TransactionTypeTransfer:
		return true
	}
	return false
}

// Transaction represents one recorded ledger entry. Entries are write-once:
// the store assigns the ID at insert time and rows are never updated or
// deleted afterwards.
type Transaction struct {
	ID            int64
	AccountNumber int64
	Amount        decimal.Decimal // always positive
	Type          TransactionType
	Date          time.Time
}

// NewTransactionFromData creates a Transaction from raw data. This bypasses
// invariants and should only be used for repository hydration or tests.
func NewTransactionFromData(
	id, accountNumber int64,
	amount decimal.Decimal,
	txType TransactionType,
	date time.Time,
) *Transaction {
	return &Transaction{
		ID:            id,
		AccountNumber: accountNumber,
		Amount:        amount,
		Type:          txType,
		Date:          date,
	}
}
