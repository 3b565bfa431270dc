package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionCreate carries the fields needed to insert a ledger entry.
// The store assigns the transaction ID.
type TransactionCreate struct {
	AccountNumber int64
	Amount        decimal.Decimal
	Type          string
	Date          time.Time
}

// TransactionRead is the read-optimized projection of a ledger entry.
type TransactionRead struct {
	ID            int64
	AccountNumber int64
	Amount        decimal.Decimal
	Type          string
	Date          time.Time
}
