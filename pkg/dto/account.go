// Package dto defines the data transfer objects exchanged between the
// service layer and the repositories.
package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountCreate carries the fields needed to insert a new account row.
// The store assigns the account number.
type AccountCreate struct {
	Holder       string
	Profession   string
	Address      string
	PhoneNumber  string
	PasswordHash string
	Balance      decimal.Decimal
}

// AccountRead is the read-optimized projection of an account row.
type AccountRead struct {
	Number       int64
	Holder       string
	Profession   string
	Address      string
	PhoneNumber  string
	PasswordHash string
	Balance      decimal.Decimal
	CreatedAt    time.Time
}
