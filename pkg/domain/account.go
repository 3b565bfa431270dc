// Package domain holds the ledger's entities: accounts and the transactions
// recorded against them. Entities enforce their own invariants; persistence
// lives behind the repository interfaces in pkg/repository.
package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Account represents one bank account and its cached transaction history.
//
// Invariants:
//   - Number is assigned by the store on creation and never changes.
//   - Balance is never negative after any successful operation.
//   - PasswordHash is an opaque bcrypt hash; the plaintext is never stored.
//   - Transactions is a derived view of the store, ordered by insertion.
type Account struct {
	Number       int64
	Holder       string
	Profession   string
	Address      string
	PhoneNumber  string
	PasswordHash string
	Balance      decimal.Decimal
	CreatedAt    time.Time
	Transactions []*Transaction
}

// Builder provides a fluent API for constructing Account instances, so only
// valid accounts ever reach the service layer.
type Builder struct {
	number       int64
	holder       string
	profession   string
	address      string
	phoneNumber  string
	passwordHash string
	balance      decimal.Decimal
	createdAt    time.Time
	transactions []*Transaction
}

// New creates a new account Builder.
func New() *Builder {
	return &Builder{createdAt: time.Now()}
}

// WithNumber sets the store-assigned account number. This is only used when
// hydrating an existing account from the store.
func (b *Builder) WithNumber(number int64) *Builder {
	b.number = number
	return b
}

// WithHolder sets the account holder's name.
func (b *Builder) WithHolder(holder string) *Builder {
	b.holder = holder
	return b
}

// WithProfession sets the holder's profession.
func (b *Builder) WithProfession(profession string) *Builder {
	b.profession = profession
	return b
}

// WithAddress sets the holder's address.
func (b *Builder) WithAddress(address string) *Builder {
	b.address = address
	return b
}

// WithPhoneNumber sets the holder's phone number.
func (b *Builder) WithPhoneNumber(phoneNumber string) *Builder {
	b.phoneNumber = phoneNumber
	return b
}

// WithPasswordHash sets the stored credential hash.
func (b *Builder) WithPasswordHash(hash string) *Builder {
	b.passwordHash = hash
	return b
}

// WithBalance sets the balance. Used for the opening balance and for
// hydration from the store.
func (b *Builder) WithBalance(balance decimal.Decimal) *Builder {
	b.balance = balance
	return b
}

// WithCreatedAt sets the creation timestamp, for hydration from the store.
func (b *Builder) WithCreatedAt(t time.Time) *Builder {
	b.createdAt = t
	return b
}

// WithTransactions attaches the loaded transaction history.
func (b *Builder) WithTransactions(txs []*Transaction) *Builder {
	b.transactions = txs
	return b
}

// Build validates all invariants and returns the Account. Descriptive fields
// must be non-empty after trimming, the credential hash must be set, and the
// balance must not be negative.
func (b *Builder) Build() (*Account, error) {
	holder := strings.TrimSpace(b.holder)
	profession := strings.TrimSpace(b.profession)
	address := strings.TrimSpace(b.address)
	phone := strings.TrimSpace(b.phoneNumber)
	if holder == "" || profession == "" || address == "" || phone == "" {
		return nil, ErrValidation
	}
	if b.passwordHash == "" {
		return nil, ErrValidation
	}
	if b.balance.IsNegative() {
		return nil, ErrValidation
	}
	return &Account{
		Number:       b.number,
		Holder:       holder,
		Profession:   profession,
		Address:      address,
		PhoneNumber:  phone,
		PasswordHash: b.passwordHash,
		Balance:      b.balance,
		CreatedAt:    b.createdAt,
		Transactions: b.transactions,
	}, nil
}

func (a *Account) validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrAmountMustBePositive
	}
	return nil
}

// ValidateDeposit checks all business invariants for a deposit.
func (a *Account) ValidateDeposit(amount decimal.Decimal) error {
	return a.validateAmount(amount)
}

// ValidateWithdraw checks all business invariants for a withdrawal.
// The amount must be positive and must not exceed the current balance; the
// balance can never go negative.
func (a *Account) ValidateWithdraw(amount decimal.Decimal) error {
	if err := a.validateAmount(amount); err != nil {
		return err
	}
	if amount.GreaterThan(a.Balance) {
		return ErrInsufficientFunds
	}
	return nil
}

// ValidateTransfer ensures a funds transfer from this account to dest is valid.
func (a *Account) ValidateTransfer(dest *Account, amount decimal.Decimal) error {
	if a == nil || dest == nil {
		return ErrNilAccount
	}
	if a.Number == dest.Number {
		return ErrCannotTransferToSameAccount
	}
	if err := a.validateAmount(amount); err != nil {
		return err
	}
	if amount.GreaterThan(a.Balance) {
		return ErrInsufficientFunds
	}
	return nil
}

// Deposit credits the account after validating the amount.
func (a *Account) Deposit(amount decimal.Decimal) error {
	if err := a.ValidateDeposit(amount); err != nil {
		return err
	}
	a.Balance = a.Balance.Add(amount)
	return nil
}

// Withdraw debits the account after validating the amount and available funds.
func (a *Account) Withdraw(amount decimal.Decimal) error {
	if err := a.ValidateWithdraw(amount); err != nil {
		return err
	}
	a.Balance = a.Balance.Sub(amount)
	return nil
}
