package webapi

import (
	"time"

	"github.com/amirasaad/bankledger/pkg/domain"
)

// AccountDTO is the wire representation of an account. The password hash
// never leaves the service boundary, and balances render as exact decimal
// strings rather than floats.
type AccountDTO struct {
	AccountNumber int64     `json:"account_number"`
	Holder        string    `json:"account_holder"`
	Profession    string    `json:"profession"`
	Address       string    `json:"address"`
	PhoneNumber   string    `json:"phone_number"`
	Balance       string    `json:"balance"`
	CreatedAt     time.Time `json:"created_at"`
}

// TransactionDTO is the wire representation of one ledger entry.
type TransactionDTO struct {
	ID            int64     `json:"id"`
	AccountNumber int64     `json:"account_number"`
	Amount        string    `json:"amount"`
	Type          string    `json:"transaction_type"`
	Date          time.Time `json:"date"`
}

// ToAccountDTO maps a domain account onto its wire form.
func ToAccountDTO(account *domain.Account) AccountDTO {
	return AccountDTO{
		AccountNumber: account.Number,
		Holder:        account.Holder,
		Profession:    account.Profession,
		Address:       account.Address,
		PhoneNumber:   account.PhoneNumber,
		Balance:       account.Balance.StringFixed(2),
		CreatedAt:     account.CreatedAt,
	}
}

// ToTransactionDTO maps a ledger entry onto its wire form.
func ToTransactionDTO(tx *domain.Transaction) TransactionDTO {
	return TransactionDTO{
		ID:            tx.ID,
		AccountNumber: tx.AccountNumber,
		Amount:        tx.Amount.StringFixed(2),
		Type:          string(tx.Type),
		Date:          tx.Date,
	}
}

// ToTransactionDTOs maps a history slice onto its wire form. An empty
// history yields an empty slice, not null.
func ToTransactionDTOs(txs []*domain.Transaction) []TransactionDTO {
	out := make([]TransactionDTO, 0, len(txs))
	for _, tx := range txs {
		out = append(out, ToTransactionDTO(tx))
	}
	return out
}
