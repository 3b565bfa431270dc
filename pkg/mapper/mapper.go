// Package mapper converts repository DTOs into domain entities.
package mapper

import (
	"github.com/amirasaad/bankledger/pkg/domain"
	"github.com/amirasaad/bankledger/pkg/dto"
)

// AccountFromRead hydrates a domain Account from a repository read, with an
// optional transaction history.
func AccountFromRead(read *dto.AccountRead, txs []*dto.TransactionRead) (*domain.Account, error) {
	if read == nil {
		return nil, domain.ErrNilAccount
	}
	return domain.New().
		WithNumber(read.Number).
		WithHolder(read.Holder).
		WithProfession(read.Profession).
		WithAddress(read.Address).
		WithPhoneNumber(read.PhoneNumber).
		WithPasswordHash(read.PasswordHash).
		WithBalance(read.Balance).
		WithCreatedAt(read.CreatedAt).
		WithTransactions(TransactionsFromRead(txs)).
		Build()
}

// TransactionFromRead hydrates a domain Transaction from a repository read.
func TransactionFromRead(read *dto.TransactionRead) *domain.Transaction {
	if read == nil {
		return nil
	}
	return domain.NewTransactionFromData(
		read.ID,
		read.AccountNumber,
		read.Amount,
		domain.TransactionType(read.Type),
		read.Date,
	)
}

// TransactionsFromRead hydrates a slice of reads, preserving order.
func TransactionsFromRead(reads []*dto.TransactionRead) []*domain.Transaction {
	txs := make([]*domain.Transaction, 0, len(reads))
	for _, r := range reads {
		txs = append(txs, TransactionFromRead(r))
	}
	return txs
}
