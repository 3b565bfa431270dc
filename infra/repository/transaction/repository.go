package transaction

import (
	"context"

	"github.com/amirasaad/bankledger/pkg/domain"
	"github.com/amirasaad/bankledger/pkg/dto"
	"github.com/amirasaad/bankledger/pkg/repository"
	"gorm.io/gorm"
)

type transactionRepository struct {
	db *gorm.DB
}

// New creates a ledger-entry repository using the provided *gorm.DB session.
func New(db *gorm.DB) repository.TransactionRepository {
	return &transactionRepository{db: db}
}

// Create implements repository.TransactionRepository. The store assigns the
// entry ID.
func (r *transactionRepository) Create(ctx context.Context, create dto.TransactionCreate) (*dto.TransactionRead, error) {
	tx := Transaction{
		AccountNumber: create.AccountNumber,
		Amount:        create.Amount,
		Type:          create.Type,
		Date:          create.Date,
	}
	if err := r.db.WithContext(ctx).Create(&tx).Error; err != nil {
		return nil, domain.NewStoreError("insert transaction", err)
	}
	return mapModelToDTO(&tx), nil
}

// ListByAccount implements repository.TransactionRepository, returning
// entries in insertion order.
func (r *transactionRepository) ListByAccount(ctx context.Context, accountNumber int64) ([]*dto.TransactionRead, error) {
	var rows []Transaction
	err := r.db.WithContext(ctx).
		Where("account_number = ?", accountNumber).
		Order("id asc").
		Find(&rows).Error
	if err != nil {
		return nil, domain.NewStoreError("select transactions", err)
	}
	out := make([]*dto.TransactionRead, 0, len(rows))
	for i := range rows {
		out = append(out, mapModelToDTO(&rows[i]))
	}
	return out, nil
}

func mapModelToDTO(tx *Transaction) *dto.TransactionRead {
	return &dto.TransactionRead{
		ID:            tx.ID,
		AccountNumber: tx.AccountNumber,
		Amount:        tx.Amount,
		Type:          tx.Type,
		Date:          tx.Date,
	}
}
