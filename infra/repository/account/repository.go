package account

import (
	"context"
	"errors"

	"github.com/amirasaad/bankledger/pkg/domain"
	"github.com/amirasaad/bankledger/pkg/dto"
	"github.com/amirasaad/bankledger/pkg/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type accountRepository struct {
	db *gorm.DB
}

// New creates an account repository using the provided *gorm.DB session.
func New(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

// Create implements repository.AccountRepository. The store assigns the
// account number.
func (r *accountRepository) Create(ctx context.Context, create dto.AccountCreate) (int64, error) {
	acct := Account{
		Holder:      create.Holder,
		Profession:  create.Profession,
		Address:     create.Address,
		PhoneNumber: create.PhoneNumber,
		Password:    create.PasswordHash,
		Balance:     create.Balance,
	}
	if err := r.db.WithContext(ctx).Create(&acct).Error; err != nil {
		return 0, domain.NewStoreError("insert account", err)
	}
	return acct.Number, nil
}

// Get implements repository.AccountRepository.
func (r *accountRepository) Get(ctx context.Context, number int64) (*dto.AccountRead, error) {
	var acct Account
	err := r.db.WithContext(ctx).First(&acct, "account_number = ?", number).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, domain.NewStoreError("select account", err)
	}
	return mapModelToDTO(&acct), nil
}

// UpdateBalance implements repository.AccountRepository.
func (r *accountRepository) UpdateBalance(ctx context.Context, number int64, balance decimal.Decimal) error {
	res := r.db.WithContext(ctx).Model(&Account{}).
		Where("account_number = ?", number).
		Update("balance", balance)
	if res.Error != nil {
		return domain.NewStoreError("update balance", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

// UpdatePassword implements repository.AccountRepository.
func (r *accountRepository) UpdatePassword(ctx context.Context, number int64, passwordHash string) error {
	res := r.db.WithContext(ctx).Model(&Account{}).
		Where("account_number = ?", number).
		Update("password", passwordHash)
	if res.Error != nil {
		return domain.NewStoreError("update password", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func mapModelToDTO(acct *Account) *dto.AccountRead {
	return &dto.AccountRead{
		Number:       acct.Number,
		Holder:       acct.Holder,
		Profession:   acct.Profession,
		Address:      acct.Address,
		PhoneNumber:  acct.PhoneNumber,
		PasswordHash: acct.Password,
		Balance:      acct.Balance,
		CreatedAt:    acct.CreatedAt,
	}
}
