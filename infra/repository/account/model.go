package account

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account represents an account record in the database. The password column
// stores a bcrypt hash, never a plaintext credential.
type Account struct {
	Number      int64           `gorm:"column:account_number;primaryKey;autoIncrement"`
	Holder      string          `gorm:"column:account_holder;type:varchar(128);not null"`
	Profession  string          `gorm:"column:profession;type:varchar(128);not null"`
	Address     string          `gorm:"column:address;type:varchar(256);not null"`
	PhoneNumber string          `gorm:"column:phone_number;type:varchar(32);not null"`
	Password    string          `gorm:"column:password;type:varchar(128);not null"`
	Balance     decimal.Decimal `gorm:"column:balance;type:decimal(20,2);not null"`
	CreatedAt   time.Time
}

// TableName specifies the table name for the Account model.
func (Account) TableName() string {
	return "accounts"
}
