package transaction

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a persisted ledger entry. Rows are write-once.
type Transaction struct {
	ID            int64           `gorm:"column:id;primaryKey;autoIncrement"`
	AccountNumber int64           `gorm:"column:account_number;index;not null"`
	Amount        decimal.Decimal `gorm:"column:amount;type:decimal(20,2);not null"`
	Type          string          `gorm:"column:transaction_type;type:varchar(16);not null"`
	Date          time.Time       `gorm:"column:date;not null"`
}

// TableName specifies the table name for the Transaction model.
func (Transaction) TableName() string {
	return "transactions"
}
