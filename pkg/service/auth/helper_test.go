package auth_test

import (
	"time"

	"github.com/amirasaad/bankledger/pkg/domain"
	"github.com/amirasaad/bankledger/pkg/dto"
	"github.com/shopspring/decimal"
)

func depositEntry(number int64) dto.TransactionCreate {
	return dto.TransactionCreate{
		AccountNumber: number,
		Amount:        decimal.RequireFromString("10.00"),
		Type:          string(domain.TransactionTypeDeposit),
		Date:          time.Now(),
	}
}
