package ledger_test

import (
	"time"

	"github.com/amirasaad/bankledger/pkg/config"
)

func testJwtConfig() *config.Jwt {
	return &config.Jwt{Secret: "test-secret", Expiry: time.Hour}
}
