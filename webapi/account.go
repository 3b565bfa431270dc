package webapi

import (
	"github.com/amirasaad/bankledger/pkg/config"
	"github.com/amirasaad/bankledger/pkg/domain"
	"github.com/amirasaad/bankledger/pkg/middleware"
	"github.com/amirasaad/bankledger/pkg/service/auth"
	"github.com/amirasaad/bankledger/pkg/service/ledger"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
)

// OpenAccountRequest carries a new-account submission. The balance comes in
// as text and is parsed by the service, so "abc" is a validation error, not
// a bind failure.
type OpenAccountRequest struct {
	Holder         string `json:"account_holder" validate:"required"`
	Profession     string `json:"profession" validate:"required"`
	Address        string `json:"address" validate:"required"`
	PhoneNumber    string `json:"phone_number" validate:"required"`
	InitialBalance string `json:"initial_balance" validate:"required"`
	Password       string `json:"password" validate:"required"`
}

// AmountRequest carries the amount for a deposit or withdrawal.
type AmountRequest struct {
	Amount string `json:"amount" validate:"required"`
}

// TransferRequest carries the recipient and amount for a transfer.
type TransferRequest struct {
	RecipientNumber int64  `json:"recipient_number" validate:"required,gt=0"`
	Amount          string `json:"amount" validate:"required"`
}

// AccountRoutes registers the account endpoints. Everything under /account
// except creation requires a valid session token.
func AccountRoutes(app *fiber.App, ledgerSvc *ledger.Service, authSvc *auth.Service, jwtCfg *config.Jwt) {
	group := app.Group("/account")
	group.Post("/", OpenAccount(ledgerSvc))
	group.Get("/balance", middleware.JwtProtected(jwtCfg), GetBalance(ledgerSvc, authSvc))
	group.Post("/deposit", middleware.JwtProtected(jwtCfg), Deposit(ledgerSvc, authSvc))
	group.Post("/withdraw", middleware.JwtProtected(jwtCfg), Withdraw(ledgerSvc, authSvc))
	group.Post("/transfer", middleware.JwtProtected(jwtCfg), Transfer(ledgerSvc, authSvc))
	group.Get("/transactions", middleware.JwtProtected(jwtCfg), ListTransactions(ledgerSvc, authSvc))
}

// sessionFromCtx rebuilds the session from the verified token the jwt
// middleware stored in locals.
func sessionFromCtx(c *fiber.Ctx, authSvc *auth.Service) (*auth.Session, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return nil, domain.ErrAuthentication
	}
	return authSvc.SessionFromToken(c.UserContext(), token)
}

// parseAmount turns submitted amount text into a decimal, rejecting
// malformed input as a validation error.
func parseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, domain.ErrAmountMustBePositive
	}
	return amount, nil
}

// OpenAccount creates a new account and returns its number.
// @Summary Open a new account
// @Tags account
// @Accept json
// @Produce json
// @Param request body OpenAccountRequest true "New account details"
// @Success 201 {object} Response
// @Failure 400 {object} ProblemDetails
// @Router /account [post]
func OpenAccount(ledgerSvc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[OpenAccountRequest](c)
		if err != nil {
			return ErrorResponseJSON(c, ErrorToStatusCode(err), "Error on open account request", err.Error())
		}
		number, err := ledgerSvc.OpenAccount(c.UserContext(), ledger.OpenAccountInput{
			Holder:         input.Holder,
			Profession:     input.Profession,
			Address:        input.Address,
			PhoneNumber:    input.PhoneNumber,
			InitialBalance: input.InitialBalance,
			Password:       input.Password,
		})
		if err != nil {
			return ErrorResponseJSON(c, ErrorToStatusCode(err), "Open account failed", err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(Response{
			Status:  fiber.StatusCreated,
			Message: "Account created successfully",
			Data:    fiber.Map{"account_number": number},
		})
	}
}

// GetBalance returns the session account's current balance.
// @Summary Current balance
// @Tags account
// @Produce json
// @Security Bearer
// @Success 200 {object} Response
// @Failure 401 {object} ProblemDetails
// @Router /account/balance [get]
func GetBalance(ledgerSvc *ledger.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := sessionFromCtx(c, authSvc)
		if err != nil {
			return ErrorResponseJSON(c, ErrorToStatusCode(err), "Unauthorized", err.Error())
		}
		balance, err := ledgerSvc.Balance(sess)
		if err != nil {
			return ErrorResponseJSON(c, ErrorToStatusCode(err), "Balance lookup failed", err.Error())
		}
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Success",
			Data: fiber.Map{
				"account_number": sess.Account.Number,
				"balance":        balance.StringFixed(2),
			},
		})
	}
}

// Deposit credits the session account.
// @Summary Deposit funds
// @Tags account
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body AmountRequest true "Deposit amount"
// @Success 200 {object} Response
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Router /account/deposit [post]
func Deposit(ledgerSvc *ledger.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := sessionFromCtx(c, authSvc)
		if err != nil {
			return ErrorResponseJSON(c, ErrorToStatusCode(err), "Unauthorized", err.Error())
		}
		input, err := BindAndValidate[AmountRequest](c)
		if err != nil {
			return ErrorResponseJSON(c, ErrorToStatusCode(err), "Error on deposit request", err.Error())
		}
		amount, err := parseAmount(input.Amount)
		if err != nil {
			return ErrorResponseJSON(c, ErrorToStatusCode(err), "Deposit failed", err.Error())
		}
		entry, err := ledgerSvc.Deposit(c.UserContext(), sess, amount)
		if err != nil {
			return ErrorResponseJSON(c, ErrorToStatusCode(err), "Deposit failed", err.Error())
		}
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Deposit successful",
			Data: fiber.Map{
				"transaction": ToTransactionDTO(entry),
				"balance":     sess.Account.Balance.StringFixed(2),
			},
		})
	}
}

// Withdraw debits the session account.
// @Summary Withdraw funds
// @Tags account
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body AmountRequest true "Withdrawal amount"
// @Success 200 {object} Response
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Failure 422 {object} ProblemDetails
// @Router /account/withdraw [post]
func Withdraw(ledgerSvc *ledger.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := sessionFromCtx(c, authSvc)
		if err != nil {
			return ErrorResponseJSON(c, ErrorToStatusCode(err), "Unauthorized", err.Error())
		}
		input, err := BindAndValidate[AmountRequest](c)
		if err != nil {
			return ErrorResponseJSON(c, ErrorToStatusCode(err), "Error on withdraw request", err.Error())
		}
		amount, err := parseAmount(input.Amount)
		if err != nil {
			return ErrorResponseJSON(c, ErrorToStatusCode(err), "Withdraw failed", err.Error())
		}
		entry, err := ledgerSvc.Withdraw(c.UserContext(), sess, amount)
		if err != nil {
			return ErrorResponseJSON(c, ErrorToStatusCode(err), "Withdraw failed", err.Error())
		}
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Withdrawal successful",
			Data: fiber.Map{
				"transaction": ToTransactionDTO(entry),
				"balance":     sess.Account.Balance.StringFixed(2),
			},
		})
	}
}

// Transfer moves funds from the session account to a recipient.
// @Summary Transfer funds
// @Tags account
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body TransferRequest true "Transfer details"
// @Success 200 {object} Response
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Failure 422 {object} ProblemDetails
// @Router /account/transfer [post]
func Transfer(ledgerSvc *ledger.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := sessionFromCtx(c, authSvc)
		if err != nil {
			return ErrorResponseJSON(c, ErrorToStatusCode(err), "Unauthorized", err.Error())
		}
		input, err := BindAndValidate[TransferRequest](c)
		if err != nil {
			return ErrorResponseJSON(c, ErrorToStatusCode(err), "Error on transfer request", err.Error())
		}
		amount, err := parseAmount(input.Amount)
		if err != nil {
			return ErrorResponseJSON(c, ErrorToStatusCode(err), "Transfer failed", err.Error())
		}
		entry, err := ledgerSvc.Transfer(c.UserContext(), sess, input.RecipientNumber, amount)
		if err != nil {
			return ErrorResponseJSON(c, ErrorToStatusCode(err), "Transfer failed", err.Error())
		}
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Transfer successful",
			Data: fiber.Map{
				"transaction": ToTransactionDTO(entry),
				"balance":     sess.Account.Balance.StringFixed(2),
			},
		})
	}
}

// ListTransactions returns the session account's history in insertion order.
// @Summary Transaction history
// @Tags account
// @Produce json
// @Security Bearer
// @Success 200 {object} Response
// @Failure 401 {object} ProblemDetails
// @Router /account/transactions [get]
func ListTransactions(ledgerSvc *ledger.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := sessionFromCtx(c, authSvc)
		if err != nil {
			return ErrorResponseJSON(c, ErrorToStatusCode(err), "Unauthorized", err.Error())
		}
		txs, err := ledgerSvc.ListTransactions(sess)
		if err != nil {
			return ErrorResponseJSON(c, ErrorToStatusCode(err), "History lookup failed", err.Error())
		}
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Success",
			Data:    fiber.Map{"transactions": ToTransactionDTOs(txs)},
		})
	}
}
