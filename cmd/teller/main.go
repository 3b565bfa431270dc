// Command teller is an interactive console for branch staff. It talks to
// the same services as the HTTP API, against the same database.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/amirasaad/bankledger/infra"
	"github.com/amirasaad/bankledger/infra/initializer"
	infrarepo "github.com/amirasaad/bankledger/infra/repository"
	"github.com/amirasaad/bankledger/pkg/config"
	"github.com/amirasaad/bankledger/pkg/domain"
	"github.com/amirasaad/bankledger/pkg/service/auth"
	"github.com/amirasaad/bankledger/pkg/service/ledger"
	log "github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/shopspring/decimal"
	"golang.org/x/term"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	logger := initializer.SetupLogger(cfg.Log)

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := infra.Migrate(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	uow := infrarepo.NewUoW(db)
	console := &console{
		in:        bufio.NewScanner(os.Stdin),
		authSvc:   auth.New(uow, cfg.Jwt, logger),
		ledgerSvc: ledger.New(uow, logger),
	}
	return console.mainMenu(context.Background())
}

type console struct {
	in        *bufio.Scanner
	authSvc   *auth.Service
	ledgerSvc *ledger.Service
}

var (
	headline = color.New(color.FgCyan, color.Bold)
	success  = color.New(color.FgGreen)
	failure  = color.New(color.FgRed)
)

func (c *console) mainMenu(ctx context.Context) error {
	for {
		headline.Println("\n=== Bank Ledger Teller ===")
		fmt.Println("1. Login")
		fmt.Println("2. Open new account")
		fmt.Println("3. Exit")

		switch c.prompt("Choose an option: ") {
		case "1":
			sess, err := c.login(ctx)
			if err != nil {
				failure.Println(friendly(err))
				continue
			}
			c.accountMenu(ctx, sess)
		case "2":
			c.openAccount(ctx)
		case "3":
			fmt.Println("Goodbye.")
			return nil
		default:
			failure.Println("Unknown option")
		}
	}
}

func (c *console) accountMenu(ctx context.Context, sess *auth.Session) {
	success.Printf("Welcome, %s (account %d)\n", sess.Account.Holder, sess.Account.Number)
	for {
		headline.Println("\n--- Account Menu ---")
		fmt.Println("1. Check balance")
		fmt.Println("2. Deposit")
		fmt.Println("3. Withdraw")
		fmt.Println("4. Transfer")
		fmt.Println("5. Transaction history")
		fmt.Println("6. Change password")
		fmt.Println("7. Logout")

		switch c.prompt("Choose an option: ") {
		case "1":
			balance, err := c.ledgerSvc.Balance(sess)
			if err != nil {
				failure.Println(friendly(err))
				continue
			}
			success.Printf("Current balance: %s\n", balance.StringFixed(2))
		case "2":
			c.deposit(ctx, sess)
		case "3":
			c.withdraw(ctx, sess)
		case "4":
			c.transfer(ctx, sess)
		case "5":
			c.history(sess)
		case "6":
			c.changePassword(ctx, sess)
		case "7":
			fmt.Println("Logged out.")
			return
		default:
			failure.Println("Unknown option")
		}
	}
}

func (c *console) login(ctx context.Context) (*auth.Session, error) {
	number, err := c.promptAccountNumber("Account number: ")
	if err != nil {
		return nil, err
	}
	password, err := c.promptPassword("Password: ")
	if err != nil {
		return nil, err
	}
	return c.authSvc.Login(ctx, number, password)
}

func (c *console) openAccount(ctx context.Context) {
	headline.Println("\n--- Open New Account ---")
	input := ledger.OpenAccountInput{
		Holder:         c.prompt("Account holder: "),
		Profession:     c.prompt("Profession: "),
		Address:        c.prompt("Address: "),
		PhoneNumber:    c.prompt("Phone number: "),
		InitialBalance: c.prompt("Initial balance: "),
	}
	password, err := c.promptPassword("Password: ")
	if err != nil {
		failure.Println(friendly(err))
		return
	}
	input.Password = password

	number, err := c.ledgerSvc.OpenAccount(ctx, input)
	if err != nil {
		failure.Println(friendly(err))
		return
	}
	success.Printf("Account created. Account number: %d\n", number)
}

func (c *console) deposit(ctx context.Context, sess *auth.Session) {
	amount, err := c.promptAmount("Amount to deposit: ")
	if err != nil {
		failure.Println(friendly(err))
		return
	}
	if _, err := c.ledgerSvc.Deposit(ctx, sess, amount); err != nil {
		failure.Println(friendly(err))
		return
	}
	success.Printf("Deposit successful. New balance: %s\n", sess.Account.Balance.StringFixed(2))
}

func (c *console) withdraw(ctx context.Context, sess *auth.Session) {
	amount, err := c.promptAmount("Amount to withdraw: ")
	if err != nil {
		failure.Println(friendly(err))
		return
	}
	if _, err := c.ledgerSvc.Withdraw(ctx, sess, amount); err != nil {
		failure.Println(friendly(err))
		return
	}
	success.Printf("Withdrawal successful. New balance: %s\n", sess.Account.Balance.StringFixed(2))
}

func (c *console) transfer(ctx context.Context, sess *auth.Session) {
	recipient, err := c.promptAccountNumber("Recipient account number: ")
	if err != nil {
		failure.Println(friendly(err))
		return
	}
	amount, err := c.promptAmount("Amount to transfer: ")
	if err != nil {
		failure.Println(friendly(err))
		return
	}
	if _, err := c.ledgerSvc.Transfer(ctx, sess, recipient, amount); err != nil {
		failure.Println(friendly(err))
		return
	}
	success.Printf("Transfer successful. New balance: %s\n", sess.Account.Balance.StringFixed(2))
}

func (c *console) history(sess *auth.Session) {
	txs, err := c.ledgerSvc.ListTransactions(sess)
	if err != nil {
		failure.Println(friendly(err))
		return
	}
	if len(txs) == 0 {
		fmt.Println("No transactions yet.")
		return
	}
	headline.Printf("%-6s %-12s %-12s %s\n", "ID", "Type", "Amount", "Date")
	for _, tx := range txs {
		fmt.Printf("%-6d %-12s %-12s %s\n",
			tx.ID, tx.Type, tx.Amount.StringFixed(2), tx.Date.Format("2006-01-02 15:04:05"))
	}
}

func (c *console) changePassword(ctx context.Context, sess *auth.Session) {
	current, err := c.promptPassword("Current password: ")
	if err != nil {
		failure.Println(friendly(err))
		return
	}
	newPassword, err := c.promptPassword("New password: ")
	if err != nil {
		failure.Println(friendly(err))
		return
	}
	confirm, err := c.promptPassword("Confirm new password: ")
	if err != nil {
		failure.Println(friendly(err))
		return
	}
	if err := c.authSvc.ChangePassword(ctx, sess.Account.Number, current, newPassword, confirm); err != nil {
		failure.Println(friendly(err))
		return
	}
	success.Println("Password changed successfully.")
}

func (c *console) prompt(label string) string {
	fmt.Print(label)
	if !c.in.Scan() {
		return ""
	}
	return strings.TrimSpace(c.in.Text())
}

// promptPassword reads without echo when stdin is a terminal, falling back
// to a plain read when it is not (tests, piped input).
func (c *console) promptPassword(label string) (string, error) {
	fmt.Print(label)
	if term.IsTerminal(int(syscall.Stdin)) {
		raw, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			return "", err
		}
		return string(raw), nil
	}
	if !c.in.Scan() {
		return "", errors.New("input closed")
	}
	return strings.TrimSpace(c.in.Text()), nil
}

func (c *console) promptAccountNumber(label string) (int64, error) {
	raw := c.prompt(label)
	number, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || number <= 0 {
		return 0, fmt.Errorf("%w: account number must be a positive integer", domain.ErrValidation)
	}
	return number, nil
}

func (c *console) promptAmount(label string) (decimal.Decimal, error) {
	raw := c.prompt(label)
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, domain.ErrAmountMustBePositive
	}
	return amount, nil
}

// friendly maps service errors onto teller-facing messages.
func friendly(err error) string {
	switch {
	case errors.Is(err, domain.ErrAuthentication):
		return "Invalid account number or password."
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "Insufficient funds."
	case errors.Is(err, domain.ErrRecipientNotFound):
		return "Recipient account not found."
	case errors.Is(err, domain.ErrCannotTransferToSameAccount):
		return "Cannot transfer to the same account."
	case errors.Is(err, domain.ErrValidation):
		return "Invalid input: " + err.Error()
	default:
		return "Operation failed: " + err.Error()
	}
}
