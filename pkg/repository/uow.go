package repository

import "context"

// UnitOfWork provides a transaction boundary and repository access in one
// abstraction. Every repository obtained inside Do uses the same store
// transaction, so a multi-statement sequence (balance update plus ledger
// insert, or a transfer's two-account mutation) commits or rolls back as a
// whole.
type UnitOfWork interface {
	// Do executes fn within a transaction boundary. The UnitOfWork passed to
	// fn hands out repositories bound to that transaction. If fn returns an
	// error the transaction is rolled back.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	// AccountRepository returns the account repository bound to the current
	// session or transaction.
	AccountRepository() (AccountRepository, error)

	// TransactionRepository returns the ledger-entry repository bound to the
	// current session or transaction.
	TransactionRepository() (TransactionRepository, error)
}
