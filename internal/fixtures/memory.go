// Package fixtures provides in-memory implementations of the repository
// interfaces for tests. The fake UnitOfWork runs the callback directly and
// restores a snapshot on error, mimicking the rollback of a real store
// transaction.
package fixtures

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/amirasaad/bankledger/pkg/domain"
	"github.com/amirasaad/bankledger/pkg/dto"
	"github.com/amirasaad/bankledger/pkg/repository"
	"github.com/shopspring/decimal"
)

// MemoryStore is a process-local ledger store backing the fake repositories.
type MemoryStore struct {
	mu           sync.Mutex
	accounts     map[int64]*dto.AccountRead
	transactions []*dto.TransactionRead
	nextAccount  int64
	nextTx       int64

	// FailOn forces the named repository operation to fail, for exercising
	// rollback paths. Recognized values: "account.create", "account.get",
	// "account.update_balance", "account.update_password", "tx.create",
	// "tx.list".
	FailOn string
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		accounts:    make(map[int64]*dto.AccountRead),
		nextAccount: 1000,
		nextTx:      0,
	}
}

// SeedAccount inserts an account directly and returns its number.
func (m *MemoryStore) SeedAccount(holder, passwordHash, balance string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextAccount++
	number := m.nextAccount
	m.accounts[number] = &dto.AccountRead{
		Number:       number,
		Holder:       holder,
		Profession:   "Teller Test",
		Address:      "1 Test Way",
		PhoneNumber:  "555-0000",
		PasswordHash: passwordHash,
		Balance:      decimal.RequireFromString(balance),
		CreatedAt:    time.Now(),
	}
	return number
}

// Balance returns the stored balance for an account.
func (m *MemoryStore) Balance(number int64) decimal.Decimal {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.accounts[number]; ok {
		return a.Balance
	}
	return decimal.Zero
}

// PasswordHash returns the stored hash for an account.
func (m *MemoryStore) PasswordHash(number int64) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.accounts[number]; ok {
		return a.PasswordHash
	}
	return ""
}

// TransactionCount returns the number of entries recorded for an account.
func (m *MemoryStore) TransactionCount(number int64) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, tx := range m.transactions {
		if tx.AccountNumber == number {
			n++
		}
	}
	return n
}

func (m *MemoryStore) failing(op string) error {
	if m.FailOn == op {
		return domain.NewStoreError(op, errForced)
	}
	return nil
}

var errForced = &forcedError{}

type forcedError struct{}

func (*forcedError) Error() string { return "forced store failure" }

type snapshot struct {
	accounts     map[int64]dto.AccountRead
	transactions []dto.TransactionRead
	nextAccount  int64
	nextTx       int64
}

func (m *MemoryStore) snapshot() *snapshot {
	s := &snapshot{
		accounts:    make(map[int64]dto.AccountRead, len(m.accounts)),
		nextAccount: m.nextAccount,
		nextTx:      m.nextTx,
	}
	for k, v := range m.accounts {
		s.accounts[k] = *v
	}
	for _, tx := range m.transactions {
		s.transactions = append(s.transactions, *tx)
	}
	return s
}

func (m *MemoryStore) restore(s *snapshot) {
	m.accounts = make(map[int64]*dto.AccountRead, len(s.accounts))
	for k := range s.accounts {
		v := s.accounts[k]
		m.accounts[k] = &v
	}
	m.transactions = nil
	for i := range s.transactions {
		tx := s.transactions[i]
		m.transactions = append(m.transactions, &tx)
	}
	m.nextAccount = s.nextAccount
	m.nextTx = s.nextTx
}

// MemoryUoW is a UnitOfWork over a MemoryStore. Do snapshots the store and
// restores it when the callback fails.
type MemoryUoW struct {
	Store *MemoryStore
}

// NewMemoryUoW creates a UnitOfWork over a fresh store.
func NewMemoryUoW() *MemoryUoW {
	return &MemoryUoW{Store: NewMemoryStore()}
}

// Do implements repository.UnitOfWork.
func (u *MemoryUoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	u.Store.mu.Lock()
	snap := u.Store.snapshot()
	u.Store.mu.Unlock()
	if err := fn(u); err != nil {
		u.Store.mu.Lock()
		u.Store.restore(snap)
		u.Store.mu.Unlock()
		return err
	}
	return nil
}

// AccountRepository implements repository.UnitOfWork.
func (u *MemoryUoW) AccountRepository() (repository.AccountRepository, error) {
	return &memoryAccountRepo{store: u.Store}, nil
}

// TransactionRepository implements repository.UnitOfWork.
func (u *MemoryUoW) TransactionRepository() (repository.TransactionRepository, error) {
	return &memoryTransactionRepo{store: u.Store}, nil
}

type memoryAccountRepo struct {
	store *MemoryStore
}

func (r *memoryAccountRepo) Create(ctx context.Context, create dto.AccountCreate) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if err := r.store.failing("account.create"); err != nil {
		return 0, err
	}
	r.store.nextAccount++
	number := r.store.nextAccount
	r.store.accounts[number] = &dto.AccountRead{
		Number:       number,
		Holder:       create.Holder,
		Profession:   create.Profession,
		Address:      create.Address,
		PhoneNumber:  create.PhoneNumber,
		PasswordHash: create.PasswordHash,
		Balance:      create.Balance,
		CreatedAt:    time.Now(),
	}
	return number, nil
}

func (r *memoryAccountRepo) Get(ctx context.Context, number int64) (*dto.AccountRead, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if err := r.store.failing("account.get"); err != nil {
		return nil, err
	}
	a, ok := r.store.accounts[number]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *memoryAccountRepo) UpdateBalance(ctx context.Context, number int64, balance decimal.Decimal) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if err := r.store.failing("account.update_balance"); err != nil {
		return err
	}
	a, ok := r.store.accounts[number]
	if !ok {
		return domain.ErrAccountNotFound
	}
	a.Balance = balance
	return nil
}

func (r *memoryAccountRepo) UpdatePassword(ctx context.Context, number int64, passwordHash string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if err := r.store.failing("account.update_password"); err != nil {
		return err
	}
	a, ok := r.store.accounts[number]
	if !ok {
		return domain.ErrAccountNotFound
	}
	a.PasswordHash = passwordHash
	return nil
}

type memoryTransactionRepo struct {
	store *MemoryStore
}

func (r *memoryTransactionRepo) Create(ctx context.Context, create dto.TransactionCreate) (*dto.TransactionRead, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if err := r.store.failing("tx.create"); err != nil {
		return nil, err
	}
	r.store.nextTx++
	read := &dto.TransactionRead{
		ID:            r.store.nextTx,
		AccountNumber: create.AccountNumber,
		Amount:        create.Amount,
		Type:          create.Type,
		Date:          create.Date,
	}
	r.store.transactions = append(r.store.transactions, read)
	cp := *read
	return &cp, nil
}

func (r *memoryTransactionRepo) ListByAccount(ctx context.Context, accountNumber int64) ([]*dto.TransactionRead, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if err := r.store.failing("tx.list"); err != nil {
		return nil, err
	}
	var out []*dto.TransactionRead
	for _, tx := range r.store.transactions {
		if tx.AccountNumber == accountNumber {
			cp := *tx
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
