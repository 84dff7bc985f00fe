package integration

import (
	"context"
	"fmt"
	"sync"

	"github.com/medinasp/easypicpaytest/internal/core/domain"
	"github.com/medinasp/easypicpaytest/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

// --- In-Memory Wallet Repo ---

type inMemoryWalletRepo struct {
	mu      sync.RWMutex
	wallets map[uuid.UUID]*domain.Wallet
}

func newInMemoryWalletRepo() *inMemoryWalletRepo {
	return &inMemoryWalletRepo{wallets: make(map[uuid.UUID]*domain.Wallet)}
}

func (r *inMemoryWalletRepo) Create(ctx context.Context, w *domain.Wallet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.wallets {
		if existing.Email == w.Email || existing.TaxDocument == w.TaxDocument {
			return ports.ErrConflict
		}
	}
	cp := *w
	r.wallets[w.ID] = &cp
	return nil
}

func (r *inMemoryWalletRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.wallets[id]
	if !ok {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

func (r *inMemoryWalletRepo) GetByEmail(ctx context.Context, email string) (*domain.Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, w := range r.wallets {
		if w.Email == email {
			cp := *w
			return &cp, nil
		}
	}
	return nil, nil
}

// GetByIDForUpdate relies on the serializing transactor for isolation: only
// one transaction runs at a time, so a plain read stands in for FOR UPDATE.
func (r *inMemoryWalletRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Wallet, error) {
	return r.GetByID(ctx, id)
}

func (r *inMemoryWalletRepo) UpdateBalance(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, balance decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.wallets[walletID]
	if !ok {
		return fmt.Errorf("wallet not found")
	}
	w.Balance = balance
	return nil
}

func (r *inMemoryWalletRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.wallets[id]
	return ok, nil
}

func (r *inMemoryWalletRepo) ExistsByIdentity(ctx context.Context, email, taxDocument string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, w := range r.wallets {
		if w.Email == email || w.TaxDocument == taxDocument {
			return true, nil
		}
	}
	return false, nil
}

// --- In-Memory Transaction Repo ---

type inMemoryTransactionRepo struct {
	mu           sync.RWMutex
	wallets      *inMemoryWalletRepo
	transactions map[uuid.UUID]*domain.Transaction
}

func newInMemoryTransactionRepo(wallets *inMemoryWalletRepo) *inMemoryTransactionRepo {
	return &inMemoryTransactionRepo{
		wallets:      wallets,
		transactions: make(map[uuid.UUID]*domain.Transaction),
	}
}

func (r *inMemoryTransactionRepo) Create(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *t
	r.transactions[t.ID] = &cp
	return nil
}

func (r *inMemoryTransactionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.transactions[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *inMemoryTransactionRepo) GetDetailByID(ctx context.Context, id uuid.UUID) (*ports.TransactionDetail, error) {
	txn, err := r.GetByID(ctx, id)
	if err != nil || txn == nil {
		return nil, err
	}
	payer, err := r.wallets.GetByID(ctx, txn.PayerID)
	if err != nil {
		return nil, err
	}
	payee, err := r.wallets.GetByID(ctx, txn.PayeeID)
	if err != nil {
		return nil, err
	}
	return &ports.TransactionDetail{Transaction: txn, Payer: payer, Payee: payee}, nil
}

func (r *inMemoryTransactionRepo) SaveOutcome(ctx context.Context, t *domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.transactions[t.ID]
	if !ok || stored.Status != domain.TransactionStatusPending {
		return ports.ErrNotPending
	}
	stored.Status = t.Status
	stored.AuthorizationCode = t.AuthorizationCode
	stored.FailureReason = t.FailureReason
	stored.UpdatedAt = t.UpdatedAt
	return nil
}

func (r *inMemoryTransactionRepo) MarkNotificationSent(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.transactions[id]
	if !ok {
		return fmt.Errorf("transaction not found")
	}
	stored.MarkNotificationAsSent()
	return nil
}

// --- Serializing Transactor ---

// serialTransactor runs transactions one at a time: Begin takes a global
// lock that Commit or Rollback releases. This gives the in-memory repos the
// same serialization the row locks provide against PostgreSQL, so the
// concurrency tests assert exact outcomes.
type serialTransactor struct {
	mu sync.Mutex
}

func newSerialTransactor() *serialTransactor {
	return &serialTransactor{}
}

func (t *serialTransactor) Begin(ctx context.Context) (pgx.Tx, error) {
	t.mu.Lock()
	return &serialTx{release: &t.mu}, nil
}

// serialTx is a pgx.Tx whose only job is releasing the transactor lock once.
type serialTx struct {
	release *sync.Mutex
	done    sync.Once
}

func (t *serialTx) finish() {
	t.done.Do(func() { t.release.Unlock() })
}

func (t *serialTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }
func (t *serialTx) Commit(ctx context.Context) error          { t.finish(); return nil }
func (t *serialTx) Rollback(ctx context.Context) error        { t.finish(); return nil }
func (t *serialTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *serialTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *serialTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *serialTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *serialTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag(""), nil
}
func (t *serialTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *serialTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}
func (t *serialTx) Conn() *pgx.Conn { return nil }
