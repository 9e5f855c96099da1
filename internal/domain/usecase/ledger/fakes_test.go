package ledger

import (
	"context"
	"sync"

	"github.com/campuspoints/points-api/internal/domain/entity"
	errs "github.com/campuspoints/points-api/internal/domain/error"
	"github.com/campuspoints/points-api/internal/domain/port/persistence"
)

// fakeStore is an in-memory unit of work whose Begin takes a global
// lock, mirroring how row locks serialize concurrent deltas against
// the same user. Mutations buffer until Commit.
type fakeStore struct {
	mu       sync.Mutex
	users    map[uint64]*entity.User
	ledger   []*entity.Transaction
	nextTxID uint64

	// entryCreateErr makes every ledger insert fail, for rollback tests
	entryCreateErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: make(map[uint64]*entity.User)}
}

func (s *fakeStore) addUser(u *entity.User) {
	s.users[u.ID] = u
}

type fakeTxKey struct{}

// fakeTx buffers one unit's writes until commit
type fakeTx struct {
	store      *fakeStore
	balances   map[uint64]int64
	newEntries []*entity.Transaction
	done       bool
}

func (s *fakeStore) Begin(ctx context.Context) (context.Context, error) {
	s.mu.Lock()
	tx := &fakeTx{store: s, balances: make(map[uint64]int64)}
	return context.WithValue(ctx, fakeTxKey{}, tx), nil
}

func (s *fakeStore) Commit(ctx context.Context) error {
	tx := ctx.Value(fakeTxKey{}).(*fakeTx)
	if tx.done {
		return nil
	}
	for id, balance := range tx.balances {
		tx.store.users[id].Balance = balance
	}
	for _, entry := range tx.newEntries {
		tx.store.nextTxID++
		entry.ID = tx.store.nextTxID
		tx.store.ledger = append(tx.store.ledger, entry)
	}
	tx.done = true
	s.mu.Unlock()
	return nil
}

func (s *fakeStore) Rollback(ctx context.Context) error {
	tx := ctx.Value(fakeTxKey{}).(*fakeTx)
	if tx.done {
		return nil
	}
	tx.done = true
	s.mu.Unlock()
	return nil
}

func (s *fakeStore) GetUserRepository(ctx context.Context) persistence.UserRepository {
	return &fakeTxUserRepo{tx: ctx.Value(fakeTxKey{}).(*fakeTx)}
}

func (s *fakeStore) GetTransactionRepository(ctx context.Context) persistence.TransactionRepository {
	return &fakeTxLedgerRepo{tx: ctx.Value(fakeTxKey{}).(*fakeTx)}
}

// sumFor adds up the committed ledger for one user
func (s *fakeStore) sumFor(userID uint64) int64 {
	var sum int64
	for _, entry := range s.ledger {
		if entry.UserID == userID {
			sum += entry.Amount
		}
	}
	return sum
}

type fakeTxUserRepo struct {
	tx *fakeTx
}

func (r *fakeTxUserRepo) GetByID(ctx context.Context, id uint64) (*entity.User, error) {
	return r.GetByIDForUpdate(ctx, id)
}

func (r *fakeTxUserRepo) GetByIDForUpdate(_ context.Context, id uint64) (*entity.User, error) {
	u, ok := r.tx.store.users[id]
	if !ok {
		return nil, errs.ErrUserNotFound
	}
	clone := *u
	if balance, ok := r.tx.balances[id]; ok {
		clone.Balance = balance
	}
	return &clone, nil
}

func (r *fakeTxUserRepo) GetByEmail(context.Context, string) (*entity.User, error) {
	return nil, errs.ErrUserNotFound
}

func (r *fakeTxUserRepo) GetByUsername(context.Context, string) (*entity.User, error) {
	return nil, errs.ErrUserNotFound
}

func (r *fakeTxUserRepo) UsernameTaken(context.Context, string) (bool, error) {
	return false, nil
}

func (r *fakeTxUserRepo) Create(context.Context, *entity.User) error {
	return errs.ErrConstraintViolation
}

func (r *fakeTxUserRepo) UpdateBalance(_ context.Context, userID uint64, balance int64) error {
	if _, ok := r.tx.store.users[userID]; !ok {
		return errs.ErrUserNotFound
	}
	r.tx.balances[userID] = balance
	return nil
}

func (r *fakeTxUserRepo) List(context.Context, int, int) ([]*entity.User, error) {
	return nil, nil
}

type fakeTxLedgerRepo struct {
	tx *fakeTx
}

func (r *fakeTxLedgerRepo) Create(_ context.Context, transaction *entity.Transaction) error {
	if err := r.tx.store.entryCreateErr; err != nil {
		return err
	}
	r.tx.newEntries = append(r.tx.newEntries, transaction)
	return nil
}

func (r *fakeTxLedgerRepo) ListByUser(context.Context, uint64, int, int) ([]*entity.Transaction, error) {
	return nil, nil
}

func (r *fakeTxLedgerRepo) List(context.Context, int, int) ([]*entity.Transaction, error) {
	return nil, nil
}

func (r *fakeTxLedgerRepo) SumByUser(_ context.Context, userID uint64) (int64, error) {
	return r.tx.store.sumFor(userID), nil
}
