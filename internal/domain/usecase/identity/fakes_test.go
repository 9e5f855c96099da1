package identity

import (
	"context"
	"sync"

	"github.com/campuspoints/points-api/internal/domain/entity"
	errs "github.com/campuspoints/points-api/internal/domain/error"
)

// fakeUserRepo is an in-memory repository with real uniqueness
// semantics, used where mock expectations would obscure the behavior
// under test
type fakeUserRepo struct {
	mu      sync.Mutex
	nextID  uint64
	byID    map[uint64]*entity.User
	byEmail map[string]*entity.User
	byName  map[string]*entity.User

	// createErrs is consumed one error per Create call, letting tests
	// inject constraint failures ahead of the stored state
	createErrs []error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    make(map[uint64]*entity.User),
		byEmail: make(map[string]*entity.User),
		byName:  make(map[string]*entity.User),
	}
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uint64) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.byID[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, errs.ErrUserNotFound
}

func (f *fakeUserRepo) GetByIDForUpdate(ctx context.Context, id uint64) (*entity.User, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.byEmail[email]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, errs.ErrUserNotFound
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.byName[username]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, errs.ErrUserNotFound
}

func (f *fakeUserRepo) UsernameTaken(_ context.Context, username string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.byName[username]
	return ok, nil
}

func (f *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.createErrs) > 0 {
		err := f.createErrs[0]
		f.createErrs = f.createErrs[1:]
		if err != nil {
			return err
		}
	}

	if _, ok := f.byEmail[user.Email]; ok {
		return errs.ErrEmailTaken
	}
	if _, ok := f.byName[user.Username]; ok {
		return errs.ErrUsernameTaken
	}

	f.nextID++
	user.ID = f.nextID
	clone := *user
	f.byID[user.ID] = &clone
	f.byEmail[user.Email] = &clone
	f.byName[user.Username] = &clone
	return nil
}

func (f *fakeUserRepo) UpdateBalance(_ context.Context, userID uint64, balance int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[userID]
	if !ok {
		return errs.ErrUserNotFound
	}
	u.Balance = balance
	return nil
}

func (f *fakeUserRepo) List(_ context.Context, offset, limit int) ([]*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*entity.User, 0, len(f.byID))
	for id := uint64(1); id <= f.nextID; id++ {
		if u, ok := f.byID[id]; ok {
			clone := *u
			out = append(out, &clone)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	end := offset + limit
	if end > len(out) {
		end = len(out)
	}
	return out[offset:end], nil
}

// seed inserts a user directly, bypassing injected errors
func (f *fakeUserRepo) seed(user *entity.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	user.ID = f.nextID
	clone := *user
	f.byID[user.ID] = &clone
	f.byEmail[user.Email] = &clone
	f.byName[user.Username] = &clone
}
