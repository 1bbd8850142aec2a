package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/sakif/profile-finder/internal/apperror"
	"github.com/sakif/profile-finder/internal/auth"
	"github.com/sakif/profile-finder/internal/model"
)

// fakeAccountRepo is an in-memory implementation of
// repository.AccountRepository. A fake (not a mock framework) keeps these
// tests easy to read.
type fakeAccountRepo struct {
	accounts map[string]*model.Account // keyed by internal ID
	nextID   int

	// set to a non-nil error to simulate a database failure
	createErr error
	getErr    error
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{
		accounts: make(map[string]*model.Account),
		nextID:   1,
	}
}

func (f *fakeAccountRepo) Create(ctx context.Context, account *model.Account) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.accounts {
		if existing.Username == account.Username || existing.Email == account.Email {
			return apperror.Conflict("Username or email already exists")
		}
	}
	account.ID = fmt.Sprintf("acct-%d", f.nextID)
	f.nextID++
	account.CreatedAt = time.Now()
	account.UpdatedAt = account.CreatedAt
	copied := *account
	f.accounts[account.ID] = &copied
	return nil
}

func (f *fakeAccountRepo) GetByID(ctx context.Context, id string) (*model.Account, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	a, ok := f.accounts[id]
	if !ok {
		return nil, apperror.NotFoundMsg("account not found")
	}
	return a, nil
}

func (f *fakeAccountRepo) GetByUsername(ctx context.Context, username string) (*model.Account, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, a := range f.accounts {
		if a.Username == username {
			return a, nil
		}
	}
	return nil, apperror.NotFoundMsg("account not found")
}

func (f *fakeAccountRepo) GetByIdentifier(ctx context.Context, identifier string) (*model.Account, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, a := range f.accounts {
		if a.Username == identifier || a.Email == identifier {
			return a, nil
		}
	}
	return nil, apperror.NotFoundMsg("account not found")
}

func (f *fakeAccountRepo) AddFavorite(ctx context.Context, accountID, login string) error {
	a, ok := f.accounts[accountID]
	if !ok {
		return apperror.NotFoundMsg("account not found")
	}
	for _, existing := range a.Favorites {
		if existing == login {
			return nil
		}
	}
	a.Favorites = append(a.Favorites, login)
	return nil
}

func (f *fakeAccountRepo) RemoveFavorite(ctx context.Context, accountID, login string) error {
	a, ok := f.accounts[accountID]
	if !ok {
		return apperror.NotFoundMsg("account not found")
	}
	kept := a.Favorites[:0]
	for _, existing := range a.Favorites {
		if existing != login {
			kept = append(kept, existing)
		}
	}
	a.Favorites = kept
	return nil
}

func (f *fakeAccountRepo) Favorites(ctx context.Context, accountID string) ([]string, error) {
	a, ok := f.accounts[accountID]
	if !ok {
		return nil, apperror.NotFoundMsg("account not found")
	}
	out := make([]string, len(a.Favorites))
	copy(out, a.Favorites)
	return out, nil
}

// fakeProfileFetcher serves canned profiles; logins in failing return an
// error.
type fakeProfileFetcher struct {
	profiles map[string]*model.Profile
	failing  map[string]bool
}

func (f *fakeProfileFetcher) User(ctx context.Context, username string) (*model.Profile, error) {
	if f.failing[username] {
		return nil, apperror.Upstream("Failed to fetch profile. Please try again later.")
	}
	if p, ok := f.profiles[username]; ok {
		return p, nil
	}
	return nil, apperror.NotFoundMsg(fmt.Sprintf("User %s not found", username))
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestAuthService(t *testing.T, repo *fakeAccountRepo) *AuthService {
	t.Helper()

	ts, err := auth.NewTokenService("test-secret-at-least-16-chars!!")
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}

	// Cost 4 is bcrypt minimum — makes tests fast
	ps := auth.NewPasswordServiceForTest(4)

	return NewAuthService(repo, ts, ps, testLogger())
}
