package repository

import (
	"context"

	"github.com/sakif/profile-finder/internal/model"
)

// AccountRepository is the storage interface for local accounts and their
// favorites. The sqlite package provides the production implementation;
// tests use in-memory fakes.
type AccountRepository interface {
	// Create inserts a new account. Returns apperror.ErrConflict if the
	// username or email already exists (exact, case-sensitive match).
	Create(ctx context.Context, account *model.Account) error

	// GetByID returns the account with the given internal ID, favorites
	// included. Returns apperror.ErrNotFound if absent.
	GetByID(ctx context.Context, id string) (*model.Account, error)

	// GetByUsername returns the account with the given username (exact,
	// case-sensitive). Returns apperror.ErrNotFound if absent.
	GetByUsername(ctx context.Context, username string) (*model.Account, error)

	// GetByIdentifier returns the account whose username OR email equals
	// identifier exactly (case-sensitive). Returns apperror.ErrNotFound
	// if no account matches.
	GetByIdentifier(ctx context.Context, identifier string) (*model.Account, error)

	// AddFavorite appends login to the account's favorites. Adding a login
	// that is already present is a no-op.
	AddFavorite(ctx context.Context, accountID, login string) error

	// RemoveFavorite removes login from the account's favorites. Removing a
	// login that is not present is a no-op.
	RemoveFavorite(ctx context.Context, accountID, login string) error

	// Favorites returns the account's favorites in insertion order.
	Favorites(ctx context.Context, accountID string) ([]string, error)
}

// PrefStore holds presentation state: the dark-mode flag and cropped
// avatar images keyed by the account's email.
type PrefStore interface {
	DarkMode(ctx context.Context) (bool, error)
	SetDarkMode(ctx context.Context, on bool) error

	// Avatar returns the stored data-URI for the given email, or "" if none.
	Avatar(ctx context.Context, email string) (string, error)
	SetAvatar(ctx context.Context, email, dataURI string) error
}
