package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/sakif/profile-finder/internal/apperror"
	"github.com/sakif/profile-finder/internal/model"
	"github.com/sakif/profile-finder/internal/repository"
)

// compile-time check that *DB implements repository.AccountRepository
var _ repository.AccountRepository = (*DB)(nil)

// Create inserts a new account. Duplicate checks are exact and
// case-sensitive: the application compares identifiers with plain string
// equality, so "Alice" and "alice" are distinct accounts.
//
// We check for existing username/email up front instead of relying on the
// UNIQUE constraints so the caller gets the domain's duplicate-account error
// rather than a driver-specific constraint error.
func (db *DB) Create(ctx context.Context, account *model.Account) error {
	var n int
	err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM accounts WHERE username = ? OR email = ?`,
		account.Username, account.Email,
	).Scan(&n)
	if err != nil {
		return fmt.Errorf("sqlite: checking for existing account: %w", err)
	}
	if n > 0 {
		return apperror.Conflict("Username or email already exists")
	}

	now := time.Now()
	account.ID = xid.New().String()
	account.CreatedAt = now
	account.UpdatedAt = now
	if account.Favorites == nil {
		account.Favorites = []string{}
	}

	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO accounts (id, username, email, password_hash, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		account.ID,
		account.Username,
		account.Email,
		account.PasswordHash,
		account.CreatedAt,
		account.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting account %q: %w", account.Username, err)
	}

	return nil
}

// GetByID retrieves an account (favorites included) by its internal ID.
// Returns apperror.ErrNotFound if no account exists with that ID.
func (db *DB) GetByID(ctx context.Context, id string) (*model.Account, error) {
	return db.getAccount(ctx, `WHERE id = ?`, id)
}

// GetByUsername retrieves an account (favorites included) by username.
func (db *DB) GetByUsername(ctx context.Context, username string) (*model.Account, error) {
	return db.getAccount(ctx, `WHERE username = ?`, username)
}

// GetByIdentifier retrieves the account whose username OR email equals the
// identifier exactly. This backs the login flow, where the single form field
// accepts either one.
func (db *DB) GetByIdentifier(ctx context.Context, identifier string) (*model.Account, error) {
	return db.getAccount(ctx, `WHERE username = ? OR email = ?`, identifier, identifier)
}

func (db *DB) getAccount(ctx context.Context, where string, args ...any) (*model.Account, error) {
	var a model.Account

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, username, email, password_hash, created_at, updated_at
		 FROM accounts `+where,
		args...,
	).Scan(
		&a.ID,
		&a.Username,
		&a.Email,
		&a.PasswordHash,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFoundMsg("account not found")
		}
		return nil, fmt.Errorf("sqlite: getting account: %w", err)
	}

	favorites, err := db.Favorites(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	a.Favorites = favorites

	return &a, nil
}

// AddFavorite appends login to the account's favorites list. The login goes
// to the end of the list; adding one that is already present is a no-op
// (INSERT OR IGNORE against the UNIQUE(account_id, login) constraint).
func (db *DB) AddFavorite(ctx context.Context, accountID, login string) error {
	_, err := db.conn.ExecContext(ctx,
		`INSERT OR IGNORE INTO favorites (account_id, login, position)
		 VALUES (?, ?, (SELECT COALESCE(MAX(position) + 1, 0) FROM favorites WHERE account_id = ?))`,
		accountID, login, accountID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: adding favorite %q for account %s: %w", login, accountID, err)
	}
	return db.touch(ctx, accountID)
}

// RemoveFavorite removes login from the account's favorites list. Removing a
// login that is not present is a no-op.
func (db *DB) RemoveFavorite(ctx context.Context, accountID, login string) error {
	_, err := db.conn.ExecContext(ctx,
		`DELETE FROM favorites WHERE account_id = ? AND login = ?`,
		accountID, login,
	)
	if err != nil {
		return fmt.Errorf("sqlite: removing favorite %q for account %s: %w", login, accountID, err)
	}
	return db.touch(ctx, accountID)
}

// Favorites returns the account's favorites in insertion order.
// An account with no favorites gets an empty slice, never nil — the JSON
// views render it as [] rather than null.
func (db *DB) Favorites(ctx context.Context, accountID string) ([]string, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT login FROM favorites WHERE account_id = ? ORDER BY position`,
		accountID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing favorites for account %s: %w", accountID, err)
	}
	defer rows.Close()

	favorites := []string{}
	for rows.Next() {
		var login string
		if err := rows.Scan(&login); err != nil {
			return nil, fmt.Errorf("sqlite: scanning favorite: %w", err)
		}
		favorites = append(favorites, login)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating favorites: %w", err)
	}

	return favorites, nil
}

// touch bumps the account's updated_at after a favorites mutation.
func (db *DB) touch(ctx context.Context, accountID string) error {
	_, err := db.conn.ExecContext(ctx,
		`UPDATE accounts SET updated_at = ? WHERE id = ?`,
		time.Now(), accountID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: touching account %s: %w", accountID, err)
	}
	return nil
}
