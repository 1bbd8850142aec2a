// Package model defines the data structures used throughout the application.
package model

import "time"

// Account represents a registered local account.
//
// Accounts are the only thing this application persists durably: a credential
// pair plus an ordered list of favorited GitHub logins. Username and email
// are each unique across the store (enforced by the repository at signup).
//
// PasswordHash holds a bcrypt hash, never the plaintext. It is tagged json:"-"
// so an Account can never leak its credential through an API response.
type Account struct {
	ID           string    `json:"id"        db:"id"`
	Username     string    `json:"username"  db:"username"`
	Email        string    `json:"email"     db:"email"`
	PasswordHash string    `json:"-"         db:"password_hash"`
	Favorites    []string  `json:"favorites" db:"-"` // ordered GitHub logins, no duplicates
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// Session is the projection of the current account exposed to clients.
// It mirrors the account minus the credential, and is derived from the
// account row on every request, so its favorites always match the store.
type Session struct {
	Username  string   `json:"username"`
	Email     string   `json:"email"`
	Favorites []string `json:"favorites"`
}

// SessionOf builds the client-facing projection of an account.
func SessionOf(a *Account) *Session {
	favorites := a.Favorites
	if favorites == nil {
		favorites = []string{}
	}
	return &Session{
		Username:  a.Username,
		Email:     a.Email,
		Favorites: favorites,
	}
}
