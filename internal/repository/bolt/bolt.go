// Package bolt implements the preference store on a bbolt key-value file.
//
// Preferences are per-installation presentation state: the dark-mode flag
// (stored as the string "true"/"false") and cropped avatar images as
// data-URI strings keyed by the account's email. They live in their own
// small file, separate from the account database, because they are not
// account data.
package bolt

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/sakif/profile-finder/internal/repository"
)

var (
	prefsBucket   = []byte("prefs")
	avatarsBucket = []byte("avatars")

	darkModeKey = []byte("darkMode")
)

// compile-time check that *Store implements repository.PrefStore
var _ repository.PrefStore = (*Store)(nil)

// Store is a bbolt-backed preference store.
type Store struct {
	db *bbolt.DB
}

// Open opens (or creates) the preference database at path and ensures the
// buckets exist.
func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("bolt: opening preference store: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(prefsBucket); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(avatarsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("bolt: creating buckets: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database file.
func (s *Store) Close() error {
	return s.db.Close()
}

// DarkMode reports whether dark mode is enabled. Absent or malformed values
// read as false.
func (s *Store) DarkMode(ctx context.Context) (bool, error) {
	var on bool
	err := s.db.View(func(tx *bbolt.Tx) error {
		val := tx.Bucket(prefsBucket).Get(darkModeKey)
		on = string(val) == "true"
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("bolt: reading dark mode: %w", err)
	}
	return on, nil
}

// SetDarkMode stores the dark-mode flag as "true"/"false".
func (s *Store) SetDarkMode(ctx context.Context, on bool) error {
	val := "false"
	if on {
		val = "true"
	}
	err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(prefsBucket).Put(darkModeKey, []byte(val))
	})
	if err != nil {
		return fmt.Errorf("bolt: writing dark mode: %w", err)
	}
	return nil
}

// Avatar returns the stored data-URI for the given email, or "" if none is
// stored.
func (s *Store) Avatar(ctx context.Context, email string) (string, error) {
	var dataURI string
	err := s.db.View(func(tx *bbolt.Tx) error {
		dataURI = string(tx.Bucket(avatarsBucket).Get([]byte(email)))
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("bolt: reading avatar for %s: %w", email, err)
	}
	return dataURI, nil
}

// SetAvatar stores the cropped avatar data-URI for the given email,
// overwriting any previous one.
func (s *Store) SetAvatar(ctx context.Context, email, dataURI string) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(avatarsBucket).Put([]byte(email), []byte(dataURI))
	})
	if err != nil {
		return fmt.Errorf("bolt: writing avatar for %s: %w", email, err)
	}
	return nil
}
