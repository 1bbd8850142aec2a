package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/sakif/profile-finder/internal/apperror"
	"github.com/sakif/profile-finder/internal/model"
	"github.com/sakif/profile-finder/internal/repository"
)

// ProfileFetcher is the single GitHub lookup favorites hydration needs.
// *github.Client satisfies it.
type ProfileFetcher interface {
	User(ctx context.Context, username string) (*model.Profile, error)
}

// FavoritesService manages an account's favorited GitHub logins: an ordered,
// duplicate-free list persisted with the account.
type FavoritesService struct {
	accounts repository.AccountRepository
	github   ProfileFetcher
	logger   *slog.Logger
}

func NewFavoritesService(
	accounts repository.AccountRepository,
	github ProfileFetcher,
	logger *slog.Logger,
) *FavoritesService {
	return &FavoritesService{
		accounts: accounts,
		github:   github,
		logger:   logger,
	}
}

// Add appends login to the account's favorites. Adding a login that is
// already favorited is a no-op, so the operation is idempotent.
func (s *FavoritesService) Add(ctx context.Context, accountID, login string) ([]string, error) {
	login = strings.TrimSpace(login)
	if login == "" {
		return nil, apperror.ValidationFailed("login", "Login is required")
	}

	if err := s.accounts.AddFavorite(ctx, accountID, login); err != nil {
		return nil, err
	}
	return s.accounts.Favorites(ctx, accountID)
}

// Remove drops login from the account's favorites. Removing a login that is
// not favorited is a no-op.
func (s *FavoritesService) Remove(ctx context.Context, accountID, login string) ([]string, error) {
	login = strings.TrimSpace(login)
	if login == "" {
		return nil, apperror.ValidationFailed("login", "Login is required")
	}

	if err := s.accounts.RemoveFavorite(ctx, accountID, login); err != nil {
		return nil, err
	}
	return s.accounts.Favorites(ctx, accountID)
}

// Toggle adds the login if absent and removes it if present, returning the
// updated list and whether the login is now favorited. Backs the star button
// on the profile views.
func (s *FavoritesService) Toggle(ctx context.Context, accountID, login string) ([]string, bool, error) {
	login = strings.TrimSpace(login)
	if login == "" {
		return nil, false, apperror.ValidationFailed("login", "Login is required")
	}

	favorited, err := s.IsFavorite(ctx, accountID, login)
	if err != nil {
		return nil, false, err
	}

	var updated []string
	if favorited {
		updated, err = s.Remove(ctx, accountID, login)
	} else {
		updated, err = s.Add(ctx, accountID, login)
	}
	if err != nil {
		return nil, false, err
	}
	return updated, !favorited, nil
}

// Favorites returns the account's favorited logins in insertion order.
func (s *FavoritesService) Favorites(ctx context.Context, accountID string) ([]string, error) {
	return s.accounts.Favorites(ctx, accountID)
}

// IsFavorite reports whether login is in the account's favorites.
func (s *FavoritesService) IsFavorite(ctx context.Context, accountID, login string) (bool, error) {
	favorites, err := s.accounts.Favorites(ctx, accountID)
	if err != nil {
		return false, err
	}
	for _, f := range favorites {
		if f == login {
			return true, nil
		}
	}
	return false, nil
}

// Profiles hydrates the account's favorites into full GitHub profiles for
// the favorites view. A login whose fetch fails (deleted account, rate
// limit on one request) is skipped rather than failing the whole view; the
// skip is logged so the gap is explainable.
func (s *FavoritesService) Profiles(ctx context.Context, accountID string) ([]model.Profile, error) {
	favorites, err := s.accounts.Favorites(ctx, accountID)
	if err != nil {
		return nil, err
	}

	profiles := make([]model.Profile, 0, len(favorites))
	for _, login := range favorites {
		profile, err := s.github.User(ctx, login)
		if err != nil {
			s.logger.Warn("skipping favorite that failed to load",
				slog.String("login", login),
				slog.String("error", err.Error()),
			)
			continue
		}
		profiles = append(profiles, *profile)
	}
	return profiles, nil
}
