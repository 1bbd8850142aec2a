// Package service holds the business logic between the HTTP handlers and
// the repositories:
//
//	AuthHandler (HTTP) → AuthService (rules) → AccountRepository (DB)
//	                   ↘ TokenService (JWT) / PasswordService (bcrypt)
//
// Services never touch HTTP concerns (cookies, status codes); they return
// apperror values the handlers translate.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/profile-finder/internal/apperror"
	"github.com/sakif/profile-finder/internal/auth"
	"github.com/sakif/profile-finder/internal/model"
	"github.com/sakif/profile-finder/internal/repository"
)

// minPasswordLength applies at signup only. Existing credentials are always
// checked as-is at login.
const minPasswordLength = 6

// msgInvalidCredentials is surfaced for any login failure — unknown
// identifier or wrong password — so a caller can't probe which accounts
// exist.
const msgInvalidCredentials = "Invalid credentials"

// AuthService implements signup, login, and session lookup.
type AuthService struct {
	accounts  repository.AccountRepository
	tokens    *auth.TokenService
	passwords *auth.PasswordService
	logger    *slog.Logger
}

func NewAuthService(
	accounts repository.AccountRepository,
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		accounts:  accounts,
		tokens:    tokens,
		passwords: passwords,
		logger:    logger,
	}
}

// AuthResult bundles the account and its issued JWT so the handler can set
// the cookie and respond in one step.
type AuthResult struct {
	Account *model.Account
	Token   string
}

// Signup validates the form, hashes the password, and creates the account.
// Username and email are trimmed before validation and storage; beyond that
// they are kept exactly as entered (uniqueness is case-sensitive).
//
// Validation failures come back as apperror.ErrValidation naming the field;
// a duplicate username or email comes back as apperror.ErrConflict.
func (s *AuthService) Signup(ctx context.Context, username, email, password string) (*AuthResult, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if username == "" {
		return nil, apperror.ValidationFailed("username", "Username is required")
	}
	if email == "" {
		return nil, apperror.ValidationFailed("email", "Email is required")
	}
	if password == "" {
		return nil, apperror.ValidationFailed("password", "Password is required")
	}
	if len(password) < minPasswordLength {
		return nil, apperror.ValidationFailed("password",
			fmt.Sprintf("Password must be at least %d characters", minPasswordLength))
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("service/auth: hashing password: %w", err)
	}

	account := &model.Account{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Favorites:    []string{},
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, err
	}

	s.logger.Info("account created",
		slog.String("accountID", account.ID),
		slog.String("username", account.Username),
	)

	token, err := s.tokens.Generate(account.ID)
	if err != nil {
		return nil, fmt.Errorf("service/auth: generating token for account %s: %w", account.ID, err)
	}

	return &AuthResult{Account: account, Token: token}, nil
}

// Login authenticates by username or email plus password. Every failure
// mode — blank input, unknown identifier, wrong password — returns the same
// apperror.ErrUnauthorized with msgInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*AuthResult, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, apperror.Unauthorized(msgInvalidCredentials)
	}

	account, err := s.accounts.GetByIdentifier(ctx, identifier)
	if err != nil {
		return nil, apperror.Unauthorized(msgInvalidCredentials)
	}

	if err := s.passwords.Verify(account.PasswordHash, password); err != nil {
		return nil, apperror.Unauthorized(msgInvalidCredentials)
	}

	s.logger.Info("login",
		slog.String("accountID", account.ID),
		slog.String("username", account.Username),
	)

	token, err := s.tokens.Generate(account.ID)
	if err != nil {
		return nil, fmt.Errorf("service/auth: generating token for account %s: %w", account.ID, err)
	}

	return &AuthResult{Account: account, Token: token}, nil
}

// CurrentUser returns the session projection for an authenticated account.
// It is re-derived from the store on every call, so the favorites list is
// always current.
func (s *AuthService) CurrentUser(ctx context.Context, accountID string) (*model.Session, error) {
	if accountID == "" {
		return nil, apperror.Unauthorized("Not logged in")
	}

	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return model.SessionOf(account), nil
}

// Account returns the full account row for an authenticated account ID.
// Used where handlers need the email (avatar storage key), not just the
// session projection.
func (s *AuthService) Account(ctx context.Context, accountID string) (*model.Account, error) {
	if accountID == "" {
		return nil, apperror.Unauthorized("Not logged in")
	}
	return s.accounts.GetByID(ctx, accountID)
}
