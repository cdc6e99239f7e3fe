package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	domainErrors "github.com/omarsel/flashmart/internal/domain/errors"
	"github.com/omarsel/flashmart/internal/domain/model"
	"github.com/omarsel/flashmart/internal/domain/repository"
	pkgAuth "github.com/omarsel/flashmart/internal/pkg/auth"
)

// AuthUseCase handles identity lifecycle, token management, and the admin
// role grant lookup.
type AuthUseCase struct {
	users  repository.UserRepository
	hasher pkgAuth.PasswordHasher
	tokens pkgAuth.Strategy
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(users repository.UserRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy) *AuthUseCase {
	return &AuthUseCase{users: users, hasher: hasher, tokens: strategy}
}

// Register creates a credentialed user and returns an auth token. It never
// grants the admin role.
func (u *AuthUseCase) Register(ctx context.Context, email, password string) (*model.User, string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, "", err
	}

	usr, err := u.users.Create(ctx, email, hash)
	if err != nil {
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			return nil, "", domainErrors.ErrAlreadyExists
		}
		return nil, "", err
	}

	token, err := u.tokens.IssueToken(usr.ID)
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// Authenticate validates credentials and returns an auth token.
func (u *AuthUseCase) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	usr, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if usr.PasswordHash == nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}
	if err := u.hasher.Compare(*usr.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	token, err := u.tokens.IssueToken(usr.ID)
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// SignInAnonymously creates a throwaway identity so every order can be
// attributed to some user, and returns its auth token.
func (u *AuthUseCase) SignInAnonymously(ctx context.Context) (*model.User, string, error) {
	usr, err := u.users.CreateAnonymous(ctx)
	if err != nil {
		return nil, "", err
	}

	token, err := u.tokens.IssueToken(usr.ID)
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// ParseToken extracts user ID from provided token.
func (u *AuthUseCase) ParseToken(token string) (int64, error) {
	if token == "" {
		return 0, pkgAuth.ErrInvalidToken
	}
	return u.tokens.ParseToken(token)
}

// IsAdmin reports whether the identity carries the admin role grant.
func (u *AuthUseCase) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	return u.users.IsAdmin(ctx, userID)
}

// GetByID fetches user by identifier.
func (u *AuthUseCase) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return u.users.GetByID(ctx, id)
}

// PurgeAnonymous deletes anonymous identities created before the cutoff
// that own no orders. Returns the number of removed accounts.
func (u *AuthUseCase) PurgeAnonymous(ctx context.Context, olderThan time.Time) (int64, error) {
	return u.users.DeleteStaleAnonymous(ctx, olderThan)
}
