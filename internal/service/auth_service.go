package service

import (
	"context"
	"errors"

	"taskboard/internal/domain"
	"taskboard/internal/repository"
)

type AuthService struct {
	users   repository.UserStore
	revoked *RevocationList
}

func NewAuthService(users repository.UserStore, revoked *RevocationList) *AuthService {
	return &AuthService{users: users, revoked: revoked}
}

// Login matches email and plaintext password exactly and issues a token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	if email == "" || password == "" {
		return nil, "", domain.Invalid("Email and password required")
	}

	u, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", err
	}
	if u.Password != password {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, _, err := GenerateJWT(u)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Authenticate resolves a bearer token to the current stored user. Tokens
// of deleted users and revoked tokens are rejected.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, *Claims, error) {
	claims, err := ParseJWT(token)
	if err != nil {
		return nil, nil, domain.ErrUnauthorized
	}
	if s.revoked.IsRevoked(ctx, claims.ID) {
		return nil, nil, domain.ErrUnauthorized
	}

	u, err := s.users.GetUser(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, nil, domain.ErrUnauthorized
		}
		return nil, nil, err
	}
	return u, claims, nil
}

func (s *AuthService) Logout(ctx context.Context, claims *Claims) error {
	if claims == nil || claims.ExpiresAt == nil {
		return nil
	}
	return s.revoked.Revoke(ctx, claims.ID, claims.ExpiresAt.Time)
}
