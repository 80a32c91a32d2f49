package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/civicspark/civic-site/internal/admins/domain"
)

// AdminStore is the persistence the auth service needs for admins.
type AdminStore interface {
	Create(ctx context.Context, admin *domain.Admin) error
	GetByEmail(ctx context.Context, email string) (*domain.Admin, error)
	GetByID(ctx context.Context, id string) (*domain.Admin, error)
}

// TokenStore issues and resolves opaque credential tokens.
type TokenStore interface {
	Issue(ctx context.Context, adminID string) (string, error)
	Resolve(ctx context.Context, token string) (string, error)
	Revoke(ctx context.Context, token string) error
}

type AuthService struct {
	admins AdminStore
	tokens TokenStore
}

func NewAuthService(admins AdminStore, tokens TokenStore) *AuthService {
	return &AuthService{
		admins: admins,
		tokens: tokens,
	}
}

// Register creates an admin account and signs it in.
func (s *AuthService) Register(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	admin, err := s.create(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	return s.issue(ctx, admin)
}

// Login checks the credentials and issues a fresh token.
func (s *AuthService) Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, &domain.ValidationError{Field: "email", Message: "The email field is required."}
	}
	if req.Password == "" {
		return nil, &domain.ValidationError{Field: "password", Message: "The password field is required."}
	}

	admin, err := s.admins.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrAdminNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !domain.CheckPasswordHash(req.Password, admin.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}
	return s.issue(ctx, admin)
}

// Logout revokes the token. Revoking an unknown token is not an error.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.tokens.Revoke(ctx, token)
}

// Authenticate resolves a bearer token to its admin.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.Admin, error) {
	if token == "" {
		return nil, domain.ErrTokenNotFound
	}
	adminID, err := s.tokens.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}
	admin, err := s.admins.GetByID(ctx, adminID)
	if errors.Is(err, domain.ErrAdminNotFound) {
		// account vanished under a live token
		return nil, domain.ErrTokenNotFound
	}
	return admin, err
}

// SeedAdmin makes sure an admin with the given email exists. An existing
// account is left untouched. It returns true when an account was created.
func (s *AuthService) SeedAdmin(ctx context.Context, name, email, password string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return false, nil
	}

	_, err := s.admins.GetByEmail(ctx, email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, domain.ErrAdminNotFound) {
		return false, err
	}

	if _, err := s.create(ctx, name, email, password); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *AuthService) create(ctx context.Context, name, email, password string) (*domain.Admin, error) {
	hash, err := domain.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	admin := &domain.Admin{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.admins.Create(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}

func (s *AuthService) issue(ctx context.Context, admin *domain.Admin) (*domain.AuthResponse, error) {
	token, err := s.tokens.Issue(ctx, admin.ID)
	if err != nil {
		return nil, err
	}
	return &domain.AuthResponse{Token: token, Admin: admin}, nil
}
