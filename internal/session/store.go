// Package session tracks the signed-in admin for one page load.
package session

import (
	"context"
	"sync"

	"github.com/civicspark/civic-site/internal/admins/domain"
	"github.com/civicspark/civic-site/internal/logging"
)

type State int

const (
	StateUnknown State = iota
	StateAuthenticated
	StateAnonymous
)

func (s State) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// Remote is the part of the API client the session needs.
type Remote interface {
	HasToken() bool
	ClearToken()
	Login(ctx context.Context, email, password string) (*domain.Admin, error)
	Register(ctx context.Context, req domain.RegisterRequest) (*domain.Admin, error)
	Logout(ctx context.Context) error
	CurrentAdmin(ctx context.Context) (*domain.Admin, error)
}

// Store owns the current principal. The token itself lives in the client.
type Store struct {
	remote Remote
	check  sync.Once

	mu        sync.RWMutex
	state     State
	principal *domain.Admin
}

func New(remote Remote) *Store {
	return &Store{remote: remote, state: StateUnknown}
}

// CheckAuthStatus restores the session from a persisted token. It runs at
// most once per Store; later calls are no-ops.
func (s *Store) CheckAuthStatus(ctx context.Context) {
	s.check.Do(func() {
		if !s.remote.HasToken() {
			s.set(StateAnonymous, nil)
			return
		}

		admin, err := s.remote.CurrentAdmin(ctx)
		if err != nil {
			logging.FromContext(ctx).Info().Err(err).Msg("stored token rejected, signing out")
			s.remote.ClearToken()
			s.set(StateAnonymous, nil)
			return
		}
		s.set(StateAuthenticated, admin)
	})
}

func (s *Store) Login(ctx context.Context, email, password string) error {
	admin, err := s.remote.Login(ctx, email, password)
	if err != nil {
		s.set(StateAnonymous, nil)
		return err
	}
	s.set(StateAuthenticated, admin)
	return nil
}

// Register signs up a new admin. The caller checks that the password and its
// confirmation match before calling.
func (s *Store) Register(ctx context.Context, name, email, password, confirmation string) error {
	admin, err := s.remote.Register(ctx, domain.RegisterRequest{
		Name:                 name,
		Email:                email,
		Password:             password,
		PasswordConfirmation: confirmation,
	})
	if err != nil {
		s.set(StateAnonymous, nil)
		return err
	}
	s.set(StateAuthenticated, admin)
	return nil
}

// Logout signs out locally whatever the remote outcome and returns the
// remote error for logging.
func (s *Store) Logout(ctx context.Context) error {
	err := s.remote.Logout(ctx)
	s.set(StateAnonymous, nil)
	if err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("remote logout failed")
	}
	return err
}

func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Store) Principal() *domain.Admin {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.principal
}

func (s *Store) IsAuthenticated() bool {
	return s.Principal() != nil
}

func (s *Store) set(state State, principal *domain.Admin) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	s.principal = principal
}
