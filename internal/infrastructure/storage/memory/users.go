package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"hingmart/internal/core/apperror"
	"hingmart/internal/core/id"
	"hingmart/internal/domain/auth"
)

// UserStore is an in-memory auth.UserRepository and auth.TokenRepository.
type UserStore struct {
	mu      sync.RWMutex
	users   map[id.ID]*auth.User
	byEmail map[string]id.ID
	tokens  map[string]*auth.RefreshToken
}

func NewUserStore() *UserStore {
	return &UserStore{
		users:   make(map[id.ID]*auth.User),
		byEmail: make(map[string]id.ID),
		tokens:  make(map[string]*auth.RefreshToken),
	}
}

func (s *UserStore) Create(ctx context.Context, user *auth.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(user.Email)
	if _, ok := s.byEmail[key]; ok {
		return apperror.NewConflict("email already registered").WithDetail("email", user.Email)
	}
	dup := *user
	s.users[user.ID] = &dup
	s.byEmail[key] = user.ID
	return nil
}

func (s *UserStore) GetByID(ctx context.Context, userID id.ID) (*auth.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[userID]
	if !ok {
		return nil, apperror.NewNotFound("user", userID.String())
	}
	dup := *u
	return &dup, nil
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	uid, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, apperror.NewNotFound("user", email)
	}
	dup := *s.users[uid]
	return &dup, nil
}

func (s *UserStore) Update(ctx context.Context, user *auth.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; !ok {
		return apperror.NewNotFound("user", user.ID.String())
	}
	dup := *user
	dup.UpdatedAt = time.Now()
	s.users[user.ID] = &dup
	return nil
}

func (s *UserStore) Exists(ctx context.Context, email string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.byEmail[strings.ToLower(email)]
	return ok, nil
}

func (s *UserStore) SaveRefreshToken(ctx context.Context, token *auth.RefreshToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dup := *token
	s.tokens[token.TokenHash] = &dup
	return nil
}

func (s *UserStore) GetRefreshToken(ctx context.Context, tokenHash string) (*auth.RefreshToken, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tokens[tokenHash]
	if !ok {
		return nil, apperror.NewNotFound("refresh token", tokenHash)
	}
	dup := *t
	return &dup, nil
}

func (s *UserStore) RevokeRefreshToken(ctx context.Context, tokenID id.ID, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.tokens {
		if t.ID == tokenID && t.RevokedAt == nil {
			now := time.Now()
			t.RevokedAt = &now
			return nil
		}
	}
	return apperror.NewNotFound("refresh token", tokenID.String())
}

func (s *UserStore) RevokeAllUserTokens(ctx context.Context, userID id.ID, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for _, t := range s.tokens {
		if t.UserID == userID && t.RevokedAt == nil {
			t.RevokedAt = &now
		}
	}
	return nil
}
