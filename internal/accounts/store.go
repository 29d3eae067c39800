package accounts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cleancity/pickup-service/internal/auth"
	"github.com/cleancity/pickup-service/internal/config"
	"github.com/cleancity/pickup-service/internal/domain"
	"github.com/cleancity/pickup-service/internal/events"
	"github.com/cleancity/pickup-service/internal/kvstore"
	apperrors "github.com/cleancity/pickup-service/pkg/util"
)

// Persisted layout: one key holds the JSON array of users, one holds the
// JSON record of the current session user (absent when logged out).
const (
	usersKey   = "cc:users"
	sessionKey = "cc:session"
)

// Store registers and authenticates users against a persisted user list and
// tracks the single current session. The persistence backend is injected;
// tests use the in-memory store.
type Store struct {
	mu         sync.Mutex
	kv         kvstore.Store
	dispatcher events.Dispatcher
	logger     *zap.Logger
	bcryptCost int
	resetTTL   time.Duration
	resets     map[string]resetToken
}

type resetToken struct {
	email     string
	expiresAt time.Time
}

// RegisterInput carries validated registration fields.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Address  string
	Role     domain.UserRole
}

// NewStore builds the account store. dispatcher may be nil.
func NewStore(kv kvstore.Store, cfg config.AuthConfig, dispatcher events.Dispatcher, logger *zap.Logger) *Store {
	return &Store{
		kv:         kv,
		dispatcher: dispatcher,
		logger:     logger,
		bcryptCost: cfg.BcryptCost,
		resetTTL:   time.Duration(cfg.PasswordResetTTLMinutes) * time.Minute,
		resets:     make(map[string]resetToken),
	}
}

// Register creates a new account and establishes a session for it. The
// session is written from the record in hand rather than re-read from the
// backend, so auto-login cannot miss the just-created user.
func (s *Store) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Email == input.Email {
			return nil, apperrors.NewConflict("Email already registered", map[string]any{"email": input.Email})
		}
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := domain.User{
		ID:           uuid.NewString(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Phone:        input.Phone,
		Address:      input.Address,
		Role:         input.Role,
		CreatedAt:    time.Now().UTC(),
	}

	users = append(users, user)
	if err := s.saveUsers(ctx, users); err != nil {
		return nil, err
	}
	if err := s.saveSession(ctx, &user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID))
	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventUserRegistered,
			UserID:    user.ID,
			Timestamp: time.Now(),
			Payload:   events.UserRegisteredPayload{Email: user.Email, Name: user.Name},
		})
	}
	return &user, nil
}

// Login authenticates by email and password and persists the session.
func (s *Store) Login(ctx context.Context, email, password string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Email != email {
			continue
		}
		if err := auth.ComparePassword(users[i].PasswordHash, password); err != nil {
			break
		}
		user := users[i]
		if err := s.saveSession(ctx, &user); err != nil {
			return nil, err
		}
		return &user, nil
	}
	return nil, apperrors.NewUnauthorized("Invalid credentials")
}

// Logout clears the persisted session. Always succeeds, logged in or not.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kv.Delete(ctx, sessionKey)
}

// IsAuthenticated reports whether a session record is persisted.
func (s *Store) IsAuthenticated(ctx context.Context) bool {
	user, err := s.CurrentUser(ctx)
	return err == nil && user != nil
}

// CurrentUser returns the session user, or nil when logged out.
func (s *Store) CurrentUser(ctx context.Context) (*domain.User, error) {
	raw, err := s.kv.Get(ctx, sessionKey)
	if err != nil {
		if errors.Is(err, kvstore.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}
	var user domain.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &user, nil
}

// IsAdmin reports whether the session user carries the admin role.
func (s *Store) IsAdmin(ctx context.Context) bool {
	user, err := s.CurrentUser(ctx)
	return err == nil && user.IsAdmin()
}

// GetByID looks up a stored user by identifier.
func (s *Store) GetByID(ctx context.Context, id string) (*domain.User, error) {
	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			user := users[i]
			return &user, nil
		}
	}
	return nil, apperrors.NewNotFound("user", map[string]any{"id": id})
}

// GetByEmail looks up a stored user by email.
func (s *Store) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Email == email {
			user := users[i]
			return &user, nil
		}
	}
	return nil, apperrors.NewNotFound("user", map[string]any{"email": email})
}

func (s *Store) loadUsers(ctx context.Context) ([]domain.User, error) {
	raw, err := s.kv.Get(ctx, usersKey)
	if err != nil {
		if errors.Is(err, kvstore.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}
	var users []domain.User
	if err := json.Unmarshal(raw, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return users, nil
}

func (s *Store) saveUsers(ctx context.Context, users []domain.User) error {
	raw, err := json.Marshal(users)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, usersKey, raw)
}

func (s *Store) saveSession(ctx context.Context, user *domain.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, sessionKey, raw)
}
