package accounts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cleancity/pickup-service/internal/config"
	"github.com/cleancity/pickup-service/internal/events"
	"github.com/cleancity/pickup-service/internal/kvstore"
	apperrors "github.com/cleancity/pickup-service/pkg/util"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	cfg := config.AuthConfig{
		BcryptCost:              4, // min cost keeps the test fast
		PasswordResetTTLMinutes: 30,
	}
	return NewStore(kvstore.NewMemoryStore(), cfg, events.NewInMemoryDispatcher(), zap.NewNop())
}

func registerTestUser(t *testing.T, store *Store) {
	t.Helper()
	_, err := store.Register(context.Background(), RegisterInput{
		Name:     "Test User",
		Email:    "test@example.com",
		Password: "StrongPass123!",
		Phone:    "1234567890",
	})
	require.NoError(t, err)
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns id and timestamps", func(t *testing.T) {
		store := newTestStore(t)
		user, err := store.Register(ctx, RegisterInput{
			Name:     "Test User",
			Email:    "test@example.com",
			Password: "StrongPass123!",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, user.ID)
		assert.False(t, user.CreatedAt.IsZero())
		assert.NotEqual(t, "StrongPass123!", user.PasswordHash)
	})

	t.Run("auto-login establishes a session", func(t *testing.T) {
		store := newTestStore(t)
		registerTestUser(t, store)
		assert.True(t, store.IsAuthenticated(ctx))
		current, err := store.CurrentUser(ctx)
		require.NoError(t, err)
		assert.Equal(t, "test@example.com", current.Email)
	})

	t.Run("duplicate email rejected without mutating state", func(t *testing.T) {
		store := newTestStore(t)
		registerTestUser(t, store)

		_, err := store.Register(ctx, RegisterInput{
			Name:     "Other User",
			Email:    "test@example.com",
			Password: "OtherPass123!",
		})
		require.Error(t, err)
		domainErr := apperrors.ToDomainError(err)
		assert.Equal(t, "CONFLICT", domainErr.Code)
		assert.Equal(t, "Email already registered", domainErr.Message)

		users, err := store.loadUsers(ctx)
		require.NoError(t, err)
		assert.Len(t, users, 1)
	})
}

func TestLoginLogout(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	registerTestUser(t, store)
	require.NoError(t, store.Logout(ctx))

	t.Run("wrong password", func(t *testing.T) {
		_, err := store.Login(ctx, "test@example.com", "WrongPass123!")
		require.Error(t, err)
		assert.Equal(t, "Invalid credentials", apperrors.ToDomainError(err).Message)
		assert.False(t, store.IsAuthenticated(ctx))
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := store.Login(ctx, "nobody@example.com", "StrongPass123!")
		require.Error(t, err)
		assert.Equal(t, "Invalid credentials", apperrors.ToDomainError(err).Message)
	})

	t.Run("correct credentials", func(t *testing.T) {
		user, err := store.Login(ctx, "test@example.com", "StrongPass123!")
		require.NoError(t, err)
		assert.Equal(t, "Test User", user.Name)
		assert.True(t, store.IsAuthenticated(ctx))
	})

	t.Run("logout always clears the session", func(t *testing.T) {
		require.NoError(t, store.Logout(ctx))
		assert.False(t, store.IsAuthenticated(ctx))
		// logged out already; still succeeds
		require.NoError(t, store.Logout(ctx))
		assert.False(t, store.IsAuthenticated(ctx))
	})
}

func TestSessionProjections(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	current, err := store.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, current)
	assert.False(t, store.IsAdmin(ctx))

	_, err = store.Register(ctx, RegisterInput{
		Name:     "Admin",
		Email:    "admin@example.com",
		Password: "AdminPass123!",
		Role:     "admin",
	})
	require.NoError(t, err)
	assert.True(t, store.IsAdmin(ctx))
}

func TestGetByIDAndEmail(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	registerTestUser(t, store)

	byEmail, err := store.GetByEmail(ctx, "test@example.com")
	require.NoError(t, err)

	byID, err := store.GetByID(ctx, byEmail.ID)
	require.NoError(t, err)
	assert.Equal(t, byEmail.Email, byID.Email)

	_, err = store.GetByID(ctx, "nope")
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}
