package feedback

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cleancity/pickup-service/internal/events"
	"github.com/cleancity/pickup-service/internal/kvstore"
	apperrors "github.com/cleancity/pickup-service/pkg/util"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	repo := NewKVRepository(kvstore.NewMemoryStore())
	return NewService(repo, events.NewInMemoryDispatcher(), zap.NewNop())
}

func validInput() SubmitInput {
	return SubmitInput{
		Name:    "Test User",
		Email:   "test@example.com",
		Subject: "Missed pickup",
		Type:    "Complaint",
		Message: "The truck never came.",
	}
}

func TestSubmit(t *testing.T) {
	ctx := context.Background()

	t.Run("valid submission", func(t *testing.T) {
		svc := newTestService(t)
		entry, err := svc.Submit(ctx, validInput())
		require.NoError(t, err)
		assert.NotEmpty(t, entry.ID)
		assert.Equal(t, "Complaint", entry.Category)
		assert.False(t, entry.CreatedAt.IsZero())
	})

	t.Run("invalid submission carries field errors", func(t *testing.T) {
		svc := newTestService(t)
		input := validInput()
		input.Message = ""
		input.Email = "not-an-email"
		_, err := svc.Submit(ctx, input)
		require.Error(t, err)
		domainErr := apperrors.ToDomainError(err)
		assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
		assert.Contains(t, domainErr.Details, "message")
		assert.Contains(t, domainErr.Details, "email")
	})
}

func TestList(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	empty, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	first, err := svc.Submit(ctx, validInput())
	require.NoError(t, err)
	second := validInput()
	second.Subject = "Great service"
	second.Type = "Praise"
	_, err = svc.Submit(ctx, second)
	require.NoError(t, err)

	entries, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, first.ID, entries[0].ID)
	assert.Equal(t, "Great service", entries[1].Subject)
}
