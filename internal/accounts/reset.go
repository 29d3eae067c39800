package accounts

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cleancity/pickup-service/internal/auth"
	"github.com/cleancity/pickup-service/internal/validation"
	apperrors "github.com/cleancity/pickup-service/pkg/util"
)

const weakPasswordMessage = "Password must be at least 8 characters long and include uppercase, lowercase, number, and symbol characters"

// RequestPasswordReset issues a single-use opaque token for the email.
// Tokens live in process state with a TTL, mirroring how the session-less
// original held them outside the user list.
func (s *Store) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadUsers(ctx)
	if err != nil {
		return "", err
	}
	found := false
	for i := range users {
		if users[i].Email == email {
			found = true
			break
		}
	}
	if !found {
		return "", apperrors.NewNotFound("Email", map[string]any{"email": email})
	}

	token := uuid.NewString()
	s.resets[token] = resetToken{email: email, expiresAt: time.Now().Add(s.resetTTL)}
	s.logger.Info("password reset requested", zap.String("email", email))
	return token, nil
}

// ResetPassword consumes a reset token and stores the new password hash.
// The new password must pass the same strength policy as registration.
func (s *Store) ResetPassword(ctx context.Context, token, newPassword string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.resets[token]
	if !ok || time.Now().After(entry.expiresAt) {
		delete(s.resets, token)
		return apperrors.NewUnauthorized("Invalid or expired reset token")
	}

	if !validation.StrongPassword(newPassword) {
		return apperrors.NewValidationError(weakPasswordMessage, nil)
	}

	users, err := s.loadUsers(ctx)
	if err != nil {
		return err
	}
	updated := false
	for i := range users {
		if users[i].Email != entry.email {
			continue
		}
		hash, err := auth.HashPassword(newPassword, s.bcryptCost)
		if err != nil {
			return err
		}
		users[i].PasswordHash = hash
		updated = true
		break
	}
	if !updated {
		return apperrors.NewNotFound("user", map[string]any{"email": entry.email})
	}
	if err := s.saveUsers(ctx, users); err != nil {
		return err
	}

	delete(s.resets, token)
	s.logger.Info("password reset completed", zap.String("email", entry.email))
	return nil
}
