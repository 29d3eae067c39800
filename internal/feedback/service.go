package feedback

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cleancity/pickup-service/internal/domain"
	"github.com/cleancity/pickup-service/internal/events"
	"github.com/cleancity/pickup-service/internal/validation"
	apperrors "github.com/cleancity/pickup-service/pkg/util"
)

// Service validates and records feedback submissions.
type Service struct {
	repo       Repository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// SubmitInput carries raw feedback form values.
type SubmitInput struct {
	Name    string
	Email   string
	Subject string
	Type    string
	Message string
}

// NewService constructs the service.
func NewService(repo Repository, dispatcher events.Dispatcher, logger *zap.Logger) *Service {
	return &Service{repo: repo, dispatcher: dispatcher, logger: logger}
}

// Submit validates the form and appends the entry.
func (s *Service) Submit(ctx context.Context, input SubmitInput) (*domain.Feedback, error) {
	result := validation.ValidateFeedbackForm(validation.FeedbackForm{
		Name:    input.Name,
		Email:   input.Email,
		Subject: input.Subject,
		Type:    input.Type,
		Message: input.Message,
	})
	if !result.Valid {
		details := make(map[string]any, len(result.Errors))
		for field, msg := range result.Errors {
			details[field] = msg
		}
		return nil, apperrors.NewValidationError("Invalid feedback submission", details)
	}

	entry := &domain.Feedback{
		ID:        uuid.NewString(),
		Name:      input.Name,
		Email:     input.Email,
		Subject:   input.Subject,
		Category:  input.Type,
		Message:   input.Message,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		s.logger.Error("store feedback", zap.Error(err))
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventFeedbackReceived,
			Timestamp: time.Now(),
			Payload: events.FeedbackReceivedPayload{
				FeedbackID: entry.ID,
				Subject:    entry.Subject,
				Category:   entry.Category,
			},
		})
	}
	return entry, nil
}

// List returns all recorded feedback in submission order.
func (s *Service) List(ctx context.Context) ([]domain.Feedback, error) {
	return s.repo.List(ctx)
}
