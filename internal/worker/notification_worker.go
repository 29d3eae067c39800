package worker

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/cleancity/pickup-service/internal/config"
	"github.com/cleancity/pickup-service/internal/events"
	"github.com/cleancity/pickup-service/internal/notify"
)

// NotificationWorker surfaces domain events through the notification
// center and the stub email/webhook channels.
type NotificationWorker struct {
	center *notify.Center
	logger *zap.Logger
	cfg    config.NotificationConfig
}

// NewNotificationWorker creates the worker.
func NewNotificationWorker(center *notify.Center, logger *zap.Logger, cfg config.NotificationConfig) *NotificationWorker {
	return &NotificationWorker{center: center, logger: logger, cfg: cfg}
}

// RegisterHandlers subscribes to events.
func (w *NotificationWorker) RegisterHandlers(dispatcher events.Dispatcher) {
	if dispatcher == nil {
		return
	}
	dispatcher.Subscribe(events.EventUserRegistered, w.handleUserRegistered)
	dispatcher.Subscribe(events.EventPickupScheduled, w.handlePickupScheduled)
	dispatcher.Subscribe(events.EventPickupCancelled, w.handlePickupCancelled)
	dispatcher.Subscribe(events.EventFeedbackReceived, w.handleFeedbackReceived)
}

func (w *NotificationWorker) handleUserRegistered(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.UserRegisteredPayload)
	if !ok {
		return nil
	}
	w.center.Success(fmt.Sprintf("Welcome, %s! Your account is ready.", payload.Name))
	w.sendEmailStub(ctx, event)
	return nil
}

func (w *NotificationWorker) handlePickupScheduled(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.PickupScheduledPayload)
	if !ok {
		return nil
	}
	w.center.Success(fmt.Sprintf("Pickup scheduled for %s (%s)", payload.Date, payload.TimeSlot))
	w.sendWebhookStub(ctx, event)
	return nil
}

func (w *NotificationWorker) handlePickupCancelled(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.PickupCancelledPayload)
	if !ok {
		return nil
	}
	w.center.Info(fmt.Sprintf("Pickup #%d cancelled", payload.PickupID))
	w.sendWebhookStub(ctx, event)
	return nil
}

func (w *NotificationWorker) handleFeedbackReceived(ctx context.Context, event events.Event) error {
	w.center.Info("Thanks for your feedback!")
	w.sendEmailStub(ctx, event)
	return nil
}

func (w *NotificationWorker) sendEmailStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(w.cfg.EmailFrom) == "" {
		return
	}
	w.logger.Debug("sendEmailStub",
		zap.String("from", w.cfg.EmailFrom),
		zap.String("event_type", string(event.Type)))
}

func (w *NotificationWorker) sendWebhookStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(w.cfg.WebhookURL) == "" {
		return
	}
	w.logger.Debug("sendWebhookStub",
		zap.String("url", w.cfg.WebhookURL),
		zap.String("event_type", string(event.Type)))
}

// StartNotificationWorker registers notification handlers.
func StartNotificationWorker(worker *NotificationWorker, dispatcher events.Dispatcher) {
	if worker == nil {
		return
	}
	worker.RegisterHandlers(dispatcher)
}
