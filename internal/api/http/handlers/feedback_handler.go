package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/cleancity/pickup-service/internal/api/dto"
	"github.com/cleancity/pickup-service/internal/domain"
	"github.com/cleancity/pickup-service/internal/feedback"
	apperrors "github.com/cleancity/pickup-service/pkg/util"
)

// FeedbackHandler manages feedback endpoints.
type FeedbackHandler struct {
	service *feedback.Service
}

// NewFeedbackHandler constructs handler.
func NewFeedbackHandler(service *feedback.Service) *FeedbackHandler {
	return &FeedbackHandler{service: service}
}

// Submit POST /feedback.
func (h *FeedbackHandler) Submit(c *fiber.Ctx) error {
	var req dto.FeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	entry, err := h.service.Submit(c.UserContext(), feedback.SubmitInput{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Type:    req.Type,
		Message: req.Message,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": feedbackResponse(entry)})
}

// List GET /feedback. Admin only.
func (h *FeedbackHandler) List(c *fiber.Ctx) error {
	entries, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.FeedbackResponse, 0, len(entries))
	for i := range entries {
		items = append(items, feedbackResponse(&entries[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

func feedbackResponse(entry *domain.Feedback) dto.FeedbackResponse {
	return dto.FeedbackResponse{
		ID:        entry.ID,
		Name:      entry.Name,
		Email:     entry.Email,
		Subject:   entry.Subject,
		Category:  entry.Category,
		Message:   entry.Message,
		CreatedAt: entry.CreatedAt,
	}
}
