package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/cleancity/pickup-service/internal/api/dto"
	"github.com/cleancity/pickup-service/internal/auth"
	"github.com/cleancity/pickup-service/internal/domain"
	"github.com/cleancity/pickup-service/internal/pickups"
	"github.com/cleancity/pickup-service/internal/validation"
	apperrors "github.com/cleancity/pickup-service/pkg/util"
)

// PickupsHandler manages pickup scheduling endpoints.
type PickupsHandler struct {
	service *pickups.Service
}

// NewPickupsHandler constructs handler.
func NewPickupsHandler(service *pickups.Service) *PickupsHandler {
	return &PickupsHandler{service: service}
}

// Schedule POST /pickups.
func (h *PickupsHandler) Schedule(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.SchedulePickupRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	result := validation.ValidatePickupForm(validation.PickupForm{
		Name:                principal.User.Name,
		Email:               principal.User.Email,
		Location:            req.Address,
		WasteType:           req.WasteType,
		PreferredDate:       req.Date,
		SpecialInstructions: req.Notes,
	})
	if !result.Valid {
		return apperrors.NewValidationError("Invalid pickup request", fieldErrors(result))
	}

	pickup, err := h.service.Schedule(c.UserContext(), pickups.ScheduleInput{
		UserID:    principal.User.ID,
		Address:   req.Address,
		Date:      req.Date,
		TimeSlot:  req.TimeSlot,
		WasteType: req.WasteType,
		Notes:     req.Notes,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": pickupResponse(pickup)})
}

// List GET /pickups.
func (h *PickupsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	list, err := h.service.ListForUser(c.UserContext(), principal.User.ID)
	if err != nil {
		return err
	}
	items := make([]dto.PickupResponse, 0, len(list))
	for i := range list {
		items = append(items, pickupResponse(&list[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /pickups/:id.
func (h *PickupsHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	id, err := parsePickupID(c.Params("id"))
	if err != nil {
		return err
	}
	pickup, err := h.service.Details(c.UserContext(), id, principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": pickupResponse(pickup)})
}

// Cancel POST /pickups/:id/cancel.
func (h *PickupsHandler) Cancel(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	id, err := parsePickupID(c.Params("id"))
	if err != nil {
		return err
	}
	pickup, err := h.service.Cancel(c.UserContext(), id, principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": pickupResponse(pickup)})
}

// Availability GET /availability?date=YYYY-MM-DD.
func (h *PickupsHandler) Availability(c *fiber.Ctx) error {
	date := c.Query("date")
	if date == "" {
		return apperrors.NewValidationError("date required", nil)
	}
	return c.JSON(fiber.Map{"data": dto.AvailabilityResponse{
		Date:  date,
		Slots: h.service.AvailableTimeSlots(date),
	}})
}

func parsePickupID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid pickup id", nil)
	}
	return id, nil
}

func pickupResponse(pickup *domain.PickupRequest) dto.PickupResponse {
	return dto.PickupResponse{
		ID:        pickup.ID,
		UserID:    pickup.UserID,
		Address:   pickup.Address,
		Date:      pickup.Date,
		TimeSlot:  pickup.TimeSlot,
		WasteType: pickup.WasteType,
		Notes:     pickup.Notes,
		Status:    pickup.Status,
		CreatedAt: pickup.CreatedAt,
		UpdatedAt: pickup.UpdatedAt,
	}
}
