package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/cleancity/pickup-service/internal/accounts"
	"github.com/cleancity/pickup-service/internal/api/dto"
	"github.com/cleancity/pickup-service/internal/auth"
	"github.com/cleancity/pickup-service/internal/domain"
	"github.com/cleancity/pickup-service/internal/validation"
	apperrors "github.com/cleancity/pickup-service/pkg/util"
)

// AuthHandler exposes registration, login and password reset endpoints.
type AuthHandler struct {
	store  *accounts.Store
	tokens *auth.TokenManager
}

// NewAuthHandler constructs handler.
func NewAuthHandler(store *accounts.Store, tokens *auth.TokenManager) *AuthHandler {
	return &AuthHandler{store: store, tokens: tokens}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	result := validation.ValidateRegistrationForm(validation.RegistrationForm{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Phone:           req.Phone,
		Address:         req.Address,
	})
	if !result.Valid {
		return apperrors.NewValidationError("Invalid registration", fieldErrors(result))
	}

	user, err := h.store.Register(c.UserContext(), accounts.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Address:  req.Address,
	})
	if err != nil {
		return err
	}

	token, exp, err := h.tokens.GenerateToken(user.ID, user.Role)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"user": userResponse(user),
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	result := validation.ValidateLoginForm(validation.LoginForm{Email: req.Email, Password: req.Password})
	if !result.Valid {
		return apperrors.NewValidationError("Invalid login", fieldErrors(result))
	}

	user, err := h.store.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	token, exp, err := h.tokens.GenerateToken(user.ID, user.Role)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user": userResponse(user),
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Logout handles POST /auth/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.store.Logout(c.UserContext()); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"success": true}})
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	return c.JSON(fiber.Map{"data": userResponse(principal.User)})
}

// RequestPasswordReset handles POST /auth/password/reset/request.
func (h *AuthHandler) RequestPasswordReset(c *fiber.Ctx) error {
	var req dto.PasswordResetRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" {
		return apperrors.NewValidationError("email required", nil)
	}

	token, err := h.store.RequestPasswordReset(c.UserContext(), req.Email)
	if err != nil {
		return err
	}
	// A production deployment delivers the token by email; returning it
	// here mirrors the mock transport.
	return c.JSON(fiber.Map{"data": fiber.Map{"resetToken": token}})
}

// ConfirmPasswordReset handles POST /auth/password/reset/confirm.
func (h *AuthHandler) ConfirmPasswordReset(c *fiber.Ctx) error {
	var req dto.PasswordResetConfirm
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Token == "" || req.NewPassword == "" {
		return apperrors.NewValidationError("token and newPassword required", nil)
	}

	if err := h.store.ResetPassword(c.UserContext(), req.Token, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "Password reset successful"}})
}

func userResponse(user *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  string(user.Role),
	}
}

func fieldErrors(result validation.Result) map[string]any {
	details := make(map[string]any, len(result.Errors))
	for field, msg := range result.Errors {
		details[field] = msg
	}
	return details
}
