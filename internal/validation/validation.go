package validation

import (
	"regexp"
	"strings"
	"unicode"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// MinPasswordLength is the floor enforced by the password policy.
const MinPasswordLength = 8

// Result carries the outcome of validating a form. Errors maps field names
// to human-readable messages; fields that validate are absent, so an empty
// map is equivalent to Valid.
type Result struct {
	Valid  bool
	Errors map[string]string
}

func newResult(errs map[string]string) Result {
	return Result{Valid: len(errs) == 0, Errors: errs}
}

// PickupForm holds raw values from the pickup request form.
type PickupForm struct {
	Name                string
	Email               string
	Location            string
	WasteType           string
	PreferredDate       string
	SpecialInstructions string
}

// RegistrationForm holds raw values from the registration form.
type RegistrationForm struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
	Phone           string
	Address         string
}

// LoginForm holds raw login credentials.
type LoginForm struct {
	Email    string
	Password string
}

// FeedbackForm holds raw values from the feedback form.
type FeedbackForm struct {
	Name    string
	Email   string
	Subject string
	Type    string
	Message string
}

// ValidatePickupForm checks the pickup request form.
func ValidatePickupForm(form PickupForm) Result {
	errs := map[string]string{}
	requireField(errs, "name", form.Name, "Name is required")
	requireEmail(errs, form.Email)
	requireField(errs, "location", form.Location, "Location is required")
	requireField(errs, "wasteType", form.WasteType, "Waste type is required")
	requireField(errs, "preferredDate", form.PreferredDate, "Preferred date is required")
	return newResult(errs)
}

// ValidateRegistrationForm checks the registration form, including the
// password strength policy and confirmation match.
func ValidateRegistrationForm(form RegistrationForm) Result {
	errs := map[string]string{}
	requireField(errs, "name", form.Name, "Name is required")
	requireEmail(errs, form.Email)
	requireField(errs, "phone", form.Phone, "Phone number is required")

	if strings.TrimSpace(form.Password) == "" {
		errs["password"] = "Password is required"
	} else if !StrongPassword(form.Password) {
		errs["password"] = "Please choose a stronger password: " + PasswordPolicyHint
	}

	if strings.TrimSpace(form.ConfirmPassword) == "" {
		errs["confirmPassword"] = "Please confirm your password"
	} else if form.ConfirmPassword != form.Password {
		errs["confirmPassword"] = "Passwords must match"
	}

	return newResult(errs)
}

// ValidateLoginForm checks login credentials for presence only.
func ValidateLoginForm(form LoginForm) Result {
	errs := map[string]string{}
	requireField(errs, "email", form.Email, "Email is required")
	requireField(errs, "password", form.Password, "Password is required")
	return newResult(errs)
}

// ValidateFeedbackForm checks the feedback form.
func ValidateFeedbackForm(form FeedbackForm) Result {
	errs := map[string]string{}
	requireField(errs, "name", form.Name, "Name is required")
	requireEmail(errs, form.Email)
	requireField(errs, "subject", form.Subject, "Subject is required")
	requireField(errs, "type", form.Type, "Feedback type is required")
	requireField(errs, "message", form.Message, "Message is required")
	return newResult(errs)
}

// PasswordPolicyHint describes the composite strength rule.
const PasswordPolicyHint = "at least 8 characters with uppercase, lowercase, number, and symbol"

// StrongPassword reports whether the password satisfies the composite
// strength rule: minimum length plus one of each character class.
func StrongPassword(password string) bool {
	if len(password) < MinPasswordLength {
		return false
	}
	var upper, lower, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		default:
			symbol = true
		}
	}
	return upper && lower && digit && symbol
}

func requireField(errs map[string]string, field, value, message string) {
	if strings.TrimSpace(value) == "" {
		errs[field] = message
	}
}

func requireEmail(errs map[string]string, email string) {
	if strings.TrimSpace(email) == "" {
		errs["email"] = "Email is required"
		return
	}
	if !emailPattern.MatchString(email) {
		errs["email"] = "Please enter a valid email address"
	}
}
