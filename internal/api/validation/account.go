package validation

import (
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// RegisterRequest mirrors the fields needed for registration validation.
type RegisterRequest struct {
	Email    string
	FullName string
	Password string
}

// ValidateRegisterRequest validates the fields of a registration request.
// Password policy is enforced by the account service; here only presence
// is checked.
func ValidateRegisterRequest(req RegisterRequest) []FieldError {
	var errs []FieldError

	email := strings.TrimSpace(req.Email)
	if email == "" {
		errs = append(errs, FieldError{Field: "email", Message: "email is required"})
	} else if !emailRegex.MatchString(email) {
		errs = append(errs, FieldError{Field: "email", Message: "email must be a valid address"})
	}

	if strings.TrimSpace(req.FullName) == "" {
		errs = append(errs, FieldError{Field: "fullName", Message: "fullName is required"})
	} else if len(req.FullName) > 255 {
		errs = append(errs, FieldError{Field: "fullName", Message: "fullName must be at most 255 characters"})
	}

	if req.Password == "" {
		errs = append(errs, FieldError{Field: "password", Message: "password is required"})
	}

	return errs
}

// LoginRequest mirrors the fields needed for login validation.
type LoginRequest struct {
	Email    string
	Password string
}

// ValidateLoginRequest validates the fields of a login request.
func ValidateLoginRequest(req LoginRequest) []FieldError {
	var errs []FieldError

	if strings.TrimSpace(req.Email) == "" {
		errs = append(errs, FieldError{Field: "email", Message: "email is required"})
	}
	if req.Password == "" {
		errs = append(errs, FieldError{Field: "password", Message: "password is required"})
	}

	return errs
}
