package validation

import (
	"strings"

	"github.com/google/uuid"

	"github.com/taskman-io/taskman/internal/team"
)

// AddMemberRequest mirrors the fields needed for add member validation.
type AddMemberRequest struct {
	UserID string
	Email  string
	Role   string
}

// ValidateAddMemberRequest validates the fields of an add member request.
func ValidateAddMemberRequest(req AddMemberRequest) []FieldError {
	var errs []FieldError

	if req.UserID == "" {
		errs = append(errs, FieldError{Field: "userId", Message: "userId is required"})
	} else if _, err := uuid.Parse(req.UserID); err != nil {
		errs = append(errs, FieldError{Field: "userId", Message: "userId must be a valid UUID"})
	}

	email := strings.TrimSpace(req.Email)
	if email == "" {
		errs = append(errs, FieldError{Field: "email", Message: "email is required"})
	} else if !emailRegex.MatchString(email) {
		errs = append(errs, FieldError{Field: "email", Message: "email must be a valid address"})
	}

	if req.Role == "" {
		errs = append(errs, FieldError{Field: "role", Message: "role is required"})
	} else if req.Role != team.RoleOwner && req.Role != team.RoleRegular {
		errs = append(errs, FieldError{Field: "role", Message: "role must be \"owner\" or \"regular\""})
	}

	return errs
}
