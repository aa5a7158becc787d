package validation

import "strings"

// CreateTeamRequest mirrors the fields needed for create team validation.
type CreateTeamRequest struct {
	Name        string
	Description string
}

// ValidateCreateTeamRequest validates the fields of a create team request.
func ValidateCreateTeamRequest(req CreateTeamRequest) []FieldError {
	var errs []FieldError

	name := strings.TrimSpace(req.Name)
	if name == "" {
		errs = append(errs, FieldError{Field: "name", Message: "name is required"})
	} else if len(name) > 255 {
		errs = append(errs, FieldError{Field: "name", Message: "name must be at most 255 characters"})
	}

	if len(req.Description) > 2000 {
		errs = append(errs, FieldError{Field: "description", Message: "description must be at most 2000 characters"})
	}

	return errs
}

// UpdateTeamRequest mirrors the fields needed for update team validation.
// Nil fields are absent from the patch and skip validation.
type UpdateTeamRequest struct {
	Name        *string
	Description *string
}

// ValidateUpdateTeamRequest validates the fields of a partial team update.
func ValidateUpdateTeamRequest(req UpdateTeamRequest) []FieldError {
	var errs []FieldError

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			errs = append(errs, FieldError{Field: "name", Message: "name must not be empty"})
		} else if len(name) > 255 {
			errs = append(errs, FieldError{Field: "name", Message: "name must be at most 255 characters"})
		}
	}

	if req.Description != nil && len(*req.Description) > 2000 {
		errs = append(errs, FieldError{Field: "description", Message: "description must be at most 2000 characters"})
	}

	return errs
}
