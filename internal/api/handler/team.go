package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/taskman-io/taskman/internal/api/middleware"
	"github.com/taskman-io/taskman/internal/api/response"
	"github.com/taskman-io/taskman/internal/api/validation"
	"github.com/taskman-io/taskman/internal/team"
)

type createTeamRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type updateTeamRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type teamResponse struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	OwnerID     string           `json:"ownerId"`
	CreatedAt   string           `json:"createdAt"`
	UpdatedAt   string           `json:"updatedAt"`
	MemberCount int              `json:"memberCount"`
	Members     []memberResponse `json:"members"`
}

func toTeamResponse(t *team.Team) teamResponse {
	members := make([]memberResponse, 0, len(t.Members))
	for i := range t.Members {
		members = append(members, toMemberResponse(&t.Members[i]))
	}
	return teamResponse{
		ID:          t.ID.String(),
		Name:        t.Name,
		Description: t.Description,
		OwnerID:     t.OwnerID.String(),
		CreatedAt:   t.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   t.UpdatedAt.UTC().Format(time.RFC3339),
		MemberCount: len(t.Members),
		Members:     members,
	}
}

// TeamHandler handles team CRUD endpoints.
type TeamHandler struct {
	service *team.Service
}

// NewTeamHandler creates a new TeamHandler.
func NewTeamHandler(service *team.Service) *TeamHandler {
	return &TeamHandler{service: service}
}

// Create handles POST /teams. The authenticated caller becomes the
// team's owner and its first member.
func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	identity := middleware.GetIdentity(r.Context())
	if identity == nil {
		response.Err(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication is required", requestID)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req createTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON", requestID)
		return
	}

	fieldErrors := validation.ValidateCreateTeamRequest(validation.CreateTeamRequest{
		Name:        req.Name,
		Description: req.Description,
	})
	if len(fieldErrors) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", fieldErrors, requestID)
		return
	}

	t, err := h.service.CreateTeam(r.Context(), req.Name, req.Description, identity.UserID, identity.Email)
	if err != nil {
		slog.Error("failed to create team", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create team", requestID)
		return
	}

	response.Success(w, http.StatusCreated, toTeamResponse(t), requestID)
}

// List handles GET /teams.
func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	teams, err := h.service.ListTeams(r.Context())
	if err != nil {
		slog.Error("failed to list teams", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list teams", requestID)
		return
	}

	items := make([]teamResponse, 0, len(teams))
	for i := range teams {
		items = append(items, toTeamResponse(&teams[i]))
	}

	response.Success(w, http.StatusOK, items, requestID)
}

// GetByID handles GET /teams/{id}.
func (h *TeamHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	id, ok := parseTeamID(w, r, requestID)
	if !ok {
		return
	}

	t, err := h.service.GetTeam(r.Context(), id)
	if err != nil {
		if errors.Is(err, team.ErrTeamNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Team not found", requestID)
			return
		}
		slog.Error("failed to get team", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to get team", requestID)
		return
	}

	response.Success(w, http.StatusOK, toTeamResponse(t), requestID)
}

// Update handles PATCH /teams/{id}. Only name and description are
// mutable; team id and owner are fixed at creation.
func (h *TeamHandler) Update(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	id, ok := parseTeamID(w, r, requestID)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req updateTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON", requestID)
		return
	}

	fieldErrors := validation.ValidateUpdateTeamRequest(validation.UpdateTeamRequest{
		Name:        req.Name,
		Description: req.Description,
	})
	if len(fieldErrors) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", fieldErrors, requestID)
		return
	}

	t, err := h.service.UpdateTeam(r.Context(), id, team.TeamPatch{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, team.ErrTeamNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Team not found", requestID)
			return
		}
		slog.Error("failed to update team", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update team", requestID)
		return
	}

	response.Success(w, http.StatusOK, toTeamResponse(t), requestID)
}

// Delete handles DELETE /teams/{id}. Deleting a team cascades to its
// members.
func (h *TeamHandler) Delete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	id, ok := parseTeamID(w, r, requestID)
	if !ok {
		return
	}

	deleted, err := h.service.DeleteTeam(r.Context(), id)
	if err != nil {
		slog.Error("failed to delete team", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete team", requestID)
		return
	}
	if !deleted {
		response.Err(w, http.StatusNotFound, "NOT_FOUND", "Team not found", requestID)
		return
	}

	response.NoContent(w)
}

func parseTeamID(w http.ResponseWriter, r *http.Request, requestID string) (uuid.UUID, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID", requestID)
		return uuid.Nil, false
	}
	return id, true
}
