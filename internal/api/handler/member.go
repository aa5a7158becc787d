package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/taskman-io/taskman/internal/api/middleware"
	"github.com/taskman-io/taskman/internal/api/response"
	"github.com/taskman-io/taskman/internal/api/validation"
	"github.com/taskman-io/taskman/internal/task"
	"github.com/taskman-io/taskman/internal/team"
)

type addMemberRequest struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

type taskResponse struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Status    string  `json:"status"`
	DueAt     *string `json:"dueAt,omitempty"`
	CreatedAt string  `json:"createdAt"`
}

type memberResponse struct {
	ID        string         `json:"id"`
	TeamID    string         `json:"teamId"`
	UserID    string         `json:"userId"`
	Email     string         `json:"email"`
	Role      string         `json:"role"`
	CreatedAt string         `json:"createdAt"`
	Tasks     []taskResponse `json:"tasks,omitempty"`
}

func toTaskResponse(t *task.Task) taskResponse {
	resp := taskResponse{
		ID:        t.ID.String(),
		Title:     t.Title,
		Status:    t.Status,
		CreatedAt: t.CreatedAt.UTC().Format(time.RFC3339),
	}
	if t.DueAt != nil {
		due := t.DueAt.UTC().Format(time.RFC3339)
		resp.DueAt = &due
	}
	return resp
}

func toMemberResponse(m *team.Member) memberResponse {
	resp := memberResponse{
		ID:        m.ID.String(),
		TeamID:    m.TeamID.String(),
		UserID:    m.UserID.String(),
		Email:     m.Email,
		Role:      m.Role,
		CreatedAt: m.CreatedAt.UTC().Format(time.RFC3339),
	}
	for i := range m.Tasks {
		resp.Tasks = append(resp.Tasks, toTaskResponse(&m.Tasks[i]))
	}
	return resp
}

// MemberHandler handles team membership endpoints.
type MemberHandler struct {
	service *team.Service
}

// NewMemberHandler creates a new MemberHandler.
func NewMemberHandler(service *team.Service) *MemberHandler {
	return &MemberHandler{service: service}
}

// Add handles POST /teams/{id}/members. A duplicate membership is a 400
// business rejection; a missing team is a 404.
func (h *MemberHandler) Add(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	teamID, ok := parseTeamID(w, r, requestID)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req addMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON", requestID)
		return
	}

	fieldErrors := validation.ValidateAddMemberRequest(validation.AddMemberRequest{
		UserID: req.UserID,
		Email:  req.Email,
		Role:   req.Role,
	})
	if len(fieldErrors) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", fieldErrors, requestID)
		return
	}

	userID, _ := uuid.Parse(req.UserID)
	m, err := h.service.AddMember(r.Context(), teamID, userID, req.Email, req.Role)
	if err != nil {
		if errors.Is(err, team.ErrDuplicateMember) {
			response.Err(w, http.StatusBadRequest, "DUPLICATE_MEMBER", "User is already a member of this team", requestID)
			return
		}
		if errors.Is(err, team.ErrTeamNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Team not found", requestID)
			return
		}
		slog.Error("failed to add member", "error", err, "teamId", teamID)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to add member", requestID)
		return
	}

	response.Success(w, http.StatusCreated, toMemberResponse(m), requestID)
}

// List handles GET /teams/{id}/members, returning each member with its
// task assignments.
func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	teamID, ok := parseTeamID(w, r, requestID)
	if !ok {
		return
	}

	members, err := h.service.MembersWithTasks(r.Context(), teamID)
	if err != nil {
		if errors.Is(err, team.ErrTeamNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Team not found", requestID)
			return
		}
		slog.Error("failed to list members", "error", err, "teamId", teamID)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list members", requestID)
		return
	}

	items := make([]memberResponse, 0, len(members))
	for i := range members {
		items = append(items, toMemberResponse(&members[i]))
	}

	response.Success(w, http.StatusOK, items, requestID)
}
