package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/taskman-io/taskman/internal/account"
	"github.com/taskman-io/taskman/internal/api/middleware"
	"github.com/taskman-io/taskman/internal/api/response"
	"github.com/taskman-io/taskman/internal/api/validation"
)

type registerRequest struct {
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	UserID   string `json:"userId"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Token    string `json:"token"`
}

func toUserResponse(u *account.UserSummary) userResponse {
	return userResponse{
		UserID:   u.UserID.String(),
		FullName: u.FullName,
		Email:    u.Email,
		Token:    u.Token,
	}
}

// AccountHandler handles registration, login and logout endpoints.
type AccountHandler struct {
	service *account.Service
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(service *account.Service) *AccountHandler {
	return &AccountHandler{service: service}
}

// Register handles POST /auth/register.
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON", requestID)
		return
	}

	fieldErrors := validation.ValidateRegisterRequest(validation.RegisterRequest{
		Email:    req.Email,
		FullName: req.FullName,
		Password: req.Password,
	})
	if len(fieldErrors) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", fieldErrors, requestID)
		return
	}

	result, err := h.service.Register(r.Context(), req.Email, req.FullName, req.Password)
	if err != nil {
		slog.Error("failed to register user", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to register user", requestID)
		return
	}

	if !result.OK() {
		response.ErrWithDetails(w, http.StatusBadRequest, "REGISTRATION_FAILED", "Registration was rejected", result.Errors, requestID)
		return
	}

	response.Success(w, http.StatusCreated, toUserResponse(result.User), requestID)
}

// Login handles POST /auth/login. All credential failures produce the
// same status, code and message.
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON", requestID)
		return
	}

	fieldErrors := validation.ValidateLoginRequest(validation.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if len(fieldErrors) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", fieldErrors, requestID)
		return
	}

	result, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, account.ErrInvalidCredentials) {
			response.Err(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password", requestID)
			return
		}
		slog.Error("failed to log in user", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to log in", requestID)
		return
	}

	response.Success(w, http.StatusOK, toUserResponse(result.User), requestID)
}

// Logout handles POST /auth/logout. Bearer tokens are stateless, so this
// only records the sign-out; issued tokens stay valid until expiry.
func (h *AccountHandler) Logout(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	if err := h.service.Logout(r.Context()); err != nil {
		slog.Error("failed to log out user", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to log out", requestID)
		return
	}

	response.NoContent(w)
}
