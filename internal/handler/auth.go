package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/couple-gallery/internal/apperror"
	"github.com/sakif/couple-gallery/internal/service"
)

// AuthHandler exchanges the admin password for a bearer token.
//
// HANDLER RESPONSIBILITIES:
//   - HandleLogin   → POST /api/auth/login, password in, token out
//   - HandleSession → GET /api/admin/session, lets the admin page check a
//     stored token before showing the editor
//
// Login keeps the {success, ...} envelope the admin page already parses,
// rather than the ErrorResponse shape used elsewhere.
type AuthHandler struct {
	service *service.AuthService
	logger  *slog.Logger
}

func NewAuthHandler(svc *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{service: svc, logger: logger}
}

type loginRequest struct {
	Password string `json:"password"`
}

type loginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token,omitempty"`
	Message string `json:"message"`
}

func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, loginResponse{Message: err.Error()})
		return
	}

	token, err := h.service.Login(r.Context(), req.Password)
	if err != nil {
		if errors.Is(err, apperror.ErrUnauthorized) {
			writeJSON(w, http.StatusUnauthorized, loginResponse{Message: err.Error()})
			return
		}
		h.logger.Error("login failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, loginResponse{Message: "login failed"})
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Success: true,
		Token:   token,
		Message: "login successful",
	})
}

// HandleSession only runs once the admin gate has accepted the token.
func (h *AuthHandler) HandleSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
