package handler

import (
	"net/http"
	"strings"

	"github.com/dtroode/micropost-server/internal/logger"
	"github.com/dtroode/micropost-server/internal/service"
)

// Auth handles credential endpoints.
type Auth struct {
	authService *service.Auth
	logger      *logger.Logger
}

func NewAuth(authService *service.Auth, logger *logger.Logger) *Auth {
	return &Auth{
		authService: authService,
		logger:      logger,
	}
}

type tokenRequest struct {
	Email string `json:"email"`
}

// Token mints a bearer token for a registered account.
func (h *Auth) Token(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "malformed request body")
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		writeBadRequest(w, "email is required")
		return
	}

	token, err := h.authService.IssueToken(r.Context(), req.Email)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, token)
}
