package api

import (
	"net/http"

	"github.com/garnizeh/jobly/internal/apperr"
	"github.com/garnizeh/jobly/internal/schema"
	"github.com/garnizeh/jobly/internal/token"
	"github.com/garnizeh/jobly/pkg/models"
	"github.com/garnizeh/jobly/pkg/repository"
)

type AuthHandler struct {
	userRepo  repository.UserRepo
	tokens    *token.Service
	validator *schema.Validator
}

// NewAuthHandler creates a new AuthHandler with required dependencies.
func NewAuthHandler(ur repository.UserRepo, tokens *token.Service, v *schema.Validator) *AuthHandler {
	return &AuthHandler{userRepo: ur, tokens: tokens, validator: v}
}

type authResponse struct {
	Token string `json:"token"`
}

// Login handles POST /login. Unknown users and wrong passwords get the same
// answer.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.Credentials
	if err := decodePayload(r, h.validator, schema.Login, &req); err != nil {
		writeError(w, r, err)
		return
	}

	u, err := h.userRepo.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	tok, err := h.tokens.Issue(u.Username, u.IsAdmin)
	if err != nil {
		writeError(w, r, apperr.Wrap(err, "issue token"))
		return
	}

	writeJSON(w, http.StatusOK, authResponse{Token: tok})
}
