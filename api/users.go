package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/garnizeh/jobly/internal/apperr"
	"github.com/garnizeh/jobly/internal/schema"
	"github.com/garnizeh/jobly/internal/token"
	"github.com/garnizeh/jobly/pkg/models"
	"github.com/garnizeh/jobly/pkg/repository"
)

type UsersHandler struct {
	repo      repository.UserRepo
	tokens    *token.Service
	validator *schema.Validator
}

func NewUsersHandler(ur repository.UserRepo, tokens *token.Service, v *schema.Validator) *UsersHandler {
	return &UsersHandler{repo: ur, tokens: tokens, validator: v}
}

func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.repo.ListUsers(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"users": users})
}

// Register handles POST /users and answers with a token for the new user.
func (h *UsersHandler) Register(w http.ResponseWriter, r *http.Request) {
	var nu models.NewUser
	if err := decodePayload(r, h.validator, schema.UserNew, &nu); err != nil {
		writeError(w, r, err)
		return
	}

	u, err := h.repo.CreateUser(r.Context(), &nu)
	if err != nil {
		writeError(w, r, err)
		return
	}

	tok, err := h.tokens.Issue(u.Username, u.IsAdmin)
	if err != nil {
		writeError(w, r, apperr.Wrap(err, "issue token"))
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"token": tok})
}

func (h *UsersHandler) Get(w http.ResponseWriter, r *http.Request) {
	u, err := h.repo.GetUser(r.Context(), mux.Vars(r)["username"])
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": u})
}

func (h *UsersHandler) Update(w http.ResponseWriter, r *http.Request) {
	var p models.UserPatch
	if err := decodePayload(r, h.validator, schema.UserEdit, &p); err != nil {
		writeError(w, r, err)
		return
	}

	u, err := h.repo.UpdateUser(r.Context(), mux.Vars(r)["username"], &p)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": u})
}

func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	msg, err := h.repo.DeleteUser(r.Context(), mux.Vars(r)["username"])
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"message": msg})
}
