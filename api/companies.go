package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/garnizeh/jobly/internal/schema"
	"github.com/garnizeh/jobly/pkg/models"
	"github.com/garnizeh/jobly/pkg/repository"
)

type CompaniesHandler struct {
	repo      repository.CompanyRepo
	validator *schema.Validator
}

func NewCompaniesHandler(cr repository.CompanyRepo, v *schema.Validator) *CompaniesHandler {
	return &CompaniesHandler{repo: cr, validator: v}
}

// List handles GET /companies?search=&min_employees=&max_employees=
func (h *CompaniesHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	companies, err := h.repo.ListCompanies(r.Context(), models.CompanyFilter{
		Search:       q.Get("search"),
		MinEmployees: q.Get("min_employees"),
		MaxEmployees: q.Get("max_employees"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"companies": companies})
}

func (h *CompaniesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var c models.Company
	if err := decodePayload(r, h.validator, schema.CompanyNew, &c); err != nil {
		writeError(w, r, err)
		return
	}

	created, err := h.repo.CreateCompany(r.Context(), &c)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"company": created})
}

func (h *CompaniesHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.repo.GetCompany(r.Context(), mux.Vars(r)["handle"])
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"company": c})
}

func (h *CompaniesHandler) Update(w http.ResponseWriter, r *http.Request) {
	var p models.CompanyPatch
	if err := decodePayload(r, h.validator, schema.CompanyEdit, &p); err != nil {
		writeError(w, r, err)
		return
	}

	c, err := h.repo.UpdateCompany(r.Context(), mux.Vars(r)["handle"], &p)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"company": c})
}

func (h *CompaniesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	msg, err := h.repo.DeleteCompany(r.Context(), mux.Vars(r)["handle"])
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"message": msg})
}
