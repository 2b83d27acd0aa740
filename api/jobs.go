package api

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/garnizeh/jobly/internal/apperr"
	"github.com/garnizeh/jobly/internal/schema"
	"github.com/garnizeh/jobly/pkg/models"
	"github.com/garnizeh/jobly/pkg/repository"
)

type JobsHandler struct {
	repo      repository.JobRepo
	validator *schema.Validator
}

func NewJobsHandler(jr repository.JobRepo, v *schema.Validator) *JobsHandler {
	return &JobsHandler{repo: jr, validator: v}
}

// jobID parses the {id} path variable. An id that is not a positive integer
// cannot name a job, so it reports NotFound.
func jobID(r *http.Request) (int64, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.NewNotFound("There is no job with id '%s'", raw)
	}
	return id, nil
}

// List handles GET /jobs?search=&min_salary=&min_equity=
func (h *JobsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	jobs, err := h.repo.ListJobs(r.Context(), models.JobFilter{
		Search:    q.Get("search"),
		MinSalary: q.Get("min_salary"),
		MinEquity: q.Get("min_equity"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"jobs": jobs})
}

func (h *JobsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var nj models.NewJob
	if err := decodePayload(r, h.validator, schema.JobNew, &nj); err != nil {
		writeError(w, r, err)
		return
	}

	j, err := h.repo.CreateJob(r.Context(), &nj)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"job": j})
}

func (h *JobsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := jobID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	j, err := h.repo.GetJob(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"job": j})
}

func (h *JobsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := jobID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var p models.JobPatch
	if err := decodePayload(r, h.validator, schema.JobEdit, &p); err != nil {
		writeError(w, r, err)
		return
	}

	j, err := h.repo.UpdateJob(r.Context(), id, &p)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"job": j})
}

func (h *JobsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := jobID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	msg, err := h.repo.DeleteJob(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"message": msg})
}
