package api

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/garnizeh/jobly/internal/config"
	"github.com/garnizeh/jobly/internal/db"
	"github.com/garnizeh/jobly/internal/password"
	"github.com/garnizeh/jobly/internal/repository/sqlstore"
	"github.com/garnizeh/jobly/internal/schema"
	"github.com/garnizeh/jobly/internal/token"
	"github.com/garnizeh/jobly/pkg/repository"
)

// Services are the collaborators the router dispatches to.
type Services struct {
	Companies repository.CompanyRepo
	Jobs      repository.JobRepo
	Users     repository.UserRepo
	Tokens    *token.Service
	Validator *schema.Validator
	DB        Pinger

	Version     string
	BuildTime   string
	CORSOrigins []string
}

// SetupRoutes wires the SQL store, token service and validators from cfg and
// returns the complete HTTP handler.
func SetupRoutes(cfg *config.Config, version, buildTime string, conn *db.DB) (http.Handler, error) {
	hasher, err := password.New(cfg.PasswordHashing, cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("password strategy: %w", err)
	}
	validator, err := schema.New()
	if err != nil {
		return nil, fmt.Errorf("load schemas: %w", err)
	}

	repo := sqlstore.New(conn, hasher, logger)

	return NewRouter(Services{
		Companies:   repo,
		Jobs:        repo,
		Users:       repo,
		Tokens:      token.NewService(cfg.JWTSecret, cfg.TokenDuration),
		Validator:   validator,
		DB:          conn,
		Version:     version,
		BuildTime:   buildTime,
		CORSOrigins: cfg.CORSOrigins,
	}), nil
}

// NewRouter builds the route table. Middleware that must also see unmatched
// routes wraps the router rather than being registered on it.
func NewRouter(s Services) http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(notFoundHandler)
	r.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowedHandler)

	r.Use(IdentityMiddleware(s.Tokens))

	// Create handlers
	systemHandler := &SystemHandler{DB: s.DB}
	authHandler := NewAuthHandler(s.Users, s.Tokens, s.Validator)
	companiesHandler := NewCompaniesHandler(s.Companies, s.Validator)
	jobsHandler := NewJobsHandler(s.Jobs, s.Validator)
	usersHandler := NewUsersHandler(s.Users, s.Tokens, s.Validator)

	loggedIn := func(h http.HandlerFunc) http.Handler { return RequireLoggedIn(h) }
	admin := func(h http.HandlerFunc) http.Handler { return RequireAdmin(h) }
	correctUser := func(h http.HandlerFunc) http.Handler { return RequireCorrectUser(h) }

	// Open endpoints
	r.HandleFunc("/version", systemHandler.VersionHandler(s.Version, s.BuildTime)).Methods(http.MethodGet)
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods(http.MethodGet)
	r.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)

	// Companies
	r.Handle("/companies", loggedIn(companiesHandler.List)).Methods(http.MethodGet)
	r.Handle("/companies", admin(companiesHandler.Create)).Methods(http.MethodPost)
	r.Handle("/companies/{handle}", loggedIn(companiesHandler.Get)).Methods(http.MethodGet)
	r.Handle("/companies/{handle}", admin(companiesHandler.Update)).Methods(http.MethodPatch)
	r.Handle("/companies/{handle}", admin(companiesHandler.Delete)).Methods(http.MethodDelete)

	// Jobs
	r.Handle("/jobs", loggedIn(jobsHandler.List)).Methods(http.MethodGet)
	r.Handle("/jobs", admin(jobsHandler.Create)).Methods(http.MethodPost)
	r.Handle("/jobs/{id}", loggedIn(jobsHandler.Get)).Methods(http.MethodGet)
	r.Handle("/jobs/{id}", admin(jobsHandler.Update)).Methods(http.MethodPatch)
	r.Handle("/jobs/{id}", admin(jobsHandler.Delete)).Methods(http.MethodDelete)

	// Users
	r.HandleFunc("/users", usersHandler.List).Methods(http.MethodGet)
	r.HandleFunc("/users", usersHandler.Register).Methods(http.MethodPost)
	r.HandleFunc("/users/{username}", usersHandler.Get).Methods(http.MethodGet)
	r.Handle("/users/{username}", correctUser(usersHandler.Update)).Methods(http.MethodPatch)
	r.Handle("/users/{username}", correctUser(usersHandler.Delete)).Methods(http.MethodDelete)

	// Middleware chain, innermost first
	var h http.Handler = r
	h = CORSMiddleware(s.CORSOrigins)(h)
	h = RecoveryMiddleware(h)
	h = LoggingMiddleware(h)
	h = RequestIDMiddleware(h)

	return h
}
