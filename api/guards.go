package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/garnizeh/jobly/internal/apperr"
)

const (
	msgLogIn        = "Please log in to access this page."
	msgUnauthorized = "You are not authorized to access this page."
)

// RequireLoggedIn admits any caller with a verified identity.
func RequireLoggedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if IdentityFrom(r.Context()) == nil {
			writeError(w, r, apperr.NewUnauthorized(msgLogIn))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireCorrectUser admits the caller whose identity matches the
// {username} path variable.
func RequireCorrectUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := IdentityFrom(r.Context())
		if id == nil || id.Username != mux.Vars(r)["username"] {
			writeError(w, r, apperr.NewUnauthorized(msgUnauthorized))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin admits callers whose identity carries the admin flag.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := IdentityFrom(r.Context())
		if id == nil || !id.IsAdmin {
			writeError(w, r, apperr.NewUnauthorized(msgUnauthorized))
			return
		}
		next.ServeHTTP(w, r)
	})
}
