package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/garnizeh/jobly/internal/token"
)

const maxBodyBytes = 1 << 20

// IdentityFrom returns the claims resolved for the request, or nil for an
// anonymous caller.
func IdentityFrom(ctx context.Context) *token.Claims {
	c, _ := ctx.Value(ctxIdentity).(*token.Claims)
	return c
}

// WithIdentity attaches claims to ctx.
func WithIdentity(ctx context.Context, c *token.Claims) context.Context {
	return context.WithValue(ctx, ctxIdentity, c)
}

// IdentityMiddleware resolves the "_token" carried in the JSON body, or in the
// query string when the body has none. A missing or invalid token leaves the
// request anonymous; it never fails the request. The body is buffered so
// handlers can read it again.
func IdentityMiddleware(tokens *token.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var tok string

			if r.Body != nil && r.Body != http.NoBody {
				body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
				if err != nil {
					var mbe *http.MaxBytesError
					if errors.As(err, &mbe) {
						writeStatus(w, http.StatusRequestEntityTooLarge, "Request body too large")
						return
					}
					writeStatus(w, http.StatusBadRequest, "Unable to read request body")
					return
				}
				r.Body = io.NopCloser(bytes.NewReader(body))

				var carrier struct {
					Token string `json:"_token"`
				}
				if json.Unmarshal(body, &carrier) == nil {
					tok = carrier.Token
				}
			}
			if tok == "" {
				tok = r.URL.Query().Get("_token")
			}

			if claims := tokens.Verify(tok); claims != nil {
				r = r.WithContext(WithIdentity(r.Context(), claims))
			}

			next.ServeHTTP(w, r)
		})
	}
}
