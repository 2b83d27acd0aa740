package api_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/garnizeh/jobly/api"
)

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name       string
		db         api.Pinger
		wantStatus int
		want       string
	}{
		{name: "no_db", db: nil, wantStatus: http.StatusOK, want: "ok"},
		{name: "reachable", db: fakePinger{}, wantStatus: http.StatusOK, want: "ok"},
		{name: "unreachable", db: fakePinger{err: errors.New("down")}, wantStatus: http.StatusServiceUnavailable, want: "unavailable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &api.SystemHandler{DB: tt.db}
			rec := httptest.NewRecorder()
			h.HealthHandler(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.want, decode(t, rec)["status"])
		})
	}
}

func TestVersionRoute(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/version", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "1.2.3", body["version"])
	assert.Equal(t, "2024-01-01T00:00:00Z", body["buildTime"])
}
