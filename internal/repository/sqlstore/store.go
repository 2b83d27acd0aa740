// Package sqlstore implements the repository contracts on top of the
// internal/db wrapper. Every query is written with '?' placeholders and runs
// unchanged on SQLite and PostgreSQL.
package sqlstore

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/garnizeh/jobly/internal/apperr"
	"github.com/garnizeh/jobly/internal/db"
	"github.com/garnizeh/jobly/internal/password"
	"github.com/garnizeh/jobly/pkg/repository"
)

// SQLRepo implements repository interfaces using the internal DB wrapper.
type SQLRepo struct {
	conn   *db.DB
	hasher password.Hasher
	logger *slog.Logger

	dummyOnce sync.Once
	dummy     string
}

// Ensure SQLRepo implements the public interfaces.
var _ repository.CompanyRepo = (*SQLRepo)(nil)
var _ repository.JobRepo = (*SQLRepo)(nil)
var _ repository.UserRepo = (*SQLRepo)(nil)

func New(conn *db.DB, hasher password.Hasher, logger *slog.Logger) *SQLRepo {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &SQLRepo{conn: conn, hasher: hasher, logger: logger}
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// storeError maps constraint violations onto the error taxonomy and wraps
// everything else as Internal.
func storeError(err error, op string) error {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return err
	}

	if v, ok := db.AsViolation(err); ok {
		switch v.Kind {
		case db.Unique:
			field := v.Column
			if field == "" {
				field = "value"
			}
			return apperr.NewConflict(field)
		case db.Check, db.NotNull:
			col := v.Column
			if col == "" {
				col = "body"
			}
			return apperr.NewValidation(fmt.Sprintf("/%s: violates a storage constraint", col))
		}
	}

	return apperr.Wrap(err, op)
}

func nullable[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}
