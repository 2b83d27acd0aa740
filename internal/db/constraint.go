package db

import (
	"errors"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// ViolationKind classifies integrity constraint failures.
type ViolationKind int

const (
	Unique ViolationKind = iota + 1
	ForeignKey
	Check
	NotNull
)

// Violation describes a constraint failure reported by the driver. Column is
// the offending column when the driver names one.
type Violation struct {
	Kind   ViolationKind
	Column string
}

var (
	// "UNIQUE constraint failed: companies.name"
	sqliteColumn = regexp.MustCompile(`constraint failed: [a-z_]+\.([a-z_]+)`)
	// "Key (name)=(Apple) already exists."
	pgDetailColumn = regexp.MustCompile(`^Key \(([a-z_]+)\)=`)
)

// AsViolation reports whether err is an integrity constraint violation from
// either supported driver.
func AsViolation(err error) (*Violation, bool) {
	var se *sqlite.Error
	if errors.As(err, &se) {
		v := &Violation{}
		switch se.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			v.Kind = Unique
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			v.Kind = ForeignKey
		case sqlite3.SQLITE_CONSTRAINT_CHECK:
			v.Kind = Check
		case sqlite3.SQLITE_CONSTRAINT_NOTNULL:
			v.Kind = NotNull
		default:
			return nil, false
		}
		if m := sqliteColumn.FindStringSubmatch(se.Error()); m != nil {
			v.Column = m[1]
		}
		return v, true
	}

	var pe *pgconn.PgError
	if errors.As(err, &pe) {
		v := &Violation{Column: pe.ColumnName}
		switch pe.Code {
		case "23505":
			v.Kind = Unique
		case "23503":
			v.Kind = ForeignKey
		case "23514":
			v.Kind = Check
		case "23502":
			v.Kind = NotNull
		default:
			return nil, false
		}
		if m := pgDetailColumn.FindStringSubmatch(strings.TrimSpace(pe.Detail)); m != nil {
			v.Column = m[1]
		}
		return v, true
	}

	return nil, false
}
