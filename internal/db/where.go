package db

import (
	"fmt"
	"strings"
)

// Op is a comparison operator accepted by Where.
type Op string

const (
	Eq Op = "="
	Gt Op = ">"
	Lt Op = "<"
	Ge Op = ">="
	Le Op = "<="
)

// Where accumulates conjunctive predicates and renders them as a
// parameterized WHERE clause. Column names must come from code, never from
// request input; values are always bound as arguments.
type Where struct {
	clauses []string
	args    []any
}

// Add appends "column op ?" bound to value.
func (w *Where) Add(column string, op Op, value any) *Where {
	switch op {
	case Eq, Gt, Lt, Ge, Le:
	default:
		panic(fmt.Sprintf("db: unsupported operator %q", op))
	}
	w.clauses = append(w.clauses, column+" "+string(op)+" ?")
	w.args = append(w.args, value)
	return w
}

// Contains appends a case-insensitive substring match on column. LIKE
// wildcards in substr match literally.
func (w *Where) Contains(column, substr string) *Where {
	w.clauses = append(w.clauses, "LOWER("+column+") LIKE ? ESCAPE '\\'")
	w.args = append(w.args, "%"+escapeLike(strings.ToLower(substr))+"%")
	return w
}

// Len reports the number of predicates.
func (w *Where) Len() int { return len(w.clauses) }

// SQL renders " WHERE a AND b ..." (with a leading space) and its arguments.
// It renders an empty string when no predicate was added.
func (w *Where) SQL() (string, []any) {
	if len(w.clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(w.clauses, " AND "), w.args
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// Assignments accumulates "column = ?" pairs for partial UPDATE statements.
type Assignments struct {
	cols []string
	args []any
}

// Set assigns value to column. A nil value writes NULL.
func (a *Assignments) Set(column string, value any) *Assignments {
	a.cols = append(a.cols, column+" = ?")
	a.args = append(a.args, value)
	return a
}

func (a *Assignments) Len() int { return len(a.cols) }

// SQL renders "a = ?, b = ?" and its arguments.
func (a *Assignments) SQL() (string, []any) {
	return strings.Join(a.cols, ", "), a.args
}
