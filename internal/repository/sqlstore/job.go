package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/garnizeh/jobly/internal/apperr"
	"github.com/garnizeh/jobly/internal/db"
	"github.com/garnizeh/jobly/pkg/models"
)

const jobColumns = `id, title, salary, equity, company_handle, date_posted`

func scanJob(row rowScanner) (*models.Job, error) {
	var (
		j              models.Job
		salary, equity sql.NullFloat64
		posted         int64
	)
	if err := row.Scan(&j.ID, &j.Title, &salary, &equity, &j.CompanyHandle, &posted); err != nil {
		return nil, err
	}
	j.Salary = floatPtr(salary)
	j.Equity = floatPtr(equity)
	j.DatePosted = fromMillis(posted)

	return &j, nil
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func jobNotFound(id int64) error {
	return apperr.NewNotFound("There is no job with id '%d'", id)
}

// jobError reports a dangling company reference as a validation failure.
func jobError(err error, op, handle string) error {
	if v, ok := db.AsViolation(err); ok && v.Kind == db.ForeignKey {
		return apperr.NewValidation(fmt.Sprintf("/company_handle: There is no company with handle '%s'", handle))
	}
	return storeError(err, op)
}

func (r *SQLRepo) GetJob(ctx context.Context, id int64) (*models.JobDetail, error) {
	row := r.conn.QueryRow(ctx,
		`SELECT j.id, j.title, j.salary, j.equity, j.date_posted,
		c.handle, c.name, c.num_employees, c.description, c.logo_url
		FROM jobs AS j
		JOIN companies AS c ON j.company_handle = c.handle
		WHERE j.id = ?`, id)

	var (
		d              models.JobDetail
		salary, equity sql.NullFloat64
		posted         int64
		logo           sql.NullString
	)
	err := row.Scan(&d.ID, &d.Title, &salary, &equity, &posted,
		&d.Company.Handle, &d.Company.Name, &d.Company.NumEmployees, &d.Company.Description, &logo)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, jobNotFound(id)
		}
		return nil, storeError(err, "get job")
	}
	d.Salary = floatPtr(salary)
	d.Equity = floatPtr(equity)
	d.DatePosted = fromMillis(posted)
	if logo.Valid {
		d.Company.LogoURL = &logo.String
	}

	return &d, nil
}

func (r *SQLRepo) ListJobs(ctx context.Context, f models.JobFilter) ([]models.JobSummary, error) {
	salary, err := parseBound("min_salary", f.MinSalary, 0)
	if err != nil {
		return nil, err
	}
	equity, err := parseBound("min_equity", f.MinEquity, 1)
	if err != nil {
		return nil, err
	}

	var w db.Where
	if f.Search != "" {
		w.Contains("title", f.Search)
	}
	if salary.ok {
		w.Add("salary", db.Gt, salary.value)
	}
	if equity.ok {
		w.Add("equity", db.Gt, equity.value)
	}
	clause, args := w.SQL()

	rows, err := r.conn.QueryRows(ctx, `SELECT id, title, company_handle FROM jobs`+clause, args...)
	if err != nil {
		return nil, storeError(err, "list jobs")
	}
	defer rows.Close()

	out := []models.JobSummary{}
	for rows.Next() {
		var j models.JobSummary
		if err := rows.Scan(&j.ID, &j.Title, &j.CompanyHandle); err != nil {
			return nil, storeError(err, "scan job")
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError(err, "list jobs")
	}

	return out, nil
}

// CreateJob stamps date_posted with the current time.
func (r *SQLRepo) CreateJob(ctx context.Context, nj *models.NewJob) (*models.Job, error) {
	if nj == nil {
		return nil, apperr.NewValidation("/: job is required")
	}

	out, err := scanJob(r.conn.QueryRow(ctx,
		`INSERT INTO jobs (title, salary, equity, company_handle, date_posted)
		VALUES (?, ?, ?, ?, ?)
		RETURNING `+jobColumns,
		nj.Title, nullable(nj.Salary), nullable(nj.Equity), nj.CompanyHandle, now().UnixMilli()))
	if err != nil {
		return nil, jobError(err, "create job", nj.CompanyHandle)
	}

	return out, nil
}

func (r *SQLRepo) UpdateJob(ctx context.Context, id int64, p *models.JobPatch) (*models.Job, error) {
	var a db.Assignments
	if p != nil {
		if p.Title.Set {
			a.Set("title", p.Title.Arg())
		}
		if p.Salary.Set {
			a.Set("salary", p.Salary.Arg())
		}
		if p.Equity.Set {
			a.Set("equity", p.Equity.Arg())
		}
		if p.CompanyHandle.Set {
			a.Set("company_handle", p.CompanyHandle.Arg())
		}
	}
	if a.Len() == 0 {
		return r.getJobRow(ctx, id)
	}

	set, args := a.SQL()
	args = append(args, id)
	out, err := scanJob(r.conn.QueryRow(ctx, `UPDATE jobs SET `+set+` WHERE id = ? RETURNING `+jobColumns, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, jobNotFound(id)
		}
		handle := ""
		if p.CompanyHandle.Value != nil {
			handle = *p.CompanyHandle.Value
		}
		return nil, jobError(err, "update job", handle)
	}

	return out, nil
}

func (r *SQLRepo) getJobRow(ctx context.Context, id int64) (*models.Job, error) {
	j, err := scanJob(r.conn.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, jobNotFound(id)
		}
		return nil, storeError(err, "get job")
	}

	return j, nil
}

func (r *SQLRepo) DeleteJob(ctx context.Context, id int64) (string, error) {
	res, err := r.conn.Exec(ctx, `DELETE FROM jobs WHERE id = ?`, id)
	if err != nil {
		return "", storeError(err, "delete job")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return "", storeError(err, "delete job")
	}
	if n == 0 {
		return "", jobNotFound(id)
	}

	return "Job deleted", nil
}
