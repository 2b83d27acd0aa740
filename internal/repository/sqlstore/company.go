package sqlstore

import (
	"context"
	"database/sql"
	"errors"

	"github.com/garnizeh/jobly/internal/apperr"
	"github.com/garnizeh/jobly/internal/db"
	"github.com/garnizeh/jobly/pkg/models"
)

const companyColumns = `handle, name, num_employees, description, logo_url`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCompany(row rowScanner) (*models.Company, error) {
	var (
		c    models.Company
		logo sql.NullString
	)
	if err := row.Scan(&c.Handle, &c.Name, &c.NumEmployees, &c.Description, &logo); err != nil {
		return nil, err
	}
	if logo.Valid {
		c.LogoURL = &logo.String
	}

	return &c, nil
}

func companyNotFound(handle string) error {
	return apperr.NewNotFound("There is no company with handle '%s'", handle)
}

func (r *SQLRepo) GetCompany(ctx context.Context, handle string) (*models.Company, error) {
	c, err := scanCompany(r.conn.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE handle = ?`, handle))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, companyNotFound(handle)
		}
		return nil, storeError(err, "get company")
	}

	return c, nil
}

func (r *SQLRepo) ListCompanies(ctx context.Context, f models.CompanyFilter) ([]models.CompanySummary, error) {
	lo, err := parseBound("min_employees", f.MinEmployees, 0)
	if err != nil {
		return nil, err
	}
	hi, err := parseBound("max_employees", f.MaxEmployees, 0)
	if err != nil {
		return nil, err
	}
	if err := checkRange("min_employees", lo, "max_employees", hi); err != nil {
		return nil, err
	}

	// num_employees is compared as a float so fractional bounds bind on PostgreSQL
	const employees = `CAST(num_employees AS DOUBLE PRECISION)`

	var w db.Where
	if f.Search != "" {
		w.Contains("name", f.Search)
	}
	if lo.ok {
		w.Add(employees, db.Gt, lo.value)
	}
	if hi.ok {
		w.Add(employees, db.Lt, hi.value)
	}
	clause, args := w.SQL()

	rows, err := r.conn.QueryRows(ctx, `SELECT handle, name FROM companies`+clause, args...)
	if err != nil {
		return nil, storeError(err, "list companies")
	}
	defer rows.Close()

	out := []models.CompanySummary{}
	for rows.Next() {
		var c models.CompanySummary
		if err := rows.Scan(&c.Handle, &c.Name); err != nil {
			return nil, storeError(err, "scan company")
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError(err, "list companies")
	}

	return out, nil
}

func (r *SQLRepo) CreateCompany(ctx context.Context, c *models.Company) (*models.Company, error) {
	if c == nil {
		return nil, apperr.NewValidation("/: company is required")
	}

	out, err := scanCompany(r.conn.QueryRow(ctx,
		`INSERT INTO companies (handle, name, num_employees, description, logo_url)
		VALUES (?, ?, ?, ?, ?)
		RETURNING `+companyColumns,
		c.Handle, c.Name, c.NumEmployees, c.Description, nullable(c.LogoURL)))
	if err != nil {
		return nil, storeError(err, "create company")
	}

	return out, nil
}

// UpdateCompany writes only the fields present in p. An empty patch returns
// the stored row.
func (r *SQLRepo) UpdateCompany(ctx context.Context, handle string, p *models.CompanyPatch) (*models.Company, error) {
	var a db.Assignments
	if p != nil {
		if p.Name.Set {
			a.Set("name", p.Name.Arg())
		}
		if p.NumEmployees.Set {
			a.Set("num_employees", p.NumEmployees.Arg())
		}
		if p.Description.Set {
			a.Set("description", p.Description.Arg())
		}
		if p.LogoURL.Set {
			a.Set("logo_url", p.LogoURL.Arg())
		}
	}
	if a.Len() == 0 {
		return r.GetCompany(ctx, handle)
	}

	set, args := a.SQL()
	args = append(args, handle)
	out, err := scanCompany(r.conn.QueryRow(ctx,
		`UPDATE companies SET `+set+` WHERE handle = ? RETURNING `+companyColumns, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, companyNotFound(handle)
		}
		return nil, storeError(err, "update company")
	}

	return out, nil
}

// DeleteCompany removes the company and, by cascade, its jobs.
func (r *SQLRepo) DeleteCompany(ctx context.Context, handle string) (string, error) {
	res, err := r.conn.Exec(ctx, `DELETE FROM companies WHERE handle = ?`, handle)
	if err != nil {
		return "", storeError(err, "delete company")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return "", storeError(err, "delete company")
	}
	if n == 0 {
		return "", companyNotFound(handle)
	}

	return "Company deleted", nil
}
