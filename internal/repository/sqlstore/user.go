package sqlstore

import (
	"context"
	"database/sql"
	"errors"

	"github.com/garnizeh/jobly/internal/apperr"
	"github.com/garnizeh/jobly/internal/db"
	"github.com/garnizeh/jobly/pkg/models"
)

const userColumns = `username, first_name, last_name, email, photo_url, is_admin`

func scanUser(row rowScanner, extra ...any) (*models.User, error) {
	var (
		u     models.User
		photo sql.NullString
	)
	dest := append([]any{&u.Username, &u.FirstName, &u.LastName, &u.Email, &photo, &u.IsAdmin}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	if photo.Valid {
		u.PhotoURL = &photo.String
	}

	return &u, nil
}

func userNotFound(username string) error {
	return apperr.NewNotFound("There is no user with username '%s'", username)
}

func (r *SQLRepo) GetUser(ctx context.Context, username string) (*models.User, error) {
	u, err := scanUser(r.conn.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, userNotFound(username)
		}
		return nil, storeError(err, "get user")
	}

	return u, nil
}

func (r *SQLRepo) ListUsers(ctx context.Context) ([]models.UserSummary, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT username, first_name, last_name, email FROM users`)
	if err != nil {
		return nil, storeError(err, "list users")
	}
	defer rows.Close()

	out := []models.UserSummary{}
	for rows.Next() {
		var u models.UserSummary
		if err := rows.Scan(&u.Username, &u.FirstName, &u.LastName, &u.Email); err != nil {
			return nil, storeError(err, "scan user")
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError(err, "list users")
	}

	return out, nil
}

// CreateUser stores the password through the configured hasher. Registered
// users are never admins.
func (r *SQLRepo) CreateUser(ctx context.Context, nu *models.NewUser) (*models.User, error) {
	if nu == nil {
		return nil, apperr.NewValidation("/: user is required")
	}

	stored, err := r.hasher.Hash(nu.Password)
	if err != nil {
		return nil, apperr.Wrap(err, "create user")
	}

	out, err := scanUser(r.conn.QueryRow(ctx,
		`INSERT INTO users (username, password, first_name, last_name, email, photo_url, is_admin)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING `+userColumns,
		nu.Username, stored, nu.FirstName, nu.LastName, nu.Email, nullable(nu.PhotoURL), false))
	if err != nil {
		return nil, storeError(err, "create user")
	}

	return out, nil
}

func (r *SQLRepo) UpdateUser(ctx context.Context, username string, p *models.UserPatch) (*models.User, error) {
	var a db.Assignments
	if p != nil {
		if p.Password.Set {
			if p.Password.Value == nil {
				return nil, apperr.NewValidation("/password: must not be null")
			}
			stored, err := r.hasher.Hash(*p.Password.Value)
			if err != nil {
				return nil, apperr.Wrap(err, "update user")
			}
			a.Set("password", stored)
		}
		if p.FirstName.Set {
			a.Set("first_name", p.FirstName.Arg())
		}
		if p.LastName.Set {
			a.Set("last_name", p.LastName.Arg())
		}
		if p.Email.Set {
			a.Set("email", p.Email.Arg())
		}
		if p.PhotoURL.Set {
			a.Set("photo_url", p.PhotoURL.Arg())
		}
	}
	if a.Len() == 0 {
		return r.GetUser(ctx, username)
	}

	set, args := a.SQL()
	args = append(args, username)
	out, err := scanUser(r.conn.QueryRow(ctx, `UPDATE users SET `+set+` WHERE username = ? RETURNING `+userColumns, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, userNotFound(username)
		}
		return nil, storeError(err, "update user")
	}

	return out, nil
}

func (r *SQLRepo) DeleteUser(ctx context.Context, username string) (string, error) {
	res, err := r.conn.Exec(ctx, `DELETE FROM users WHERE username = ?`, username)
	if err != nil {
		return "", storeError(err, "delete user")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return "", storeError(err, "delete user")
	}
	if n == 0 {
		return "", userNotFound(username)
	}

	return "User deleted", nil
}

// SetAdmin grants or revokes the admin flag. It backs the bootstrap tooling;
// no route exposes it.
func (r *SQLRepo) SetAdmin(ctx context.Context, username string, isAdmin bool) error {
	res, err := r.conn.Exec(ctx, `UPDATE users SET is_admin = ? WHERE username = ?`, isAdmin, username)
	if err != nil {
		return storeError(err, "set admin")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return storeError(err, "set admin")
	}
	if n == 0 {
		return userNotFound(username)
	}

	return nil
}

// Authenticate fails with the same InvalidCredentials error for an unknown
// user and a wrong password. An unknown user is still checked against a
// throwaway credential so both paths cost one comparison.
func (r *SQLRepo) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	var stored string
	u, err := scanUser(r.conn.QueryRow(ctx, `SELECT `+userColumns+`, password FROM users WHERE username = ?`, username), &stored)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, storeError(err, "authenticate")
		}
		r.hasher.Verify(r.dummyCredential(), password)
		r.logger.Debug("login rejected", "reason", "unknown user")
		return nil, apperr.NewInvalidCredentials()
	}

	if !r.hasher.Verify(stored, password) {
		r.logger.Debug("login rejected", "reason", "password mismatch")
		return nil, apperr.NewInvalidCredentials()
	}

	return u, nil
}

func (r *SQLRepo) dummyCredential() string {
	r.dummyOnce.Do(func() {
		r.dummy, _ = r.hasher.Hash("jobly-unknown-user")
	})
	return r.dummy
}
