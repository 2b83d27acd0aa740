package sqlstore_test

import (
	"context"
	"testing"

	dbfs "github.com/garnizeh/jobly/db"
	"github.com/garnizeh/jobly/internal/apperr"
	"github.com/garnizeh/jobly/internal/db"
	"github.com/garnizeh/jobly/internal/password"
	"github.com/garnizeh/jobly/internal/repository/sqlstore"
	"github.com/garnizeh/jobly/pkg/models"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func setupRepo(t *testing.T) (*sqlstore.SQLRepo, *db.DB) {
	t.Helper()
	ctx := context.Background()

	d, err := db.New(ctx, "sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	require.NoError(t, db.Migrate(ctx, d, dbfs.Files))

	return sqlstore.New(d, password.Bcrypt{Cost: bcrypt.MinCost}, nil), d
}

func ptr[T any](v T) *T { return &v }

func requireKind(t *testing.T, err error, kind apperr.Kind) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, kind, apperr.KindOf(err), "got %v", err)
}

func countRows(t *testing.T, d *db.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, d.QueryRow(context.Background(), `SELECT COUNT(1) FROM `+table).Scan(&n))
	return n
}

// seedCompanies inserts c1..c3 with 1..3 employees.
func seedCompanies(t *testing.T, r *sqlstore.SQLRepo) {
	t.Helper()
	for i, h := range []string{"c1", "c2", "c3"} {
		_, err := r.CreateCompany(context.Background(), &models.Company{
			Handle:       h,
			Name:         "C" + h[1:],
			NumEmployees: i + 1,
			Description:  "Desc" + h[1:],
			LogoURL:      ptr("http://" + h + ".img"),
		})
		require.NoError(t, err)
	}
}
