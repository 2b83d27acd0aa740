package sqlstore_test

import (
	"context"
	"testing"

	"github.com/garnizeh/jobly/internal/apperr"
	"github.com/garnizeh/jobly/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func handles(cs []models.CompanySummary) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.Handle)
	}
	return out
}

func TestListCompanies(t *testing.T) {
	r, _ := setupRepo(t)
	seedCompanies(t, r)
	ctx := context.Background()

	cases := []struct {
		name   string
		filter models.CompanyFilter
		want   []string
	}{
		{"NoFilter", models.CompanyFilter{}, []string{"c1", "c2", "c3"}},
		{"Search", models.CompanyFilter{Search: "1"}, []string{"c1"}},
		{"SearchCaseInsensitive", models.CompanyFilter{Search: "c"}, []string{"c1", "c2", "c3"}},
		{"SearchNoMatch", models.CompanyFilter{Search: "nope"}, []string{}},
		{"SearchWildcardIsLiteral", models.CompanyFilter{Search: "%"}, []string{}},
		{"MinExclusive", models.CompanyFilter{MinEmployees: "2"}, []string{"c3"}},
		{"MaxExclusive", models.CompanyFilter{MaxEmployees: "2"}, []string{"c1"}},
		{"MinAndMax", models.CompanyFilter{MinEmployees: "1", MaxEmployees: "3"}, []string{"c2"}},
		{"FractionalBound", models.CompanyFilter{MinEmployees: "1.5"}, []string{"c2", "c3"}},
		{"SearchAndBounds", models.CompanyFilter{Search: "C", MinEmployees: "1", MaxEmployees: "100001"}, []string{"c2", "c3"}},
		{"EqualBoundsEmpty", models.CompanyFilter{MinEmployees: "2", MaxEmployees: "2"}, []string{}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := r.ListCompanies(ctx, c.filter)
			require.NoError(t, err)
			assert.ElementsMatch(t, c.want, handles(got))
		})
	}
}

func TestListCompanies_InvalidFilters(t *testing.T) {
	r, _ := setupRepo(t)
	ctx := context.Background()

	cases := []struct {
		name   string
		filter models.CompanyFilter
		msg    string
	}{
		{"MinGreaterThanMax", models.CompanyFilter{MinEmployees: "2", MaxEmployees: "1"}, "min_employees cannot be greater than max_employees"},
		{"NumericNotLexical", models.CompanyFilter{MinEmployees: "10", MaxEmployees: "9"}, "min_employees cannot be greater than max_employees"},
		{"NegativeMin", models.CompanyFilter{MinEmployees: "-2"}, "min_employees must be a number greater than 0"},
		{"ZeroMax", models.CompanyFilter{MaxEmployees: "0"}, "max_employees must be a number greater than 0"},
		{"Letters", models.CompanyFilter{MinEmployees: "asdf"}, "min_employees must be a number greater than 0"},
		{"Whitespace", models.CompanyFilter{MaxEmployees: "1 0"}, "max_employees must be a number greater than 0"},
		{"LeadingSpace", models.CompanyFilter{MinEmployees: " 5"}, "min_employees must be a number greater than 0"},
		{"NaN", models.CompanyFilter{MinEmployees: "NaN"}, "min_employees must be a number greater than 0"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := r.ListCompanies(ctx, c.filter)
			requireKind(t, err, apperr.InvalidFilter)
			var ae *apperr.Error
			require.ErrorAs(t, err, &ae)
			assert.Equal(t, c.msg, ae.Message)
		})
	}
}

func TestGetCompany(t *testing.T) {
	r, _ := setupRepo(t)
	seedCompanies(t, r)
	ctx := context.Background()

	c, err := r.GetCompany(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "C1", c.Name)
	assert.Equal(t, 1, c.NumEmployees)
	require.NotNil(t, c.LogoURL)
	assert.Equal(t, "http://c1.img", *c.LogoURL)

	_, err = r.GetCompany(ctx, "nope")
	requireKind(t, err, apperr.NotFound)
	assert.Contains(t, err.Error(), "There is no company with handle 'nope'")
}

func TestCreateCompany(t *testing.T) {
	r, d := setupRepo(t)
	ctx := context.Background()

	c, err := r.CreateCompany(ctx, &models.Company{Handle: "intl", Name: "Intel", NumEmployees: 99999, Description: "They make processors"})
	require.NoError(t, err)
	assert.Equal(t, "intl", c.Handle)
	assert.Nil(t, c.LogoURL)

	t.Run("DuplicateName", func(t *testing.T) {
		_, err := r.CreateCompany(ctx, &models.Company{Handle: "intl2", Name: "Intel", NumEmployees: 1, Description: "d"})
		requireKind(t, err, apperr.Conflict)
		var ae *apperr.Error
		require.ErrorAs(t, err, &ae)
		assert.Equal(t, "name", ae.Field)
		assert.Equal(t, "That name already exists", ae.Message)
	})

	t.Run("DuplicateHandle", func(t *testing.T) {
		_, err := r.CreateCompany(ctx, &models.Company{Handle: "intl", Name: "Other", NumEmployees: 1, Description: "d"})
		requireKind(t, err, apperr.Conflict)
		var ae *apperr.Error
		require.ErrorAs(t, err, &ae)
		assert.Equal(t, "handle", ae.Field)
	})

	t.Run("NegativeEmployees", func(t *testing.T) {
		_, err := r.CreateCompany(ctx, &models.Company{Handle: "neg", Name: "Neg", NumEmployees: -1, Description: "d"})
		requireKind(t, err, apperr.ValidationFailed)
	})

	assert.Equal(t, 1, countRows(t, d, "companies"), "failed creates must not write")
}

func TestUpdateCompany_Partial(t *testing.T) {
	r, _ := setupRepo(t)
	ctx := context.Background()

	_, err := r.CreateCompany(ctx, &models.Company{
		Handle: "amzn", Name: "Amazon", NumEmployees: 100000,
		Description: "The online bookstore", LogoURL: ptr("http://logo.com"),
	})
	require.NoError(t, err)

	c, err := r.UpdateCompany(ctx, "amzn", &models.CompanyPatch{NumEmployees: models.Some(100001)})
	require.NoError(t, err)
	assert.Equal(t, "Amazon", c.Name)
	assert.Equal(t, 100001, c.NumEmployees)
	assert.Equal(t, "The online bookstore", c.Description)
	require.NotNil(t, c.LogoURL)
	assert.Equal(t, "http://logo.com", *c.LogoURL)

	c, err = r.UpdateCompany(ctx, "amzn", &models.CompanyPatch{LogoURL: models.Null[string]()})
	require.NoError(t, err)
	assert.Nil(t, c.LogoURL)
	assert.Equal(t, 100001, c.NumEmployees)

	c, err = r.UpdateCompany(ctx, "amzn", &models.CompanyPatch{})
	require.NoError(t, err)
	assert.Equal(t, "Amazon", c.Name)

	stored, err := r.GetCompany(ctx, "amzn")
	require.NoError(t, err)
	assert.Equal(t, c, stored)
}

func TestUpdateCompany_Failures(t *testing.T) {
	r, _ := setupRepo(t)
	seedCompanies(t, r)
	ctx := context.Background()

	_, err := r.UpdateCompany(ctx, "nope", &models.CompanyPatch{NumEmployees: models.Some(5)})
	requireKind(t, err, apperr.NotFound)

	_, err = r.UpdateCompany(ctx, "nope", &models.CompanyPatch{})
	requireKind(t, err, apperr.NotFound)

	_, err = r.UpdateCompany(ctx, "c1", &models.CompanyPatch{Name: models.Some("C2")})
	requireKind(t, err, apperr.Conflict)

	c, err := r.GetCompany(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "C1", c.Name)
}

func TestDeleteCompany(t *testing.T) {
	r, d := setupRepo(t)
	seedCompanies(t, r)
	ctx := context.Background()

	_, err := r.CreateJob(ctx, &models.NewJob{Title: "J1", CompanyHandle: "c1"})
	require.NoError(t, err)

	msg, err := r.DeleteCompany(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "Company deleted", msg)
	assert.Equal(t, 0, countRows(t, d, "jobs"), "jobs cascade with their company")

	_, err = r.DeleteCompany(ctx, "c1")
	requireKind(t, err, apperr.NotFound)

	_, err = r.GetCompany(ctx, "c1")
	requireKind(t, err, apperr.NotFound)
}
