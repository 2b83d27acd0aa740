package repository

import (
	"context"

	"github.com/garnizeh/jobly/pkg/models"
)

// Repository interfaces for domain entities. These are the public contracts
// consumers should depend on; concrete implementations live under internal/.
//
// Failures are *apperr.Error values: NotFound for a missing key, Conflict for
// a uniqueness collision, InvalidFilter for a rejected list filter,
// ValidationFailed for a dangling reference, Internal otherwise.

type CompanyRepo interface {
	GetCompany(ctx context.Context, handle string) (*models.Company, error)
	ListCompanies(ctx context.Context, f models.CompanyFilter) ([]models.CompanySummary, error)
	CreateCompany(ctx context.Context, c *models.Company) (*models.Company, error)
	UpdateCompany(ctx context.Context, handle string, p *models.CompanyPatch) (*models.Company, error)
	DeleteCompany(ctx context.Context, handle string) (string, error)
}

type JobRepo interface {
	GetJob(ctx context.Context, id int64) (*models.JobDetail, error)
	ListJobs(ctx context.Context, f models.JobFilter) ([]models.JobSummary, error)
	CreateJob(ctx context.Context, j *models.NewJob) (*models.Job, error)
	UpdateJob(ctx context.Context, id int64, p *models.JobPatch) (*models.Job, error)
	DeleteJob(ctx context.Context, id int64) (string, error)
}

type UserRepo interface {
	GetUser(ctx context.Context, username string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.UserSummary, error)
	CreateUser(ctx context.Context, u *models.NewUser) (*models.User, error)
	UpdateUser(ctx context.Context, username string, p *models.UserPatch) (*models.User, error)
	DeleteUser(ctx context.Context, username string) (string, error)
	// Authenticate returns the user whose stored credential matches password.
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
}
