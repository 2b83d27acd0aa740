package models

import "time"

// Domain models matching the database schema in db/migrations/*/0001_init.sql

type Company struct {
	Handle       string  `json:"handle" db:"handle"`
	Name         string  `json:"name" db:"name"`
	NumEmployees int     `json:"num_employees" db:"num_employees"`
	Description  string  `json:"description" db:"description"`
	LogoURL      *string `json:"logo_url" db:"logo_url"`
}

// CompanySummary is the listing projection of a Company.
type CompanySummary struct {
	Handle string `json:"handle" db:"handle"`
	Name   string `json:"name" db:"name"`
}

// CompanyFilter carries the raw query-string filters of GET /companies.
// Empty fields impose no constraint.
type CompanyFilter struct {
	Search       string
	MinEmployees string
	MaxEmployees string
}

type CompanyPatch struct {
	Name         Optional[string] `json:"name"`
	NumEmployees Optional[int]    `json:"num_employees"`
	Description  Optional[string] `json:"description"`
	LogoURL      Optional[string] `json:"logo_url"`
}

type Job struct {
	ID            int64     `json:"id" db:"id"`
	Title         string    `json:"title" db:"title"`
	Salary        *float64  `json:"salary" db:"salary"`
	Equity        *float64  `json:"equity" db:"equity"`
	CompanyHandle string    `json:"company_handle" db:"company_handle"`
	DatePosted    time.Time `json:"date_posted" db:"date_posted"`
}

type NewJob struct {
	Title         string   `json:"title"`
	Salary        *float64 `json:"salary"`
	Equity        *float64 `json:"equity"`
	CompanyHandle string   `json:"company_handle"`
}

// JobSummary is the listing projection of a Job.
type JobSummary struct {
	ID            int64  `json:"id" db:"id"`
	Title         string `json:"title" db:"title"`
	CompanyHandle string `json:"company_handle" db:"company_handle"`
}

// JobDetail is a Job with its owning company embedded.
type JobDetail struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	Salary     *float64  `json:"salary"`
	Equity     *float64  `json:"equity"`
	Company    Company   `json:"company"`
	DatePosted time.Time `json:"date_posted"`
}

// JobFilter carries the raw query-string filters of GET /jobs.
type JobFilter struct {
	Search    string
	MinSalary string
	MinEquity string
}

type JobPatch struct {
	Title         Optional[string]  `json:"title"`
	Salary        Optional[float64] `json:"salary"`
	Equity        Optional[float64] `json:"equity"`
	CompanyHandle Optional[string]  `json:"company_handle"`
}

// User never carries the stored credential.
type User struct {
	Username  string  `json:"username" db:"username"`
	FirstName string  `json:"first_name" db:"first_name"`
	LastName  string  `json:"last_name" db:"last_name"`
	Email     string  `json:"email" db:"email"`
	PhotoURL  *string `json:"photo_url" db:"photo_url"`
	IsAdmin   bool    `json:"is_admin" db:"is_admin"`
}

// UserSummary is the listing projection of a User.
type UserSummary struct {
	Username  string `json:"username" db:"username"`
	FirstName string `json:"first_name" db:"first_name"`
	LastName  string `json:"last_name" db:"last_name"`
	Email     string `json:"email" db:"email"`
}

type NewUser struct {
	Username  string  `json:"username"`
	Password  string  `json:"password"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     string  `json:"email"`
	PhotoURL  *string `json:"photo_url"`
}

type UserPatch struct {
	Password  Optional[string] `json:"password"`
	FirstName Optional[string] `json:"first_name"`
	LastName  Optional[string] `json:"last_name"`
	Email     Optional[string] `json:"email"`
	PhotoURL  Optional[string] `json:"photo_url"`
}

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
