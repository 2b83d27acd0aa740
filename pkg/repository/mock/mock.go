package mock

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/garnizeh/jobly/internal/apperr"
	"github.com/garnizeh/jobly/pkg/models"
	"github.com/garnizeh/jobly/pkg/repository"
)

// Mocks bundles in-memory repositories for handler tests. Filters only honour
// the search term; bound validation lives in the SQL store.
type Mocks struct {
	Companies *CompanyRepo
	Jobs      *JobRepo
	Users     *UserRepo
}

func NewMocks() *Mocks {
	companies := &CompanyRepo{byHandle: map[string]models.Company{}}
	return &Mocks{
		Companies: companies,
		Jobs:      &JobRepo{byID: map[int64]models.Job{}, Companies: companies},
		Users:     &UserRepo{byName: map[string]storedUser{}},
	}
}

var (
	_ repository.CompanyRepo = (*CompanyRepo)(nil)
	_ repository.JobRepo     = (*JobRepo)(nil)
	_ repository.UserRepo    = (*UserRepo)(nil)
)

// CompanyRepo keeps companies in insertion order. Err, when set, is returned
// by every call.
type CompanyRepo struct {
	mu       sync.Mutex
	order    []string
	byHandle map[string]models.Company
	Err      error
}

func (m *CompanyRepo) GetCompany(ctx context.Context, handle string) (*models.Company, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	c, ok := m.byHandle[handle]
	if !ok {
		return nil, apperr.NewNotFound("There is no company with handle '%s'", handle)
	}
	return &c, nil
}

func (m *CompanyRepo) ListCompanies(ctx context.Context, f models.CompanyFilter) ([]models.CompanySummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	out := []models.CompanySummary{}
	for _, h := range m.order {
		c := m.byHandle[h]
		if f.Search != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(f.Search)) {
			continue
		}
		out = append(out, models.CompanySummary{Handle: c.Handle, Name: c.Name})
	}
	return out, nil
}

func (m *CompanyRepo) CreateCompany(ctx context.Context, c *models.Company) (*models.Company, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	if _, ok := m.byHandle[c.Handle]; ok {
		return nil, apperr.NewConflict("handle")
	}
	for _, other := range m.byHandle {
		if other.Name == c.Name {
			return nil, apperr.NewConflict("name")
		}
	}
	m.byHandle[c.Handle] = *c
	m.order = append(m.order, c.Handle)
	out := *c
	return &out, nil
}

func (m *CompanyRepo) UpdateCompany(ctx context.Context, handle string, p *models.CompanyPatch) (*models.Company, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	c, ok := m.byHandle[handle]
	if !ok {
		return nil, apperr.NewNotFound("There is no company with handle '%s'", handle)
	}
	if p.Name.Set && p.Name.Value != nil {
		c.Name = *p.Name.Value
	}
	if p.NumEmployees.Set && p.NumEmployees.Value != nil {
		c.NumEmployees = *p.NumEmployees.Value
	}
	if p.Description.Set && p.Description.Value != nil {
		c.Description = *p.Description.Value
	}
	if p.LogoURL.Set {
		c.LogoURL = p.LogoURL.Value
	}
	m.byHandle[handle] = c
	return &c, nil
}

func (m *CompanyRepo) DeleteCompany(ctx context.Context, handle string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return "", m.Err
	}
	if _, ok := m.byHandle[handle]; !ok {
		return "", apperr.NewNotFound("There is no company with handle '%s'", handle)
	}
	delete(m.byHandle, handle)
	m.order = slices.DeleteFunc(m.order, func(h string) bool { return h == handle })
	return "Company deleted", nil
}

// JobRepo resolves company details through Companies when set.
type JobRepo struct {
	mu        sync.Mutex
	nextID    int64
	order     []int64
	byID      map[int64]models.Job
	Companies *CompanyRepo
	Err       error
}

func (m *JobRepo) GetJob(ctx context.Context, id int64) (*models.JobDetail, error) {
	m.mu.Lock()
	j, ok := m.byID[id]
	err := m.Err
	m.mu.Unlock()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NewNotFound("There is no job with id '%d'", id)
	}

	d := &models.JobDetail{ID: j.ID, Title: j.Title, Salary: j.Salary, Equity: j.Equity, DatePosted: j.DatePosted}
	d.Company.Handle = j.CompanyHandle
	if m.Companies != nil {
		if c, err := m.Companies.GetCompany(ctx, j.CompanyHandle); err == nil {
			d.Company = *c
		}
	}
	return d, nil
}

func (m *JobRepo) ListJobs(ctx context.Context, f models.JobFilter) ([]models.JobSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	out := []models.JobSummary{}
	for _, id := range m.order {
		j := m.byID[id]
		if f.Search != "" && !strings.Contains(strings.ToLower(j.Title), strings.ToLower(f.Search)) {
			continue
		}
		out = append(out, models.JobSummary{ID: j.ID, Title: j.Title, CompanyHandle: j.CompanyHandle})
	}
	return out, nil
}

func (m *JobRepo) CreateJob(ctx context.Context, nj *models.NewJob) (*models.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	m.nextID++
	j := models.Job{
		ID:            m.nextID,
		Title:         nj.Title,
		Salary:        nj.Salary,
		Equity:        nj.Equity,
		CompanyHandle: nj.CompanyHandle,
		DatePosted:    time.Now().UTC().Truncate(time.Millisecond),
	}
	m.byID[j.ID] = j
	m.order = append(m.order, j.ID)
	return &j, nil
}

func (m *JobRepo) UpdateJob(ctx context.Context, id int64, p *models.JobPatch) (*models.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	j, ok := m.byID[id]
	if !ok {
		return nil, apperr.NewNotFound("There is no job with id '%d'", id)
	}
	if p.Title.Set && p.Title.Value != nil {
		j.Title = *p.Title.Value
	}
	if p.Salary.Set {
		j.Salary = p.Salary.Value
	}
	if p.Equity.Set {
		j.Equity = p.Equity.Value
	}
	if p.CompanyHandle.Set && p.CompanyHandle.Value != nil {
		j.CompanyHandle = *p.CompanyHandle.Value
	}
	m.byID[id] = j
	return &j, nil
}

func (m *JobRepo) DeleteJob(ctx context.Context, id int64) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return "", m.Err
	}
	if _, ok := m.byID[id]; !ok {
		return "", apperr.NewNotFound("There is no job with id '%d'", id)
	}
	delete(m.byID, id)
	m.order = slices.DeleteFunc(m.order, func(v int64) bool { return v == id })
	return "Job deleted", nil
}

type storedUser struct {
	user     models.User
	password string
}

// UserRepo stores passwords as given.
type UserRepo struct {
	mu     sync.Mutex
	order  []string
	byName map[string]storedUser
	Err    error
}

// Put stores u with password, replacing any user of the same name. It lets
// tests create admins, which registration never does.
func (m *UserRepo) Put(u models.User, password string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byName[u.Username]; !ok {
		m.order = append(m.order, u.Username)
	}
	m.byName[u.Username] = storedUser{user: u, password: password}
}

func (m *UserRepo) GetUser(ctx context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	s, ok := m.byName[username]
	if !ok {
		return nil, apperr.NewNotFound("There is no user with username '%s'", username)
	}
	return &s.user, nil
}

func (m *UserRepo) ListUsers(ctx context.Context) ([]models.UserSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	out := []models.UserSummary{}
	for _, name := range m.order {
		u := m.byName[name].user
		out = append(out, models.UserSummary{Username: u.Username, FirstName: u.FirstName, LastName: u.LastName, Email: u.Email})
	}
	return out, nil
}

func (m *UserRepo) CreateUser(ctx context.Context, nu *models.NewUser) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	if _, ok := m.byName[nu.Username]; ok {
		return nil, apperr.NewConflict("username")
	}
	for _, s := range m.byName {
		if s.user.Email == nu.Email {
			return nil, apperr.NewConflict("email")
		}
	}
	u := models.User{Username: nu.Username, FirstName: nu.FirstName, LastName: nu.LastName, Email: nu.Email, PhotoURL: nu.PhotoURL}
	m.byName[u.Username] = storedUser{user: u, password: nu.Password}
	m.order = append(m.order, u.Username)
	return &u, nil
}

func (m *UserRepo) UpdateUser(ctx context.Context, username string, p *models.UserPatch) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	s, ok := m.byName[username]
	if !ok {
		return nil, apperr.NewNotFound("There is no user with username '%s'", username)
	}
	if p.Password.Set && p.Password.Value != nil {
		s.password = *p.Password.Value
	}
	if p.FirstName.Set && p.FirstName.Value != nil {
		s.user.FirstName = *p.FirstName.Value
	}
	if p.LastName.Set && p.LastName.Value != nil {
		s.user.LastName = *p.LastName.Value
	}
	if p.Email.Set && p.Email.Value != nil {
		s.user.Email = *p.Email.Value
	}
	if p.PhotoURL.Set {
		s.user.PhotoURL = p.PhotoURL.Value
	}
	m.byName[username] = s
	return &s.user, nil
}

func (m *UserRepo) DeleteUser(ctx context.Context, username string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return "", m.Err
	}
	if _, ok := m.byName[username]; !ok {
		return "", apperr.NewNotFound("There is no user with username '%s'", username)
	}
	delete(m.byName, username)
	m.order = slices.DeleteFunc(m.order, func(n string) bool { return n == username })
	return "User deleted", nil
}

func (m *UserRepo) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	s, ok := m.byName[username]
	if !ok || s.password != password {
		return nil, apperr.NewInvalidCredentials()
	}
	return &s.user, nil
}
