package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/hireboard/hireboard/internal/models"
	"gorm.io/gorm"
)

// Sort is an ORDER BY on a single, already allow-listed column.
type Sort struct {
	Column string
	Desc   bool
}

// VacancyOrder selects the ordering of public vacancy search results.
type VacancyOrder int

const (
	OrderNewest VacancyOrder = iota
	OrderSalaryHigh
	OrderSalaryLow
)

// VacancyFilter holds the optional, conjunctive public search filters.
type VacancyFilter struct {
	Search          string
	ExperienceLevel string
	EmploymentType  string
	MinSalary       *int
	Order           VacancyOrder
	Limit           int
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// CreateWithProfile creates a user and its role profile stub within a single
	// transaction. At most one of company and portfolio is non-nil.
	CreateWithProfile(user *models.User, company *models.Company, portfolio *models.Portfolio) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by normalized email
	FindByEmail(email string) (*models.User, error)

	// UpdatePassword replaces the stored password hash
	UpdatePassword(id uint64, hash string) error

	// SetActive activates or deactivates a user
	SetActive(id uint64, active bool) error

	// TouchLastLogin stamps the last successful login
	TouchLastLogin(id uint64, at time.Time) error

	// List returns every user in the given order
	List(sort Sort) ([]models.User, error)

	// Recent returns the most recently created users
	Recent(limit int) ([]models.User, error)

	// Count counts all users
	Count() (int64, error)
}

// CompanyRepository defines the interface for company data access
type CompanyRepository interface {
	Create(company *models.Company) error
	FindByID(id uint64, preload ...string) (*models.Company, error)
	FindByUserID(userID uint64) (*models.Company, error)

	// Update saves every column of the company row
	Update(company *models.Company) error

	SetApproved(id uint64, approved bool) error
	List(sort Sort) ([]models.Company, error)

	// Delete removes the company, its vacancies and their applications
	Delete(id uint64) error

	Count() (int64, error)
}

// PortfolioRepository defines the interface for portfolio data access
type PortfolioRepository interface {
	Create(portfolio *models.Portfolio) error
	FindByID(id uint64, preload ...string) (*models.Portfolio, error)

	// FindFirstByUserID returns the user's oldest portfolio
	FindFirstByUserID(userID uint64) (*models.Portfolio, error)

	// Update saves every column of the portfolio row
	Update(portfolio *models.Portfolio) error

	SetApproved(id uint64, approved bool) error
	List(sort Sort) ([]models.Portfolio, error)

	// HealTimestamps stamps now into NULL created_at/updated_at columns of
	// every portfolio and returns the number of rows healed
	HealTimestamps(now time.Time) (int64, error)

	// HealOne persists the timestamps of a single portfolio without touching other columns
	HealOne(portfolio *models.Portfolio) error

	// Delete removes the portfolio and the applications referencing it
	Delete(id uint64) error
}

// VacancyRepository defines the interface for vacancy data access
type VacancyRepository interface {
	Create(vacancy *models.Vacancy) error
	FindByID(id uint64, preload ...string) (*models.Vacancy, error)

	// Update saves every column of the vacancy row
	Update(vacancy *models.Vacancy) error

	// Search lists publicly visible vacancies matching the filter
	Search(filter VacancyFilter) ([]models.Vacancy, error)

	ListByEmployer(employerID uint64) ([]models.Vacancy, error)
	ListByCompany(companyID uint64) ([]models.Vacancy, error)
	List(sort Sort) ([]models.Vacancy, error)
	Recent(limit int) ([]models.Vacancy, error)

	SetApproved(id uint64, approved bool) error

	// ToggleActive flips is_active in a single statement
	ToggleActive(id uint64) error

	// Delete removes the vacancy and its applications
	Delete(id uint64) error

	Count() (int64, error)
	CountPending() (int64, error)
}

// ApplicationRepository defines the interface for application data access
type ApplicationRepository interface {
	Create(application *models.Application) error
	FindByID(id uint64, preload ...string) (*models.Application, error)
	FindByVacancyAndSeeker(vacancyID, seekerID uint64) (*models.Application, error)

	// UpdateStatus writes status and rejection reason together
	UpdateStatus(id uint64, status models.ApplicationStatus, reason *string) error

	ListByEmployer(employerID uint64) ([]models.Application, error)
	ListBySeeker(seekerID uint64) ([]models.Application, error)

	// ExistsForEmployer reports whether the portfolio was submitted to any
	// vacancy owned by the employer
	ExistsForEmployer(portfolioID, employerID uint64) (bool, error)

	Count() (int64, error)
}

// IsDuplicateKey reports whether err is a unique-constraint violation.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation")
}

// IsNotFound reports whether err means the row does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func withPreload(db *gorm.DB, preload []string) *gorm.DB {
	for _, p := range preload {
		db = db.Preload(p)
	}
	return db
}
