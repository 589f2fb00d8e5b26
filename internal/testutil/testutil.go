// Package testutil builds in-memory databases and fixtures for tests.
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/hireboard/hireboard/internal/database"
	"github.com/hireboard/hireboard/internal/models"
	"github.com/hireboard/hireboard/internal/utils"
)

// Password satisfies the password policy and is set on every fixture user.
const Password = "Secret1!"

var seq atomic.Int64

// NewDB opens a migrated in-memory sqlite database. A single connection
// keeps every query on the same in-memory database.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, database.Migrate(db, zap.NewNop()))
	return db
}

// NewUser inserts an active user with the given role.
func NewUser(t *testing.T, db *gorm.DB, role models.Role) *models.User {
	t.Helper()

	hash, err := utils.HashPassword(Password, bcrypt.MinCost)
	require.NoError(t, err)

	n := seq.Add(1)
	user := &models.User{
		Email:        fmt.Sprintf("%s%d@test.com", role, n),
		PasswordHash: hash,
		Name:         fmt.Sprintf("User %c", 'A'+rune(n%26)),
		Role:         role,
		IsActive:     true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// NewCompany inserts a company owned by owner.
func NewCompany(t *testing.T, db *gorm.DB, owner *models.User, approved bool) *models.Company {
	t.Helper()

	company := &models.Company{
		UserID:     owner.ID,
		Name:       "Acme " + owner.Name,
		Industry:   "Software",
		IsApproved: approved,
	}
	require.NoError(t, db.Create(company).Error)
	return company
}

// NewPortfolio inserts a portfolio owned by owner.
func NewPortfolio(t *testing.T, db *gorm.DB, owner *models.User, public, approved bool) *models.Portfolio {
	t.Helper()

	portfolio := &models.Portfolio{
		UserID:     owner.ID,
		Title:      "Portfolio of " + owner.Name,
		Profession: "Engineer",
		Bio:        "Builds things",
		IsPublic:   public,
		IsApproved: approved,
	}
	require.NoError(t, db.Create(portfolio).Error)
	return portfolio
}

// VacancyOption adjusts a vacancy fixture before it is inserted.
type VacancyOption func(*models.Vacancy)

func WithSalary(lo, hi int) VacancyOption {
	return func(v *models.Vacancy) {
		v.SalaryMin = &lo
		v.SalaryMax = &hi
	}
}

func WithTitle(title string) VacancyOption {
	return func(v *models.Vacancy) { v.Title = title }
}

func WithLevel(experience, employment string) VacancyOption {
	return func(v *models.Vacancy) {
		v.ExperienceLevel = experience
		v.EmploymentType = employment
	}
}

// NewVacancy inserts a vacancy for company.
func NewVacancy(t *testing.T, db *gorm.DB, company *models.Company, active, approved bool, opts ...VacancyOption) *models.Vacancy {
	t.Helper()

	vacancy := &models.Vacancy{
		EmployerID:      company.UserID,
		CompanyID:       company.ID,
		Title:           fmt.Sprintf("Vacancy %d", seq.Add(1)),
		Description:     "Interesting work",
		Requirements:    "Go",
		EmploymentType:  "full_time",
		ExperienceLevel: "middle",
		Location:        "Remote",
		IsActive:        active,
		IsApproved:      approved,
	}
	for _, opt := range opts {
		opt(vacancy)
	}
	require.NoError(t, db.Create(vacancy).Error)
	return vacancy
}

// NewApplication inserts a pending application.
func NewApplication(t *testing.T, db *gorm.DB, vacancy *models.Vacancy, seeker *models.User, portfolio *models.Portfolio) *models.Application {
	t.Helper()

	application := &models.Application{
		VacancyID:   vacancy.ID,
		SeekerID:    seeker.ID,
		PortfolioID: portfolio.ID,
		CoverLetter: "Hello",
		Status:      models.ApplicationPending,
	}
	require.NoError(t, db.Create(application).Error)
	return application
}
