package services

import (
	"strings"

	"github.com/hireboard/hireboard/internal/models"
	"github.com/hireboard/hireboard/internal/repository"
	"go.uber.org/zap"
)

// EmployerService handles the company, vacancy and application review workflow.
type EmployerService struct {
	companyRepo     repository.CompanyRepository
	vacancyRepo     repository.VacancyRepository
	portfolioRepo   repository.PortfolioRepository
	applicationRepo repository.ApplicationRepository
	log             *zap.Logger
}

// NewEmployerService creates a new EmployerService.
func NewEmployerService(
	companyRepo repository.CompanyRepository,
	vacancyRepo repository.VacancyRepository,
	portfolioRepo repository.PortfolioRepository,
	applicationRepo repository.ApplicationRepository,
	log *zap.Logger,
) *EmployerService {
	return &EmployerService{
		companyRepo:     companyRepo,
		vacancyRepo:     vacancyRepo,
		portfolioRepo:   portfolioRepo,
		applicationRepo: applicationRepo,
		log:             log,
	}
}

// CompanyInput holds the editable company profile.
type CompanyInput struct {
	Name         string
	Description  string
	Industry     string
	Website      string
	ContactEmail string
	Phone        string
	Address      string
}

// VacancyInput holds the fields of a vacancy.
type VacancyInput struct {
	Title           string
	Description     string
	Requirements    string
	SalaryMin       *int
	SalaryMax       *int
	EmploymentType  string
	ExperienceLevel string
	Location        string
}

// EmployerDashboard aggregates everything an employer owns.
type EmployerDashboard struct {
	Company      *models.Company
	Vacancies    []models.Vacancy
	Applications []models.Application
}

// GetCompany returns the employer's company, or nil when none exists yet.
func (s *EmployerService) GetCompany(actor Actor) (*models.Company, error) {
	if err := RequireRole(actor, models.RoleEmployer); err != nil {
		return nil, err
	}
	company, err := s.companyRepo.FindByUserID(actor.ID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, nil
		}
		return nil, storeError("failed to load company", err)
	}
	return company, nil
}

// GetOrCreateCompany returns the employer's company, provisioning an
// unapproved stub named after the employer when none exists.
func (s *EmployerService) GetOrCreateCompany(actor Actor) (*models.Company, error) {
	if err := RequireRole(actor, models.RoleEmployer); err != nil {
		return nil, err
	}

	company, err := s.companyRepo.FindByUserID(actor.ID)
	if err == nil {
		return company, nil
	}
	if !repository.IsNotFound(err) {
		return nil, storeError("failed to load company", err)
	}

	company = &models.Company{UserID: actor.ID, Name: actor.Name}
	if err := s.companyRepo.Create(company); err != nil {
		if repository.IsDuplicateKey(err) {
			// created by a concurrent request
			if existing, findErr := s.companyRepo.FindByUserID(actor.ID); findErr == nil {
				return existing, nil
			}
		}
		return nil, storeError("failed to create company", err)
	}
	return company, nil
}

// EditCompany overwrites the company profile and sends it back to moderation.
func (s *EmployerService) EditCompany(actor Actor, input CompanyInput) (*models.Company, error) {
	if err := RequireRole(actor, models.RoleEmployer); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrCompanyNameRequired
	}
	contactEmail := NormalizeEmail(input.ContactEmail)
	if contactEmail != "" {
		if err := validateEmail(contactEmail); err != nil {
			return nil, err
		}
	}

	company, err := s.GetOrCreateCompany(actor)
	if err != nil {
		return nil, err
	}

	company.Name = name
	company.Description = strings.TrimSpace(input.Description)
	company.Industry = strings.TrimSpace(input.Industry)
	company.Website = strings.TrimSpace(input.Website)
	company.ContactEmail = contactEmail
	company.Phone = strings.TrimSpace(input.Phone)
	company.Address = strings.TrimSpace(input.Address)
	company.IsApproved = false

	if err := s.companyRepo.Update(company); err != nil {
		return nil, storeError("failed to update company", err)
	}

	s.log.Info("company updated, awaiting moderation", zap.Uint64("company_id", company.ID), zap.Uint64("user_id", actor.ID))
	return company, nil
}

// CreateVacancy posts a new vacancy for the employer's approved company.
func (s *EmployerService) CreateVacancy(actor Actor, input VacancyInput) (*models.Vacancy, error) {
	if err := RequireRole(actor, models.RoleEmployer); err != nil {
		return nil, err
	}

	company, err := s.companyRepo.FindByUserID(actor.ID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrCompanyRequired
		}
		return nil, storeError("failed to load company", err)
	}
	if !company.IsApproved {
		return nil, ErrCompanyNotApproved
	}

	vacancy := &models.Vacancy{
		EmployerID: actor.ID,
		CompanyID:  company.ID,
		IsActive:   true,
	}
	if err := applyVacancyInput(vacancy, input); err != nil {
		return nil, err
	}

	if err := s.vacancyRepo.Create(vacancy); err != nil {
		return nil, storeError("failed to create vacancy", err)
	}

	s.log.Info("vacancy created, awaiting moderation", zap.Uint64("vacancy_id", vacancy.ID), zap.Uint64("company_id", company.ID))
	return vacancy, nil
}

// EditVacancy overwrites an owned vacancy and sends it back to moderation.
func (s *EmployerService) EditVacancy(actor Actor, vacancyID uint64, input VacancyInput) (*models.Vacancy, error) {
	if err := RequireRole(actor, models.RoleEmployer); err != nil {
		return nil, err
	}

	vacancy, err := s.vacancyRepo.FindByID(vacancyID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrVacancyNotFound
		}
		return nil, storeError("failed to load vacancy", err)
	}
	if vacancy.EmployerID != actor.ID {
		return nil, ErrNotVacancyOwner
	}

	if err := applyVacancyInput(vacancy, input); err != nil {
		return nil, err
	}
	vacancy.IsApproved = false

	if err := s.vacancyRepo.Update(vacancy); err != nil {
		return nil, storeError("failed to update vacancy", err)
	}
	return vacancy, nil
}

// Dashboard returns the employer's company, vacancies and the applications to them.
func (s *EmployerService) Dashboard(actor Actor) (*EmployerDashboard, error) {
	company, err := s.GetCompany(actor)
	if err != nil {
		return nil, err
	}

	vacancies, err := s.vacancyRepo.ListByEmployer(actor.ID)
	if err != nil {
		return nil, storeError("failed to list vacancies", err)
	}

	applications, err := s.applicationRepo.ListByEmployer(actor.ID)
	if err != nil {
		return nil, storeError("failed to list applications", err)
	}
	for i := range applications {
		s.healPortfolio(applications[i].Portfolio)
	}

	return &EmployerDashboard{
		Company:      company,
		Vacancies:    vacancies,
		Applications: applications,
	}, nil
}

// UpdateApplicationStatus moves an application to a new status. A rejection
// must carry a reason; every other status clears it.
func (s *EmployerService) UpdateApplicationStatus(actor Actor, applicationID uint64, status, reason string) (*models.Application, error) {
	if err := RequireRole(actor, models.RoleEmployer); err != nil {
		return nil, err
	}

	application, err := s.ownedApplication(actor, applicationID, "Vacancy")
	if err != nil {
		return nil, err
	}

	newStatus := models.ApplicationStatus(strings.TrimSpace(status))
	if !newStatus.Valid() {
		return nil, ErrInvalidStatus
	}

	var rejection *string
	if newStatus == models.ApplicationRejected {
		trimmed := strings.TrimSpace(reason)
		if trimmed == "" {
			return nil, ErrRejectionReasonRequired
		}
		rejection = &trimmed
	}

	if err := s.applicationRepo.UpdateStatus(application.ID, newStatus, rejection); err != nil {
		return nil, storeError("failed to update application", err)
	}

	application.Status = newStatus
	application.RejectionReason = rejection
	s.log.Info("application status updated",
		zap.Uint64("application_id", application.ID),
		zap.String("status", string(newStatus)),
	)
	return application, nil
}

// ViewApplication returns an application to one of the employer's vacancies
// with its vacancy, seeker and portfolio.
func (s *EmployerService) ViewApplication(actor Actor, applicationID uint64) (*models.Application, error) {
	if err := RequireRole(actor, models.RoleEmployer); err != nil {
		return nil, err
	}

	application, err := s.ownedApplication(actor, applicationID, "Vacancy", "Seeker", "Portfolio")
	if err != nil {
		return nil, err
	}
	s.healPortfolio(application.Portfolio)
	return application, nil
}

// ViewPortfolio returns a portfolio the employer is allowed to see: it must
// be approved and either public or submitted to one of the employer's vacancies.
func (s *EmployerService) ViewPortfolio(actor Actor, portfolioID uint64) (*models.Portfolio, error) {
	if err := RequireRole(actor, models.RoleEmployer); err != nil {
		return nil, err
	}

	portfolio, err := s.portfolioRepo.FindByID(portfolioID, "Owner")
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrPortfolioNotFound
		}
		return nil, storeError("failed to load portfolio", err)
	}

	if !portfolio.IsApproved {
		return nil, ErrPortfolioNotVisible
	}
	if !portfolio.IsPublic {
		applied, err := s.applicationRepo.ExistsForEmployer(portfolio.ID, actor.ID)
		if err != nil {
			return nil, storeError("failed to check applications", err)
		}
		if !applied {
			return nil, ErrPortfolioNotVisible
		}
	}

	if portfolio.HasMissingTimestamps() {
		if err := s.portfolioRepo.HealOne(portfolio); err != nil {
			return nil, storeError("failed to heal portfolio", err)
		}
	}
	return portfolio, nil
}

func (s *EmployerService) ownedApplication(actor Actor, applicationID uint64, preload ...string) (*models.Application, error) {
	application, err := s.applicationRepo.FindByID(applicationID, preload...)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrApplicationNotFound
		}
		return nil, storeError("failed to load application", err)
	}
	if application.Vacancy == nil || application.Vacancy.EmployerID != actor.ID {
		return nil, ErrNotVacancyOwner
	}
	return application, nil
}

func (s *EmployerService) healPortfolio(p *models.Portfolio) {
	if p == nil || !p.HasMissingTimestamps() {
		return
	}
	if err := s.portfolioRepo.HealOne(p); err != nil {
		s.log.Warn("failed to heal portfolio timestamps", zap.Uint64("portfolio_id", p.ID), zap.Error(err))
	}
}

func applyVacancyInput(vacancy *models.Vacancy, input VacancyInput) error {
	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	requirements := strings.TrimSpace(input.Requirements)
	if title == "" || description == "" || requirements == "" {
		return ErrVacancyFieldsRequired
	}
	if (input.SalaryMin != nil && *input.SalaryMin < 0) || (input.SalaryMax != nil && *input.SalaryMax < 0) {
		return ErrInvalidSalary
	}
	if input.SalaryMin != nil && input.SalaryMax != nil && *input.SalaryMin > *input.SalaryMax {
		return ErrInvalidSalaryRange
	}

	vacancy.Title = title
	vacancy.Description = description
	vacancy.Requirements = requirements
	vacancy.SalaryMin = input.SalaryMin
	vacancy.SalaryMax = input.SalaryMax
	vacancy.EmploymentType = strings.TrimSpace(input.EmploymentType)
	vacancy.ExperienceLevel = strings.TrimSpace(input.ExperienceLevel)
	vacancy.Location = strings.TrimSpace(input.Location)
	return nil
}
