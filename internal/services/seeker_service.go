package services

import (
	"errors"
	"strconv"
	"strings"

	"github.com/hireboard/hireboard/internal/constants"
	"github.com/hireboard/hireboard/internal/metrics"
	"github.com/hireboard/hireboard/internal/models"
	"github.com/hireboard/hireboard/internal/repository"
	"go.uber.org/zap"
)

// SeekerService handles the portfolio, vacancy search and application workflow.
type SeekerService struct {
	portfolioRepo   repository.PortfolioRepository
	vacancyRepo     repository.VacancyRepository
	applicationRepo repository.ApplicationRepository
	log             *zap.Logger
}

// NewSeekerService creates a new SeekerService.
func NewSeekerService(
	portfolioRepo repository.PortfolioRepository,
	vacancyRepo repository.VacancyRepository,
	applicationRepo repository.ApplicationRepository,
	log *zap.Logger,
) *SeekerService {
	return &SeekerService{
		portfolioRepo:   portfolioRepo,
		vacancyRepo:     vacancyRepo,
		applicationRepo: applicationRepo,
		log:             log,
	}
}

// PortfolioInput holds the editable portfolio fields.
type PortfolioInput struct {
	Title           string
	Profession      string
	Bio             string
	Skills          string
	ExperienceYears *int
	Education       string
	Projects        string
	ContactInfo     string
	IsPublic        bool
}

// SearchInput holds the raw public search parameters.
type SearchInput struct {
	Search         string
	Experience     string
	EmploymentType string
	SalaryMin      string
	Sort           string
}

// SeekerDashboard aggregates a seeker's portfolio and applications.
type SeekerDashboard struct {
	Portfolio    *models.Portfolio
	Applications []models.Application
}

// GetPortfolio returns the seeker's first portfolio, or nil when none exists yet.
func (s *SeekerService) GetPortfolio(actor Actor) (*models.Portfolio, error) {
	if err := RequireRole(actor, models.RoleSeeker); err != nil {
		return nil, err
	}
	portfolio, err := s.portfolioRepo.FindFirstByUserID(actor.ID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, nil
		}
		return nil, storeError("failed to load portfolio", err)
	}
	if err := s.heal(portfolio); err != nil {
		return nil, err
	}
	return portfolio, nil
}

// GetOrCreatePortfolio returns the seeker's first portfolio, provisioning a
// public, unapproved stub when none exists.
func (s *SeekerService) GetOrCreatePortfolio(actor Actor) (*models.Portfolio, error) {
	portfolio, err := s.GetPortfolio(actor)
	if err != nil || portfolio != nil {
		return portfolio, err
	}

	portfolio = newPortfolioStub(actor.Name)
	portfolio.UserID = actor.ID
	if err := s.portfolioRepo.Create(portfolio); err != nil {
		return nil, storeError("failed to create portfolio", err)
	}
	return portfolio, nil
}

// EditPortfolio overwrites the portfolio and sends it back to moderation.
func (s *SeekerService) EditPortfolio(actor Actor, input PortfolioInput) (*models.Portfolio, error) {
	if err := RequireRole(actor, models.RoleSeeker); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	profession := strings.TrimSpace(input.Profession)
	if title == "" || profession == "" {
		return nil, ErrPortfolioFieldsRequired
	}
	if input.ExperienceYears != nil && *input.ExperienceYears < 0 {
		return nil, ErrNegativeExperience
	}

	portfolio, err := s.GetOrCreatePortfolio(actor)
	if err != nil {
		return nil, err
	}

	portfolio.Title = title
	portfolio.Profession = profession
	portfolio.Bio = strings.TrimSpace(input.Bio)
	portfolio.Skills = strings.TrimSpace(input.Skills)
	portfolio.ExperienceYears = input.ExperienceYears
	portfolio.Education = strings.TrimSpace(input.Education)
	portfolio.Projects = strings.TrimSpace(input.Projects)
	portfolio.ContactInfo = strings.TrimSpace(input.ContactInfo)
	portfolio.IsPublic = input.IsPublic
	portfolio.IsApproved = false

	if err := s.portfolioRepo.Update(portfolio); err != nil {
		return nil, storeError("failed to update portfolio", err)
	}

	s.log.Info("portfolio updated, awaiting moderation", zap.Uint64("portfolio_id", portfolio.ID), zap.Uint64("user_id", actor.ID))
	return portfolio, nil
}

// Dashboard returns the seeker's portfolio and applications.
func (s *SeekerService) Dashboard(actor Actor) (*SeekerDashboard, error) {
	portfolio, err := s.GetPortfolio(actor)
	if err != nil {
		return nil, err
	}

	applications, err := s.applicationRepo.ListBySeeker(actor.ID)
	if err != nil {
		return nil, storeError("failed to list applications", err)
	}

	return &SeekerDashboard{Portfolio: portfolio, Applications: applications}, nil
}

// ParseVacancyOrder maps a sort key to an ordering; unknown keys mean newest first.
func ParseVacancyOrder(key string) repository.VacancyOrder {
	switch strings.TrimSpace(key) {
	case "salary_high":
		return repository.OrderSalaryHigh
	case "salary_low":
		return repository.OrderSalaryLow
	default:
		return repository.OrderNewest
	}
}

// ParseSearch turns raw query parameters into a vacancy filter.
func ParseSearch(input SearchInput) (repository.VacancyFilter, error) {
	filter := repository.VacancyFilter{
		Search:          strings.TrimSpace(input.Search),
		ExperienceLevel: exactFilter(input.Experience),
		EmploymentType:  exactFilter(input.EmploymentType),
		Order:           ParseVacancyOrder(input.Sort),
	}

	if raw := strings.TrimSpace(input.SalaryMin); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return filter, ErrInvalidSalaryFilter
		}
		filter.MinSalary = &n
	}
	return filter, nil
}

// SearchVacancies lists publicly visible vacancies matching the filters.
func (s *SeekerService) SearchVacancies(input SearchInput) ([]models.Vacancy, error) {
	filter, err := ParseSearch(input)
	if err != nil {
		return nil, err
	}

	vacancies, err := s.vacancyRepo.Search(filter)
	if err != nil {
		return nil, storeError("failed to search vacancies", err)
	}
	return vacancies, nil
}

// Home returns the newest publicly visible vacancies.
func (s *SeekerService) Home() ([]models.Vacancy, error) {
	vacancies, err := s.vacancyRepo.Search(repository.VacancyFilter{
		Order: repository.OrderNewest,
		Limit: constants.HomeVacancyLimit,
	})
	if err != nil {
		return nil, storeError("failed to list vacancies", err)
	}
	return vacancies, nil
}

// GetVacancy returns a vacancy only while it is publicly listed.
func (s *SeekerService) GetVacancy(id uint64) (*models.Vacancy, error) {
	vacancy, err := s.vacancyRepo.FindByID(id, "Company")
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrVacancyNotFound
		}
		return nil, storeError("failed to load vacancy", err)
	}
	if !vacancy.Listed() {
		return nil, ErrVacancyNotFound
	}
	return vacancy, nil
}

// Apply submits the seeker's portfolio to a listed vacancy. Only one
// application per vacancy and seeker is accepted.
func (s *SeekerService) Apply(actor Actor, vacancyID uint64, coverLetter string) (*models.Application, error) {
	application, err := s.apply(actor, vacancyID, coverLetter)
	switch {
	case err == nil:
		metrics.ApplicationsTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	case errors.Is(err, ErrAlreadyApplied):
		metrics.ApplicationsTotal.WithLabelValues(metrics.ResultDuplicate).Inc()
	default:
		metrics.ApplicationsTotal.WithLabelValues(metrics.ResultRejected).Inc()
	}
	return application, err
}

func (s *SeekerService) apply(actor Actor, vacancyID uint64, coverLetter string) (*models.Application, error) {
	if err := RequireRole(actor, models.RoleSeeker); err != nil {
		return nil, err
	}

	vacancy, err := s.GetVacancy(vacancyID)
	if err != nil {
		return nil, err
	}

	portfolio, err := s.portfolioRepo.FindFirstByUserID(actor.ID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrPortfolioRequired
		}
		return nil, storeError("failed to load portfolio", err)
	}

	if _, err := s.applicationRepo.FindByVacancyAndSeeker(vacancy.ID, actor.ID); err == nil {
		return nil, ErrAlreadyApplied
	} else if !repository.IsNotFound(err) {
		return nil, storeError("failed to check applications", err)
	}

	application := &models.Application{
		VacancyID:   vacancy.ID,
		SeekerID:    actor.ID,
		PortfolioID: portfolio.ID,
		CoverLetter: strings.TrimSpace(coverLetter),
		Status:      models.ApplicationPending,
	}
	if err := s.applicationRepo.Create(application); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, ErrAlreadyApplied
		}
		return nil, storeError("failed to create application", err)
	}

	s.log.Info("application submitted",
		zap.Uint64("application_id", application.ID),
		zap.Uint64("vacancy_id", vacancy.ID),
		zap.Uint64("seeker_id", actor.ID),
	)
	return application, nil
}

func (s *SeekerService) heal(portfolio *models.Portfolio) error {
	if !portfolio.HasMissingTimestamps() {
		return nil
	}
	if err := s.portfolioRepo.HealOne(portfolio); err != nil {
		return storeError("failed to heal portfolio", err)
	}
	return nil
}

// exactFilter treats blank and "all" as no filter.
func exactFilter(v string) string {
	v = strings.TrimSpace(v)
	if v == "all" {
		return ""
	}
	return v
}
