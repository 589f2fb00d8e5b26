package services

import (
	"strings"
	"time"

	"github.com/hireboard/hireboard/internal/constants"
	"github.com/hireboard/hireboard/internal/metrics"
	"github.com/hireboard/hireboard/internal/models"
	"github.com/hireboard/hireboard/internal/repository"
	"go.uber.org/zap"
)

// EntityKind names a moderated table.
type EntityKind string

const (
	KindUser      EntityKind = "user"
	KindCompany   EntityKind = "company"
	KindPortfolio EntityKind = "portfolio"
	KindVacancy   EntityKind = "vacancy"
)

// sortColumns maps the sort parameter accepted for each kind to its column.
var sortColumns = map[EntityKind]map[string]string{
	KindUser: {
		"id":         "id",
		"email":      "email",
		"name":       "name",
		"role":       "role",
		"is_active":  "is_active",
		"created_at": "created_at",
		"last_login": "last_login",
	},
	KindCompany: {
		"id":           "id",
		"name":         "company_name",
		"company_name": "company_name",
		"industry":     "industry",
		"is_approved":  "is_approved",
		"created_at":   "created_at",
		"updated_at":   "updated_at",
	},
	KindPortfolio: {
		"id":               "id",
		"title":            "title",
		"profession":       "profession",
		"experience_years": "experience_years",
		"is_public":        "is_public",
		"is_approved":      "is_approved",
		"created_at":       "created_at",
		"updated_at":       "updated_at",
	},
	KindVacancy: {
		"id":               "id",
		"title":            "title",
		"salary_min":       "salary_min",
		"salary_max":       "salary_max",
		"employment_type":  "employment_type",
		"experience_level": "experience_level",
		"is_active":        "is_active",
		"is_approved":      "is_approved",
		"created_at":       "created_at",
	},
}

// ResolveSort checks field against the kind's allow-list, falling back to the
// primary key, and reads order as ascending unless it is "desc".
func ResolveSort(kind EntityKind, field, order string) repository.Sort {
	column, ok := sortColumns[kind][strings.ToLower(strings.TrimSpace(field))]
	if !ok {
		column = "id"
	}
	return repository.Sort{
		Column: column,
		Desc:   strings.EqualFold(strings.TrimSpace(order), "desc"),
	}
}

// EntityList holds the rows of exactly one kind.
type EntityList struct {
	Kind       EntityKind
	Sort       repository.Sort
	Users      []models.User
	Companies  []models.Company
	Portfolios []models.Portfolio
	Vacancies  []models.Vacancy
	// Healed counts portfolios whose missing timestamps were repaired before listing.
	Healed int64
}

// Overview is the admin landing page.
type Overview struct {
	Users           int64
	Companies       int64
	Vacancies       int64
	Applications    int64
	PendingVacancy  int64
	RecentUsers     []models.User
	RecentVacancies []models.Vacancy
}

// CompanyDetail is a company with every vacancy it posted.
type CompanyDetail struct {
	Company   *models.Company
	Vacancies []models.Vacancy
}

// ModerationService handles administrator actions.
type ModerationService struct {
	userRepo        repository.UserRepository
	companyRepo     repository.CompanyRepository
	portfolioRepo   repository.PortfolioRepository
	vacancyRepo     repository.VacancyRepository
	applicationRepo repository.ApplicationRepository
	log             *zap.Logger
	now             func() time.Time
}

// NewModerationService creates a new ModerationService.
func NewModerationService(
	userRepo repository.UserRepository,
	companyRepo repository.CompanyRepository,
	portfolioRepo repository.PortfolioRepository,
	vacancyRepo repository.VacancyRepository,
	applicationRepo repository.ApplicationRepository,
	log *zap.Logger,
) *ModerationService {
	return &ModerationService{
		userRepo:        userRepo,
		companyRepo:     companyRepo,
		portfolioRepo:   portfolioRepo,
		vacancyRepo:     vacancyRepo,
		applicationRepo: applicationRepo,
		log:             log,
		now:             time.Now,
	}
}

// ListEntities returns every row of kind in the requested order. Listing
// portfolios first repairs rows with missing timestamps.
func (s *ModerationService) ListEntities(actor Actor, kind EntityKind, field, order string) (*EntityList, error) {
	if err := RequireRole(actor, models.RoleAdmin); err != nil {
		return nil, err
	}

	sort := ResolveSort(kind, field, order)
	list := &EntityList{Kind: kind, Sort: sort}

	var err error
	switch kind {
	case KindUser:
		list.Users, err = s.userRepo.List(sort)
	case KindCompany:
		list.Companies, err = s.companyRepo.List(sort)
	case KindPortfolio:
		list.Healed, err = s.portfolioRepo.HealTimestamps(s.now())
		if err != nil {
			return nil, storeError("failed to heal portfolios", err)
		}
		if list.Healed > 0 {
			s.log.Info("healed portfolio timestamps", zap.Int64("count", list.Healed))
		}
		list.Portfolios, err = s.portfolioRepo.List(sort)
	case KindVacancy:
		list.Vacancies, err = s.vacancyRepo.List(sort)
	default:
		return nil, ErrUnknownEntityKind
	}
	if err != nil {
		return nil, storeError("failed to list "+string(kind), err)
	}
	return list, nil
}

// Approve marks a company, portfolio or vacancy as approved.
func (s *ModerationService) Approve(actor Actor, kind EntityKind, id uint64) error {
	return s.setApproved(actor, kind, id, true)
}

// Reject revokes approval without deleting anything.
func (s *ModerationService) Reject(actor Actor, kind EntityKind, id uint64) error {
	return s.setApproved(actor, kind, id, false)
}

func (s *ModerationService) setApproved(actor Actor, kind EntityKind, id uint64, approved bool) error {
	if err := RequireRole(actor, models.RoleAdmin); err != nil {
		return err
	}
	if kind == KindUser {
		return ErrNotModerated
	}
	if err := s.ensureExists(kind, id); err != nil {
		return err
	}

	var err error
	switch kind {
	case KindCompany:
		err = s.companyRepo.SetApproved(id, approved)
	case KindPortfolio:
		err = s.portfolioRepo.SetApproved(id, approved)
	case KindVacancy:
		err = s.vacancyRepo.SetApproved(id, approved)
	default:
		return ErrUnknownEntityKind
	}
	if err != nil {
		return storeError("failed to update approval", err)
	}

	action := "reject"
	if approved {
		action = "approve"
	}
	s.record(actor, kind, action, id)
	return nil
}

// DeactivateUser soft-deletes a user. Admins cannot deactivate themselves.
func (s *ModerationService) DeactivateUser(actor Actor, id uint64) (*models.User, error) {
	return s.setActive(actor, id, false)
}

// ActivateUser reverses a deactivation.
func (s *ModerationService) ActivateUser(actor Actor, id uint64) (*models.User, error) {
	return s.setActive(actor, id, true)
}

func (s *ModerationService) setActive(actor Actor, id uint64, active bool) (*models.User, error) {
	if err := RequireRole(actor, models.RoleAdmin); err != nil {
		return nil, err
	}
	if !active && id == actor.ID {
		return nil, ErrSelfDeletion
	}

	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, storeError("failed to load user", err)
	}

	if err := s.userRepo.SetActive(id, active); err != nil {
		return nil, storeError("failed to update user", err)
	}
	user.IsActive = active

	action := "deactivate"
	if active {
		action = "activate"
	}
	s.record(actor, KindUser, action, id)
	return user, nil
}

// ToggleVacancyActive flips the employer-facing active flag of a vacancy.
func (s *ModerationService) ToggleVacancyActive(actor Actor, id uint64) (*models.Vacancy, error) {
	if err := RequireRole(actor, models.RoleAdmin); err != nil {
		return nil, err
	}
	if err := s.ensureExists(KindVacancy, id); err != nil {
		return nil, err
	}

	if err := s.vacancyRepo.ToggleActive(id); err != nil {
		return nil, storeError("failed to toggle vacancy", err)
	}

	vacancy, err := s.vacancyRepo.FindByID(id)
	if err != nil {
		return nil, storeError("failed to reload vacancy", err)
	}
	s.record(actor, KindVacancy, "toggle", id)
	return vacancy, nil
}

// Delete hard-deletes a company, portfolio or vacancy with its dependants.
// Users are never hard-deleted.
func (s *ModerationService) Delete(actor Actor, kind EntityKind, id uint64) error {
	if err := RequireRole(actor, models.RoleAdmin); err != nil {
		return err
	}
	if kind == KindUser {
		return ErrUserHardDelete
	}
	if err := s.ensureExists(kind, id); err != nil {
		return err
	}

	var err error
	switch kind {
	case KindCompany:
		err = s.companyRepo.Delete(id)
	case KindPortfolio:
		err = s.portfolioRepo.Delete(id)
	case KindVacancy:
		err = s.vacancyRepo.Delete(id)
	default:
		return ErrUnknownEntityKind
	}
	if err != nil {
		return storeError("failed to delete "+string(kind), err)
	}

	s.record(actor, kind, "delete", id)
	return nil
}

// Overview returns the global counters and the most recent users and vacancies.
func (s *ModerationService) Overview(actor Actor) (*Overview, error) {
	if err := RequireRole(actor, models.RoleAdmin); err != nil {
		return nil, err
	}

	var (
		o   Overview
		err error
	)
	if o.Users, err = s.userRepo.Count(); err != nil {
		return nil, storeError("failed to count users", err)
	}
	if o.Companies, err = s.companyRepo.Count(); err != nil {
		return nil, storeError("failed to count companies", err)
	}
	if o.Vacancies, err = s.vacancyRepo.Count(); err != nil {
		return nil, storeError("failed to count vacancies", err)
	}
	if o.Applications, err = s.applicationRepo.Count(); err != nil {
		return nil, storeError("failed to count applications", err)
	}
	if o.PendingVacancy, err = s.vacancyRepo.CountPending(); err != nil {
		return nil, storeError("failed to count pending vacancies", err)
	}
	if o.RecentUsers, err = s.userRepo.Recent(constants.RecentItemsLimit); err != nil {
		return nil, storeError("failed to list recent users", err)
	}
	if o.RecentVacancies, err = s.vacancyRepo.Recent(constants.RecentItemsLimit); err != nil {
		return nil, storeError("failed to list recent vacancies", err)
	}
	return &o, nil
}

// ViewPortfolio returns any portfolio regardless of visibility.
func (s *ModerationService) ViewPortfolio(actor Actor, id uint64) (*models.Portfolio, error) {
	if err := RequireRole(actor, models.RoleAdmin); err != nil {
		return nil, err
	}

	portfolio, err := s.portfolioRepo.FindByID(id, "Owner")
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrPortfolioNotFound
		}
		return nil, storeError("failed to load portfolio", err)
	}
	if portfolio.HasMissingTimestamps() {
		if err := s.portfolioRepo.HealOne(portfolio); err != nil {
			return nil, storeError("failed to heal portfolio", err)
		}
	}
	return portfolio, nil
}

// ViewCompany returns a company with all of its vacancies.
func (s *ModerationService) ViewCompany(actor Actor, id uint64) (*CompanyDetail, error) {
	if err := RequireRole(actor, models.RoleAdmin); err != nil {
		return nil, err
	}

	company, err := s.companyRepo.FindByID(id, "Owner")
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrCompanyNotFound
		}
		return nil, storeError("failed to load company", err)
	}

	vacancies, err := s.vacancyRepo.ListByCompany(company.ID)
	if err != nil {
		return nil, storeError("failed to list vacancies", err)
	}
	return &CompanyDetail{Company: company, Vacancies: vacancies}, nil
}

func (s *ModerationService) ensureExists(kind EntityKind, id uint64) error {
	var (
		err      error
		notFound error
	)
	switch kind {
	case KindUser:
		_, err = s.userRepo.FindByID(id)
		notFound = ErrUserNotFound
	case KindCompany:
		_, err = s.companyRepo.FindByID(id)
		notFound = ErrCompanyNotFound
	case KindPortfolio:
		_, err = s.portfolioRepo.FindByID(id)
		notFound = ErrPortfolioNotFound
	case KindVacancy:
		_, err = s.vacancyRepo.FindByID(id)
		notFound = ErrVacancyNotFound
	default:
		return ErrUnknownEntityKind
	}
	if err != nil {
		if repository.IsNotFound(err) {
			return notFound
		}
		return storeError("failed to load "+string(kind), err)
	}
	return nil
}

func (s *ModerationService) record(actor Actor, kind EntityKind, action string, id uint64) {
	metrics.ModerationActionsTotal.WithLabelValues(string(kind), action).Inc()
	s.log.Info("moderation action",
		zap.String("kind", string(kind)),
		zap.String("action", action),
		zap.Uint64("id", id),
		zap.Uint64("admin_id", actor.ID),
	)
}
