package repository

import (
	"github.com/hireboard/hireboard/internal/database"
	"github.com/hireboard/hireboard/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormVacancyRepository is a GORM implementation of VacancyRepository
type GormVacancyRepository struct {
	db *gorm.DB
}

// NewVacancyRepository creates a new VacancyRepository
func NewVacancyRepository(db *gorm.DB) VacancyRepository {
	return &GormVacancyRepository{db: db}
}

func (r *GormVacancyRepository) Create(vacancy *models.Vacancy) error {
	return r.db.Omit(clause.Associations).Create(vacancy).Error
}

func (r *GormVacancyRepository) FindByID(id uint64, preload ...string) (*models.Vacancy, error) {
	var vacancy models.Vacancy
	if err := withPreload(r.db, preload).First(&vacancy, id).Error; err != nil {
		return nil, err
	}
	return &vacancy, nil
}

func (r *GormVacancyRepository) Update(vacancy *models.Vacancy) error {
	return r.db.Omit(clause.Associations).Save(vacancy).Error
}

// Search retrieves listed vacancies with filtering and ordering
func (r *GormVacancyRepository) Search(filter VacancyFilter) ([]models.Vacancy, error) {
	var vacancies []models.Vacancy

	query := r.db.Model(&models.Vacancy{}).Scopes(database.Listed)

	// Apply filters
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		companyIDs := r.db.Model(&models.Company{}).Select("id").Where("company_name LIKE ?", like)
		query = query.Where(
			"vacancies.title LIKE ? OR vacancies.description LIKE ? OR vacancies.company_id IN (?)",
			like, like, companyIDs,
		)
	}
	if filter.ExperienceLevel != "" {
		query = query.Where("vacancies.experience_level = ?", filter.ExperienceLevel)
	}
	if filter.EmploymentType != "" {
		query = query.Where("vacancies.employment_type = ?", filter.EmploymentType)
	}
	if filter.MinSalary != nil {
		query = query.Where("vacancies.salary_max >= ?", *filter.MinSalary)
	}

	switch filter.Order {
	case OrderSalaryHigh:
		query = query.Scopes(database.OrderBy("vacancies", "salary_max", true))
	case OrderSalaryLow:
		query = query.Scopes(database.OrderBy("vacancies", "salary_max", false))
	default:
		query = query.Scopes(database.OrderBy("vacancies", "created_at", true))
	}
	query = query.Scopes(database.OrderBy("vacancies", "id", true))

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	if err := query.Preload("Company").Find(&vacancies).Error; err != nil {
		return nil, err
	}

	return vacancies, nil
}

func (r *GormVacancyRepository) ListByEmployer(employerID uint64) ([]models.Vacancy, error) {
	var vacancies []models.Vacancy
	if err := r.db.Where("employer_id = ?", employerID).
		Order("created_at DESC").Order("id DESC").
		Find(&vacancies).Error; err != nil {
		return nil, err
	}
	return vacancies, nil
}

func (r *GormVacancyRepository) ListByCompany(companyID uint64) ([]models.Vacancy, error) {
	var vacancies []models.Vacancy
	if err := r.db.Where("company_id = ?", companyID).
		Order("created_at DESC").Order("id DESC").
		Find(&vacancies).Error; err != nil {
		return nil, err
	}
	return vacancies, nil
}

func (r *GormVacancyRepository) List(sort Sort) ([]models.Vacancy, error) {
	var vacancies []models.Vacancy
	if err := r.db.Preload("Company").
		Scopes(database.OrderBy("vacancies", sort.Column, sort.Desc)).
		Find(&vacancies).Error; err != nil {
		return nil, err
	}
	return vacancies, nil
}

func (r *GormVacancyRepository) Recent(limit int) ([]models.Vacancy, error) {
	var vacancies []models.Vacancy
	if err := r.db.Preload("Company").
		Order("created_at DESC").Order("id DESC").
		Limit(limit).
		Find(&vacancies).Error; err != nil {
		return nil, err
	}
	return vacancies, nil
}

func (r *GormVacancyRepository) SetApproved(id uint64, approved bool) error {
	return r.db.Model(&models.Vacancy{}).Where("id = ?", id).Update("is_approved", approved).Error
}

func (r *GormVacancyRepository) ToggleActive(id uint64) error {
	return r.db.Model(&models.Vacancy{}).Where("id = ?", id).
		Update("is_active", gorm.Expr("NOT is_active")).Error
}

// Delete deletes a vacancy and its applications in a transaction
func (r *GormVacancyRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("vacancy_id = ?", id).Delete(&models.Application{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Vacancy{}, id).Error
	})
}

func (r *GormVacancyRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Vacancy{}).Count(&count).Error
	return count, err
}

func (r *GormVacancyRepository) CountPending() (int64, error) {
	var count int64
	err := r.db.Model(&models.Vacancy{}).Where("is_approved = ?", false).Count(&count).Error
	return count, err
}
