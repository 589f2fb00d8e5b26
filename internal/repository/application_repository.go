package repository

import (
	"github.com/hireboard/hireboard/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormApplicationRepository is a GORM implementation of ApplicationRepository
type GormApplicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository creates a new ApplicationRepository
func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &GormApplicationRepository{db: db}
}

func (r *GormApplicationRepository) Create(application *models.Application) error {
	return r.db.Omit(clause.Associations).Create(application).Error
}

func (r *GormApplicationRepository) FindByID(id uint64, preload ...string) (*models.Application, error) {
	var application models.Application
	if err := withPreload(r.db, preload).First(&application, id).Error; err != nil {
		return nil, err
	}
	return &application, nil
}

func (r *GormApplicationRepository) FindByVacancyAndSeeker(vacancyID, seekerID uint64) (*models.Application, error) {
	var application models.Application
	if err := r.db.Where("vacancy_id = ? AND seeker_id = ?", vacancyID, seekerID).
		First(&application).Error; err != nil {
		return nil, err
	}
	return &application, nil
}

func (r *GormApplicationRepository) UpdateStatus(id uint64, status models.ApplicationStatus, reason *string) error {
	return r.db.Model(&models.Application{}).Where("id = ?", id).Updates(map[string]any{
		"status":           status,
		"rejection_reason": reason,
	}).Error
}

// ListByEmployer lists applications to any vacancy owned by the employer
func (r *GormApplicationRepository) ListByEmployer(employerID uint64) ([]models.Application, error) {
	var applications []models.Application
	vacancyIDs := r.db.Model(&models.Vacancy{}).Select("id").Where("employer_id = ?", employerID)
	if err := r.db.Preload("Vacancy").Preload("Seeker").Preload("Portfolio").
		Where("vacancy_id IN (?)", vacancyIDs).
		Order("created_at DESC").Order("id DESC").
		Find(&applications).Error; err != nil {
		return nil, err
	}
	return applications, nil
}

func (r *GormApplicationRepository) ListBySeeker(seekerID uint64) ([]models.Application, error) {
	var applications []models.Application
	if err := r.db.Preload("Vacancy").Preload("Vacancy.Company").
		Where("seeker_id = ?", seekerID).
		Order("created_at DESC").Order("id DESC").
		Find(&applications).Error; err != nil {
		return nil, err
	}
	return applications, nil
}

func (r *GormApplicationRepository) ExistsForEmployer(portfolioID, employerID uint64) (bool, error) {
	var count int64
	err := r.db.Model(&models.Application{}).
		Joins("JOIN vacancies ON vacancies.id = applications.vacancy_id").
		Where("applications.portfolio_id = ? AND vacancies.employer_id = ?", portfolioID, employerID).
		Count(&count).Error
	return count > 0, err
}

func (r *GormApplicationRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Application{}).Count(&count).Error
	return count, err
}
