package repository

import (
	"github.com/hireboard/hireboard/internal/database"
	"github.com/hireboard/hireboard/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCompanyRepository is a GORM implementation of CompanyRepository
type GormCompanyRepository struct {
	db *gorm.DB
}

// NewCompanyRepository creates a new CompanyRepository
func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &GormCompanyRepository{db: db}
}

func (r *GormCompanyRepository) Create(company *models.Company) error {
	return r.db.Omit(clause.Associations).Create(company).Error
}

func (r *GormCompanyRepository) FindByID(id uint64, preload ...string) (*models.Company, error) {
	var company models.Company
	if err := withPreload(r.db, preload).First(&company, id).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *GormCompanyRepository) FindByUserID(userID uint64) (*models.Company, error) {
	var company models.Company
	if err := r.db.Where("user_id = ?", userID).First(&company).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *GormCompanyRepository) Update(company *models.Company) error {
	return r.db.Omit(clause.Associations).Save(company).Error
}

func (r *GormCompanyRepository) SetApproved(id uint64, approved bool) error {
	return r.db.Model(&models.Company{}).Where("id = ?", id).Update("is_approved", approved).Error
}

func (r *GormCompanyRepository) List(sort Sort) ([]models.Company, error) {
	var companies []models.Company
	if err := r.db.Preload("Owner").
		Scopes(database.OrderBy("companies", sort.Column, sort.Desc)).
		Find(&companies).Error; err != nil {
		return nil, err
	}
	return companies, nil
}

// Delete deletes a company and everything hanging off it in a transaction
func (r *GormCompanyRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		vacancyIDs := tx.Model(&models.Vacancy{}).Select("id").Where("company_id = ?", id)

		if err := tx.Where("vacancy_id IN (?)", vacancyIDs).Delete(&models.Application{}).Error; err != nil {
			return err
		}

		if err := tx.Where("company_id = ?", id).Delete(&models.Vacancy{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Company{}, id).Error
	})
}

func (r *GormCompanyRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Company{}).Count(&count).Error
	return count, err
}
