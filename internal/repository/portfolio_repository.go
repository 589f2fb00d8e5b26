package repository

import (
	"time"

	"github.com/hireboard/hireboard/internal/database"
	"github.com/hireboard/hireboard/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPortfolioRepository is a GORM implementation of PortfolioRepository
type GormPortfolioRepository struct {
	db *gorm.DB
}

// NewPortfolioRepository creates a new PortfolioRepository
func NewPortfolioRepository(db *gorm.DB) PortfolioRepository {
	return &GormPortfolioRepository{db: db}
}

func (r *GormPortfolioRepository) Create(portfolio *models.Portfolio) error {
	return r.db.Omit(clause.Associations).Create(portfolio).Error
}

func (r *GormPortfolioRepository) FindByID(id uint64, preload ...string) (*models.Portfolio, error) {
	var portfolio models.Portfolio
	if err := withPreload(r.db, preload).First(&portfolio, id).Error; err != nil {
		return nil, err
	}
	return &portfolio, nil
}

func (r *GormPortfolioRepository) FindFirstByUserID(userID uint64) (*models.Portfolio, error) {
	var portfolio models.Portfolio
	if err := r.db.Where("user_id = ?", userID).Order("id ASC").First(&portfolio).Error; err != nil {
		return nil, err
	}
	return &portfolio, nil
}

func (r *GormPortfolioRepository) Update(portfolio *models.Portfolio) error {
	return r.db.Omit(clause.Associations).Save(portfolio).Error
}

func (r *GormPortfolioRepository) SetApproved(id uint64, approved bool) error {
	return r.db.Model(&models.Portfolio{}).Where("id = ?", id).Update("is_approved", approved).Error
}

func (r *GormPortfolioRepository) List(sort Sort) ([]models.Portfolio, error) {
	var portfolios []models.Portfolio
	if err := r.db.Preload("Owner").
		Scopes(database.OrderBy("portfolios", sort.Column, sort.Desc)).
		Find(&portfolios).Error; err != nil {
		return nil, err
	}
	return portfolios, nil
}

// HealTimestamps fills NULL timestamps in place and reports how many rows were touched
func (r *GormPortfolioRepository) HealTimestamps(now time.Time) (int64, error) {
	var healed int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var broken []models.Portfolio
		if err := tx.Where("created_at IS NULL OR updated_at IS NULL").Find(&broken).Error; err != nil {
			return err
		}

		for i := range broken {
			p := &broken[i]
			p.HealTimestamps(now)
			if err := tx.Model(p).UpdateColumns(map[string]any{
				"created_at": *p.CreatedAt,
				"updated_at": *p.UpdatedAt,
			}).Error; err != nil {
				return err
			}
		}

		healed = int64(len(broken))
		return nil
	})
	return healed, err
}

func (r *GormPortfolioRepository) HealOne(portfolio *models.Portfolio) error {
	portfolio.HealTimestamps(time.Now())
	return r.db.Model(portfolio).UpdateColumns(map[string]any{
		"created_at": *portfolio.CreatedAt,
		"updated_at": *portfolio.UpdatedAt,
	}).Error
}

// Delete deletes a portfolio and its applications in a transaction
func (r *GormPortfolioRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("portfolio_id = ?", id).Delete(&models.Application{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Portfolio{}, id).Error
	})
}
