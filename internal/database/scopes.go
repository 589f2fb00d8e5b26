package database

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hireboard/hireboard/internal/models"
)

var (
	vacancyModel   = &models.Vacancy{}
	companyModel   = &models.Company{}
	portfolioModel = &models.Portfolio{}
)

// Listed restricts a vacancy query to publicly visible rows.
func Listed(db *gorm.DB) *gorm.DB {
	return db.Where("vacancies.is_active = ? AND vacancies.is_approved = ?", true, true)
}

// OrderBy sorts by a column that the caller has already checked against an allow-list.
func OrderBy(table, column string, desc bool) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(clause.OrderByColumn{
			Column: clause.Column{Table: table, Name: column},
			Desc:   desc,
		})
	}
}
