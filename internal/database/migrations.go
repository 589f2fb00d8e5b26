package database

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type secondaryIndex struct {
	model   any
	table   string
	name    string
	columns []string
}

// AddIndexes adds the indexes used by public search and admin moderation lists.
func AddIndexes(db *gorm.DB, log *zap.Logger) error {
	indexes := []secondaryIndex{
		{vacancyModel, "vacancies", "idx_vacancies_listed", []string{"is_active", "is_approved"}},
		{vacancyModel, "vacancies", "idx_vacancies_created_at", []string{"created_at"}},
		{vacancyModel, "vacancies", "idx_vacancies_salary_max", []string{"salary_max"}},
		{companyModel, "companies", "idx_companies_is_approved", []string{"is_approved"}},
		{portfolioModel, "portfolios", "idx_portfolios_is_approved", []string{"is_approved"}},
	}

	migrator := db.Migrator()
	for _, idx := range indexes {
		if migrator.HasIndex(idx.model, idx.name) {
			log.Debug("index already exists, skipping", zap.String("index", idx.name))
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, strings.Join(idx.columns, ", "))
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Info("created index", zap.String("index", idx.name), zap.String("table", idx.table))
	}

	return nil
}
