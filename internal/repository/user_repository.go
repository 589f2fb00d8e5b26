package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/hireboard/hireboard/internal/database"
	"github.com/hireboard/hireboard/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

var (
	// ErrCreateUser is returned when creating a user fails inside the registration transaction.
	ErrCreateUser = errors.New("user repository: create user failed")
	// ErrCreateProfile is returned when creating the company or portfolio stub fails inside the registration transaction.
	ErrCreateProfile = errors.New("user repository: create profile failed")
)

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// CreateWithProfile creates the user and its profile stub atomically.
func (r *GormUserRepository) CreateWithProfile(user *models.User, company *models.Company, portfolio *models.Portfolio) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return fmt.Errorf("%w: %w", ErrCreateUser, err)
		}

		if company != nil {
			company.UserID = user.ID
			if err := tx.Create(company).Error; err != nil {
				return fmt.Errorf("%w: %w", ErrCreateProfile, err)
			}
		}

		if portfolio != nil {
			portfolio.UserID = user.ID
			if err := tx.Create(portfolio).Error; err != nil {
				return fmt.Errorf("%w: %w", ErrCreateProfile, err)
			}
		}

		return nil
	})
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormUserRepository) UpdatePassword(id uint64, hash string) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).Update("password_hash", hash).Error
}

func (r *GormUserRepository) SetActive(id uint64, active bool) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).Update("is_active", active).Error
}

func (r *GormUserRepository) TouchLastLogin(id uint64, at time.Time) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).UpdateColumn("last_login", at).Error
}

func (r *GormUserRepository) List(sort Sort) ([]models.User, error) {
	var users []models.User
	if err := r.db.Scopes(database.OrderBy("users", sort.Column, sort.Desc)).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *GormUserRepository) Recent(limit int) ([]models.User, error) {
	var users []models.User
	if err := r.db.Order("created_at DESC").Order("id DESC").Limit(limit).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *GormUserRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Count(&count).Error
	return count, err
}
