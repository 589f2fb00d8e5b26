package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hireboard/hireboard/internal/metrics"
	"github.com/hireboard/hireboard/internal/models"
	"github.com/hireboard/hireboard/internal/repository"
	"github.com/hireboard/hireboard/internal/utils"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles registration, login and account lookups.
type AuthService struct {
	userRepo repository.UserRepository
	log      *zap.Logger
	hashCost int
	now      func() time.Time
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, log *zap.Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		log:      log,
		hashCost: bcrypt.DefaultCost,
		now:      time.Now,
	}
}

// RegisterInput represents the required information to create a new account.
type RegisterInput struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
	Role            string
}

// Register validates the input and creates the user together with its
// company or portfolio stub.
func (s *AuthService) Register(input RegisterInput) (*models.User, error) {
	user, err := s.register(input)
	role := strings.TrimSpace(input.Role)
	switch {
	case err == nil:
		metrics.RegistrationsTotal.WithLabelValues(role, metrics.ResultSuccess).Inc()
	case errors.Is(err, ErrEmailTaken):
		metrics.RegistrationsTotal.WithLabelValues(role, metrics.ResultDuplicate).Inc()
	default:
		metrics.RegistrationsTotal.WithLabelValues(role, metrics.ResultRejected).Inc()
	}
	return user, err
}

func (s *AuthService) register(input RegisterInput) (*models.User, error) {
	email := NormalizeEmail(input.Email)
	name := strings.TrimSpace(input.Name)
	role := models.Role(strings.TrimSpace(input.Role))

	if email == "" || name == "" || input.Password == "" || input.ConfirmPassword == "" || role == "" {
		return nil, ErrMissingFields
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validateName(name); err != nil {
		return nil, err
	}
	if input.Password != input.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}
	if err := validatePassword(input.Password); err != nil {
		return nil, err
	}
	if !role.Valid() || role == models.RoleAdmin {
		return nil, ErrInvalidRole
	}

	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !repository.IsNotFound(err) {
		return nil, storeError("failed to check email", err)
	}

	hash, err := utils.HashPassword(input.Password, s.hashCost)
	if err != nil {
		return nil, storeError("failed to hash password", err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Role:         role,
		IsActive:     true,
	}

	var (
		company   *models.Company
		portfolio *models.Portfolio
	)
	switch role {
	case models.RoleEmployer:
		company = &models.Company{Name: name}
	case models.RoleSeeker:
		portfolio = newPortfolioStub(name)
	}

	if err := s.userRepo.CreateWithProfile(user, company, portfolio); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, ErrEmailTaken
		}
		s.log.Error("registration failed", zap.String("email", email), zap.Error(err))
		return nil, storeError("failed to complete registration", err)
	}

	s.log.Info("user registered", zap.Uint64("user_id", user.ID), zap.String("role", string(role)))
	return user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// Login verifies credentials, stamps last_login and returns the user.
func (s *AuthService) Login(input LoginInput) (*models.User, error) {
	user, err := s.login(input)
	switch {
	case err == nil:
		metrics.LoginsTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrAccountDeactivated):
		metrics.LoginsTotal.WithLabelValues(metrics.ResultRejected).Inc()
	default:
		metrics.LoginsTotal.WithLabelValues(metrics.ResultError).Inc()
	}
	return user, err
}

func (s *AuthService) login(input LoginInput) (*models.User, error) {
	email := NormalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, storeError("failed to find user", err)
	}

	if err := utils.CheckPassword(user.PasswordHash, input.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrAccountDeactivated
	}

	now := s.now()
	if err := s.userRepo.TouchLastLogin(user.ID, now); err != nil {
		s.log.Warn("failed to stamp last login", zap.Uint64("user_id", user.ID), zap.Error(err))
	} else {
		user.LastLogin = &now
	}

	return user, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, storeError("failed to find user", err)
	}
	return user, nil
}

// AdminInput holds the bootstrap administrator account.
type AdminInput struct {
	Email    string
	Password string
	Name     string
}

// EnsureAdmin creates the administrator account, or refreshes its password,
// role and active flag when it already exists.
func (s *AuthService) EnsureAdmin(input AdminInput) (*models.User, error) {
	email := NormalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return nil, ErrMissingFields
	}

	hash, err := utils.HashPassword(input.Password, s.hashCost)
	if err != nil {
		return nil, storeError("failed to hash password", err)
	}

	user, err := s.userRepo.FindByEmail(email)
	switch {
	case err == nil:
		if err := s.userRepo.UpdatePassword(user.ID, hash); err != nil {
			return nil, storeError("failed to refresh admin password", err)
		}
		if !user.IsActive {
			if err := s.userRepo.SetActive(user.ID, true); err != nil {
				return nil, storeError("failed to activate admin", err)
			}
			user.IsActive = true
		}
		if user.Role != models.RoleAdmin {
			s.log.Warn("bootstrap email belongs to a non-admin account", zap.String("email", email), zap.String("role", string(user.Role)))
		}
		user.PasswordHash = hash
		s.log.Info("admin password refreshed", zap.String("email", email))
		return user, nil
	case !repository.IsNotFound(err):
		return nil, storeError("failed to find admin", err)
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = "Administrator"
	}

	user = &models.User{
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Role:         models.RoleAdmin,
		IsActive:     true,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, storeError("failed to create admin", err)
	}

	s.log.Info("admin created", zap.String("email", email))
	return user, nil
}

func newPortfolioStub(name string) *models.Portfolio {
	return &models.Portfolio{
		Title:      fmt.Sprintf("Portfolio of %s", name),
		Profession: "Specialist",
		IsPublic:   true,
	}
}
