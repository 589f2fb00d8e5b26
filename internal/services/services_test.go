package services

import (
	"testing"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/hireboard/hireboard/internal/models"
	"github.com/hireboard/hireboard/internal/repository"
	"github.com/hireboard/hireboard/internal/testutil"
)

type testEnv struct {
	db         *gorm.DB
	auth       *AuthService
	employer   *EmployerService
	seeker     *SeekerService
	moderation *ModerationService
}

func setupTestEnv(t *testing.T) testEnv {
	t.Helper()

	db := testutil.NewDB(t)
	log := zap.NewNop()

	userRepo := repository.NewUserRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	portfolioRepo := repository.NewPortfolioRepository(db)
	vacancyRepo := repository.NewVacancyRepository(db)
	applicationRepo := repository.NewApplicationRepository(db)

	auth := NewAuthService(userRepo, log)
	auth.hashCost = bcrypt.MinCost

	return testEnv{
		db:         db,
		auth:       auth,
		employer:   NewEmployerService(companyRepo, vacancyRepo, portfolioRepo, applicationRepo, log),
		seeker:     NewSeekerService(portfolioRepo, vacancyRepo, applicationRepo, log),
		moderation: NewModerationService(userRepo, companyRepo, portfolioRepo, vacancyRepo, applicationRepo, log),
	}
}

func actorFor(user *models.User) Actor {
	return ActorFromUser(user)
}
