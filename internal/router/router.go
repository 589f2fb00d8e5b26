package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"

	"github.com/hireboard/hireboard/internal/constants"
	"github.com/hireboard/hireboard/internal/handlers"
	"github.com/hireboard/hireboard/internal/middleware"
	"github.com/hireboard/hireboard/internal/models"
	"github.com/hireboard/hireboard/internal/repository"
	"github.com/hireboard/hireboard/internal/services"
)

// Services bundles the application services built over one database.
type Services struct {
	Auth       *services.AuthService
	Employer   *services.EmployerService
	Seeker     *services.SeekerService
	Moderation *services.ModerationService
}

// NewServices wires repositories and services.
func NewServices(db *gorm.DB, log *zap.Logger) *Services {
	userRepo := repository.NewUserRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	portfolioRepo := repository.NewPortfolioRepository(db)
	vacancyRepo := repository.NewVacancyRepository(db)
	applicationRepo := repository.NewApplicationRepository(db)

	return &Services{
		Auth:       services.NewAuthService(userRepo, log.Named("auth")),
		Employer:   services.NewEmployerService(companyRepo, vacancyRepo, portfolioRepo, applicationRepo, log.Named("employer")),
		Seeker:     services.NewSeekerService(portfolioRepo, vacancyRepo, applicationRepo, log.Named("seeker")),
		Moderation: services.NewModerationService(userRepo, companyRepo, portfolioRepo, vacancyRepo, applicationRepo, log.Named("moderation")),
	}
}

// Options configures the HTTP engine.
type Options struct {
	Log             *zap.Logger
	Store           sessions.Store
	Session         handlers.SessionOptions
	CORSOrigins     []string
	LoginRatePerMin int
	// Metrics serves /metrics; nil disables the endpoint.
	Metrics http.Handler
}

// New builds the gin engine with every route of the job board.
func New(opt Options, svc *Services) *gin.Engine {
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		ginzap.GinzapWithConfig(opt.Log, &ginzap.Config{
			TimeFormat: time.RFC3339,
			UTC:        true,
			SkipPaths:  []string{"/health", "/metrics"},
			Context: func(c *gin.Context) []zapcore.Field {
				return []zapcore.Field{zap.String("request_id", c.GetString(middleware.HeaderRequestID))}
			},
		}),
		ginzap.RecoveryWithZap(opt.Log, true),
		middleware.Metrics(),
	)
	if len(opt.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     opt.CORSOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.HeaderRequestID},
			ExposeHeaders:    []string{middleware.HeaderRequestID},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	r.Use(sessions.Sessions(constants.SessionCookieName, opt.Store))

	authHandler := handlers.NewAuthHandler(svc.Auth, opt.Session)
	employerHandler := handlers.NewEmployerHandler(svc.Employer)
	seekerHandler := handlers.NewSeekerHandler(svc.Seeker)
	adminHandler := handlers.NewAdminHandler(svc.Moderation)

	requireAuth := middleware.RequireAuth(svc.Auth, opt.Log)
	throttle := middleware.RateLimitPerIP(middleware.PerMinute(opt.LoginRatePerMin), max(opt.LoginRatePerMin, 1))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if opt.Metrics != nil {
		r.GET("/metrics", gin.WrapH(opt.Metrics))
	}

	// Public pages
	r.GET("/", seekerHandler.Home)
	r.GET("/vacancies", seekerHandler.Vacancies)
	r.GET("/vacancies/:id", seekerHandler.Vacancy)

	// Identity
	r.GET("/register", authHandler.RegisterForm)
	r.POST("/register", throttle, authHandler.Register)
	r.GET("/login", authHandler.LoginForm)
	r.POST("/login", throttle, authHandler.Login)
	r.GET("/logout", authHandler.Logout)
	r.POST("/logout", authHandler.Logout)
	r.GET("/me", requireAuth, authHandler.Me)

	employer := r.Group("/employer", requireAuth, middleware.RequireRole(models.RoleEmployer))
	{
		employer.GET("/dashboard", employerHandler.Dashboard)
		employer.GET("/company/edit", employerHandler.CompanyForm)
		employer.POST("/company/edit", employerHandler.EditCompany)
		employer.GET("/vacancy/create", employerHandler.VacancyForm)
		employer.POST("/vacancy/create", employerHandler.CreateVacancy)
		employer.POST("/vacancy/:id/edit", employerHandler.EditVacancy)
		employer.GET("/portfolio/:id", employerHandler.ViewPortfolio)
		employer.GET("/application/:id", employerHandler.ViewApplication)
		employer.POST("/application/:id/update_status", employerHandler.UpdateApplicationStatus)
	}

	seeker := r.Group("/seeker", requireAuth, middleware.RequireRole(models.RoleSeeker))
	{
		seeker.GET("/dashboard", seekerHandler.Dashboard)
		seeker.GET("/portfolio/edit", seekerHandler.PortfolioForm)
		seeker.POST("/portfolio/edit", seekerHandler.EditPortfolio)
		seeker.POST("/apply/:id", seekerHandler.Apply)
	}

	admin := r.Group("/admin", requireAuth)
	{
		pages := admin.Group("", middleware.RequireRole(models.RoleAdmin))
		pages.GET("", adminHandler.Overview)
		pages.GET("/users", adminHandler.List(services.KindUser))
		pages.GET("/companies", adminHandler.List(services.KindCompany))
		pages.GET("/portfolios", adminHandler.List(services.KindPortfolio))
		pages.GET("/vacancies", adminHandler.List(services.KindVacancy))
		pages.GET("/portfolio/:id", adminHandler.ViewPortfolio)
		pages.GET("/company/:id", adminHandler.ViewCompany)

		actions := admin.Group("", middleware.RequireRoleJSON(models.RoleAdmin))
		actions.POST("/user/:id/delete", adminHandler.DeactivateUser)
		actions.POST("/user/:id/activate", adminHandler.ActivateUser)
		actions.POST("/vacancy/:id/toggle", adminHandler.ToggleVacancy)
		for _, kind := range []services.EntityKind{services.KindCompany, services.KindPortfolio, services.KindVacancy} {
			prefix := "/" + string(kind) + "/:id"
			actions.POST(prefix+"/approve", adminHandler.Approve(kind))
			actions.POST(prefix+"/reject", adminHandler.Reject(kind))
			actions.POST(prefix+"/delete", adminHandler.Delete(kind))
		}
	}

	return r
}

// DefaultMetrics serves the default prometheus registry.
func DefaultMetrics() http.Handler {
	return promhttp.Handler()
}
