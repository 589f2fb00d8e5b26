package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	_ "go.uber.org/automaxprocs"
	"go.uber.org/zap"

	"github.com/hireboard/hireboard/internal/config"
	"github.com/hireboard/hireboard/internal/database"
	"github.com/hireboard/hireboard/internal/handlers"
	"github.com/hireboard/hireboard/internal/logger"
	"github.com/hireboard/hireboard/internal/metrics"
	"github.com/hireboard/hireboard/internal/router"
	"github.com/hireboard/hireboard/internal/services"
	"github.com/hireboard/hireboard/internal/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log, cleanup := logger.New(logger.Options{
		Level: cfg.LogLevel,
		JSON:  cfg.LogJSON,
		File:  cfg.LogFile,
	})
	defer cleanup()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	db, err := database.Connect(cfg, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	log.Info("database connected", zap.String("driver", cfg.DBDriver))

	// Run migrations
	if err := database.Migrate(db, log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	svc := router.NewServices(db, log)
	if _, err := svc.Auth.EnsureAdmin(services.AdminInput{
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
		Name:     cfg.AdminName,
	}); err != nil {
		log.Fatal("failed to bootstrap admin", zap.Error(err))
	}

	store := mustSessionStore(cfg, log)
	metrics.MustRegister(prometheus.DefaultRegisterer)

	r := router.New(router.Options{
		Log:   log,
		Store: store,
		Session: handlers.SessionOptions{
			TTL:         cfg.SessionTTL,
			RememberTTL: cfg.RememberTTL,
			Secure:      cfg.IsProduction(),
		},
		CORSOrigins:     cfg.CORSOrigins,
		LoginRatePerMin: cfg.LoginRatePerMin,
		Metrics:         router.DefaultMetrics(),
	}, svc)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("server starting", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server shutdown failed", zap.Error(err))
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info("server stopped")
}

func mustSessionStore(cfg *config.Config, log *zap.Logger) sessions.Store {
	secret := cfg.SessionSecret
	if secret == "" {
		if cfg.IsProduction() {
			log.Fatal("SESSION_SECRET is required in release mode")
		}
		generated, err := utils.GenerateSecret(32)
		if err != nil {
			log.Fatal("failed to generate session secret", zap.Error(err))
		}
		log.Warn("SESSION_SECRET not set, sessions will not survive a restart")
		secret = generated
	}

	var store sessions.Store
	switch cfg.SessionStore {
	case "cookie":
		store = cookie.NewStore([]byte(secret))
	default:
		redisAddr := net.JoinHostPort(cfg.RedisHost, cfg.RedisPort)
		rs, err := redisStore.NewStore(
			10,        // Redis pool size
			"tcp",     // network type
			redisAddr, // Redis address from config
			"",        // password (empty = no password)
			[]byte(secret),
		)
		if err != nil {
			log.Fatal("failed to create redis session store", zap.Error(err), zap.String("addr", redisAddr))
		}
		store = rs
	}

	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
	log.Info("session store ready", zap.String("store", cfg.SessionStore))
	return store
}
