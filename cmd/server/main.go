package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/anyulbade/merchant-dashboard-api/internal/config"
	"github.com/anyulbade/merchant-dashboard-api/internal/database"
	"github.com/anyulbade/merchant-dashboard-api/internal/handler"
	"github.com/anyulbade/merchant-dashboard-api/internal/middleware"
	"github.com/anyulbade/merchant-dashboard-api/internal/repository"
	"github.com/anyulbade/merchant-dashboard-api/internal/service"
	"github.com/anyulbade/merchant-dashboard-api/internal/session"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Caller().Logger()
	zerolog.DefaultContextLogger = &log.Logger

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}
	gin.SetMode(cfg.GinMode)
	decimal.MarshalJSONWithoutQuotes = true

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	if cfg.AutoMigrate {
		if err := database.RunMigrations(cfg.DatabaseURL()); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}
		if err := database.SeedData(context.Background(), pool, database.SeedOptions{
			AdminEmail:    cfg.SeedAdminEmail,
			AdminPassword: cfg.SeedAdminPassword,
			DemoPassword:  cfg.SeedDemoPassword,
		}); err != nil {
			log.Fatal().Err(err).Msg("failed to seed data")
		}
	}

	sessionStore := newSessionStore(ctx, cfg)
	sessions := session.NewManager(cfg.JWTSecret, cfg.SessionTTL, sessionStore)

	stores := repository.NewStoreRepository(cfg.DataSourceURL, cfg.DataSourceTimeout)
	users := repository.NewUserRepository(pool)
	dashboard := service.NewDashboardService(stores)

	router := gin.New()
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		log.Fatal().Err(err).Msg("invalid TRUSTED_PROXIES")
	}
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.CORSOrigins))
	router.Use(middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, 10*time.Minute).Middleware())

	handler.RegisterRoutes(router, handler.Services{
		Auth:          service.NewAuthService(users, sessions),
		Users:         service.NewUserService(users, sessions),
		Stores:        service.NewStoreService(stores),
		Dashboard:     dashboard,
		Transactions:  service.NewTransactionService(stores),
		Terminals:     service.NewTerminalService(stores),
		Reports:       service.NewReportService(dashboard),
		Notifications: service.NewNotificationService(stores),
		Health: service.NewHealthService(map[string]service.Pinger{
			"database":    pool,
			"sessions":    sessionStore,
			"data_source": stores,
		}, 3*time.Second),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("data_source", cfg.DataSourceURL).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}

// newSessionStore prefers Redis so sessions survive restarts and are shared
// between instances. Without REDIS_ADDR, or when Redis is unreachable at
// startup, sessions live in process memory.
func newSessionStore(ctx context.Context, cfg *config.Config) session.Store {
	if cfg.RedisAddr == "" {
		log.Info().Msg("REDIS_ADDR not set, using in-memory sessions")
		return session.NewMemoryStore(10 * time.Minute)
	}

	rs := session.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err := rs.Ping(ctx); err != nil {
		log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable, using in-memory sessions")
		rs.Close()
		return session.NewMemoryStore(10 * time.Minute)
	}
	log.Info().Str("addr", cfg.RedisAddr).Msg("using redis sessions")
	return rs
}
