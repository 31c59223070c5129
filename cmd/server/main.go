package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/anyulbade/project-budget-service/internal/config"
	"github.com/anyulbade/project-budget-service/internal/database"
	"github.com/anyulbade/project-budget-service/internal/fx"
	"github.com/anyulbade/project-budget-service/internal/handler"
	"github.com/anyulbade/project-budget-service/internal/middleware"
	"github.com/anyulbade/project-budget-service/internal/repository"
	"github.com/anyulbade/project-budget-service/internal/service"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Caller().Logger()

	_ = godotenv.Load()

	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repo, closeStorage := openStorage(ctx, cfg)
	defer closeStorage()

	if cfg.SeedData {
		if err := database.SeedProjects(context.Background(), repo); err != nil {
			log.Fatal().Err(err).Msg("failed to seed data")
		}
	}

	converter := fx.NewService(
		fx.NewProviderClient(fx.ProviderConfig{
			BaseURL:    cfg.ExchangeBaseURL,
			APIKey:     cfg.ExchangeAPIKey,
			MaxRetries: cfg.ExchangeMaxRetries,
			BaseDelay:  cfg.ExchangeRetryBaseDelay,
		}, &http.Client{Timeout: cfg.ExchangeHTTPTimeout}, log.Logger),
		fx.DefaultFallbackTable(),
		fx.Options{
			PreferFallback: cfg.ExchangePreferFallback,
			TotalTimeout:   cfg.ExchangeTotalTimeout,
		},
		log.Logger,
	)

	router := gin.New()
	router.Use(middleware.Logger())
	router.Use(middleware.Metrics())
	router.Use(gin.Recovery())

	healthHandler := handler.NewHealthHandler(repo)
	router.GET("/health", healthHandler.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	handler.SetupSwagger(router)
	setupAPIRoutes(router, repo, converter)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("storage", cfg.StorageDriver).Msg("starting server")
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

func openStorage(ctx context.Context, cfg *config.Config) (repository.ProjectRepository, func()) {
	switch cfg.StorageDriver {
	case "sqlite":
		db, err := database.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to open sqlite database")
		}
		return repository.NewSQLiteProjectRepository(db), func() { db.Close() }

	case "postgres":
		pool, err := database.NewPool(ctx, cfg.DatabaseURL())
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		if cfg.AutoMigrate {
			if err := database.RunMigrations(cfg.DatabaseURL()); err != nil {
				log.Fatal().Err(err).Msg("failed to run migrations")
			}
		}
		return repository.NewPostgresProjectRepository(pool), pool.Close

	default:
		log.Fatal().Str("driver", cfg.StorageDriver).Msg("unknown storage driver")
		return nil, nil
	}
}

func setupAPIRoutes(router *gin.Engine, repo repository.ProjectRepository, converter *fx.Service) {
	projectService := service.NewProjectService(repo)
	enrichmentService := service.NewEnrichmentService(repo, converter)

	projectHandler := handler.NewProjectHandler(projectService)
	conversionHandler := handler.NewConversionHandler(converter, enrichmentService)

	api := router.Group("/api/v1")
	{
		api.POST("/projects", projectHandler.Create)
		api.GET("/projects", projectHandler.List)
		api.GET("/projects/:id", projectHandler.Get)
		api.PUT("/projects/:id", projectHandler.Update)
		api.DELETE("/projects/:id", projectHandler.Delete)

		api.GET("/projects/:id/budget/conversion", conversionHandler.ConvertBudget)
		api.POST("/projects/:id/budget/conversions", conversionHandler.ConvertBudgetMulti)
		api.POST("/conversions", conversionHandler.Convert)
	}
}
