package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/silentvoice/anonymous_reporting_system/internal/config"
	"github.com/silentvoice/anonymous_reporting_system/internal/geocoder"
	v1 "github.com/silentvoice/anonymous_reporting_system/internal/handler/http/v1"
	"github.com/silentvoice/anonymous_reporting_system/internal/models"
	"github.com/silentvoice/anonymous_reporting_system/internal/repository"
	"github.com/silentvoice/anonymous_reporting_system/internal/service"
	"github.com/silentvoice/anonymous_reporting_system/internal/webhook"
	"github.com/silentvoice/anonymous_reporting_system/pkg/logger"
	"github.com/silentvoice/anonymous_reporting_system/pkg/postgres"
	redisclient "github.com/silentvoice/anonymous_reporting_system/pkg/redis"
	"github.com/sirupsen/logrus"

	_ "github.com/silentvoice/anonymous_reporting_system/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Anonymous Incident Reporting API
// @version 1.0
// @description Anonymous campus incident reporting service: public submission and tracking, admin review.
// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func runMigrations(cfg *config.Config, log *logrus.Logger) error {
	log.Info("Running database migrations...")

	migrationURL := cfg.DatabaseURL
	if !strings.HasPrefix(migrationURL, "pgx5://") {
		migrationURL = strings.Replace(migrationURL, "postgres://", "pgx5://", 1)
	}

	m, err := migrate.New(
		"file://migrations",
		migrationURL,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Database migrations applied successfully")
	return nil
}

func main() {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	log := logger.New(cfg.LogLevel)

	// Контекст для graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Подключение к PostgreSQL. При DB_REQUIRED=false сервер поднимается
	// в деградированном режиме: зависящие от бд запросы отвечают 500.
	var dbpool *pgxpool.Pool
	dbpool, err = postgres.NewPostgresDB(ctx, cfg)
	if err != nil {
		if cfg.DBRequired {
			log.Fatalf("Failed to connect to PostgreSQL: %v", err)
		}
		log.WithError(err).Warn("Failed to connect to PostgreSQL, serving in degraded mode")
		dbpool = nil
	} else {
		defer dbpool.Close()
		log.Info("Successfully connected to PostgreSQL")

		// Запуск миграций
		if err := runMigrations(cfg, log); err != nil {
			log.Fatalf("Failed to run database migrations: %v", err)
		}
	}

	// Инициализация Redis клиента
	redisClient, err := redisclient.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Info("Successfully connected to Redis")

	// Инициализация издателя алертов
	alertPublisher := webhook.NewRedisAlertPublisher(redisClient)

	// Инициализация и запуск воркера доставки алертов
	alertWorker := webhook.NewAlertWorker(redisClient, log, cfg)
	alertWorker.Start(ctx)

	// Инициализация геокодера: сперва справочник мест кампуса,
	// затем детерминированный запасной вариант
	campusCenter := models.Coordinates{Lat: cfg.CampusLat, Lng: cfg.CampusLng}
	geo := geocoder.Chain{
		geocoder.NewStatic(geocoder.DefaultCampusPlaces(campusCenter)),
		geocoder.NewPseudo(campusCenter),
	}

	// Инициализация репозиториев
	reportRepo := repository.NewReportRepository(dbpool, redisClient)
	adminRepo := repository.NewAdminRepository(dbpool)

	// Инициализация сервисов
	reportService := service.NewReportService(reportRepo, log, geo, alertPublisher)
	authService := service.NewAuthService(adminRepo, log, cfg)

	// Инициализация хэндлеров
	handler := v1.NewHandler(reportService, authService, log, cfg)

	// Настройка Gin роутера
	router := gin.Default()
	api := router.Group("/api")
	handler.RegisterRoutes(api)

	// Добавление маршрута для Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Запуск HTTP-сервера
	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)

	srv := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	// Запуск сервера в горутине
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.Infof("HTTP server started on port %s", cfg.HTTPPort)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal, shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server gracefully stopped")
}
