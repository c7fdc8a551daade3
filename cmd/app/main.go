package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"dentlab/cmd"
	"dentlab/internal/adapters/out/postgres/auditrepo"
	"dentlab/internal/adapters/out/postgres/orderrepo"
	"dentlab/internal/eventbus"
	"dentlab/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Error creating logger: %v", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	gormDB, err := openDatabase(configs)
	if err != nil {
		logger.Fatal("opening database failed", zap.Error(err))
	}

	app, err := cmd.NewCompositionRoot(configs, gormDB, logger)
	if err != nil {
		logger.Fatal("building application failed", zap.Error(err))
	}

	jobManager, err := app.CreateJobManager()
	if err != nil {
		logger.Fatal("building jobs failed", zap.Error(err))
	}
	if err = jobManager.StartAll(); err != nil {
		logger.Fatal("starting jobs failed", zap.Error(err))
	}

	e := echo.New()
	e.HideBanner = true
	app.CreateAPIServer().RegisterRoutes(e)
	app.CreateStreamServer().RegisterRoutes(e)

	go func() {
		if serveErr := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); serveErr != nil {
			logger.Info("http server stopped", zap.Error(serveErr))
		}
	}()

	waitForShutdown(e, app.Bus(), jobManager, logger)
}

func waitForShutdown(e *echo.Echo, bus *eventbus.Bus, jobManager *jobs.JobManager, logger *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	jobManager.StopAll()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Warn("http shutdown failed", zap.Error(err))
	}

	// Closing the bus terminates any live notification streams.
	bus.Close()
}

func openDatabase(configs cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost,
		configs.DBPort,
		configs.DBUser,
		configs.DBPassword,
		configs.DBName,
		configs.DBSslMode,
	)

	gormDB, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err = gormDB.AutoMigrate(&orderrepo.OrderDTO{}, &auditrepo.RecordDTO{}); err != nil {
		return nil, err
	}

	return gormDB, nil
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:             goDotEnvVariable("HTTP_PORT"),
		DBHost:               goDotEnvVariable("DB_HOST"),
		DBPort:               goDotEnvVariable("DB_PORT"),
		DBUser:               goDotEnvVariable("DB_USER"),
		DBPassword:           goDotEnvVariable("DB_PASSWORD"),
		DBName:               goDotEnvVariable("DB_NAME"),
		DBSslMode:            goDotEnvVariable("DB_SSLMODE"),
		BusBufferSize:        goDotEnvIntVariable("BUS_BUFFER_SIZE", eventbus.DefaultSubscriberBuffer),
		StaleDraftMaxAgeDays: goDotEnvIntVariable("STALE_DRAFT_MAX_AGE_DAYS", 14),
		OverdueAfterHours:    goDotEnvIntVariable("OVERDUE_AFTER_HOURS", 72),
		LabRecipientIDs:      splitIDs(goDotEnvVariable("LAB_RECIPIENT_IDS")),
		SystemActorID:        goDotEnvVariable("SYSTEM_ACTOR_ID"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func goDotEnvIntVariable(key string, fallback int) int {
	raw := goDotEnvVariable(key)
	if raw == "" {
		return fallback
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Fatalf("Invalid %s: %v", key, err)
	}
	return value
}

func splitIDs(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			ids = append(ids, trimmed)
		}
	}
	return ids
}
