package main

import (
	"os"

	"peerly/internal/config"
	"peerly/internal/db"
	"peerly/internal/metrics"
	"peerly/internal/middleware"
	"peerly/internal/router"
	"peerly/internal/services"
	"peerly/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func newLogger(level string) *log.Logger {
	logger := log.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	lvl, err := log.ParseLevel(level)
	if err != nil {
		logger.WithField("level", level).Warn("unknown LOG_LEVEL, using info")
		lvl = log.InfoLevel
	}
	logger.SetLevel(lvl)
	return logger
}

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found, finding env vars from system")
	}

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("Failed to load config")
	}

	logger := newLogger(cfg.LogLevel)
	log.SetLevel(logger.GetLevel())

	// Initialize Database
	conn, err := db.Open(db.Options{
		DSN:         cfg.DatabaseURL,
		AutoMigrate: cfg.DBAutoMigrate,
		LogSQL:      cfg.DBLogSQL,
	})
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to database")
	}

	cache, err := utils.NewCache(cfg.CoreValueCacheSize)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create core value cache")
	}
	store := services.NewRecognitionStore(conn, cache, cfg.CoreValueCacheTTL)
	resolver := services.NewTokenResolver(cfg.JWTSecret, cfg.JWTIssuer)

	// Initialize Gin
	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))

	deps := router.Deps{
		AppName:  cfg.AppName,
		Store:    store,
		Resolver: resolver,
		Log:      logger,
	}
	if cfg.MetricsEnabled {
		deps.Metrics = metrics.New(cfg.AppName)
	}
	router.RegisterRoutes(r, deps)

	logger.Infof("%s server starting on :%s", cfg.AppName, cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.WithError(err).Fatal("Server stopped")
	}
}
