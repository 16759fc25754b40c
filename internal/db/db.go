package db

import (
	"fmt"

	"peerly/internal/models"

	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Options 数据库连接参数
type Options struct {
	DSN         string
	AutoMigrate bool
	LogSQL      bool
}

// Open 建立 gorm 连接，按需执行 AutoMigrate
func Open(opts Options) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}
	if opts.LogSQL {
		cfg.Logger = logger.Default.LogMode(logger.Info)
	}

	conn, err := gorm.Open(postgres.Open(opts.DSN), cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	log.Info("Database connection established")

	if opts.AutoMigrate {
		if err := Migrate(conn); err != nil {
			return nil, err
		}
		log.Info("Database migration completed")
	}

	return conn, nil
}

// Migrate 同步表结构
func Migrate(conn *gorm.DB) error {
	err := conn.AutoMigrate(
		&models.User{},
		&models.CoreValue{},
		&models.Recognition{},
		&models.RecognitionHi5{},
	)
	if err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	return nil
}
