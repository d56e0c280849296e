package postgres

import (
	"fmt"
	"time"

	"github.com/dom/daily-diet-api/internal/repository"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Options struct {
	DatabaseURL  string
	MaxOpenConns int
	MaxIdleConns int
	LogLevel     logger.LogLevel
}

func NewConnection(opts Options) (*gorm.DB, error) {
	if opts.LogLevel == 0 {
		opts.LogLevel = logger.Warn
	}

	db, err := gorm.Open(postgres.Open(opts.DatabaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(opts.LogLevel),
		// Surface constraint failures as gorm.ErrForeignKeyViolated and friends.
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting sql.DB: %w", err)
	}
	if opts.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}

// LogLevelFor maps the deployment environment to gorm's SQL log verbosity.
func LogLevelFor(environment string) logger.LogLevel {
	switch environment {
	case "test":
		return logger.Silent
	case "production":
		return logger.Warn
	default:
		return logger.Info
	}
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		User: NewUserRepository(db),
		Meal: NewMealRepository(db),
	}
}
