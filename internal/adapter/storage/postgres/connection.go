package postgres

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/gridvolt/stationd/internal/domain"
)

// NewConnection initializes a PostgreSQL connection pool through GORM.
func NewConnection(url string, logQueries bool, log *zap.Logger) (*gorm.DB, error) {
	level := logger.Warn
	if logQueries {
		level = logger.Info
	}

	db, err := gorm.Open(postgres.Open(url), &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Info("Successfully connected to PostgreSQL")
	return db, nil
}

// RunMigrations creates or updates the schema for the managed entities,
// including the unique indexes the integrity translation relies on.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.ChargingStationType{},
		&domain.ChargingStation{},
		&domain.Connector{},
		&domain.User{},
	)
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
