package db

import (
	"database/sql"
	"fmt"
	"go-budget-api/config"
	"go-budget-api/logger"
	"os"
	"path/filepath"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Driver names the SQL backend in use.
type Driver string

const (
	Postgres Driver = "postgres"
	SQLite   Driver = "sqlite"
)

// DSN builds the connection string for the configured driver.
func DSN(cfg config.Config) string {
	dbCfg := cfg.Database
	if Driver(dbCfg.Driver) == SQLite {
		return fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_time_format=sqlite", dbCfg.SQLitePath)
	}
	if dbCfg.URL != "" {
		return dbCfg.URL
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		dbCfg.Host, dbCfg.Port, dbCfg.User, dbCfg.Password, dbCfg.Name, dbCfg.SSLMode)
}

func safeDSN(cfg config.Config) string {
	dbCfg := cfg.Database
	if Driver(dbCfg.Driver) == SQLite {
		return dbCfg.SQLitePath
	}
	if dbCfg.URL != "" {
		return "(database url)"
	}
	return fmt.Sprintf("host=%s port=%s user=%s dbname=%s sslmode=%s",
		dbCfg.Host, dbCfg.Port, dbCfg.User, dbCfg.Name, dbCfg.SSLMode)
}

// Connect opens and pings the configured database, then applies migrations.
func Connect() (*sql.DB, Driver, error) {
	cfg := config.AppConfig
	driver := Driver(cfg.Database.Driver)

	logger.Log.WithField("connection", safeDSN(cfg)).Info("Attempting to connect to the database")

	if driver == SQLite {
		if err := os.MkdirAll(filepath.Dir(cfg.Database.SQLitePath), 0o755); err != nil {
			return nil, driver, fmt.Errorf("failed to create sqlite directory: %w", err)
		}
	}

	dsn := DSN(cfg)
	db, err := sql.Open(string(driver), dsn)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to open database connection")
		return nil, driver, fmt.Errorf("failed to open database connection: %w", err)
	}
	if driver == SQLite {
		// A single writer avoids SQLITE_BUSY between pooled connections.
		db.SetMaxOpenConns(1)
	}

	if err = db.Ping(); err != nil {
		db.Close()
		logger.Log.WithError(err).Error("Failed to ping database")
		return nil, driver, fmt.Errorf("failed to ping database: %w", err)
	}

	if err = RunMigrations(driver, dsn); err != nil {
		db.Close()
		logger.Log.WithError(err).Error("Failed to run migrations")
		return nil, driver, err
	}

	logger.Log.Info("Database connection established successfully")
	return db, driver, nil
}
