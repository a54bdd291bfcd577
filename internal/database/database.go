package database

import (
	"fmt"

	"quiz-course/internal/config"
	"quiz-course/internal/logger"

	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx"
	"github.com/jmoiron/sqlx"
	_ "github.com/sijms/go-ora/v2" // registers "oracle"
	"go.uber.org/zap"
	_ "modernc.org/sqlite" // registers "sqlite"
)

func init() {
	// Queries are written with '?' placeholders and rebound per driver.
	sqlx.BindDriver("oracle", sqlx.NAMED)
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// DriverName maps a configured driver to the database/sql driver name it registers.
func DriverName(driver string) (string, error) {
	switch driver {
	case config.DriverOracle:
		return "oracle", nil
	case config.DriverPostgres:
		return "pgx", nil
	case config.DriverSQLite:
		return "sqlite", nil
	default:
		return "", fmt.Errorf("unsupported db driver %q", driver)
	}
}

// NewSQLXDB connects to the configured database and verifies the connection.
func NewSQLXDB(dbCfg config.DBConfig, dsn string) (*sqlx.DB, error) {
	driverName, err := DriverName(dbCfg.Driver)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", dbCfg.Driver, err)
	}

	if dbCfg.Driver == config.DriverSQLite {
		// A single writer connection keeps SQLite transactions from contending for the file lock.
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", dbCfg.Driver, err)
	}

	logger.Get().Info("Successfully connected to database", zap.String("driver", dbCfg.Driver))
	return db, nil
}
