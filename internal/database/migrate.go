package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"quiz-course/internal/config"
	"quiz-course/internal/logger"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	sqlitemigrate "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed migrations
var migrationsFS embed.FS

// RunMigrations brings the schema of db up to date for the given driver.
func RunMigrations(db *sql.DB, driver string) error {
	switch driver {
	case config.DriverPostgres:
		instance, err := pgxmigrate.WithInstance(db, &pgxmigrate.Config{})
		if err != nil {
			return fmt.Errorf("could not create postgres migration driver: %w", err)
		}
		return migrateUp(instance, "pgx5", "migrations/postgres")
	case config.DriverSQLite:
		instance, err := sqlitemigrate.WithInstance(db, &sqlitemigrate.Config{})
		if err != nil {
			return fmt.Errorf("could not create sqlite migration driver: %w", err)
		}
		return migrateUp(instance, "sqlite", "migrations/sqlite")
	case config.DriverOracle:
		// golang-migrate has no Oracle driver; statements are applied directly.
		return runOracleMigrations(db)
	default:
		return fmt.Errorf("unsupported db driver %q", driver)
	}
}

func migrateUp(instance database.Driver, databaseName, dir string) error {
	source, err := iofs.New(migrationsFS, dir)
	if err != nil {
		return fmt.Errorf("could not read embedded migrations %s: %w", dir, err)
	}

	m, err := migrate.NewWithInstance("iofs", source, databaseName, instance)
	if err != nil {
		return fmt.Errorf("could not create migrator: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not apply migrations: %w", err)
	}

	version, dirty, _ := m.Version()
	logger.Get().Info("Migrations completed successfully",
		zap.String("database", databaseName),
		zap.Uint("version", version),
		zap.Bool("dirty", dirty),
	)
	return nil
}

const oracleMigrationsTable = "schema_migrations"

func runOracleMigrations(db *sql.DB) error {
	if err := ensureOracleMigrationsTable(db); err != nil {
		return err
	}

	files, err := fs.Glob(migrationsFS, "migrations/oracle/*.up.sql")
	if err != nil {
		return fmt.Errorf("could not list oracle migrations: %w", err)
	}
	sort.Strings(files)

	for _, file := range files {
		version := strings.TrimSuffix(path.Base(file), ".up.sql")

		var applied int
		if err := db.QueryRow("SELECT COUNT(*) FROM "+oracleMigrationsTable+" WHERE version = :1", version).Scan(&applied); err != nil {
			return fmt.Errorf("could not check migration %s: %w", version, err)
		}
		if applied > 0 {
			continue
		}

		content, err := migrationsFS.ReadFile(file)
		if err != nil {
			return fmt.Errorf("could not read migration file %s: %w", file, err)
		}

		for _, stmt := range SplitStatements(string(content)) {
			if _, err := db.Exec(stmt); err != nil {
				return fmt.Errorf("could not execute migration %s: %w", version, err)
			}
		}

		if _, err := db.Exec("INSERT INTO "+oracleMigrationsTable+" (version) VALUES (:1)", version); err != nil {
			return fmt.Errorf("could not record migration %s: %w", version, err)
		}
		logger.Get().Info("Executed migration", zap.String("version", version))
	}

	logger.Get().Info("Migrations completed successfully", zap.String("database", "oracle"))
	return nil
}

func ensureOracleMigrationsTable(db *sql.DB) error {
	var exists int
	err := db.QueryRow("SELECT COUNT(*) FROM user_tables WHERE table_name = :1", strings.ToUpper(oracleMigrationsTable)).Scan(&exists)
	if err != nil {
		return fmt.Errorf("could not inspect schema: %w", err)
	}
	if exists > 0 {
		return nil
	}
	if _, err := db.Exec("CREATE TABLE " + oracleMigrationsTable + " (version VARCHAR2(255) PRIMARY KEY)"); err != nil {
		return fmt.Errorf("could not create %s: %w", oracleMigrationsTable, err)
	}
	return nil
}

// SplitStatements splits a migration file on ';' terminators. Oracle rejects the trailing
// semicolon and multiple statements per Exec.
func SplitStatements(content string) []string {
	var statements []string
	for _, part := range strings.Split(content, ";") {
		stmt := strings.TrimSpace(part)
		if stmt == "" {
			continue
		}
		statements = append(statements, stmt)
	}
	return statements
}
