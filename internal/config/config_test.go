package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", DriverSQLite)
	t.Setenv("DB_NAME", "quiz.db")
	t.Setenv("SERVER_PORT", "9191")
	t.Setenv("JWT_SECRET_KEY", "test-secret")
	t.Setenv("PROGRESSION_SEED", "42")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.DB.Driver)
	assert.Equal(t, "quiz.db", cfg.DB.DBName)
	assert.Equal(t, 9191, cfg.Server.Port)
	assert.Equal(t, "test-secret", cfg.JWT.SecretKey)
	assert.Equal(t, int64(42), cfg.Progression.Seed)
	assert.Equal(t, "Admin", cfg.JWT.AdminRole)
	assert.Equal(t, time.Hour, cfg.JWT.AccessTokenTTL)
	assert.Equal(t, 10*time.Minute, cfg.Cache.CourseTTL)
	assert.Equal(t, 20*time.Second, cfg.Server.ReadTimeout)
}

func TestLoadConfig_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "mssql")
	t.Setenv("JWT_SECRET_KEY", "test-secret")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestConfig_GetDSN(t *testing.T) {
	tests := []struct {
		name     string
		db       DBConfig
		expected string
	}{
		{
			name:     "oracle",
			db:       DBConfig{Driver: DriverOracle, Host: "db", Port: 1521, User: "quiz", Password: "pw", DBName: "FREEPDB1"},
			expected: "oracle://quiz:pw@db:1521/FREEPDB1",
		},
		{
			name:     "postgres escapes credentials",
			db:       DBConfig{Driver: DriverPostgres, Host: "pg", Port: 5432, User: "quiz", Password: "p@ss", DBName: "course"},
			expected: "postgres://quiz:p%40ss@pg:5432/course?sslmode=disable",
		},
		{
			name:     "sqlite",
			db:       DBConfig{Driver: DriverSQLite, DBName: "/tmp/course.db"},
			expected: "file:/tmp/course.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)",
		},
		{
			name:     "explicit dsn wins",
			db:       DBConfig{Driver: DriverPostgres, DSN: "postgres://explicit"},
			expected: "postgres://explicit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{DB: tt.db}
			assert.Equal(t, tt.expected, cfg.GetDSN())
		})
	}
}
