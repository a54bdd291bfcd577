package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"quiz-course/cmd/seed_initial_data/internal/seedmodels"
	"quiz-course/internal/config"
	"quiz-course/internal/database"
	"quiz-course/internal/domain"
	"quiz-course/internal/repository"
	"quiz-course/internal/service"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSeeder(t *testing.T) (*seeder, *sqlx.DB) {
	t.Helper()
	dbCfg := config.DBConfig{Driver: config.DriverSQLite, DBName: filepath.Join(t.TempDir(), "seed.db")}
	cfg := &config.Config{DB: dbCfg, Cache: config.CacheConfig{CourseTTL: time.Minute}}
	db, err := database.NewSQLXDB(dbCfg, cfg.GetDSN())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.RunMigrations(db.DB, config.DriverSQLite))

	tm := repository.NewTransactionManagerAdapter(db)
	tags := repository.NewTagDatabaseAdapter(db)
	registry := service.NewRelationRegistry()
	return &seeder{
		tags:      service.NewTagService(tags),
		questions: service.NewQuestionService(tm, repository.NewQuestionDatabaseAdapter(db), tags, repository.NewCourseInstanceDatabaseAdapter(db), registry),
		courses:   service.NewCourseService(tm, repository.NewCourseDatabaseAdapter(db), tags, registry, nil, cfg),
		actor:     domain.Actor{UserID: "seed", IsAdmin: true},
	}, db
}

func count(t *testing.T, db *sqlx.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.Get(&n, "SELECT COUNT(*) FROM "+table))
	return n
}

func TestSeeder_SeedsShippedFile(t *testing.T) {
	raw, err := os.ReadFile(filepath.Join("..", "..", defaultSeedFile))
	require.NoError(t, err)
	var seed seedmodels.SeedFile
	require.NoError(t, json.Unmarshal(raw, &seed))

	s, db := newTestSeeder(t)
	require.NoError(t, s.Seed(context.Background(), &seed))

	assert.Equal(t, len(seed.Tags), count(t, db, "tags"))
	assert.Equal(t, len(seed.Questions), count(t, db, "questions"))
	assert.Equal(t, len(seed.Courses), count(t, db, "courses"))

	// Running it again reuses the tags.
	require.NoError(t, s.Seed(context.Background(), &seedmodels.SeedFile{Tags: seed.Tags}))
	assert.Equal(t, len(seed.Tags), count(t, db, "tags"))
}

func TestSeeder_UnknownTag(t *testing.T) {
	s, db := newTestSeeder(t)
	err := s.Seed(context.Background(), &seedmodels.SeedFile{
		Questions: []seedmodels.SeedQuestion{{Title: "q", Tags: []string{"missing"}}},
	})
	assert.ErrorContains(t, err, `unknown tag "missing"`)
	assert.Zero(t, count(t, db, "questions"))
}
