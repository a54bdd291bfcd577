package service

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"quiz-course/internal/config"
	"quiz-course/internal/database"
	"quiz-course/internal/domain"
	"quiz-course/internal/reconcile"
	"quiz-course/internal/repository"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

var (
	learner = domain.Actor{UserID: "learner-1"}
	other   = domain.Actor{UserID: "learner-2"}
	author  = domain.Actor{UserID: "author-1"}
	admin   = domain.Actor{UserID: "admin-1", IsAdmin: true}
)

// fixture is a migrated SQLite database with every repository wired to it.
type fixture struct {
	db        *sqlx.DB
	tm        domain.TransactionManager
	tags      domain.TagRepository
	courses   domain.CourseRepository
	questions domain.QuestionRepository
	instances domain.CourseInstanceRepository
	registry  *reconcile.Registry
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	dbCfg := config.DBConfig{Driver: config.DriverSQLite, DBName: filepath.Join(t.TempDir(), "service.db")}
	cfg := &config.Config{DB: dbCfg}
	db, err := database.NewSQLXDB(dbCfg, cfg.GetDSN())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.RunMigrations(db.DB, config.DriverSQLite))

	return &fixture{
		db:        db,
		tm:        repository.NewTransactionManagerAdapter(db),
		tags:      repository.NewTagDatabaseAdapter(db),
		courses:   repository.NewCourseDatabaseAdapter(db),
		questions: repository.NewQuestionDatabaseAdapter(db),
		instances: repository.NewCourseInstanceDatabaseAdapter(db),
		registry:  NewRelationRegistry(),
	}
}

func (f *fixture) progression(rnd RandSource) ProgressionService {
	return NewProgressionService(f.tm, f.courses, f.questions, f.instances, NewGradingEngine(f.instances), rnd)
}

func (f *fixture) questionService() QuestionService {
	return NewQuestionService(f.tm, f.questions, f.tags, f.instances, f.registry)
}

func (f *fixture) tag(t *testing.T, name string) int64 {
	t.Helper()
	tag := &domain.Tag{Name: name}
	require.NoError(t, f.tags.InsertTag(context.Background(), tag))
	return tag.ID
}

func (f *fixture) course(t *testing.T, target int, tagIDs ...int64) int64 {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC()
	c := &domain.Course{Title: fmt.Sprintf("course-%d", target), QuestionsToAsk: target, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, f.courses.InsertCourse(ctx, c))
	for _, tagID := range tagIDs {
		require.NoError(t, f.courses.InsertCourseTagLink(ctx, &domain.CourseTag{CourseID: c.ID, TagID: tagID}))
	}
	return c.ID
}

// question stores a question owned by author with one option per isTrue flag.
func (f *fixture) question(t *testing.T, status domain.QuestionStatus, tagIDs []int64, isTrue ...bool) int64 {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC()
	q := &domain.Question{
		Title:       "question",
		Text:        "pick the right ones",
		Status:      status,
		OwnerUserID: author.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, f.questions.InsertQuestion(ctx, q))
	for i, v := range isTrue {
		opt := &domain.QuestionOption{QuestionID: q.ID, Text: fmt.Sprintf("option %d", i+1), IsTrue: v}
		require.NoError(t, f.questions.InsertOption(ctx, opt))
	}
	for _, tagID := range tagIDs {
		require.NoError(t, f.questions.InsertQuestionTagLink(ctx, &domain.QuestionTag{QuestionID: q.ID, TagID: tagID}))
	}
	return q.ID
}

func (f *fixture) image(t *testing.T) int64 {
	t.Helper()
	res, err := f.db.Exec("INSERT INTO images (width, height, full_size) VALUES (?, ?, ?)", 100, 50, 0)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return id
}

func (f *fixture) count(t *testing.T, table string) int {
	t.Helper()
	var n int
	require.NoError(t, f.db.Get(&n, "SELECT COUNT(*) FROM "+table))
	return n
}

func (f *fixture) servedQuestionIDs(t *testing.T, instanceID int64) []int64 {
	t.Helper()
	var ids []int64
	require.NoError(t, f.db.Select(&ids,
		"SELECT question_id FROM course_instance_questions WHERE course_instance_id = ? ORDER BY seq_number", instanceID))
	return ids
}
