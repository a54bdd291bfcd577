package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"quiz-course/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCourseInstanceDatabaseAdapter_CreateInstance(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewCourseInstanceDatabaseAdapter(db)
	started := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO course_instances (course_id, user_id, started_at) VALUES (?, ?, ?) RETURNING id")).
		WithArgs(int64(2), "user-1", started).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(41))

	instance := &domain.CourseInstance{CourseID: 2, UserID: "user-1", StartedAt: started}
	require.NoError(t, repo.CreateInstance(context.Background(), instance))
	assert.Equal(t, int64(41), instance.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseInstanceDatabaseAdapter_GetInstanceByID(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewCourseInstanceDatabaseAdapter(db)
	started := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	query := regexp.QuoteMeta("SELECT id, course_id, user_id, started_at, ended_at FROM course_instances WHERE id = ?")

	mock.ExpectQuery(query).WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "course_id", "user_id", "started_at", "ended_at"}).
			AddRow(7, 2, "user-1", started, nil))

	instance, err := repo.GetInstanceByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "user-1", instance.UserID)
	assert.False(t, instance.IsCompleted())

	mock.ExpectQuery(query).WithArgs(int64(8)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "course_id", "user_id", "started_at", "ended_at"}))
	_, err = repo.GetInstanceByID(context.Background(), 8)
	assert.True(t, domain.IsCode(err, domain.CodeNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseInstanceDatabaseAdapter_EndInstanceOnlyOnce(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewCourseInstanceDatabaseAdapter(db)
	ended := time.Now().UTC()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE course_instances SET ended_at = ? WHERE id = ? AND ended_at IS NULL")).
		WithArgs(ended, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.EndInstance(context.Background(), 7, ended))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseInstanceDatabaseAdapter_FindEligibleQuestionIDs(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewCourseInstanceDatabaseAdapter(db)

	mock.ExpectQuery(`SELECT q\.id FROM questions q WHERE q\.status = \? AND EXISTS .* ORDER BY q\.id`).
		WithArgs(int64(domain.QuestionStatusReleased), int64(3), int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(4).AddRow(6))

	ids, err := repo.FindEligibleQuestionIDs(context.Background(), 9, 3)
	require.NoError(t, err)
	assert.Equal(t, []int64{4, 6}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseInstanceDatabaseAdapter_NextSequenceNumber(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewCourseInstanceDatabaseAdapter(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(MAX(seq_number), 0) + 1 FROM course_instance_questions WHERE course_instance_id = ?")).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"next"}).AddRow(4))

	next, err := repo.NextSequenceNumber(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, 4, next)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseInstanceDatabaseAdapter_MarkInstanceQuestionAnswered(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewCourseInstanceDatabaseAdapter(db)
	answered := time.Now().UTC()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE course_instance_questions SET answered_at = ?, answered_correctly = ? WHERE id = ? AND answered_at IS NULL")).
		WithArgs(answered, int64(1), int64(12)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.MarkInstanceQuestionAnswered(context.Background(), 12, answered, true))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseInstanceDatabaseAdapter_GetSnapshotOptions(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewCourseInstanceDatabaseAdapter(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM course_instance_question_options o JOIN question_options qo ON qo.id = o.question_option_id")).
		WithArgs(int64(12)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "course_instance_question_id", "question_option_id", "checked", "correct", "option_text", "is_true",
		}).
			AddRow(100, 12, 5, false, false, "Yes", true).
			AddRow(101, 12, 6, true, false, nil, false))

	options, err := repo.GetSnapshotOptions(context.Background(), 12)
	require.NoError(t, err)
	require.Len(t, options, 2)
	assert.Equal(t, int64(5), options[0].QuestionOptionID)
	assert.True(t, options[0].IsTrue)
	assert.Equal(t, "Yes", options[0].Text)
	assert.True(t, options[1].Checked)
	assert.Equal(t, "", options[1].Text)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseInstanceDatabaseAdapter_ListInstancesByUser(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewCourseInstanceDatabaseAdapter(db)
	started := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY ci.started_at DESC, ci.id DESC")).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "course_id", "title", "started_at", "ended_at", "num_questions", "num_correct"}).
			AddRow(2, 1, "Go basics", started, started, 3, 2))

	summaries, err := repo.ListInstancesByUser(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "Go basics", summaries[0].CourseTitle)
	assert.Equal(t, 3, summaries[0].NumQuestions)
	assert.Equal(t, 2, summaries[0].NumCorrect)
	require.NotNil(t, summaries[0].EndedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseInstanceDatabaseAdapter_DeleteInstance_NotFound(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewCourseInstanceDatabaseAdapter(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM course_instances WHERE id = ?")).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteInstance(context.Background(), 5)
	assert.True(t, domain.IsCode(err, domain.CodeNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}
