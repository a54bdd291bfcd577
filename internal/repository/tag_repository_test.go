package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"quiz-course/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a new sqlx.DB instance and sqlmock for repository testing.
func setupTestDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}
	sqlxDB := sqlx.NewDb(mockDB, "sqlmock")
	t.Cleanup(func() { sqlxDB.Close() })
	return sqlxDB, mock
}

func TestTagDatabaseAdapter_GetTagByID(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewTagDatabaseAdapter(db)
	ctx := context.Background()
	query := regexp.QuoteMeta("SELECT id, name, description, tag_type FROM tags WHERE id = ?")

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "name", "description", "tag_type"}).
			AddRow(3, "golang", "Go language", 0)
		mock.ExpectQuery(query).WithArgs(int64(3)).WillReturnRows(rows)

		tag, err := repo.GetTagByID(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, &domain.Tag{ID: 3, Name: "golang", Description: "Go language", Type: 0}, tag)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs(int64(4)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "tag_type"}))

		tag, err := repo.GetTagByID(ctx, 4)
		assert.Nil(t, tag)
		assert.True(t, domain.IsCode(err, domain.CodeNotFound))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DBError", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs(int64(5)).WillReturnError(errors.New("connection lost"))

		_, err := repo.GetTagByID(ctx, 5)
		assert.Error(t, err)
		assert.False(t, domain.IsCode(err, domain.CodeNotFound))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTagDatabaseAdapter_InsertTag(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewTagDatabaseAdapter(db)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO tags (name, description, tag_type) VALUES (?, ?, ?) RETURNING id")).
		WithArgs("sql", nil, int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))

	tag := &domain.Tag{Name: "sql", Type: 1}
	require.NoError(t, repo.InsertTag(context.Background(), tag))
	assert.Equal(t, int64(11), tag.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTagDatabaseAdapter_UpdateTag_NotFound(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewTagDatabaseAdapter(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE tags SET name = ?, description = ?, tag_type = ? WHERE id = ?")).
		WithArgs("sql", "queries", int64(0), int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateTag(context.Background(), &domain.Tag{ID: 99, Name: "sql", Description: "queries"})
	assert.True(t, domain.IsCode(err, domain.CodeNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTagDatabaseAdapter_FindTags(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewTagDatabaseAdapter(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM tags WHERE name LIKE ? ORDER BY name, id")).
		WithArgs("%go%").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "tag_type"}).
			AddRow(1, "go", nil, 0).
			AddRow(2, "golang", "lang", 0))

	tags, err := repo.FindTags(context.Background(), "go")
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "", tags[0].Description)
	assert.Equal(t, "golang", tags[1].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTagDatabaseAdapter_CountTagsByIDs(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewTagDatabaseAdapter(db)

	count, err := repo.CountTagsByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, count)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM tags WHERE id IN (?, ?)")).
		WithArgs(int64(1), int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	count, err = repo.CountTagsByIDs(context.Background(), []int64{1, 2})
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
