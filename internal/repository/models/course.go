package models

import (
	"database/sql"
	"time"
)

type Tag struct {
	ID          int64          `db:"id"`
	Name        string         `db:"name"`
	Description sql.NullString `db:"description"`
	TagType     int            `db:"tag_type"`
}

type Course struct {
	ID             int64          `db:"id"`
	Title          string         `db:"title"`
	Description    sql.NullString `db:"description"`
	QuestionsToAsk int            `db:"questions_to_ask"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

type CourseTag struct {
	ID       int64 `db:"id"`
	CourseID int64 `db:"course_id"`
	TagID    int64 `db:"tag_id"`
}

// CourseTagRow is a tag joined through course_tags.
type CourseTagRow struct {
	CourseID int64 `db:"course_id"`
	Tag
}
