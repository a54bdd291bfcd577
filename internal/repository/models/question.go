package models

import (
	"database/sql"
	"time"
)

type Question struct {
	ID           int64          `db:"id"`
	Title        string         `db:"title"`
	QuestionText sql.NullString `db:"question_text"`
	Explanation  sql.NullString `db:"explanation"`
	Status       int            `db:"status"`
	OwnerUserID  string         `db:"owner_user_id"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

type QuestionOption struct {
	ID         int64          `db:"id"`
	QuestionID int64          `db:"question_id"`
	OptionText sql.NullString `db:"option_text"`
	IsTrue     bool           `db:"is_true"`
}

type QuestionTag struct {
	ID         int64 `db:"id"`
	QuestionID int64 `db:"question_id"`
	TagID      int64 `db:"tag_id"`
}

type QuestionImage struct {
	ID         int64 `db:"id"`
	QuestionID int64 `db:"question_id"`
	ImageID    int64 `db:"image_id"`
}

type Image struct {
	ID       int64         `db:"id"`
	Width    sql.NullInt64 `db:"width"`
	Height   sql.NullInt64 `db:"height"`
	FullSize bool          `db:"full_size"`
}

type Rating struct {
	ID         int64  `db:"id"`
	QuestionID int64  `db:"question_id"`
	UserID     string `db:"user_id"`
	Rating     int    `db:"rating"`
}

type RatingCounts struct {
	Up   int `db:"up"`
	Down int `db:"down"`
}
