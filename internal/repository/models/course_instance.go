package models

import (
	"database/sql"
	"time"
)

type CourseInstance struct {
	ID        int64        `db:"id"`
	CourseID  int64        `db:"course_id"`
	UserID    string       `db:"user_id"`
	StartedAt time.Time    `db:"started_at"`
	EndedAt   sql.NullTime `db:"ended_at"`
}

type CourseInstanceQuestion struct {
	ID                int64        `db:"id"`
	CourseInstanceID  int64        `db:"course_instance_id"`
	QuestionID        int64        `db:"question_id"`
	SeqNumber         int          `db:"seq_number"`
	AnsweredAt        sql.NullTime `db:"answered_at"`
	AnsweredCorrectly bool         `db:"answered_correctly"`
}

type CourseInstanceQuestionOption struct {
	ID                       int64 `db:"id"`
	CourseInstanceQuestionID int64 `db:"course_instance_question_id"`
	QuestionOptionID         int64 `db:"question_option_id"`
	Checked                  bool  `db:"checked"`
	Correct                  bool  `db:"correct"`
}

// SnapshotOption is a snapshot row joined with its master option.
type SnapshotOption struct {
	CourseInstanceQuestionOption
	OptionText sql.NullString `db:"option_text"`
	IsTrue     bool           `db:"is_true"`
}

type InstanceSummary struct {
	ID           int64        `db:"id"`
	CourseID     int64        `db:"course_id"`
	Title        string       `db:"title"`
	StartedAt    time.Time    `db:"started_at"`
	EndedAt      sql.NullTime `db:"ended_at"`
	NumQuestions int          `db:"num_questions"`
	NumCorrect   int          `db:"num_correct"`
}

type ServedQuestion struct {
	ID                int64        `db:"id"`
	QuestionID        int64        `db:"question_id"`
	Title             string       `db:"title"`
	SeqNumber         int          `db:"seq_number"`
	AnsweredAt        sql.NullTime `db:"answered_at"`
	AnsweredCorrectly bool         `db:"answered_correctly"`
}
