package domain

import "time"

// Tag is shared between courses and questions.
type Tag struct {
	ID          int64
	Name        string
	Description string
	Type        int
}

// Course is an authored bundle of tags and a target question count.
type Course struct {
	ID             int64
	Title          string
	Description    string
	QuestionsToAsk int
	Tags           []*Tag
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CourseTag links a course to a tag.
type CourseTag struct {
	ID       int64
	CourseID int64
	TagID    int64
}

func (l *CourseTag) GetID() int64 { return l.ID }
