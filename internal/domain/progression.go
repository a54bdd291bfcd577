package domain

import "time"

// CourseInstance is one learner's attempt at a course. It is Active until EndedAt is set.
type CourseInstance struct {
	ID        int64
	CourseID  int64
	UserID    string
	StartedAt time.Time
	EndedAt   *time.Time
}

func (ci *CourseInstance) IsCompleted() bool {
	return ci.EndedAt != nil
}

// CourseInstanceQuestion is a question served within an instance.
type CourseInstanceQuestion struct {
	ID                int64
	CourseInstanceID  int64
	QuestionID        int64
	Number            int
	AnsweredAt        *time.Time
	AnsweredCorrectly bool
}

func (q *CourseInstanceQuestion) IsAnswered() bool {
	return q.AnsweredAt != nil
}

// CourseInstanceQuestionOption is the per-attempt snapshot of a QuestionOption.
type CourseInstanceQuestionOption struct {
	ID                       int64
	CourseInstanceQuestionID int64
	QuestionOptionID         int64
	Checked                  bool
	Correct                  bool
}

// SnapshotOption joins a snapshot with the master option it was taken from.
type SnapshotOption struct {
	CourseInstanceQuestionOption
	Text   string
	IsTrue bool
}

// InstanceSummary is a row of a learner's instance history.
type InstanceSummary struct {
	InstanceID   int64
	CourseID     int64
	CourseTitle  string
	StartedAt    time.Time
	EndedAt      *time.Time
	NumQuestions int
	NumCorrect   int
}

// ServedQuestionResult describes one served question of a finished or running instance.
type ServedQuestionResult struct {
	InstanceQuestionID int64
	QuestionID         int64
	Title              string
	Number             int
	Answered           bool
	Correct            bool
	Tags               []*Tag
}
