package domain

import (
	"fmt"
	"time"
)

// QuestionStatus is the publication state of a question.
type QuestionStatus int

const (
	QuestionStatusDraft QuestionStatus = iota
	QuestionStatusReleased
	QuestionStatusSuperseded
)

func (s QuestionStatus) String() string {
	switch s {
	case QuestionStatusDraft:
		return "draft"
	case QuestionStatusReleased:
		return "released"
	case QuestionStatusSuperseded:
		return "superseded"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Valid reports whether s is one of the known statuses.
func (s QuestionStatus) Valid() bool {
	return s >= QuestionStatusDraft && s <= QuestionStatusSuperseded
}

type Question struct {
	ID          int64
	Title       string
	Text        string
	Explanation string
	Status      QuestionStatus
	OwnerUserID string
	Options     []*QuestionOption
	Tags        []*Tag
	Images      []*Image
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// QuestionOption has no order beyond its id.
type QuestionOption struct {
	ID         int64
	QuestionID int64
	Text       string
	IsTrue     bool
}

func (o *QuestionOption) GetID() int64 { return o.ID }

// Image metadata; binaries live in external storage.
type Image struct {
	ID     int64
	Width  *int
	Height *int
	Full   bool
}

func (i *Image) GetID() int64 { return i.ID }

type QuestionTag struct {
	ID         int64
	QuestionID int64
	TagID      int64
}

func (l *QuestionTag) GetID() int64 { return l.ID }

type QuestionImage struct {
	ID         int64
	QuestionID int64
	ImageID    int64
}

func (l *QuestionImage) GetID() int64 { return l.ID }

// Rating is one user's vote on a question. Value is -1, 0 or 1.
type Rating struct {
	ID         int64
	QuestionID int64
	UserID     string
	Value      int
}

// ClampRating maps any vote onto -1, 0 or 1 by its sign.
func ClampRating(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

type RatingCounts struct {
	Up   int
	Down int
}
