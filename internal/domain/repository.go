package domain

import (
	"context"
	"time"
)

// TransactionManager runs fn as one unit of work. Any error returned by fn discards every write.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// TagRepository defines the interface for tag persistence
type TagRepository interface {
	GetTagByID(ctx context.Context, id int64) (*Tag, error)
	FindTags(ctx context.Context, term string) ([]*Tag, error)
	InsertTag(ctx context.Context, tag *Tag) error
	UpdateTag(ctx context.Context, tag *Tag) error
	CountTagsByIDs(ctx context.Context, ids []int64) (int, error)
}

// CourseRepository defines the interface for course persistence
type CourseRepository interface {
	GetCourseByID(ctx context.Context, id int64) (*Course, error)
	ListCourses(ctx context.Context) ([]*Course, error)
	InsertCourse(ctx context.Context, course *Course) error
	UpdateCourse(ctx context.Context, course *Course) error

	GetCourseTagLinks(ctx context.Context, courseID int64) ([]*CourseTag, error)
	InsertCourseTagLink(ctx context.Context, link *CourseTag) error
	UpdateCourseTagLink(ctx context.Context, link *CourseTag) error
	DeleteCourseTagLink(ctx context.Context, id int64) error
}

// QuestionRepository defines the interface for question persistence, including its child collections.
type QuestionRepository interface {
	GetQuestionByID(ctx context.Context, id int64) (*Question, error)
	ListQuestionsByOwner(ctx context.Context, ownerUserID string) ([]*Question, error)
	InsertQuestion(ctx context.Context, question *Question) error
	UpdateQuestion(ctx context.Context, question *Question) error
	DeleteQuestion(ctx context.Context, id int64) error

	GetOptions(ctx context.Context, questionID int64) ([]*QuestionOption, error)
	InsertOption(ctx context.Context, option *QuestionOption) error
	UpdateOption(ctx context.Context, option *QuestionOption) error
	DeleteOption(ctx context.Context, id int64) error
	DeleteOptionsByQuestionID(ctx context.Context, questionID int64) error

	GetTagsByQuestionID(ctx context.Context, questionID int64) ([]*Tag, error)
	GetQuestionTagLinks(ctx context.Context, questionID int64) ([]*QuestionTag, error)
	InsertQuestionTagLink(ctx context.Context, link *QuestionTag) error
	UpdateQuestionTagLink(ctx context.Context, link *QuestionTag) error
	DeleteQuestionTagLink(ctx context.Context, id int64) error
	DeleteQuestionTagLinksByQuestionID(ctx context.Context, questionID int64) error

	GetImagesByQuestionID(ctx context.Context, questionID int64) ([]*Image, error)
	GetImagesByIDs(ctx context.Context, ids []int64) ([]*Image, error)
	UpdateImage(ctx context.Context, image *Image) error
	GetQuestionImageLinks(ctx context.Context, questionID int64) ([]*QuestionImage, error)
	InsertQuestionImageLink(ctx context.Context, link *QuestionImage) error
	UpdateQuestionImageLink(ctx context.Context, link *QuestionImage) error
	DeleteQuestionImageLink(ctx context.Context, id int64) error
	DeleteQuestionImageLinksByQuestionID(ctx context.Context, questionID int64) error

	// GetRating returns NOT_FOUND when the user has not voted on the question.
	GetRating(ctx context.Context, questionID int64, userID string) (*Rating, error)
	InsertRating(ctx context.Context, rating *Rating) error
	UpdateRating(ctx context.Context, rating *Rating) error
	CountRatings(ctx context.Context, questionID int64) (*RatingCounts, error)
	DeleteRatingsByQuestionID(ctx context.Context, questionID int64) error
}

// CourseInstanceRepository defines the interface for progression records.
type CourseInstanceRepository interface {
	CreateInstance(ctx context.Context, instance *CourseInstance) error
	GetInstanceByID(ctx context.Context, id int64) (*CourseInstance, error)
	// EndInstance sets ended_at only if it is still unset.
	EndInstance(ctx context.Context, id int64, endedAt time.Time) error
	ListInstancesByUser(ctx context.Context, userID string) ([]*InstanceSummary, error)
	DeleteInstance(ctx context.Context, id int64) error

	CountInstanceQuestions(ctx context.Context, instanceID int64) (int, error)
	NextSequenceNumber(ctx context.Context, instanceID int64) (int, error)
	// FindEligibleQuestionIDs returns, ordered by id, the Released questions sharing a tag
	// with the course that have not been served in the instance yet.
	FindEligibleQuestionIDs(ctx context.Context, instanceID, courseID int64) ([]int64, error)
	CreateInstanceQuestion(ctx context.Context, iq *CourseInstanceQuestion) error
	GetInstanceQuestionByID(ctx context.Context, id int64) (*CourseInstanceQuestion, error)
	// MarkInstanceQuestionAnswered records the result only if answered_at is still unset.
	MarkInstanceQuestionAnswered(ctx context.Context, id int64, answeredAt time.Time, correct bool) error
	ListServedQuestions(ctx context.Context, instanceID int64) ([]*ServedQuestionResult, error)
	DeleteInstanceQuestionsByInstance(ctx context.Context, instanceID int64) error
	DeleteInstanceQuestionsByQuestion(ctx context.Context, questionID int64) error

	CreateSnapshotOption(ctx context.Context, option *CourseInstanceQuestionOption) error
	GetSnapshotOptions(ctx context.Context, instanceQuestionID int64) ([]*SnapshotOption, error)
	UpdateSnapshotOption(ctx context.Context, option *CourseInstanceQuestionOption) error
	DeleteSnapshotOptionsByInstance(ctx context.Context, instanceID int64) error
	DeleteSnapshotOptionsByQuestion(ctx context.Context, questionID int64) error
}
