package dto

import "time"

// ProgressionState is returned by every call that moves a course instance forward.
// @Description Course instance progress after an advance
type ProgressionState struct {
	InstanceID         int64 `json:"instance_id"`
	CourseID           int64 `json:"course_id"`
	InstanceQuestionID int64 `json:"instance_question_id"`
	Asked              int   `json:"asked"`
	Total              int   `json:"total"`
	Done               bool  `json:"done"`
	// AnsweredCorrectly is set only when the state follows an answer submission.
	AnsweredCorrectly *bool `json:"answered_correctly,omitempty"`
}

// ServedOptionView is a frozen option as the learner sees it.
type ServedOptionView struct {
	ID      int64  `json:"id"`
	Text    string `json:"text"`
	Checked bool   `json:"checked"`
}

// ServedQuestionView is the learner's view of a served question.
// QuestionID stays zero while the instance is running.
type ServedQuestionView struct {
	InstanceQuestionID int64              `json:"instance_question_id"`
	InstanceID         int64              `json:"instance_id"`
	QuestionID         int64              `json:"question_id,omitempty"`
	Title              string             `json:"title"`
	Text               string             `json:"text"`
	Number             int                `json:"number"`
	Total              int                `json:"total"`
	InstanceCompleted  bool               `json:"instance_completed"`
	Answered           bool               `json:"answered"`
	Options            []ServedOptionView `json:"options"`
	Images             []ImageResponse    `json:"images"`
}

// AnswerRequest carries one boolean per frozen option, in option order.
// @Description Answers for a served question
type AnswerRequest struct {
	Answers []bool `json:"answers"`
}

// GradingResult is the per-option and aggregate correctness of an answer.
type GradingResult struct {
	InstanceQuestionID int64  `json:"instance_question_id"`
	OptionCorrect      []bool `json:"option_correct"`
	Correct            bool   `json:"correct"`
	AlreadyAnswered    bool   `json:"already_answered"`
}

// SubmitAnswerResponse combines the grading outcome with the next progression state.
type SubmitAnswerResponse struct {
	Result *GradingResult    `json:"result"`
	Next   *ProgressionState `json:"next"`
}

// SolutionResponse is the grading outcome together with the full question for review.
type SolutionResponse struct {
	Result   *GradingResult    `json:"result"`
	Question *QuestionResponse `json:"question"`
}

type QuestionResultView struct {
	InstanceQuestionID int64         `json:"instance_question_id"`
	QuestionID         int64         `json:"question_id"`
	Title              string        `json:"title"`
	Number             int           `json:"number"`
	Answered           bool          `json:"answered"`
	Correct            bool          `json:"correct"`
	Tags               []TagResponse `json:"tags"`
}

// CourseResultResponse summarizes one instance and all questions served in it.
type CourseResultResponse struct {
	InstanceID   int64                `json:"instance_id"`
	CourseID     int64                `json:"course_id"`
	CourseTitle  string               `json:"course_title"`
	StartedAt    time.Time            `json:"started_at"`
	EndedAt      *time.Time           `json:"ended_at,omitempty"`
	Completed    bool                 `json:"completed"`
	NumQuestions int                  `json:"num_questions"`
	NumCorrect   int                  `json:"num_correct"`
	Questions    []QuestionResultView `json:"questions"`
}

// InstanceSummaryResponse is a row of the caller's instance history.
type InstanceSummaryResponse struct {
	InstanceID   int64      `json:"instance_id"`
	CourseID     int64      `json:"course_id"`
	CourseTitle  string     `json:"course_title"`
	StartedAt    time.Time  `json:"started_at"`
	EndedAt      *time.Time `json:"ended_at,omitempty"`
	NumQuestions int        `json:"num_questions"`
	NumCorrect   int        `json:"num_correct"`
}
