package dto

import "time"

// TagRequest is the body of tag create/update calls.
// @Description Tag fields
type TagRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
	Type        int    `json:"type" validate:"min=0"`
}

// TagResponse represents a tag in the API response
type TagResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Type        int    `json:"type"`
}

// CourseRequest carries the desired state of a course. TagIDs replaces the linked tag set.
// @Description Course fields
type CourseRequest struct {
	Title          string  `json:"title" validate:"required,max=200"`
	Description    string  `json:"description" validate:"max=2000"`
	QuestionsToAsk int     `json:"questions_to_ask" validate:"min=1,max=500"`
	TagIDs         []int64 `json:"tag_ids" validate:"dive,gt=0"`
}

// CourseResponse represents a course in the API response
type CourseResponse struct {
	ID             int64         `json:"id"`
	Title          string        `json:"title"`
	Description    string        `json:"description,omitempty"`
	QuestionsToAsk int           `json:"questions_to_ask"`
	Tags           []TagResponse `json:"tags" copier:"-"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}
