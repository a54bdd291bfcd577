package dto

import "time"

// OptionInput is the desired state of one option. ID <= 0 means a new option.
type OptionInput struct {
	ID     int64  `json:"id"`
	Text   string `json:"text" validate:"required,max=1000"`
	IsTrue bool   `json:"is_true"`
}

func (o *OptionInput) GetID() int64 { return o.ID }

// ImageInput links an already stored image and updates its metadata.
type ImageInput struct {
	ID     int64 `json:"id" validate:"gt=0"`
	Width  *int  `json:"width,omitempty" validate:"omitempty,gt=0"`
	Height *int  `json:"height,omitempty" validate:"omitempty,gt=0"`
	Full   bool  `json:"full"`
}

func (i *ImageInput) GetID() int64 { return i.ID }

// QuestionRequest carries the desired state of a question and its child collections.
// @Description Question fields with options, tags and images
type QuestionRequest struct {
	Title       string        `json:"title" validate:"required,max=200"`
	Text        string        `json:"text" validate:"max=10000"`
	Explanation string        `json:"explanation" validate:"max=10000"`
	Status      int           `json:"status" validate:"min=0,max=2"`
	Options     []OptionInput `json:"options" validate:"dive"`
	TagIDs      []int64       `json:"tag_ids" validate:"dive,gt=0"`
	Images      []ImageInput  `json:"images" validate:"dive"`
}

type OptionResponse struct {
	ID     int64  `json:"id"`
	Text   string `json:"text"`
	IsTrue bool   `json:"is_true"`
}

type ImageResponse struct {
	ID     int64 `json:"id"`
	Width  *int  `json:"width,omitempty"`
	Height *int  `json:"height,omitempty"`
	Full   bool  `json:"full"`
}

// QuestionResponse represents a question in the API response
type QuestionResponse struct {
	ID          int64            `json:"id"`
	Title       string           `json:"title"`
	Text        string           `json:"text"`
	Explanation string           `json:"explanation,omitempty"`
	Status      string           `json:"status"`
	OwnerUserID string           `json:"owner_user_id"`
	IsEditable  bool             `json:"is_editable"`
	Options     []OptionResponse `json:"options"`
	Tags        []TagResponse    `json:"tags"`
	Images      []ImageResponse  `json:"images"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// QuestionSummary is a row of the caller's question list.
type QuestionSummary struct {
	ID        int64         `json:"id"`
	Title     string        `json:"title"`
	Status    string        `json:"status"`
	Tags      []TagResponse `json:"tags"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// VoteRequest rates a question. Any positive value counts as an up vote, any negative one as a down vote.
// @Description A vote on a question
type VoteRequest struct {
	Rating int `json:"rating" validate:"min=-1,max=1"`
}

// VoteResponse holds the vote counts of a question together with the caller's own vote.
type VoteResponse struct {
	QuestionID int64 `json:"question_id"`
	Up         int   `json:"up"`
	Down       int   `json:"down"`
	MyVote     int   `json:"my_vote"`
}
