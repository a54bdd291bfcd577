package service

import (
	"quiz-course/internal/domain"
	"quiz-course/internal/dto"

	"github.com/jinzhu/copier"
)

func toTagResponses(tags []*domain.Tag) ([]dto.TagResponse, error) {
	out := make([]dto.TagResponse, 0, len(tags))
	for _, tag := range tags {
		var resp dto.TagResponse
		if err := copier.Copy(&resp, tag); err != nil {
			return nil, domain.NewInternalError("failed to map tag", err)
		}
		out = append(out, resp)
	}
	return out, nil
}

func toCourseResponse(course *domain.Course) (*dto.CourseResponse, error) {
	resp := &dto.CourseResponse{}
	if err := copier.Copy(resp, course); err != nil {
		return nil, domain.NewInternalError("failed to map course", err)
	}
	tags, err := toTagResponses(course.Tags)
	if err != nil {
		return nil, err
	}
	resp.Tags = tags
	return resp, nil
}

func toQuestionResponse(q *domain.Question, actor domain.Actor) (*dto.QuestionResponse, error) {
	tags, err := toTagResponses(q.Tags)
	if err != nil {
		return nil, err
	}

	resp := &dto.QuestionResponse{
		ID:          q.ID,
		Title:       q.Title,
		Text:        q.Text,
		Explanation: q.Explanation,
		Status:      q.Status.String(),
		OwnerUserID: q.OwnerUserID,
		IsEditable:  domain.HasWriteAccess(q.OwnerUserID, actor),
		Options:     make([]dto.OptionResponse, 0, len(q.Options)),
		Tags:        tags,
		Images:      toImageResponses(q.Images),
		CreatedAt:   q.CreatedAt,
		UpdatedAt:   q.UpdatedAt,
	}
	for _, o := range q.Options {
		resp.Options = append(resp.Options, dto.OptionResponse{ID: o.ID, Text: o.Text, IsTrue: o.IsTrue})
	}
	return resp, nil
}

func toImageResponses(images []*domain.Image) []dto.ImageResponse {
	out := make([]dto.ImageResponse, 0, len(images))
	for _, img := range images {
		out = append(out, dto.ImageResponse{ID: img.ID, Width: img.Width, Height: img.Height, Full: img.Full})
	}
	return out
}
