package service

import (
	"context"
	"strings"

	"quiz-course/internal/domain"
	"quiz-course/internal/dto"

	"github.com/jinzhu/copier"
)

// TagService maintains the shared tag vocabulary.
type TagService interface {
	GetTag(ctx context.Context, id int64) (*dto.TagResponse, error)
	FindTags(ctx context.Context, term string) ([]dto.TagResponse, error)
	CreateTag(ctx context.Context, actor domain.Actor, req *dto.TagRequest) (*dto.TagResponse, error)
	UpdateTag(ctx context.Context, actor domain.Actor, id int64, req *dto.TagRequest) (*dto.TagResponse, error)
}

type tagService struct {
	tags domain.TagRepository
}

func NewTagService(tags domain.TagRepository) TagService {
	return &tagService{tags: tags}
}

func (s *tagService) GetTag(ctx context.Context, id int64) (*dto.TagResponse, error) {
	tag, err := s.tags.GetTagByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toTagResponse(tag)
}

// FindTags returns tags whose name contains term; an empty term lists every tag.
func (s *tagService) FindTags(ctx context.Context, term string) ([]dto.TagResponse, error) {
	tags, err := s.tags.FindTags(ctx, strings.TrimSpace(term))
	if err != nil {
		return nil, err
	}
	return toTagResponses(tags)
}

func (s *tagService) CreateTag(ctx context.Context, actor domain.Actor, req *dto.TagRequest) (*dto.TagResponse, error) {
	if err := domain.CheckWriteAccess("", actor); err != nil {
		return nil, err
	}

	tag := &domain.Tag{}
	if err := copier.Copy(tag, req); err != nil {
		return nil, domain.NewInternalError("failed to map tag request", err)
	}
	if err := s.tags.InsertTag(ctx, tag); err != nil {
		return nil, err
	}
	return toTagResponse(tag)
}

func (s *tagService) UpdateTag(ctx context.Context, actor domain.Actor, id int64, req *dto.TagRequest) (*dto.TagResponse, error) {
	if err := domain.CheckWriteAccess("", actor); err != nil {
		return nil, err
	}

	tag, err := s.tags.GetTagByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := copier.Copy(tag, req); err != nil {
		return nil, domain.NewInternalError("failed to map tag request", err)
	}
	if err := s.tags.UpdateTag(ctx, tag); err != nil {
		return nil, err
	}
	return toTagResponse(tag)
}

func toTagResponse(tag *domain.Tag) (*dto.TagResponse, error) {
	resp := &dto.TagResponse{}
	if err := copier.Copy(resp, tag); err != nil {
		return nil, domain.NewInternalError("failed to map tag", err)
	}
	return resp, nil
}
