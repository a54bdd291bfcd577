package service

import (
	"quiz-course/internal/domain"
	"quiz-course/internal/dto"
	"quiz-course/internal/reconcile"
)

// NewRelationRegistry installs the field-copy rule of every child collection the services reconcile.
func NewRelationRegistry() *reconcile.Registry {
	reg := reconcile.NewRegistry()

	reconcile.Register(reg, func(src *dto.OptionInput, dst *domain.QuestionOption) {
		dst.Text = src.Text
		dst.IsTrue = src.IsTrue
	})
	reconcile.Register(reg, func(src *dto.ImageInput, dst *domain.Image) {
		dst.Width = src.Width
		dst.Height = src.Height
		dst.Full = src.Full
	})
	reconcile.Register(reg, func(src reconcile.Link, dst *domain.QuestionTag) {
		dst.TagID = src.ChildID
	})
	reconcile.Register(reg, func(src reconcile.Link, dst *domain.QuestionImage) {
		dst.ImageID = src.ChildID
	})
	reconcile.Register(reg, func(src reconcile.Link, dst *domain.CourseTag) {
		dst.TagID = src.ChildID
	})

	return reg
}
