package main

import (
	"context"
	"fmt"

	"quiz-course/cmd/seed_initial_data/internal/seedmodels"
	"quiz-course/internal/domain"
	"quiz-course/internal/dto"
	"quiz-course/internal/logger"
	"quiz-course/internal/service"

	"go.uber.org/zap"
)

type seeder struct {
	tags      service.TagService
	questions service.QuestionService
	courses   service.CourseService
	actor     domain.Actor
}

// Seed stores tags first, then questions and courses that reference them by name.
// Tags that already exist by exact name are reused.
func (s *seeder) Seed(ctx context.Context, seed *seedmodels.SeedFile) error {
	tagIDs, err := s.seedTags(ctx, seed.Tags)
	if err != nil {
		return err
	}

	for _, sq := range seed.Questions {
		ids, err := resolveTags(tagIDs, sq.Tags)
		if err != nil {
			return fmt.Errorf("question %q: %w", sq.Title, err)
		}
		req := &dto.QuestionRequest{
			Title:       sq.Title,
			Text:        sq.Text,
			Explanation: sq.Explanation,
			Status:      int(domain.QuestionStatusReleased),
			TagIDs:      ids,
		}
		if sq.Draft {
			req.Status = int(domain.QuestionStatusDraft)
		}
		for _, o := range sq.Options {
			req.Options = append(req.Options, dto.OptionInput{Text: o.Text, IsTrue: o.IsTrue})
		}
		q, err := s.questions.CreateQuestion(ctx, s.actor, req)
		if err != nil {
			return fmt.Errorf("question %q: %w", sq.Title, err)
		}
		logger.Get().Debug("Seeded question", zap.Int64("question_id", q.ID))
	}

	for _, sc := range seed.Courses {
		ids, err := resolveTags(tagIDs, sc.Tags)
		if err != nil {
			return fmt.Errorf("course %q: %w", sc.Title, err)
		}
		if _, err := s.courses.CreateCourse(ctx, s.actor, &dto.CourseRequest{
			Title:          sc.Title,
			Description:    sc.Description,
			QuestionsToAsk: sc.QuestionsToAsk,
			TagIDs:         ids,
		}); err != nil {
			return fmt.Errorf("course %q: %w", sc.Title, err)
		}
	}
	return nil
}

func (s *seeder) seedTags(ctx context.Context, seedTags []seedmodels.SeedTag) (map[string]int64, error) {
	existing, err := s.tags.FindTags(ctx, "")
	if err != nil {
		return nil, err
	}
	ids := make(map[string]int64, len(existing)+len(seedTags))
	for _, t := range existing {
		ids[t.Name] = t.ID
	}

	for _, st := range seedTags {
		if _, ok := ids[st.Name]; ok {
			continue
		}
		tag, err := s.tags.CreateTag(ctx, s.actor, &dto.TagRequest{Name: st.Name, Description: st.Description, Type: st.Type})
		if err != nil {
			return nil, fmt.Errorf("tag %q: %w", st.Name, err)
		}
		ids[tag.Name] = tag.ID
	}
	return ids, nil
}

func resolveTags(ids map[string]int64, names []string) ([]int64, error) {
	out := make([]int64, 0, len(names))
	for _, name := range names {
		id, ok := ids[name]
		if !ok {
			return nil, fmt.Errorf("unknown tag %q", name)
		}
		out = append(out, id)
	}
	return out, nil
}
