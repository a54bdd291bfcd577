package service

import (
	"context"
	"time"

	"quiz-course/internal/domain"
	"quiz-course/internal/dto"
	"quiz-course/internal/logger"
	"quiz-course/internal/reconcile"

	"go.uber.org/zap"
)

// QuestionService maintains authored questions and their options, tag links and image links.
type QuestionService interface {
	GetQuestion(ctx context.Context, actor domain.Actor, id int64) (*dto.QuestionResponse, error)
	CreateQuestion(ctx context.Context, actor domain.Actor, req *dto.QuestionRequest) (*dto.QuestionResponse, error)
	UpdateQuestion(ctx context.Context, actor domain.Actor, id int64, req *dto.QuestionRequest) (*dto.QuestionResponse, error)
	DeleteQuestion(ctx context.Context, actor domain.Actor, id int64) error
	ListMyQuestions(ctx context.Context, actor domain.Actor) ([]dto.QuestionSummary, error)
	Vote(ctx context.Context, actor domain.Actor, questionID int64, rating int) (*dto.VoteResponse, error)
	GetVotes(ctx context.Context, actor domain.Actor, questionID int64) (*dto.VoteResponse, error)
}

type questionService struct {
	tm        domain.TransactionManager
	questions domain.QuestionRepository
	tags      domain.TagRepository
	instances domain.CourseInstanceRepository
	registry  *reconcile.Registry
	now       func() time.Time
}

func NewQuestionService(
	tm domain.TransactionManager,
	questions domain.QuestionRepository,
	tags domain.TagRepository,
	instances domain.CourseInstanceRepository,
	registry *reconcile.Registry,
) QuestionService {
	return &questionService{
		tm:        tm,
		questions: questions,
		tags:      tags,
		instances: instances,
		registry:  registry,
		now:       time.Now,
	}
}

func (s *questionService) GetQuestion(ctx context.Context, actor domain.Actor, id int64) (*dto.QuestionResponse, error) {
	var question *domain.Question
	err := s.tm.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		question, err = loadQuestion(ctx, s.questions, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toQuestionResponse(question, actor)
}

func (s *questionService) CreateQuestion(ctx context.Context, actor domain.Actor, req *dto.QuestionRequest) (*dto.QuestionResponse, error) {
	if actor.UserID == "" {
		return nil, domain.NewUnauthorizedError("a signed-in user is required to author questions", nil)
	}

	var question *domain.Question
	err := s.tm.WithTransaction(ctx, func(ctx context.Context) error {
		now := s.now().UTC()
		q := &domain.Question{
			Title:       req.Title,
			Text:        req.Text,
			Explanation: req.Explanation,
			Status:      domain.QuestionStatus(req.Status),
			OwnerUserID: actor.UserID,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := s.questions.InsertQuestion(ctx, q); err != nil {
			return err
		}
		if err := s.syncChildren(ctx, q.ID, req); err != nil {
			return err
		}

		var err error
		question, err = loadQuestion(ctx, s.questions, q.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Get().Info("Question created", zap.Int64("question_id", question.ID), zap.String("owner", actor.UserID))
	return toQuestionResponse(question, actor)
}

func (s *questionService) UpdateQuestion(ctx context.Context, actor domain.Actor, id int64, req *dto.QuestionRequest) (*dto.QuestionResponse, error) {
	var question *domain.Question
	err := s.tm.WithTransaction(ctx, func(ctx context.Context) error {
		q, err := s.questions.GetQuestionByID(ctx, id)
		if err != nil {
			return err
		}
		if err := domain.CheckWriteAccess(q.OwnerUserID, actor); err != nil {
			return err
		}

		q.Title = req.Title
		q.Text = req.Text
		q.Explanation = req.Explanation
		q.Status = domain.QuestionStatus(req.Status)
		q.UpdatedAt = s.now().UTC()
		if err := s.questions.UpdateQuestion(ctx, q); err != nil {
			return err
		}
		if err := s.syncChildren(ctx, q.ID, req); err != nil {
			return err
		}

		question, err = loadQuestion(ctx, s.questions, q.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toQuestionResponse(question, actor)
}

// syncChildren reconciles options, tag links and image links of questionID with req.
func (s *questionService) syncChildren(ctx context.Context, questionID int64, req *dto.QuestionRequest) error {
	if err := s.syncOptions(ctx, questionID, req.Options); err != nil {
		return err
	}
	if err := s.syncTags(ctx, questionID, req.TagIDs); err != nil {
		return err
	}
	return s.syncImages(ctx, questionID, req.Images)
}

func (s *questionService) syncOptions(ctx context.Context, questionID int64, inputs []dto.OptionInput) error {
	persisted, err := s.questions.GetOptions(ctx, questionID)
	if err != nil {
		return err
	}

	desired := make([]*dto.OptionInput, len(inputs))
	for i := range inputs {
		desired[i] = &inputs[i]
	}

	plan, err := reconcile.Reconcile(s.registry, reconcile.Relation[*dto.OptionInput, *domain.QuestionOption]{
		New: func() *domain.QuestionOption { return &domain.QuestionOption{QuestionID: questionID} },
	}, desired, persisted)
	if err != nil {
		return err
	}

	return reconcile.Apply(ctx, plan, reconcile.WriterFuncs[*domain.QuestionOption]{
		DeleteFn: func(ctx context.Context, o *domain.QuestionOption) error { return s.questions.DeleteOption(ctx, o.ID) },
		UpdateFn: s.questions.UpdateOption,
		InsertFn: s.questions.InsertOption,
	})
}

func (s *questionService) syncTags(ctx context.Context, questionID int64, tagIDs []int64) error {
	if err := requireTags(ctx, s.tags, tagIDs); err != nil {
		return err
	}

	persisted, err := s.questions.GetQuestionTagLinks(ctx, questionID)
	if err != nil {
		return err
	}
	desired := reconcile.DesiredLinks(tagIDs, persisted, func(l *domain.QuestionTag) int64 { return l.TagID })

	plan, err := reconcile.Reconcile(s.registry, reconcile.Relation[reconcile.Link, *domain.QuestionTag]{
		NaturalKey: reconcile.LinkKey,
		New:        func() *domain.QuestionTag { return &domain.QuestionTag{QuestionID: questionID} },
	}, desired, persisted)
	if err != nil {
		return err
	}

	return reconcile.Apply(ctx, plan, reconcile.WriterFuncs[*domain.QuestionTag]{
		DeleteFn: func(ctx context.Context, l *domain.QuestionTag) error { return s.questions.DeleteQuestionTagLink(ctx, l.ID) },
		UpdateFn: s.questions.UpdateQuestionTagLink,
		InsertFn: s.questions.InsertQuestionTagLink,
	})
}

func (s *questionService) syncImages(ctx context.Context, questionID int64, inputs []dto.ImageInput) error {
	desiredInputs := make([]*dto.ImageInput, len(inputs))
	for i := range inputs {
		desiredInputs[i] = &inputs[i]
	}
	desiredInputs = reconcile.Dedup(desiredInputs, func(in *dto.ImageInput) int64 { return in.ID })

	imageIDs := make([]int64, len(desiredInputs))
	for i, in := range desiredInputs {
		imageIDs[i] = in.ID
	}

	images, err := s.questions.GetImagesByIDs(ctx, imageIDs)
	if err != nil {
		return err
	}
	byID := make(map[int64]*domain.Image, len(images))
	for _, img := range images {
		byID[img.ID] = img
	}
	for _, in := range desiredInputs {
		img, ok := byID[in.ID]
		if !ok {
			return domain.NewNotFoundError("image", in.ID)
		}
		if err := reconcile.Copy(s.registry, in, img); err != nil {
			return err
		}
		if err := s.questions.UpdateImage(ctx, img); err != nil {
			return err
		}
	}

	persisted, err := s.questions.GetQuestionImageLinks(ctx, questionID)
	if err != nil {
		return err
	}
	desired := reconcile.DesiredLinks(imageIDs, persisted, func(l *domain.QuestionImage) int64 { return l.ImageID })

	plan, err := reconcile.Reconcile(s.registry, reconcile.Relation[reconcile.Link, *domain.QuestionImage]{
		NaturalKey: reconcile.LinkKey,
		New:        func() *domain.QuestionImage { return &domain.QuestionImage{QuestionID: questionID} },
	}, desired, persisted)
	if err != nil {
		return err
	}

	return reconcile.Apply(ctx, plan, reconcile.WriterFuncs[*domain.QuestionImage]{
		DeleteFn: func(ctx context.Context, l *domain.QuestionImage) error { return s.questions.DeleteQuestionImageLink(ctx, l.ID) },
		UpdateFn: s.questions.UpdateQuestionImageLink,
		InsertFn: s.questions.InsertQuestionImageLink,
	})
}

// DeleteQuestion removes the question and everything that hangs off it, leaves first.
func (s *questionService) DeleteQuestion(ctx context.Context, actor domain.Actor, id int64) error {
	err := s.tm.WithTransaction(ctx, func(ctx context.Context) error {
		q, err := s.questions.GetQuestionByID(ctx, id)
		if err != nil {
			return err
		}
		if err := domain.CheckWriteAccess(q.OwnerUserID, actor); err != nil {
			return err
		}

		steps := []func(context.Context, int64) error{
			s.instances.DeleteSnapshotOptionsByQuestion,
			s.questions.DeleteRatingsByQuestionID,
			s.questions.DeleteOptionsByQuestionID,
			s.questions.DeleteQuestionTagLinksByQuestionID,
			s.questions.DeleteQuestionImageLinksByQuestionID,
			s.instances.DeleteInstanceQuestionsByQuestion,
			s.questions.DeleteQuestion,
		}
		for _, step := range steps {
			if err := step(ctx, id); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Get().Info("Question deleted", zap.Int64("question_id", id), zap.String("user_id", actor.UserID))
	return nil
}

func (s *questionService) ListMyQuestions(ctx context.Context, actor domain.Actor) ([]dto.QuestionSummary, error) {
	if actor.UserID == "" {
		return nil, domain.NewUnauthorizedError("a signed-in user is required", nil)
	}

	var out []dto.QuestionSummary
	err := s.tm.WithTransaction(ctx, func(ctx context.Context) error {
		questions, err := s.questions.ListQuestionsByOwner(ctx, actor.UserID)
		if err != nil {
			return err
		}
		out = make([]dto.QuestionSummary, 0, len(questions))
		for _, q := range questions {
			tags, err := s.questions.GetTagsByQuestionID(ctx, q.ID)
			if err != nil {
				return err
			}
			tagViews, err := toTagResponses(tags)
			if err != nil {
				return err
			}
			out = append(out, dto.QuestionSummary{
				ID:        q.ID,
				Title:     q.Title,
				Status:    q.Status.String(),
				Tags:      tagViews,
				UpdatedAt: q.UpdatedAt,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Vote records the caller's rating of a question, replacing any earlier vote.
func (s *questionService) Vote(ctx context.Context, actor domain.Actor, questionID int64, rating int) (*dto.VoteResponse, error) {
	if actor.UserID == "" {
		return nil, domain.NewUnauthorizedError("a signed-in user is required to vote", nil)
	}

	var resp *dto.VoteResponse
	err := s.tm.WithTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.questions.GetQuestionByID(ctx, questionID); err != nil {
			return err
		}

		value := domain.ClampRating(rating)
		existing, err := s.questions.GetRating(ctx, questionID, actor.UserID)
		switch {
		case domain.IsCode(err, domain.CodeNotFound):
			err = s.questions.InsertRating(ctx, &domain.Rating{QuestionID: questionID, UserID: actor.UserID, Value: value})
		case err == nil:
			existing.Value = value
			err = s.questions.UpdateRating(ctx, existing)
		}
		if err != nil {
			return err
		}

		resp, err = s.votes(ctx, actor, questionID)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Get().Debug("Question rated",
		zap.Int64("question_id", questionID),
		zap.String("user_id", actor.UserID),
		zap.Int("rating", resp.MyVote))
	return resp, nil
}

func (s *questionService) GetVotes(ctx context.Context, actor domain.Actor, questionID int64) (*dto.VoteResponse, error) {
	if actor.UserID == "" {
		return nil, domain.NewUnauthorizedError("a signed-in user is required", nil)
	}

	var resp *dto.VoteResponse
	err := s.tm.WithTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.questions.GetQuestionByID(ctx, questionID); err != nil {
			return err
		}
		var err error
		resp, err = s.votes(ctx, actor, questionID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *questionService) votes(ctx context.Context, actor domain.Actor, questionID int64) (*dto.VoteResponse, error) {
	counts, err := s.questions.CountRatings(ctx, questionID)
	if err != nil {
		return nil, err
	}
	resp := &dto.VoteResponse{QuestionID: questionID, Up: counts.Up, Down: counts.Down}

	mine, err := s.questions.GetRating(ctx, questionID, actor.UserID)
	switch {
	case err == nil:
		resp.MyVote = mine.Value
	case !domain.IsCode(err, domain.CodeNotFound):
		return nil, err
	}
	return resp, nil
}

// loadQuestion reads a question together with its options, tags and images.
func loadQuestion(ctx context.Context, questions domain.QuestionRepository, id int64) (*domain.Question, error) {
	q, err := questions.GetQuestionByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if q.Options, err = questions.GetOptions(ctx, id); err != nil {
		return nil, err
	}
	if q.Tags, err = questions.GetTagsByQuestionID(ctx, id); err != nil {
		return nil, err
	}
	if q.Images, err = questions.GetImagesByQuestionID(ctx, id); err != nil {
		return nil, err
	}
	return q, nil
}

// requireTags fails with NOT_FOUND unless every referenced tag exists.
func requireTags(ctx context.Context, tags domain.TagRepository, ids []int64) error {
	unique := reconcile.Dedup(ids, func(id int64) int64 { return id })
	if len(unique) == 0 {
		return nil
	}
	count, err := tags.CountTagsByIDs(ctx, unique)
	if err != nil {
		return err
	}
	if count != len(unique) {
		return domain.NewError(domain.CodeNotFound, "one or more tags do not exist", nil).
			WithContext("tag_ids", unique)
	}
	return nil
}
