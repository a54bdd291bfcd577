package service

import (
	"context"
	"time"

	"quiz-course/internal/domain"
	"quiz-course/internal/dto"
	"quiz-course/internal/logger"

	"go.uber.org/zap"
)

// ProgressionService drives course instances: question selection, answers and results.
type ProgressionService interface {
	StartCourse(ctx context.Context, actor domain.Actor, courseID int64) (*dto.ProgressionState, error)
	Advance(ctx context.Context, actor domain.Actor, instanceID int64) (*dto.ProgressionState, error)
	SubmitAnswer(ctx context.Context, actor domain.Actor, instanceQuestionID int64, answers []bool) (*dto.SubmitAnswerResponse, error)
	GetServedQuestion(ctx context.Context, actor domain.Actor, instanceQuestionID int64) (*dto.ServedQuestionView, error)
	AnswerAndGetSolution(ctx context.Context, actor domain.Actor, instanceQuestionID int64, answers []bool) (*dto.SolutionResponse, error)
	GetCourseResult(ctx context.Context, actor domain.Actor, instanceID int64) (*dto.CourseResultResponse, error)
	ListMyInstances(ctx context.Context, actor domain.Actor) ([]dto.InstanceSummaryResponse, error)
	DeleteInstance(ctx context.Context, actor domain.Actor, instanceID int64) error
}

type progressionService struct {
	tm        domain.TransactionManager
	courses   domain.CourseRepository
	questions domain.QuestionRepository
	instances domain.CourseInstanceRepository
	grading   *GradingEngine
	rand      RandSource
	now       func() time.Time
}

func NewProgressionService(
	tm domain.TransactionManager,
	courses domain.CourseRepository,
	questions domain.QuestionRepository,
	instances domain.CourseInstanceRepository,
	grading *GradingEngine,
	rand RandSource,
) ProgressionService {
	return &progressionService{
		tm:        tm,
		courses:   courses,
		questions: questions,
		instances: instances,
		grading:   grading,
		rand:      rand,
		now:       time.Now,
	}
}

func (s *progressionService) StartCourse(ctx context.Context, actor domain.Actor, courseID int64) (*dto.ProgressionState, error) {
	if actor.UserID == "" {
		return nil, domain.NewUnauthorizedError("a signed-in user is required to start a course", nil)
	}

	var state *dto.ProgressionState
	err := s.tm.WithTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.courses.GetCourseByID(ctx, courseID); err != nil {
			return err
		}

		instance := &domain.CourseInstance{
			CourseID:  courseID,
			UserID:    actor.UserID,
			StartedAt: s.now().UTC(),
		}
		if err := s.instances.CreateInstance(ctx, instance); err != nil {
			return err
		}

		var err error
		state, err = s.advance(ctx, instance)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Get().Info("Course started",
		zap.Int64("course_id", courseID),
		zap.Int64("instance_id", state.InstanceID),
		zap.String("user_id", actor.UserID))
	return state, nil
}

func (s *progressionService) Advance(ctx context.Context, actor domain.Actor, instanceID int64) (*dto.ProgressionState, error) {
	var state *dto.ProgressionState
	err := s.tm.WithTransaction(ctx, func(ctx context.Context) error {
		instance, err := s.ownedInstance(ctx, actor, instanceID)
		if err != nil {
			return err
		}
		state, err = s.advance(ctx, instance)
		return err
	})
	if err != nil {
		return nil, err
	}
	return state, nil
}

// advance serves the next question of instance, or completes it when nothing is left to ask.
func (s *progressionService) advance(ctx context.Context, instance *domain.CourseInstance) (*dto.ProgressionState, error) {
	asked, err := s.instances.CountInstanceQuestions(ctx, instance.ID)
	if err != nil {
		return nil, err
	}
	state := &dto.ProgressionState{
		InstanceID: instance.ID,
		CourseID:   instance.CourseID,
		Asked:      asked,
	}

	if instance.IsCompleted() {
		state.Total = asked
		state.Done = true
		return state, nil
	}

	course, err := s.courses.GetCourseByID(ctx, instance.CourseID)
	if err != nil {
		return nil, err
	}
	target := course.QuestionsToAsk

	var eligible []int64
	if asked < target {
		eligible, err = s.instances.FindEligibleQuestionIDs(ctx, instance.ID, instance.CourseID)
		if err != nil {
			return nil, err
		}
	}

	if len(eligible) == 0 {
		endedAt := s.now().UTC()
		if err := s.instances.EndInstance(ctx, instance.ID, endedAt); err != nil {
			return nil, err
		}
		instance.EndedAt = &endedAt
		state.Total = asked
		state.Done = true
		logger.Get().Info("Course instance completed",
			zap.Int64("instance_id", instance.ID),
			zap.Int("asked", asked))
		return state, nil
	}

	n := len(eligible)
	questionID := eligible[s.rand().IntN(n)]

	seq, err := s.instances.NextSequenceNumber(ctx, instance.ID)
	if err != nil {
		return nil, err
	}
	iq := &domain.CourseInstanceQuestion{
		CourseInstanceID: instance.ID,
		QuestionID:       questionID,
		Number:           seq,
	}
	if err := s.instances.CreateInstanceQuestion(ctx, iq); err != nil {
		return nil, err
	}

	options, err := s.questions.GetOptions(ctx, questionID)
	if err != nil {
		return nil, err
	}
	for _, o := range options {
		snapshot := &domain.CourseInstanceQuestionOption{
			CourseInstanceQuestionID: iq.ID,
			QuestionOptionID:         o.ID,
		}
		if err := s.instances.CreateSnapshotOption(ctx, snapshot); err != nil {
			return nil, err
		}
	}

	state.InstanceQuestionID = iq.ID
	state.Asked = asked + 1
	state.Total = reportedTotal(asked, target, n)
	return state, nil
}

// reportedTotal never promises more questions than the eligible pool can still supply.
func reportedTotal(asked, target, eligible int) int {
	if eligible <= target-asked {
		return asked + eligible
	}
	return target
}

func (s *progressionService) SubmitAnswer(ctx context.Context, actor domain.Actor, instanceQuestionID int64, answers []bool) (*dto.SubmitAnswerResponse, error) {
	resp := &dto.SubmitAnswerResponse{}
	err := s.tm.WithTransaction(ctx, func(ctx context.Context) error {
		iq, instance, err := s.ownedInstanceQuestion(ctx, actor, instanceQuestionID)
		if err != nil {
			return err
		}

		resp.Result, err = s.grading.Grade(ctx, iq, answers)
		if err != nil {
			return err
		}

		resp.Next, err = s.advance(ctx, instance)
		if err != nil {
			return err
		}
		correct := resp.Result.Correct
		resp.Next.AnsweredCorrectly = &correct
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *progressionService) GetServedQuestion(ctx context.Context, actor domain.Actor, instanceQuestionID int64) (*dto.ServedQuestionView, error) {
	var view *dto.ServedQuestionView
	err := s.tm.WithTransaction(ctx, func(ctx context.Context) error {
		iq, instance, err := s.ownedInstanceQuestion(ctx, actor, instanceQuestionID)
		if err != nil {
			return err
		}

		question, err := s.questions.GetQuestionByID(ctx, iq.QuestionID)
		if err != nil {
			return err
		}
		options, err := s.instances.GetSnapshotOptions(ctx, iq.ID)
		if err != nil {
			return err
		}
		images, err := s.questions.GetImagesByQuestionID(ctx, iq.QuestionID)
		if err != nil {
			return err
		}
		asked, err := s.instances.CountInstanceQuestions(ctx, instance.ID)
		if err != nil {
			return err
		}

		view = &dto.ServedQuestionView{
			InstanceQuestionID: iq.ID,
			InstanceID:         instance.ID,
			Title:              question.Title,
			Text:               question.Text,
			Number:             iq.Number,
			Total:              asked,
			InstanceCompleted:  instance.IsCompleted(),
			Answered:           iq.IsAnswered(),
			Options:            make([]dto.ServedOptionView, 0, len(options)),
			Images:             toImageResponses(images),
		}
		for _, o := range options {
			view.Options = append(view.Options, dto.ServedOptionView{ID: o.ID, Text: o.Text, Checked: o.Checked})
		}

		if instance.IsCompleted() {
			view.QuestionID = iq.QuestionID
			return nil
		}

		course, err := s.courses.GetCourseByID(ctx, instance.CourseID)
		if err != nil {
			return err
		}
		eligible, err := s.instances.FindEligibleQuestionIDs(ctx, instance.ID, instance.CourseID)
		if err != nil {
			return err
		}
		view.Total = reportedTotal(asked, course.QuestionsToAsk, len(eligible))
		if view.Total < asked {
			view.Total = asked
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *progressionService) AnswerAndGetSolution(ctx context.Context, actor domain.Actor, instanceQuestionID int64, answers []bool) (*dto.SolutionResponse, error) {
	resp := &dto.SolutionResponse{}
	err := s.tm.WithTransaction(ctx, func(ctx context.Context) error {
		iq, _, err := s.ownedInstanceQuestion(ctx, actor, instanceQuestionID)
		if err != nil {
			return err
		}

		resp.Result, err = s.grading.Grade(ctx, iq, answers)
		if err != nil {
			return err
		}

		question, err := loadQuestion(ctx, s.questions, iq.QuestionID)
		if err != nil {
			return err
		}
		resp.Question, err = toQuestionResponse(question, actor)
		return err
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *progressionService) GetCourseResult(ctx context.Context, actor domain.Actor, instanceID int64) (*dto.CourseResultResponse, error) {
	var result *dto.CourseResultResponse
	err := s.tm.WithTransaction(ctx, func(ctx context.Context) error {
		instance, err := s.ownedInstance(ctx, actor, instanceID)
		if err != nil {
			return err
		}
		course, err := s.courses.GetCourseByID(ctx, instance.CourseID)
		if err != nil {
			return err
		}
		served, err := s.instances.ListServedQuestions(ctx, instance.ID)
		if err != nil {
			return err
		}

		result = &dto.CourseResultResponse{
			InstanceID:   instance.ID,
			CourseID:     course.ID,
			CourseTitle:  course.Title,
			StartedAt:    instance.StartedAt,
			EndedAt:      instance.EndedAt,
			Completed:    instance.IsCompleted(),
			NumQuestions: len(served),
			Questions:    make([]dto.QuestionResultView, 0, len(served)),
		}
		for _, sq := range served {
			tags, err := s.questions.GetTagsByQuestionID(ctx, sq.QuestionID)
			if err != nil {
				return err
			}
			tagViews, err := toTagResponses(tags)
			if err != nil {
				return err
			}
			if sq.Correct {
				result.NumCorrect++
			}
			result.Questions = append(result.Questions, dto.QuestionResultView{
				InstanceQuestionID: sq.InstanceQuestionID,
				QuestionID:         sq.QuestionID,
				Title:              sq.Title,
				Number:             sq.Number,
				Answered:           sq.Answered,
				Correct:            sq.Correct,
				Tags:               tagViews,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *progressionService) ListMyInstances(ctx context.Context, actor domain.Actor) ([]dto.InstanceSummaryResponse, error) {
	if actor.UserID == "" {
		return nil, domain.NewUnauthorizedError("a signed-in user is required", nil)
	}

	summaries, err := s.instances.ListInstancesByUser(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.InstanceSummaryResponse, 0, len(summaries))
	for _, sm := range summaries {
		out = append(out, dto.InstanceSummaryResponse{
			InstanceID:   sm.InstanceID,
			CourseID:     sm.CourseID,
			CourseTitle:  sm.CourseTitle,
			StartedAt:    sm.StartedAt,
			EndedAt:      sm.EndedAt,
			NumQuestions: sm.NumQuestions,
			NumCorrect:   sm.NumCorrect,
		})
	}
	return out, nil
}

// DeleteInstance removes the instance with its served questions and their option snapshots.
func (s *progressionService) DeleteInstance(ctx context.Context, actor domain.Actor, instanceID int64) error {
	err := s.tm.WithTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.ownedInstance(ctx, actor, instanceID); err != nil {
			return err
		}
		if err := s.instances.DeleteSnapshotOptionsByInstance(ctx, instanceID); err != nil {
			return err
		}
		if err := s.instances.DeleteInstanceQuestionsByInstance(ctx, instanceID); err != nil {
			return err
		}
		return s.instances.DeleteInstance(ctx, instanceID)
	})
	if err != nil {
		return err
	}

	logger.Get().Info("Course instance deleted",
		zap.Int64("instance_id", instanceID),
		zap.String("user_id", actor.UserID))
	return nil
}

func (s *progressionService) ownedInstance(ctx context.Context, actor domain.Actor, instanceID int64) (*domain.CourseInstance, error) {
	instance, err := s.instances.GetInstanceByID(ctx, instanceID)
	if err != nil {
		return nil, err
	}
	if err := domain.CheckWriteAccess(instance.UserID, actor); err != nil {
		return nil, err
	}
	return instance, nil
}

func (s *progressionService) ownedInstanceQuestion(ctx context.Context, actor domain.Actor, id int64) (*domain.CourseInstanceQuestion, *domain.CourseInstance, error) {
	iq, err := s.instances.GetInstanceQuestionByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	instance, err := s.ownedInstance(ctx, actor, iq.CourseInstanceID)
	if err != nil {
		return nil, nil, err
	}
	return iq, instance, nil
}
