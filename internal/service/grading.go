package service

import (
	"context"
	"fmt"
	"time"

	"quiz-course/internal/domain"
	"quiz-course/internal/dto"
	"quiz-course/internal/logger"

	"go.uber.org/zap"
)

// GradingEngine grades answers against the frozen options of a served question.
// It never opens a transaction of its own; callers run it inside their unit of work.
type GradingEngine struct {
	instances domain.CourseInstanceRepository
	now       func() time.Time
}

func NewGradingEngine(instances domain.CourseInstanceRepository) *GradingEngine {
	return &GradingEngine{instances: instances, now: time.Now}
}

// Grade records answers for iq. A question that is already answered keeps its first result.
func (g *GradingEngine) Grade(ctx context.Context, iq *domain.CourseInstanceQuestion, answers []bool) (*dto.GradingResult, error) {
	options, err := g.instances.GetSnapshotOptions(ctx, iq.ID)
	if err != nil {
		return nil, err
	}

	if iq.IsAnswered() {
		result := &dto.GradingResult{
			InstanceQuestionID: iq.ID,
			OptionCorrect:      make([]bool, len(options)),
			Correct:            iq.AnsweredCorrectly,
			AlreadyAnswered:    true,
		}
		for i, o := range options {
			result.OptionCorrect[i] = o.Correct
		}
		return result, nil
	}

	if len(answers) != len(options) {
		return nil, domain.NewValidationError(
			fmt.Sprintf("expected %d answers, got %d", len(options), len(answers))).
			WithContext("instance_question_id", iq.ID)
	}

	result := &dto.GradingResult{
		InstanceQuestionID: iq.ID,
		OptionCorrect:      make([]bool, len(options)),
		Correct:            true,
	}
	for i, o := range options {
		o.Checked = answers[i]
		o.Correct = answers[i] == o.IsTrue
		if err := g.instances.UpdateSnapshotOption(ctx, &o.CourseInstanceQuestionOption); err != nil {
			return nil, err
		}
		result.OptionCorrect[i] = o.Correct
		result.Correct = result.Correct && o.Correct
	}

	answeredAt := g.now().UTC()
	if err := g.instances.MarkInstanceQuestionAnswered(ctx, iq.ID, answeredAt, result.Correct); err != nil {
		return nil, err
	}
	iq.AnsweredAt = &answeredAt
	iq.AnsweredCorrectly = result.Correct

	logger.Get().Debug("Graded instance question",
		zap.Int64("instance_question_id", iq.ID),
		zap.Bool("correct", result.Correct))
	return result, nil
}
