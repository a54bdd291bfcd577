package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"quiz-course/internal/domain"
	"quiz-course/internal/repository/models"
	"quiz-course/internal/util"

	"github.com/jmoiron/sqlx"
)

type CourseInstanceDatabaseAdapter struct {
	db *sqlx.DB
}

func NewCourseInstanceDatabaseAdapter(db *sqlx.DB) domain.CourseInstanceRepository {
	return &CourseInstanceDatabaseAdapter{db: db}
}

func (r *CourseInstanceDatabaseAdapter) CreateInstance(ctx context.Context, instance *domain.CourseInstance) error {
	id, err := insertReturningID(ctx, GetExecutor(ctx, r.db),
		"INSERT INTO course_instances (course_id, user_id, started_at) VALUES (?, ?, ?)",
		instance.CourseID, instance.UserID, instance.StartedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create course instance: %w", err)
	}
	instance.ID = id
	return nil
}

func (r *CourseInstanceDatabaseAdapter) GetInstanceByID(ctx context.Context, id int64) (*domain.CourseInstance, error) {
	exec := GetExecutor(ctx, r.db)

	var m models.CourseInstance
	query := exec.Rebind("SELECT id, course_id, user_id, started_at, ended_at FROM course_instances WHERE id = ?")
	if err := exec.GetContext(ctx, &m, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("course instance", id)
		}
		return nil, fmt.Errorf("failed to get course instance %d: %w", id, err)
	}
	return &domain.CourseInstance{
		ID:        m.ID,
		CourseID:  m.CourseID,
		UserID:    m.UserID,
		StartedAt: m.StartedAt,
		EndedAt:   util.NullTimeToPtr(m.EndedAt),
	}, nil
}

func (r *CourseInstanceDatabaseAdapter) EndInstance(ctx context.Context, id int64, endedAt time.Time) error {
	_, err := execAffecting(ctx, GetExecutor(ctx, r.db),
		"UPDATE course_instances SET ended_at = ? WHERE id = ? AND ended_at IS NULL", endedAt, id)
	if err != nil {
		return fmt.Errorf("failed to end course instance %d: %w", id, err)
	}
	return nil
}

// ListInstancesByUser returns the user's instances, newest first.
func (r *CourseInstanceDatabaseAdapter) ListInstancesByUser(ctx context.Context, userID string) ([]*domain.InstanceSummary, error) {
	exec := GetExecutor(ctx, r.db)

	var rows []models.InstanceSummary
	query := exec.Rebind(`SELECT ci.id, ci.course_id, c.title, ci.started_at, ci.ended_at,
			(SELECT COUNT(*) FROM course_instance_questions ciq
				WHERE ciq.course_instance_id = ci.id) AS num_questions,
			(SELECT COUNT(*) FROM course_instance_questions ciq
				WHERE ciq.course_instance_id = ci.id AND ciq.answered_correctly = 1) AS num_correct
		FROM course_instances ci JOIN courses c ON c.id = ci.course_id
		WHERE ci.user_id = ?
		ORDER BY ci.started_at DESC, ci.id DESC`)
	if err := exec.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list course instances: %w", err)
	}

	summaries := make([]*domain.InstanceSummary, len(rows))
	for i, row := range rows {
		summaries[i] = &domain.InstanceSummary{
			InstanceID:   row.ID,
			CourseID:     row.CourseID,
			CourseTitle:  row.Title,
			StartedAt:    row.StartedAt,
			EndedAt:      util.NullTimeToPtr(row.EndedAt),
			NumQuestions: row.NumQuestions,
			NumCorrect:   row.NumCorrect,
		}
	}
	return summaries, nil
}

func (r *CourseInstanceDatabaseAdapter) DeleteInstance(ctx context.Context, id int64) error {
	n, err := execAffecting(ctx, GetExecutor(ctx, r.db), "DELETE FROM course_instances WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete course instance %d: %w", id, err)
	}
	if n == 0 {
		return domain.NewNotFoundError("course instance", id)
	}
	return nil
}

func (r *CourseInstanceDatabaseAdapter) CountInstanceQuestions(ctx context.Context, instanceID int64) (int, error) {
	exec := GetExecutor(ctx, r.db)

	var count int
	query := exec.Rebind("SELECT COUNT(*) FROM course_instance_questions WHERE course_instance_id = ?")
	if err := exec.GetContext(ctx, &count, query, instanceID); err != nil {
		return 0, fmt.Errorf("failed to count served questions: %w", err)
	}
	return count, nil
}

// NextSequenceNumber returns one past the highest sequence number of the instance. Deleted
// questions leave gaps, so this can exceed the count of served rows.
func (r *CourseInstanceDatabaseAdapter) NextSequenceNumber(ctx context.Context, instanceID int64) (int, error) {
	exec := GetExecutor(ctx, r.db)

	var next int
	query := exec.Rebind("SELECT COALESCE(MAX(seq_number), 0) + 1 FROM course_instance_questions WHERE course_instance_id = ?")
	if err := exec.GetContext(ctx, &next, query, instanceID); err != nil {
		return 0, fmt.Errorf("failed to get next sequence number: %w", err)
	}
	return next, nil
}

func (r *CourseInstanceDatabaseAdapter) FindEligibleQuestionIDs(ctx context.Context, instanceID, courseID int64) ([]int64, error) {
	exec := GetExecutor(ctx, r.db)

	var ids []int64
	query := exec.Rebind(`SELECT q.id FROM questions q
		WHERE q.status = ?
		AND EXISTS (
			SELECT 1 FROM question_tags qt JOIN course_tags ct ON ct.tag_id = qt.tag_id
			WHERE qt.question_id = q.id AND ct.course_id = ?)
		AND NOT EXISTS (
			SELECT 1 FROM course_instance_questions ciq
			WHERE ciq.course_instance_id = ? AND ciq.question_id = q.id)
		ORDER BY q.id`)
	if err := exec.SelectContext(ctx, &ids, query, int(domain.QuestionStatusReleased), courseID, instanceID); err != nil {
		return nil, fmt.Errorf("failed to find eligible questions: %w", err)
	}
	return ids, nil
}

func (r *CourseInstanceDatabaseAdapter) CreateInstanceQuestion(ctx context.Context, iq *domain.CourseInstanceQuestion) error {
	id, err := insertReturningID(ctx, GetExecutor(ctx, r.db),
		`INSERT INTO course_instance_questions (course_instance_id, question_id, seq_number, answered_correctly)
		VALUES (?, ?, ?, ?)`,
		iq.CourseInstanceID, iq.QuestionID, iq.Number, boolToInt(iq.AnsweredCorrectly),
	)
	if err != nil {
		return fmt.Errorf("failed to create course instance question: %w", err)
	}
	iq.ID = id
	return nil
}

func (r *CourseInstanceDatabaseAdapter) GetInstanceQuestionByID(ctx context.Context, id int64) (*domain.CourseInstanceQuestion, error) {
	exec := GetExecutor(ctx, r.db)

	var m models.CourseInstanceQuestion
	query := exec.Rebind(`SELECT id, course_instance_id, question_id, seq_number, answered_at, answered_correctly
		FROM course_instance_questions WHERE id = ?`)
	if err := exec.GetContext(ctx, &m, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("course instance question", id)
		}
		return nil, fmt.Errorf("failed to get course instance question %d: %w", id, err)
	}
	return &domain.CourseInstanceQuestion{
		ID:                m.ID,
		CourseInstanceID:  m.CourseInstanceID,
		QuestionID:        m.QuestionID,
		Number:            m.SeqNumber,
		AnsweredAt:        util.NullTimeToPtr(m.AnsweredAt),
		AnsweredCorrectly: m.AnsweredCorrectly,
	}, nil
}

func (r *CourseInstanceDatabaseAdapter) MarkInstanceQuestionAnswered(ctx context.Context, id int64, answeredAt time.Time, correct bool) error {
	_, err := execAffecting(ctx, GetExecutor(ctx, r.db),
		"UPDATE course_instance_questions SET answered_at = ?, answered_correctly = ? WHERE id = ? AND answered_at IS NULL",
		answeredAt, boolToInt(correct), id,
	)
	if err != nil {
		return fmt.Errorf("failed to record answer for %d: %w", id, err)
	}
	return nil
}

func (r *CourseInstanceDatabaseAdapter) ListServedQuestions(ctx context.Context, instanceID int64) ([]*domain.ServedQuestionResult, error) {
	exec := GetExecutor(ctx, r.db)

	var rows []models.ServedQuestion
	query := exec.Rebind(`SELECT ciq.id, ciq.question_id, q.title, ciq.seq_number, ciq.answered_at, ciq.answered_correctly
		FROM course_instance_questions ciq JOIN questions q ON q.id = ciq.question_id
		WHERE ciq.course_instance_id = ?
		ORDER BY ciq.seq_number`)
	if err := exec.SelectContext(ctx, &rows, query, instanceID); err != nil {
		return nil, fmt.Errorf("failed to list served questions: %w", err)
	}

	results := make([]*domain.ServedQuestionResult, len(rows))
	for i, row := range rows {
		results[i] = &domain.ServedQuestionResult{
			InstanceQuestionID: row.ID,
			QuestionID:         row.QuestionID,
			Title:              row.Title,
			Number:             row.SeqNumber,
			Answered:           row.AnsweredAt.Valid,
			Correct:            row.AnsweredCorrectly,
			Tags:               []*domain.Tag{},
		}
	}
	return results, nil
}

func (r *CourseInstanceDatabaseAdapter) DeleteInstanceQuestionsByInstance(ctx context.Context, instanceID int64) error {
	if _, err := execAffecting(ctx, GetExecutor(ctx, r.db),
		"DELETE FROM course_instance_questions WHERE course_instance_id = ?", instanceID); err != nil {
		return fmt.Errorf("failed to delete served questions of instance %d: %w", instanceID, err)
	}
	return nil
}

func (r *CourseInstanceDatabaseAdapter) DeleteInstanceQuestionsByQuestion(ctx context.Context, questionID int64) error {
	if _, err := execAffecting(ctx, GetExecutor(ctx, r.db),
		"DELETE FROM course_instance_questions WHERE question_id = ?", questionID); err != nil {
		return fmt.Errorf("failed to delete served instances of question %d: %w", questionID, err)
	}
	return nil
}

func (r *CourseInstanceDatabaseAdapter) CreateSnapshotOption(ctx context.Context, option *domain.CourseInstanceQuestionOption) error {
	id, err := insertReturningID(ctx, GetExecutor(ctx, r.db),
		`INSERT INTO course_instance_question_options (course_instance_question_id, question_option_id, checked, correct)
		VALUES (?, ?, ?, ?)`,
		option.CourseInstanceQuestionID, option.QuestionOptionID, boolToInt(option.Checked), boolToInt(option.Correct),
	)
	if err != nil {
		return fmt.Errorf("failed to create option snapshot: %w", err)
	}
	option.ID = id
	return nil
}

// GetSnapshotOptions returns the snapshots of a served question in id order, joined with their master option.
func (r *CourseInstanceDatabaseAdapter) GetSnapshotOptions(ctx context.Context, instanceQuestionID int64) ([]*domain.SnapshotOption, error) {
	exec := GetExecutor(ctx, r.db)

	var rows []models.SnapshotOption
	query := exec.Rebind(`SELECT o.id, o.course_instance_question_id, o.question_option_id, o.checked, o.correct,
			qo.option_text, qo.is_true
		FROM course_instance_question_options o JOIN question_options qo ON qo.id = o.question_option_id
		WHERE o.course_instance_question_id = ?
		ORDER BY o.id`)
	if err := exec.SelectContext(ctx, &rows, query, instanceQuestionID); err != nil {
		return nil, fmt.Errorf("failed to get option snapshots: %w", err)
	}

	options := make([]*domain.SnapshotOption, len(rows))
	for i, row := range rows {
		options[i] = &domain.SnapshotOption{
			CourseInstanceQuestionOption: domain.CourseInstanceQuestionOption{
				ID:                       row.ID,
				CourseInstanceQuestionID: row.CourseInstanceQuestionID,
				QuestionOptionID:         row.QuestionOptionID,
				Checked:                  row.Checked,
				Correct:                  row.Correct,
			},
			Text:   row.OptionText.String,
			IsTrue: row.IsTrue,
		}
	}
	return options, nil
}

func (r *CourseInstanceDatabaseAdapter) UpdateSnapshotOption(ctx context.Context, option *domain.CourseInstanceQuestionOption) error {
	_, err := execAffecting(ctx, GetExecutor(ctx, r.db),
		"UPDATE course_instance_question_options SET checked = ?, correct = ? WHERE id = ?",
		boolToInt(option.Checked), boolToInt(option.Correct), option.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update option snapshot %d: %w", option.ID, err)
	}
	return nil
}

func (r *CourseInstanceDatabaseAdapter) DeleteSnapshotOptionsByInstance(ctx context.Context, instanceID int64) error {
	if _, err := execAffecting(ctx, GetExecutor(ctx, r.db),
		`DELETE FROM course_instance_question_options WHERE course_instance_question_id IN (
			SELECT id FROM course_instance_questions WHERE course_instance_id = ?)`, instanceID); err != nil {
		return fmt.Errorf("failed to delete option snapshots of instance %d: %w", instanceID, err)
	}
	return nil
}

// DeleteSnapshotOptionsByQuestion removes every snapshot taken from the question's options,
// which also covers every snapshot owned by the question's served instances.
func (r *CourseInstanceDatabaseAdapter) DeleteSnapshotOptionsByQuestion(ctx context.Context, questionID int64) error {
	if _, err := execAffecting(ctx, GetExecutor(ctx, r.db),
		`DELETE FROM course_instance_question_options WHERE question_option_id IN (
			SELECT id FROM question_options WHERE question_id = ?)
		OR course_instance_question_id IN (
			SELECT id FROM course_instance_questions WHERE question_id = ?)`, questionID, questionID); err != nil {
		return fmt.Errorf("failed to delete option snapshots of question %d: %w", questionID, err)
	}
	return nil
}
