package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"quiz-course/internal/domain"
	"quiz-course/internal/repository/models"
	"quiz-course/internal/util"

	"github.com/jmoiron/sqlx"
)

const questionColumns = "id, title, question_text, explanation, status, owner_user_id, created_at, updated_at"

type QuestionDatabaseAdapter struct {
	db *sqlx.DB
}

func NewQuestionDatabaseAdapter(db *sqlx.DB) domain.QuestionRepository {
	return &QuestionDatabaseAdapter{db: db}
}

// GetQuestionByID loads the question row only; child collections have their own getters.
func (r *QuestionDatabaseAdapter) GetQuestionByID(ctx context.Context, id int64) (*domain.Question, error) {
	exec := GetExecutor(ctx, r.db)

	var q models.Question
	query := exec.Rebind("SELECT " + questionColumns + " FROM questions WHERE id = ?")
	if err := exec.GetContext(ctx, &q, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("question", id)
		}
		return nil, fmt.Errorf("failed to get question %d: %w", id, err)
	}
	return toDomainQuestion(&q), nil
}

func (r *QuestionDatabaseAdapter) ListQuestionsByOwner(ctx context.Context, ownerUserID string) ([]*domain.Question, error) {
	exec := GetExecutor(ctx, r.db)

	var rows []models.Question
	query := exec.Rebind("SELECT " + questionColumns + " FROM questions WHERE owner_user_id = ? ORDER BY title, id")
	if err := exec.SelectContext(ctx, &rows, query, ownerUserID); err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}

	questions := make([]*domain.Question, len(rows))
	for i := range rows {
		questions[i] = toDomainQuestion(&rows[i])
	}
	return questions, nil
}

func (r *QuestionDatabaseAdapter) InsertQuestion(ctx context.Context, question *domain.Question) error {
	m := fromDomainQuestion(question)
	id, err := insertReturningID(ctx, GetExecutor(ctx, r.db),
		`INSERT INTO questions (title, question_text, explanation, status, owner_user_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.Title, m.QuestionText, m.Explanation, m.Status, m.OwnerUserID, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert question: %w", err)
	}
	question.ID = id
	return nil
}

func (r *QuestionDatabaseAdapter) UpdateQuestion(ctx context.Context, question *domain.Question) error {
	m := fromDomainQuestion(question)
	n, err := execAffecting(ctx, GetExecutor(ctx, r.db),
		"UPDATE questions SET title = ?, question_text = ?, explanation = ?, status = ?, updated_at = ? WHERE id = ?",
		m.Title, m.QuestionText, m.Explanation, m.Status, m.UpdatedAt, m.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update question %d: %w", question.ID, err)
	}
	if n == 0 {
		return domain.NewNotFoundError("question", question.ID)
	}
	return nil
}

func (r *QuestionDatabaseAdapter) DeleteQuestion(ctx context.Context, id int64) error {
	n, err := execAffecting(ctx, GetExecutor(ctx, r.db), "DELETE FROM questions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete question %d: %w", id, err)
	}
	if n == 0 {
		return domain.NewNotFoundError("question", id)
	}
	return nil
}

// GetOptions returns the options of a question in id order.
func (r *QuestionDatabaseAdapter) GetOptions(ctx context.Context, questionID int64) ([]*domain.QuestionOption, error) {
	exec := GetExecutor(ctx, r.db)

	var rows []models.QuestionOption
	query := exec.Rebind("SELECT id, question_id, option_text, is_true FROM question_options WHERE question_id = ? ORDER BY id")
	if err := exec.SelectContext(ctx, &rows, query, questionID); err != nil {
		return nil, fmt.Errorf("failed to get options of question %d: %w", questionID, err)
	}

	options := make([]*domain.QuestionOption, len(rows))
	for i, row := range rows {
		options[i] = &domain.QuestionOption{
			ID:         row.ID,
			QuestionID: row.QuestionID,
			Text:       row.OptionText.String,
			IsTrue:     row.IsTrue,
		}
	}
	return options, nil
}

func (r *QuestionDatabaseAdapter) InsertOption(ctx context.Context, option *domain.QuestionOption) error {
	id, err := insertReturningID(ctx, GetExecutor(ctx, r.db),
		"INSERT INTO question_options (question_id, option_text, is_true) VALUES (?, ?, ?)",
		option.QuestionID, util.StringToNullString(option.Text), boolToInt(option.IsTrue),
	)
	if err != nil {
		return fmt.Errorf("failed to insert option: %w", err)
	}
	option.ID = id
	return nil
}

func (r *QuestionDatabaseAdapter) UpdateOption(ctx context.Context, option *domain.QuestionOption) error {
	_, err := execAffecting(ctx, GetExecutor(ctx, r.db),
		"UPDATE question_options SET question_id = ?, option_text = ?, is_true = ? WHERE id = ?",
		option.QuestionID, util.StringToNullString(option.Text), boolToInt(option.IsTrue), option.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update option %d: %w", option.ID, err)
	}
	return nil
}

// DeleteOption removes an option together with the answer snapshots taken from it.
func (r *QuestionDatabaseAdapter) DeleteOption(ctx context.Context, id int64) error {
	exec := GetExecutor(ctx, r.db)
	if _, err := execAffecting(ctx, exec, "DELETE FROM course_instance_question_options WHERE question_option_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete snapshots of option %d: %w", id, err)
	}
	if _, err := execAffecting(ctx, exec, "DELETE FROM question_options WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete option %d: %w", id, err)
	}
	return nil
}

func (r *QuestionDatabaseAdapter) DeleteOptionsByQuestionID(ctx context.Context, questionID int64) error {
	if _, err := execAffecting(ctx, GetExecutor(ctx, r.db), "DELETE FROM question_options WHERE question_id = ?", questionID); err != nil {
		return fmt.Errorf("failed to delete options of question %d: %w", questionID, err)
	}
	return nil
}

func (r *QuestionDatabaseAdapter) GetTagsByQuestionID(ctx context.Context, questionID int64) ([]*domain.Tag, error) {
	exec := GetExecutor(ctx, r.db)

	var rows []models.Tag
	query := exec.Rebind(`SELECT t.id, t.name, t.description, t.tag_type
		FROM question_tags qt JOIN tags t ON t.id = qt.tag_id
		WHERE qt.question_id = ? ORDER BY qt.id`)
	if err := exec.SelectContext(ctx, &rows, query, questionID); err != nil {
		return nil, fmt.Errorf("failed to get tags of question %d: %w", questionID, err)
	}
	return toDomainTags(rows), nil
}

func (r *QuestionDatabaseAdapter) GetQuestionTagLinks(ctx context.Context, questionID int64) ([]*domain.QuestionTag, error) {
	exec := GetExecutor(ctx, r.db)

	var rows []models.QuestionTag
	query := exec.Rebind("SELECT id, question_id, tag_id FROM question_tags WHERE question_id = ? ORDER BY id")
	if err := exec.SelectContext(ctx, &rows, query, questionID); err != nil {
		return nil, fmt.Errorf("failed to get tag links of question %d: %w", questionID, err)
	}

	links := make([]*domain.QuestionTag, len(rows))
	for i, row := range rows {
		links[i] = &domain.QuestionTag{ID: row.ID, QuestionID: row.QuestionID, TagID: row.TagID}
	}
	return links, nil
}

func (r *QuestionDatabaseAdapter) InsertQuestionTagLink(ctx context.Context, link *domain.QuestionTag) error {
	id, err := insertReturningID(ctx, GetExecutor(ctx, r.db),
		"INSERT INTO question_tags (question_id, tag_id) VALUES (?, ?)", link.QuestionID, link.TagID)
	if err != nil {
		return fmt.Errorf("failed to insert question tag link: %w", err)
	}
	link.ID = id
	return nil
}

func (r *QuestionDatabaseAdapter) UpdateQuestionTagLink(ctx context.Context, link *domain.QuestionTag) error {
	_, err := execAffecting(ctx, GetExecutor(ctx, r.db),
		"UPDATE question_tags SET question_id = ?, tag_id = ? WHERE id = ?", link.QuestionID, link.TagID, link.ID)
	if err != nil {
		return fmt.Errorf("failed to update question tag link %d: %w", link.ID, err)
	}
	return nil
}

func (r *QuestionDatabaseAdapter) DeleteQuestionTagLink(ctx context.Context, id int64) error {
	if _, err := execAffecting(ctx, GetExecutor(ctx, r.db), "DELETE FROM question_tags WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete question tag link %d: %w", id, err)
	}
	return nil
}

func (r *QuestionDatabaseAdapter) DeleteQuestionTagLinksByQuestionID(ctx context.Context, questionID int64) error {
	if _, err := execAffecting(ctx, GetExecutor(ctx, r.db), "DELETE FROM question_tags WHERE question_id = ?", questionID); err != nil {
		return fmt.Errorf("failed to delete tag links of question %d: %w", questionID, err)
	}
	return nil
}

func (r *QuestionDatabaseAdapter) GetImagesByQuestionID(ctx context.Context, questionID int64) ([]*domain.Image, error) {
	exec := GetExecutor(ctx, r.db)

	var rows []models.Image
	query := exec.Rebind(`SELECT i.id, i.width, i.height, i.full_size
		FROM question_images qi JOIN images i ON i.id = qi.image_id
		WHERE qi.question_id = ? ORDER BY qi.id`)
	if err := exec.SelectContext(ctx, &rows, query, questionID); err != nil {
		return nil, fmt.Errorf("failed to get images of question %d: %w", questionID, err)
	}
	return toDomainImages(rows), nil
}

func (r *QuestionDatabaseAdapter) GetImagesByIDs(ctx context.Context, ids []int64) ([]*domain.Image, error) {
	if len(ids) == 0 {
		return []*domain.Image{}, nil
	}
	exec := GetExecutor(ctx, r.db)

	query, args, err := inClause("SELECT id, width, height, full_size FROM images WHERE id IN (?) ORDER BY id", ids)
	if err != nil {
		return nil, err
	}
	var rows []models.Image
	if err := exec.SelectContext(ctx, &rows, exec.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to get images: %w", err)
	}
	return toDomainImages(rows), nil
}

func (r *QuestionDatabaseAdapter) UpdateImage(ctx context.Context, image *domain.Image) error {
	m := fromDomainImage(image)
	_, err := execAffecting(ctx, GetExecutor(ctx, r.db),
		"UPDATE images SET width = ?, height = ?, full_size = ? WHERE id = ?",
		m.Width, m.Height, boolToInt(m.FullSize), m.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update image %d: %w", image.ID, err)
	}
	return nil
}

func (r *QuestionDatabaseAdapter) GetQuestionImageLinks(ctx context.Context, questionID int64) ([]*domain.QuestionImage, error) {
	exec := GetExecutor(ctx, r.db)

	var rows []models.QuestionImage
	query := exec.Rebind("SELECT id, question_id, image_id FROM question_images WHERE question_id = ? ORDER BY id")
	if err := exec.SelectContext(ctx, &rows, query, questionID); err != nil {
		return nil, fmt.Errorf("failed to get image links of question %d: %w", questionID, err)
	}

	links := make([]*domain.QuestionImage, len(rows))
	for i, row := range rows {
		links[i] = &domain.QuestionImage{ID: row.ID, QuestionID: row.QuestionID, ImageID: row.ImageID}
	}
	return links, nil
}

func (r *QuestionDatabaseAdapter) InsertQuestionImageLink(ctx context.Context, link *domain.QuestionImage) error {
	id, err := insertReturningID(ctx, GetExecutor(ctx, r.db),
		"INSERT INTO question_images (question_id, image_id) VALUES (?, ?)", link.QuestionID, link.ImageID)
	if err != nil {
		return fmt.Errorf("failed to insert question image link: %w", err)
	}
	link.ID = id
	return nil
}

func (r *QuestionDatabaseAdapter) UpdateQuestionImageLink(ctx context.Context, link *domain.QuestionImage) error {
	_, err := execAffecting(ctx, GetExecutor(ctx, r.db),
		"UPDATE question_images SET question_id = ?, image_id = ? WHERE id = ?", link.QuestionID, link.ImageID, link.ID)
	if err != nil {
		return fmt.Errorf("failed to update question image link %d: %w", link.ID, err)
	}
	return nil
}

func (r *QuestionDatabaseAdapter) DeleteQuestionImageLink(ctx context.Context, id int64) error {
	if _, err := execAffecting(ctx, GetExecutor(ctx, r.db), "DELETE FROM question_images WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete question image link %d: %w", id, err)
	}
	return nil
}

func (r *QuestionDatabaseAdapter) DeleteQuestionImageLinksByQuestionID(ctx context.Context, questionID int64) error {
	if _, err := execAffecting(ctx, GetExecutor(ctx, r.db), "DELETE FROM question_images WHERE question_id = ?", questionID); err != nil {
		return fmt.Errorf("failed to delete image links of question %d: %w", questionID, err)
	}
	return nil
}

func (r *QuestionDatabaseAdapter) GetRating(ctx context.Context, questionID int64, userID string) (*domain.Rating, error) {
	exec := GetExecutor(ctx, r.db)

	var m models.Rating
	query := exec.Rebind("SELECT id, question_id, user_id, rating FROM ratings WHERE question_id = ? AND user_id = ?")
	if err := exec.GetContext(ctx, &m, query, questionID, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("rating", questionID)
		}
		return nil, fmt.Errorf("failed to get rating of question %d: %w", questionID, err)
	}
	return &domain.Rating{ID: m.ID, QuestionID: m.QuestionID, UserID: m.UserID, Value: m.Rating}, nil
}

func (r *QuestionDatabaseAdapter) InsertRating(ctx context.Context, rating *domain.Rating) error {
	id, err := insertReturningID(ctx, GetExecutor(ctx, r.db),
		"INSERT INTO ratings (question_id, user_id, rating) VALUES (?, ?, ?)",
		rating.QuestionID, rating.UserID, rating.Value)
	if err != nil {
		return fmt.Errorf("failed to insert rating: %w", err)
	}
	rating.ID = id
	return nil
}

func (r *QuestionDatabaseAdapter) UpdateRating(ctx context.Context, rating *domain.Rating) error {
	_, err := execAffecting(ctx, GetExecutor(ctx, r.db),
		"UPDATE ratings SET rating = ? WHERE id = ?", rating.Value, rating.ID)
	if err != nil {
		return fmt.Errorf("failed to update rating %d: %w", rating.ID, err)
	}
	return nil
}

// CountRatings counts positive and negative votes; neutral votes count toward neither.
func (r *QuestionDatabaseAdapter) CountRatings(ctx context.Context, questionID int64) (*domain.RatingCounts, error) {
	exec := GetExecutor(ctx, r.db)

	var m models.RatingCounts
	query := exec.Rebind(`SELECT
			COALESCE(SUM(CASE WHEN rating > 0 THEN 1 ELSE 0 END), 0) AS up,
			COALESCE(SUM(CASE WHEN rating < 0 THEN 1 ELSE 0 END), 0) AS down
		FROM ratings WHERE question_id = ?`)
	if err := exec.GetContext(ctx, &m, query, questionID); err != nil {
		return nil, fmt.Errorf("failed to count ratings of question %d: %w", questionID, err)
	}
	return &domain.RatingCounts{Up: m.Up, Down: m.Down}, nil
}

func (r *QuestionDatabaseAdapter) DeleteRatingsByQuestionID(ctx context.Context, questionID int64) error {
	if _, err := execAffecting(ctx, GetExecutor(ctx, r.db), "DELETE FROM ratings WHERE question_id = ?", questionID); err != nil {
		return fmt.Errorf("failed to delete ratings of question %d: %w", questionID, err)
	}
	return nil
}

func toDomainQuestion(m *models.Question) *domain.Question {
	if m == nil {
		return nil
	}
	return &domain.Question{
		ID:          m.ID,
		Title:       m.Title,
		Text:        m.QuestionText.String,
		Explanation: m.Explanation.String,
		Status:      domain.QuestionStatus(m.Status),
		OwnerUserID: m.OwnerUserID,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func fromDomainQuestion(q *domain.Question) *models.Question {
	if q == nil {
		return nil
	}
	return &models.Question{
		ID:           q.ID,
		Title:        q.Title,
		QuestionText: sql.NullString{String: q.Text, Valid: true},
		Explanation:  util.StringToNullString(q.Explanation),
		Status:       int(q.Status),
		OwnerUserID:  q.OwnerUserID,
		CreatedAt:    q.CreatedAt,
		UpdatedAt:    q.UpdatedAt,
	}
}

func toDomainImages(rows []models.Image) []*domain.Image {
	images := make([]*domain.Image, len(rows))
	for i, row := range rows {
		images[i] = &domain.Image{
			ID:     row.ID,
			Width:  util.NullInt64ToIntPtr(row.Width),
			Height: util.NullInt64ToIntPtr(row.Height),
			Full:   row.FullSize,
		}
	}
	return images
}

func fromDomainImage(img *domain.Image) *models.Image {
	return &models.Image{
		ID:       img.ID,
		Width:    util.IntPtrToNullInt64(img.Width),
		Height:   util.IntPtrToNullInt64(img.Height),
		FullSize: img.Full,
	}
}
