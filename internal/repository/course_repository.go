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

const courseColumns = "id, title, description, questions_to_ask, created_at, updated_at"

type CourseDatabaseAdapter struct {
	db *sqlx.DB
}

func NewCourseDatabaseAdapter(db *sqlx.DB) domain.CourseRepository {
	return &CourseDatabaseAdapter{db: db}
}

// GetCourseByID loads a course together with its tags.
func (r *CourseDatabaseAdapter) GetCourseByID(ctx context.Context, id int64) (*domain.Course, error) {
	exec := GetExecutor(ctx, r.db)

	var course models.Course
	query := exec.Rebind("SELECT " + courseColumns + " FROM courses WHERE id = ?")
	if err := exec.GetContext(ctx, &course, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("course", id)
		}
		return nil, fmt.Errorf("failed to get course %d: %w", id, err)
	}

	tags, err := r.tagsForCourses(ctx, exec, []int64{id})
	if err != nil {
		return nil, err
	}

	result := toDomainCourse(&course)
	if courseTags, ok := tags[id]; ok {
		result.Tags = courseTags
	}
	return result, nil
}

func (r *CourseDatabaseAdapter) ListCourses(ctx context.Context) ([]*domain.Course, error) {
	exec := GetExecutor(ctx, r.db)

	var rows []models.Course
	if err := exec.SelectContext(ctx, &rows, "SELECT "+courseColumns+" FROM courses ORDER BY title, id"); err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	if len(rows) == 0 {
		return []*domain.Course{}, nil
	}

	ids := make([]int64, len(rows))
	for i := range rows {
		ids[i] = rows[i].ID
	}
	tags, err := r.tagsForCourses(ctx, exec, ids)
	if err != nil {
		return nil, err
	}

	courses := make([]*domain.Course, len(rows))
	for i := range rows {
		courses[i] = toDomainCourse(&rows[i])
		if courseTags, ok := tags[rows[i].ID]; ok {
			courses[i].Tags = courseTags
		}
	}
	return courses, nil
}

func (r *CourseDatabaseAdapter) tagsForCourses(ctx context.Context, exec DBTX, courseIDs []int64) (map[int64][]*domain.Tag, error) {
	query, args, err := inClause(`SELECT ct.course_id, t.id, t.name, t.description, t.tag_type
		FROM course_tags ct JOIN tags t ON t.id = ct.tag_id
		WHERE ct.course_id IN (?) ORDER BY ct.course_id, ct.id`, courseIDs)
	if err != nil {
		return nil, err
	}

	var rows []models.CourseTagRow
	if err := exec.SelectContext(ctx, &rows, exec.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to load course tags: %w", err)
	}

	byCourse := make(map[int64][]*domain.Tag, len(courseIDs))
	for i := range rows {
		byCourse[rows[i].CourseID] = append(byCourse[rows[i].CourseID], toDomainTag(&rows[i].Tag))
	}
	return byCourse, nil
}

func (r *CourseDatabaseAdapter) InsertCourse(ctx context.Context, course *domain.Course) error {
	m := fromDomainCourse(course)
	id, err := insertReturningID(ctx, GetExecutor(ctx, r.db),
		"INSERT INTO courses (title, description, questions_to_ask, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
		m.Title, m.Description, m.QuestionsToAsk, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert course: %w", err)
	}
	course.ID = id
	return nil
}

func (r *CourseDatabaseAdapter) UpdateCourse(ctx context.Context, course *domain.Course) error {
	m := fromDomainCourse(course)
	n, err := execAffecting(ctx, GetExecutor(ctx, r.db),
		"UPDATE courses SET title = ?, description = ?, questions_to_ask = ?, updated_at = ? WHERE id = ?",
		m.Title, m.Description, m.QuestionsToAsk, m.UpdatedAt, m.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update course %d: %w", course.ID, err)
	}
	if n == 0 {
		return domain.NewNotFoundError("course", course.ID)
	}
	return nil
}

func (r *CourseDatabaseAdapter) GetCourseTagLinks(ctx context.Context, courseID int64) ([]*domain.CourseTag, error) {
	exec := GetExecutor(ctx, r.db)

	var rows []models.CourseTag
	query := exec.Rebind("SELECT id, course_id, tag_id FROM course_tags WHERE course_id = ? ORDER BY id")
	if err := exec.SelectContext(ctx, &rows, query, courseID); err != nil {
		return nil, fmt.Errorf("failed to get course tag links: %w", err)
	}

	links := make([]*domain.CourseTag, len(rows))
	for i, row := range rows {
		links[i] = &domain.CourseTag{ID: row.ID, CourseID: row.CourseID, TagID: row.TagID}
	}
	return links, nil
}

func (r *CourseDatabaseAdapter) InsertCourseTagLink(ctx context.Context, link *domain.CourseTag) error {
	id, err := insertReturningID(ctx, GetExecutor(ctx, r.db),
		"INSERT INTO course_tags (course_id, tag_id) VALUES (?, ?)", link.CourseID, link.TagID)
	if err != nil {
		return fmt.Errorf("failed to insert course tag link: %w", err)
	}
	link.ID = id
	return nil
}

func (r *CourseDatabaseAdapter) UpdateCourseTagLink(ctx context.Context, link *domain.CourseTag) error {
	_, err := execAffecting(ctx, GetExecutor(ctx, r.db),
		"UPDATE course_tags SET course_id = ?, tag_id = ? WHERE id = ?", link.CourseID, link.TagID, link.ID)
	if err != nil {
		return fmt.Errorf("failed to update course tag link %d: %w", link.ID, err)
	}
	return nil
}

func (r *CourseDatabaseAdapter) DeleteCourseTagLink(ctx context.Context, id int64) error {
	if _, err := execAffecting(ctx, GetExecutor(ctx, r.db), "DELETE FROM course_tags WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete course tag link %d: %w", id, err)
	}
	return nil
}

func toDomainCourse(m *models.Course) *domain.Course {
	if m == nil {
		return nil
	}
	return &domain.Course{
		ID:             m.ID,
		Title:          m.Title,
		Description:    m.Description.String,
		QuestionsToAsk: m.QuestionsToAsk,
		Tags:           []*domain.Tag{},
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func fromDomainCourse(c *domain.Course) *models.Course {
	if c == nil {
		return nil
	}
	return &models.Course{
		ID:             c.ID,
		Title:          c.Title,
		Description:    util.StringToNullString(c.Description),
		QuestionsToAsk: c.QuestionsToAsk,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}
