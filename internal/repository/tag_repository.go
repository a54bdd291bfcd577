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

const tagColumns = "id, name, description, tag_type"

type TagDatabaseAdapter struct {
	db *sqlx.DB
}

func NewTagDatabaseAdapter(db *sqlx.DB) domain.TagRepository {
	return &TagDatabaseAdapter{db: db}
}

func (r *TagDatabaseAdapter) GetTagByID(ctx context.Context, id int64) (*domain.Tag, error) {
	exec := GetExecutor(ctx, r.db)

	var tag models.Tag
	query := exec.Rebind("SELECT " + tagColumns + " FROM tags WHERE id = ?")
	if err := exec.GetContext(ctx, &tag, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("tag", id)
		}
		return nil, fmt.Errorf("failed to get tag %d: %w", id, err)
	}
	return toDomainTag(&tag), nil
}

// FindTags returns tags whose name contains term, ordered by name.
func (r *TagDatabaseAdapter) FindTags(ctx context.Context, term string) ([]*domain.Tag, error) {
	exec := GetExecutor(ctx, r.db)

	var tags []models.Tag
	query := exec.Rebind("SELECT " + tagColumns + " FROM tags WHERE name LIKE ? ORDER BY name, id")
	if err := exec.SelectContext(ctx, &tags, query, "%"+term+"%"); err != nil {
		return nil, fmt.Errorf("failed to find tags: %w", err)
	}
	return toDomainTags(tags), nil
}

func (r *TagDatabaseAdapter) InsertTag(ctx context.Context, tag *domain.Tag) error {
	m := fromDomainTag(tag)
	id, err := insertReturningID(ctx, GetExecutor(ctx, r.db),
		"INSERT INTO tags (name, description, tag_type) VALUES (?, ?, ?)",
		m.Name, m.Description, m.TagType,
	)
	if err != nil {
		return fmt.Errorf("failed to insert tag: %w", err)
	}
	tag.ID = id
	return nil
}

func (r *TagDatabaseAdapter) UpdateTag(ctx context.Context, tag *domain.Tag) error {
	m := fromDomainTag(tag)
	n, err := execAffecting(ctx, GetExecutor(ctx, r.db),
		"UPDATE tags SET name = ?, description = ?, tag_type = ? WHERE id = ?",
		m.Name, m.Description, m.TagType, m.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update tag %d: %w", tag.ID, err)
	}
	if n == 0 {
		return domain.NewNotFoundError("tag", tag.ID)
	}
	return nil
}

// CountTagsByIDs counts how many of the distinct ids exist.
func (r *TagDatabaseAdapter) CountTagsByIDs(ctx context.Context, ids []int64) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	exec := GetExecutor(ctx, r.db)

	query, args, err := inClause("SELECT COUNT(*) FROM tags WHERE id IN (?)", ids)
	if err != nil {
		return 0, err
	}
	var count int
	if err := exec.GetContext(ctx, &count, exec.Rebind(query), args...); err != nil {
		return 0, fmt.Errorf("failed to count tags: %w", err)
	}
	return count, nil
}

func toDomainTag(m *models.Tag) *domain.Tag {
	if m == nil {
		return nil
	}
	return &domain.Tag{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description.String,
		Type:        m.TagType,
	}
}

func toDomainTags(ms []models.Tag) []*domain.Tag {
	tags := make([]*domain.Tag, len(ms))
	for i := range ms {
		tags[i] = toDomainTag(&ms[i])
	}
	return tags
}

func fromDomainTag(t *domain.Tag) *models.Tag {
	if t == nil {
		return nil
	}
	return &models.Tag{
		ID:          t.ID,
		Name:        t.Name,
		Description: util.StringToNullString(t.Description),
		TagType:     t.Type,
	}
}
