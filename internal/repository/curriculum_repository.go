package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ebp-edu/rubricas-api/internal/models"
)

// CurriculumRepository reads the local curricular reference table.
type CurriculumRepository struct {
	db *sqlx.DB
}

// NewCurriculumRepository constructs the repository.
func NewCurriculumRepository(db *sqlx.DB) *CurriculumRepository {
	return &CurriculumRepository{db: db}
}

// ListByScope returns the official criteria for a stage/subject/course
// triple ordered by code. An empty result means the scope has no local
// reference data and callers fall back to free generation.
func (r *CurriculumRepository) ListByScope(ctx context.Context, stage, subject, course string) ([]models.CurriculumCriterion, error) {
	if r == nil || r.db == nil {
		return nil, nil
	}
	const query = `SELECT id, stage, subject, course, code, description
FROM curriculum_criteria
WHERE stage = $1 AND subject = $2 AND course = $3
ORDER BY code ASC`
	var criteria []models.CurriculumCriterion
	if err := r.db.SelectContext(ctx, &criteria, query, stage, subject, course); err != nil {
		return nil, fmt.Errorf("list curriculum criteria: %w", err)
	}
	return criteria, nil
}
