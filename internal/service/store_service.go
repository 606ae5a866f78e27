package service

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/ebp-edu/rubricas-api/internal/models"
	appErrors "github.com/ebp-edu/rubricas-api/pkg/errors"
)

type rubricStore interface {
	List(ctx context.Context) ([]models.SavedRubric, error)
	Replace(ctx context.Context, saved []models.SavedRubric) error
}

// StoreService maintains the bounded saved-rubric list: newest first,
// capped, evicting the oldest entries on overflow. Insertion order only,
// no access-based reordering.
type StoreService struct {
	repo   rubricStore
	max    int
	logger *zap.Logger
	now    func() time.Time
}

// NewStoreService constructs the store service.
func NewStoreService(repo rubricStore, max int, logger *zap.Logger) *StoreService {
	if max <= 0 {
		max = 10
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StoreService{repo: repo, max: max, logger: logger, now: time.Now}
}

// Save prepends a new entry built from the rubric and its originating form
// data, trimming the list to the configured cap.
func (s *StoreService) Save(ctx context.Context, rubric models.Rubric, form models.FormContext) (*models.SavedRubric, error) {
	saved, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	createdAt := s.now().UTC()
	entry := models.SavedRubric{
		ID:        strconv.FormatInt(createdAt.UnixMilli(), 10),
		Rubric:    rubric,
		FormData:  form,
		CreatedAt: createdAt.Format(time.RFC3339),
		Title:     rubric.Title,
	}

	updated := append([]models.SavedRubric{entry}, saved...)
	if len(updated) > s.max {
		updated = updated[:s.max]
	}

	if err := s.repo.Replace(ctx, updated); err != nil {
		return nil, err
	}
	return &entry, nil
}

// Update replaces the rubric content of an existing entry in place. The
// entry keeps its ID, position and creation time; only the payload and
// derived title change.
func (s *StoreService) Update(ctx context.Context, id string, rubric models.Rubric, form models.FormContext) (*models.SavedRubric, error) {
	saved, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range saved {
		if saved[i].ID != id {
			continue
		}
		saved[i].Rubric = rubric
		saved[i].FormData = form
		saved[i].Title = rubric.Title
		if err := s.repo.Replace(ctx, saved); err != nil {
			return nil, err
		}
		return &saved[i], nil
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "saved rubric not found")
}

// List returns all saved rubrics, newest first.
func (s *StoreService) List(ctx context.Context) ([]models.SavedRubric, error) {
	return s.repo.List(ctx)
}

// Get returns one saved rubric by ID.
func (s *StoreService) Get(ctx context.Context, id string) (*models.SavedRubric, error) {
	saved, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range saved {
		if saved[i].ID == id {
			return &saved[i], nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "saved rubric not found")
}

// Delete removes one saved rubric by ID. Deleting an unknown ID is a no-op
// to keep the operation idempotent.
func (s *StoreService) Delete(ctx context.Context, id string) error {
	saved, err := s.repo.List(ctx)
	if err != nil {
		return err
	}
	filtered := saved[:0:0]
	for _, entry := range saved {
		if entry.ID != id {
			filtered = append(filtered, entry)
		}
	}
	if len(filtered) == len(saved) {
		return nil
	}
	return s.repo.Replace(ctx, filtered)
}
