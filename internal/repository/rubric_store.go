package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/ebp-edu/rubricas-api/internal/models"
	appErrors "github.com/ebp-edu/rubricas-api/pkg/errors"
)

// RubricStore keeps the saved-rubric list as one JSON document under a
// single well-known key. Reads and writes are whole-list: load, mutate in
// the service, write back. There is no per-entry update protocol.
type RubricStore struct {
	client *redis.Client
	key    string
}

// NewRubricStore constructs the store around a Redis client.
func NewRubricStore(client *redis.Client, key string) *RubricStore {
	if key == "" {
		key = "rubricas:saved"
	}
	return &RubricStore{client: client, key: key}
}

// List returns every saved rubric, newest first. A missing key is an
// empty list, not an error.
func (s *RubricStore) List(ctx context.Context) ([]models.SavedRubric, error) {
	if s.client == nil {
		return nil, appErrors.Clone(appErrors.ErrStoreUnavailable, "")
	}

	raw, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return []models.SavedRubric{}, nil
		}
		return nil, fmt.Errorf("redis get %s: %w", s.key, err)
	}

	var saved []models.SavedRubric
	if err := json.Unmarshal(raw, &saved); err != nil {
		return nil, fmt.Errorf("unmarshal saved rubrics: %w", err)
	}
	return saved, nil
}

// Replace overwrites the whole list.
func (s *RubricStore) Replace(ctx context.Context, saved []models.SavedRubric) error {
	if s.client == nil {
		return appErrors.Clone(appErrors.ErrStoreUnavailable, "")
	}

	payload, err := json.Marshal(saved)
	if err != nil {
		return fmt.Errorf("marshal saved rubrics: %w", err)
	}
	if err := s.client.Set(ctx, s.key, payload, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.key, err)
	}
	return nil
}
