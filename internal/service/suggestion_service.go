package service

import (
	"context"
	"encoding/json"
	"math"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/ebp-edu/rubricas-api/internal/dto"
	"github.com/ebp-edu/rubricas-api/internal/models"
	"github.com/ebp-edu/rubricas-api/internal/prompt"
	appErrors "github.com/ebp-edu/rubricas-api/pkg/errors"
)

type curriculumReader interface {
	ListByScope(ctx context.Context, stage, subject, course string) ([]models.CurriculumCriterion, error)
}

// SuggestionConfig tunes the suggestion pipeline.
type SuggestionConfig struct {
	Temperature float64
}

// SuggestionService proposes curricular criteria or weighted evaluable
// aspects for a partial form context. When local curriculum reference data
// exists for the scope, the specific mode constrains the generator to that
// closed list instead of free-generating.
type SuggestionService struct {
	ai         generationClient
	curriculum curriculumReader
	validator  *validator.Validate
	metrics    *MetricsService
	logger     *zap.Logger
	cfg        SuggestionConfig
}

// NewSuggestionService constructs the service. The curriculum reader is
// optional; nil disables closed-list constraining.
func NewSuggestionService(ai generationClient, curriculum curriculumReader, validate *validator.Validate, metrics *MetricsService, logger *zap.Logger, cfg SuggestionConfig) *SuggestionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = 0.7
	}
	return &SuggestionService{ai: ai, curriculum: curriculum, validator: validate, metrics: metrics, logger: logger, cfg: cfg}
}

// Suggest runs one suggestion request end to end.
func (s *SuggestionService) Suggest(ctx context.Context, req dto.SuggestCriteriaRequest) (*dto.SuggestCriteriaResponse, error) {
	start := time.Now()
	resp, err := s.suggest(ctx, req)
	if s.metrics != nil {
		// Only validated types become label values; anything else is
		// folded into a single bucket to keep the metric bounded.
		kind := "suggestion_invalid"
		if req.Type.Valid() {
			kind = "suggestion_" + string(req.Type)
		}
		s.metrics.ObserveGeneration(kind, outcomeLabel(err), time.Since(start))
	}
	return resp, err
}

func (s *SuggestionService) suggest(ctx context.Context, req dto.SuggestCriteriaRequest) (*dto.SuggestCriteriaResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid suggestion request")
	}
	if !req.Type.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown suggestion type: "+string(req.Type))
	}
	if s.ai == nil {
		return nil, appErrors.Clone(appErrors.ErrAIUnavailable, "")
	}

	promptCtx := prompt.Context{
		Stage:             req.Stage,
		Course:            req.Course,
		Subject:           req.Subject,
		EvaluationElement: req.EvaluationElement,
	}

	var curriculum []models.CurriculumCriterion
	if req.Type == models.SuggestionSpecific && s.curriculum != nil {
		rows, err := s.curriculum.ListByScope(ctx, req.Stage, req.Subject, req.Course)
		if err != nil {
			s.logger.Warn("curriculum lookup failed, falling back to free generation", zap.Error(err))
		} else {
			curriculum = rows
		}
	}

	instruction := prompt.BuildSuggestion(promptCtx, req.Type, curriculum)

	switch req.Type {
	case models.SuggestionSpecific:
		raw, err := s.ai.GenerateJSON(ctx, instruction, prompt.SpecificSuggestionSchema(), s.cfg.Temperature)
		if err != nil {
			return nil, err
		}
		suggestions, err := DecodeSpecificSuggestions(raw)
		if err != nil {
			return nil, err
		}
		return &dto.SuggestCriteriaResponse{
			Type:     req.Type,
			Specific: MergeCriteria(req.Existing, suggestions),
		}, nil

	default:
		raw, err := s.ai.GenerateJSON(ctx, instruction, prompt.WeightedSuggestionSchema(), s.cfg.Temperature)
		if err != nil {
			return nil, err
		}
		suggestions, err := DecodeWeightedSuggestions(raw)
		if err != nil {
			return nil, err
		}
		return &dto.SuggestCriteriaResponse{
			Type:     req.Type,
			Weighted: MergeWeighted(req.ExistingCriteria, NormalizeWeights(suggestions)),
		}, nil
	}
}

// DecodeSpecificSuggestions validates a flat JSON string array.
func DecodeSpecificSuggestions(raw string) ([]string, error) {
	clean := SanitizePayload(raw)
	if !json.Valid([]byte(clean)) {
		return nil, appErrors.Clone(appErrors.ErrAIParse, "")
	}
	var elements []json.RawMessage
	if err := json.Unmarshal([]byte(clean), &elements); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrAISchema.Code, appErrors.ErrAISchema.Status, "suggestions are not an array")
	}
	suggestions := make([]string, 0, len(elements))
	for _, element := range elements {
		var value string
		if err := json.Unmarshal(element, &value); err != nil {
			return nil, appErrors.Clone(appErrors.ErrAISchema, "suggestion entry is not a string")
		}
		suggestions = append(suggestions, value)
	}
	return suggestions, nil
}

type rawWeighted struct {
	Name   *string  `json:"name"`
	Weight *float64 `json:"weight"`
}

// DecodeWeightedSuggestions validates an array of {name, weight} objects.
func DecodeWeightedSuggestions(raw string) ([]models.WeightedCriterion, error) {
	clean := SanitizePayload(raw)
	if !json.Valid([]byte(clean)) {
		return nil, appErrors.Clone(appErrors.ErrAIParse, "")
	}
	var elements []rawWeighted
	if err := json.Unmarshal([]byte(clean), &elements); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrAISchema.Code, appErrors.ErrAISchema.Status, "weighted suggestions are not an array of objects")
	}
	suggestions := make([]models.WeightedCriterion, 0, len(elements))
	for _, element := range elements {
		if element.Name == nil || element.Weight == nil {
			return nil, appErrors.Clone(appErrors.ErrAISchema, "weighted suggestion entry missing name or weight")
		}
		suggestions = append(suggestions, models.WeightedCriterion{
			Name:   *element.Name,
			Weight: int(math.Round(*element.Weight)),
		})
	}
	return suggestions, nil
}

// NormalizeWeights rescales advisory weights so they sum to exactly 100,
// correcting the rounding remainder on the first entry. The generator's
// arithmetic is not trusted; the instruction asking for a 100 sum is
// advisory only.
func NormalizeWeights(criteria []models.WeightedCriterion) []models.WeightedCriterion {
	if len(criteria) == 0 {
		return criteria
	}
	total := 0
	for _, c := range criteria {
		total += c.Weight
	}
	if total == 100 {
		return criteria
	}
	if total <= 0 {
		even := 100 / len(criteria)
		normalized := make([]models.WeightedCriterion, len(criteria))
		for i, c := range criteria {
			normalized[i] = models.WeightedCriterion{Name: c.Name, Weight: even}
		}
		normalized[0].Weight += 100 - even*len(criteria)
		return normalized
	}

	normalized := make([]models.WeightedCriterion, len(criteria))
	sum := 0
	for i, c := range criteria {
		scaled := int(math.Round(float64(c.Weight) * 100.0 / float64(total)))
		normalized[i] = models.WeightedCriterion{Name: c.Name, Weight: scaled}
		sum += scaled
	}
	normalized[0].Weight += 100 - sum
	return normalized
}

// MergeCriteria appends suggestions to the existing list, skipping entries
// that case-insensitively duplicate something already present. Adding a
// duplicate is a no-op.
func MergeCriteria(existing, suggestions []string) []string {
	merged := append([]string(nil), existing...)
	seen := make(map[string]struct{}, len(existing))
	for _, entry := range existing {
		seen[strings.ToLower(strings.TrimSpace(entry))] = struct{}{}
	}
	for _, suggestion := range suggestions {
		key := strings.ToLower(strings.TrimSpace(suggestion))
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		merged = append(merged, suggestion)
	}
	return merged
}

// MergeWeighted is MergeCriteria for weighted entries, keyed by name.
func MergeWeighted(existing, suggestions []models.WeightedCriterion) []models.WeightedCriterion {
	merged := append([]models.WeightedCriterion(nil), existing...)
	seen := make(map[string]struct{}, len(existing))
	for _, entry := range existing {
		seen[strings.ToLower(strings.TrimSpace(entry.Name))] = struct{}{}
	}
	for _, suggestion := range suggestions {
		key := strings.ToLower(strings.TrimSpace(suggestion.Name))
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		merged = append(merged, suggestion)
	}
	return merged
}
