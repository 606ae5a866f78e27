package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/ebp-edu/rubricas-api/internal/models"
	"github.com/ebp-edu/rubricas-api/internal/prompt"
	appErrors "github.com/ebp-edu/rubricas-api/pkg/errors"
)

type generationClient interface {
	GenerateJSON(ctx context.Context, instruction string, schema *prompt.Schema, temperature float64) (string, error)
}

type rubricSaver interface {
	Save(ctx context.Context, rubric models.Rubric, form models.FormContext) (*models.SavedRubric, error)
}

// RubricConfig tunes generation behaviour.
type RubricConfig struct {
	Temperature float64
}

// RubricService owns the generation pipeline: boundary validation of the
// form, prompt construction, one generation call, and validation plus
// normalization of the structured response. The generator is treated as an
// untrusted proposal source; every numeric weight is reconciled against
// the submitted form before the rubric leaves this service.
type RubricService struct {
	ai        generationClient
	store     rubricSaver
	validator *validator.Validate
	metrics   *MetricsService
	logger    *zap.Logger
	cfg       RubricConfig
}

// NewRubricService constructs the service. A nil generation client means
// the credential was absent at startup; generation then fails with a
// configuration error while the rest of the API stays up.
func NewRubricService(ai generationClient, store rubricSaver, validate *validator.Validate, metrics *MetricsService, logger *zap.Logger, cfg RubricConfig) *RubricService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = 0.8
	}
	return &RubricService{ai: ai, store: store, validator: validate, metrics: metrics, logger: logger, cfg: cfg}
}

// Generate runs the full pipeline and persists the result. A store failure
// after a successful generation is logged, not surfaced: the educator still
// gets their rubric.
func (s *RubricService) Generate(ctx context.Context, form models.FormContext) (*models.Rubric, error) {
	start := time.Now()
	rubric, err := s.generate(ctx, form)
	if s.metrics != nil {
		s.metrics.ObserveGeneration("rubric", outcomeLabel(err), time.Since(start))
	}
	if err != nil {
		return nil, err
	}

	if s.store != nil {
		if _, saveErr := s.store.Save(ctx, *rubric, form); saveErr != nil {
			s.logger.Warn("failed to persist generated rubric", zap.Error(saveErr))
		}
	}
	return rubric, nil
}

func (s *RubricService) generate(ctx context.Context, form models.FormContext) (*models.Rubric, error) {
	if err := s.ValidateForm(form); err != nil {
		return nil, err
	}
	if s.ai == nil {
		return nil, appErrors.Clone(appErrors.ErrAIUnavailable, "")
	}

	instruction := prompt.BuildRubric(form)
	raw, err := s.ai.GenerateJSON(ctx, instruction, prompt.RubricSchema(), s.cfg.Temperature)
	if err != nil {
		return nil, err
	}

	return s.DecodeRubric(raw, form)
}

// ValidateForm enforces the submission invariants: all context fields
// present, at least one level and one weighted criterion, weights summing
// to exactly 100, and no case-insensitive duplicate level or item names.
func (s *RubricService) ValidateForm(form models.FormContext) error {
	if err := s.validator.Struct(form); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid rubric form")
	}

	sum := 0
	seen := make(map[string]struct{}, len(form.EvaluationCriteria))
	for _, criterion := range form.EvaluationCriteria {
		sum += criterion.Weight
		key := strings.ToLower(strings.TrimSpace(criterion.Name))
		if _, dup := seen[key]; dup {
			return appErrors.Clone(appErrors.ErrValidation, "duplicate criterion name: "+criterion.Name)
		}
		seen[key] = struct{}{}
	}
	if sum != 100 {
		return appErrors.Clone(appErrors.ErrInvalidWeights, "")
	}

	levels := make(map[string]struct{}, len(form.PerformanceLevels))
	for _, level := range form.PerformanceLevels {
		key := strings.ToLower(strings.TrimSpace(level))
		if _, dup := levels[key]; dup {
			return appErrors.Clone(appErrors.ErrValidation, "duplicate performance level: "+level)
		}
		levels[key] = struct{}{}
	}
	return nil
}

// rawRubric distinguishes absent fields from empty ones so parse failures
// and shape failures stay separate error kinds.
type rawRubric struct {
	Title        *string               `json:"title"`
	ScaleHeaders *[]models.ScaleHeader `json:"scaleHeaders"`
	Items        *[]rawRubricItem      `json:"items"`
}

type rawRubricItem struct {
	ItemName    string              `json:"itemName"`
	Descriptors []models.Descriptor `json:"descriptors"`
}

// DecodeRubric turns raw generation text into a validated Rubric. Fences
// and BOM are stripped first; unparseable text is a parse
// error, parseable text with the wrong shape is a schema error. Weights
// are restored from the form by case-insensitive item-name lookup and the
// authoritative specific criteria replace whatever the generator echoed.
func (s *RubricService) DecodeRubric(raw string, form models.FormContext) (*models.Rubric, error) {
	clean := SanitizePayload(raw)
	if !json.Valid([]byte(clean)) {
		return nil, appErrors.Clone(appErrors.ErrAIParse, "")
	}

	var parsed rawRubric
	if err := json.Unmarshal([]byte(clean), &parsed); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrAISchema.Code, appErrors.ErrAISchema.Status, appErrors.ErrAISchema.Message)
	}
	if parsed.Title == nil || *parsed.Title == "" {
		return nil, appErrors.Clone(appErrors.ErrAISchema, "missing rubric title")
	}
	if parsed.Items == nil {
		return nil, appErrors.Clone(appErrors.ErrAISchema, "missing rubric items")
	}
	if parsed.ScaleHeaders == nil || len(*parsed.ScaleHeaders) == 0 {
		return nil, appErrors.Clone(appErrors.ErrAISchema, "missing scale headers")
	}

	headers := alignScaleHeaders(*parsed.ScaleHeaders, form.PerformanceLevels)

	if len(*parsed.Items) != len(form.EvaluationCriteria) {
		s.logger.Warn("generated item count does not match requested criteria",
			zap.Int("requested", len(form.EvaluationCriteria)),
			zap.Int("returned", len(*parsed.Items)))
	}

	weights := make(map[string]int, len(form.EvaluationCriteria))
	for _, criterion := range form.EvaluationCriteria {
		weights[strings.ToLower(strings.TrimSpace(criterion.Name))] = criterion.Weight
	}

	items := make([]models.RubricItem, 0, len(*parsed.Items))
	for _, item := range *parsed.Items {
		weight, matched := weights[strings.ToLower(strings.TrimSpace(item.ItemName))]
		if !matched {
			s.logger.Warn("generated item has no matching criterion, weight set to 0",
				zap.String("item", item.ItemName))
		}
		if len(item.Descriptors) != len(headers) {
			s.logger.Warn("descriptor count does not match level count",
				zap.String("item", item.ItemName),
				zap.Int("levels", len(headers)),
				zap.Int("descriptors", len(item.Descriptors)))
		}
		items = append(items, models.RubricItem{
			ItemName:    item.ItemName,
			Weight:      weight,
			Descriptors: alignDescriptors(item.Descriptors, headers),
		})
	}

	return &models.Rubric{
		Title:            *parsed.Title,
		ScaleHeaders:     headers,
		Items:            items,
		SpecificCriteria: form.SpecificCriteria,
	}, nil
}

// SanitizePayload strips a UTF-8 BOM and surrounding markdown code fences,
// with or without a language tag. Tolerant parsing only; malformed content
// still fails downstream.
func SanitizePayload(raw string) string {
	text := strings.TrimSpace(strings.TrimPrefix(raw, "\uFEFF"))
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		// drop the fence line, including any language tag such as "json"
		text = text[idx+1:]
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}

// alignScaleHeaders reorders the generated headers to the submitted level
// order when they are a case-insensitive permutation of it. Otherwise the
// generated order is kept as-is.
func alignScaleHeaders(headers []models.ScaleHeader, levels []string) []models.ScaleHeader {
	if len(headers) != len(levels) {
		return headers
	}
	byLevel := make(map[string]models.ScaleHeader, len(headers))
	for _, header := range headers {
		byLevel[strings.ToLower(strings.TrimSpace(header.Level))] = header
	}
	if len(byLevel) != len(levels) {
		return headers
	}
	aligned := make([]models.ScaleHeader, 0, len(levels))
	for _, level := range levels {
		header, ok := byLevel[strings.ToLower(strings.TrimSpace(level))]
		if !ok {
			return headers
		}
		aligned = append(aligned, header)
	}
	return aligned
}

// alignDescriptors orders an item's descriptors to match the scale header
// order where level names line up. Unmatched and duplicate-level descriptors
// keep their original order at the tail; no descriptor is dropped.
func alignDescriptors(descriptors []models.Descriptor, headers []models.ScaleHeader) []models.Descriptor {
	if len(descriptors) == 0 {
		return descriptors
	}
	firstByLevel := make(map[string]int, len(descriptors))
	for i, d := range descriptors {
		key := strings.ToLower(strings.TrimSpace(d.Level))
		if _, exists := firstByLevel[key]; !exists {
			firstByLevel[key] = i
		}
	}
	taken := make([]bool, len(descriptors))
	aligned := make([]models.Descriptor, 0, len(descriptors))
	for _, header := range headers {
		key := strings.ToLower(strings.TrimSpace(header.Level))
		if i, ok := firstByLevel[key]; ok && !taken[i] {
			aligned = append(aligned, descriptors[i])
			taken[i] = true
		}
	}
	for i, d := range descriptors {
		if !taken[i] {
			aligned = append(aligned, d)
		}
	}
	return aligned
}

func outcomeLabel(err error) string {
	if err == nil {
		return "success"
	}
	return strings.ToLower(appErrors.FromError(err).Code)
}
