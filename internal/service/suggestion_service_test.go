package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ebp-edu/rubricas-api/internal/dto"
	"github.com/ebp-edu/rubricas-api/internal/models"
	appErrors "github.com/ebp-edu/rubricas-api/pkg/errors"
)

type fakeCurriculumReader struct {
	rows  []models.CurriculumCriterion
	err   error
	calls int
}

func (f *fakeCurriculumReader) ListByScope(_ context.Context, _, _, _ string) ([]models.CurriculumCriterion, error) {
	f.calls++
	return f.rows, f.err
}

func suggestionRequest(kind models.SuggestionKind) dto.SuggestCriteriaRequest {
	return dto.SuggestCriteriaRequest{
		Type:              kind,
		Stage:             "Educación Primaria",
		Course:            "4º",
		Subject:           "Lengua Castellana",
		EvaluationElement: "Redacción de un cuento",
	}
}

func TestSuggestSpecific(t *testing.T) {
	ai := &mockGenerationClient{response: `["2.1. Produce textos coherentes", "2.2. Revisa sus escritos"]`}
	svc := NewSuggestionService(ai, nil, nil, nil, zap.NewNop(), SuggestionConfig{})

	resp, err := svc.Suggest(context.Background(), suggestionRequest(models.SuggestionSpecific))
	require.NoError(t, err)
	assert.Equal(t, models.SuggestionSpecific, resp.Type)
	assert.Equal(t, []string{"2.1. Produce textos coherentes", "2.2. Revisa sus escritos"}, resp.Specific)
	assert.Empty(t, resp.Weighted)
}

func TestSuggestSpecificSkipsExistingDuplicates(t *testing.T) {
	ai := &mockGenerationClient{response: `["2.1. Produce textos coherentes", "2.3. Usa conectores"]`}
	svc := NewSuggestionService(ai, nil, nil, nil, zap.NewNop(), SuggestionConfig{})

	req := suggestionRequest(models.SuggestionSpecific)
	req.Existing = []string{"2.1. produce textos coherentes"}

	resp, err := svc.Suggest(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, []string{"2.1. produce textos coherentes", "2.3. Usa conectores"}, resp.Specific)
}

func TestSuggestSpecificConstrainsToCurriculum(t *testing.T) {
	ai := &mockGenerationClient{response: `["2.1. Produce textos coherentes"]`}
	curriculum := &fakeCurriculumReader{rows: []models.CurriculumCriterion{
		{Code: "2.1", Description: "Produce textos coherentes"},
		{Code: "2.2", Description: "Revisa sus escritos"},
	}}
	svc := NewSuggestionService(ai, curriculum, nil, nil, zap.NewNop(), SuggestionConfig{})

	_, err := svc.Suggest(context.Background(), suggestionRequest(models.SuggestionSpecific))
	require.NoError(t, err)
	assert.Equal(t, 1, curriculum.calls)
	assert.True(t, strings.Contains(ai.instruction, "2.1. Produce textos coherentes"))
	assert.True(t, strings.Contains(ai.instruction, "2.2. Revisa sus escritos"))
}

func TestSuggestCurriculumFailureFallsBack(t *testing.T) {
	ai := &mockGenerationClient{response: `["2.1. Produce textos coherentes"]`}
	curriculum := &fakeCurriculumReader{err: errors.New("db down")}
	svc := NewSuggestionService(ai, curriculum, nil, nil, zap.NewNop(), SuggestionConfig{})

	resp, err := svc.Suggest(context.Background(), suggestionRequest(models.SuggestionSpecific))
	require.NoError(t, err)
	assert.Len(t, resp.Specific, 1)
}

func TestSuggestEvaluationNormalizesWeights(t *testing.T) {
	ai := &mockGenerationClient{response: `[
		{"name": "Claridad", "weight": 30},
		{"name": "Ortografía", "weight": 30},
		{"name": "Creatividad", "weight": 30}
	]`}
	svc := NewSuggestionService(ai, nil, nil, nil, zap.NewNop(), SuggestionConfig{})

	resp, err := svc.Suggest(context.Background(), suggestionRequest(models.SuggestionEvaluation))
	require.NoError(t, err)
	require.Len(t, resp.Weighted, 3)

	total := 0
	for _, c := range resp.Weighted {
		total += c.Weight
	}
	assert.Equal(t, 100, total)
}

func TestSuggestUnknownType(t *testing.T) {
	svc := NewSuggestionService(&mockGenerationClient{}, nil, nil, nil, zap.NewNop(), SuggestionConfig{})

	req := suggestionRequest("otra")
	_, err := svc.Suggest(context.Background(), req)
	require.Error(t, err)
	assert.True(t, appErrors.IsCode(err, appErrors.ErrValidation.Code))
}

func TestSuggestUnknownTypeBoundsMetricLabel(t *testing.T) {
	metrics := NewMetricsService()
	svc := NewSuggestionService(&mockGenerationClient{}, nil, nil, metrics, zap.NewNop(), SuggestionConfig{})

	for _, kind := range []models.SuggestionKind{"otra", "inventada", "../../etc"} {
		_, err := svc.Suggest(context.Background(), suggestionRequest(kind))
		require.Error(t, err)
	}

	recorder := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := recorder.Body.String()

	assert.Contains(t, body, `kind="suggestion_invalid"`)
	assert.NotContains(t, body, "suggestion_otra")
	assert.NotContains(t, body, "suggestion_inventada")
}

func TestDecodeSpecificSuggestions(t *testing.T) {
	suggestions, err := DecodeSpecificSuggestions("```json\n[\"uno\", \"dos\"]\n```")
	require.NoError(t, err)
	assert.Equal(t, []string{"uno", "dos"}, suggestions)

	_, err = DecodeSpecificSuggestions("no es JSON")
	assert.True(t, appErrors.IsCode(err, appErrors.ErrAIParse.Code))

	_, err = DecodeSpecificSuggestions(`{"no": "array"}`)
	assert.True(t, appErrors.IsCode(err, appErrors.ErrAISchema.Code))

	_, err = DecodeSpecificSuggestions(`["uno", 2]`)
	assert.True(t, appErrors.IsCode(err, appErrors.ErrAISchema.Code))
}

func TestDecodeWeightedSuggestions(t *testing.T) {
	suggestions, err := DecodeWeightedSuggestions(`[{"name": "Claridad", "weight": 59.6}]`)
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, 60, suggestions[0].Weight)

	_, err = DecodeWeightedSuggestions(`[{"name": "Claridad"}]`)
	assert.True(t, appErrors.IsCode(err, appErrors.ErrAISchema.Code))

	_, err = DecodeWeightedSuggestions(`[{"weight": 40}]`)
	assert.True(t, appErrors.IsCode(err, appErrors.ErrAISchema.Code))
}

func TestNormalizeWeights(t *testing.T) {
	exact := NormalizeWeights([]models.WeightedCriterion{{Name: "A", Weight: 70}, {Name: "B", Weight: 30}})
	assert.Equal(t, 70, exact[0].Weight)
	assert.Equal(t, 30, exact[1].Weight)

	scaled := NormalizeWeights([]models.WeightedCriterion{{Name: "A", Weight: 1}, {Name: "B", Weight: 1}, {Name: "C", Weight: 1}})
	total := 0
	for _, c := range scaled {
		total += c.Weight
	}
	assert.Equal(t, 100, total)

	zeros := NormalizeWeights([]models.WeightedCriterion{{Name: "A"}, {Name: "B"}, {Name: "C"}})
	total = 0
	for _, c := range zeros {
		total += c.Weight
	}
	assert.Equal(t, 100, total)

	assert.Empty(t, NormalizeWeights(nil))
}

func TestMergeCriteriaDuplicateIsNoOp(t *testing.T) {
	existing := []string{"Claridad", "Ortografía"}
	merged := MergeCriteria(existing, []string{"claridad", "Ortografía "})
	assert.Equal(t, existing, merged)
}

func TestMergeWeighted(t *testing.T) {
	existing := []models.WeightedCriterion{{Name: "Claridad", Weight: 60}}
	merged := MergeWeighted(existing, []models.WeightedCriterion{
		{Name: "CLARIDAD", Weight: 10},
		{Name: "Creatividad", Weight: 40},
	})
	require.Len(t, merged, 2)
	assert.Equal(t, 60, merged[0].Weight)
	assert.Equal(t, "Creatividad", merged[1].Name)
}
