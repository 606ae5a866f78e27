package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ebp-edu/rubricas-api/internal/models"
	"github.com/ebp-edu/rubricas-api/internal/prompt"
	appErrors "github.com/ebp-edu/rubricas-api/pkg/errors"
)

type mockGenerationClient struct {
	response    string
	err         error
	calls       int
	instruction string
	schema      *prompt.Schema
}

func (m *mockGenerationClient) GenerateJSON(_ context.Context, instruction string, schema *prompt.Schema, _ float64) (string, error) {
	m.calls++
	m.instruction = instruction
	m.schema = schema
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

type mockRubricSaver struct {
	saved []models.SavedRubric
	err   error
	calls int
}

func (m *mockRubricSaver) Save(_ context.Context, rubric models.Rubric, form models.FormContext) (*models.SavedRubric, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	entry := models.SavedRubric{ID: "1", Rubric: rubric, FormData: form, Title: rubric.Title}
	m.saved = append(m.saved, entry)
	return &entry, nil
}

func validForm() models.FormContext {
	return models.FormContext{
		Stage:             "Educación Primaria",
		Course:            "4º",
		Subject:           "Lengua Castellana",
		EvaluationElement: "Redacción de un cuento",
		PerformanceLevels: []string{"Insuficiente", "Suficiente", "Notable", "Sobresaliente"},
		SpecificCriteria:  []string{"2.1. Produce textos escritos coherentes"},
		EvaluationCriteria: []models.WeightedCriterion{
			{Name: "Claridad", Weight: 60},
			{Name: "Ortografía", Weight: 40},
		},
	}
}

const generatedRubric = `{
	"title": "Rúbrica: Redacción de un cuento",
	"scaleHeaders": [
		{"level": "Insuficiente", "score": "0-4"},
		{"level": "Suficiente", "score": "5-6"},
		{"level": "Notable", "score": "7-8"},
		{"level": "Sobresaliente", "score": "9-10"}
	],
	"items": [
		{"itemName": "Claridad", "weight": 25, "descriptors": [
			{"level": "Insuficiente", "description": "Texto confuso", "score": "0-4"},
			{"level": "Suficiente", "description": "Texto comprensible", "score": "5-6"},
			{"level": "Notable", "description": "Texto claro", "score": "7-8"},
			{"level": "Sobresaliente", "description": "Texto muy claro", "score": "9-10"}
		]},
		{"itemName": "Ortografía", "weight": 75, "descriptors": [
			{"level": "Insuficiente", "description": "Muchas faltas", "score": "0-4"},
			{"level": "Suficiente", "description": "Algunas faltas", "score": "5-6"},
			{"level": "Notable", "description": "Pocas faltas", "score": "7-8"},
			{"level": "Sobresaliente", "description": "Sin faltas", "score": "9-10"}
		]}
	]
}`

func TestGenerateRestoresFormWeights(t *testing.T) {
	ai := &mockGenerationClient{response: generatedRubric}
	store := &mockRubricSaver{}
	svc := NewRubricService(ai, store, nil, nil, zap.NewNop(), RubricConfig{})

	rubric, err := svc.Generate(context.Background(), validForm())
	require.NoError(t, err)
	require.Len(t, rubric.Items, 2)

	// the generator proposed 25/75 but the form said 60/40
	assert.Equal(t, 60, rubric.Items[0].Weight)
	assert.Equal(t, 40, rubric.Items[1].Weight)
	assert.Equal(t, []string{"2.1. Produce textos escritos coherentes"}, rubric.SpecificCriteria)
	assert.Equal(t, 1, store.calls)
}

func TestGenerateFiveLevelScale(t *testing.T) {
	ai := &mockGenerationClient{response: `{
		"title": "Rúbrica: Redacción de un cuento",
		"scaleHeaders": [
			{"level": "Insuficiente", "score": "0-2"},
			{"level": "Suficiente", "score": "3-4"},
			{"level": "Bien", "score": "5-6"},
			{"level": "Notable", "score": "7-8"},
			{"level": "Sobresaliente", "score": "9-10"}
		],
		"items": [
			{"itemName": "Claridad", "weight": 20, "descriptors": []},
			{"itemName": "Ortografía", "weight": 80, "descriptors": []}
		]
	}`}
	form := validForm()
	form.PerformanceLevels = []string{"Insuficiente", "Suficiente", "Bien", "Notable", "Sobresaliente"}

	svc := NewRubricService(ai, nil, nil, nil, zap.NewNop(), RubricConfig{})
	rubric, err := svc.Generate(context.Background(), form)
	require.NoError(t, err)

	require.Len(t, rubric.ScaleHeaders, 5)
	for i, level := range form.PerformanceLevels {
		assert.Equal(t, level, rubric.ScaleHeaders[i].Level)
	}
	require.Len(t, rubric.Items, 2)
	assert.Equal(t, 60, rubric.Items[0].Weight)
	assert.Equal(t, 40, rubric.Items[1].Weight)
}

func TestGenerateWeightLookupIsCaseInsensitive(t *testing.T) {
	ai := &mockGenerationClient{response: `{
		"title": "Rúbrica",
		"scaleHeaders": [{"level": "Insuficiente", "score": "0-4"}],
		"items": [{"itemName": "CLARIDAD", "descriptors": []}]
	}`}
	form := validForm()
	form.PerformanceLevels = []string{"Insuficiente"}
	form.EvaluationCriteria = []models.WeightedCriterion{{Name: "Claridad", Weight: 100}}

	svc := NewRubricService(ai, nil, nil, nil, zap.NewNop(), RubricConfig{})
	rubric, err := svc.Generate(context.Background(), form)
	require.NoError(t, err)
	assert.Equal(t, 100, rubric.Items[0].Weight)
}

func TestGenerateUnmatchedItemGetsZeroWeight(t *testing.T) {
	ai := &mockGenerationClient{response: `{
		"title": "Rúbrica",
		"scaleHeaders": [{"level": "Insuficiente", "score": "0-4"}],
		"items": [{"itemName": "Inventado", "weight": 50, "descriptors": []}]
	}`}
	form := validForm()
	form.PerformanceLevels = []string{"Insuficiente"}
	form.EvaluationCriteria = []models.WeightedCriterion{{Name: "Claridad", Weight: 100}}

	svc := NewRubricService(ai, nil, nil, nil, zap.NewNop(), RubricConfig{})
	rubric, err := svc.Generate(context.Background(), form)
	require.NoError(t, err)
	assert.Equal(t, 0, rubric.Items[0].Weight)
}

func TestGenerateReordersScaleHeaders(t *testing.T) {
	ai := &mockGenerationClient{response: `{
		"title": "Rúbrica",
		"scaleHeaders": [
			{"level": "Sobresaliente", "score": "9-10"},
			{"level": "Insuficiente", "score": "0-4"}
		],
		"items": [{"itemName": "Claridad", "descriptors": [
			{"level": "Sobresaliente", "description": "Muy claro", "score": "9-10"},
			{"level": "Insuficiente", "description": "Confuso", "score": "0-4"}
		]}]
	}`}
	form := validForm()
	form.PerformanceLevels = []string{"Insuficiente", "Sobresaliente"}
	form.EvaluationCriteria = []models.WeightedCriterion{{Name: "Claridad", Weight: 100}}

	svc := NewRubricService(ai, nil, nil, nil, zap.NewNop(), RubricConfig{})
	rubric, err := svc.Generate(context.Background(), form)
	require.NoError(t, err)

	require.Len(t, rubric.ScaleHeaders, 2)
	assert.Equal(t, "Insuficiente", rubric.ScaleHeaders[0].Level)
	assert.Equal(t, "Sobresaliente", rubric.ScaleHeaders[1].Level)
	// descriptors follow the header order
	assert.Equal(t, "Confuso", rubric.Items[0].Descriptors[0].Description)
	assert.Equal(t, "Muy claro", rubric.Items[0].Descriptors[1].Description)
}

func TestAlignDescriptorsKeepsDuplicateLevels(t *testing.T) {
	headers := []models.ScaleHeader{
		{Level: "Insuficiente", Score: "0-4"},
		{Level: "Sobresaliente", Score: "9-10"},
	}
	descriptors := []models.Descriptor{
		{Level: "Sobresaliente", Description: "Muy claro", Score: "9-10"},
		{Level: "Insuficiente", Description: "Confuso", Score: "0-4"},
		{Level: "sobresaliente", Description: "Repetido", Score: "9-10"},
	}

	aligned := alignDescriptors(descriptors, headers)
	require.Len(t, aligned, 3)
	assert.Equal(t, "Confuso", aligned[0].Description)
	assert.Equal(t, "Muy claro", aligned[1].Description)
	assert.Equal(t, "Repetido", aligned[2].Description)
}

func TestGenerateStoreFailureIsNotFatal(t *testing.T) {
	ai := &mockGenerationClient{response: generatedRubric}
	store := &mockRubricSaver{err: errors.New("redis down")}
	svc := NewRubricService(ai, store, nil, nil, zap.NewNop(), RubricConfig{})

	rubric, err := svc.Generate(context.Background(), validForm())
	require.NoError(t, err)
	assert.NotNil(t, rubric)
	assert.Equal(t, 1, store.calls)
}

func TestGenerateWithoutClientFailsUnavailable(t *testing.T) {
	svc := NewRubricService(nil, nil, nil, nil, zap.NewNop(), RubricConfig{})
	_, err := svc.Generate(context.Background(), validForm())
	require.Error(t, err)
	assert.True(t, appErrors.IsCode(err, appErrors.ErrAIUnavailable.Code))
}

func TestValidateFormWeightSum(t *testing.T) {
	svc := NewRubricService(nil, nil, nil, nil, zap.NewNop(), RubricConfig{})

	form := validForm()
	form.EvaluationCriteria = []models.WeightedCriterion{
		{Name: "Claridad", Weight: 60},
		{Name: "Ortografía", Weight: 30},
	}
	err := svc.ValidateForm(form)
	require.Error(t, err)
	assert.True(t, appErrors.IsCode(err, appErrors.ErrInvalidWeights.Code))

	require.NoError(t, svc.ValidateForm(validForm()))
}

func TestValidateFormDuplicateNames(t *testing.T) {
	svc := NewRubricService(nil, nil, nil, nil, zap.NewNop(), RubricConfig{})

	form := validForm()
	form.EvaluationCriteria = []models.WeightedCriterion{
		{Name: "Claridad", Weight: 50},
		{Name: "claridad ", Weight: 50},
	}
	err := svc.ValidateForm(form)
	require.Error(t, err)
	assert.True(t, appErrors.IsCode(err, appErrors.ErrValidation.Code))

	form = validForm()
	form.PerformanceLevels = []string{"Notable", "NOTABLE"}
	err = svc.ValidateForm(form)
	require.Error(t, err)
	assert.True(t, appErrors.IsCode(err, appErrors.ErrValidation.Code))
}

func TestValidateFormMissingFields(t *testing.T) {
	svc := NewRubricService(nil, nil, nil, nil, zap.NewNop(), RubricConfig{})

	form := validForm()
	form.Subject = ""
	err := svc.ValidateForm(form)
	require.Error(t, err)
	assert.True(t, appErrors.IsCode(err, appErrors.ErrValidation.Code))
}

func TestDecodeRubricStripsFences(t *testing.T) {
	svc := NewRubricService(nil, nil, nil, nil, zap.NewNop(), RubricConfig{})

	fenced := "```json\n" + generatedRubric + "\n```"
	rubric, err := svc.DecodeRubric(fenced, validForm())
	require.NoError(t, err)
	assert.Equal(t, "Rúbrica: Redacción de un cuento", rubric.Title)
}

func TestDecodeRubricParseError(t *testing.T) {
	svc := NewRubricService(nil, nil, nil, nil, zap.NewNop(), RubricConfig{})

	_, err := svc.DecodeRubric("esto no es JSON", validForm())
	require.Error(t, err)
	assert.True(t, appErrors.IsCode(err, appErrors.ErrAIParse.Code))
}

func TestDecodeRubricSchemaErrors(t *testing.T) {
	svc := NewRubricService(nil, nil, nil, nil, zap.NewNop(), RubricConfig{})

	cases := map[string]string{
		"missing title":   `{"scaleHeaders": [{"level": "A", "score": "1"}], "items": []}`,
		"missing items":   `{"title": "Rúbrica", "scaleHeaders": [{"level": "A", "score": "1"}]}`,
		"missing headers": `{"title": "Rúbrica", "items": []}`,
		"empty headers":   `{"title": "Rúbrica", "scaleHeaders": [], "items": []}`,
	}
	for name, payload := range cases {
		_, err := svc.DecodeRubric(payload, validForm())
		require.Error(t, err, name)
		assert.True(t, appErrors.IsCode(err, appErrors.ErrAISchema.Code), name)
	}
}

func TestSanitizePayload(t *testing.T) {
	assert.Equal(t, `{"a":1}`, SanitizePayload("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, SanitizePayload("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, SanitizePayload("\uFEFF{\"a\":1}"))
	assert.Equal(t, `{"a":1}`, SanitizePayload("  {\"a\":1}  "))
}
