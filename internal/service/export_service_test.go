package service

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ebp-edu/rubricas-api/internal/models"
	appErrors "github.com/ebp-edu/rubricas-api/pkg/errors"
	"github.com/ebp-edu/rubricas-api/pkg/storage"
)

func sampleRubric() models.Rubric {
	return models.Rubric{
		Title: "Rúbrica: Redacción de un cuento",
		ScaleHeaders: []models.ScaleHeader{
			{Level: "Insuficiente", Score: "0-4"},
			{Level: "Sobresaliente", Score: "9-10"},
		},
		Items: []models.RubricItem{
			{
				ItemName: "Claridad",
				Weight:   60,
				Descriptors: []models.Descriptor{
					{Level: "Insuficiente", Description: "Texto confuso", Score: "0-4"},
					{Level: "Sobresaliente", Description: "Texto muy claro", Score: "9-10"},
				},
			},
			{
				ItemName: "Ortografía",
				Weight:   40,
				Descriptors: []models.Descriptor{
					{Level: "insuficiente", Description: "Muchas faltas", Score: "0-4"},
					{Level: "Sobresaliente", Description: "Sin faltas", Score: "9-10"},
				},
			},
		},
		SpecificCriteria: []string{"2.1. Produce textos escritos coherentes"},
	}
}

func newTestExportService(t *testing.T) *ExportService {
	t.Helper()
	files, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	signer := storage.NewSignedURLSigner("test-secret", time.Hour)
	return NewExportService(files, signer, nil, ExportConfig{APIPrefix: "/api/v1"}, zap.NewNop())
}

func TestBuildGrid(t *testing.T) {
	grid := BuildGrid(sampleRubric())

	assert.Equal(t, "Rúbrica: Redacción de un cuento", grid.Title)
	assert.Equal(t, []string{"Ítem de Evaluación", "Peso", "Insuficiente (0-4)", "Sobresaliente (9-10)"}, grid.Headers)
	require.Len(t, grid.Rows, 2)
	assert.Equal(t, []string{"Claridad", "60%", "Texto confuso", "Texto muy claro"}, grid.Rows[0])
	// descriptor level matching is case-insensitive
	assert.Equal(t, "Muchas faltas", grid.Rows[1][2])
	assert.Equal(t, []string{"2.1. Produce textos escritos coherentes"}, grid.Footnotes)
}

func TestExportRoundTrip(t *testing.T) {
	svc := newTestExportService(t)

	for _, format := range []ExportFormat{FormatCSV, FormatHTML, FormatPDF} {
		result, err := svc.Generate(sampleRubric(), format)
		require.NoError(t, err, string(format))
		assert.Contains(t, result.URL, "/api/v1/export/")
		assert.NotEmpty(t, result.Token)

		file, err := svc.Open(result.Token)
		require.NoError(t, err, string(format))
		payload, err := io.ReadAll(file)
		require.NoError(t, file.Close())
		require.NoError(t, err)
		assert.NotEmpty(t, payload)

		if format == FormatCSV {
			assert.True(t, strings.Contains(string(payload), "Claridad"))
			assert.True(t, strings.Contains(string(payload), "60%"))
		}
	}
}

func TestExportUnsupportedFormat(t *testing.T) {
	svc := newTestExportService(t)

	_, err := svc.Generate(sampleRubric(), ExportFormat("docx"))
	require.Error(t, err)
	assert.True(t, appErrors.IsCode(err, appErrors.ErrValidation.Code))
}

func TestExportEmptyRubric(t *testing.T) {
	svc := newTestExportService(t)

	_, err := svc.Generate(models.Rubric{Title: "Vacía"}, FormatCSV)
	require.Error(t, err)
	assert.True(t, appErrors.IsCode(err, appErrors.ErrValidation.Code))
}

func TestExportOpenRejectsTamperedToken(t *testing.T) {
	svc := newTestExportService(t)

	result, err := svc.Generate(sampleRubric(), FormatCSV)
	require.NoError(t, err)

	_, err = svc.Open(result.Token + "x")
	require.Error(t, err)
	assert.True(t, appErrors.IsCode(err, appErrors.ErrNotFound.Code))
}

func TestContentType(t *testing.T) {
	svc := newTestExportService(t)
	assert.Equal(t, "text/csv; charset=utf-8", svc.ContentType(FormatCSV))
	assert.Equal(t, "application/pdf", svc.ContentType(FormatPDF))
	assert.Equal(t, "text/html; charset=utf-8", svc.ContentType(FormatHTML))
	assert.Equal(t, "application/octet-stream", svc.ContentType(ExportFormat("zip")))
}
