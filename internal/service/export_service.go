package service

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ebp-edu/rubricas-api/internal/models"
	"github.com/ebp-edu/rubricas-api/pkg/errors"
	"github.com/ebp-edu/rubricas-api/pkg/export"
	"github.com/ebp-edu/rubricas-api/pkg/storage"
)

type fileStorage interface {
	Save(filename string, data []byte) (string, error)
	Open(filename string) (*os.File, error)
}

type gridRenderer interface {
	Render(grid export.Grid) ([]byte, error)
}

// ExportFormat names a supported rendering.
type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatPDF  ExportFormat = "pdf"
	FormatHTML ExportFormat = "html"
)

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	APIPrefix string
}

// ExportResult captures successful generation metadata.
type ExportResult struct {
	RelativePath string
	Token        string
	URL          string
	Format       ExportFormat
	ExpiresAt    time.Time
}

// ExportService flattens a validated rubric into a grid, renders it in the
// requested format and persists the file behind a signed download URL.
type ExportService struct {
	storage   fileStorage
	renderers map[ExportFormat]gridRenderer
	signer    *storage.SignedURLSigner
	metrics   *MetricsService
	logger    *zap.Logger
	cfg       ExportConfig
}

// NewExportService constructs an ExportService.
func NewExportService(files fileStorage, signer *storage.SignedURLSigner, metrics *MetricsService, cfg ExportConfig, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		storage: files,
		renderers: map[ExportFormat]gridRenderer{
			FormatCSV:  export.NewCSVExporter(),
			FormatPDF:  export.NewPDFExporter(),
			FormatHTML: export.NewHTMLExporter(),
		},
		signer:  signer,
		metrics: metrics,
		logger:  logger,
		cfg:     cfg,
	}
}

// Generate renders and stores one export.
func (s *ExportService) Generate(rubric models.Rubric, format ExportFormat) (*ExportResult, error) {
	renderer, ok := s.renderers[format]
	if !ok {
		return nil, errors.Clone(errors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
	if len(rubric.Items) == 0 || len(rubric.ScaleHeaders) == 0 {
		return nil, errors.Clone(errors.ErrValidation, "rubric has no items or scale headers")
	}

	payload, err := renderer.Render(BuildGrid(rubric))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "render export")
	}

	exportID := uuid.NewString()
	filename := fmt.Sprintf("%s/%s.%s", time.Now().UTC().Format("2006-01-02"), exportID, format)
	relPath, err := s.storage.Save(filename, payload)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "store export")
	}

	token, expiresAt, err := s.signer.Generate(exportID, relPath)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "sign export url")
	}

	if s.metrics != nil {
		s.metrics.RecordExport(string(format))
	}

	prefix := strings.TrimRight(s.cfg.APIPrefix, "/")
	if prefix == "" {
		prefix = "/api/v1"
	}
	return &ExportResult{
		RelativePath: relPath,
		Token:        token,
		URL:          fmt.Sprintf("%s/export/%s", prefix, token),
		Format:       format,
		ExpiresAt:    expiresAt,
	}, nil
}

// Open validates a signed token and returns the stored file.
func (s *ExportService) Open(token string) (*os.File, error) {
	_, relPath, _, err := s.signer.Parse(token, false)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrNotFound.Code, errors.ErrNotFound.Status, "export link invalid or expired")
	}
	file, err := s.storage.Open(relPath)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrNotFound.Code, errors.ErrNotFound.Status, "export file not found")
	}
	return file, nil
}

// ContentType maps a format to its MIME type.
func (s *ExportService) ContentType(format ExportFormat) string {
	switch format {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatPDF:
		return "application/pdf"
	case FormatHTML:
		return "text/html; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}

// BuildGrid flattens a rubric into the export table: item and weight
// columns, then one column per scale level. Descriptors are matched to
// the header columns by level name.
func BuildGrid(rubric models.Rubric) export.Grid {
	headers := make([]string, 0, len(rubric.ScaleHeaders)+2)
	headers = append(headers, "Ítem de Evaluación", "Peso")
	for _, header := range rubric.ScaleHeaders {
		label := header.Level
		if header.Score != "" {
			label = fmt.Sprintf("%s (%s)", header.Level, header.Score)
		}
		headers = append(headers, label)
	}

	rows := make([][]string, 0, len(rubric.Items))
	for _, item := range rubric.Items {
		row := make([]string, 0, len(headers))
		row = append(row, item.ItemName, fmt.Sprintf("%d%%", item.Weight))
		byLevel := make(map[string]string, len(item.Descriptors))
		for _, descriptor := range item.Descriptors {
			byLevel[strings.ToLower(strings.TrimSpace(descriptor.Level))] = descriptor.Description
		}
		for _, header := range rubric.ScaleHeaders {
			row = append(row, byLevel[strings.ToLower(strings.TrimSpace(header.Level))])
		}
		rows = append(rows, row)
	}

	return export.Grid{
		Title:     rubric.Title,
		Headers:   headers,
		Rows:      rows,
		Footnotes: rubric.SpecificCriteria,
	}
}
