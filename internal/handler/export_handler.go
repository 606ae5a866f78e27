package handler

import (
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/ebp-edu/rubricas-api/internal/dto"
	"github.com/ebp-edu/rubricas-api/internal/models"
	"github.com/ebp-edu/rubricas-api/internal/service"
	appErrors "github.com/ebp-edu/rubricas-api/pkg/errors"
	"github.com/ebp-edu/rubricas-api/pkg/response"
)

type exportService interface {
	Generate(rubric models.Rubric, format service.ExportFormat) (*service.ExportResult, error)
	Open(token string) (*os.File, error)
	ContentType(format service.ExportFormat) string
}

// ExportHandler renders rubrics to downloadable files.
type ExportHandler struct {
	service exportService
}

// NewExportHandler builds a new handler.
func NewExportHandler(service exportService) *ExportHandler {
	return &ExportHandler{service: service}
}

// Export godoc
// @Summary Render a rubric to csv, pdf or html
// @Tags Export
// @Accept json
// @Produce json
// @Param payload body dto.ExportRubricRequest true "Rubric and format"
// @Success 200 {object} response.Envelope
// @Router /rubrics/export [post]
func (h *ExportHandler) Export(c *gin.Context) {
	var req dto.ExportRubricRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid export payload"))
		return
	}
	result, err := h.service.Generate(req.Rubric, service.ExportFormat(req.Format))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.ExportRubricResponse{
		URL:       result.URL,
		Token:     result.Token,
		Format:    string(result.Format),
		ExpiresAt: result.ExpiresAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	})
}

// Download godoc
// @Summary Download a rendered export by signed token
// @Tags Export
// @Param token path string true "Signed download token"
// @Success 200
// @Router /export/{token} [get]
func (h *ExportHandler) Download(c *gin.Context) {
	file, err := h.service.Open(c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close() //nolint:errcheck

	name := filepath.Base(file.Name())
	format := service.ExportFormat(filepath.Ext(name))
	if len(format) > 0 {
		format = format[1:]
	}
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Header("Content-Type", h.service.ContentType(format))
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, file)
}
