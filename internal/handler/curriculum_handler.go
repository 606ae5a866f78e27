package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ebp-edu/rubricas-api/internal/models"
	appErrors "github.com/ebp-edu/rubricas-api/pkg/errors"
	"github.com/ebp-edu/rubricas-api/pkg/response"
)

type curriculumLister interface {
	ListByScope(ctx context.Context, stage, subject, course string) ([]models.CurriculumCriterion, error)
}

// CurriculumHandler serves the local curricular reference table.
type CurriculumHandler struct {
	repo curriculumLister
}

// NewCurriculumHandler builds a new handler.
func NewCurriculumHandler(repo curriculumLister) *CurriculumHandler {
	return &CurriculumHandler{repo: repo}
}

// List godoc
// @Summary List official evaluation criteria for a scope
// @Tags Curriculum
// @Produce json
// @Param stage query string true "Educational stage"
// @Param subject query string true "Subject"
// @Param course query string true "Course"
// @Success 200 {object} response.Envelope
// @Router /curriculum [get]
func (h *CurriculumHandler) List(c *gin.Context) {
	stage := strings.TrimSpace(c.Query("stage"))
	subject := strings.TrimSpace(c.Query("subject"))
	course := strings.TrimSpace(c.Query("course"))
	if stage == "" || subject == "" || course == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "stage, subject and course are required"))
		return
	}
	if h.repo == nil {
		response.JSON(c, http.StatusOK, []models.CurriculumCriterion{}, map[string]interface{}{"total": 0})
		return
	}
	criteria, err := h.repo.ListByScope(c.Request.Context(), stage, subject, course)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, http.StatusInternalServerError, "list curriculum criteria"))
		return
	}
	if criteria == nil {
		criteria = []models.CurriculumCriterion{}
	}
	response.JSON(c, http.StatusOK, criteria, map[string]interface{}{"total": len(criteria)})
}
