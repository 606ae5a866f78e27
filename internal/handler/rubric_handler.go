package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ebp-edu/rubricas-api/internal/dto"
	"github.com/ebp-edu/rubricas-api/internal/models"
	appErrors "github.com/ebp-edu/rubricas-api/pkg/errors"
	"github.com/ebp-edu/rubricas-api/pkg/response"
)

type rubricService interface {
	Generate(ctx context.Context, form models.FormContext) (*models.Rubric, error)
}

type storeService interface {
	Save(ctx context.Context, rubric models.Rubric, form models.FormContext) (*models.SavedRubric, error)
	Update(ctx context.Context, id string, rubric models.Rubric, form models.FormContext) (*models.SavedRubric, error)
	List(ctx context.Context) ([]models.SavedRubric, error)
	Get(ctx context.Context, id string) (*models.SavedRubric, error)
	Delete(ctx context.Context, id string) error
}

// RubricHandler exposes generation and saved-rubric endpoints.
type RubricHandler struct {
	rubrics rubricService
	store   storeService
}

// NewRubricHandler builds a new handler.
func NewRubricHandler(rubrics rubricService, store storeService) *RubricHandler {
	return &RubricHandler{rubrics: rubrics, store: store}
}

// Generate godoc
// @Summary Generate a rubric from form context
// @Tags Rubrics
// @Accept json
// @Produce json
// @Param payload body dto.GenerateRubricRequest true "Form context"
// @Success 200 {object} response.Envelope
// @Router /rubrics/generate [post]
func (h *RubricHandler) Generate(c *gin.Context) {
	var req dto.GenerateRubricRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid rubric form payload"))
		return
	}
	rubric, err := h.rubrics.Generate(c.Request.Context(), req.FormContext)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rubric)
}

// Save godoc
// @Summary Save an edited rubric
// @Tags Rubrics
// @Accept json
// @Produce json
// @Param payload body dto.SaveRubricRequest true "Rubric and originating form"
// @Success 201 {object} response.Envelope
// @Router /rubrics/saved [post]
func (h *RubricHandler) Save(c *gin.Context) {
	var req dto.SaveRubricRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid saved rubric payload"))
		return
	}
	if req.Rubric.Title == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "rubric title required"))
		return
	}
	entry, err := h.store.Save(c.Request.Context(), req.Rubric, req.FormData)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, entry)
}

// Update godoc
// @Summary Replace a saved rubric after editing
// @Tags Rubrics
// @Accept json
// @Produce json
// @Param id path string true "Saved rubric ID"
// @Param payload body dto.SaveRubricRequest true "Edited rubric"
// @Success 200 {object} response.Envelope
// @Router /rubrics/saved/{id} [put]
func (h *RubricHandler) Update(c *gin.Context) {
	var req dto.SaveRubricRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid saved rubric payload"))
		return
	}
	if req.Rubric.Title == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "rubric title required"))
		return
	}
	entry, err := h.store.Update(c.Request.Context(), c.Param("id"), req.Rubric, req.FormData)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entry)
}

// List godoc
// @Summary List saved rubrics, newest first
// @Tags Rubrics
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /rubrics/saved [get]
func (h *RubricHandler) List(c *gin.Context) {
	saved, err := h.store.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, saved)
}

// Get godoc
// @Summary Load one saved rubric
// @Tags Rubrics
// @Produce json
// @Param id path string true "Saved rubric ID"
// @Success 200 {object} response.Envelope
// @Router /rubrics/saved/{id} [get]
func (h *RubricHandler) Get(c *gin.Context) {
	entry, err := h.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entry)
}

// Delete godoc
// @Summary Delete one saved rubric
// @Tags Rubrics
// @Param id path string true "Saved rubric ID"
// @Success 204
// @Router /rubrics/saved/{id} [delete]
func (h *RubricHandler) Delete(c *gin.Context) {
	if err := h.store.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
