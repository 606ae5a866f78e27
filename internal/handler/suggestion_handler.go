package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ebp-edu/rubricas-api/internal/dto"
	appErrors "github.com/ebp-edu/rubricas-api/pkg/errors"
	"github.com/ebp-edu/rubricas-api/pkg/response"
)

type suggestionService interface {
	Suggest(ctx context.Context, req dto.SuggestCriteriaRequest) (*dto.SuggestCriteriaResponse, error)
}

// SuggestionHandler exposes the criteria suggestion endpoint.
type SuggestionHandler struct {
	service suggestionService
}

// NewSuggestionHandler builds a new handler.
func NewSuggestionHandler(service suggestionService) *SuggestionHandler {
	return &SuggestionHandler{service: service}
}

// Suggest godoc
// @Summary Suggest curricular criteria or weighted aspects
// @Tags Suggestions
// @Accept json
// @Produce json
// @Param payload body dto.SuggestCriteriaRequest true "Partial form context"
// @Success 200 {object} response.Envelope
// @Router /rubrics/suggestions [post]
func (h *SuggestionHandler) Suggest(c *gin.Context) {
	var req dto.SuggestCriteriaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid suggestion payload"))
		return
	}
	result, err := h.service.Suggest(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}
