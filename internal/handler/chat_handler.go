package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ebp-edu/rubricas-api/internal/dto"
	appErrors "github.com/ebp-edu/rubricas-api/pkg/errors"
	"github.com/ebp-edu/rubricas-api/pkg/response"
)

type chatService interface {
	Reply(ctx context.Context, message string) (string, error)
}

// ChatHandler exposes the free-text pedagogy assistant.
type ChatHandler struct {
	service chatService
}

// NewChatHandler builds a new handler.
func NewChatHandler(service chatService) *ChatHandler {
	return &ChatHandler{service: service}
}

// Chat godoc
// @Summary Ask the pedagogy assistant
// @Tags Chat
// @Accept json
// @Produce json
// @Param payload body dto.ChatRequest true "Message"
// @Success 200 {object} response.Envelope
// @Router /chat [post]
func (h *ChatHandler) Chat(c *gin.Context) {
	var req dto.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid chat payload"))
		return
	}
	reply, err := h.service.Reply(c.Request.Context(), req.Message)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.ChatResponse{Reply: reply})
}
