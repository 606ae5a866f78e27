package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	appErrors "github.com/ebp-edu/rubricas-api/pkg/errors"
)

type textClient interface {
	GenerateText(ctx context.Context, instruction string, temperature float64) (string, error)
}

// ChatService is the free-text pedagogy assistant that accompanies the
// rubric editor. No response schema: the reply is shown as-is.
type ChatService struct {
	ai          textClient
	logger      *zap.Logger
	temperature float64
}

// NewChatService constructs the chat helper.
func NewChatService(ai textClient, logger *zap.Logger, temperature float64) *ChatService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if temperature <= 0 {
		temperature = 0.7
	}
	return &ChatService{ai: ai, logger: logger, temperature: temperature}
}

// Reply answers one message.
func (s *ChatService) Reply(ctx context.Context, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", appErrors.Clone(appErrors.ErrValidation, "empty chat message")
	}
	if s.ai == nil {
		return "", appErrors.Clone(appErrors.ErrAIUnavailable, "")
	}

	instruction := fmt.Sprintf(`Eres un asistente experto en pedagogía y evaluación educativa que ayuda a docentes a diseñar rúbricas. Responde de forma breve, práctica y en el idioma de la pregunta.

Pregunta del docente: %s`, message)

	reply, err := s.ai.GenerateText(ctx, instruction, s.temperature)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(reply), nil
}
