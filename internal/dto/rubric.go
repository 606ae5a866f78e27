package dto

import "github.com/ebp-edu/rubricas-api/internal/models"

// GenerateRubricRequest is the full form payload submitted for generation.
type GenerateRubricRequest struct {
	models.FormContext
}

// SuggestCriteriaRequest asks the generator to propose criteria for a
// partial context. Existing entries are echoed back so suggestions that
// case-insensitively duplicate them can be dropped server-side.
type SuggestCriteriaRequest struct {
	Type              models.SuggestionKind      `json:"type" validate:"required"`
	Stage             string                     `json:"stage" validate:"required"`
	Course            string                     `json:"course" validate:"required"`
	Subject           string                     `json:"subject" validate:"required"`
	EvaluationElement string                     `json:"evaluation_element" validate:"required"`
	Existing          []string                   `json:"existing,omitempty"`
	ExistingCriteria  []models.WeightedCriterion `json:"existing_criteria,omitempty"`
}

// SuggestCriteriaResponse carries one of the two suggestion payloads
// depending on the requested type.
type SuggestCriteriaResponse struct {
	Type     models.SuggestionKind      `json:"type"`
	Specific []string                   `json:"specific,omitempty"`
	Weighted []models.WeightedCriterion `json:"weighted,omitempty"`
}

// SaveRubricRequest persists an edited rubric as a new store entry,
// mirroring the edit-save flow of the editor.
type SaveRubricRequest struct {
	Rubric   models.Rubric      `json:"rubric" validate:"required"`
	FormData models.FormContext `json:"form_data"`
}

// ExportRubricRequest renders a validated rubric into a downloadable file.
type ExportRubricRequest struct {
	Rubric models.Rubric `json:"rubric" validate:"required"`
	Format string        `json:"format" validate:"required,oneof=csv pdf html"`
}

// ExportRubricResponse returns the signed download location.
type ExportRubricResponse struct {
	URL       string `json:"url"`
	Token     string `json:"token"`
	Format    string `json:"format"`
	ExpiresAt string `json:"expires_at"`
}

// ChatRequest is one free-text message to the pedagogy assistant.
type ChatRequest struct {
	Message string `json:"message" validate:"required"`
}

// ChatResponse is the assistant's reply.
type ChatResponse struct {
	Reply string `json:"reply"`
}
