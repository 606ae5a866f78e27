package models

// WeightedCriterion is a user-defined evaluable aspect with a percentage weight.
// Weights across a form must sum to 100 before generation is allowed.
type WeightedCriterion struct {
	Name   string `json:"name" validate:"required"`
	Weight int    `json:"weight" validate:"gte=0"`
}

// FormContext captures the pedagogical context entered in the rubric form.
type FormContext struct {
	Stage              string              `json:"stage" validate:"required"`
	Course             string              `json:"course" validate:"required"`
	Subject            string              `json:"subject" validate:"required"`
	EvaluationElement  string              `json:"evaluation_element" validate:"required"`
	PerformanceLevels  []string            `json:"performance_levels" validate:"min=1,dive,required"`
	SpecificCriteria   []string            `json:"specific_criteria" validate:"min=1,dive,required"`
	EvaluationCriteria []WeightedCriterion `json:"evaluation_criteria" validate:"min=1,dive"`
}

// ScaleHeader pairs a performance level name with its score band,
// ordered low to high achievement.
type ScaleHeader struct {
	Level string `json:"level"`
	Score string `json:"score"`
}

// Descriptor describes observable performance for one item at one level.
type Descriptor struct {
	Level       string `json:"level"`
	Description string `json:"description"`
	Score       string `json:"score"`
}

// RubricItem is one evaluated aspect. Weight is always restored from the
// submitted form context, never taken from the generator.
type RubricItem struct {
	ItemName    string       `json:"itemName"`
	Weight      int          `json:"weight"`
	Descriptors []Descriptor `json:"descriptors"`
}

// Rubric is the validated evaluation grid returned to clients and persisted.
type Rubric struct {
	Title            string        `json:"title"`
	ScaleHeaders     []ScaleHeader `json:"scaleHeaders"`
	Items            []RubricItem  `json:"items"`
	SpecificCriteria []string      `json:"specificCriteria"`
}

// SavedRubric is one entry in the bounded rubric store. The ID is the
// creation timestamp in milliseconds rendered as a string.
type SavedRubric struct {
	ID        string      `json:"id"`
	Rubric    Rubric      `json:"rubric"`
	FormData  FormContext `json:"formData"`
	CreatedAt string      `json:"createdAt"`
	Title     string      `json:"title"`
}

// SuggestionKind selects which kind of criteria the generator proposes.
type SuggestionKind string

const (
	// SuggestionSpecific asks for official curricular criteria with numbering.
	SuggestionSpecific SuggestionKind = "specific"
	// SuggestionEvaluation asks for observable aspects with advisory weights.
	SuggestionEvaluation SuggestionKind = "evaluation"
)

// Valid reports whether the kind is one of the supported suggestion modes.
func (k SuggestionKind) Valid() bool {
	return k == SuggestionSpecific || k == SuggestionEvaluation
}
