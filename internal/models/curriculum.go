package models

// CurriculumCriterion is one official evaluation criterion from the local
// curricular reference table, keyed by stage, subject and course.
type CurriculumCriterion struct {
	ID          string `json:"id" db:"id"`
	Stage       string `json:"stage" db:"stage"`
	Subject     string `json:"subject" db:"subject"`
	Course      string `json:"course" db:"course"`
	Code        string `json:"code" db:"code"`
	Description string `json:"description" db:"description"`
}

// Label renders the criterion the way it appears in the form,
// numbering prefix first.
func (c CurriculumCriterion) Label() string {
	if c.Code == "" {
		return c.Description
	}
	return c.Code + ". " + c.Description
}
