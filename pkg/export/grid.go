package export

// Grid is a flattened rubric table ready for rendering: one header row,
// one row per evaluation item, and optional footnotes (the curricular
// criteria listing) printed after the table.
type Grid struct {
	Title     string
	Headers   []string
	Rows      [][]string
	Footnotes []string
}
