package export

import (
	"bytes"
	"fmt"
	"html/template"
)

// HTMLExporter renders a Grid into a standalone printable HTML document,
// suitable for pasting into a word processor or sending to the browser
// print dialog.
type HTMLExporter struct {
	tmpl *template.Template
}

var htmlTemplate = template.Must(template.New("rubric").Parse(`<!DOCTYPE html>
<html lang="es">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: Arial, Helvetica, sans-serif; margin: 2em; color: #1e293b; }
h1 { font-size: 1.3em; text-align: center; }
table { border-collapse: collapse; width: 100%; margin-top: 1em; }
th, td { border: 1px solid #94a3b8; padding: 6px 8px; font-size: 0.85em; vertical-align: top; }
th { background: #e2e8f0; }
h2 { font-size: 1em; margin-top: 1.5em; }
ul { font-size: 0.85em; }
@media print { body { margin: 0.5em; } }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<table>
<thead><tr>{{range .Headers}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>
{{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{end}}</tbody>
</table>
{{if .Footnotes}}<h2>Criterios de Evaluación</h2>
<ul>
{{range .Footnotes}}<li>{{.}}</li>
{{end}}</ul>
{{end}}</body>
</html>
`))

// NewHTMLExporter constructs an HTML exporter.
func NewHTMLExporter() *HTMLExporter {
	return &HTMLExporter{tmpl: htmlTemplate}
}

// Render produces the HTML document bytes.
func (e *HTMLExporter) Render(grid Grid) ([]byte, error) {
	if len(grid.Headers) == 0 {
		return nil, fmt.Errorf("html requires at least one header")
	}
	buf := &bytes.Buffer{}
	if err := e.tmpl.Execute(buf, grid); err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	return buf.Bytes(), nil
}
