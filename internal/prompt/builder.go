// Package prompt turns form state into the natural-language instruction and
// response schema a generation request is made of. Builders are pure
// functions so the same context always yields the same request.
package prompt

import (
	"fmt"
	"strings"

	"github.com/ebp-edu/rubricas-api/internal/models"
)

// Context is the partial form state the suggestion modes work from.
type Context struct {
	Stage             string
	Course            string
	Subject           string
	EvaluationElement string
}

// BuildRubric produces the full rubric-generation instruction. Level names
// and item names are embedded verbatim and the generator is told to echo
// them exactly; the canonical five-level score scale is spelled out and
// custom level names fall back to a coherent ascending assignment.
func BuildRubric(form models.FormContext) string {
	itemNames := make([]string, len(form.EvaluationCriteria))
	for i, c := range form.EvaluationCriteria {
		itemNames[i] = c.Name
	}

	return fmt.Sprintf(`Eres un experto en pedagogía y diseño curricular. Tu tarea es crear una rúbrica de evaluación detallada, coherente y con puntuaciones.

**Contexto de la Evaluación:**
- **Elemento a evaluar:** %s
- **Etapa Educativa:** %s
- **Curso:** %s
- **Asignatura:** %s
- **Criterios de Evaluación (Currículo LOMLOE):** %s
- **Aspectos Específicos a Evaluar (que serán los ítems de la rúbrica):** %s

**Instrucciones para la Rúbrica:**
1. El título de la rúbrica debe ser conciso y reflejar que se está evaluando "%s" en la asignatura de "%s".
2. Los ítems ('itemName') deben ser **exactamente** los "Aspectos Específicos a Evaluar". Total: **%d**.
3. Usa los niveles, de menor a mayor: **%s** (nombres exactos).
4. Escala estándar:
   - Insuficiente: "0-4"
   - Suficiente: "5"
   - Bien: "6"
   - Notable: "7-8"
   - Sobresaliente: "9-10"
   Si hay niveles personalizados, asígnales puntuación coherente y ascendente.
5. Los encabezados de la escala incluyen nivel y puntuación.
6. Las descripciones por nivel deben ser claras, observables y progresivas, basadas en los criterios LOMLOE.

Devuelve **solo** JSON en el formato del schema.`,
		form.EvaluationElement,
		form.Stage,
		form.Course,
		form.Subject,
		strings.Join(form.SpecificCriteria, "; "),
		strings.Join(itemNames, "; "),
		form.EvaluationElement,
		form.Subject,
		len(form.EvaluationCriteria),
		strings.Join(form.PerformanceLevels, ", "),
	)
}

// BuildSuggestion produces the instruction for one of the two suggestion
// modes. For the specific mode, a non-empty curriculum list constrains the
// generator to select from the official criteria instead of free-generating.
func BuildSuggestion(ctx Context, kind models.SuggestionKind, curriculum []models.CurriculumCriterion) string {
	var task string
	switch kind {
	case models.SuggestionSpecific:
		if len(curriculum) > 0 {
			labels := make([]string, len(curriculum))
			for i, c := range curriculum {
				labels[i] = c.Label()
			}
			task = fmt.Sprintf(`Selecciona de la siguiente lista cerrada los 4 o 5 **Criterios de Evaluación del currículo oficial LOMLOE** más relevantes para evaluar un "%s". Copia cada criterio elegido **textualmente, incluida la numeración oficial**.

Lista oficial:
- %s`, ctx.EvaluationElement, strings.Join(labels, "\n- "))
		} else {
			task = fmt.Sprintf(`Genera una lista de 4 o 5 **Criterios de Evaluación del currículo oficial LOMLOE** relevantes para evaluar un "%s". **Incluye la numeración oficial** (ej: 1.1, 2.3...).
Por ejemplo: "1.1. Comprender e interpretar el sentido global...", "3.2. Producir textos escritos y multimodales..."`, ctx.EvaluationElement)
		}
		return fmt.Sprintf(`%s

Tarea:
%s

Devuelve **solo** un array JSON de strings.`, contextBlock(ctx), task)

	case models.SuggestionEvaluation:
		task = `Genera 4 o 5 **Aspectos observables o destrezas evaluables con una ponderación sugerida** para este contexto. **Asigna "weight" (número)** y que la suma sea **exactamente 100**.
Ej.: [{ "name": "Expresar opiniones de forma argumentada", "weight": 40 }, { "name": "Respetar el turno de palabra", "weight": 30 }, { "name": "Uso de vocabulario específico", "weight": 30 }]`
		return fmt.Sprintf(`%s

Tarea:
%s

Devuelve **solo** un array JSON de objetos { "name": string, "weight": number }.`, contextBlock(ctx), task)
	}

	return ""
}

func contextBlock(ctx Context) string {
	return fmt.Sprintf(`Contexto:
- Etapa: %s
- Asignatura: %s
- Curso: %s
- Elemento a evaluar: %s`, ctx.Stage, ctx.Subject, ctx.Course, ctx.EvaluationElement)
}
