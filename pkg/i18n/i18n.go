// Package i18n maps error codes to user-facing messages in the languages
// the rubric editor ships with. Lookup is by error code with a per-language
// generic fallback, so new codes degrade gracefully.
package i18n

import (
	"net/http"
	"strings"
)

// Lang identifies a supported UI language.
type Lang string

const (
	LangSpanish Lang = "es"
	LangEnglish Lang = "en"
	LangFrench  Lang = "fr"

	// DefaultLang is Spanish, matching the primary audience of the tool.
	DefaultLang = LangSpanish

	genericKey = "GENERIC"
)

// Parse and schema failures intentionally share one user-facing message:
// the distinction matters in logs, not to the educator.
var messages = map[Lang]map[string]string{
	LangSpanish: {
		"AI_UNAVAILABLE":   "La clave de API de generación no está configurada. Por favor, contacta con el administrador.",
		"AI_NETWORK":       "No se pudo generar la rúbrica desde el servicio de IA.",
		"AI_PARSE":         "Formato de respuesta de la IA inválido.",
		"AI_SCHEMA":        "Formato de respuesta de la IA inválido.",
		"INVALID_WEIGHTS":  "La ponderación total debe ser exactamente 100% para poder generar la rúbrica.",
		"VALIDATION_ERROR": "Los datos del formulario no son válidos.",
		"NOT_FOUND":        "No se encontró la rúbrica solicitada.",
		genericKey:         "Hubo un error al generar la rúbrica. Por favor, inténtalo de nuevo.",
	},
	LangEnglish: {
		"AI_UNAVAILABLE":   "The generation API key is not configured. Please contact the administrator.",
		"AI_NETWORK":       "Could not generate the rubric from the AI service.",
		"AI_PARSE":         "Invalid response format from AI.",
		"AI_SCHEMA":        "Invalid response format from AI.",
		"INVALID_WEIGHTS":  "The total weighting must be exactly 100% to generate the rubric.",
		"VALIDATION_ERROR": "The form data is not valid.",
		"NOT_FOUND":        "The requested rubric was not found.",
		genericKey:         "There was an error generating the rubric. Please try again.",
	},
	LangFrench: {
		"AI_UNAVAILABLE":   "La clé d'API de génération n'est pas configurée. Veuillez contacter l'administrateur.",
		"AI_NETWORK":       "Impossible de générer la grille depuis le service d'IA.",
		"AI_PARSE":         "Format de réponse de l'IA invalide.",
		"AI_SCHEMA":        "Format de réponse de l'IA invalide.",
		"INVALID_WEIGHTS":  "La pondération totale doit être exactement de 100% pour générer la grille.",
		"VALIDATION_ERROR": "Les données du formulaire ne sont pas valides.",
		"NOT_FOUND":        "La grille demandée est introuvable.",
		genericKey:         "Une erreur est survenue lors de la génération de la grille. Veuillez réessayer.",
	},
}

// Message returns the localized message for an error code, falling back to
// the generic message of the language when the code has no translation.
func Message(lang Lang, code string) string {
	table, ok := messages[lang]
	if !ok {
		table = messages[DefaultLang]
	}
	if msg, ok := table[code]; ok {
		return msg
	}
	return table[genericKey]
}

// ParseLang normalises a raw language tag to a supported Lang.
func ParseLang(raw string) Lang {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if idx := strings.IndexAny(raw, "-_;,"); idx > 0 {
		raw = raw[:idx]
	}
	switch Lang(raw) {
	case LangSpanish, LangEnglish, LangFrench:
		return Lang(raw)
	default:
		return DefaultLang
	}
}

// FromRequest picks the language from the lang query parameter, then the
// Accept-Language header, then the default.
func FromRequest(r *http.Request) Lang {
	if r == nil {
		return DefaultLang
	}
	if q := r.URL.Query().Get("lang"); q != "" {
		return ParseLang(q)
	}
	if h := r.Header.Get("Accept-Language"); h != "" {
		return ParseLang(h)
	}
	return DefaultLang
}
