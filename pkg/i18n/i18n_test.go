package i18n

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessageLookup(t *testing.T) {
	assert.Equal(t, "La ponderación total debe ser exactamente 100% para poder generar la rúbrica.", Message(LangSpanish, "INVALID_WEIGHTS"))
	assert.Equal(t, "The total weighting must be exactly 100% to generate the rubric.", Message(LangEnglish, "INVALID_WEIGHTS"))
	assert.Equal(t, "La pondération totale doit être exactement de 100% pour générer la grille.", Message(LangFrench, "INVALID_WEIGHTS"))
}

func TestMessageParseAndSchemaAreIdentical(t *testing.T) {
	for _, lang := range []Lang{LangSpanish, LangEnglish, LangFrench} {
		assert.Equal(t, Message(lang, "AI_PARSE"), Message(lang, "AI_SCHEMA"), string(lang))
	}
}

func TestMessageFallsBackToGeneric(t *testing.T) {
	assert.Equal(t, "Hubo un error al generar la rúbrica. Por favor, inténtalo de nuevo.", Message(LangSpanish, "SOMETHING_NEW"))
	assert.Equal(t, "There was an error generating the rubric. Please try again.", Message(LangEnglish, "INTERNAL_ERROR"))
}

func TestMessageUnknownLanguageUsesDefault(t *testing.T) {
	assert.Equal(t, Message(DefaultLang, "NOT_FOUND"), Message(Lang("de"), "NOT_FOUND"))
}

func TestParseLang(t *testing.T) {
	assert.Equal(t, LangEnglish, ParseLang("en"))
	assert.Equal(t, LangEnglish, ParseLang("EN-US"))
	assert.Equal(t, LangFrench, ParseLang("fr-FR,fr;q=0.9"))
	assert.Equal(t, DefaultLang, ParseLang("de"))
	assert.Equal(t, DefaultLang, ParseLang(""))
}

func TestFromRequest(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/v1/rubrics/generate?lang=en", nil)
	r.Header.Set("Accept-Language", "fr")
	assert.Equal(t, LangEnglish, FromRequest(r))

	r = httptest.NewRequest("GET", "/api/v1/rubrics/generate", nil)
	r.Header.Set("Accept-Language", "fr-FR,fr;q=0.9,en;q=0.8")
	assert.Equal(t, LangFrench, FromRequest(r))

	r = httptest.NewRequest("GET", "/api/v1/rubrics/generate", nil)
	assert.Equal(t, DefaultLang, FromRequest(r))

	assert.Equal(t, DefaultLang, FromRequest(nil))
}
