package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestMatch(t *testing.T) {
	tr := NewTranslator()

	assert.Equal(t, language.Korean, tr.Match("ko-KR,ko;q=0.9,en;q=0.8"))
	assert.Equal(t, language.English, tr.Match("en-US,en;q=0.9"))
	// Unsupported languages fall back to English
	assert.Equal(t, language.English, tr.Match("fr-FR"))
	assert.Equal(t, language.English, tr.Match(""))
}

func TestTranslate(t *testing.T) {
	tr := NewTranslator()

	assert.Equal(t, "정산 완료", tr.Translate(language.Korean, "workflow.stage.settled"))
	assert.Equal(t, "Settled", tr.Translate(language.English, "workflow.stage.settled"))
}

func TestTranslate_MissingKey(t *testing.T) {
	tr := NewTranslator()

	// Unknown keys come back verbatim
	assert.Equal(t, "no.such.key", tr.Translate(language.Korean, "no.such.key"))
}
