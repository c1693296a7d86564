package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		in      string
		want    Language
		wantErr bool
	}{
		{"", Dutch, false},
		{"English", English, false},
		{" en ", English, false},
		{"Nederlands", Dutch, false},
		{"NL", Dutch, false},
		{"fr", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLanguage(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedLanguage)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLanguage_T(t *testing.T) {
	assert.Equal(t, "nl", Dutch.T("nl", "en"))
	assert.Equal(t, "en", English.T("nl", "en"))
	assert.Equal(t, DefaultLanguage, Language("").OrDefault())
	assert.Equal(t, DefaultLanguage.T("nl", "en"), Language("").T("nl", "en"))
}

func TestModelCatalog_Resolve(t *testing.T) {
	got, err := GroqModels.Resolve("")
	assert.NoError(t, err)
	assert.Equal(t, "llama-3.3-70b-versatile", got)

	got, err = GroqModels.Resolve("mixtral-8x7b-32768")
	assert.NoError(t, err)
	assert.Equal(t, "mixtral-8x7b-32768", got)

	_, err = GroqModels.Resolve("gemini-2.5-flash")
	assert.ErrorIs(t, err, ErrUnsupportedModel)

	c, ok := CatalogFor("gemini")
	assert.True(t, ok)
	assert.Len(t, c.Models, 3)

	_, ok = CatalogFor("openai")
	assert.False(t, ok)
}
