package entity

import (
	"errors"
	"slices"
)

// ErrUnsupportedModel is returned when a model is not in the provider's allow-list.
var ErrUnsupportedModel = errors.New("unsupported model")

// ModelCatalog is the fixed model allow-list of one LLM provider.
type ModelCatalog struct {
	Provider string
	Models   []string
	Default  string
}

// Provider names.
const (
	ProviderGroq   = "groq"
	ProviderGemini = "gemini"
)

// GroqModels is the allow-list offered for the Groq chat-completions endpoint.
var GroqModels = ModelCatalog{
	Provider: ProviderGroq,
	Models:   []string{"llama-3.3-70b-versatile", "llama-3.1-8b-instant", "mixtral-8x7b-32768"},
	Default:  "llama-3.3-70b-versatile",
}

// GeminiModels is the allow-list offered for the Gemini API.
var GeminiModels = ModelCatalog{
	Provider: ProviderGemini,
	Models:   []string{"gemini-2.5-flash", "gemini-2.5-pro", "gemini-2.0-flash"},
	Default:  "gemini-2.5-flash",
}

// CatalogFor returns the catalog for a provider name.
func CatalogFor(provider string) (ModelCatalog, bool) {
	switch provider {
	case ProviderGroq:
		return GroqModels, true
	case ProviderGemini:
		return GeminiModels, true
	}
	return ModelCatalog{}, false
}

// Resolve returns model if allowed, the default when model is empty,
// and ErrUnsupportedModel otherwise.
func (c ModelCatalog) Resolve(model string) (string, error) {
	if model == "" {
		return c.Default, nil
	}
	if slices.Contains(c.Models, model) {
		return model, nil
	}
	return "", ErrUnsupportedModel
}
