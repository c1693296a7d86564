// Package usecase はcontractフィーチャーのビジネスロジックを実装します。
package usecase

import "errors"

var (
	// ErrMissingAPIKey is returned at call time when the provider credential is not configured.
	ErrMissingAPIKey = errors.New("LLM API key not available: set GROQ_API_KEY or GEMINI_API_KEY")

	// ErrEmptyResponse is returned when the LLM returns no content.
	ErrEmptyResponse = errors.New("empty LLM response")

	// ErrInvalidJSON is returned when the LLM content is not a JSON object.
	ErrInvalidJSON = errors.New("LLM response is not valid JSON")

	// ErrEmptyDocument is returned when there is no text to send.
	ErrEmptyDocument = errors.New("document text is empty")
)
