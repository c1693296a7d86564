// Package entity defines the domain entities for the contract feature.
package entity

import (
	"errors"
	"strings"
)

// Language selects the prompt template and the display labels.
type Language string

const (
	English Language = "English"
	Dutch   Language = "Nederlands"

	// DefaultLanguage is used when no language is given.
	DefaultLanguage = Dutch
)

// ErrUnsupportedLanguage is returned by ParseLanguage for unknown values.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Languages returns the selectable languages in display order.
func Languages() []Language {
	return []Language{English, Dutch}
}

// ParseLanguage accepts the display name or a short code. Empty means DefaultLanguage.
func ParseLanguage(s string) (Language, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return DefaultLanguage, nil
	case "en", "english":
		return English, nil
	case "nl", "nederlands", "dutch":
		return Dutch, nil
	}
	return "", ErrUnsupportedLanguage
}

// OrDefault returns DefaultLanguage for the zero value.
func (l Language) OrDefault() Language {
	if l == "" {
		return DefaultLanguage
	}
	return l
}

// T returns nl for Dutch and en otherwise. The zero value counts as DefaultLanguage.
func (l Language) T(nl, en string) string {
	if l.OrDefault() == Dutch {
		return nl
	}
	return en
}
