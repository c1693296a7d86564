// Package plaintext はテキストファイル用の厳格なUTF-8デコードと、
// 最終段の不正バイト置換デコードを提供します。
package plaintext

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"contract_analyzer/internal/feature/extraction/domain/entity"
	"contract_analyzer/internal/feature/extraction/usecase"
)

// ErrInvalidUTF8 is returned by UTF8 for input that is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("invalid utf-8")

// UTF8 は厳格なUTF-8デコードです。BOMがあればUTF-16も受け付けます。
type UTF8 struct{}

// Lossy は不正なバイト列をU+FFFDに置き換えてデコードします。失敗しません。
type Lossy struct{}

var (
	_ usecase.Strategy = UTF8{}
	_ usecase.Strategy = Lossy{}
)

func (UTF8) Name() string         { return entity.MethodUTF8 }
func (UTF8) Accepts(string) bool  { return true }
func (Lossy) Name() string        { return entity.MethodLossy }
func (Lossy) Accepts(string) bool { return true }

// Extract decodes data strictly and normalizes it to NFC.
func (UTF8) Extract(ctx context.Context, data []byte) (string, error) {
	decoded, _, err := transform.Bytes(unicode.BOMOverride(transform.Nop), data)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(decoded) {
		return "", ErrInvalidUTF8
	}
	return norm.NFC.String(string(decoded)), nil
}

// Extract decodes data, replacing every ill-formed sequence with U+FFFD.
func (Lossy) Extract(ctx context.Context, data []byte) (string, error) {
	t := transform.Chain(unicode.BOMOverride(transform.Nop), runes.ReplaceIllFormed(), norm.NFC)
	s, _, err := transform.String(t, string(data))
	if err != nil {
		return strings.ToValidUTF8(string(data), string(utf8.RuneError)), nil
	}
	return s, nil
}
