// Package render は分析・比較結果を表示用セクションとダウンロード用ファイルに変換します。
// 欠けている値は空として扱い、エラーは返しません。
package render

import (
	"strings"

	"github.com/shopspring/decimal"

	"contract_analyzer/internal/feature/contract/domain/entity"
)

const (
	// MaxMajorChanges は表示する重要な変更の最大件数です。
	MaxMajorChanges = 50
	// MaxListItems は確認ポイント・明細・価格ルールの最大件数です。
	MaxListItems = 20

	notAvailable = "n/a"
)

const (
	levelSection    = 2
	levelSubsection = 3
)

// num formats an optional number, "n/a" when absent.
func num(d *decimal.Decimal) string {
	if d == nil {
		return notAvailable
	}
	return d.String()
}

// money prefixes the amount with the currency when one is known.
func money(currency string, d *decimal.Decimal) string {
	return joinNonEmpty(" ", currency, num(d))
}

// optional returns the value or "n/a".
func optional(s *string) string {
	if s == nil {
		return notAvailable
	}
	return *s
}

func joinNonEmpty(sep string, parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

// changeTag builds "type/change", dropping empty parts.
func changeTag(ch entity.MajorChange) string {
	return joinNonEmpty("/", entity.Str(ch.Type), entity.Str(ch.Change))
}

// changeLine is "tag title: note", or "tag title" without a note.
func changeLine(ch entity.MajorChange) string {
	head := joinNonEmpty(" ", changeTag(ch), entity.Str(ch.Title))
	if note := entity.Str(ch.Note); note != "" {
		return head + ": " + note
	}
	return head
}

func yesNo(lang entity.Language, b bool) string {
	if b {
		return lang.T("Ja", "Yes")
	}
	return lang.T("Nee", "No")
}

func firstN[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}
