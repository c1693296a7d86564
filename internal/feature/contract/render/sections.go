package render

import (
	"contract_analyzer/internal/api"
	"contract_analyzer/internal/feature/contract/domain/entity"
)

// Analysis は単一分析をKey clauses / Risks / Recommendationsの3セクションにします。
func Analysis(lang entity.Language, a *entity.Analysis) []api.Section {
	return []api.Section{
		bulletSection(lang.T("Belangrijkste clausules", "Key clauses"), a.KeyClauses),
		bulletSection(lang.T("Risico's", "Risks"), a.Risks),
		bulletSection(lang.T("Aanbevelingen", "Recommendations"), a.Recommendations),
	}
}

// Comparison は比較結果を表示順のセクションにします。
// 確認ポイントは空なら省略し、料金比較はpricing_compareがある場合のみ出力します。
func Comparison(lang entity.Language, c *entity.Comparison) []api.Section {
	changes := api.Section{
		Heading: lang.T("Grote wijzigingen", "Major changes"),
		Level:   levelSection,
		Lines:   []api.Line{},
	}
	for _, ch := range firstN(c.MajorChanges, MaxMajorChanges) {
		line := api.Line{Text: changeLine(ch)}
		if ch.Impact != nil && *ch.Impact != "" {
			line.Details = append(line.Details, "Impact: "+*ch.Impact)
		}
		if ch.Before != nil && *ch.Before != "" {
			line.Details = append(line.Details, "Before: "+*ch.Before)
		}
		if ch.After != nil && *ch.After != "" {
			line.Details = append(line.Details, "After: "+*ch.After)
		}
		changes.Lines = append(changes.Lines, line)
	}

	sections := []api.Section{changes}

	assessment := api.Section{Heading: lang.T("Eindoordeel", "Overall assessment"), Level: levelSection, Lines: []api.Line{}}
	if s := entity.Str(c.OverallAssessment); s != "" {
		assessment.Lines = append(assessment.Lines, api.Line{Text: s})
	}
	sections = append(sections, assessment, api.Section{
		Heading: lang.T("Onderhandelen?", "Should renegotiate?"),
		Level:   levelSection,
		Lines:   []api.Line{{Text: yesNo(lang, c.Renegotiate())}},
	})

	if len(c.KeyPointsToVerify) > 0 {
		sections = append(sections, bulletSection(
			lang.T("Belangrijke controlepunten", "Key points to verify"),
			firstN(c.KeyPointsToVerify, MaxListItems)))
	}

	if c.PricingCompare != nil {
		sections = append(sections, Pricing(lang, c.PricingCompare)...)
	}
	return sections
}

func bulletSection(heading string, items []string) api.Section {
	s := api.Section{Heading: heading, Level: levelSection, Lines: make([]api.Line, 0, len(items))}
	for _, it := range items {
		s.Lines = append(s.Lines, api.Line{Text: it})
	}
	return s
}
