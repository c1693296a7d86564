package render

import (
	"strings"

	"contract_analyzer/internal/api"
	"contract_analyzer/internal/feature/contract/domain/entity"
)

// Pricing は料金比較を主セクション（合計）と空でない小見出しセクションにします。
func Pricing(lang entity.Language, p *entity.PricingCompare) []api.Section {
	currency := ""
	if p.Totals != nil {
		currency = entity.Str(p.Totals.Currency)
	}

	sections := []api.Section{{
		Heading: lang.T("Prijsvergelijking", "Pricing comparison"),
		Level:   levelSection,
		Lines:   textLines(TotalLines(p.Totals)),
	}}
	add := func(heading string, lines []api.Line) {
		if len(lines) == 0 {
			return
		}
		sections = append(sections, api.Section{Heading: heading, Level: levelSubsection, Lines: lines})
	}

	var added []api.Line
	for _, it := range firstN(p.ItemsAdded, MaxListItems) {
		added = append(added, api.Line{Text: addedItemLine(it, currency)})
	}
	add(lang.T("Items toegevoegd", "Items added"), added)

	var removed []api.Line
	for _, it := range firstN(p.ItemsRemoved, MaxListItems) {
		removed = append(removed, api.Line{Text: entity.Str(it.Description)})
	}
	add(lang.T("Items verwijderd", "Items removed"), removed)

	var modified []api.Line
	for _, it := range firstN(p.ItemsModified, MaxListItems) {
		line := api.Line{Text: entity.Str(it.Description)}
		for _, f := range it.Fields {
			line.Details = append(line.Details, f.Field+": "+optional(f.Old)+" → "+optional(f.New))
		}
		modified = append(modified, line)
	}
	add(lang.T("Items gewijzigd", "Items modified"), modified)

	if pc := p.PriceChanges; pc != nil {
		var rules []api.Line
		for _, r := range firstN(pc.New, MaxListItems) {
			rules = append(rules, api.Line{Text: ruleLine(r, currency)})
		}
		if s := entity.Str(pc.DiffSummary); s != "" {
			rules = append(rules, api.Line{Text: s})
		}
		add(lang.T("Prijswijzigingen", "Price change rules"), rules)
	}

	if idx := p.Indexation; idx != nil && (len(idx.Old) > 0 || len(idx.New) > 0) {
		add(lang.T("Indexatie", "Indexation"), []api.Line{
			{Text: lang.T("Indexatie oud", "Indexation old") + ": " + termList(idx.Old)},
			{Text: lang.T("Indexatie nieuw", "Indexation new") + ": " + termList(idx.New)},
		})
	}
	return sections
}

// TotalLines returns one "period: CUR old → CUR new (Δ delta)" line per totals row.
func TotalLines(t *entity.Totals) []string {
	if t == nil {
		return nil
	}
	currency := entity.Str(t.Currency)
	lines := make([]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		line := row.Period + ": " + money(currency, row.Old) + " → " + money(currency, row.New)
		if row.Delta != nil {
			line += " (Δ " + row.Delta.String() + ")"
		}
		lines = append(lines, line)
	}
	return lines
}

// addedItemLine renders one added item with its quantity and prices.
// The total is left out when line_total is null.
func addedItemLine(it entity.AddedItem, fallbackCurrency string) string {
	currency := entity.Str(it.Currency)
	if currency == "" {
		currency = fallbackCurrency
	}

	var tail []string
	qty := ""
	if it.Qty != nil {
		qty = it.Qty.String()
	}
	if qu := joinNonEmpty(" ", qty, entity.Str(it.Unit)); qu != "" {
		tail = append(tail, qu)
	}
	if it.UnitPrice != nil {
		tail = append(tail, "@ "+money(currency, it.UnitPrice))
	}
	if period := entity.Str(it.Period); period != "" {
		tail = append(tail, "/"+period)
	}

	line := entity.Str(it.Description)
	if len(tail) > 0 {
		line = joinNonEmpty(" — ", line, strings.Join(tail, " "))
	}
	if it.LineTotal != nil {
		line += " ⇒ " + money(currency, it.LineTotal)
	}
	return line
}

// ruleLine renders a price change rule with its optional note appended.
func ruleLine(r entity.PriceRule, currency string) string {
	kind := entity.Str(r.Type)
	if kind == "" {
		kind = "change"
	}
	parts := []string{kind}
	if r.Percent != nil {
		parts = append(parts, r.Percent.String()+"%")
	}
	if r.Amount != nil {
		c := entity.Str(r.Currency)
		if c == "" {
			c = currency
		}
		parts = append(parts, money(c, r.Amount))
	}
	if eff := entity.Str(r.EffectiveDate); eff != "" {
		parts = append(parts, "effective "+eff)
	}
	if note := entity.Str(r.Note); note != "" {
		parts = append(parts, "— "+note)
	}
	return strings.Join(parts, ", ")
}

func termList(terms []entity.Term) string {
	kv := make([]string, 0, len(terms))
	for _, t := range terms {
		kv = append(kv, t.Key+"="+t.Value)
	}
	return strings.Join(kv, ", ")
}

func textLines(texts []string) []api.Line {
	lines := make([]api.Line, 0, len(texts))
	for _, t := range texts {
		lines = append(lines, api.Line{Text: t})
	}
	return lines
}
