package entity

import (
	"encoding/json"

	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
)

// Comparison is the two-document result. Every field is optional.
type Comparison struct {
	MajorChanges      []MajorChange
	OverallAssessment *string
	ShouldRenegotiate *bool
	KeyPointsToVerify []string
	// PricingCompare is nil unless the LLM returned a non-empty pricing_compare object.
	PricingCompare *PricingCompare

	// Raw is the JSON object as returned by the LLM. Exports use it verbatim.
	Raw json.RawMessage
}

// MajorChange is one material difference between A (old) and B (new).
type MajorChange struct {
	Type   *string // clause|risk|recommendation
	Change *string // added|removed|modified|tightened|loosened
	Title  *string
	Before *string
	After  *string
	Impact *string // low|medium|high
	Note   *string
}

// PricingCompare holds the optional structured pricing delta.
type PricingCompare struct {
	Totals        *Totals
	ItemsAdded    []AddedItem
	ItemsRemoved  []RemovedItem
	ItemsModified []ModifiedItem
	PriceChanges  *PriceChanges
	Indexation    *Indexation
}

// Totals periods in display order.
var TotalPeriods = []string{"one_time", "monthly", "yearly"}

// Totals are the per-period sums. Rows holds only periods given as objects.
type Totals struct {
	Currency *string
	Rows     []TotalRow
}

// TotalRow is the old/new amount of one period.
type TotalRow struct {
	Period string
	Old    *decimal.Decimal
	New    *decimal.Decimal
	// Delta is New-Old when both are present, otherwise the LLM's delta.
	Delta *decimal.Decimal
}

// AddedItem is a line item present only in B.
type AddedItem struct {
	Description *string
	Qty         *decimal.Decimal
	Unit        *string
	UnitPrice   *decimal.Decimal
	Currency    *string
	Period      *string
	LineTotal   *decimal.Decimal
}

// RemovedItem is a line item present only in A.
type RemovedItem struct {
	Description *string
}

// ModifiedItem is a line item whose fields differ between A and B.
type ModifiedItem struct {
	Description *string
	Fields      []FieldChange
}

// FieldChange keeps values in their JSON spelling since they may be numbers or text.
type FieldChange struct {
	Field string
	Old   *string
	New   *string
}

// PriceChanges are the price-change rules of both versions.
type PriceChanges struct {
	Old         []PriceRule
	New         []PriceRule
	DiffSummary *string
}

// PriceRule is one increase, decrease, indexation or discount rule.
type PriceRule struct {
	Type          *string
	Amount        *decimal.Decimal
	Percent       *decimal.Decimal
	Currency      *string
	EffectiveDate *string
	Note          *string
}

// Indexation holds the non-empty indexation terms of each version in JSON order.
type Indexation struct {
	Old []Term
	New []Term
}

// Term is one key=value pair.
type Term struct {
	Key   string
	Value string
}

// ParseComparison builds a Comparison from raw JSON. Missing or mistyped
// fields are left absent. Only a non-object top level is an error.
func ParseComparison(raw []byte) (*Comparison, error) {
	root, err := parseObject(raw)
	if err != nil {
		return nil, err
	}

	c := &Comparison{
		OverallAssessment: optString(root.Get("overall_assessment")),
		ShouldRenegotiate: optBool(root.Get("should_renegotiate")),
		KeyPointsToVerify: stringList(root.Get("key_points_to_verify")),
		Raw:               append(json.RawMessage(nil), raw...),
	}
	for _, ch := range objects(root.Get("major_changes")) {
		c.MajorChanges = append(c.MajorChanges, MajorChange{
			Type:   optString(ch.Get("type")),
			Change: optString(ch.Get("change")),
			Title:  optString(ch.Get("title")),
			Before: optString(ch.Get("before")),
			After:  optString(ch.Get("after")),
			Impact: optString(ch.Get("impact")),
			Note:   optString(ch.Get("note")),
		})
	}
	if pc := root.Get("pricing_compare"); nonEmptyObject(pc) {
		c.PricingCompare = parsePricing(pc)
	}
	return c, nil
}

// Renegotiate reports should_renegotiate, false when absent.
func (c *Comparison) Renegotiate() bool {
	return c.ShouldRenegotiate != nil && *c.ShouldRenegotiate
}

func parsePricing(pc gjson.Result) *PricingCompare {
	p := &PricingCompare{}

	if totals := pc.Get("totals"); totals.IsObject() {
		t := &Totals{Currency: optString(totals.Get("currency"))}
		for _, period := range TotalPeriods {
			row := totals.Get(period)
			if !row.IsObject() {
				continue
			}
			t.Rows = append(t.Rows, newTotalRow(period, row))
		}
		p.Totals = t
	}

	for _, it := range objects(pc.Get("items_added")) {
		p.ItemsAdded = append(p.ItemsAdded, AddedItem{
			Description: optString(it.Get("description")),
			Qty:         optDecimal(it.Get("qty")),
			Unit:        optString(it.Get("unit")),
			UnitPrice:   optDecimal(it.Get("unit_price")),
			Currency:    optString(it.Get("currency")),
			Period:      optString(it.Get("period")),
			LineTotal:   optDecimal(it.Get("line_total")),
		})
	}
	for _, it := range objects(pc.Get("items_removed")) {
		p.ItemsRemoved = append(p.ItemsRemoved, RemovedItem{Description: optString(it.Get("description"))})
	}
	for _, it := range objects(pc.Get("items_modified")) {
		p.ItemsModified = append(p.ItemsModified, newModifiedItem(it))
	}

	if rules := pc.Get("price_changes"); nonEmptyObject(rules) {
		p.PriceChanges = &PriceChanges{
			Old:         priceRules(rules.Get("old")),
			New:         priceRules(rules.Get("new")),
			DiffSummary: optString(rules.Get("diff_summary")),
		}
	}

	if idx := pc.Get("indexation"); nonEmptyObject(idx) {
		p.Indexation = &Indexation{
			Old: terms(idx.Get("old")),
			New: terms(idx.Get("new")),
		}
	}
	return p
}

func newTotalRow(period string, row gjson.Result) TotalRow {
	r := TotalRow{
		Period: period,
		Old:    optDecimal(row.Get("old")),
		New:    optDecimal(row.Get("new")),
	}
	if r.Old != nil && r.New != nil {
		d := r.New.Sub(*r.Old)
		r.Delta = &d
	} else {
		r.Delta = optDecimal(row.Get("delta"))
	}
	return r
}

func newModifiedItem(it gjson.Result) ModifiedItem {
	m := ModifiedItem{Description: optString(it.Get("description"))}
	fields := it.Get("fields_changed")
	if !nonEmptyObject(fields) {
		fields = it.Get("diff")
	}
	if !fields.IsObject() {
		return m
	}
	fields.ForEach(func(key, value gjson.Result) bool {
		fc := FieldChange{Field: key.String()}
		if value.IsObject() {
			fc.Old = optString(value.Get("old"))
			fc.New = optString(value.Get("new"))
		}
		m.Fields = append(m.Fields, fc)
		return true
	})
	return m
}

func priceRules(r gjson.Result) []PriceRule {
	var out []PriceRule
	for _, rule := range objects(r) {
		out = append(out, PriceRule{
			Type:          optString(rule.Get("type")),
			Amount:        optDecimal(rule.Get("amount")),
			Percent:       optDecimal(rule.Get("percent")),
			Currency:      optString(rule.Get("currency")),
			EffectiveDate: optString(rule.Get("effective_date")),
			Note:          optString(rule.Get("note")),
		})
	}
	return out
}

// terms keeps the entries whose value is neither null nor "".
func terms(r gjson.Result) []Term {
	if !r.IsObject() {
		return nil
	}
	var out []Term
	r.ForEach(func(key, value gjson.Result) bool {
		var v string
		switch {
		case value.Type == gjson.Null:
			return true
		case value.IsObject() || value.IsArray():
			v = value.Raw
		default:
			v = Str(optString(value))
		}
		if v != "" {
			out = append(out, Term{Key: key.String(), Value: v})
		}
		return true
	})
	return out
}
