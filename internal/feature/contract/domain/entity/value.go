package entity

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
)

// Defensive accessors over LLM JSON. A missing field, a null, or a value of an
// unusable type yields nil, never an error.

// optString returns the string value of r, or nil.
// Numbers and booleans are accepted and kept in their JSON spelling.
func optString(r gjson.Result) *string {
	switch r.Type {
	case gjson.String:
		s := r.String()
		return &s
	case gjson.Number, gjson.True, gjson.False:
		s := r.Raw
		return &s
	}
	return nil
}

// Amounts outside these bounds are treated as absent. Sub and String rescale
// to the smaller exponent, so an extreme exponent would build a huge coefficient.
const (
	maxDecimalText     = 40
	maxDecimalExponent = 30
)

// optDecimal parses a JSON number or a numeric string.
func optDecimal(r gjson.Result) *decimal.Decimal {
	var raw string
	switch r.Type {
	case gjson.Number:
		raw = r.Raw
	case gjson.String:
		raw = strings.TrimSpace(r.String())
	default:
		return nil
	}
	if len(raw) > maxDecimalText {
		return nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil
	}
	if exp := d.Exponent(); exp > maxDecimalExponent || exp < -maxDecimalExponent {
		return nil
	}
	return &d
}

// optBool accepts JSON booleans and the strings "true"/"false".
func optBool(r gjson.Result) *bool {
	var b bool
	switch r.Type {
	case gjson.True:
		b = true
	case gjson.False:
		b = false
	case gjson.String:
		switch strings.ToLower(strings.TrimSpace(r.String())) {
		case "true":
			b = true
		case "false":
			b = false
		default:
			return nil
		}
	default:
		return nil
	}
	return &b
}

// stringList keeps the non-empty scalar elements of a JSON array.
func stringList(r gjson.Result) []string {
	if !r.IsArray() {
		return nil
	}
	var out []string
	for _, el := range r.Array() {
		if s := optString(el); s != nil && *s != "" {
			out = append(out, *s)
		}
	}
	return out
}

// objects returns the object elements of a JSON array and skips everything else.
func objects(r gjson.Result) []gjson.Result {
	if !r.IsArray() {
		return nil
	}
	var out []gjson.Result
	for _, el := range r.Array() {
		if el.IsObject() {
			out = append(out, el)
		}
	}
	return out
}

// nonEmptyObject reports whether r is an object with at least one key.
func nonEmptyObject(r gjson.Result) bool {
	if !r.IsObject() {
		return false
	}
	found := false
	r.ForEach(func(_, _ gjson.Result) bool {
		found = true
		return false
	})
	return found
}

// Str dereferences an optional string, "" when absent.
func Str(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
