package entity

import (
	"encoding/json"
	"errors"

	"github.com/tidwall/gjson"
)

// ErrNotObject is returned when the LLM output is not a JSON object.
var ErrNotObject = errors.New("llm output is not a JSON object")

// Analysis is the single-document result: key clauses, risks and recommendations.
// Each list is capped at five items by the prompt only.
type Analysis struct {
	KeyClauses      []string
	Risks           []string
	Recommendations []string

	// Raw is the JSON object as returned by the LLM.
	Raw json.RawMessage
}

// ParseAnalysis builds an Analysis from raw JSON. Missing or mistyped
// fields are left empty. Only a non-object top level is an error.
func ParseAnalysis(raw []byte) (*Analysis, error) {
	root, err := parseObject(raw)
	if err != nil {
		return nil, err
	}
	return &Analysis{
		KeyClauses:      stringList(root.Get("key_clauses")),
		Risks:           stringList(root.Get("risks")),
		Recommendations: stringList(root.Get("recommendations")),
		Raw:             append(json.RawMessage(nil), raw...),
	}, nil
}

func parseObject(raw []byte) (gjson.Result, error) {
	if !gjson.ValidBytes(raw) {
		return gjson.Result{}, ErrNotObject
	}
	root := gjson.ParseBytes(raw)
	if !root.IsObject() {
		return gjson.Result{}, ErrNotObject
	}
	return root, nil
}
