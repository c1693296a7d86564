package usecase

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
)

// codeFencePattern matches a JSON object wrapped in a markdown code block: ```json { ... } ```
var codeFencePattern = regexp.MustCompile("(?s)^```(?:json|JSON)?\\s*\\n?(.*?)\\s*```$")

// ExtractJSONObject は応答からJSONオブジェクトを取り出します。
// JSONモードでもコードフェンスで囲まれることがあるため、それだけは取り除きます。
// それ以上の修復は行いません。
func ExtractJSONObject(content string) ([]byte, error) {
	s := strings.TrimSpace(content)
	if s == "" {
		return nil, ErrEmptyResponse
	}
	if m := codeFencePattern.FindStringSubmatch(s); len(m) > 1 {
		s = strings.TrimSpace(m[1])
	}
	if !gjson.Valid(s) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidJSON, snippet(s))
	}
	if !gjson.Parse(s).IsObject() {
		return nil, fmt.Errorf("%w: top level is not an object", ErrInvalidJSON)
	}
	return []byte(s), nil
}

// snippet shortens s for error messages.
func snippet(s string) string {
	const limit = 80
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit]) + "..."
}
