// Package entity defines the domain entities for the extraction feature.
package entity

// Method names reported in ExtractedText.Method.
const (
	MethodPDF   = "pdf"
	MethodOCR   = "ocr"
	MethodDOCX  = "docx"
	MethodUTF8  = "utf8"
	MethodLossy = "lossy"
	MethodNone  = "none"
)

// ExtractedText is the best-effort plain text of one uploaded document.
type ExtractedText struct {
	Filename string
	Text     string
	// Method is the strategy that produced Text.
	Method string
	// Attempts lists the strategies that failed before Method succeeded, in order.
	Attempts []Attempt
}

// Attempt records one failed extraction step.
type Attempt struct {
	Method string
	Err    string
}

// Degraded reports whether a typed extractor failed and a later fallback produced the text.
func (e ExtractedText) Degraded() bool {
	return len(e.Attempts) > 0
}

// Truncate returns the first n characters (runes) of the text.
// Callers truncate before building prompts and previews.
func (e ExtractedText) Truncate(n int) string {
	return TruncateRunes(e.Text, n)
}

// TruncateRunes cuts s to at most n runes without splitting a multi-byte character.
func TruncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// RuneCount returns the number of characters in the text.
func (e ExtractedText) RuneCount() int {
	n := 0
	for range e.Text {
		n++
	}
	return n
}
