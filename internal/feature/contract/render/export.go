package render

import (
	"fmt"
	"strings"

	"github.com/tidwall/pretty"

	"contract_analyzer/internal/api"
	"contract_analyzer/internal/feature/contract/domain/entity"
)

// Export filenames and content types.
const (
	JSONFilename        = "contract_major_changes.json"
	MarkdownFilename    = "contract_major_changes.md"
	JSONContentType     = "application/json; charset=utf-8"
	MarkdownContentType = "text/markdown; charset=utf-8"
)

// Export はダウンロード用のファイルです。
type Export struct {
	Filename    string
	ContentType string
	Body        []byte
}

var prettyOptions = &pretty.Options{Width: 80, Prefix: "", Indent: "  ", SortKeys: false}

// JSON はLLMが返した比較オブジェクトをキー順を保ったまま整形します。
// 文字列はエスケープし直さないため、非ASCII文字はそのまま残ります。
func JSON(c *entity.Comparison) Export {
	return Export{
		Filename:    JSONFilename,
		ContentType: JSONContentType,
		Body:        PrettyJSON(c.Raw),
	}
}

// PrettyJSON indents raw JSON with two spaces.
func PrettyJSON(raw []byte) []byte {
	return pretty.PrettyOptions(raw, prettyOptions)
}

// Markdown は重要な変更のダイジェストを生成します。
func Markdown(lang entity.Language, c *entity.Comparison) Export {
	return Export{
		Filename:    MarkdownFilename,
		ContentType: MarkdownContentType,
		Body:        []byte(MarkdownDigest(lang, c)),
	}
}

// MarkdownDigest returns the "# Major Changes" document as a string.
func MarkdownDigest(lang entity.Language, c *entity.Comparison) string {
	var b strings.Builder
	b.WriteString("# Major Changes\n\n")
	for _, ch := range firstN(c.MajorChanges, MaxMajorChanges) {
		fmt.Fprintf(&b, "- %s\n", changeLine(ch))
	}

	if p := c.PricingCompare; p != nil {
		fmt.Fprintf(&b, "\n## %s\n", lang.T("Prijsvergelijking", "Pricing comparison"))
		for _, line := range TotalLines(p.Totals) {
			fmt.Fprintf(&b, "- %s\n", line)
		}
		if p.PriceChanges != nil {
			if s := entity.Str(p.PriceChanges.DiffSummary); s != "" {
				fmt.Fprintf(&b, "- %s\n", s)
			}
		}
	}

	fmt.Fprintf(&b, "\n## %s\n", lang.T("Eindoordeel", "Overall assessment"))
	if s := entity.Str(c.OverallAssessment); s != "" {
		b.WriteString(s + "\n")
	}
	fmt.Fprintf(&b, "\n**%s** %s\n", lang.T("Onderhandelen?", "Should renegotiate?"), yesNo(lang, c.Renegotiate()))

	if len(c.KeyPointsToVerify) > 0 {
		fmt.Fprintf(&b, "\n## %s\n", lang.T("Belangrijke controlepunten", "Key points to verify"))
		for _, k := range firstN(c.KeyPointsToVerify, MaxListItems) {
			fmt.Fprintf(&b, "- %s\n", k)
		}
	}
	return b.String()
}

// PlainText は表示セクションを端末向けのテキストにします。
func PlainText(sections []api.Section) string {
	var b strings.Builder
	for i, s := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s %s\n", strings.Repeat("#", s.Level), s.Heading)
		for _, l := range s.Lines {
			fmt.Fprintf(&b, "- %s\n", l.Text)
			for _, d := range l.Details {
				fmt.Fprintf(&b, "    • %s\n", d)
			}
		}
	}
	return b.String()
}
