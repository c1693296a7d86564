package usecase

import (
	"contract_analyzer/internal/feature/contract/domain/entity"
	extraction "contract_analyzer/internal/feature/extraction/domain/entity"
)

const (
	// AnalyzeMaxChars は単一分析でLLMに送る最大文字数です。
	AnalyzeMaxChars = 8000
	// CompareMaxChars は比較で各文書からLLMに送る最大文字数です。
	CompareMaxChars = 10000
	// AnalyzePreviewChars / ComparePreviewChars はプレビュー表示の文字数です。
	AnalyzePreviewChars = 3000
	ComparePreviewChars = 2000

	// SystemInstruction は全リクエスト共通のシステムメッセージです。
	SystemInstruction = "You must output ONLY valid JSON."

	// Temperature / MaxTokens はLLM呼び出しのサンプリング設定です。
	Temperature      = 0.2
	AnalyzeMaxTokens = 1600
	CompareMaxTokens = 2400
)

const promptAnalyzeEN = `
You are a legal AI assistant. Analyze the contract and return ONLY JSON:
{
  "key_clauses": ["plain-language key clauses (max 5)"],
  "risks": ["plain-language top risks (max 5)"],
  "recommendations": ["plain-language next steps (max 5)"]
}
Text:
`

const promptAnalyzeNL = `
Je bent een juridisch AI-assistent. Analyseer het contract en geef ALLEEN JSON terug:
{
  "key_clauses": ["belangrijkste clausules in gewone taal (max 5)"],
  "risks": ["grootste risico's (max 5)"],
  "recommendations": ["volgende stappen/adviezen (max 5)"]
}
Tekst:
`

const promptCompareEN = `
You are a legal AI. Compare TWO contract texts (A=old, B=new). Return ONLY JSON:
{
  "major_changes": [
    {"type": "clause|risk|recommendation", "change": "added|removed|modified|tightened|loosened",
     "title": "short label", "before": "snippet A", "after": "snippet B",
     "impact": "low|medium|high", "note": "plain language"}
  ],
  "overall_assessment": "plain language summary",
  "should_renegotiate": true,
  "key_points_to_verify": ["bullets"],
  "pricing_compare": {
    "totals": {
      "currency": "EUR|USD|…",
      "one_time": {"old": null, "new": null, "delta": null},
      "monthly":  {"old": null, "new": null, "delta": null},
      "yearly":   {"old": null, "new": null, "delta": null}
    },
    "items_added": [
      {"description": "string", "qty": 1.0, "unit": "user|month|year|one-time|…",
       "unit_price": 0.0, "currency": "EUR|USD|…", "period": "one-time|monthly|yearly|per-use|other",
       "line_total": 0.0}
    ],
    "items_removed": [
      {"description": "string"}
    ],
    "items_modified": [
      {"description": "string", "fields_changed": {"qty": {"old": 0, "new": 0}, "unit_price": {"old": 0.0, "new": 0.0}, "period": {"old": "", "new": ""}, "line_total": {"old": 0.0, "new": 0.0}}}
    ],
    "price_changes": {
      "old": [{"type": "increase|decrease|indexation|discount_end|other", "amount": 0.0, "percent": 0.0, "currency": "EUR", "effective_date": "YYYY-MM-DD", "note": "..."}],
      "new": [{"type": "increase|decrease|indexation|discount_end|other", "amount": 0.0, "percent": 0.0, "currency": "EUR", "effective_date": "YYYY-MM-DD", "note": "..."}],
      "diff_summary": "plain-language summary of pricing rule differences"
    },
    "indexation": {
      "old": {"method": "CPI|CPI+X|none|other", "cap": 0.0, "floor": 0.0, "frequency": "annual|other"},
      "new": {"method": "CPI|CPI+X|none|other", "cap": 0.0, "floor": 0.0, "frequency": "annual|other"}
    }
  }
}
Rules:
- Include the "pricing_compare" object **only if** pricing/fees/amounts/tables, price changes, or indexation appear in either A or B. Otherwise omit the field entirely.
- Do **not** invent numbers. If a value is not stated, set it to null or omit that leaf field.
- Keep responses concise and JSON-valid. No extra text.

Respond only with JSON.
`

const promptCompareNL = `
Je bent een juridische AI. Vergelijk TWEE contractteksten (A=oud, B=nieuw). Geef ALLEEN JSON terug:
{
  "major_changes": [
    {"type": "clause|risk|recommendation", "change": "added|removed|modified|tightened|loosened",
     "title": "korte titel", "before": "fragment A", "after": "fragment B",
     "impact": "low|medium|high", "note": "uitleg in gewone taal"}
  ],
  "overall_assessment": "samenvatting in gewone taal",
  "should_renegotiate": true,
  "key_points_to_verify": ["bullets"],
  "pricing_compare": {
    "totals": {
      "currency": "EUR|USD|…",
      "one_time": {"old": null, "new": null, "delta": null},
      "monthly":  {"old": null, "new": null, "delta": null},
      "yearly":   {"old": null, "new": null, "delta": null}
    },
    "items_added": [
      {"description": "string", "qty": 1.0, "unit": "gebruiker|maand|jaar|eenmalig|…",
       "unit_price": 0.0, "currency": "EUR|USD|…", "period": "eenmalig|maandelijks|jaarlijks|per-gebruik|overig",
       "line_total": 0.0}
    ],
    "items_removed": [
      {"description": "string"}
    ],
    "items_modified": [
      {"description": "string", "fields_changed": {"qty": {"old": 0, "new": 0}, "unit_price": {"old": 0.0, "new": 0.0}, "period": {"old": "", "new": ""}, "line_total": {"old": 0.0, "new": 0.0}}}
    ],
    "price_changes": {
      "old": [{"type": "increase|decrease|indexation|discount_end|other", "amount": 0.0, "percent": 0.0, "currency": "EUR", "effective_date": "YYYY-MM-DD", "note": "..."}],
      "new": [{"type": "increase|decrease|indexation|discount_end|other", "amount": 0.0, "percent": 0.0, "currency": "EUR", "effective_date": "YYYY-MM-DD", "note": "..."}],
      "diff_summary": "korte samenvatting van verschillen in prijsregels"
    },
    "indexation": {
      "old": {"method": "CPI|CPI+X|geen|overig", "cap": 0.0, "floor": 0.0, "frequency": "jaarlijks|overig"},
      "new": {"method": "CPI|CPI+X|geen|overig", "cap": 0.0, "floor": 0.0, "frequency": "jaarlijks|overig"}
    }
  }
}
Regels:
- Voeg het object "pricing_compare" **alleen toe** als er in A of B prijzen/kosten/bedragen/tabellen, prijswijzigingen of indexatie voorkomen. Anders het veld weglaten.
- Geen getallen verzinnen. Als iets niet staat vermeld: gebruik null of laat het veld weg.
- Antwoord kort en als geldige JSON. Geen extra tekst.

Antwoord alleen met JSON.
`

// BuildAnalyzePrompt はテンプレートに文書テキストを連結します。textは切り詰め済みであること。
func BuildAnalyzePrompt(lang entity.Language, text string) string {
	return lang.T(promptAnalyzeNL, promptAnalyzeEN) + text
}

// BuildComparePrompt はテンプレートの後に旧版Aと新版Bを付加します。
func BuildComparePrompt(lang entity.Language, oldText, newText string) string {
	return lang.T(promptCompareNL, promptCompareEN) +
		"\n\nTEXT A (old/oud):\n" + oldText +
		"\n\nTEXT B (new/nieuw):\n" + newText
}

// truncate cuts text to n characters.
func truncate(text string, n int) string {
	return extraction.TruncateRunes(text, n)
}
