package usecase

import (
	"context"
	"fmt"
	"strings"

	"contract_analyzer/internal/feature/contract/domain/entity"
)

// ChatRequest はプロバイダー非依存のチャット補完リクエストです。
type ChatRequest struct {
	Model       string
	System      string
	Prompt      string
	Temperature float64
	MaxTokens   int
	// JSONObject はJSONオブジェクト形式の応答を要求します。
	JSONObject bool
}

// Completer はホスト型LLMへの単発の同期呼び出しです。リトライは行いません。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type Completer interface {
	// Complete は応答本文を返します。資格情報が無い場合は ErrMissingAPIKey を返します。
	Complete(ctx context.Context, req ChatRequest) (string, error)
}

// AnalyzeInput は単一分析の入力です。Textは未切り詰めでよい。
type AnalyzeInput struct {
	Text     string
	Model    string
	Language entity.Language
}

// CompareInput は比較の入力です。Oldが版A、Newが版Bです。
type CompareInput struct {
	OldText  string
	NewText  string
	Model    string
	Language entity.Language
}

// contractUsecase はプロンプト構築・LLM呼び出し・応答の解析を行います。
type contractUsecase struct {
	completer Completer
	catalog   entity.ModelCatalog
}

// NewContractUsecase はcontractUsecaseの新しいインスタンスを生成します。
func NewContractUsecase(completer Completer, catalog entity.ModelCatalog) *contractUsecase {
	return &contractUsecase{completer: completer, catalog: catalog}
}

// Catalog は選択可能なモデルの一覧を返します。
func (u *contractUsecase) Catalog() entity.ModelCatalog {
	return u.catalog
}

// ResolveModel は空なら既定モデルを、許可リスト外なら entity.ErrUnsupportedModel を返します。
func (u *contractUsecase) ResolveModel(model string) (string, error) {
	return u.catalog.Resolve(model)
}

// Analyze は1つの契約からkey_clauses/risks/recommendationsを取得します。
func (u *contractUsecase) Analyze(ctx context.Context, in AnalyzeInput) (*entity.Analysis, error) {
	model, err := u.catalog.Resolve(in.Model)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", err, in.Model)
	}
	if strings.TrimSpace(in.Text) == "" {
		return nil, ErrEmptyDocument
	}

	raw, err := u.complete(ctx, ChatRequest{
		Model:     model,
		Prompt:    BuildAnalyzePrompt(in.Language.OrDefault(), truncate(in.Text, AnalyzeMaxChars)),
		MaxTokens: AnalyzeMaxTokens,
	})
	if err != nil {
		return nil, err
	}
	return entity.ParseAnalysis(raw)
}

// Compare は旧版Aと新版Bの重要な差分を取得します。
func (u *contractUsecase) Compare(ctx context.Context, in CompareInput) (*entity.Comparison, error) {
	model, err := u.catalog.Resolve(in.Model)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", err, in.Model)
	}
	if strings.TrimSpace(in.OldText) == "" {
		return nil, fmt.Errorf("old contract: %w", ErrEmptyDocument)
	}
	if strings.TrimSpace(in.NewText) == "" {
		return nil, fmt.Errorf("new contract: %w", ErrEmptyDocument)
	}

	prompt := BuildComparePrompt(in.Language.OrDefault(),
		truncate(in.OldText, CompareMaxChars),
		truncate(in.NewText, CompareMaxChars))
	raw, err := u.complete(ctx, ChatRequest{
		Model:     model,
		Prompt:    prompt,
		MaxTokens: CompareMaxTokens,
	})
	if err != nil {
		return nil, err
	}
	return entity.ParseComparison(raw)
}

// complete fills the shared request settings and parses the content as a JSON object.
func (u *contractUsecase) complete(ctx context.Context, req ChatRequest) ([]byte, error) {
	req.System = SystemInstruction
	req.Temperature = Temperature
	req.JSONObject = true

	content, err := u.completer.Complete(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("llm completion failed: %w", err)
	}
	raw, err := ExtractJSONObject(content)
	if err != nil {
		return nil, err
	}
	return raw, nil
}
