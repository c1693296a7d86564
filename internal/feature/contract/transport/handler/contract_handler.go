// Package handler はcontractフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"contract_analyzer/internal/api"
	"contract_analyzer/internal/feature/contract/domain/entity"
	"contract_analyzer/internal/feature/contract/render"
	"contract_analyzer/internal/feature/contract/usecase"
	extraction "contract_analyzer/internal/feature/extraction/domain/entity"
)

// MaxUploadSize はアップロード1ファイルあたりの最大サイズ（20MB）です。
const MaxUploadSize = 20 << 20

// MaxExportBodySize はエクスポートで受け付ける比較JSONの最大サイズです。
const MaxExportBodySize = 2 << 20

var errFileTooLarge = fmt.Errorf("file exceeds maximum of %d bytes", MaxUploadSize)

// ContractUsecase は分析・比較のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type ContractUsecase interface {
	Catalog() entity.ModelCatalog
	ResolveModel(model string) (string, error)
	Analyze(ctx context.Context, in usecase.AnalyzeInput) (*entity.Analysis, error)
	Compare(ctx context.Context, in usecase.CompareInput) (*entity.Comparison, error)
}

// TextExtractor はアップロードされた文書からテキストを取り出します。失敗しません。
type TextExtractor interface {
	Extract(ctx context.Context, filename string, data []byte) extraction.ExtractedText
}

// ContractHandler は契約の分析・比較のHTTPリクエストを処理します。
type ContractHandler struct {
	uc        ContractUsecase
	extractor TextExtractor
}

// NewContractHandler はContractHandlerの新しいインスタンスを生成します。
func NewContractHandler(uc ContractUsecase, extractor TextExtractor) *ContractHandler {
	return &ContractHandler{uc: uc, extractor: extractor}
}

// Models は選択可能なモデルと言語の一覧を返します。
//
// エンドポイント: GET /v1/models
func (h *ContractHandler) Models(c *gin.Context) {
	catalog := h.uc.Catalog()
	languages := make([]string, 0, 2)
	for _, l := range entity.Languages() {
		languages = append(languages, string(l))
	}
	c.JSON(http.StatusOK, api.ModelsResponse{
		Provider:        catalog.Provider,
		Models:          catalog.Models,
		DefaultModel:    catalog.Default,
		Languages:       languages,
		DefaultLanguage: string(entity.DefaultLanguage),
	})
}

// Extract はアップロードされた文書のテキストを抽出し、プレビューを返します。
//
// エンドポイント: POST /v1/documents/extract
// Content-Type: multipart/form-data
// フィールド: file
func (h *ContractHandler) Extract(c *gin.Context) {
	var body api.ExtractDocumentMultipartRequestBody
	if !bindMultipart(c, &body, "file") {
		return
	}
	doc, ok := h.extractUpload(c, "file", body.File)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, documentResponse(doc, usecase.AnalyzePreviewChars))
}

// Analyze は1つの契約を分析します。
//
// エンドポイント: POST /v1/contracts/analyze
// Content-Type: multipart/form-data
// フィールド: file, model（任意）, language（任意）
func (h *ContractHandler) Analyze(c *gin.Context) {
	var body api.AnalyzeContractMultipartRequestBody
	if !bindMultipart(c, &body, "file") {
		return
	}
	lang, model, ok := h.options(c, body.Language, body.Model)
	if !ok {
		return
	}
	doc, ok := h.extractUpload(c, "file", body.File)
	if !ok {
		return
	}

	analysis, err := h.uc.Analyze(c.Request.Context(), usecase.AnalyzeInput{
		Text:     doc.Text,
		Model:    model,
		Language: lang,
	})
	if err != nil {
		h.fail(c, "analysis", err)
		return
	}

	slog.Info("contract analyzed", "model", model, "method", doc.Method, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.AnalyzeResponse{
		Model:    model,
		Language: string(lang),
		Document: documentResponse(doc, usecase.AnalyzePreviewChars),
		Analysis: analysis.Raw,
		Sections: render.Analysis(lang, analysis),
	})
}

// Compare は旧版（old）と新版（new）の契約を比較します。
//
// エンドポイント: POST /v1/contracts/compare
// Content-Type: multipart/form-data
// フィールド: old, new, model（任意）, language（任意）
func (h *ContractHandler) Compare(c *gin.Context) {
	var body api.CompareContractsMultipartRequestBody
	if !bindMultipart(c, &body, "old") {
		return
	}
	lang, model, ok := h.options(c, body.Language, body.Model)
	if !ok {
		return
	}
	oldDoc, ok := h.extractUpload(c, "old", body.Old)
	if !ok {
		return
	}
	newDoc, ok := h.extractUpload(c, "new", body.New)
	if !ok {
		return
	}

	comparison, err := h.uc.Compare(c.Request.Context(), usecase.CompareInput{
		OldText:  oldDoc.Text,
		NewText:  newDoc.Text,
		Model:    model,
		Language: lang,
	})
	if err != nil {
		h.fail(c, "comparison", err)
		return
	}

	slog.Info("contracts compared", "model", model, "major_changes", len(comparison.MajorChanges),
		"pricing", comparison.PricingCompare != nil, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.CompareResponse{
		Model:      model,
		Language:   string(lang),
		Old:        documentResponse(oldDoc, usecase.ComparePreviewChars),
		New:        documentResponse(newDoc, usecase.ComparePreviewChars),
		Comparison: comparison.Raw,
		Sections:   render.Comparison(lang, comparison),
		Markdown:   render.MarkdownDigest(lang, comparison),
	})
}

// Export は比較結果をJSONまたはMarkdownのファイルとして返します。
//
// エンドポイント: POST /v1/contracts/compare/export?format=json|markdown&language=
// Content-Type: application/json（比較オブジェクト）
func (h *ContractHandler) Export(c *gin.Context) {
	var params api.ExportComparisonParams
	if err := c.ShouldBindQuery(&params); err != nil {
		slog.Warn("invalid export query", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	lang, err := entity.ParseLanguage(deref(params.Language))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}
	format := api.ExportComparisonParamsFormatJson
	if params.Format != nil {
		format = *params.Format
	}

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, MaxExportBodySize+1))
	if err != nil {
		slog.Warn("failed to read export body", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	if len(body) > MaxExportBodySize {
		c.JSON(http.StatusRequestEntityTooLarge, api.ErrorResponse{Error: "comparison too large"})
		return
	}
	comparison, err := entity.ParseComparison(api.ExportComparisonJSONRequestBody(body))
	if err != nil {
		slog.Warn("export body is not a comparison object", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "body must be a JSON object"})
		return
	}

	var exp render.Export
	switch format {
	case api.ExportComparisonParamsFormatJson:
		exp = render.JSON(comparison)
	case api.ExportComparisonParamsFormatMarkdown, api.ExportComparisonParamsFormatMd:
		exp = render.Markdown(lang, comparison)
	default:
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "format must be json or markdown"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exp.Filename))
	c.Data(http.StatusOK, exp.ContentType, exp.Body)
}

// bindMultipart decodes the multipart form into a generated request body.
// A request that is not multipart is reported as missing its first file field.
func bindMultipart(c *gin.Context, body any, firstFile string) bool {
	form, err := c.MultipartForm()
	if err != nil {
		slog.Warn("failed to parse multipart form", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: fmt.Sprintf("file field %q is required", firstFile)})
		return false
	}
	if err := runtime.BindForm(body, form.Value, form.File, nil); err != nil {
		slog.Warn("failed to bind multipart form", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return false
	}
	return true
}

// options validates the language and model form fields. It writes a 400 on failure.
func (h *ContractHandler) options(c *gin.Context, language, model *string) (entity.Language, string, bool) {
	lang, err := entity.ParseLanguage(deref(language))
	if err != nil {
		slog.Warn("invalid language", "language", deref(language), "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return "", "", false
	}
	resolved, err := h.uc.ResolveModel(deref(model))
	if err != nil {
		slog.Warn("invalid model", "model", deref(model), "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: fmt.Sprintf("%v: %q", err, deref(model))})
		return "", "", false
	}
	return lang, resolved, true
}

// extractUpload reads one bound upload and runs the extraction chain.
// An unset file has no filename, since multipart parts without one are plain values.
func (h *ContractHandler) extractUpload(c *gin.Context, field string, file openapi_types.File) (extraction.ExtractedText, bool) {
	if file.Filename() == "" {
		slog.Warn("uploaded file is missing", "field", field, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: fmt.Sprintf("file field %q is required", field)})
		return extraction.ExtractedText{}, false
	}
	data, err := readFile(file)
	if errors.Is(err, errFileTooLarge) {
		c.JSON(http.StatusRequestEntityTooLarge, api.ErrorResponse{Error: err.Error()})
		return extraction.ExtractedText{}, false
	}
	if err != nil {
		slog.Error("failed to read uploaded file", "field", field, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to read uploaded file"})
		return extraction.ExtractedText{}, false
	}
	return h.extractor.Extract(c.Request.Context(), file.Filename(), data), true
}

func readFile(file openapi_types.File) ([]byte, error) {
	if file.FileSize() > MaxUploadSize {
		return nil, errFileTooLarge
	}
	f, err := file.Reader()
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("failed to close uploaded file", "error", err)
		}
	}()

	data, err := io.ReadAll(io.LimitReader(f, MaxUploadSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > MaxUploadSize {
		return nil, errFileTooLarge
	}
	return data, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// fail maps usecase errors to HTTP status codes.
func (h *ContractHandler) fail(c *gin.Context, action string, err error) {
	switch {
	case errors.Is(err, entity.ErrUnsupportedModel),
		errors.Is(err, entity.ErrUnsupportedLanguage),
		errors.Is(err, usecase.ErrEmptyDocument):
		slog.Warn(action+" rejected", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, usecase.ErrMissingAPIKey):
		slog.Error(action+" unavailable", "error", err)
		c.JSON(http.StatusServiceUnavailable, api.ErrorResponse{Error: usecase.ErrMissingAPIKey.Error()})
	default:
		slog.Error(action+" failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: action + " failed: " + err.Error()})
	}
}

func documentResponse(doc extraction.ExtractedText, previewChars int) api.DocumentResponse {
	resp := api.DocumentResponse{
		Filename:   doc.Filename,
		Method:     doc.Method,
		Characters: doc.RuneCount(),
		Preview:    doc.Truncate(previewChars),
	}
	for _, a := range doc.Attempts {
		resp.Attempts = append(resp.Attempts, api.ExtractionAttempt{Method: a.Method, Error: a.Err})
	}
	return resp
}
