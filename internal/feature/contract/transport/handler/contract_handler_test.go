package handler_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"contract_analyzer/internal/feature/contract/domain/entity"
	"contract_analyzer/internal/feature/contract/transport/handler"
	"contract_analyzer/internal/feature/contract/usecase"
	extraction "contract_analyzer/internal/feature/extraction/domain/entity"
)

// mockContractUsecase はContractUsecaseインターフェースのモック実装です。
type mockContractUsecase struct {
	AnalyzeFunc func(ctx context.Context, in usecase.AnalyzeInput) (*entity.Analysis, error)
	CompareFunc func(ctx context.Context, in usecase.CompareInput) (*entity.Comparison, error)
}

func (m *mockContractUsecase) Catalog() entity.ModelCatalog { return entity.GroqModels }

func (m *mockContractUsecase) ResolveModel(model string) (string, error) {
	return entity.GroqModels.Resolve(model)
}

func (m *mockContractUsecase) Analyze(ctx context.Context, in usecase.AnalyzeInput) (*entity.Analysis, error) {
	return m.AnalyzeFunc(ctx, in)
}

func (m *mockContractUsecase) Compare(ctx context.Context, in usecase.CompareInput) (*entity.Comparison, error) {
	return m.CompareFunc(ctx, in)
}

// stubExtractor returns the uploaded bytes as text.
type stubExtractor struct{}

func (stubExtractor) Extract(ctx context.Context, filename string, data []byte) extraction.ExtractedText {
	return extraction.ExtractedText{Filename: filename, Text: string(data), Method: extraction.MethodUTF8}
}

type upload struct {
	field, filename, content string
}

// createMultipartRequest はテスト用のマルチパートリクエストを生成するヘルパー関数です。
func createMultipartRequest(t *testing.T, target string, files []upload, fields map[string]string) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for _, f := range files {
		part, err := writer.CreateFormFile(f.field, f.filename)
		require.NoError(t, err)
		_, err = part.Write([]byte(f.content))
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, target, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func newRouter(h *handler.ContractHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/v1/models", h.Models)
	r.POST("/v1/documents/extract", h.Extract)
	r.POST("/v1/contracts/analyze", h.Analyze)
	r.POST("/v1/contracts/compare", h.Compare)
	r.POST("/v1/contracts/compare/export", h.Export)
	return r
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestContractHandler_Models(t *testing.T) {
	r := newRouter(handler.NewContractHandler(&mockContractUsecase{}, stubExtractor{}))

	w := serve(r, httptest.NewRequest(http.MethodGet, "/v1/models", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"provider": "groq",
		"models": ["llama-3.3-70b-versatile", "llama-3.1-8b-instant", "mixtral-8x7b-32768"],
		"default_model": "llama-3.3-70b-versatile",
		"languages": ["English", "Nederlands"],
		"default_language": "Nederlands"
	}`, w.Body.String())
}

func TestContractHandler_Extract(t *testing.T) {
	r := newRouter(handler.NewContractHandler(&mockContractUsecase{}, stubExtractor{}))
	text := strings.Repeat("x", 3500)

	w := serve(r, createMultipartRequest(t, "/v1/documents/extract", []upload{{"file", "c.txt", text}}, nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := gjson.Parse(w.Body.String())
	assert.Equal(t, "c.txt", body.Get("filename").String())
	assert.Equal(t, "utf8", body.Get("method").String())
	assert.Equal(t, int64(3500), body.Get("characters").Int())
	assert.Len(t, body.Get("preview").String(), 3000)
	assert.False(t, body.Get("attempts").Exists())
}

func TestContractHandler_Analyze(t *testing.T) {
	tests := []struct {
		name           string
		files          []upload
		fields         map[string]string
		analyzeFunc    func(ctx context.Context, in usecase.AnalyzeInput) (*entity.Analysis, error)
		expectedStatus int
		expectedError  string
	}{
		{
			name:   "success",
			files:  []upload{{"file", "c.txt", "Contract"}},
			fields: map[string]string{"language": "en"},
			analyzeFunc: func(ctx context.Context, in usecase.AnalyzeInput) (*entity.Analysis, error) {
				return entity.ParseAnalysis([]byte(`{"key_clauses":["k"],"risks":["r"],"recommendations":["x"]}`))
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing file",
			expectedStatus: http.StatusBadRequest,
			expectedError:  `file field "file" is required`,
		},
		{
			name:           "unsupported model",
			files:          []upload{{"file", "c.txt", "Contract"}},
			fields:         map[string]string{"model": "gpt-4o"},
			expectedStatus: http.StatusBadRequest,
			expectedError:  `unsupported model: "gpt-4o"`,
		},
		{
			name:           "unsupported language",
			files:          []upload{{"file", "c.txt", "Contract"}},
			fields:         map[string]string{"language": "fr"},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "unsupported language",
		},
		{
			name:  "missing api key",
			files: []upload{{"file", "c.txt", "Contract"}},
			analyzeFunc: func(ctx context.Context, in usecase.AnalyzeInput) (*entity.Analysis, error) {
				return nil, fmt.Errorf("llm completion failed: %w", usecase.ErrMissingAPIKey)
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedError:  usecase.ErrMissingAPIKey.Error(),
		},
		{
			name:  "upstream failure",
			files: []upload{{"file", "c.txt", "Contract"}},
			analyzeFunc: func(ctx context.Context, in usecase.AnalyzeInput) (*entity.Analysis, error) {
				return nil, errors.New("llm completion failed: timeout")
			},
			expectedStatus: http.StatusBadGateway,
			expectedError:  "analysis failed: llm completion failed: timeout",
		},
		{
			name:  "empty document",
			files: []upload{{"file", "c.txt", " "}},
			analyzeFunc: func(ctx context.Context, in usecase.AnalyzeInput) (*entity.Analysis, error) {
				return nil, usecase.ErrEmptyDocument
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  usecase.ErrEmptyDocument.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockContractUsecase{AnalyzeFunc: func(ctx context.Context, in usecase.AnalyzeInput) (*entity.Analysis, error) {
				t.Fatal("Analyze must not be called")
				return nil, nil
			}}
			if tt.analyzeFunc != nil {
				uc.AnalyzeFunc = tt.analyzeFunc
			}
			r := newRouter(handler.NewContractHandler(uc, stubExtractor{}))

			w := serve(r, createMultipartRequest(t, "/v1/contracts/analyze", tt.files, tt.fields))

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, gjson.Get(w.Body.String(), "error").String())
				return
			}
			body := gjson.Parse(w.Body.String())
			assert.Equal(t, "llama-3.3-70b-versatile", body.Get("model").String())
			assert.Equal(t, "English", body.Get("language").String())
			assert.Equal(t, "k", body.Get("analysis.key_clauses.0").String())
			assert.Equal(t, "Key clauses", body.Get("sections.0.heading").String())
			assert.Equal(t, "r", body.Get("sections.1.lines.0.text").String())
		})
	}
}

func TestContractHandler_Compare_RequiresBothFiles(t *testing.T) {
	r := newRouter(handler.NewContractHandler(&mockContractUsecase{}, stubExtractor{}))

	w := serve(r, createMultipartRequest(t, "/v1/contracts/compare", []upload{{"old", "a.txt", "A"}}, nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, `file field "new" is required`, gjson.Get(w.Body.String(), "error").String())
}

func TestContractHandler_Analyze_NotMultipart(t *testing.T) {
	r := newRouter(handler.NewContractHandler(&mockContractUsecase{}, stubExtractor{}))
	req := httptest.NewRequest(http.MethodPost, "/v1/contracts/analyze", strings.NewReader(`{"file":"x"}`))
	req.Header.Set("Content-Type", "application/json")

	w := serve(r, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, `file field "file" is required`, gjson.Get(w.Body.String(), "error").String())
}

func TestContractHandler_Compare_BindsFormFields(t *testing.T) {
	var got usecase.CompareInput
	uc := &mockContractUsecase{CompareFunc: func(ctx context.Context, in usecase.CompareInput) (*entity.Comparison, error) {
		got = in
		return entity.ParseComparison([]byte(`{}`))
	}}
	r := newRouter(handler.NewContractHandler(uc, stubExtractor{}))

	w := serve(r, createMultipartRequest(t, "/v1/contracts/compare",
		[]upload{{"old", "a.txt", "Oud"}, {"new", "b.txt", "Nieuw"}},
		map[string]string{"model": "llama-3.1-8b-instant", "language": "English"}))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Oud", got.OldText)
	assert.Equal(t, "Nieuw", got.NewText)
	assert.Equal(t, "llama-3.1-8b-instant", got.Model)
	assert.Equal(t, entity.English, got.Language)
	assert.Equal(t, "a.txt", gjson.Get(w.Body.String(), "old.filename").String())
	assert.Equal(t, "b.txt", gjson.Get(w.Body.String(), "new.filename").String())
}

func TestContractHandler_Compare_UpstreamFailure(t *testing.T) {
	uc := &mockContractUsecase{CompareFunc: func(ctx context.Context, in usecase.CompareInput) (*entity.Comparison, error) {
		return nil, fmt.Errorf("%w: top level is not an object", usecase.ErrInvalidJSON)
	}}
	r := newRouter(handler.NewContractHandler(uc, stubExtractor{}))

	w := serve(r, createMultipartRequest(t, "/v1/contracts/compare",
		[]upload{{"old", "a.txt", "A"}, {"new", "b.txt", "B"}}, nil))

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.True(t, strings.HasPrefix(gjson.Get(w.Body.String(), "error").String(), "comparison failed: "))
}

func TestContractHandler_Export(t *testing.T) {
	const comparison = `{"major_changes":[{"type":"clause","change":"added","title":"Exit fee","note":"new fee"}],"overall_assessment":"Duurder — opnieuw onderhandelen","should_renegotiate":true}`

	tests := []struct {
		name            string
		query           string
		body            string
		expectedStatus  int
		expectedType    string
		expectedFile    string
		expectedContent string
	}{
		{
			name:            "json by default",
			query:           "",
			body:            comparison,
			expectedStatus:  http.StatusOK,
			expectedType:    "application/json; charset=utf-8",
			expectedFile:    `attachment; filename="contract_major_changes.json"`,
			expectedContent: `"overall_assessment": "Duurder — opnieuw onderhandelen"`,
		},
		{
			name:            "markdown in dutch",
			query:           "?format=markdown&language=nl",
			body:            comparison,
			expectedStatus:  http.StatusOK,
			expectedType:    "text/markdown; charset=utf-8",
			expectedFile:    `attachment; filename="contract_major_changes.md"`,
			expectedContent: "- clause/added Exit fee: new fee\n\n## Eindoordeel\n",
		},
		{
			name:            "short markdown alias",
			query:           "?format=md&language=en",
			body:            comparison,
			expectedStatus:  http.StatusOK,
			expectedType:    "text/markdown; charset=utf-8",
			expectedFile:    `attachment; filename="contract_major_changes.md"`,
			expectedContent: "## Overall assessment\n",
		},
		{
			name:            "extreme exponent degrades to n/a",
			query:           "?format=markdown",
			body:            `{"pricing_compare":{"totals":{"currency":"EUR","monthly":{"old":1e-50000000,"new":1}}}}`,
			expectedStatus:  http.StatusOK,
			expectedType:    "text/markdown; charset=utf-8",
			expectedFile:    `attachment; filename="contract_major_changes.md"`,
			expectedContent: "- monthly: EUR n/a → EUR 1\n",
		},
		{
			name:           "unknown format",
			query:          "?format=pdf",
			body:           comparison,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "not an object",
			body:           `[1,2,3]`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRouter(handler.NewContractHandler(&mockContractUsecase{}, stubExtractor{}))
			req := httptest.NewRequest(http.MethodPost, "/v1/contracts/compare/export"+tt.query, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")

			w := serve(r, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus != http.StatusOK {
				return
			}
			assert.Equal(t, tt.expectedType, w.Header().Get("Content-Type"))
			assert.Equal(t, tt.expectedFile, w.Header().Get("Content-Disposition"))
			assert.Contains(t, w.Body.String(), tt.expectedContent)
		})
	}
}
