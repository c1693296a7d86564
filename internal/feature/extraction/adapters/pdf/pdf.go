// Package pdf はPDFのテキスト層からテキストを抽出します。
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	lpdf "github.com/ledongthuc/pdf"

	"contract_analyzer/internal/feature/extraction/domain/entity"
	"contract_analyzer/internal/feature/extraction/usecase"
)

// PDF はledongthuc/pdfを使用してページごとのプレーンテキストを取り出します。
// 画像のみのPDFではErrNoTextを返し、後段（OCRなど）に委ねます。
type PDF struct{}

var _ usecase.Strategy = PDF{}

func (PDF) Name() string { return entity.MethodPDF }

func (PDF) Accepts(filename string) bool {
	return usecase.HasExtension(filename, ".pdf")
}

// Extract はページテキストを空行区切りで連結します。
func (PDF) Extract(ctx context.Context, data []byte) (text string, err error) {
	// パーサーは壊れた入力でpanicすることがあるため、エラーに変換する
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("pdf parser panic: %v", r)
		}
	}()

	r, err := lpdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}

	pages := make([]string, 0, r.NumPage())
	for i := 1; i <= r.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		s, err := p.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to read page %d: %w", i, err)
		}
		pages = append(pages, s)
	}

	joined := strings.Join(pages, "\n\n")
	if strings.TrimSpace(joined) == "" {
		return "", usecase.ErrNoText
	}
	return joined, nil
}
