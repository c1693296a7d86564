// Package vision はGoogle Cloud Vision APIを使用したOCR抽出を提供します。
package vision

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	gvision "cloud.google.com/go/vision/v2/apiv1"
	visionpb "cloud.google.com/go/vision/v2/apiv1/visionpb"

	"contract_analyzer/internal/feature/extraction/domain/entity"
	"contract_analyzer/internal/feature/extraction/usecase"
)

// maxSyncPDFPages は同期APIで1リクエストあたりに処理できるページ数の上限です。
const maxSyncPDFPages = 5

var pdfMagic = []byte("%PDF-")

// OCR はスキャンPDFや画像からDOCUMENT_TEXT_DETECTIONでテキストを読み取ります。
type OCR struct {
	annotateImages func(ctx context.Context, req *visionpb.BatchAnnotateImagesRequest) (*visionpb.BatchAnnotateImagesResponse, error)
	annotateFiles  func(ctx context.Context, req *visionpb.BatchAnnotateFilesRequest) (*visionpb.BatchAnnotateFilesResponse, error)
	close          func() error
}

// OCRがStrategyを実装していることをコンパイル時に検証します。
var _ usecase.Strategy = (*OCR)(nil)

// NewOCR はADCを使用してOCRの新しいインスタンスを生成します。
func NewOCR(ctx context.Context) (*OCR, error) {
	client, err := gvision.NewImageAnnotatorClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create vision client: %w", err)
	}
	return &OCR{
		annotateImages: func(ctx context.Context, req *visionpb.BatchAnnotateImagesRequest) (*visionpb.BatchAnnotateImagesResponse, error) {
			return client.BatchAnnotateImages(ctx, req)
		},
		annotateFiles: func(ctx context.Context, req *visionpb.BatchAnnotateFilesRequest) (*visionpb.BatchAnnotateFilesResponse, error) {
			return client.BatchAnnotateFiles(ctx, req)
		},
		close: client.Close,
	}, nil
}

// Close はVision APIクライアントを解放します。
func (o *OCR) Close() error {
	if o.close == nil {
		return nil
	}
	return o.close()
}

func (o *OCR) Name() string { return entity.MethodOCR }

func (o *OCR) Accepts(filename string) bool {
	return usecase.HasExtension(filename, ".pdf", ".png", ".jpg", ".jpeg", ".tif", ".tiff", ".gif", ".webp")
}

// Extract はPDFならファイルAPI、それ以外は画像APIで文字認識します。
func (o *OCR) Extract(ctx context.Context, data []byte) (string, error) {
	var (
		text string
		err  error
	)
	if bytes.HasPrefix(data, pdfMagic) {
		text, err = o.extractPDF(ctx, data)
	} else {
		text, err = o.extractImage(ctx, data)
	}
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", usecase.ErrNoText
	}
	return text, nil
}

func documentTextFeature() []*visionpb.Feature {
	return []*visionpb.Feature{{Type: visionpb.Feature_DOCUMENT_TEXT_DETECTION}}
}

func (o *OCR) extractImage(ctx context.Context, data []byte) (string, error) {
	req := &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{
			{
				Image:    &visionpb.Image{Content: data},
				Features: documentTextFeature(),
			},
		},
	}

	resp, err := o.annotateImages(ctx, req)
	if err != nil {
		return "", fmt.Errorf("vision API request failed: %w", err)
	}
	if len(resp.GetResponses()) == 0 {
		return "", usecase.ErrNoText
	}
	return imageText(resp.GetResponses()[0])
}

func (o *OCR) extractPDF(ctx context.Context, data []byte) (string, error) {
	pages := make([]int32, 0, maxSyncPDFPages)
	for i := int32(1); i <= maxSyncPDFPages; i++ {
		pages = append(pages, i)
	}
	req := &visionpb.BatchAnnotateFilesRequest{
		Requests: []*visionpb.AnnotateFileRequest{
			{
				InputConfig: &visionpb.InputConfig{Content: data, MimeType: "application/pdf"},
				Features:    documentTextFeature(),
				Pages:       pages,
			},
		},
	}

	resp, err := o.annotateFiles(ctx, req)
	if err != nil {
		return "", fmt.Errorf("vision API request failed: %w", err)
	}
	if len(resp.GetResponses()) == 0 {
		return "", usecase.ErrNoText
	}
	file := resp.GetResponses()[0]
	if file.GetError() != nil {
		return "", fmt.Errorf("vision API error: %s", file.GetError().GetMessage())
	}

	texts := make([]string, 0, len(file.GetResponses()))
	for _, page := range file.GetResponses() {
		t, err := imageText(page)
		if err != nil {
			return "", err
		}
		texts = append(texts, t)
	}
	return strings.Join(texts, "\n\n"), nil
}

func imageText(r *visionpb.AnnotateImageResponse) (string, error) {
	if r.GetError() != nil {
		return "", fmt.Errorf("vision API error: %s", r.GetError().GetMessage())
	}
	return r.GetFullTextAnnotation().GetText(), nil
}
