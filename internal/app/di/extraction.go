package di

import (
	"context"
	"log/slog"

	"contract_analyzer/internal/app/config"
	"contract_analyzer/internal/feature/extraction/adapters/docx"
	"contract_analyzer/internal/feature/extraction/adapters/pdf"
	"contract_analyzer/internal/feature/extraction/adapters/plaintext"
	"contract_analyzer/internal/feature/extraction/adapters/vision"
	"contract_analyzer/internal/feature/extraction/usecase"
)

// NewExtractor builds the extraction chain: pdf, ocr (optional), docx, utf8, then lossy.
// OCR is skipped when disabled or when the Vision client cannot be created.
// The returned cleanup closes the Vision client, if any.
func NewExtractor(ctx context.Context, cfg config.VisionConfig, observer usecase.Observer) (*usecase.Extractor, func()) {
	strategies := []usecase.Strategy{pdf.PDF{}}
	cleanup := func() {}

	if cfg.Enabled {
		ocr, err := vision.NewOCR(ctx)
		if err != nil {
			slog.Warn("vision OCR unavailable, continuing without OCR", "error", err)
		} else {
			strategies = append(strategies, ocr)
			cleanup = func() {
				if err := ocr.Close(); err != nil {
					slog.Warn("failed to close vision client", "error", err)
				}
			}
		}
	}
	strategies = append(strategies, docx.DOCX{}, plaintext.UTF8{})

	var opts []usecase.Option
	if observer != nil {
		opts = append(opts, usecase.WithObserver(observer))
	}
	e := usecase.NewExtractor(plaintext.Lossy{}, strategies, opts...)
	slog.Info("text extraction chain ready", "methods", e.Methods())
	return e, cleanup
}
