package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"contract_analyzer/internal/feature/contract/domain/entity"
	"contract_analyzer/internal/feature/contract/render"
	"contract_analyzer/internal/feature/contract/usecase"
	extraction "contract_analyzer/internal/feature/extraction/domain/entity"
)

// Output formats.
const (
	formatText     = "text"
	formatMarkdown = "markdown"
	formatJSON     = "json"
)

type contractUsecase interface {
	Analyze(ctx context.Context, in usecase.AnalyzeInput) (*entity.Analysis, error)
	Compare(ctx context.Context, in usecase.CompareInput) (*entity.Comparison, error)
}

type textExtractor interface {
	Extract(ctx context.Context, filename string, data []byte) extraction.ExtractedText
}

// pipeline is the extractor and usecase shared by the subcommands.
type pipeline struct {
	uc        contractUsecase
	extractor textExtractor
}

type pipelineLoader func(ctx context.Context, logLevel string) (*pipeline, func(), error)

type globalFlags struct {
	model    string
	language string
	format   string
	logLevel string
}

func newRootCmd(load pipelineLoader) *cobra.Command {
	var g globalFlags

	cmd := &cobra.Command{
		Use:           "contractctl",
		Short:         "Analyze or compare contracts with an LLM",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&g.model, "model", "", "Model name (empty = provider default)")
	cmd.PersistentFlags().StringVar(&g.language, "language", "", "Output language: en or nl (default nl)")
	cmd.PersistentFlags().StringVar(&g.format, "format", formatText, "Output format: text, markdown or json")
	cmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "analyze FILE",
			Short: "Summarize key clauses, risks and recommendations of one contract",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withPipeline(cmd.Context(), load, g, func(p *pipeline, lang entity.Language) error {
					return runAnalyze(cmd.Context(), cmd.OutOrStdout(), p, g, lang, args[0])
				})
			},
		},
		&cobra.Command{
			Use:   "compare OLD NEW",
			Short: "List the major changes between an old and a new contract",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withPipeline(cmd.Context(), load, g, func(p *pipeline, lang entity.Language) error {
					return runCompare(cmd.Context(), cmd.OutOrStdout(), p, g, lang, args[0], args[1])
				})
			},
		},
	)
	return cmd
}

func withPipeline(ctx context.Context, load pipelineLoader, g globalFlags, fn func(*pipeline, entity.Language) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	lang, err := entity.ParseLanguage(g.language)
	if err != nil {
		return fmt.Errorf("%w: %q", err, g.language)
	}
	switch g.format {
	case formatText, formatMarkdown, formatJSON:
	default:
		return fmt.Errorf("unknown format %q", g.format)
	}

	p, cleanup, err := load(ctx, g.logLevel)
	if err != nil {
		return err
	}
	if cleanup != nil {
		defer cleanup()
	}
	return fn(p, lang)
}

func runAnalyze(ctx context.Context, w io.Writer, p *pipeline, g globalFlags, lang entity.Language, path string) error {
	doc, err := readDocument(ctx, p.extractor, path)
	if err != nil {
		return err
	}
	analysis, err := p.uc.Analyze(ctx, usecase.AnalyzeInput{Text: doc.Text, Model: g.model, Language: lang})
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if g.format == formatJSON {
		_, err = w.Write(render.PrettyJSON(analysis.Raw))
		return err
	}
	_, err = io.WriteString(w, render.PlainText(render.Analysis(lang, analysis)))
	return err
}

func runCompare(ctx context.Context, w io.Writer, p *pipeline, g globalFlags, lang entity.Language, oldPath, newPath string) error {
	oldDoc, err := readDocument(ctx, p.extractor, oldPath)
	if err != nil {
		return err
	}
	newDoc, err := readDocument(ctx, p.extractor, newPath)
	if err != nil {
		return err
	}
	comparison, err := p.uc.Compare(ctx, usecase.CompareInput{
		OldText:  oldDoc.Text,
		NewText:  newDoc.Text,
		Model:    g.model,
		Language: lang,
	})
	if err != nil {
		return fmt.Errorf("comparison failed: %w", err)
	}

	switch g.format {
	case formatJSON:
		_, err = w.Write(render.JSON(comparison).Body)
	case formatMarkdown:
		_, err = w.Write(render.Markdown(lang, comparison).Body)
	default:
		_, err = io.WriteString(w, render.PlainText(render.Comparison(lang, comparison)))
	}
	return err
}

func readDocument(ctx context.Context, e textExtractor, path string) (extraction.ExtractedText, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return extraction.ExtractedText{}, fmt.Errorf("read %s: %w", path, err)
	}
	doc := e.Extract(ctx, filepath.Base(path), data)
	slog.Info("document extracted", "file", path, "method", doc.Method, "characters", doc.RuneCount())
	return doc, nil
}
