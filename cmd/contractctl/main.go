// Package main provides contractctl, a command line front end for contract analysis and comparison.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"contract_analyzer/internal/app/config"
	"contract_analyzer/internal/app/di"
	contractusecase "contract_analyzer/internal/feature/contract/usecase"
	"contract_analyzer/internal/platform/metrics"
)

func main() {
	if err := newRootCmd(loadPipeline).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadPipeline builds the extractor and usecase from the environment, as the server does.
func loadPipeline(ctx context.Context, logLevel string) (*pipeline, func(), error) {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: config.ParseLogLevel(logLevel),
	})))

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	m := metrics.New()
	completer, catalog, err := di.NewCompleter(ctx, cfg.LLM, m)
	if err != nil {
		return nil, nil, err
	}
	extractor, cleanup := di.NewExtractor(ctx, cfg.Vision, m)
	return &pipeline{
		uc:        contractusecase.NewContractUsecase(completer, catalog),
		extractor: extractor,
	}, cleanup, nil
}
