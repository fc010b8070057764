// Package main runs one simulation and writes a Markdown report, a CSV
// of the percentile bands, and a PNG fan chart to an output directory.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"path/filepath"

	"advisor-mc-lab/internal/cma"
	"advisor-mc-lab/internal/domain"
	"advisor-mc-lab/internal/engine"
	"advisor-mc-lab/internal/portfolio"
	"advisor-mc-lab/internal/reporting"
)

func main() {
	portfolioPath := flag.String("portfolio", "", "Path to portfolio description JSON (required)")
	cmaPath := flag.String("cma", "", "Path to CMA override JSON (optional)")
	outputDir := flag.String("output-dir", "output", "Output directory for report files")
	title := flag.String("title", "Portfolio Projection", "Report title")
	nPaths := flag.Int("paths", engine.DefaultPaths, "Number of Monte Carlo paths")
	seed := flag.Uint64("seed", engine.DefaultSeed, "Base random seed")

	flag.Parse()

	logger := log.New(os.Stderr, "[report] ", log.LstdFlags)

	if *portfolioPath == "" {
		logger.Fatal("--portfolio is required")
	}

	p, err := loadPortfolio(*portfolioPath)
	if err != nil {
		logger.Fatalf("Load portfolio: %v", err)
	}

	assumptions := cma.Baseline()
	if *cmaPath != "" {
		override, err := loadOverride(*cmaPath)
		if err != nil {
			logger.Fatalf("Load CMA override: %v", err)
		}
		assumptions = override.Apply(assumptions)
	}

	cfg := engine.Config{
		NPaths:           *nPaths,
		Seed:             *seed,
		StorePercentiles: true,
	}

	res, err := engine.Simulate(context.Background(), p, assumptions, cfg)
	if err != nil {
		logger.Fatalf("Simulate: %v", err)
	}

	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		logger.Fatalf("Create output dir: %v", err)
	}

	report := reporting.NewGenerator().Generate(*title, p, cfg, res)

	md := reporting.RenderMarkdown(report)
	if err := os.WriteFile(filepath.Join(*outputDir, "report.md"), []byte(md), 0o644); err != nil {
		logger.Fatalf("Write report.md: %v", err)
	}

	csv := reporting.RenderCSV(res.Bands)
	if err := os.WriteFile(filepath.Join(*outputDir, "bands.csv"), []byte(csv), 0o644); err != nil {
		logger.Fatalf("Write bands.csv: %v", err)
	}

	chart, err := reporting.RenderFanChart(*title, res.Bands, p.StepsPerYear)
	if err != nil {
		logger.Fatalf("Render chart: %v", err)
	}
	if err := os.WriteFile(filepath.Join(*outputDir, "bands.png"), chart, 0o644); err != nil {
		logger.Fatalf("Write bands.png: %v", err)
	}

	logger.Printf("Report written to %s", *outputDir)
}

func loadPortfolio(path string) (*domain.ClientPortfolio, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var d map[string]any
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, err
	}
	return portfolio.FromMap(d)
}

func loadOverride(path string) (*cma.Override, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var o cma.Override
	if err := json.Unmarshal(data, &o); err != nil {
		return nil, err
	}
	return &o, nil
}
