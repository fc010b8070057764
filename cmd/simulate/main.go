// Package main runs one simulation from a portfolio description file
// and prints the result as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"advisor-mc-lab/internal/cma"
	"advisor-mc-lab/internal/domain"
	"advisor-mc-lab/internal/engine"
	"advisor-mc-lab/internal/portfolio"
)

func main() {
	portfolioPath := flag.String("portfolio", "", "Path to portfolio description JSON (required)")
	cmaPath := flag.String("cma", "", "Path to CMA override JSON (optional)")
	nPaths := flag.Int("paths", engine.DefaultPaths, "Number of Monte Carlo paths")
	seed := flag.Uint64("seed", engine.DefaultSeed, "Base random seed")
	percentiles := flag.Bool("percentiles", true, "Compute time-series percentile bands")
	subsampleCap := flag.Int("subsample-cap", engine.DefaultSubsampleCap, "Max paths retained for percentile bands")
	scheduledMode := flag.String("scheduled-mode", "per_step", "Scheduled flow mode: per_step or spread")
	workers := flag.Int("workers", 0, "Worker goroutines (0 = GOMAXPROCS)")

	flag.Parse()

	logger := log.New(os.Stderr, "[simulate] ", log.LstdFlags)

	if *portfolioPath == "" {
		logger.Fatal("--portfolio is required")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Printf("Received signal %v, shutting down...", sig)
		cancel()
	}()

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
		StorePercentiles: *percentiles,
		SubsampleCap:     *subsampleCap,
		Workers:          *workers,
		ScheduledMode:    *scheduledMode,
	}

	res, err := engine.Simulate(ctx, p, assumptions, cfg)
	if err != nil {
		logger.Fatalf("Simulate: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		logger.Fatalf("Encode result: %v", err)
	}
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
