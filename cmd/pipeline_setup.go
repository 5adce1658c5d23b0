package main

import (
	"github.com/rotisserie/eris"

	"github.com/openlead/leadgen-cli/internal/config"
	"github.com/openlead/leadgen-cli/internal/enrich"
	"github.com/openlead/leadgen-cli/internal/pipeline"
	"github.com/openlead/leadgen-cli/internal/resilience"
	"github.com/openlead/leadgen-cli/internal/scorer"
	"github.com/openlead/leadgen-cli/internal/source"
)

// breakers is shared across commands so API-source circuit state survives
// repeated runs inside one process (the serve command in particular).
var breakers *resilience.ServiceBreakers

func serviceBreakers(cfg *config.Config) *resilience.ServiceBreakers {
	if breakers == nil {
		breakers = resilience.NewServiceBreakers(
			resilience.FromCircuitConfig(cfg.Circuit.FailureThreshold, cfg.Circuit.ResetTimeoutSecs))
	}
	return breakers
}

// loadSources builds the source registry from the configured catalog.
func loadSources(cfg *config.Config, catalogPath string) (*source.Registry, error) {
	if catalogPath == "" {
		catalogPath = cfg.Sources.Catalog
	}
	cat, err := source.LoadCatalog(catalogPath)
	if err != nil {
		return nil, err
	}
	retry := resilience.FromRetryConfig(
		cfg.Retry.MaxAttempts,
		cfg.Retry.InitialBackoffMs,
		cfg.Retry.MaxBackoffMs,
		cfg.Retry.Multiplier,
		cfg.Retry.JitterFraction,
	)
	return cat.BuildRegistry(serviceBreakers(cfg), retry)
}

// defaultEnrichers returns the enrichment chain in its fixed application
// order: identity fields first, then size, then hiring signals.
func defaultEnrichers() []enrich.Enricher {
	return []enrich.Enricher{
		enrich.NewDomain(),
		enrich.NewSize(),
		enrich.NewHiring(),
	}
}

func buildScorer(cfg *config.Config) (*scorer.LeadScorer, error) {
	sc, err := scorer.New(cfg.Scoring.Weights)
	if err != nil {
		return nil, eris.Wrap(err, "build scorer")
	}
	return sc, nil
}

func buildOrchestrator(cfg *config.Config, minScore float64) (*pipeline.Orchestrator, error) {
	return pipeline.New(pipeline.Options{
		EnableDedup:             cfg.Pipeline.EnableDedup,
		EnableEnrichment:        cfg.Pipeline.EnableEnrichment,
		EnableScoring:           cfg.Pipeline.EnableScoring,
		MaxWorkers:              cfg.Pipeline.Workers,
		MinScoreThreshold:       minScore,
		NameSimilarityThreshold: cfg.Dedup.NameSimilarityThreshold,
	})
}
