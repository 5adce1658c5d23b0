package pipeline

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/openlead/leadgen-cli/internal/enrich"
	"github.com/openlead/leadgen-cli/internal/model"
	"github.com/openlead/leadgen-cli/internal/scorer"
	"github.com/openlead/leadgen-cli/internal/source"
)

// Stage identifies where a run currently is. Transitions are strictly
// forward; a stage whose feature flag is off or whose input is empty is
// skipped, not failed.
type Stage int32

const (
	StageIdle Stage = iota
	StageCollecting
	StageDeduplicating
	StageEnriching
	StageScoring
	StageFiltering
	StageDone
)

func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "idle"
	case StageCollecting:
		return "collecting"
	case StageDeduplicating:
		return "deduplicating"
	case StageEnriching:
		return "enriching"
	case StageScoring:
		return "scoring"
	case StageFiltering:
		return "filtering"
	case StageDone:
		return "done"
	default:
		return "unknown"
	}
}

// DefaultMaxWorkers bounds concurrent adapter execution.
const DefaultMaxWorkers = 3

// Options configures a pipeline run.
type Options struct {
	EnableDedup      bool
	EnableEnrichment bool
	EnableScoring    bool

	// MaxWorkers bounds how many source adapters run concurrently.
	// Zero selects DefaultMaxWorkers.
	MaxWorkers int

	// MinScoreThreshold drops records scoring below it. Zero disables the
	// filter. Ignored entirely when scoring is disabled.
	MinScoreThreshold float64

	// NameSimilarityThreshold is passed to the deduplicator. Zero selects
	// the default (0.85).
	NameSimilarityThreshold float64
}

// DefaultOptions enables every stage with default bounds.
func DefaultOptions() Options {
	return Options{
		EnableDedup:      true,
		EnableEnrichment: true,
		EnableScoring:    true,
		MaxWorkers:       DefaultMaxWorkers,
	}
}

// StageTiming records how long one stage ran.
type StageTiming struct {
	Stage    string        `json:"stage"`
	Duration time.Duration `json:"duration"`
}

// RunResult is the outcome of a full pipeline run: the final ordered record
// set plus the diagnostics accumulated along the way. An empty Companies
// slice after a successful run is a valid terminal state, not a failure.
type RunResult struct {
	RunID     string        `json:"run_id"`
	Companies []*model.Company `json:"companies"`

	TotalScraped int `json:"total_scraped"`
	UniqueCount  int `json:"unique_count"`
	ScoredCount  int `json:"scored_count"`
	FilteredOut  int `json:"filtered_out"`

	Warnings []string      `json:"warnings,omitempty"`
	Timings  []StageTiming `json:"timings"`
	Elapsed  time.Duration `json:"elapsed"`
}

// Orchestrator drives the collection pipeline: concurrent adapter fan-out
// with failure isolation, then sequential dedup, enrichment, scoring, and
// filtering over the aggregated list. Safe for one run at a time.
type Orchestrator struct {
	opts  Options
	dedup *Deduplicator
	stage atomic.Int32
}

// New validates the options and creates an orchestrator. Invalid
// configuration fails here, before any work starts.
func New(opts Options) (*Orchestrator, error) {
	if opts.MaxWorkers == 0 {
		opts.MaxWorkers = DefaultMaxWorkers
	}
	if opts.MaxWorkers < 0 {
		return nil, eris.Errorf("pipeline: max workers must be positive, got %d", opts.MaxWorkers)
	}
	if opts.MinScoreThreshold < 0 || opts.MinScoreThreshold > 100 {
		return nil, eris.Errorf("pipeline: min score threshold %.2f outside [0,100]", opts.MinScoreThreshold)
	}
	dedup, err := NewDeduplicator(opts.NameSimilarityThreshold)
	if err != nil {
		return nil, err
	}
	return &Orchestrator{opts: opts, dedup: dedup}, nil
}

// Stage returns the stage the current run is in.
func (o *Orchestrator) Stage() Stage {
	return Stage(o.stage.Load())
}

func (o *Orchestrator) setStage(s Stage) {
	o.stage.Store(int32(s))
}

// Run executes the pipeline end to end. Individual adapter, enricher, or
// record failures are isolated and recorded as warnings; the run itself only
// errs on invalid input or cancellation. A cancelled run discards partial
// aggregates rather than emitting an incomplete set.
func (o *Orchestrator) Run(ctx context.Context, sources []source.Source, enrichers []enrich.Enricher, sc *scorer.LeadScorer) (*RunResult, error) {
	start := time.Now()
	result := &RunResult{RunID: uuid.NewString()}
	log := zap.L().With(zap.String("run_id", result.RunID))

	log.Info("pipeline: starting run",
		zap.Int("sources", len(sources)),
		zap.Int("enrichers", len(enrichers)),
		zap.Int("max_workers", o.opts.MaxWorkers),
	)

	defer o.setStage(StageDone)

	track := func(s Stage, fn func()) error {
		if err := ctx.Err(); err != nil {
			return eris.Wrapf(err, "pipeline: cancelled before %s", s)
		}
		o.setStage(s)
		stageStart := time.Now()
		fn()
		result.Timings = append(result.Timings, StageTiming{
			Stage:    s.String(),
			Duration: time.Since(stageStart),
		})
		return nil
	}

	// Collecting: bounded fan-out, single-collector fan-in.
	var companies []*model.Company
	if err := track(StageCollecting, func() {
		companies = o.collect(ctx, sources, result, log)
	}); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		// Downstream stages assume a complete aggregate; a cancelled
		// collection reports no output rather than a partial one.
		return nil, eris.Wrap(err, "pipeline: run cancelled")
	}
	result.TotalScraped = len(companies)

	if len(companies) == 0 {
		log.Warn("pipeline: no companies collected")
		result.Elapsed = time.Since(start)
		return result, nil
	}

	if o.opts.EnableDedup {
		if err := track(StageDeduplicating, func() {
			companies = o.dedup.Deduplicate(companies)
		}); err != nil {
			return nil, err
		}
	}
	result.UniqueCount = len(companies)

	if o.opts.EnableEnrichment && len(enrichers) > 0 {
		if err := track(StageEnriching, func() {
			o.enrichAll(ctx, companies, enrichers, result, log)
		}); err != nil {
			return nil, err
		}
	}

	if o.opts.EnableScoring && sc != nil {
		if err := track(StageScoring, func() {
			companies = sc.ScoreAll(companies)
			result.ScoredCount = len(companies)
		}); err != nil {
			return nil, err
		}

		if o.opts.MinScoreThreshold > 0 {
			if err := track(StageFiltering, func() {
				companies = o.filterByScore(companies, result, log)
			}); err != nil {
				return nil, err
			}
		}
	}

	result.Companies = companies
	result.Elapsed = time.Since(start)

	log.Info("pipeline: run complete",
		zap.Int("scraped", result.TotalScraped),
		zap.Int("final", len(result.Companies)),
		zap.Int("warnings", len(result.Warnings)),
		zap.Duration("elapsed", result.Elapsed),
	)

	return result, nil
}

// collect dispatches every source on a bounded worker pool and merges the
// successful batches in completion order. Merging happens only on the
// collector side of the channel, so workers never touch shared state.
func (o *Orchestrator) collect(ctx context.Context, sources []source.Source, result *RunResult, log *zap.Logger) []*model.Company {
	results := make(chan *model.ScrapeResult, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.opts.MaxWorkers)

	for _, src := range sources {
		src := src
		g.Go(func() error {
			results <- scrapeGuarded(gctx, src)
			return nil
		})
	}

	go func() {
		_ = g.Wait()
		close(results)
	}()

	var companies []*model.Company
	for res := range results {
		if !res.Succeeded {
			msg := fmt.Sprintf("source %s failed: %v", res.Source, res.Errors)
			result.Warnings = append(result.Warnings, msg)
			log.Error("pipeline: source failed",
				zap.String("source", string(res.Source)),
				zap.Strings("errors", res.Errors),
			)
			continue
		}
		for _, w := range res.Warnings {
			result.Warnings = append(result.Warnings, fmt.Sprintf("source %s: %s", res.Source, w))
		}
		companies = append(companies, res.Companies...)
		log.Info("pipeline: source complete",
			zap.String("source", string(res.Source)),
			zap.Int("companies", len(res.Companies)),
			zap.Duration("elapsed", res.Elapsed),
		)
	}
	return companies
}

// scrapeGuarded invokes a source and converts a panic into a failed batch.
// The adapter contract forbids panics, but one misbehaving source must not
// take down the run.
func scrapeGuarded(ctx context.Context, src source.Source) (res *model.ScrapeResult) {
	defer func() {
		if r := recover(); r != nil {
			res = model.NewScrapeResult(src.Kind())
			res.AddError(fmt.Sprintf("panic in %s: %v", src.Name(), r))
		}
	}()
	return src.Scrape(ctx)
}

// enrichAll applies every enricher to every record, declaration order then
// record order. Failures are per record per enricher: logged, recorded as a
// warning, and skipped.
func (o *Orchestrator) enrichAll(ctx context.Context, companies []*model.Company, enrichers []enrich.Enricher, result *RunResult, log *zap.Logger) {
	for _, e := range enrichers {
		for _, c := range companies {
			if err := e.Enrich(ctx, c); err != nil {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("enricher %s: %s: %v", e.Name(), c.Name, err))
				log.Warn("pipeline: enrichment failed",
					zap.String("enricher", e.Name()),
					zap.String("company", c.Name),
					zap.Error(err),
				)
				continue
			}
			c.Touch()
		}
	}
}

func (o *Orchestrator) filterByScore(companies []*model.Company, result *RunResult, log *zap.Logger) []*model.Company {
	kept := companies[:0]
	for _, c := range companies {
		if c.Score != nil && c.Score.Total >= o.opts.MinScoreThreshold {
			kept = append(kept, c)
		}
	}
	result.FilteredOut = len(companies) - len(kept)
	log.Info("pipeline: score filter applied",
		zap.Float64("threshold", o.opts.MinScoreThreshold),
		zap.Int("kept", len(kept)),
		zap.Int("dropped", result.FilteredOut),
	)
	return kept
}
