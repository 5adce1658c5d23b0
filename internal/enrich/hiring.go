package enrich

import (
	"context"

	"github.com/openlead/leadgen-cli/internal/model"
)

// HiringEnricher builds a hiring-intent signal from the job-posting facts
// adapters stash in ExtraData: open_positions, recent_postings, and the
// per-department counts when a source provides them.
type HiringEnricher struct{}

func NewHiring() *HiringEnricher { return &HiringEnricher{} }

func (e *HiringEnricher) Name() string { return "hiring" }

func (e *HiringEnricher) Enrich(_ context.Context, c *model.Company) error {
	open := c.ExtraInt("open_positions")
	recent := c.ExtraInt("recent_postings")
	if open == 0 && recent == 0 {
		return nil // no signal, leave the record untouched
	}

	intent := &model.HiringIntent{
		TotalOpenPositions: open,
		RecentPostings:     recent,
		EngineeringRoles:   c.ExtraInt("engineering_positions"),
		SalesRoles:         c.ExtraInt("sales_positions"),
		MarketingRoles:     c.ExtraInt("marketing_positions"),
		IsHiring:           open > 0,
	}
	// Recent postings cover the trailing 30 days, so they double as a
	// jobs-per-month velocity.
	intent.HiringVelocity = float64(recent)

	c.EnrichmentOf().HiringIntent = intent
	return nil
}
