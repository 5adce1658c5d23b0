// Package enrich defines the enricher contract and enrichers that derive
// structured facts from data the adapters already collected.
package enrich

import (
	"context"

	"github.com/openlead/leadgen-cli/internal/model"
)

// Enricher attaches additional structured facts to a company record.
// Enrich mutates the record in place; a returned error covers that single
// record only and is caught at the orchestrator call site, so one bad
// record never aborts the enrichment of the rest.
type Enricher interface {
	Name() string
	Enrich(ctx context.Context, c *model.Company) error
}
