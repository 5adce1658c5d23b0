package source

import (
	"context"

	"github.com/openlead/leadgen-cli/internal/model"
)

// StaticSource serves a fixed, pre-built batch of records. Used for seed
// lists configured inline and as a stand-in adapter in tests.
type StaticSource struct {
	name      string
	kind      model.DataSource
	companies []*model.Company
}

// NewStatic creates a static source over the given records.
func NewStatic(name string, kind model.DataSource, companies []*model.Company) *StaticSource {
	if kind == "" {
		kind = model.SourceManual
	}
	return &StaticSource{name: name, kind: kind, companies: companies}
}

func (s *StaticSource) Name() string           { return s.name }
func (s *StaticSource) Kind() model.DataSource { return s.kind }

// Scrape returns the configured batch. Cancellation is still honored so a
// static source behaves like any other adapter under a dying context.
func (s *StaticSource) Scrape(ctx context.Context) *model.ScrapeResult {
	res := model.NewScrapeResult(s.kind)
	if err := ctx.Err(); err != nil {
		res.AddError(err.Error())
		return res
	}
	for _, c := range s.companies {
		res.AddCompany(c)
	}
	return res
}
