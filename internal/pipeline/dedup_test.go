package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openlead/leadgen-cli/internal/model"
)

func mustCompany(t *testing.T, name, domain string) *model.Company {
	t.Helper()
	c, err := model.NewCompany(name, model.SourceManual)
	require.NoError(t, err)
	c.Domain = domain
	return c
}

func defaultDedup(t *testing.T) *Deduplicator {
	t.Helper()
	d, err := NewDeduplicator(0)
	require.NoError(t, err)
	return d
}

func TestNewDeduplicator_ZeroSelectsDefault(t *testing.T) {
	d := defaultDedup(t)
	assert.Equal(t, DefaultNameSimilarityThreshold, d.threshold)
}

func TestNewDeduplicator_InvalidThreshold(t *testing.T) {
	_, err := NewDeduplicator(1.5)
	assert.Error(t, err)
	_, err = NewDeduplicator(-0.1)
	assert.Error(t, err)
}

func TestDeduplicate_Empty(t *testing.T) {
	d := defaultDedup(t)
	assert.Nil(t, d.Deduplicate(nil))
	assert.Nil(t, d.Deduplicate([]*model.Company{}))
}

func TestDeduplicate_DomainMatch(t *testing.T) {
	d := defaultDedup(t)
	in := []*model.Company{
		mustCompany(t, "Example Inc", "example.com"),
		mustCompany(t, "Example Inc.", "example.com"),
	}
	out := d.Deduplicate(in)
	require.Len(t, out, 1)
	assert.Equal(t, "Example Inc", out[0].Name)
}

func TestDeduplicate_DomainFromWebsite(t *testing.T) {
	d := defaultDedup(t)
	a := mustCompany(t, "Widgets Co", "widgets.io")
	b := mustCompany(t, "Totally Different Name", "")
	b.Website = "https://www.widgets.io/about"

	out := d.Deduplicate([]*model.Company{a, b})
	require.Len(t, out, 1)
	assert.Equal(t, "Widgets Co", out[0].Name)
}

func TestDeduplicate_FuzzyNameMatch(t *testing.T) {
	d := defaultDedup(t)
	in := []*model.Company{
		mustCompany(t, "Example Inc", ""),
		mustCompany(t, "Example Corporation", ""),
	}
	out := d.Deduplicate(in)
	require.Len(t, out, 1)
	assert.Equal(t, "Example Inc", out[0].Name)
}

func TestDeduplicate_DissimilarNamesKept(t *testing.T) {
	d := defaultDedup(t)
	in := []*model.Company{
		mustCompany(t, "Example Inc", ""),
		mustCompany(t, "Different Corp", ""),
	}
	out := d.Deduplicate(in)
	assert.Len(t, out, 2)
}

func TestDeduplicate_FirstArrivalWins(t *testing.T) {
	d := defaultDedup(t)
	sparse := mustCompany(t, "Example Inc", "example.com")
	rich := mustCompany(t, "Example Inc.", "example.com")
	rich.Description = "much more complete record"
	rich.Enrichment = &model.Enrichment{Industry: "saas"}

	out := d.Deduplicate([]*model.Company{sparse, rich})
	require.Len(t, out, 1)
	// Completeness does not matter: earliest wins.
	assert.Same(t, sparse, out[0])
}

func TestDeduplicate_PreservesInputOrder(t *testing.T) {
	d := defaultDedup(t)
	in := []*model.Company{
		mustCompany(t, "Alpha Systems", "alpha.io"),
		mustCompany(t, "Beta Works", "beta.io"),
		mustCompany(t, "Alpha Systems Inc", "alpha.io"), // dup
		mustCompany(t, "Gamma Labs", "gamma.io"),
	}
	out := d.Deduplicate(in)
	require.Len(t, out, 3)
	assert.Equal(t, "Alpha Systems", out[0].Name)
	assert.Equal(t, "Beta Works", out[1].Name)
	assert.Equal(t, "Gamma Labs", out[2].Name)
}

func TestDeduplicate_OutputNeverLonger(t *testing.T) {
	d := defaultDedup(t)
	in := []*model.Company{
		mustCompany(t, "A Co", "a.com"),
		mustCompany(t, "B Co", "b.com"),
		mustCompany(t, "A Company", "a.com"),
	}
	out := d.Deduplicate(in)
	assert.LessOrEqual(t, len(out), len(in))
}

func TestDeduplicate_NoSharedDomainsInOutput(t *testing.T) {
	d := defaultDedup(t)
	in := []*model.Company{
		mustCompany(t, "One", "x.com"),
		mustCompany(t, "Two", "https://www.x.com"),
		mustCompany(t, "Three", "y.com"),
	}
	out := d.Deduplicate(in)

	seen := make(map[string]bool)
	for _, c := range out {
		dom := DomainOf(c.Domain, c.Website)
		if dom == "" {
			continue
		}
		assert.False(t, seen[dom], "domain %s appears twice", dom)
		seen[dom] = true
	}
}

func TestDeduplicate_Idempotent(t *testing.T) {
	d := defaultDedup(t)
	in := []*model.Company{
		mustCompany(t, "Example Inc", "example.com"),
		mustCompany(t, "Example Inc.", "example.com"),
		mustCompany(t, "Different Corp", "different.com"),
		mustCompany(t, "Acme Robotics", ""),
	}
	once := d.Deduplicate(in)
	twice := d.Deduplicate(once)
	assert.Equal(t, once, twice)
}
