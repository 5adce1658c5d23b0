package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFlatten_BareCompany(t *testing.T) {
	c := &Company{
		Name:      "Acme",
		Source:    SourceManual,
		ScrapedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
	row := c.Flatten()

	assert.Equal(t, "Acme", row.CompanyName)
	assert.Equal(t, "manual", row.Source)
	assert.Equal(t, "2026-08-01T12:00:00Z", row.ScrapedAt)
	assert.Empty(t, row.Priority)
	assert.Zero(t, row.TotalScore)
}

func TestFlatten_FullyEnriched(t *testing.T) {
	c := &Company{
		Name:    "Acme",
		Domain:  "acme.com",
		Website: "https://acme.com",
		Source:  SourceCrunchbase,
		Enrichment: &Enrichment{
			EmployeeCount: 120,
			CompanySize:   SizeMedium,
			FoundedYear:   2015,
			Industry:      "robotics",
			GeographicInfo: &GeographicInfo{
				Country: "US",
				City:    "Austin",
			},
			FundingInfo: &FundingInfo{
				Stage:        StageSeriesB,
				TotalFunding: 45_000_000,
			},
			HiringIntent: &HiringIntent{
				TotalOpenPositions: 9,
				IsHiring:           true,
			},
			TechStack: &TechStack{
				Languages:  []string{"Go"},
				Frameworks: []string{"React"},
			},
		},
		Score: &LeadScore{Total: 81.5, Priority: PriorityHigh},
	}

	row := c.Flatten()
	assert.Equal(t, 120, row.EmployeeCnt)
	assert.Equal(t, "medium", row.CompanySize)
	assert.Equal(t, "series_b", row.FundingStage)
	assert.Equal(t, 45_000_000.0, row.TotalFunding)
	assert.Equal(t, 9, row.OpenRoles)
	assert.True(t, row.IsHiring)
	assert.Equal(t, "Go, React", row.Technologies)
	assert.Equal(t, 81.5, row.TotalScore)
	assert.Equal(t, "high", row.Priority)
	assert.Equal(t, "US", row.Country)
}

func TestFlatten_TechnologiesCapped(t *testing.T) {
	langs := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"}
	c := &Company{
		Name:       "Acme",
		Enrichment: &Enrichment{TechStack: &TechStack{Languages: langs}},
	}
	row := c.Flatten()
	assert.Equal(t, "a, b, c, d, e, f, g, h, i, j", row.Technologies)
}
