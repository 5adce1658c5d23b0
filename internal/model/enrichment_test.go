package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTechStack_AllTechnologies(t *testing.T) {
	ts := &TechStack{
		Languages:      []string{"Go", "Python"},
		Frameworks:     []string{"React"},
		Databases:      []string{"PostgreSQL"},
		CloudProviders: []string{"AWS"},
		Analytics:      []string{"Mixpanel"},
	}
	all := ts.AllTechnologies()
	assert.Equal(t, []string{"Go", "Python", "React", "PostgreSQL", "AWS", "Mixpanel"}, all)
}

func TestTechStack_AllTechnologies_Nil(t *testing.T) {
	var ts *TechStack
	assert.Nil(t, ts.AllTechnologies())
}

func TestEnrichmentOf_AllocatesOnce(t *testing.T) {
	c := &Company{}
	e := c.EnrichmentOf()
	assert.NotNil(t, e)
	assert.Equal(t, SizeUnknown, e.CompanySize)

	e.Industry = "fintech"
	assert.Same(t, e, c.EnrichmentOf())
	assert.Equal(t, "fintech", c.Enrichment.Industry)
}

func TestValidateFoundedYear(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	assert.NoError(t, ValidateFoundedYear(0, now))
	assert.NoError(t, ValidateFoundedYear(1800, now))
	assert.NoError(t, ValidateFoundedYear(2026, now))
	assert.Error(t, ValidateFoundedYear(1799, now))
	assert.Error(t, ValidateFoundedYear(2027, now))
}
