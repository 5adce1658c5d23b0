package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScrapeResult_AddCompany(t *testing.T) {
	r := NewScrapeResult(SourceProductHunt)
	assert.True(t, r.Succeeded)

	c, err := NewCompany("Acme", SourceProductHunt)
	require.NoError(t, err)
	r.AddCompany(c)

	assert.Len(t, r.Companies, 1)
	assert.True(t, r.Succeeded)
}

func TestScrapeResult_AddError_FlipsSucceeded(t *testing.T) {
	r := NewScrapeResult(SourceClutch)
	r.AddError("fetch failed: connection reset")

	assert.False(t, r.Succeeded)
	assert.Equal(t, []string{"fetch failed: connection reset"}, r.Errors)
}

func TestScrapeResult_AddWarning_KeepsSucceeded(t *testing.T) {
	r := NewScrapeResult(SourceClutch)
	r.AddWarning("row 3: empty name, skipped")

	assert.True(t, r.Succeeded)
	assert.Len(t, r.Warnings, 1)
}
