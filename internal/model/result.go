package model

import "time"

// ScrapeResult is the per-adapter outcome envelope: the records it produced
// plus success status and diagnostics. Created fresh per Scrape call and
// discarded once its records are merged into the run aggregate.
type ScrapeResult struct {
	Source    DataSource    `json:"source"`
	Companies []*Company    `json:"companies"`
	Succeeded bool          `json:"succeeded"`
	Errors    []string      `json:"errors,omitempty"`
	Warnings  []string      `json:"warnings,omitempty"`
	Elapsed   time.Duration `json:"elapsed"`
}

// NewScrapeResult returns an empty successful result for a source.
func NewScrapeResult(source DataSource) *ScrapeResult {
	return &ScrapeResult{Source: source, Succeeded: true}
}

// AddCompany appends a record to the batch.
func (r *ScrapeResult) AddCompany(c *Company) {
	r.Companies = append(r.Companies, c)
}

// AddError records a failure and marks the batch as unsuccessful.
func (r *ScrapeResult) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
	r.Succeeded = false
}

// AddWarning records a non-fatal diagnostic.
func (r *ScrapeResult) AddWarning(msg string) {
	r.Warnings = append(r.Warnings, msg)
}
