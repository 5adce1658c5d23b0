package model

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

// DataSource identifies where a company record was collected from.
type DataSource string

const (
	SourceProductHunt DataSource = "product_hunt"
	SourceAngelList   DataSource = "angellist"
	SourceCrunchbase  DataSource = "crunchbase"
	SourceClutch      DataSource = "clutch"
	SourceJobBoards   DataSource = "job_boards"
	SourceLinkedIn    DataSource = "linkedin"
	SourceManual      DataSource = "manual"
	SourceAPI         DataSource = "api"
	SourceOther       DataSource = "other"
)

// CompanySize buckets companies by headcount.
type CompanySize string

const (
	SizeStartup    CompanySize = "startup"    // 1-10 employees
	SizeSmall      CompanySize = "small"      // 11-50 employees
	SizeMedium     CompanySize = "medium"     // 51-200 employees
	SizeLarge      CompanySize = "large"      // 201-1000 employees
	SizeEnterprise CompanySize = "enterprise" // 1000+ employees
	SizeUnknown    CompanySize = "unknown"
)

// SizeForEmployeeCount maps a headcount to its size bucket.
// Non-positive counts map to SizeUnknown.
func SizeForEmployeeCount(n int) CompanySize {
	switch {
	case n <= 0:
		return SizeUnknown
	case n <= 10:
		return SizeStartup
	case n <= 50:
		return SizeSmall
	case n <= 200:
		return SizeMedium
	case n <= 1000:
		return SizeLarge
	default:
		return SizeEnterprise
	}
}

// FundingStage categorizes how far along a company's funding is.
type FundingStage string

const (
	StageBootstrapped FundingStage = "bootstrapped"
	StagePreSeed      FundingStage = "pre_seed"
	StageSeed         FundingStage = "seed"
	StageSeriesA      FundingStage = "series_a"
	StageSeriesB      FundingStage = "series_b"
	StageSeriesC      FundingStage = "series_c"
	StageSeriesDPlus  FundingStage = "series_d_plus"
	StageIPO          FundingStage = "ipo"
	StageAcquired     FundingStage = "acquired"
	StageUnknown      FundingStage = "unknown"
)

// Company is the canonical unit of collected lead data. Records are created
// by source adapters, enriched and scored in place by the pipeline, and not
// mutated after the run returns them.
type Company struct {
	Name        string `json:"name"`
	Domain      string `json:"domain,omitempty"`
	Website     string `json:"website,omitempty"`
	Description string `json:"description,omitempty"`

	Source    DataSource `json:"source"`
	SourceURL string     `json:"source_url,omitempty"`

	Enrichment *Enrichment `json:"enrichment,omitempty"`
	Score      *LeadScore  `json:"score,omitempty"`

	ScrapedAt time.Time `json:"scraped_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// ExtraData carries source-specific facts the adapters collected but the
	// core model has no field for (job posting counts, employee ranges, raw
	// profile URLs). Enrichers read from here.
	ExtraData map[string]any `json:"extra_data,omitempty"`
}

// NewCompany creates a company with a trimmed name and defaulted timestamps.
// Returns an error when the name is empty after trimming.
func NewCompany(name string, source DataSource) (*Company, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, eris.New("model: company name is required")
	}
	if source == "" {
		source = SourceOther
	}
	now := time.Now().UTC()
	return &Company{
		Name:      name,
		Source:    source,
		ScrapedAt: now,
		UpdatedAt: now,
	}, nil
}

// Touch updates the record's UpdatedAt timestamp.
func (c *Company) Touch() {
	c.UpdatedAt = time.Now().UTC()
}

// Extra returns a string value from ExtraData, or "" when absent.
func (c *Company) Extra(key string) string {
	if c.ExtraData == nil {
		return ""
	}
	if s, ok := c.ExtraData[key].(string); ok {
		return s
	}
	return ""
}

// ExtraInt returns an integer value from ExtraData, tolerating the numeric
// types JSON decoding produces. Returns 0 when absent or non-numeric.
func (c *Company) ExtraInt(key string) int {
	if c.ExtraData == nil {
		return 0
	}
	switch v := c.ExtraData[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}

// ExtraFloat returns a float value from ExtraData, or 0 when absent.
func (c *Company) ExtraFloat(key string) float64 {
	if c.ExtraData == nil {
		return 0
	}
	switch v := c.ExtraData[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return 0
	}
}

// SetExtra stores a source-specific fact, allocating the map on first use.
func (c *Company) SetExtra(key string, value any) {
	if c.ExtraData == nil {
		c.ExtraData = make(map[string]any)
	}
	c.ExtraData[key] = value
}
