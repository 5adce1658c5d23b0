package model

import (
	"time"

	"github.com/rotisserie/eris"
)

// TechStack holds detected technologies grouped by category.
type TechStack struct {
	Languages      []string `json:"languages,omitempty"`
	Frameworks     []string `json:"frameworks,omitempty"`
	Databases      []string `json:"databases,omitempty"`
	CloudProviders []string `json:"cloud_providers,omitempty"`
	Tools          []string `json:"tools,omitempty"`
	Analytics      []string `json:"analytics,omitempty"`
	Marketing      []string `json:"marketing,omitempty"`
}

// AllTechnologies flattens every category into a single list, preserving
// category order then insertion order.
func (t *TechStack) AllTechnologies() []string {
	if t == nil {
		return nil
	}
	out := make([]string, 0,
		len(t.Languages)+len(t.Frameworks)+len(t.Databases)+
			len(t.CloudProviders)+len(t.Tools)+len(t.Analytics)+len(t.Marketing))
	out = append(out, t.Languages...)
	out = append(out, t.Frameworks...)
	out = append(out, t.Databases...)
	out = append(out, t.CloudProviders...)
	out = append(out, t.Tools...)
	out = append(out, t.Analytics...)
	out = append(out, t.Marketing...)
	return out
}

// HiringIntent captures hiring activity signals.
type HiringIntent struct {
	TotalOpenPositions int     `json:"total_open_positions"`
	RecentPostings     int     `json:"recent_postings"` // last 30 days
	EngineeringRoles   int     `json:"engineering_positions"`
	SalesRoles         int     `json:"sales_positions"`
	MarketingRoles     int     `json:"marketing_positions"`
	HiringVelocity     float64 `json:"hiring_velocity"` // jobs/month
	IsHiring           bool    `json:"is_hiring"`
}

// FundingInfo captures investment history.
type FundingInfo struct {
	Stage             FundingStage `json:"stage"`
	TotalFunding      float64      `json:"total_funding,omitempty"` // USD
	LastFundingDate   *time.Time   `json:"last_funding_date,omitempty"`
	LastFundingAmount float64      `json:"last_funding_amount,omitempty"`
	Investors         []string     `json:"investors,omitempty"`
	Valuation         float64      `json:"valuation,omitempty"`
}

// GeographicInfo captures company location facts.
type GeographicInfo struct {
	Country      string `json:"country,omitempty"`
	Region       string `json:"region,omitempty"`
	City         string `json:"city,omitempty"`
	Timezone     string `json:"timezone,omitempty"`
	Headquarters string `json:"headquarters,omitempty"`
}

// SocialProfiles holds links to a company's social presence.
type SocialProfiles struct {
	LinkedIn   string `json:"linkedin,omitempty"`
	Twitter    string `json:"twitter,omitempty"`
	Facebook   string `json:"facebook,omitempty"`
	GitHub     string `json:"github,omitempty"`
	Crunchbase string `json:"crunchbase,omitempty"`
}

// Enrichment is the structured data enrichers attach to a company.
// Zero or one per record.
type Enrichment struct {
	TechStack      *TechStack      `json:"tech_stack,omitempty"`
	HiringIntent   *HiringIntent   `json:"hiring_intent,omitempty"`
	FundingInfo    *FundingInfo    `json:"funding_info,omitempty"`
	GeographicInfo *GeographicInfo `json:"geographic_info,omitempty"`
	SocialProfiles *SocialProfiles `json:"social_profiles,omitempty"`
	EmployeeCount  int             `json:"employee_count,omitempty"`
	CompanySize    CompanySize     `json:"company_size,omitempty"`
	FoundedYear    int             `json:"founded_year,omitempty"`
	Industry       string          `json:"industry,omitempty"`
	Tags           []string        `json:"tags,omitempty"`
}

// EnrichmentOf returns the company's enrichment, allocating it on first use
// so enrichers can attach data without nil checks at every call site.
func (c *Company) EnrichmentOf() *Enrichment {
	if c.Enrichment == nil {
		c.Enrichment = &Enrichment{CompanySize: SizeUnknown}
	}
	return c.Enrichment
}

// ValidateFoundedYear enforces the 1800..current-year invariant.
func ValidateFoundedYear(year int, now time.Time) error {
	if year == 0 {
		return nil
	}
	if year < 1800 || year > now.Year() {
		return eris.Errorf("model: invalid founded year %d", year)
	}
	return nil
}
