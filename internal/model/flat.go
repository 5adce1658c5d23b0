package model

import (
	"strings"
	"time"
)

// FlatRow is the tabular projection of a Company used by the CSV and XLSX
// exporters. Nested enrichment and score data is collapsed into columns.
type FlatRow struct {
	CompanyName  string  `csv:"company_name" json:"company_name"`
	Domain       string  `csv:"domain" json:"domain"`
	Website      string  `csv:"website" json:"website"`
	Description  string  `csv:"description" json:"description"`
	Source       string  `csv:"source" json:"source"`
	SourceURL    string  `csv:"source_url" json:"source_url"`
	ScrapedAt    string  `csv:"scraped_at" json:"scraped_at"`
	EmployeeCnt  int     `csv:"employee_count" json:"employee_count"`
	CompanySize  string  `csv:"company_size" json:"company_size"`
	FoundedYear  int     `csv:"founded_year" json:"founded_year"`
	Industry     string  `csv:"industry" json:"industry"`
	Country      string  `csv:"country" json:"country"`
	City         string  `csv:"city" json:"city"`
	FundingStage string  `csv:"funding_stage" json:"funding_stage"`
	TotalFunding float64 `csv:"total_funding" json:"total_funding"`
	OpenRoles    int     `csv:"open_positions" json:"open_positions"`
	IsHiring     bool    `csv:"is_hiring" json:"is_hiring"`
	Technologies string  `csv:"technologies" json:"technologies"`
	TotalScore   float64 `csv:"total_score" json:"total_score"`
	Priority     string  `csv:"priority" json:"priority"`
}

// maxFlatTechnologies caps the technologies column so spreadsheet cells stay
// readable for heavily enriched records.
const maxFlatTechnologies = 10

// Flatten projects a company onto a FlatRow.
func (c *Company) Flatten() FlatRow {
	row := FlatRow{
		CompanyName: c.Name,
		Domain:      c.Domain,
		Website:     c.Website,
		Description: c.Description,
		Source:      string(c.Source),
		SourceURL:   c.SourceURL,
		ScrapedAt:   c.ScrapedAt.UTC().Format(time.RFC3339),
	}

	if e := c.Enrichment; e != nil {
		row.EmployeeCnt = e.EmployeeCount
		row.CompanySize = string(e.CompanySize)
		row.FoundedYear = e.FoundedYear
		row.Industry = e.Industry
		if e.GeographicInfo != nil {
			row.Country = e.GeographicInfo.Country
			row.City = e.GeographicInfo.City
		}
		if e.FundingInfo != nil {
			row.FundingStage = string(e.FundingInfo.Stage)
			row.TotalFunding = e.FundingInfo.TotalFunding
		}
		if e.HiringIntent != nil {
			row.OpenRoles = e.HiringIntent.TotalOpenPositions
			row.IsHiring = e.HiringIntent.IsHiring
		}
		if techs := e.TechStack.AllTechnologies(); len(techs) > 0 {
			if len(techs) > maxFlatTechnologies {
				techs = techs[:maxFlatTechnologies]
			}
			row.Technologies = strings.Join(techs, ", ")
		}
	}

	if c.Score != nil {
		row.TotalScore = c.Score.Total
		row.Priority = string(c.Score.Priority)
	}

	return row
}
