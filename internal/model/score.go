package model

// Priority is the discrete bucket derived from the composite lead score.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Bucket thresholds are fixed contract constants, not configuration.
const (
	HighPriorityThreshold   = 70.0
	MediumPriorityThreshold = 40.0
)

// PriorityForScore maps a composite score to its bucket.
// total >= 70 is high, 40 <= total < 70 is medium, below 40 is low.
func PriorityForScore(total float64) Priority {
	switch {
	case total >= HighPriorityThreshold:
		return PriorityHigh
	case total >= MediumPriorityThreshold:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// LeadScore holds the four component scores and their weighted composite.
// Total is always derived from the components by the scorer, never set
// independently.
type LeadScore struct {
	Intent     float64  `json:"intent_score"`
	Fit        float64  `json:"fit_score"`
	Tech       float64  `json:"tech_score"`
	Engagement float64  `json:"engagement_score"`
	Total      float64  `json:"total_score"`
	Priority   Priority `json:"priority"`
}
