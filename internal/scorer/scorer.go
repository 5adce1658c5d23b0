// Package scorer computes multi-factor lead scores and priority buckets.
package scorer

import (
	"math"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/openlead/leadgen-cli/internal/model"
)

// Weights are the relative importance of the four score components.
// They must sum to 1.0; New normalizes proportionally when they don't.
type Weights struct {
	Intent     float64 `json:"intent" mapstructure:"intent"`
	Fit        float64 `json:"fit" mapstructure:"fit"`
	Tech       float64 `json:"tech" mapstructure:"tech"`
	Engagement float64 `json:"engagement" mapstructure:"engagement"`
}

// DefaultWeights returns the standard component weighting.
func DefaultWeights() Weights {
	return Weights{Intent: 0.35, Fit: 0.30, Tech: 0.20, Engagement: 0.15}
}

// Sum returns the total of all component weights.
func (w Weights) Sum() float64 {
	return w.Intent + w.Fit + w.Tech + w.Engagement
}

// weightEpsilon is the tolerance for treating a weight sum as 1.0.
const weightEpsilon = 0.01

// LeadScorer scores companies on hiring intent, company fit, technology
// stack, and engagement signals, then buckets them by priority.
type LeadScorer struct {
	weights Weights
}

// New creates a scorer. A zero Weights value selects the defaults. Negative
// weights or an all-zero sum are configuration errors; a sum that is merely
// off from 1.0 is normalized proportionally with a warning.
func New(weights Weights) (*LeadScorer, error) {
	if weights == (Weights{}) {
		weights = DefaultWeights()
	}
	if weights.Intent < 0 || weights.Fit < 0 || weights.Tech < 0 || weights.Engagement < 0 {
		return nil, eris.New("scorer: weights must be non-negative")
	}
	sum := weights.Sum()
	if math.Abs(sum-1.0) > weightEpsilon {
		zap.L().Warn("scorer: weights do not sum to 1.0, normalizing",
			zap.Float64("sum", sum),
		)
		weights.Intent /= sum
		weights.Fit /= sum
		weights.Tech /= sum
		weights.Engagement /= sum
	}
	return &LeadScorer{weights: weights}, nil
}

// Weights returns the effective (normalized) weights.
func (s *LeadScorer) Weights() Weights {
	return s.weights
}

// Score computes the four component scores and their weighted composite for
// a single company. Each component is capped to [0,100] before weighting.
func (s *LeadScorer) Score(c *model.Company) model.LeadScore {
	intent := intentScore(c)
	fit := fitScore(c)
	tech := techScore(c)
	engagement := engagementScore(c)

	total := intent*s.weights.Intent +
		fit*s.weights.Fit +
		tech*s.weights.Tech +
		engagement*s.weights.Engagement

	score := model.LeadScore{
		Intent:     intent,
		Fit:        fit,
		Tech:       tech,
		Engagement: engagement,
		Total:      total,
		Priority:   model.PriorityForScore(total),
	}

	zap.L().Debug("scorer: scored company",
		zap.String("company", c.Name),
		zap.Float64("total", total),
		zap.String("priority", string(score.Priority)),
	)

	return score
}

// ScoreAll attaches a score to every company and returns the slice reordered
// by total score descending. Relative order of equal scores is unspecified.
func (s *LeadScorer) ScoreAll(companies []*model.Company) []*model.Company {
	for _, c := range companies {
		score := s.Score(c)
		c.Score = &score
	}
	sort.Slice(companies, func(i, j int) bool {
		return companies[i].Score.Total > companies[j].Score.Total
	})
	return companies
}

// intentScore rewards active hiring: 30 for hiring at all, up to 30 at 5 per
// open position, up to 20 at 10 per recent posting, up to 20 at 5 per unit
// of hiring velocity. No hiring enrichment means zero.
func intentScore(c *model.Company) float64 {
	if c.Enrichment == nil || c.Enrichment.HiringIntent == nil {
		return 0
	}
	h := c.Enrichment.HiringIntent

	score := 0.0
	if h.IsHiring {
		score += 30
	}
	if h.TotalOpenPositions > 0 {
		score += math.Min(float64(h.TotalOpenPositions)*5, 30)
	}
	if h.RecentPostings > 0 {
		score += math.Min(float64(h.RecentPostings)*10, 20)
	}
	if h.HiringVelocity > 0 {
		score += math.Min(h.HiringVelocity*5, 20)
	}
	return math.Min(score, 100)
}

var sizeFitScores = map[model.CompanySize]float64{
	model.SizeStartup:    70,
	model.SizeSmall:      80,
	model.SizeMedium:     90,
	model.SizeLarge:      70,
	model.SizeEnterprise: 50,
	model.SizeUnknown:    40,
}

var fundingFitScores = map[model.FundingStage]float64{
	model.StageSeed:        60,
	model.StageSeriesA:     80,
	model.StageSeriesB:     90,
	model.StageSeriesC:     85,
	model.StageSeriesDPlus: 75,
}

// fitScore starts from a size-bucket lookup, averages in the funding-stage
// lookup when funding info exists, and adds a headcount bonus.
//
// Stages outside the funding lookup (bootstrapped, ipo, acquired, unknown)
// contribute 0 to the average, which halves the size score whenever funding
// info carries one of them. That is the inherited behavior, kept as is.
func fitScore(c *model.Company) float64 {
	if c.Enrichment == nil {
		return 50
	}
	e := c.Enrichment

	score, ok := sizeFitScores[e.CompanySize]
	if !ok {
		score = 50
	}

	if e.FundingInfo != nil {
		score = (score + fundingFitScores[e.FundingInfo.Stage]) / 2
	}

	if e.EmployeeCount > 0 {
		switch {
		case e.EmployeeCount >= 20 && e.EmployeeCount <= 500:
			score += 10
		case e.EmployeeCount < 20:
			score += 5
		}
	}

	return math.Min(score, 100)
}

var modernFrameworks = []string{"React", "Vue", "Angular", "Svelte", "Next.js"}

var modernDatabases = []string{"MongoDB", "PostgreSQL", "Redis"}

// techScore rewards visible, modern tooling: 40 baseline for any detected
// technology, 20 for a modern frontend framework, 15 for cloud, 15 for a
// modern database, 10 for analytics.
func techScore(c *model.Company) float64 {
	if c.Enrichment == nil || c.Enrichment.TechStack == nil {
		return 0
	}
	ts := c.Enrichment.TechStack

	score := 0.0
	if len(ts.AllTechnologies()) > 0 {
		score = 40
	}
	if containsAny(ts.Frameworks, modernFrameworks) {
		score += 20
	}
	if len(ts.CloudProviders) > 0 {
		score += 15
	}
	if containsAny(ts.Databases, modernDatabases) {
		score += 15
	}
	if len(ts.Analytics) > 0 {
		score += 10
	}
	return math.Min(score, 100)
}

// engagementScore rewards online presence: website or domain 30, description
// 20, then per-profile bonuses when social enrichment exists.
func engagementScore(c *model.Company) float64 {
	score := 0.0
	if c.Website != "" || c.Domain != "" {
		score += 30
	}
	if c.Description != "" {
		score += 20
	}

	if c.Enrichment != nil && c.Enrichment.SocialProfiles != nil {
		p := c.Enrichment.SocialProfiles
		if p.LinkedIn != "" {
			score += 15
		}
		if p.Twitter != "" {
			score += 10
		}
		if p.GitHub != "" {
			score += 15
		}
		if p.Crunchbase != "" {
			score += 10
		}
	}
	return math.Min(score, 100)
}

func containsAny(have, want []string) bool {
	for _, h := range have {
		for _, w := range want {
			if strings.Contains(strings.ToLower(h), strings.ToLower(w)) {
				return true
			}
		}
	}
	return false
}
