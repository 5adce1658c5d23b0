package pipeline

import (
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/openlead/leadgen-cli/internal/model"
)

// DefaultNameSimilarityThreshold is the fuzzy-match cutoff used when no
// threshold is configured.
const DefaultNameSimilarityThreshold = 0.85

// Deduplicator collapses a batch of companies into a unique set.
// Domain identity takes precedence; records without a shared domain are
// compared by fuzzy name similarity against every previously kept record.
type Deduplicator struct {
	threshold float64
}

// NewDeduplicator creates a deduplicator with the given name-similarity
// threshold. A zero threshold selects the default; anything outside (0,1]
// is a configuration error.
func NewDeduplicator(threshold float64) (*Deduplicator, error) {
	if threshold == 0 {
		threshold = DefaultNameSimilarityThreshold
	}
	if threshold < 0 || threshold > 1 {
		return nil, eris.Errorf("dedup: similarity threshold %.2f outside (0,1]", threshold)
	}
	return &Deduplicator{threshold: threshold}, nil
}

// Deduplicate returns a new slice with duplicates removed, preserving
// first-seen order. The earliest record with a given identity wins; later
// duplicates are dropped regardless of how complete their data is.
//
// The kept-name scan is O(n²) on purpose: batches are hundreds of records,
// and first-arrival ordering must survive.
func (d *Deduplicator) Deduplicate(companies []*model.Company) []*model.Company {
	if len(companies) == 0 {
		return nil
	}

	unique := make([]*model.Company, 0, len(companies))
	seenDomains := make(map[string]bool)
	seenNames := make([]string, 0, len(companies))

	for _, c := range companies {
		domain := DomainOf(c.Domain, c.Website)
		if domain != "" && seenDomains[domain] {
			zap.L().Debug("dedup: duplicate domain",
				zap.String("domain", domain),
				zap.String("name", c.Name),
			)
			continue
		}

		name := NormalizeName(c.Name)
		if isDuplicateName(name, seenNames, d.threshold) {
			continue
		}

		unique = append(unique, c)
		if domain != "" {
			seenDomains[domain] = true
		}
		seenNames = append(seenNames, name)
	}

	zap.L().Info("dedup: complete",
		zap.Int("input", len(companies)),
		zap.Int("unique", len(unique)),
		zap.Int("removed", len(companies)-len(unique)),
	)

	return unique
}

func isDuplicateName(name string, seen []string, threshold float64) bool {
	for _, s := range seen {
		if sim := Similarity(name, s); sim >= threshold {
			zap.L().Debug("dedup: duplicate name",
				zap.String("name", name),
				zap.String("matched", s),
				zap.Float64("similarity", sim),
			)
			return true
		}
	}
	return false
}
