package enrich

import (
	"context"
	"net/url"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/openlead/leadgen-cli/internal/model"
)

// DomainEnricher fills in whichever of domain/website is missing when the
// other is present, so downstream identity matching and scoring see both.
// It also lifts social profile URLs adapters stashed in ExtraData into the
// structured enrichment.
type DomainEnricher struct{}

func NewDomain() *DomainEnricher { return &DomainEnricher{} }

func (e *DomainEnricher) Name() string { return "domain" }

func (e *DomainEnricher) Enrich(_ context.Context, c *model.Company) error {
	if c.Domain == "" && c.Website != "" {
		host, err := hostOf(c.Website)
		if err != nil {
			return eris.Wrapf(err, "derive domain for %s", c.Name)
		}
		c.Domain = host
	}
	if c.Website == "" && c.Domain != "" {
		c.Website = "https://" + strings.TrimPrefix(strings.ToLower(c.Domain), "www.")
	}
	seedSocialProfiles(c)
	return nil
}

// seedSocialProfiles copies well-known profile URL keys from ExtraData.
// Values already set by an earlier enricher win.
func seedSocialProfiles(c *model.Company) {
	keys := map[string]func(*model.SocialProfiles) *string{
		"linkedin_url":   func(p *model.SocialProfiles) *string { return &p.LinkedIn },
		"twitter_url":    func(p *model.SocialProfiles) *string { return &p.Twitter },
		"facebook_url":   func(p *model.SocialProfiles) *string { return &p.Facebook },
		"github_url":     func(p *model.SocialProfiles) *string { return &p.GitHub },
		"crunchbase_url": func(p *model.SocialProfiles) *string { return &p.Crunchbase },
	}

	for key, field := range keys {
		v := strings.TrimSpace(c.Extra(key))
		if v == "" {
			continue
		}
		en := c.EnrichmentOf()
		if en.SocialProfiles == nil {
			en.SocialProfiles = &model.SocialProfiles{}
		}
		if dst := field(en.SocialProfiles); *dst == "" {
			*dst = v
		}
	}
}

func hostOf(website string) (string, error) {
	w := strings.TrimSpace(website)
	if !strings.Contains(w, "://") {
		w = "https://" + w
	}
	u, err := url.Parse(w)
	if err != nil {
		return "", err
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return "", eris.Errorf("no host in %q", website)
	}
	return strings.TrimPrefix(host, "www."), nil
}
