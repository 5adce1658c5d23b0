package source

import (
	"os"
	"time"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/openlead/leadgen-cli/internal/model"
	"github.com/openlead/leadgen-cli/internal/resilience"
)

// CatalogEntry declares one source adapter in the catalog file.
type CatalogEntry struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"` // csv, xlsx, api
	Kind string `yaml:"kind,omitempty"`

	// csv / xlsx
	Path  string `yaml:"path,omitempty"`
	Sheet string `yaml:"sheet,omitempty"`

	// api
	URL            string  `yaml:"url,omitempty"`
	APIKeyEnv      string  `yaml:"api_key_env,omitempty"`
	RatePerSec     float64 `yaml:"rate_per_sec,omitempty"`
	TimeoutSeconds int     `yaml:"timeout_seconds,omitempty"`
}

// Catalog is the parsed sources file.
type Catalog struct {
	Sources []CatalogEntry `yaml:"sources"`
}

// LoadCatalog reads and validates a sources catalog from a YAML file.
// Any invalid entry fails the whole load; a bad catalog should be fixed,
// not partially applied.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "catalog: read %s", path)
	}

	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, eris.Wrapf(err, "catalog: parse %s", path)
	}
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return &cat, nil
}

// Validate checks entry completeness and name uniqueness.
func (c *Catalog) Validate() error {
	seen := make(map[string]bool, len(c.Sources))
	for i, e := range c.Sources {
		if e.Name == "" {
			return eris.Errorf("catalog: entry %d has no name", i)
		}
		if seen[e.Name] {
			return eris.Errorf("catalog: duplicate source name %q", e.Name)
		}
		seen[e.Name] = true

		switch e.Type {
		case "csv", "xlsx":
			if e.Path == "" {
				return eris.Errorf("catalog: source %q needs a path", e.Name)
			}
		case "api":
			if e.URL == "" {
				return eris.Errorf("catalog: source %q needs a url", e.Name)
			}
		default:
			return eris.Errorf("catalog: source %q has unknown type %q", e.Name, e.Type)
		}
	}
	return nil
}

// BuildRegistry instantiates every catalog entry into a registry. API sources
// get the shared retry policy and per-name circuit breakers from the given
// set, so breaker state survives across runs in one process.
func (c *Catalog) BuildRegistry(breakers *resilience.ServiceBreakers, retry resilience.RetryConfig) (*Registry, error) {
	reg := NewRegistry()
	for _, e := range c.Sources {
		src, err := e.build(breakers, retry)
		if err != nil {
			return nil, err
		}
		reg.Register(src)
	}
	return reg, nil
}

func (e CatalogEntry) build(breakers *resilience.ServiceBreakers, retry resilience.RetryConfig) (Source, error) {
	kind := model.DataSource(e.Kind)
	switch e.Type {
	case "csv":
		return NewCSV(e.Name, e.Path, kind), nil
	case "xlsx":
		return NewXLSX(e.Name, e.Path, e.Sheet, kind), nil
	case "api":
		opts := APIOptions{
			URL:        e.URL,
			RatePerSec: e.RatePerSec,
			Timeout:    time.Duration(e.TimeoutSeconds) * time.Second,
			Retry:      retry,
		}
		if e.APIKeyEnv != "" {
			opts.APIKey = os.Getenv(e.APIKeyEnv)
		}
		if breakers != nil {
			opts.Breaker = breakers.Get(e.Name)
		}
		return NewAPI(e.Name, kind, opts)
	default:
		return nil, eris.Errorf("catalog: source %q has unknown type %q", e.Name, e.Type)
	}
}
