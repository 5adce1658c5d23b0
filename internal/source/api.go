package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/openlead/leadgen-cli/internal/model"
	"github.com/openlead/leadgen-cli/internal/resilience"
)

// apiCompany is the JSON record shape lead endpoints return.
type apiCompany struct {
	Name          string `json:"name"`
	Domain        string `json:"domain"`
	Website       string `json:"website"`
	Description   string `json:"description"`
	Industry      string `json:"industry"`
	EmployeeCount int    `json:"employee_count"`
	EmployeeRange string `json:"employee_range"`
	OpenPositions int    `json:"open_positions"`
	ProfileURL    string `json:"profile_url"`
}

// APIOptions configures an HTTP JSON source.
type APIOptions struct {
	// URL of the endpoint returning a JSON array of company records.
	URL string
	// APIKey, when set, is sent as a bearer token.
	APIKey string
	// RatePerSec bounds request frequency. Zero selects 5 req/s.
	RatePerSec float64
	// Timeout bounds a single request. Zero selects 30s.
	Timeout time.Duration

	Retry   resilience.RetryConfig
	Breaker *resilience.CircuitBreaker
}

// APISource pulls company records from a JSON HTTP endpoint. Requests are
// rate limited, transient failures are retried with backoff, and repeated
// failures trip a circuit breaker shared across runs.
type APISource struct {
	name    string
	kind    model.DataSource
	opts    APIOptions
	client  *http.Client
	limiter *rate.Limiter
	breaker *resilience.CircuitBreaker
}

// NewAPI creates an API source. Fails fast on a missing URL.
func NewAPI(name string, kind model.DataSource, opts APIOptions) (*APISource, error) {
	if strings.TrimSpace(opts.URL) == "" {
		return nil, eris.Errorf("source %s: url is required", name)
	}
	if kind == "" {
		kind = model.SourceAPI
	}
	if opts.RatePerSec <= 0 {
		opts.RatePerSec = 5
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	breaker := opts.Breaker
	if breaker == nil {
		breaker = resilience.NewCircuitBreaker(resilience.DefaultCircuitBreakerConfig())
	}
	return &APISource{
		name:    name,
		kind:    kind,
		opts:    opts,
		client:  &http.Client{Timeout: opts.Timeout},
		limiter: rate.NewLimiter(rate.Limit(opts.RatePerSec), 1),
		breaker: breaker,
	}, nil
}

func (s *APISource) Name() string           { return s.name }
func (s *APISource) Kind() model.DataSource { return s.kind }

func (s *APISource) Scrape(ctx context.Context) *model.ScrapeResult {
	start := time.Now()
	res := model.NewScrapeResult(s.kind)
	defer func() { res.Elapsed = time.Since(start) }()

	retry := s.opts.Retry
	if retry.OnRetry == nil {
		retry.OnRetry = resilience.RetryLogger(s.name, "fetch")
	}

	records, err := resilience.DoVal(ctx, retry, func(ctx context.Context) ([]apiCompany, error) {
		return resilience.ExecuteVal(ctx, s.breaker, s.fetch)
	})
	if err != nil {
		res.AddError(fmt.Sprintf("fetch %s: %v", s.opts.URL, err))
		return res
	}

	for i, rec := range records {
		c, err := s.toCompany(rec)
		if err != nil {
			res.AddWarning(fmt.Sprintf("record %d: %v", i, err))
			continue
		}
		res.AddCompany(c)
	}

	zap.L().Info("api source: fetch complete",
		zap.String("source", s.name),
		zap.Int("companies", len(res.Companies)),
		zap.Int("skipped", len(res.Warnings)),
	)
	return res
}

// fetch performs one rate-limited request and decodes the response body.
// Retryable failures come back wrapped as transient so the retry layer and
// the breaker can tell them apart from permanent ones.
func (s *APISource) fetch(ctx context.Context) ([]apiCompany, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "rate limiter wait")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.opts.URL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "create request")
	}
	req.Header.Set("Accept", "application/json")
	if s.opts.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.opts.APIKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "do request")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		err := eris.Errorf("unexpected status %d from %s", resp.StatusCode, s.opts.URL)
		if resilience.IsTransientHTTPStatus(resp.StatusCode) {
			return nil, resilience.NewTransientError(err, resp.StatusCode)
		}
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resilience.NewTransientError(eris.Wrap(err, "read body"), 0)
	}

	var records []apiCompany
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, eris.Wrap(err, "decode response")
	}
	return records, nil
}

func (s *APISource) toCompany(rec apiCompany) (*model.Company, error) {
	c, err := model.NewCompany(rec.Name, s.kind)
	if err != nil {
		return nil, err
	}
	c.Domain = strings.TrimSpace(rec.Domain)
	c.Website = strings.TrimSpace(rec.Website)
	c.Description = strings.TrimSpace(rec.Description)
	c.SourceURL = strings.TrimSpace(rec.ProfileURL)

	if v := strings.TrimSpace(rec.Industry); v != "" {
		c.SetExtra("industry", v)
	}
	if v := strings.TrimSpace(rec.EmployeeRange); v != "" {
		c.SetExtra("employee_range", v)
	}
	if rec.EmployeeCount > 0 {
		c.SetExtra("employee_count", rec.EmployeeCount)
	}
	if rec.OpenPositions > 0 {
		c.SetExtra("open_positions", rec.OpenPositions)
	}
	return c, nil
}
