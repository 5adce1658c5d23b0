package source

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jszwec/csvutil"
	"go.uber.org/zap"

	"github.com/openlead/leadgen-cli/internal/model"
)

// csvRow is the column contract for imported lead files. Unknown columns are
// ignored; missing ones decode to their zero value.
type csvRow struct {
	Name          string `csv:"name"`
	Domain        string `csv:"domain"`
	Website       string `csv:"website"`
	Description   string `csv:"description"`
	Industry      string `csv:"industry"`
	EmployeeRange string `csv:"employee_range"`
	EmployeeCount string `csv:"employee_count"`
	OpenPositions string `csv:"open_positions"`
}

// CSVSource reads company records from a local CSV file with a header row.
type CSVSource struct {
	name string
	path string
	kind model.DataSource
}

// NewCSV creates a CSV file source. The file is opened lazily at scrape time.
func NewCSV(name, path string, kind model.DataSource) *CSVSource {
	if kind == "" {
		kind = model.SourceManual
	}
	return &CSVSource{name: name, path: path, kind: kind}
}

func (s *CSVSource) Name() string           { return s.name }
func (s *CSVSource) Kind() model.DataSource { return s.kind }

// Scrape parses the file row by row. A malformed or nameless row is skipped
// with a warning; an unreadable file or header fails the whole batch.
func (s *CSVSource) Scrape(ctx context.Context) *model.ScrapeResult {
	start := time.Now()
	res := model.NewScrapeResult(s.kind)
	defer func() { res.Elapsed = time.Since(start) }()

	f, err := os.Open(s.path)
	if err != nil {
		res.AddError(fmt.Sprintf("open %s: %v", s.path, err))
		return res
	}
	defer f.Close() //nolint:errcheck

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // allow variable fields
	dec, err := csvutil.NewDecoder(reader)
	if err != nil {
		res.AddError(fmt.Sprintf("read header of %s: %v", s.path, err))
		return res
	}

	line := 1 // header consumed above
	for {
		if err := ctx.Err(); err != nil {
			res.AddError(fmt.Sprintf("cancelled: %v", err))
			return res
		}
		line++

		var row csvRow
		if err := dec.Decode(&row); err == io.EOF {
			break
		} else if err != nil {
			res.AddWarning(fmt.Sprintf("row %d: %v", line, err))
			continue
		}

		c, err := companyFromCSVRow(row, s.kind)
		if err != nil {
			res.AddWarning(fmt.Sprintf("row %d: %v", line, err))
			continue
		}
		res.AddCompany(c)
	}

	zap.L().Info("csv source: file parsed",
		zap.String("source", s.name),
		zap.String("path", s.path),
		zap.Int("companies", len(res.Companies)),
		zap.Int("skipped", len(res.Warnings)),
	)
	return res
}

func companyFromCSVRow(row csvRow, kind model.DataSource) (*model.Company, error) {
	c, err := model.NewCompany(row.Name, kind)
	if err != nil {
		return nil, err
	}
	c.Domain = strings.TrimSpace(row.Domain)
	c.Website = strings.TrimSpace(row.Website)
	c.Description = strings.TrimSpace(row.Description)

	if v := strings.TrimSpace(row.Industry); v != "" {
		c.SetExtra("industry", v)
	}
	if v := strings.TrimSpace(row.EmployeeRange); v != "" {
		c.SetExtra("employee_range", v)
	}
	if n, ok := parseCount(row.EmployeeCount); ok {
		c.SetExtra("employee_count", n)
	}
	if n, ok := parseCount(row.OpenPositions); ok {
		c.SetExtra("open_positions", n)
	}
	return c, nil
}

// parseCount parses a non-negative integer cell, tolerating blanks.
func parseCount(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
