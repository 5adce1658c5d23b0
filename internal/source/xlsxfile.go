package source

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"

	"github.com/openlead/leadgen-cli/internal/model"
)

// XLSXSource reads company records from a spreadsheet. The first row of the
// selected sheet is the header; columns are matched by lowercased name using
// the same contract as the CSV source.
type XLSXSource struct {
	name  string
	path  string
	sheet string // empty selects the first sheet
	kind  model.DataSource
}

// NewXLSX creates a spreadsheet source. The file is opened at scrape time.
func NewXLSX(name, path, sheet string, kind model.DataSource) *XLSXSource {
	if kind == "" {
		kind = model.SourceManual
	}
	return &XLSXSource{name: name, path: path, sheet: sheet, kind: kind}
}

func (s *XLSXSource) Name() string           { return s.name }
func (s *XLSXSource) Kind() model.DataSource { return s.kind }

func (s *XLSXSource) Scrape(ctx context.Context) *model.ScrapeResult {
	start := time.Now()
	res := model.NewScrapeResult(s.kind)
	defer func() { res.Elapsed = time.Since(start) }()

	f, err := xlsx.OpenFile(s.path)
	if err != nil {
		res.AddError(fmt.Sprintf("open %s: %v", s.path, err))
		return res
	}

	sheet, err := s.selectSheet(f)
	if err != nil {
		res.AddError(err.Error())
		return res
	}
	if len(sheet.Rows) == 0 {
		return res
	}

	cols := headerIndex(sheet.Rows[0])
	if _, ok := cols["name"]; !ok {
		res.AddError(fmt.Sprintf("sheet %q has no name column", sheet.Name))
		return res
	}

	for i, row := range sheet.Rows[1:] {
		if err := ctx.Err(); err != nil {
			res.AddError(fmt.Sprintf("cancelled: %v", err))
			return res
		}

		cells := rowStrings(row)
		c, err := companyFromCSVRow(csvRow{
			Name:          cellAt(cells, cols, "name"),
			Domain:        cellAt(cells, cols, "domain"),
			Website:       cellAt(cells, cols, "website"),
			Description:   cellAt(cells, cols, "description"),
			Industry:      cellAt(cells, cols, "industry"),
			EmployeeRange: cellAt(cells, cols, "employee_range"),
			EmployeeCount: cellAt(cells, cols, "employee_count"),
			OpenPositions: cellAt(cells, cols, "open_positions"),
		}, s.kind)
		if err != nil {
			res.AddWarning(fmt.Sprintf("row %d: %v", i+2, err))
			continue
		}
		res.AddCompany(c)
	}

	zap.L().Info("xlsx source: sheet parsed",
		zap.String("source", s.name),
		zap.String("sheet", sheet.Name),
		zap.Int("companies", len(res.Companies)),
		zap.Int("skipped", len(res.Warnings)),
	)
	return res
}

func (s *XLSXSource) selectSheet(f *xlsx.File) (*xlsx.Sheet, error) {
	if s.sheet != "" {
		sheet, ok := f.Sheet[s.sheet]
		if !ok {
			return nil, eris.Errorf("sheet %q not found in %s", s.sheet, s.path)
		}
		return sheet, nil
	}
	if len(f.Sheets) == 0 {
		return nil, eris.Errorf("%s has no sheets", s.path)
	}
	return f.Sheets[0], nil
}

// headerIndex maps lowercased header names to column positions.
func headerIndex(row *xlsx.Row) map[string]int {
	cols := make(map[string]int, len(row.Cells))
	for i, cell := range row.Cells {
		name := strings.ToLower(strings.TrimSpace(cell.String()))
		if name == "" {
			continue
		}
		if _, dup := cols[name]; !dup {
			cols[name] = i
		}
	}
	return cols
}

func rowStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for j, cell := range row.Cells {
		cells[j] = cell.String()
	}
	return cells
}

func cellAt(cells []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(cells) {
		return ""
	}
	return cells[i]
}
