package export

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/openlead/leadgen-cli/internal/model"
)

func sampleCompanies(t *testing.T) []*model.Company {
	t.Helper()
	acme, err := model.NewCompany("Acme", model.SourceManual)
	require.NoError(t, err)
	acme.Domain = "acme.com"
	acme.Enrichment = &model.Enrichment{
		EmployeeCount: 42,
		CompanySize:   model.SizeSmall,
		TechStack:     &model.TechStack{Frameworks: []string{"React"}},
		HiringIntent:  &model.HiringIntent{IsHiring: true, TotalOpenPositions: 3},
	}
	acme.Score = &model.LeadScore{Total: 72.5, Priority: model.PriorityHigh}

	globex, err := model.NewCompany("Globex", model.SourceAPI)
	require.NoError(t, err)
	return []*model.Company{acme, globex}
}

func TestForFormat(t *testing.T) {
	for _, format := range []string{"csv", "JSON", " xlsx "} {
		e, err := ForFormat(format)
		require.NoError(t, err, format)
		assert.NotEmpty(t, e.Name())
	}

	_, err := ForFormat("parquet")
	assert.Error(t, err)
}

func TestCSVExport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&CSVExporter{}).Export(&buf, sampleCompanies(t)))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3) // header + 2 records

	header := rows[0]
	assert.Equal(t, "company_name", header[0])
	assert.Contains(t, header, "total_score")

	assert.Equal(t, "Acme", rows[1][0])
	assert.Contains(t, rows[1], "72.5")
	assert.Equal(t, "Globex", rows[2][0])
}

func TestCSVExport_EmptySetStillHasHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&CSVExporter{}).Export(&buf, nil))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "company_name", rows[0][0])
}

func TestJSONExportRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	companies := sampleCompanies(t)
	require.NoError(t, (&JSONExporter{}).Export(&buf, companies))

	out := buf.String()
	assert.Contains(t, out, `"count": 2`)
	assert.Contains(t, out, `"exported_at"`)

	loaded, err := ReadJSON(strings.NewReader(out))
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "Acme", loaded[0].Name)
	require.NotNil(t, loaded[0].Score)
	assert.InDelta(t, 72.5, loaded[0].Score.Total, 1e-9)
	require.NotNil(t, loaded[0].Enrichment)
	assert.Equal(t, 42, loaded[0].Enrichment.EmployeeCount)
}

func TestReadJSON_Malformed(t *testing.T) {
	_, err := ReadJSON(strings.NewReader(`{"companies": [`))
	assert.Error(t, err)
}

func TestXLSXExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leads.xlsx")
	require.NoError(t, ToFile(path, &XLSXExporter{}, sampleCompanies(t)))

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	sheet, ok := f.Sheet[sheetName]
	require.True(t, ok)
	require.Len(t, sheet.Rows, 3)

	assert.Equal(t, "company_name", sheet.Rows[0].Cells[0].String())
	assert.Equal(t, "Acme", sheet.Rows[1].Cells[0].String())
	assert.Equal(t, "Globex", sheet.Rows[2].Cells[0].String())
}

func TestXLSXColumnsMatchCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&CSVExporter{}).Export(&buf, nil))
	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)

	assert.Equal(t, rows[0], flatColumns())
}

func TestToFile_BadPath(t *testing.T) {
	err := ToFile(filepath.Join(t.TempDir(), "missing", "leads.csv"), &CSVExporter{}, nil)
	assert.Error(t, err)
}

func TestToFile_WritesCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leads.csv")
	require.NoError(t, ToFile(path, &CSVExporter{}, sampleCompanies(t)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Acme")
}
