package export

import (
	"fmt"
	"io"
	"reflect"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/openlead/leadgen-cli/internal/model"
)

const sheetName = "Leads"

// XLSXExporter writes the flattened projection to a single-sheet workbook.
type XLSXExporter struct{}

func (e *XLSXExporter) Name() string { return "xlsx" }

func (e *XLSXExporter) Export(w io.Writer, companies []*model.Company) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet(sheetName)
	if err != nil {
		return eris.Wrap(err, "export: add sheet")
	}

	header := sheet.AddRow()
	for _, name := range flatColumns() {
		header.AddCell().Value = name
	}

	for _, c := range companies {
		addFlatRow(sheet, c.Flatten())
	}

	return eris.Wrap(f.Write(w), "export: write xlsx")
}

// flatColumns derives the header from FlatRow's csv tags so the spreadsheet
// and CSV outputs stay column-compatible.
func flatColumns() []string {
	t := reflect.TypeOf(model.FlatRow{})
	cols := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		if tag := t.Field(i).Tag.Get("csv"); tag != "" {
			cols = append(cols, tag)
		}
	}
	return cols
}

func addFlatRow(sheet *xlsx.Sheet, r model.FlatRow) {
	row := sheet.AddRow()
	v := reflect.ValueOf(r)
	for i := 0; i < v.NumField(); i++ {
		cell := row.AddCell()
		switch f := v.Field(i); f.Kind() {
		case reflect.String:
			cell.Value = f.String()
		case reflect.Int:
			cell.SetInt64(f.Int())
		case reflect.Float64:
			cell.SetFloat(f.Float())
		case reflect.Bool:
			cell.SetBool(f.Bool())
		default:
			cell.Value = fmt.Sprint(f.Interface())
		}
	}
}
