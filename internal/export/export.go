// Package export writes scored lead sets to the supported output formats.
package export

import (
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/openlead/leadgen-cli/internal/model"
)

// Exporter serializes a final record set to a writer.
type Exporter interface {
	// Name returns the format identifier (csv, json, xlsx).
	Name() string
	Export(w io.Writer, companies []*model.Company) error
}

// ForFormat returns the exporter for a format name.
func ForFormat(format string) (Exporter, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "csv":
		return &CSVExporter{}, nil
	case "json":
		return &JSONExporter{}, nil
	case "xlsx":
		return &XLSXExporter{}, nil
	default:
		return nil, eris.Errorf("export: unknown format %q", format)
	}
}

// ToFile exports to a file path, creating or truncating it.
func ToFile(path string, e Exporter, companies []*model.Company) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "export: create %s", path)
	}
	defer f.Close() //nolint:errcheck

	if err := e.Export(f, companies); err != nil {
		return err
	}
	return eris.Wrapf(f.Close(), "export: close %s", path)
}
