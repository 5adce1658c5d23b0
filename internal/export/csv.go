package export

import (
	"encoding/csv"
	"io"

	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"

	"github.com/openlead/leadgen-cli/internal/model"
)

// CSVExporter writes the flattened tabular projection, one record per row.
type CSVExporter struct{}

func (e *CSVExporter) Name() string { return "csv" }

func (e *CSVExporter) Export(w io.Writer, companies []*model.Company) error {
	cw := csv.NewWriter(w)
	enc := csvutil.NewEncoder(cw)

	// An empty result still gets a header so the file is recognizably ours.
	if len(companies) == 0 {
		if err := enc.EncodeHeader(model.FlatRow{}); err != nil {
			return eris.Wrap(err, "export: encode header")
		}
	}

	for _, c := range companies {
		if err := enc.Encode(c.Flatten()); err != nil {
			return eris.Wrapf(err, "export: encode %s", c.Name)
		}
	}

	cw.Flush()
	return eris.Wrap(cw.Error(), "export: flush csv")
}
