package export

import (
	"encoding/json"
	"io"
	"time"

	"github.com/rotisserie/eris"

	"github.com/openlead/leadgen-cli/internal/model"
)

// JSONDocument is the envelope the JSON exporter writes: the full nested
// records plus a small header so consumers can sanity-check a file without
// parsing every record.
type JSONDocument struct {
	ExportedAt time.Time        `json:"exported_at"`
	Count      int              `json:"count"`
	Companies  []*model.Company `json:"companies"`
}

// JSONExporter writes complete records with nested enrichment and scores,
// the format the score command re-reads.
type JSONExporter struct{}

func (e *JSONExporter) Name() string { return "json" }

func (e *JSONExporter) Export(w io.Writer, companies []*model.Company) error {
	if companies == nil {
		companies = []*model.Company{}
	}
	doc := JSONDocument{
		ExportedAt: time.Now().UTC(),
		Count:      len(companies),
		Companies:  companies,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return eris.Wrap(enc.Encode(doc), "export: encode json")
}

// ReadJSON loads a previously exported document, for re-scoring.
func ReadJSON(r io.Reader) ([]*model.Company, error) {
	var doc JSONDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, eris.Wrap(err, "export: decode json")
	}
	return doc.Companies, nil
}
