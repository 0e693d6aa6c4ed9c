package export

import (
	"encoding/json"
	"io"

	"github.com/inferloop/tabsynth/pkg/models"
)

// JSONExporter writes a dataset as a JSON array of record objects, or as a
// wrapper object carrying the records plus run metadata. Nil values
// serialize as JSON null, timestamps as RFC 3339.
type JSONExporter struct {
	Pretty   bool
	Envelope bool
}

type jsonEnvelope struct {
	SchemaName  string          `json:"schema_name"`
	RecordCount int             `json:"record_count"`
	Seed        int64           `json:"seed"`
	GeneratedAt string          `json:"generated_at"`
	Records     []models.Record `json:"records"`
}

// Format returns the format tag.
func (e *JSONExporter) Format() string { return FormatJSON }

// Export writes the dataset to w.
func (e *JSONExporter) Export(w io.Writer, dataset *models.Dataset) error {
	encoder := json.NewEncoder(w)
	if e.Pretty {
		encoder.SetIndent("", "  ")
	}

	if e.Envelope {
		return encoder.Encode(jsonEnvelope{
			SchemaName:  dataset.SchemaName,
			RecordCount: len(dataset.Records),
			Seed:        dataset.Seed,
			GeneratedAt: dataset.GeneratedAt.Format("2006-01-02T15:04:05Z07:00"),
			Records:     dataset.Records,
		})
	}
	return encoder.Encode(dataset.Records)
}
