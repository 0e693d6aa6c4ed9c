package export

import (
	"encoding/csv"
	"io"

	"github.com/inferloop/tabsynth/pkg/models"
)

// CSVExporter writes a dataset as comma-separated text with a header row.
// Field order follows the dataset's field order; nil renders as an empty
// cell.
type CSVExporter struct{}

// Format returns the format tag.
func (e *CSVExporter) Format() string { return FormatCSV }

// Export writes the dataset to w.
func (e *CSVExporter) Export(w io.Writer, dataset *models.Dataset) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(dataset.FieldOrder); err != nil {
		return err
	}

	row := make([]string, len(dataset.FieldOrder))
	for _, record := range dataset.Records {
		for i, field := range dataset.FieldOrder {
			row[i] = formatValue(record[field])
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
