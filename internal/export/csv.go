package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"wooltrace/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// csvColumns defines the CSV header row.
var csvColumns = []string{
	"Batch Code",
	"Wool Type",
	"Weight (kg)",
	"Moisture (%)",
	"Source",
	"Current Stage",
	"Quality Status",
	"Base Price/kg",
	"Quality Bonus",
	"Gross Revenue",
	"Net Farmer Earnings",
	"Sold",
	"Created At",
}

// CSVWriter wraps csv.Writer for exporting batches as CSV.
type CSVWriter struct {
	csv *csv.Writer
}

// NewCSVWriter creates a CSVWriter that writes CSV to w.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *CSVWriter) WriteHeader() error {
	return w.csv.Write(csvColumns)
}

// WriteBatches converts batches to CSV rows and writes them.
func (w *CSVWriter) WriteBatches(batches []domain.Batch) error {
	for i := range batches {
		if err := w.csv.Write(batchToRow(&batches[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *CSVWriter) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *CSVWriter) Error() error {
	return w.csv.Error()
}

// batchToRow converts a single batch to a string slice. Financial columns are
// left empty until an approved inspection has priced the batch.
func batchToRow(b *domain.Batch) []string {
	row := make([]string, len(csvColumns))

	row[0] = b.BatchCode
	row[1] = string(b.WoolType)
	row[2] = formatFloat(b.Weight)
	if b.Moisture != nil {
		row[3] = formatFloat(*b.Moisture)
	}
	row[4] = b.Source
	row[5] = string(b.CurrentStage)
	row[6] = string(b.QualityStatus)
	if b.Financials != nil {
		row[7] = formatFloat(b.Financials.BasePricePerKg)
		row[8] = formatFloat(b.Financials.QualityBonus)
		row[9] = formatFloat(b.Financials.GrossRevenue)
		row[10] = formatFloat(b.Financials.NetFarmerEarnings)
	}
	row[11] = strconv.FormatBool(b.IsSold)
	row[12] = b.CreatedAt.Format(time.RFC3339)

	return row
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
