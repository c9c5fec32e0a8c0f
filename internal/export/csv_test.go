package export_test

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wooltrace/internal/domain"
	"wooltrace/internal/export"
)

func sampleBatches() []domain.Batch {
	moisture := 12.5
	return []domain.Batch{
		{
			BatchCode:     "BATCH-AAAA1111",
			WoolType:      domain.WoolMerino,
			Weight:        500,
			Moisture:      &moisture,
			Source:        "Highfield Farm",
			CurrentStage:  domain.StageFinished,
			QualityStatus: domain.QualityApproved,
			Financials: &domain.Financials{
				BasePricePerKg:    20,
				QualityBonus:      6,
				GrossRevenue:      13000,
				NetFarmerEarnings: 11300,
			},
			IsSold:    true,
			CreatedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		},
		{
			BatchCode:     "BATCH-BBBB2222",
			WoolType:      domain.WoolCorriedale,
			Weight:        350,
			CurrentStage:  domain.StageCarding,
			QualityStatus: domain.QualityPending,
			CreatedAt:     time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC),
		},
	}
}

func TestCSVWriter_WritesHeaderAndRows(t *testing.T) {
	var buf bytes.Buffer
	w := export.NewCSVWriter(&buf)

	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.WriteBatches(sampleBatches()))
	w.Flush()
	require.NoError(t, w.Error())

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Batch Code", rows[0][0])
	assert.Equal(t, "Created At", rows[0][12])

	priced := rows[1]
	assert.Equal(t, "BATCH-AAAA1111", priced[0])
	assert.Equal(t, "Merino", priced[1])
	assert.Equal(t, "500", priced[2])
	assert.Equal(t, "12.5", priced[3])
	assert.Equal(t, "13000", priced[9])
	assert.Equal(t, "11300", priced[10])
	assert.Equal(t, "true", priced[11])
	assert.Equal(t, "2026-03-01T10:00:00Z", priced[12])
}

func TestCSVWriter_UnpricedBatchHasEmptyFinancialColumns(t *testing.T) {
	var buf bytes.Buffer
	w := export.NewCSVWriter(&buf)

	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.WriteBatches(sampleBatches()))
	w.Flush()

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)

	unpriced := rows[2]
	for _, col := range []int{3, 7, 8, 9, 10} {
		assert.Empty(t, unpriced[col], "column %d should be empty", col)
	}
	assert.Equal(t, "false", unpriced[11])
}

func TestBatchWorkbook_BuildsSheetWithSummary(t *testing.T) {
	f, filename, err := export.BatchWorkbook(sampleBatches())
	require.NoError(t, err)
	defer f.Close()

	assert.True(t, strings.HasPrefix(filename, "batches_"))
	assert.True(t, strings.HasSuffix(filename, ".xlsx"))

	code, err := f.GetCellValue("Batches", "A2")
	require.NoError(t, err)
	assert.Equal(t, "BATCH-AAAA1111", code)

	// Summary row follows the two data rows.
	summary, err := f.GetCellValue("Batches", "A4")
	require.NoError(t, err)
	assert.Equal(t, "Total", summary)
}
