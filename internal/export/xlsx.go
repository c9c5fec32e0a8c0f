package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"wooltrace/internal/domain"
)

var xlsxHeaders = []string{
	"Batch Code", "Wool Type", "Weight (kg)", "Moisture (%)", "Source",
	"Current Stage", "Quality Status", "Base Price/kg", "Quality Bonus",
	"Gross Revenue", "Net Farmer Earnings", "Sold", "Created At",
}

// BatchWorkbook renders batches into a styled xlsx workbook with a summary row.
func BatchWorkbook(batches []domain.Batch) (*excelize.File, string, error) {
	f := excelize.NewFile()
	sheet := "Batches"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, "", fmt.Errorf("export.BatchWorkbook: %w", err)
	}

	boldStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	for i, h := range xlsxHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, boldStyle)
	}

	var totalWeight, totalGross float64
	for rowIdx := range batches {
		b := &batches[rowIdx]
		row := rowIdx + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), b.BatchCode)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), string(b.WoolType))
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), b.Weight)
		if b.Moisture != nil {
			f.SetCellValue(sheet, fmt.Sprintf("D%d", row), *b.Moisture)
		}
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), b.Source)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), string(b.CurrentStage))
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), string(b.QualityStatus))
		if b.Financials != nil {
			f.SetCellValue(sheet, fmt.Sprintf("H%d", row), b.Financials.BasePricePerKg)
			f.SetCellValue(sheet, fmt.Sprintf("I%d", row), b.Financials.QualityBonus)
			f.SetCellValue(sheet, fmt.Sprintf("J%d", row), b.Financials.GrossRevenue)
			f.SetCellValue(sheet, fmt.Sprintf("K%d", row), b.Financials.NetFarmerEarnings)
			totalGross += b.Financials.GrossRevenue
		}
		sold := "No"
		if b.IsSold {
			sold = "Yes"
		}
		f.SetCellValue(sheet, fmt.Sprintf("L%d", row), sold)
		f.SetCellValue(sheet, fmt.Sprintf("M%d", row), b.CreatedAt.Format(time.RFC3339))
		totalWeight += b.Weight
	}

	summaryRow := len(batches) + 2
	summaryStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	f.SetCellValue(sheet, fmt.Sprintf("A%d", summaryRow), "Total")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", summaryRow), fmt.Sprintf("%d batches", len(batches)))
	f.SetCellValue(sheet, fmt.Sprintf("C%d", summaryRow), totalWeight)
	f.SetCellValue(sheet, fmt.Sprintf("J%d", summaryRow), totalGross)
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("M%d", summaryRow), summaryStyle)

	colWidths := []float64{16, 14, 12, 12, 18, 12, 14, 14, 14, 14, 18, 8, 22}
	for i, w := range colWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, w)
	}

	filename := fmt.Sprintf("batches_%s.xlsx", time.Now().Format("2006-01-02"))
	return f, filename, nil
}
