package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"bahcem.in/hasat/pkg/harvest"
)

// ExportHarvestSummary streams the summary report as an Excel workbook.
func ExportHarvestSummary(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}
	filter, err := parseSummaryFilter(r)
	if err != nil {
		http.Error(w, "invalid filter: "+err.Error(), http.StatusBadRequest)
		return
	}
	summary, err := summaryAggregator().Summarize(tenantID, filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	f, err := buildSummaryWorkbook(summary)
	if err != nil {
		http.Error(w, "failed to generate Excel file", http.StatusInternalServerError)
		return
	}
	buffer, err := f.WriteToBuffer()
	if err != nil {
		http.Error(w, "failed to write Excel file", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("harvest_summary_%s.xlsx", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", buffer.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buffer.Bytes())
}

var summaryHeaders = []string{
	"Name", "Date", "Garden", "Trader", "Price/kg",
	"Grade 1 (kg)", "Grade 2 (kg)", "Total (kg)", "2nd Ratio %",
	"Net Revenue", "Third Revenue",
	"Scale Full", "Scale Empty", "Scale Diff", "Scale Gap", "Gap %",
}

func buildSummaryWorkbook(summary *harvest.Summary) (*excelize.File, error) {
	f := excelize.NewFile()
	const sheet = "Harvest Summary"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
	})
	for colIdx, header := range summaryHeaders {
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, 1)
		f.SetCellValue(sheet, cell, header)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for rowIdx, row := range summary.Rows {
		values := []interface{}{
			row.Name,
			row.Date.Format("2006-01-02"),
			row.GardenName,
			row.TraderName,
			decimalCell(&row.PricePerKg),
			decimalCell(row.Grade1Kg),
			decimalCell(row.Grade2Kg),
			decimalCell(&row.TotalKg),
			decimalCell(row.SecondRatioPct),
			decimalCell(&row.NetRevenue),
			decimalCell(&row.ThirdRevenue),
			decimalCell(row.IndependentScaleFullKg),
			decimalCell(row.IndependentScaleEmptyKg),
			decimalCell(row.ScaleDiffKg),
			decimalCell(row.ScaleGapKg),
			decimalCell(row.ScaleGapPct),
		}
		for colIdx, v := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	// Totals block under the data
	t := summary.Totals
	totalsRow := len(summary.Rows) + 3
	boldStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	labelCell, _ := excelize.CoordinatesToCellName(1, totalsRow)
	f.SetCellValue(sheet, labelCell, "Totals")
	f.SetCellStyle(sheet, labelCell, labelCell, boldStyle)

	totals := []struct {
		label string
		value interface{}
	}{
		{"Rows", t.Rows},
		{"Sum Grade 1 (kg)", decimalCell(&t.SumGrade1Kg)},
		{"Sum Grade 2 (kg)", decimalCell(&t.SumGrade2Kg)},
		{"Sum Total (kg)", decimalCell(&t.SumTotalKg)},
		{"Sum Scale Full (kg)", decimalCell(&t.SumFullKg)},
		{"Sum Scale Empty (kg)", decimalCell(&t.SumEmptyKg)},
		{"Sum Scale Diff (kg)", decimalCell(&t.SumScaleDiff)},
		{"Sum Net Revenue", decimalCell(&t.SumNetRevenue)},
		{"Sum Third Revenue", decimalCell(&t.SumThirdRevenue)},
		{"2nd Ratio Total %", decimalCell(t.SecondRatioTotalPct)},
		{"Avg Price/kg", decimalCell(t.AvgPricePerKg)},
	}
	for i, item := range totals {
		keyCell, _ := excelize.CoordinatesToCellName(1, totalsRow+1+i)
		valueCell, _ := excelize.CoordinatesToCellName(2, totalsRow+1+i)
		f.SetCellValue(sheet, keyCell, item.label)
		f.SetCellValue(sheet, valueCell, item.value)
	}

	return f, nil
}

// decimalCell renders a decimal for a spreadsheet cell in its exact string
// form, never through float64; nil becomes an empty cell, not a zero.
func decimalCell(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.String()
}
