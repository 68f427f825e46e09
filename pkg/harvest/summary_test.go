package harvest

import (
	"testing"

	"bahcem.in/hasat/models"
)

func rowFrom(e *models.HarvestEntry) SummaryRow {
	return buildRow(e)
}

func TestAccumulateTotals(t *testing.T) {
	rows := []SummaryRow{
		rowFrom(&models.HarvestEntry{
			PricePerKg:              d("10"),
			Grade1Kg:                dp("100"),
			Grade2Kg:                dp("20"),
			IndependentScaleFullKg:  dp("130"),
			IndependentScaleEmptyKg: dp("10"),
		}),
		rowFrom(&models.HarvestEntry{
			PricePerKg:              d("8"),
			Grade1Kg:                dp("50"),
			Grade2Kg:                dp("0"),
			IndependentScaleFullKg:  dp("60"),
			IndependentScaleEmptyKg: dp("8"),
		}),
		// A row with no scale readings still sums its grades.
		rowFrom(&models.HarvestEntry{
			PricePerKg: d("12"),
			Grade1Kg:   dp("30"),
			Grade2Kg:   dp("10"),
		}),
	}

	totals := accumulateTotals(rows)

	if totals.Rows != 3 {
		t.Errorf("Rows = %d", totals.Rows)
	}
	if !totals.SumGrade1Kg.Equal(d("180")) {
		t.Errorf("SumGrade1Kg = %s, want 180", totals.SumGrade1Kg)
	}
	if !totals.SumGrade2Kg.Equal(d("30")) {
		t.Errorf("SumGrade2Kg = %s, want 30", totals.SumGrade2Kg)
	}
	if !totals.SumTotalKg.Equal(d("210")) {
		t.Errorf("SumTotalKg = %s, want 210", totals.SumTotalKg)
	}
	if !totals.SumFullKg.Equal(d("190")) || !totals.SumEmptyKg.Equal(d("18")) {
		t.Errorf("scale sums = %s/%s, want 190/18", totals.SumFullKg, totals.SumEmptyKg)
	}
	if !totals.SumScaleDiff.Equal(d("172")) {
		t.Errorf("SumScaleDiff = %s, want 172", totals.SumScaleDiff)
	}

	// net: (100*10 + 20*5) + (50*8 + 0) + (30*12 + 10*6) = 1100 + 400 + 420
	if !totals.SumNetRevenue.Equal(d("1920")) {
		t.Errorf("SumNetRevenue = %s, want 1920", totals.SumNetRevenue)
	}

	// Ratio comes from the summed kg, not an average of per-row ratios.
	if totals.SecondRatioTotalPct == nil || totals.SecondRatioTotalPct.StringFixed(2) != "14.29" {
		t.Errorf("SecondRatioTotalPct = %v, want ~14.29", totals.SecondRatioTotalPct)
	}
	if totals.AvgPricePerKg == nil || totals.AvgPricePerKg.StringFixed(4) != "9.1429" {
		t.Errorf("AvgPricePerKg = %v, want ~9.1429", totals.AvgPricePerKg)
	}
}

func TestAccumulateTotalsEmpty(t *testing.T) {
	totals := accumulateTotals(nil)
	if totals.Rows != 0 {
		t.Errorf("Rows = %d", totals.Rows)
	}
	if totals.SecondRatioTotalPct != nil || totals.AvgPricePerKg != nil {
		t.Error("derived ratios must be nil with no summed weight")
	}
	if !totals.SumScaleDiff.IsZero() {
		t.Errorf("SumScaleDiff = %s, want 0", totals.SumScaleDiff)
	}
}

func TestAccumulateTotalsZeroWeightRows(t *testing.T) {
	rows := []SummaryRow{
		rowFrom(&models.HarvestEntry{PricePerKg: d("10"), Grade1Kg: dp("0"), Grade2Kg: dp("0")}),
	}
	totals := accumulateTotals(rows)
	if totals.AvgPricePerKg != nil {
		t.Errorf("AvgPricePerKg = %s, want nil on zero total kg", totals.AvgPricePerKg)
	}
}
