package harvest

import (
	"testing"

	"github.com/shopspring/decimal"

	"bahcem.in/hasat/models"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func dp(s string) *decimal.Decimal {
	v := decimal.RequireFromString(s)
	return &v
}

func TestRevenueFormulas(t *testing.T) {
	e := &models.HarvestEntry{
		PricePerKg: d("10"),
		Grade1Kg:   dp("100"),
		Grade2Kg:   dp("20"),
	}

	if got := Grade1Revenue(e); !got.Equal(d("1000")) {
		t.Errorf("Grade1Revenue = %s, want 1000", got)
	}
	// Second grade is contractually priced at half the first-grade rate.
	if got := Grade2Revenue(e); !got.Equal(d("100")) {
		t.Errorf("Grade2Revenue = %s, want 100", got)
	}
	if got := NetRevenue(e); !got.Equal(d("1100")) {
		t.Errorf("NetRevenue = %s, want 1100", got)
	}
}

func TestNetRevenueExcludesThirdGrade(t *testing.T) {
	e := &models.HarvestEntry{
		PricePerKg:      d("10"),
		Grade1Kg:        dp("100"),
		Grade2Kg:        dp("0"),
		ThirdKg:         dp("50"),
		ThirdPricePerKg: dp("2"),
	}
	if got := ThirdRevenue(e); !got.Equal(d("100")) {
		t.Errorf("ThirdRevenue = %s, want 100", got)
	}
	if got := NetRevenue(e); !got.Equal(d("1000")) {
		t.Errorf("NetRevenue = %s, want 1000 (third grade must stay out)", got)
	}
}

func TestSecondRatio(t *testing.T) {
	tests := []struct {
		name     string
		grade1   *decimal.Decimal
		grade2   *decimal.Decimal
		want     string // "" means nil
		wantHigh bool
	}{
		{"exactly five percent is not high", dp("95"), dp("5"), "5", false},
		{"above five percent is high", dp("90"), dp("10"), "10", true},
		{"zero total yields nil", dp("0"), dp("0"), "", false},
		{"both absent yields nil", nil, nil, "", false},
		{"all second grade", dp("0"), dp("40"), "100", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &models.HarvestEntry{Grade1Kg: tt.grade1, Grade2Kg: tt.grade2}
			got := SecondRatioPct(e)
			if tt.want == "" {
				if got != nil {
					t.Fatalf("SecondRatioPct = %s, want nil", got)
				}
			} else {
				if got == nil || !got.Equal(d(tt.want)) {
					t.Fatalf("SecondRatioPct = %v, want %s", got, tt.want)
				}
			}
			if high := SecondRatioHigh(e); high != tt.wantHigh {
				t.Errorf("SecondRatioHigh = %v, want %v", high, tt.wantHigh)
			}
		})
	}
}

func TestScaleGap(t *testing.T) {
	e := &models.HarvestEntry{
		Grade1Kg:                dp("100"),
		Grade2Kg:                dp("15"),
		IndependentScaleFullKg:  dp("130"),
		IndependentScaleEmptyKg: dp("10"),
	}

	if diff := ScaleDiffKg(e); diff == nil || !diff.Equal(d("120")) {
		t.Fatalf("ScaleDiffKg = %v, want 120", diff)
	}
	if total := TotalKg(e); !total.Equal(d("115")) {
		t.Fatalf("TotalKg = %s, want 115", total)
	}
	if gap := ScaleGapKg(e); gap == nil || !gap.Equal(d("5")) {
		t.Fatalf("ScaleGapKg = %v, want 5", gap)
	}
	pct := ScaleGapPct(e)
	if pct == nil || pct.StringFixed(2) != "4.17" {
		t.Fatalf("ScaleGapPct = %v, want ~4.17", pct)
	}
	if ScaleGapHigh(e) {
		t.Error("ScaleGapHigh = true, want false (4.17 is under the 5 threshold)")
	}
}

func TestScaleGapHighFlag(t *testing.T) {
	e := &models.HarvestEntry{
		Grade1Kg:                dp("100"),
		Grade2Kg:                dp("0"),
		IndependentScaleFullKg:  dp("120"),
		IndependentScaleEmptyKg: dp("0"),
	}
	// diff 120, total 100, gap 20 => 16.67%
	if !ScaleGapHigh(e) {
		t.Error("ScaleGapHigh = false, want true")
	}
}

func TestScaleGapNilPolicies(t *testing.T) {
	tests := []struct {
		name string
		e    *models.HarvestEntry
	}{
		{"missing full reading", &models.HarvestEntry{
			Grade1Kg: dp("100"), IndependentScaleEmptyKg: dp("10"),
		}},
		{"missing empty reading", &models.HarvestEntry{
			Grade1Kg: dp("100"), IndependentScaleFullKg: dp("130"),
		}},
		{"zero diff never divides", &models.HarvestEntry{
			Grade1Kg:                dp("100"),
			IndependentScaleFullKg:  dp("10"),
			IndependentScaleEmptyKg: dp("10"),
		}},
		{"negative diff never divides", &models.HarvestEntry{
			Grade1Kg:                dp("100"),
			IndependentScaleFullKg:  dp("5"),
			IndependentScaleEmptyKg: dp("10"),
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if pct := ScaleGapPct(tt.e); pct != nil {
				t.Errorf("ScaleGapPct = %s, want nil", pct)
			}
			if ScaleGapHigh(tt.e) {
				t.Error("ScaleGapHigh = true, want false")
			}
		})
	}
}

func TestTotalKgTreatsAbsentAsZero(t *testing.T) {
	// Aggregation policy: a draft missing grade1 still sums. The submission
	// gate is stricter (see lifecycle tests); absent is not explicit zero.
	e := &models.HarvestEntry{Grade2Kg: dp("15")}
	if got := TotalKg(e); !got.Equal(d("15")) {
		t.Errorf("TotalKg = %s, want 15", got)
	}
}
