package harvest

import (
	"github.com/shopspring/decimal"

	"bahcem.in/hasat/models"
)

// Reconciliation math over a harvest entry. Everything here is a pure
// function of the entry's fields: no I/O, no logging, so the same formulas
// serve submission checks, summary rows and tests.
//
// Absent (nil) quantities mean "cannot compute" and propagate as nil results,
// with one deliberate exception: TotalKg treats missing grades as zero so
// summary aggregation still sums partially filled drafts.

// anomalyThreshold flags a percentage as suspicious when strictly above 5.
var anomalyThreshold = decimal.NewFromInt(5)

var two = decimal.NewFromInt(2)
var hundred = decimal.NewFromInt(100)

func orZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

// TotalKg is grade1 + grade2. Nil grades count as zero here (and only here).
func TotalKg(e *models.HarvestEntry) decimal.Decimal {
	return orZero(e.Grade1Kg).Add(orZero(e.Grade2Kg))
}

// SecondRatioPct is the share of total graded weight that fell into grade 2,
// in percent. Nil when the total is not positive.
func SecondRatioPct(e *models.HarvestEntry) *decimal.Decimal {
	total := TotalKg(e)
	if !total.IsPositive() {
		return nil
	}
	r := orZero(e.Grade2Kg).Div(total).Mul(hundred)
	return &r
}

// SecondRatioHigh reports a quality anomaly: strictly more than 5% of the
// load graded second. Exactly 5% is not flagged.
func SecondRatioHigh(e *models.HarvestEntry) bool {
	r := SecondRatioPct(e)
	return r != nil && r.GreaterThan(anomalyThreshold)
}

func Grade1Revenue(e *models.HarvestEntry) decimal.Decimal {
	return orZero(e.Grade1Kg).Mul(e.PricePerKg)
}

// Grade2Revenue prices second-grade produce at half the first-grade rate.
// The half rate is contractual across all tenants, not configurable per
// entry.
func Grade2Revenue(e *models.HarvestEntry) decimal.Decimal {
	return orZero(e.Grade2Kg).Mul(e.PricePerKg.Div(two))
}

// ThirdRevenue is tracked separately and is NOT part of NetRevenue.
func ThirdRevenue(e *models.HarvestEntry) decimal.Decimal {
	if e.ThirdKg == nil || e.ThirdPricePerKg == nil {
		return decimal.Zero
	}
	return e.ThirdKg.Mul(*e.ThirdPricePerKg)
}

// NetRevenue is grade1 revenue plus grade2 revenue. Third-grade revenue is
// deliberately excluded; folding it in would silently change historical
// summary totals.
func NetRevenue(e *models.HarvestEntry) decimal.Decimal {
	return Grade1Revenue(e).Add(Grade2Revenue(e))
}

// ScaleDiffKg is the net weight per the independent scale (full minus empty),
// the trusted reference against the trader's own scale. Nil unless both
// readings are present.
func ScaleDiffKg(e *models.HarvestEntry) *decimal.Decimal {
	if e.IndependentScaleFullKg == nil || e.IndependentScaleEmptyKg == nil {
		return nil
	}
	d := e.IndependentScaleFullKg.Sub(*e.IndependentScaleEmptyKg)
	return &d
}

// ScaleGapKg is the discrepancy between the independent scale's net weight
// and the sum of graded weights.
func ScaleGapKg(e *models.HarvestEntry) *decimal.Decimal {
	diff := ScaleDiffKg(e)
	if diff == nil {
		return nil
	}
	g := diff.Sub(TotalKg(e))
	return &g
}

// ScaleGapPct is |gap| / scaleDiff in percent. Nil when scaleDiff is absent
// or not positive, so there is never a division by zero.
func ScaleGapPct(e *models.HarvestEntry) *decimal.Decimal {
	diff := ScaleDiffKg(e)
	if diff == nil || !diff.IsPositive() {
		return nil
	}
	gap := ScaleGapKg(e)
	p := gap.Abs().Div(*diff).Mul(hundred)
	return &p
}

// ScaleGapHigh reports a measurement/fraud anomaly: gap strictly above 5%.
func ScaleGapHigh(e *models.HarvestEntry) bool {
	p := ScaleGapPct(e)
	return p != nil && p.GreaterThan(anomalyThreshold)
}

// Metrics bundles every derived value for one entry. Summary rows and the
// submission notification payload both embed it.
type Metrics struct {
	TotalKg         decimal.Decimal  `json:"totalKg"`
	SecondRatioPct  *decimal.Decimal `json:"secondRatioPct,omitempty"`
	SecondRatioHigh bool             `json:"secondRatioHigh"`
	Grade1Revenue   decimal.Decimal  `json:"grade1Revenue"`
	Grade2Revenue   decimal.Decimal  `json:"grade2Revenue"`
	ThirdRevenue    decimal.Decimal  `json:"thirdRevenue"`
	NetRevenue      decimal.Decimal  `json:"netRevenue"`
	ScaleDiffKg     *decimal.Decimal `json:"scaleDiffKg,omitempty"`
	ScaleGapKg      *decimal.Decimal `json:"scaleGapKg,omitempty"`
	ScaleGapPct     *decimal.Decimal `json:"scaleGapPct,omitempty"`
	ScaleGapHigh    bool             `json:"scaleGapHigh"`
}

func ComputeMetrics(e *models.HarvestEntry) Metrics {
	return Metrics{
		TotalKg:         TotalKg(e),
		SecondRatioPct:  SecondRatioPct(e),
		SecondRatioHigh: SecondRatioHigh(e),
		Grade1Revenue:   Grade1Revenue(e),
		Grade2Revenue:   Grade2Revenue(e),
		ThirdRevenue:    ThirdRevenue(e),
		NetRevenue:      NetRevenue(e),
		ScaleDiffKg:     ScaleDiffKg(e),
		ScaleGapKg:      ScaleGapKg(e),
		ScaleGapPct:     ScaleGapPct(e),
		ScaleGapHigh:    ScaleGapHigh(e),
	}
}
