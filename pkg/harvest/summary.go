package harvest

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"bahcem.in/hasat/models"
)

// Aggregator builds the harvest summary report: submitted entries only,
// scoped by tenant and optional filters, one row per entry plus grand
// totals recomputed from the summed weights (not averaged per row).
type Aggregator struct {
	db      *gorm.DB
	traders *TraderDirectory
}

func NewAggregator(db *gorm.DB, traders *TraderDirectory) *Aggregator {
	return &Aggregator{db: db, traders: traders}
}

// SummaryFilter narrows Summarize. Zero values are ignored.
type SummaryFilter struct {
	Year               int
	CampusID           *uuid.UUID
	GardenID           *uuid.UUID
	TraderNameContains string
}

type SummaryRow struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	Date       time.Time       `json:"date"`
	GardenID   uuid.UUID       `json:"gardenId"`
	GardenName string          `json:"gardenName"`
	TraderName string          `json:"traderName"`
	PricePerKg decimal.Decimal `json:"pricePerKg"`

	Grade1Kg *decimal.Decimal `json:"grade1Kg,omitempty"`
	Grade2Kg *decimal.Decimal `json:"grade2Kg,omitempty"`
	ThirdKg  *decimal.Decimal `json:"thirdKg,omitempty"`

	IndependentScaleFullKg  *decimal.Decimal `json:"independentScaleFullKg,omitempty"`
	IndependentScaleEmptyKg *decimal.Decimal `json:"independentScaleEmptyKg,omitempty"`

	Metrics
}

// SummaryTotals are the grand totals across all rows. SecondRatioTotalPct
// and AvgPricePerKg come from the summed weights; AvgPricePerKg is nil when
// no weight was summed.
type SummaryTotals struct {
	Rows         int             `json:"rows"`
	SumGrade1Kg  decimal.Decimal `json:"sumGrade1Kg"`
	SumGrade2Kg  decimal.Decimal `json:"sumGrade2Kg"`
	SumTotalKg   decimal.Decimal `json:"sumTotalKg"`
	SumFullKg    decimal.Decimal `json:"sumFullKg"`
	SumEmptyKg   decimal.Decimal `json:"sumEmptyKg"`
	SumScaleDiff decimal.Decimal `json:"sumScaleDiffKg"`

	SumNetRevenue   decimal.Decimal `json:"sumNetRevenue"`
	SumThirdRevenue decimal.Decimal `json:"sumThirdRevenue"`

	SecondRatioTotalPct *decimal.Decimal `json:"secondRatioTotalPct,omitempty"`
	AvgPricePerKg       *decimal.Decimal `json:"avgPricePerKg,omitempty"`
}

type Summary struct {
	Rows   []SummaryRow  `json:"rows"`
	Totals SummaryTotals `json:"totals"`
}

// Summarize selects submitted entries matching the filter, newest first,
// capped at 500 rows, and derives a reconciliation row for each.
func (a *Aggregator) Summarize(tenantID uuid.UUID, filter SummaryFilter) (*Summary, error) {
	q := a.db.Model(&models.HarvestEntry{}).
		Joins("JOIN gardens ON gardens.id = harvest_entries.garden_id").
		Where("harvest_entries.tenant_id = ? AND harvest_entries.status = ?", tenantID, models.HarvestSubmitted)

	if filter.Year > 0 {
		from := time.Date(filter.Year, 1, 1, 0, 0, 0, 0, time.UTC)
		q = q.Where("harvest_entries.date >= ? AND harvest_entries.date < ?", from, from.AddDate(1, 0, 0))
	}
	if filter.CampusID != nil {
		q = q.Where("gardens.campus_id = ?", *filter.CampusID)
	}
	if filter.GardenID != nil {
		q = q.Where("harvest_entries.garden_id = ?", *filter.GardenID)
	}
	if s := strings.TrimSpace(filter.TraderNameContains); s != "" {
		q = q.Where("harvest_entries.trader_name ILIKE ?", "%"+s+"%")
	}

	var entries []models.HarvestEntry
	if err := q.Preload("Garden").
		Order("harvest_entries.date DESC, harvest_entries.created_at DESC").
		Limit(500).
		Find(&entries).Error; err != nil {
		return nil, err
	}

	rows := make([]SummaryRow, 0, len(entries))
	for i := range entries {
		rows = append(rows, buildRow(&entries[i]))
	}
	return &Summary{Rows: rows, Totals: accumulateTotals(rows)}, nil
}

func buildRow(e *models.HarvestEntry) SummaryRow {
	return SummaryRow{
		ID:         e.ID,
		Name:       e.Name,
		Date:       e.Date,
		GardenID:   e.GardenID,
		GardenName: e.Garden.Name,
		TraderName: e.TraderName,
		PricePerKg: e.PricePerKg,

		Grade1Kg: e.Grade1Kg,
		Grade2Kg: e.Grade2Kg,
		ThirdKg:  e.ThirdKg,

		IndependentScaleFullKg:  e.IndependentScaleFullKg,
		IndependentScaleEmptyKg: e.IndependentScaleEmptyKg,

		Metrics: ComputeMetrics(e),
	}
}

// accumulateTotals sums the numeric columns and re-derives the ratio and
// average price from the sums, so the grand total line is internally
// consistent rather than an average of per-row percentages.
func accumulateTotals(rows []SummaryRow) SummaryTotals {
	t := SummaryTotals{Rows: len(rows)}
	for i := range rows {
		r := &rows[i]
		if r.Grade1Kg != nil {
			t.SumGrade1Kg = t.SumGrade1Kg.Add(*r.Grade1Kg)
		}
		if r.Grade2Kg != nil {
			t.SumGrade2Kg = t.SumGrade2Kg.Add(*r.Grade2Kg)
		}
		t.SumTotalKg = t.SumTotalKg.Add(r.TotalKg)
		if r.IndependentScaleFullKg != nil {
			t.SumFullKg = t.SumFullKg.Add(*r.IndependentScaleFullKg)
		}
		if r.IndependentScaleEmptyKg != nil {
			t.SumEmptyKg = t.SumEmptyKg.Add(*r.IndependentScaleEmptyKg)
		}
		t.SumNetRevenue = t.SumNetRevenue.Add(r.NetRevenue)
		t.SumThirdRevenue = t.SumThirdRevenue.Add(r.ThirdRevenue)
	}
	t.SumScaleDiff = t.SumFullKg.Sub(t.SumEmptyKg)

	if t.SumTotalKg.IsPositive() {
		ratio := t.SumGrade2Kg.Div(t.SumTotalKg).Mul(hundred)
		t.SecondRatioTotalPct = &ratio
		avg := t.SumNetRevenue.Div(t.SumTotalKg)
		t.AvgPricePerKg = &avg
	}
	return t
}

// TraderNames lists the distinct trader names available for the summary
// filter dropdown.
func (a *Aggregator) TraderNames(tenantID uuid.UUID) ([]string, error) {
	traders, err := a.traders.ListAll(tenantID)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(traders))
	for i, tr := range traders {
		names[i] = tr.Name
	}
	return names, nil
}
