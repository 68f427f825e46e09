package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type HarvestStatus string

const (
	HarvestDraft     HarvestStatus = "draft"
	HarvestSubmitted HarvestStatus = "submitted"
)

type PhotoCategory string

const (
	PhotoTraderSlip PhotoCategory = "TRADER_SLIP"
	PhotoGeneral    PhotoCategory = "GENERAL"
)

// HarvestEntry is one physical weighing transaction: a truck of produce
// graded and weighed on the day of harvest.
//
// All weight/price columns are decimal(20,4) so revenue totals never pick up
// binary floating point drift. Optional quantities are pointers: nil means
// "not provided", which the reconciliation math treats as non-computable,
// not as zero.
type HarvestEntry struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID uuid.UUID `gorm:"type:uuid;index;not null" json:"tenantId"`
	Tenant   Tenant    `gorm:"foreignKey:TenantID" json:"-"`
	GardenID uuid.UUID `gorm:"type:uuid;index;not null" json:"gardenId"`
	Garden   Garden    `gorm:"foreignKey:GardenID" json:"garden,omitempty"`

	TraderID uuid.UUID `gorm:"type:uuid;index;not null" json:"traderId"`
	Trader   Trader    `gorm:"foreignKey:TraderID" json:"-"`
	// TraderName is cached at entry creation so display stays stable even if
	// the trader record is later renamed.
	TraderName string `gorm:"size:150;not null" json:"traderName"`

	// Date is normalized to 12:00 UTC, see NormalizeHarvestDate.
	Date time.Time `gorm:"index;not null" json:"date"`
	// Name is the per-day display label, "DD.MM.YYYY - N. Araba". It is
	// derived data, regenerable from the same-day names, and deliberately
	// carries no unique index.
	Name   string        `gorm:"size:100;not null" json:"name"`
	Status HarvestStatus `gorm:"size:20;index;not null;default:'draft'" json:"status"`

	PricePerKg      decimal.Decimal  `gorm:"type:decimal(20,4);not null;default:0" json:"pricePerKg"`
	Grade1Kg        *decimal.Decimal `gorm:"type:decimal(20,4)" json:"grade1Kg,omitempty"`
	Grade2Kg        *decimal.Decimal `gorm:"type:decimal(20,4)" json:"grade2Kg,omitempty"`
	ThirdLabel      *string          `gorm:"size:100" json:"thirdLabel,omitempty"`
	ThirdKg         *decimal.Decimal `gorm:"type:decimal(20,4)" json:"thirdKg,omitempty"`
	ThirdPricePerKg *decimal.Decimal `gorm:"type:decimal(20,4)" json:"thirdPricePerKg,omitempty"`

	IndependentScaleFullKg  *decimal.Decimal `gorm:"type:decimal(20,4)" json:"independentScaleFullKg,omitempty"`
	IndependentScaleEmptyKg *decimal.Decimal `gorm:"type:decimal(20,4)" json:"independentScaleEmptyKg,omitempty"`
	TraderScaleFullKg       *decimal.Decimal `gorm:"type:decimal(20,4)" json:"traderScaleFullKg,omitempty"`
	TraderScaleEmptyKg      *decimal.Decimal `gorm:"type:decimal(20,4)" json:"traderScaleEmptyKg,omitempty"`

	ClosureNote *string `gorm:"type:text" json:"closureNote,omitempty"`

	SubmittedAt *time.Time `json:"submittedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	Photos []HarvestPhoto `gorm:"foreignKey:HarvestID" json:"photos,omitempty"`
}

func (e *HarvestEntry) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return
}

// HarvestPhoto is an attachment owned by a harvest entry. The binary lives in
// external storage (local disk or GCS); only the URL is recorded here.
// Photos are deletable only while the owning entry is a draft.
type HarvestPhoto struct {
	ID        uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	HarvestID uuid.UUID     `gorm:"type:uuid;index;not null" json:"harvestId"`
	Category  PhotoCategory `gorm:"size:20;not null;default:'GENERAL'" json:"category"`
	URL       string        `gorm:"size:500;not null" json:"url"`
	CreatedAt time.Time     `json:"createdAt"`
}

func (p *HarvestPhoto) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}

// NormalizeHarvestDate pins a harvest date to 12:00:00 UTC. Field devices
// submit dates in local time; anchoring mid-day keeps the UTC day-window scan
// of the name sequencer from straddling a timezone boundary.
func NormalizeHarvestDate(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 12, 0, 0, 0, time.UTC)
}
