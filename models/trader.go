package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Trader is a produce buyer. Names are unique per tenant; lookups are exact
// and case-sensitive, autocomplete search is case-insensitive substring.
type Trader struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_traders_tenant_name" json:"tenantId"`
	Tenant   Tenant    `gorm:"foreignKey:TenantID" json:"-"`
	Name     string    `gorm:"size:150;not null;uniqueIndex:idx_traders_tenant_name" json:"name"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (t *Trader) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return
}
