package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Garden is a single plot within a campus. Harvest entries reference the
// garden they were weighed at; the garden must belong to the caller's tenant.
type Garden struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID uuid.UUID `gorm:"type:uuid;index;not null" json:"tenantId"`
	Tenant   Tenant    `gorm:"foreignKey:TenantID" json:"-"`
	CampusID uuid.UUID `gorm:"type:uuid;index;not null" json:"campusId"`
	Campus   Campus    `gorm:"foreignKey:CampusID" json:"campus,omitempty"`
	Name     string    `gorm:"size:150;not null" json:"name"`
	Crop     string    `gorm:"size:100" json:"crop"` // e.g. "fig", "olive"

	// Boundary is an optional GeoJSON polygon of the plot. Validated and
	// measured on import, see handlers/garden_boundary.go.
	Boundary    *string  `gorm:"type:jsonb" json:"boundary,omitempty"`
	AreaDecares *float64 `json:"areaDecares,omitempty"`

	IsActive  bool           `gorm:"default:true" json:"isActive"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (g *Garden) BeforeCreate(tx *gorm.DB) (err error) {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return
}
