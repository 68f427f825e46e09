package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Inspection is a dated garden visit note. Read-mostly: no lifecycle beyond
// create/edit/delete, no derived metrics.
type Inspection struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID uuid.UUID `gorm:"type:uuid;index;not null" json:"tenantId"`
	GardenID uuid.UUID `gorm:"type:uuid;index;not null" json:"gardenId"`
	Garden   Garden    `gorm:"foreignKey:GardenID" json:"garden,omitempty"`

	VisitedAt     JSONTime       `gorm:"not null" json:"visitedAt"`
	InspectorName string         `gorm:"size:100;not null" json:"inspectorName"`
	Note          string         `gorm:"type:text" json:"note"`
	PhotoURLs     pq.StringArray `gorm:"type:text[]" json:"photoUrls"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (i *Inspection) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return
}
