package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Campus is a physical farm location within a tenant.
// A tenant may run several campuses, each with its own gardens.
type Campus struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID    uuid.UUID      `gorm:"type:uuid;index;not null" json:"tenantId"`
	Tenant      Tenant         `gorm:"foreignKey:TenantID" json:"-"`
	Name        string         `gorm:"size:150;not null" json:"name"`
	City        string         `gorm:"size:100" json:"city"`
	Description string         `gorm:"size:255" json:"description"`
	IsActive    bool           `gorm:"default:true" json:"isActive"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Gardens []Garden `gorm:"foreignKey:CampusID" json:"gardens,omitempty"`
}

func (c *Campus) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}
