package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type NotificationType string

const (
	NotifHarvestSubmitted NotificationType = "harvest_submitted"
	NotifScaleAnomaly     NotificationType = "scale_anomaly"
	NotifSecondRatioHigh  NotificationType = "second_ratio_high"
)

type NotificationPriority string

const (
	NotifNormal NotificationPriority = "normal"
	NotifHigh   NotificationPriority = "high"
)

// Notification is an in-app notification row. Rows are written by the
// notification service on harvest submission; push delivery is handled by an
// external collaborator and its failures never surface to the caller.
type Notification struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID uuid.UUID `gorm:"type:uuid;index;not null" json:"tenantId"`
	UserID   uuid.UUID `gorm:"type:uuid;index;not null" json:"userId"`
	User     User      `gorm:"foreignKey:UserID" json:"-"`

	Type     NotificationType     `gorm:"size:50;index;not null" json:"type"`
	Priority NotificationPriority `gorm:"size:20;default:'normal'" json:"priority"`
	Title    string               `gorm:"size:500;not null" json:"title"`
	Body     string               `gorm:"type:text;not null" json:"body"`

	// Context of the triggering entry (name, trader, anomaly metrics).
	HarvestID *uuid.UUID     `gorm:"type:uuid;index" json:"harvestId,omitempty"`
	Data      datatypes.JSON `gorm:"type:jsonb" json:"data,omitempty"`

	IsRead    bool       `gorm:"default:false;index" json:"isRead"`
	ReadAt    *time.Time `json:"readAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return
}
