package handlers

import (
	"encoding/json"
	"fmt"
	"log"

	"gorm.io/gorm"

	"bahcem.in/hasat/config"
	"bahcem.in/hasat/models"
	"bahcem.in/hasat/pkg/harvest"
)

// NotificationService writes in-app notification rows when a harvest entry
// is submitted, flagging reconciliation anomalies for the tenant's admins.
//
// Delivery is best-effort by contract: every failure in here is logged and
// swallowed. A submission must never fail because a notification could not
// be written.
type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService() *NotificationService {
	return &NotificationService{db: config.DB}
}

// HarvestSubmitted implements harvest.Notifier.
func (ns *NotificationService) HarvestSubmitted(entry *models.HarvestEntry, metrics harvest.Metrics) {
	var admins []models.User
	if err := ns.db.Where("tenant_id = ? AND role = ?", entry.TenantID, "admin").Find(&admins).Error; err != nil {
		log.Printf("[NOTIFY] failed to load admins for tenant %s: %v", entry.TenantID, err)
		return
	}
	if len(admins) == 0 {
		return
	}

	notifType, priority, title, body := ns.compose(entry, metrics)

	data, err := json.Marshal(map[string]interface{}{
		"harvestName":     entry.Name,
		"traderName":      entry.TraderName,
		"metrics":         metrics,
		"scaleGapHigh":    metrics.ScaleGapHigh,
		"secondRatioHigh": metrics.SecondRatioHigh,
	})
	if err != nil {
		log.Printf("[NOTIFY] failed to marshal context for %s: %v", entry.ID, err)
		data = nil
	}

	for _, admin := range admins {
		n := models.Notification{
			TenantID:  entry.TenantID,
			UserID:    admin.ID,
			Type:      notifType,
			Priority:  priority,
			Title:     title,
			Body:      body,
			HarvestID: &entry.ID,
			Data:      data,
		}
		if err := ns.db.Create(&n).Error; err != nil {
			// Keep notifying the remaining admins even if one insert fails.
			log.Printf("[NOTIFY] failed to create notification for user %s: %v", admin.ID, err)
			continue
		}
	}
}

func (ns *NotificationService) compose(entry *models.HarvestEntry, metrics harvest.Metrics) (models.NotificationType, models.NotificationPriority, string, string) {
	switch {
	case metrics.ScaleGapHigh:
		return models.NotifScaleAnomaly, models.NotifHigh,
			fmt.Sprintf("Scale anomaly on %s", entry.Name),
			fmt.Sprintf("%s: independent scale disagrees with graded weights by %s%% (trader %s). Please review the slips.",
				entry.Name, metrics.ScaleGapPct.StringFixed(2), entry.TraderName)
	case metrics.SecondRatioHigh:
		return models.NotifSecondRatioHigh, models.NotifHigh,
			fmt.Sprintf("High second-grade ratio on %s", entry.Name),
			fmt.Sprintf("%s: %s%% of the load graded second (trader %s).",
				entry.Name, metrics.SecondRatioPct.StringFixed(2), entry.TraderName)
	default:
		return models.NotifHarvestSubmitted, models.NotifNormal,
			fmt.Sprintf("%s submitted", entry.Name),
			fmt.Sprintf("%s was submitted for trader %s, net revenue %s.",
				entry.Name, entry.TraderName, metrics.NetRevenue.StringFixed(2))
	}
}
