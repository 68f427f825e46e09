package config

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"

	"bahcem.in/hasat/models"
)

func Migrations(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "20260301_create_core_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.Tenant{}, &models.User{}, &models.Campus{},
					&models.Garden{}, &models.Trader{}, &models.HarvestEntry{}, &models.HarvestPhoto{},
					&models.Inspection{})
			},
		},
		{
			ID: "20260412_add_notifications",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.Notification{})
			},
		},
		{
			ID: "20260503_add_closure_note",
			Migrate: func(tx *gorm.DB) error {
				// Added after the pilot: field staff wanted a free-text note
				// on why a day's weighing was closed early.
				return tx.Exec("ALTER TABLE harvest_entries ADD COLUMN IF NOT EXISTS closure_note text").Error
			},
		},
		{
			ID: "20260607_add_garden_boundaries",
			Migrate: func(tx *gorm.DB) error {
				if err := tx.Exec("ALTER TABLE gardens ADD COLUMN IF NOT EXISTS boundary jsonb").Error; err != nil {
					return err
				}
				return tx.Exec("ALTER TABLE gardens ADD COLUMN IF NOT EXISTS area_decares numeric").Error
			},
		},
		{
			ID: "20260715_index_harvest_tenant_date",
			Migrate: func(tx *gorm.DB) error {
				// The name sequencer scans (tenant_id, date) on every create.
				return tx.Exec("CREATE INDEX IF NOT EXISTS idx_harvest_entries_tenant_date ON harvest_entries (tenant_id, date)").Error
			},
		},
	})

	return m.Migrate()
}
