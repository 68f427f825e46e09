package config

import (
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"

	"bahcem.in/hasat/models"
)

// SeedDemoTenant creates a demo tenant with one campus, one garden and an
// admin user on a fresh database. Safe to run on every boot: it skips as
// soon as any tenant exists.
func SeedDemoTenant() {
	var count int64
	DB.Model(&models.Tenant{}).Count(&count)
	if count > 0 {
		return
	}

	log.Println("Seeding demo tenant...")

	tenant := models.Tenant{Name: "Demo Çiftlik", Code: "DEMO_FARM"}
	if err := DB.Create(&tenant).Error; err != nil {
		log.Printf("Warning: seeding tenant failed: %v", err)
		return
	}

	campus := models.Campus{TenantID: tenant.ID, Name: "Merkez Kampüs", City: "Aydın"}
	if err := DB.Create(&campus).Error; err != nil {
		log.Printf("Warning: seeding campus failed: %v", err)
		return
	}

	garden := models.Garden{TenantID: tenant.ID, CampusID: campus.ID, Name: "Bahçe 1", Crop: "fig"}
	if err := DB.Create(&garden).Error; err != nil {
		log.Printf("Warning: seeding garden failed: %v", err)
		return
	}

	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "changeme"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Warning: seeding admin failed: %v", err)
		return
	}
	admin := models.User{
		TenantID:     tenant.ID,
		Name:         "Admin",
		Phone:        "5550000000",
		PasswordHash: string(hash),
		Role:         "admin",
	}
	if err := DB.Create(&admin).Error; err != nil {
		log.Printf("Warning: seeding admin failed: %v", err)
		return
	}

	log.Printf("Seeded tenant %s (admin phone 5550000000)", tenant.Code)
}
