// Seed bootstraps a fresh database: the admin account from
// ADMIN_EMAIL/ADMIN_PASSWORD and the salon's default service catalog.
// Safe to run repeatedly; existing rows are left alone.
package main

import (
	"log"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/romacabello/salon-scheduler/internal/config"
	dbpkg "github.com/romacabello/salon-scheduler/internal/db"
	"github.com/romacabello/salon-scheduler/internal/models"
)

func main() {
	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	seedAdmin(db)
	seedServices(db)

	log.Println("seed complete")
}

func seedAdmin(db *gorm.DB) {
	email := strings.ToLower(strings.TrimSpace(os.Getenv("ADMIN_EMAIL")))
	password := os.Getenv("ADMIN_PASSWORD")

	if email == "" || password == "" {
		log.Println("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin seed")
		return
	}

	var existing models.AdminUser
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		log.Printf("admin %s already exists", email)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash admin password: %v", err)
	}

	if err := db.Create(&models.AdminUser{
		Email:        email,
		PasswordHash: string(hashed),
	}).Error; err != nil {
		log.Fatalf("failed to create admin: %v", err)
	}
	log.Printf("admin %s created", email)
}

func seedServices(db *gorm.DB) {
	defaults := []models.Service{
		{Name: "Corte Mujer", DurationMin: 60, Price: 15000, Active: true},
		{Name: "Corte Hombre", DurationMin: 30, Price: 10000, Active: true},
		{Name: "Color", DurationMin: 120, Price: 35000, Active: true},
		{Name: "Brushing", DurationMin: 45, Price: 8000, Active: true},
		{Name: "Nutrición", DurationMin: 45, Price: 12000, Active: true},
	}

	for _, svc := range defaults {
		var existing models.Service
		if err := db.Where("name = ?", svc.Name).First(&existing).Error; err == nil {
			continue
		}
		if err := db.Create(&svc).Error; err != nil {
			log.Fatalf("failed to seed service %q: %v", svc.Name, err)
		}
		log.Printf("service %q created", svc.Name)
	}
}
