package cron

import (
	"log"
	"sync"
	"time"

	"haiku_backend/internal/model"
	"haiku_backend/pkg/email"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

var (
	lastRunTime time.Time
	mutex       sync.Mutex
)

// InitDailyStatsCron programa el resumen diario para el admin: leads y
// mensajes de contacto captados durante el día.
func InitDailyStatsCron(db *gorm.DB, sender email.Sender, adminEmail string) {
	if adminEmail == "" {
		log.Printf("Daily stats cron disabled: no admin email configured")
		return
	}

	c := cron.New()

	// todos los días a las 19:00
	_, err := c.AddFunc("0 19 * * *", func() {
		mutex.Lock()
		defer mutex.Unlock()

		if time.Since(lastRunTime) < 23*time.Hour {
			log.Printf("Daily stats already sent today, skipping...")
			return
		}

		sendDailyStats(db, sender, adminEmail)
		lastRunTime = time.Now()
	})

	if err != nil {
		log.Printf("Could not initialize daily stats cron: %v", err)
		return
	}

	c.Start()
	log.Printf("Daily stats cron initialized successfully")
}

func sendDailyStats(db *gorm.DB, sender email.Sender, adminEmail string) {
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var leads, contactos int64
	if err := db.Model(&model.Lead{}).Where("created_at >= ?", startOfDay).Count(&leads).Error; err != nil {
		log.Printf("Error counting leads for daily stats: %v", err)
		return
	}
	if err := db.Model(&model.Contacto{}).Where("created_at >= ?", startOfDay).Count(&contactos).Error; err != nil {
		log.Printf("Error counting contactos for daily stats: %v", err)
		return
	}

	if leads == 0 && contactos == 0 {
		log.Printf("No activity today, skipping daily stats email")
		return
	}

	if err := sender.SendDailyDigest(adminEmail, leads, contactos, now); err != nil {
		log.Printf("Error sending daily stats to %s: %v", adminEmail, err)
		return
	}

	log.Printf("Daily stats sent to %s (leads: %d, contactos: %d)", adminEmail, leads, contactos)
}
