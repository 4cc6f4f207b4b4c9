package seed

import (
	"fmt"
	"log"
	"os"

	"haiku_backend/internal/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Run crea (o actualiza) el usuario admin y un recurso de ejemplo.
func Run(db *gorm.DB) error {
	if err := seedAdmin(db); err != nil {
		return err
	}
	return seedRecurso(db)
}

func seedAdmin(db *gorm.DB) error {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@haiku.pe"
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
		log.Println("ADMIN_PASSWORD not set, using default password. Change it before going live.")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("could not hash admin password: %v", err)
	}

	var admin model.User
	err = db.Where("email = ?", adminEmail).First(&admin).Error
	if err == gorm.ErrRecordNotFound {
		admin = model.User{
			Email:    adminEmail,
			Password: string(hashedPassword),
			Name:     "Admin Haiku",
		}
		if err := db.Create(&admin).Error; err != nil {
			return err
		}
		log.Printf("Admin user created: %s", admin.Email)
		return nil
	}
	if err != nil {
		return err
	}

	// si ya existe se actualiza la contraseña
	if err := db.Model(&admin).Update("password", string(hashedPassword)).Error; err != nil {
		return err
	}
	log.Printf("Admin user updated: %s", admin.Email)
	return nil
}

func seedRecurso(db *gorm.DB) error {
	var existing model.Recurso
	if err := db.Where("slug = ?", "guia-automatizacion").First(&existing).Error; err == nil {
		log.Printf("Sample recurso already exists: %s", existing.Slug)
		return nil
	}

	icono := "Bot"
	recurso := model.Recurso{
		Titulo:      "Guía de Automatización con IA",
		Slug:        "guia-automatizacion",
		Descripcion: "Descubre cómo automatizar tus procesos empresariales usando inteligencia artificial y herramientas no-code.",
		URLRecurso:  "https://drive.google.com/file/d/ejemplo",
		Icono:       &icono,
		EmailAsunto: "¡Tu Guía de Automatización está lista! 🎁",
		EmailCuerpo: "Hola {{nombre}},\n\nGracias por tu interés en automatización. Aquí está tu guía:\n\n👉 [DESCARGAR GUÍA]({{urlRecurso}})\n\n¡Éxito!\nStiven - Haiku Business",
		Activo:      true,
	}

	if err := db.Create(&recurso).Error; err != nil {
		return err
	}

	log.Printf("Sample recurso created: %s", recurso.Slug)
	return nil
}
