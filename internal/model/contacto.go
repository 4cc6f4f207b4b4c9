package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Contacto es un mensaje libre del formulario de contacto, independiente
// del embudo de recursos.
type Contacto struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	Nombre    string    `json:"nombre" gorm:"not null"`
	Email     string    `json:"email" gorm:"not null"`
	Whatsapp  *string   `json:"whatsapp"`
	Mensaje   string    `json:"mensaje" gorm:"type:text;not null"`
	Leido     bool      `json:"leido" gorm:"default:false"`
	CreatedAt time.Time `json:"createdAt"`
}

func (co *Contacto) BeforeCreate(tx *gorm.DB) error {
	if co.ID == "" {
		co.ID = uuid.NewString()
	}
	return nil
}
