package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// EmailLog es el registro de auditoría de un intento de envío de email.
// Una fila por intento, nunca se actualiza ni se borra.
type EmailLog struct {
	ID        string         `json:"id" gorm:"primaryKey;size:36"`
	LeadID    string         `json:"leadId" gorm:"index;size:36;not null"`
	Asunto    string         `json:"asunto" gorm:"not null"`
	Cuerpo    string         `json:"cuerpo" gorm:"type:text"`
	Enviado   bool           `json:"enviado"`
	Error     datatypes.JSON `json:"error,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`

	Lead Lead `json:"-" gorm:"foreignKey:LeadID;constraint:OnDelete:CASCADE"`
}

func (e *EmailLog) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
