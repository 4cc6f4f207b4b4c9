package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Lead registra el interés de un visitante en un recurso concreto.
// Se permite más de un lead con el mismo email; la vista "unique" del
// panel de admin es solo una deduplicación de lectura.
type Lead struct {
	ID           string    `json:"id" gorm:"primaryKey;size:36"`
	Nombre       string    `json:"nombre" gorm:"not null"`
	Email        string    `json:"email" gorm:"index;not null"`
	Whatsapp     string    `json:"whatsapp" gorm:"not null"`
	RecursoID    string    `json:"recursoId" gorm:"index;size:36;not null"`
	EmailEnviado bool      `json:"emailEnviado" gorm:"default:false"`
	CreatedAt    time.Time `json:"createdAt"`

	Recurso *Recurso `json:"recurso,omitempty" gorm:"foreignKey:RecursoID"`
}

func (l *Lead) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}
