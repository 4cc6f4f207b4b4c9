package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Recurso es un activo descargable ofrecido a cambio de datos de contacto.
// El slug es el identificador público e inmutable de su landing page.
type Recurso struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	Titulo      string    `json:"titulo" gorm:"not null"`
	Slug        string    `json:"slug" gorm:"uniqueIndex;not null"`
	Descripcion string    `json:"descripcion" gorm:"type:text;not null"`
	URLRecurso  string    `json:"urlRecurso" gorm:"not null"`
	Icono       *string   `json:"icono"`
	EmailAsunto string    `json:"emailAsunto" gorm:"not null"`
	EmailCuerpo string    `json:"emailCuerpo" gorm:"type:text;not null"` // admite {{nombre}}, {{urlRecurso}} y {{titulo}}
	Activo      bool      `json:"activo" gorm:"default:true"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Leads []Lead `json:"-" gorm:"foreignKey:RecursoID;constraint:OnDelete:CASCADE"`
}

func (r *Recurso) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
