package controller

import (
	"log"
	"time"

	"haiku_backend/internal/model"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type StatsController struct {
	db *gorm.DB
}

func NewStatsController(db *gorm.DB) *StatsController {
	return &StatsController{db: db}
}

// GetStats devuelve los contadores del dashboard de admin.
func (ct *StatsController) GetStats(c *fiber.Ctx) error {
	var (
		totalRecursos     int64
		recursosActivos   int64
		totalLeads        int64
		uniqueLeads       int64
		leadsHoy          int64
		emailsEnviados    int64
		totalContactos    int64
		contactosNoLeidos int64
	)

	db := ct.db
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	queries := []error{
		db.Model(&model.Recurso{}).Count(&totalRecursos).Error,
		db.Model(&model.Recurso{}).Where("activo = ?", true).Count(&recursosActivos).Error,
		db.Model(&model.Lead{}).Count(&totalLeads).Error,
		db.Model(&model.Lead{}).Distinct("email").Count(&uniqueLeads).Error,
		db.Model(&model.Lead{}).Where("created_at >= ?", startOfDay).Count(&leadsHoy).Error,
		db.Model(&model.Lead{}).Where("email_enviado = ?", true).Count(&emailsEnviados).Error,
		db.Model(&model.Contacto{}).Count(&totalContactos).Error,
		db.Model(&model.Contacto{}).Where("leido = ?", false).Count(&contactosNoLeidos).Error,
	}
	for _, err := range queries {
		if err != nil {
			log.Printf("Error fetching stats: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Error al obtener estadísticas",
			})
		}
	}

	return c.JSON(fiber.Map{
		"totalRecursos":     totalRecursos,
		"recursosActivos":   recursosActivos,
		"totalLeads":        totalLeads,
		"uniqueLeads":       uniqueLeads,
		"leadsHoy":          leadsHoy,
		"emailsEnviados":    emailsEnviados,
		"totalContactos":    totalContactos,
		"contactosNoLeidos": contactosNoLeidos,
	})
}
