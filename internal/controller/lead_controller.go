package controller

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"haiku_backend/internal/model"
	"haiku_backend/pkg/email"
	csvutil "haiku_backend/pkg/utils/csv"
	"haiku_backend/pkg/utils/validation"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type LeadController struct {
	db    *gorm.DB
	email email.Sender
}

func NewLeadController(db *gorm.DB, sender email.Sender) *LeadController {
	return &LeadController{db: db, email: sender}
}

type LeadInput struct {
	Nombre   string `json:"nombre" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Whatsapp string `json:"whatsapp" validate:"required,min=10"`
	Slug     string `json:"slug" validate:"required"`
}

type BulkEmailInput struct {
	LeadIDs []string `json:"leadIds" validate:"required,min=1"`
	Asunto  string   `json:"asunto" validate:"required,min=5"`
	Cuerpo  string   `json:"cuerpo" validate:"required,min=10"`
}

// errorPayload serializa el error del proveedor para la columna JSON del log.
func errorPayload(err error) []byte {
	payload, _ := json.Marshal(fiber.Map{"message": err.Error()})
	return payload
}

// CreateLead es el endpoint público del embudo. El lead se persiste antes de
// intentar el envío del email: un fallo del proveedor degrada el mensaje al
// visitante pero nunca convierte la petición en error HTTP.
func (ct *LeadController) CreateLead(c *fiber.Ctx) error {
	input := new(LeadInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Datos inválidos",
		})
	}

	if details := validation.Validate(input); details != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Datos inválidos",
			"details": details,
		})
	}

	var recurso model.Recurso
	if err := ct.db.Where("slug = ? AND activo = ?", input.Slug, true).First(&recurso).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Recurso no encontrado o inactivo",
		})
	}

	lead := model.Lead{
		Nombre:       input.Nombre,
		Email:        input.Email,
		Whatsapp:     input.Whatsapp,
		RecursoID:    recurso.ID,
		EmailEnviado: false,
	}

	if err := ct.db.Create(&lead).Error; err != nil {
		log.Printf("Error creating lead: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error al procesar solicitud",
		})
	}

	sendErr := ct.email.SendRecursoEmail(
		input.Email,
		input.Nombre,
		recurso.Titulo,
		recurso.URLRecurso,
		recurso.EmailAsunto,
		recurso.EmailCuerpo,
	)
	if sendErr != nil {
		log.Printf("Could not send recurso email to %s: %v", input.Email, sendErr)
	}

	// una fila de auditoría por intento, se haya enviado o no
	emailLog := model.EmailLog{
		LeadID:  lead.ID,
		Asunto:  recurso.EmailAsunto,
		Cuerpo:  recurso.EmailCuerpo,
		Enviado: sendErr == nil,
	}
	if sendErr != nil {
		emailLog.Error = errorPayload(sendErr)
	}

	if err := ct.db.Create(&emailLog).Error; err != nil {
		log.Printf("Error creating email log: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error al procesar solicitud",
		})
	}

	if sendErr == nil {
		if err := ct.db.Model(&lead).Update("email_enviado", true).Error; err != nil {
			log.Printf("Could not mark lead %s as emailed: %v", lead.ID, err)
		}
	}

	message := "¡Listo! Revisa tu email para acceder al recurso"
	if sendErr != nil {
		message = "Registro exitoso. Hubo un problema al enviar el email, contacta a soporte."
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"message":    message,
		"recursoUrl": recurso.URLRecurso,
	})
}

// GetLeads lista los leads del panel con filtros por recurso, estado de
// envío y búsqueda libre. Con unique=true colapsa al lead más reciente por
// email.
func (ct *LeadController) GetLeads(c *fiber.Ctx) error {
	query := ct.db.Model(&model.Lead{}).Preload("Recurso").Order("created_at DESC")

	if recursoID := c.Query("recursoId"); recursoID != "" {
		query = query.Where("recurso_id = ?", recursoID)
	}

	if emailEnviado := c.Query("emailEnviado"); emailEnviado != "" {
		query = query.Where("email_enviado = ?", emailEnviado == "true")
	}

	if search := c.Query("search"); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(nombre) LIKE ? OR LOWER(email) LIKE ? OR whatsapp LIKE ?",
			pattern, pattern, "%"+search+"%",
		)
	}

	var leads []model.Lead
	if err := query.Find(&leads).Error; err != nil {
		log.Printf("Error fetching leads: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error al obtener leads",
		})
	}

	if c.Query("unique") == "true" {
		// el orden descendente por fecha ya está aplicado: la primera
		// aparición de cada email es la más reciente
		seen := make(map[string]bool)
		deduped := leads[:0]
		for _, lead := range leads {
			if seen[lead.Email] {
				continue
			}
			seen[lead.Email] = true
			deduped = append(deduped, lead)
		}
		leads = deduped
	}

	return c.JSON(leads)
}

var exportHeaders = []string{"nombre", "email", "whatsapp", "recurso", "emailEnviado", "createdAt"}

// ExportLeads descarga la tabla completa de leads como CSV adjunto.
func (ct *LeadController) ExportLeads(c *fiber.Ctx) error {
	var leads []model.Lead
	if err := ct.db.Preload("Recurso").Order("created_at DESC").Find(&leads).Error; err != nil {
		log.Printf("Error exporting leads: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error al exportar",
		})
	}

	rows := make([]map[string]string, 0, len(leads))
	for _, lead := range leads {
		recursoTitulo := "N/A"
		if lead.Recurso != nil {
			recursoTitulo = lead.Recurso.Titulo
		}

		enviado := "No"
		if lead.EmailEnviado {
			enviado = "Sí"
		}

		rows = append(rows, map[string]string{
			"nombre":       lead.Nombre,
			"email":        lead.Email,
			"whatsapp":     lead.Whatsapp,
			"recurso":      recursoTitulo,
			"emailEnviado": enviado,
			"createdAt":    lead.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	csv := csvutil.Generate(rows, exportHeaders)

	c.Set("Content-Type", "text/csv")
	c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="leads-%s.csv"`, time.Now().Format(time.RFC3339)))
	return c.SendString(csv)
}

// SendBulkEmail envía un email redactado por el admin a los leads
// seleccionados. El proveedor recibe una sola llamada con todos los
// destinatarios, pero la auditoría escribe una fila de EmailLog por lead.
func (ct *LeadController) SendBulkEmail(c *fiber.Ctx) error {
	input := new(BulkEmailInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Datos inválidos",
		})
	}

	if details := validation.Validate(input); details != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Datos inválidos",
			"details": details,
		})
	}

	var leads []model.Lead
	if err := ct.db.Where("id IN ?", input.LeadIDs).Find(&leads).Error; err != nil {
		log.Printf("Error fetching leads for bulk email: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error al enviar emails",
		})
	}

	emails := make([]string, 0, len(leads))
	for _, lead := range leads {
		emails = append(emails, lead.Email)
	}

	sendErr := ct.email.SendCustomEmail(emails, input.Asunto, input.Cuerpo)
	if sendErr != nil {
		log.Printf("Could not send bulk email: %v", sendErr)
	}

	for _, lead := range leads {
		emailLog := model.EmailLog{
			LeadID:  lead.ID,
			Asunto:  input.Asunto,
			Cuerpo:  input.Cuerpo,
			Enviado: sendErr == nil,
		}
		if sendErr != nil {
			emailLog.Error = errorPayload(sendErr)
		}
		if err := ct.db.Create(&emailLog).Error; err != nil {
			log.Printf("Error creating email log for lead %s: %v", lead.ID, err)
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": fmt.Sprintf("Emails enviados a %d destinatarios", len(emails)),
	})
}
