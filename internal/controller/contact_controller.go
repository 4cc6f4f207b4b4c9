package controller

import (
	"log"
	"strings"

	"haiku_backend/internal/model"
	"haiku_backend/pkg/email"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ContactController struct {
	db         *gorm.DB
	email      email.Sender
	adminEmail string
}

func NewContactController(db *gorm.DB, sender email.Sender, adminEmail string) *ContactController {
	return &ContactController{db: db, email: sender, adminEmail: adminEmail}
}

type ContactInput struct {
	Nombre   string `json:"nombre"`
	Email    string `json:"email"`
	Whatsapp string `json:"whatsapp"`
	Mensaje  string `json:"mensaje"`
}

// CreateContact guarda un mensaje del formulario de contacto. La
// notificación al admin sale en una goroutine aparte: si falla se loguea y
// nada más, el mensaje ya quedó persistido.
func (ct *ContactController) CreateContact(c *fiber.Ctx) error {
	input := new(ContactInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Datos inválidos",
		})
	}

	if input.Nombre == "" || input.Email == "" || input.Mensaje == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Nombre, email y mensaje son requeridos",
		})
	}

	contacto := model.Contacto{
		Nombre:  input.Nombre,
		Email:   input.Email,
		Mensaje: input.Mensaje,
	}
	if input.Whatsapp != "" {
		contacto.Whatsapp = &input.Whatsapp
	}

	if err := ct.db.Create(&contacto).Error; err != nil {
		log.Printf("Error creating contacto: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error al procesar el mensaje",
		})
	}

	if ct.adminEmail != "" {
		nombre, correo, whatsapp, mensaje := input.Nombre, input.Email, input.Whatsapp, input.Mensaje
		go func() {
			if err := ct.email.SendContactNotification(ct.adminEmail, nombre, correo, whatsapp, mensaje); err != nil {
				log.Printf("Error sending notification email: %v", err)
			}
		}()
	}

	return c.JSON(fiber.Map{
		"message": "Mensaje enviado correctamente",
		"id":      contacto.ID,
	})
}

// GetContactos lista los mensajes del panel con búsqueda libre y filtro por
// leído.
func (ct *ContactController) GetContactos(c *fiber.Ctx) error {
	query := ct.db.Model(&model.Contacto{}).Order("created_at DESC")

	if leido := c.Query("leido"); leido == "true" || leido == "false" {
		query = query.Where("leido = ?", leido == "true")
	}

	if search := c.Query("search"); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(nombre) LIKE ? OR LOWER(email) LIKE ? OR LOWER(mensaje) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	var contactos []model.Contacto
	if err := query.Find(&contactos).Error; err != nil {
		log.Printf("Error fetching contactos: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error al obtener contactos",
		})
	}

	return c.JSON(contactos)
}

type contactoPatchInput struct {
	ID    string `json:"id"`
	Leido *bool  `json:"leido"`
}

// UpdateContacto marca un mensaje como leído o no leído.
func (ct *ContactController) UpdateContacto(c *fiber.Ctx) error {
	input := new(contactoPatchInput)
	if err := c.BodyParser(input); err != nil || input.ID == "" || input.Leido == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Datos inválidos",
		})
	}

	var contacto model.Contacto
	if err := ct.db.First(&contacto, "id = ?", input.ID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Contacto no encontrado",
		})
	}

	if err := ct.db.Model(&contacto).Update("leido", *input.Leido).Error; err != nil {
		log.Printf("Error updating contacto: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error al actualizar contacto",
		})
	}

	return c.JSON(contacto)
}
