package controller

import (
	"log"

	"haiku_backend/internal/model"
	"haiku_backend/pkg/utils/storage"
	"haiku_backend/pkg/utils/validation"

	"github.com/gofiber/fiber/v2"
	gosimpleslug "github.com/gosimple/slug"
	"gorm.io/gorm"
)

type RecursoController struct {
	db      *gorm.DB
	storage *storage.S3Storage // nil si el bucket no está configurado
}

func NewRecursoController(db *gorm.DB, s3 *storage.S3Storage) *RecursoController {
	return &RecursoController{db: db, storage: s3}
}

type RecursoInput struct {
	Titulo      string  `json:"titulo" validate:"required,min=3"`
	Slug        string  `json:"slug" validate:"omitempty,slugfmt"`
	Descripcion string  `json:"descripcion" validate:"required,min=10"`
	URLRecurso  string  `json:"urlRecurso" validate:"required,url"`
	Icono       *string `json:"icono"`
	EmailAsunto string  `json:"emailAsunto" validate:"required,min=5"`
	EmailCuerpo string  `json:"emailCuerpo" validate:"required,min=10"`
	Activo      *bool   `json:"activo"`
}

type recursoConLeads struct {
	model.Recurso
	LeadCount int64 `json:"leadCount"`
}

// ListRecursos devuelve todos los recursos del panel, los más recientes
// primero, con el número de leads de cada uno.
func (ct *RecursoController) ListRecursos(c *fiber.Ctx) error {
	var recursos []model.Recurso
	if err := ct.db.Order("created_at DESC").Find(&recursos).Error; err != nil {
		log.Printf("Error fetching recursos: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error al obtener recursos",
		})
	}

	var counts []struct {
		RecursoID string
		Count     int64
	}
	if err := ct.db.Model(&model.Lead{}).
		Select("recurso_id, COUNT(*) as count").
		Group("recurso_id").
		Scan(&counts).Error; err != nil {
		log.Printf("Error counting leads per recurso: %v", err)
	}

	countByRecurso := make(map[string]int64, len(counts))
	for _, row := range counts {
		countByRecurso[row.RecursoID] = row.Count
	}

	out := make([]recursoConLeads, 0, len(recursos))
	for _, r := range recursos {
		out = append(out, recursoConLeads{Recurso: r, LeadCount: countByRecurso[r.ID]})
	}

	return c.JSON(out)
}

// CreateRecurso da de alta un recurso. Si el slug viene vacío se deriva del
// título. La verificación previa de slug duplicado es solo para dar un
// mensaje amable: la restricción única de la tabla es la garantía real.
func (ct *RecursoController) CreateRecurso(c *fiber.Ctx) error {
	input := new(RecursoInput)
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

	if input.Slug == "" {
		input.Slug = gosimpleslug.Make(input.Titulo)
	}

	var existing model.Recurso
	if err := ct.db.Where("slug = ?", input.Slug).First(&existing).Error; err == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "El slug ya existe",
		})
	}

	recurso := model.Recurso{
		Titulo:      input.Titulo,
		Slug:        input.Slug,
		Descripcion: input.Descripcion,
		URLRecurso:  input.URLRecurso,
		Icono:       normalizeIcono(input.Icono),
		EmailAsunto: input.EmailAsunto,
		EmailCuerpo: input.EmailCuerpo,
		Activo:      input.Activo == nil || *input.Activo,
	}

	if err := ct.db.Create(&recurso).Error; err != nil {
		log.Printf("Error creating recurso: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error al crear recurso",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(recurso)
}

// UpdateRecurso reemplaza todos los campos editables del recurso (PUT).
func (ct *RecursoController) UpdateRecurso(c *fiber.Ctx) error {
	id := c.Params("id")

	input := new(RecursoInput)
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
	if err := ct.db.First(&recurso, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Recurso no encontrado",
		})
	}

	recurso.Titulo = input.Titulo
	if input.Slug != "" {
		recurso.Slug = input.Slug
	}
	recurso.Descripcion = input.Descripcion
	recurso.URLRecurso = input.URLRecurso
	recurso.Icono = normalizeIcono(input.Icono)
	recurso.EmailAsunto = input.EmailAsunto
	recurso.EmailCuerpo = input.EmailCuerpo
	if input.Activo != nil {
		recurso.Activo = *input.Activo
	}

	if err := ct.db.Save(&recurso).Error; err != nil {
		log.Printf("Error updating recurso: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error al actualizar recurso",
		})
	}

	return c.JSON(recurso)
}

type activoPatchInput struct {
	Activo *bool `json:"activo"`
}

// ToggleActivo cambia únicamente el flag activo (PATCH). Cualquier otro
// campo presente en el body se ignora a propósito.
func (ct *RecursoController) ToggleActivo(c *fiber.Ctx) error {
	id := c.Params("id")

	input := new(activoPatchInput)
	if err := c.BodyParser(input); err != nil || input.Activo == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Datos inválidos",
		})
	}

	var recurso model.Recurso
	if err := ct.db.First(&recurso, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Recurso no encontrado",
		})
	}

	if err := ct.db.Model(&recurso).Update("activo", *input.Activo).Error; err != nil {
		log.Printf("Error updating recurso status: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error al actualizar estado del recurso",
		})
	}

	return c.JSON(recurso)
}

// DeleteRecurso borra el recurso; los leads y logs dependientes caen en
// cascada por la restricción de la tabla.
func (ct *RecursoController) DeleteRecurso(c *fiber.Ctx) error {
	id := c.Params("id")

	var recurso model.Recurso
	if err := ct.db.First(&recurso, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Recurso no encontrado",
		})
	}

	if err := ct.db.Delete(&recurso).Error; err != nil {
		log.Printf("Error deleting recurso: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error al eliminar recurso",
		})
	}

	return c.JSON(fiber.Map{"success": true})
}

type recursoPublico struct {
	ID          string  `json:"id"`
	Titulo      string  `json:"titulo"`
	Slug        string  `json:"slug"`
	Descripcion string  `json:"descripcion"`
	Icono       *string `json:"icono"`
}

// GetRecursoBySlug resuelve la landing pública de un recurso. Solo los
// recursos activos son resolubles.
func (ct *RecursoController) GetRecursoBySlug(c *fiber.Ctx) error {
	slug := c.Params("slug")

	var recurso model.Recurso
	if err := ct.db.Where("slug = ? AND activo = ?", slug, true).First(&recurso).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Recurso no encontrado o inactivo",
		})
	}

	return c.JSON(recursoPublico{
		ID:          recurso.ID,
		Titulo:      recurso.Titulo,
		Slug:        recurso.Slug,
		Descripcion: recurso.Descripcion,
		Icono:       recurso.Icono,
	})
}

// ListRecursosPublicos alimenta el showcase de la home con los recursos
// activos.
func (ct *RecursoController) ListRecursosPublicos(c *fiber.Ctx) error {
	var recursos []model.Recurso
	if err := ct.db.Where("activo = ?", true).Order("created_at DESC").Find(&recursos).Error; err != nil {
		log.Printf("Error fetching public recursos: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error al obtener recursos",
		})
	}

	out := make([]recursoPublico, 0, len(recursos))
	for _, r := range recursos {
		out = append(out, recursoPublico{
			ID:          r.ID,
			Titulo:      r.Titulo,
			Slug:        r.Slug,
			Descripcion: r.Descripcion,
			Icono:       r.Icono,
		})
	}

	return c.JSON(out)
}

// UploadAsset sube el archivo de un recurso (PDF/ZIP) a S3 y devuelve la URL
// para usar como urlRecurso.
func (ct *RecursoController) UploadAsset(c *fiber.Ctx) error {
	if ct.storage == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Almacenamiento no configurado",
		})
	}

	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No se recibió ningún archivo",
		})
	}

	url, err := ct.storage.UploadResourceAsset(c.Context(), file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{"url": url})
}

// el picker del admin manda cadena vacía cuando no hay ícono elegido
func normalizeIcono(icono *string) *string {
	if icono == nil || *icono == "" {
		return nil
	}
	return icono
}
