package controller

import (
	"net/http"
	"testing"

	"haiku_backend/internal/model"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRecursoPayload() fiber.Map {
	return fiber.Map{
		"titulo":      "Plantilla de CRM en Notion",
		"descripcion": "Organiza tus prospectos sin pagar un CRM.",
		"urlRecurso":  "https://example.com/crm.zip",
		"emailAsunto": "Tu plantilla de CRM",
		"emailCuerpo": "Hola {{nombre}}, aquí tienes tu plantilla: {{urlRecurso}}",
	}
}

func TestCreateRecurso_SlugDerivado(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp(db, new(MockSender))
	token := adminToken(t)

	resp := doRequest(t, app, "POST", "/api/admin/recursos", validRecursoPayload(), token)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var body map[string]interface{}
	decodeBody(t, resp, &body)
	assert.Equal(t, "plantilla-de-crm-en-notion", body["slug"])
	assert.Equal(t, true, body["activo"])
	assert.NotEmpty(t, body["id"])
}

func TestCreateRecurso_SlugDuplicado(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp(db, new(MockSender))
	token := adminToken(t)

	createRecurso(t, db, "plantilla-crm", true)

	payload := validRecursoPayload()
	payload["slug"] = "plantilla-crm"

	resp := doRequest(t, app, "POST", "/api/admin/recursos", payload, token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]interface{}
	decodeBody(t, resp, &body)
	assert.Equal(t, "El slug ya existe", body["error"])

	var count int64
	db.Model(&model.Recurso{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCreateRecurso_SlugInvalido(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp(db, new(MockSender))
	token := adminToken(t)

	payload := validRecursoPayload()
	payload["slug"] = "Con Mayúsculas Y Espacios"

	resp := doRequest(t, app, "POST", "/api/admin/recursos", payload, token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]interface{}
	decodeBody(t, resp, &body)
	details, ok := body["details"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, details, "slug")
}

func TestCreateRecurso_RequiereAuth(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp(db, new(MockSender))

	resp := doRequest(t, app, "POST", "/api/admin/recursos", validRecursoPayload(), "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestUpdateRecurso(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp(db, new(MockSender))
	token := adminToken(t)

	recurso := createRecurso(t, db, "guia-automatizacion", true)

	payload := validRecursoPayload()
	payload["titulo"] = "Guía actualizada"
	payload["activo"] = false

	resp := doRequest(t, app, "PUT", "/api/admin/recursos/"+recurso.ID, payload, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var updated model.Recurso
	require.NoError(t, db.First(&updated, "id = ?", recurso.ID).Error)
	assert.Equal(t, "Guía actualizada", updated.Titulo)
	assert.False(t, updated.Activo)
	// sin slug en el body se conserva el original
	assert.Equal(t, "guia-automatizacion", updated.Slug)
}

func TestUpdateRecurso_NoExiste(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp(db, new(MockSender))
	token := adminToken(t)

	resp := doRequest(t, app, "PUT", "/api/admin/recursos/inexistente", validRecursoPayload(), token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestToggleActivo_IgnoraOtrosCampos(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp(db, new(MockSender))
	token := adminToken(t)

	recurso := createRecurso(t, db, "guia-automatizacion", true)

	resp := doRequest(t, app, "PATCH", "/api/admin/recursos/"+recurso.ID, fiber.Map{
		"activo": false,
		"titulo": "Intento de cambio de título",
	}, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var updated model.Recurso
	require.NoError(t, db.First(&updated, "id = ?", recurso.ID).Error)
	assert.False(t, updated.Activo)
	assert.Equal(t, "Guía de Automatización con IA", updated.Titulo)
}

func TestToggleActivo_SinFlag(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp(db, new(MockSender))
	token := adminToken(t)

	recurso := createRecurso(t, db, "guia-automatizacion", true)

	resp := doRequest(t, app, "PATCH", "/api/admin/recursos/"+recurso.ID, fiber.Map{
		"titulo": "Sin flag",
	}, token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDeleteRecurso(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp(db, new(MockSender))
	token := adminToken(t)

	recurso := createRecurso(t, db, "guia-automatizacion", true)

	resp := doRequest(t, app, "DELETE", "/api/admin/recursos/"+recurso.ID, nil, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var count int64
	db.Model(&model.Recurso{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestListRecursos_ConLeadCount(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp(db, new(MockSender))
	token := adminToken(t)

	recurso := createRecurso(t, db, "guia-automatizacion", true)
	for _, email := range []string{"a@example.com", "b@example.com"} {
		require.NoError(t, db.Create(&model.Lead{
			Nombre: "Lead", Email: email,
			Whatsapp: "+51999000111", RecursoID: recurso.ID,
		}).Error)
	}

	resp := doRequest(t, app, "GET", "/api/admin/recursos", nil, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body []map[string]interface{}
	decodeBody(t, resp, &body)
	require.Len(t, body, 1)
	assert.Equal(t, float64(2), body[0]["leadCount"])
}

func TestGetRecursoBySlug(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp(db, new(MockSender))

	createRecurso(t, db, "guia-automatizacion", true)

	resp := doRequest(t, app, "GET", "/r/guia-automatizacion", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	decodeBody(t, resp, &body)
	assert.Equal(t, "Guía de Automatización con IA", body["titulo"])
	// la plantilla del email no se expone en la landing pública
	assert.NotContains(t, body, "emailCuerpo")
	assert.NotContains(t, body, "urlRecurso")
}

func TestGetRecursoBySlug_Inactivo(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp(db, new(MockSender))

	createRecurso(t, db, "guia-oculta", false)

	resp := doRequest(t, app, "GET", "/r/guia-oculta", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListRecursosPublicos_SoloActivos(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp(db, new(MockSender))

	createRecurso(t, db, "guia-visible", true)
	createRecurso(t, db, "guia-oculta", false)

	resp := doRequest(t, app, "GET", "/api/recursos", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body []map[string]interface{}
	decodeBody(t, resp, &body)
	require.Len(t, body, 1)
	assert.Equal(t, "guia-visible", body[0]["slug"])
}
