package controller

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"haiku_backend/internal/middleware"
	"haiku_backend/internal/model"
	"haiku_backend/pkg/email"
	"haiku_backend/pkg/utils/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

/* ==================== MOCKS ==================== */

type MockSender struct {
	mock.Mock
}

func (m *MockSender) SendRecursoEmail(to, nombre, titulo, urlRecurso, asunto, cuerpo string) error {
	args := m.Called(to, nombre, titulo, urlRecurso, asunto, cuerpo)
	return args.Error(0)
}

func (m *MockSender) SendCustomEmail(to []string, asunto, cuerpo string) error {
	args := m.Called(to, asunto, cuerpo)
	return args.Error(0)
}

func (m *MockSender) SendContactNotification(to, nombre, email, whatsapp, mensaje string) error {
	args := m.Called(to, nombre, email, whatsapp, mensaje)
	return args.Error(0)
}

func (m *MockSender) SendDailyDigest(to string, leads, contactos int64, date time.Time) error {
	args := m.Called(to, leads, contactos, date)
	return args.Error(0)
}

/* ==================== SETUP ==================== */

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Recurso{},
		&model.Lead{},
		&model.Contacto{},
		&model.EmailLog{},
	))

	return db
}

func setupApp(db *gorm.DB, sender email.Sender) *fiber.App {
	app := fiber.New()

	authCt := NewAuthController(db)
	leadCt := NewLeadController(db, sender)
	contactCt := NewContactController(db, sender, "admin@haiku.pe")
	recursoCt := NewRecursoController(db, nil)
	statsCt := NewStatsController(db)

	api := app.Group("/api")
	api.Post("/leads", leadCt.CreateLead)
	api.Post("/contact", contactCt.CreateContact)
	api.Get("/recursos", recursoCt.ListRecursosPublicos)
	app.Get("/r/:slug", recursoCt.GetRecursoBySlug)

	api.Post("/admin/auth/login", authCt.Login)

	protected := api.Group("/admin").Use(middleware.AuthMiddleware())
	protected.Get("/recursos", recursoCt.ListRecursos)
	protected.Post("/recursos", recursoCt.CreateRecurso)
	protected.Put("/recursos/:id", recursoCt.UpdateRecurso)
	protected.Patch("/recursos/:id", recursoCt.ToggleActivo)
	protected.Delete("/recursos/:id", recursoCt.DeleteRecurso)
	protected.Get("/leads", leadCt.GetLeads)
	protected.Get("/leads/export", leadCt.ExportLeads)
	protected.Post("/leads/email", leadCt.SendBulkEmail)
	protected.Get("/contactos", contactCt.GetContactos)
	protected.Patch("/contactos", contactCt.UpdateContacto)
	protected.Get("/stats", statsCt.GetStats)

	return app
}

func adminToken(t *testing.T) string {
	t.Helper()
	token, err := jwt.GenerateToken("test-admin", "admin@haiku.pe", "Admin")
	require.NoError(t, err)
	return token
}

func doRequest(t *testing.T, app *fiber.App, method, path string, body interface{}, token string) *http.Response {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, path, reqBody)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	resp.Body.Close()
}

func createRecurso(t *testing.T, db *gorm.DB, slug string, activo bool) model.Recurso {
	t.Helper()

	recurso := model.Recurso{
		Titulo:      "Guía de Automatización con IA",
		Slug:        slug,
		Descripcion: "Automatiza tus procesos con herramientas no-code.",
		URLRecurso:  "https://example.com/guia.pdf",
		EmailAsunto: "¡Tu guía está lista!",
		EmailCuerpo: "Hola {{nombre}}, descarga {{titulo}} aquí: {{urlRecurso}}",
		Activo:      activo,
	}
	require.NoError(t, db.Create(&recurso).Error)
	return recurso
}
