package email

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderCuerpo(t *testing.T) {
	cuerpo := "Hola {{nombre}}, tu {{titulo}} está en {{urlRecurso}}. ¡Gracias {{nombre}}!"

	got := RenderCuerpo(cuerpo, "María", "https://example.com/guia.pdf", "Guía de IA")

	assert.Equal(t, "Hola María, tu Guía de IA está en https://example.com/guia.pdf. ¡Gracias María!", got)
}

func TestRenderCuerpo_SinTokens(t *testing.T) {
	assert.Equal(t, "texto plano", RenderCuerpo("texto plano", "María", "url", "titulo"))
}

func newTestService(t *testing.T, handler http.HandlerFunc) *Service {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	service, err := NewService("re_test_key", "Haiku <hola@haiku.pe>")
	require.NoError(t, err)
	service.endpoint = server.URL

	return service
}

func TestSendRecursoEmail(t *testing.T) {
	var captured emailData
	var authHeader string

	service := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.WriteHeader(http.StatusOK)
	})

	err := service.SendRecursoEmail(
		"maria@example.com", "María", "Guía de IA",
		"https://example.com/guia.pdf", "¡Tu guía está lista!",
		"Hola {{nombre}}, descarga {{titulo}}: {{urlRecurso}}",
	)
	require.NoError(t, err)

	assert.Equal(t, "Bearer re_test_key", authHeader)
	assert.Equal(t, "Haiku <hola@haiku.pe>", captured.From)
	assert.Equal(t, []string{"maria@example.com"}, captured.To)
	assert.Equal(t, "¡Tu guía está lista!", captured.Subject)
	assert.Contains(t, captured.Html, "Hola María")
	assert.Contains(t, captured.Html, "https://example.com/guia.pdf")
}

func TestSendCustomEmail_VariosDestinatarios(t *testing.T) {
	var captured emailData

	service := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.WriteHeader(http.StatusCreated)
	})

	to := []string{"a@example.com", "b@example.com"}
	err := service.SendCustomEmail(to, "Novedades", "Tenemos nuevos recursos para ti.")
	require.NoError(t, err)

	assert.Equal(t, to, captured.To)
	assert.Contains(t, captured.Html, "Tenemos nuevos recursos para ti.")
}

func TestSendContactNotification(t *testing.T) {
	var captured emailData

	service := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.WriteHeader(http.StatusOK)
	})

	err := service.SendContactNotification(
		"admin@haiku.pe", "Lucía", "lucia@example.com", "+51955443322", "Quiero una asesoría",
	)
	require.NoError(t, err)

	assert.Equal(t, "Nuevo mensaje de contacto: Lucía", captured.Subject)
	assert.Contains(t, captured.Html, "lucia@example.com")
	assert.Contains(t, captured.Html, "+51955443322")
	assert.Contains(t, captured.Html, "Quiero una asesoría")
}

func TestSendDailyDigest(t *testing.T) {
	var captured emailData

	service := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.WriteHeader(http.StatusOK)
	})

	date := time.Date(2026, 8, 29, 19, 0, 0, 0, time.UTC)
	err := service.SendDailyDigest("admin@haiku.pe", 5, 2, date)
	require.NoError(t, err)

	assert.Equal(t, "Resumen diario Haiku: 2026-08-29", captured.Subject)
	assert.Contains(t, captured.Html, "5")
	assert.Contains(t, captured.Html, "2")
}

func TestSendTemplateEmail_ErrorDelProveedor(t *testing.T) {
	service := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"invalid from address"}`))
	})

	err := service.SendCustomEmail([]string{"a@example.com"}, "Asunto", "Cuerpo")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid from address")
}

func TestNewService_SinAPIKey(t *testing.T) {
	_, err := NewService("", "Haiku <hola@haiku.pe>")
	assert.Error(t, err)
}
