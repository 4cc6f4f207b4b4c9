package email

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// Sender es lo que los controllers necesitan del servicio de email. Cada
// método corresponde a un intento de envío; el registro del resultado en
// EmailLog es responsabilidad del llamador.
type Sender interface {
	SendRecursoEmail(to, nombre, titulo, urlRecurso, asunto, cuerpo string) error
	SendCustomEmail(to []string, asunto, cuerpo string) error
	SendContactNotification(to, nombre, email, whatsapp, mensaje string) error
	SendDailyDigest(to string, leads, contactos int64, date time.Time) error
}

const resendEndpoint = "https://api.resend.com/emails"

type Service struct {
	apiKey    string
	from      string
	endpoint  string
	client    *http.Client
	templates *template.Template
}

type emailData struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Html    string   `json:"html"`
}

type recursoEmailData struct {
	Nombre     string
	Titulo     string
	URLRecurso string
	Cuerpo     string
}

type customEmailData struct {
	Cuerpo string
}

type contactNotificationData struct {
	Nombre   string
	Email    string
	Whatsapp string
	Mensaje  string
}

type dailyDigestData struct {
	Fecha     string
	Leads     int64
	Contactos int64
}

func NewService(apiKey, from string) (*Service, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("resend API key is required")
	}

	templates, err := loadTemplates()
	if err != nil {
		return nil, fmt.Errorf("error loading email templates: %v", err)
	}

	return &Service{
		apiKey:    apiKey,
		from:      from,
		endpoint:  resendEndpoint,
		client:    &http.Client{},
		templates: templates,
	}, nil
}

// RenderCuerpo sustituye los tokens literales {{nombre}}, {{urlRecurso}} y
// {{titulo}} en el cuerpo guardado de un recurso. Los tokens deben quedar
// exactamente así por compatibilidad con las plantillas ya almacenadas.
func RenderCuerpo(cuerpo, nombre, urlRecurso, titulo string) string {
	r := strings.NewReplacer(
		"{{nombre}}", nombre,
		"{{urlRecurso}}", urlRecurso,
		"{{titulo}}", titulo,
	)
	return r.Replace(cuerpo)
}

func (s *Service) sendTemplateEmail(to []string, subject, templateName string, data interface{}) error {
	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, templateName, data); err != nil {
		return fmt.Errorf("template execution error: %v", err)
	}

	payload := emailData{
		From:    s.from,
		To:      to,
		Subject: subject,
		Html:    body.String(),
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("error marshaling email data: %v", err)
	}

	req, err := http.NewRequest("POST", s.endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("error creating request: %v", err)
	}

	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("error sending email: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response body: %v", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		log.Printf("Resend API error: status %d, body %s", resp.StatusCode, string(respBody))
		return fmt.Errorf("resend API error: %s", string(respBody))
	}

	return nil
}

// SendRecursoEmail entrega un recurso a un lead. El cuerpo guardado del
// recurso se personaliza antes de renderizar la plantilla.
func (s *Service) SendRecursoEmail(to, nombre, titulo, urlRecurso, asunto, cuerpo string) error {
	data := recursoEmailData{
		Nombre:     nombre,
		Titulo:     titulo,
		URLRecurso: urlRecurso,
		Cuerpo:     RenderCuerpo(cuerpo, nombre, urlRecurso, titulo),
	}
	return s.sendTemplateEmail([]string{to}, asunto, "recurso.html", data)
}

// SendCustomEmail envía un email redactado por el admin a varios leads en
// una sola llamada al proveedor.
func (s *Service) SendCustomEmail(to []string, asunto, cuerpo string) error {
	data := customEmailData{Cuerpo: cuerpo}
	return s.sendTemplateEmail(to, asunto, "custom.html", data)
}

// SendContactNotification avisa al admin de un mensaje de contacto nuevo.
func (s *Service) SendContactNotification(to, nombre, email, whatsapp, mensaje string) error {
	data := contactNotificationData{
		Nombre:   nombre,
		Email:    email,
		Whatsapp: whatsapp,
		Mensaje:  mensaje,
	}
	subject := fmt.Sprintf("Nuevo mensaje de contacto: %s", nombre)
	return s.sendTemplateEmail([]string{to}, subject, "contacto_notificacion.html", data)
}

// SendDailyDigest envía al admin el resumen del día.
func (s *Service) SendDailyDigest(to string, leads, contactos int64, date time.Time) error {
	data := dailyDigestData{
		Fecha:     date.Format("2006-01-02"),
		Leads:     leads,
		Contactos: contactos,
	}
	subject := fmt.Sprintf("Resumen diario Haiku: %s", data.Fecha)
	return s.sendTemplateEmail([]string{to}, subject, "resumen_diario.html", data)
}
