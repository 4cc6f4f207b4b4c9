// Package icon asigna un ícono a cada recurso a partir de palabras clave en
// su título y descripción. Las reglas se evalúan en orden y gana la primera
// coincidencia; varios conjuntos se solapan (p. ej. "excel" vs.
// "automatización"), así que el orden de la tabla es parte del contrato.
package icon

import "strings"

// Default se usa cuando ninguna regla coincide.
const Default = "FileText"

type rule struct {
	keywords []string
	icon     string
}

var rules = []rule{
	{[]string{"excel", "hoja de cálculo", "spreadsheet", "tabla"}, "FileSpreadsheet"},
	{[]string{"checklist", "check list", "verificación"}, "FileCheck"},
	{[]string{"automatización", "automati", "workflow", "flujo"}, "Bot"},
	{[]string{"inteligencia artificial", " ia ", "chatgpt", "gpt", "prompt"}, "Bot"},
	{[]string{"marketing", "publicidad", "ads", "campaña"}, "Megaphone"},
	{[]string{"email", "correo", "newsletter", "mailing"}, "Mail"},
	{[]string{"calendario", "agenda", "planificador", "schedule"}, "Calendar"},
	{[]string{"finanzas", "presupuesto", "dinero", "inversión", "costos"}, "DollarSign"},
	{[]string{"equipo", "rrhh", "personas", "contratación"}, "Users"},
	{[]string{"web", "sitio", "página", "seo", "online"}, "Globe"},
	{[]string{"rápido", "eficiente", "productividad", "velocidad"}, "Zap"},
	{[]string{"estrategia", "objetivo", "meta", "kpi"}, "Target"},
	{[]string{"herramienta", "toolkit", "kit"}, "Wrench"},
	{[]string{"guía", "guia", "manual", "tutorial", "curso"}, "BookOpen"},
	{[]string{"presentación", "slides", "pitch", "deck"}, "Presentation"},
	{[]string{"idea", "consejo", "tips", "innovación"}, "Lightbulb"},
	{[]string{"crecimiento", "escalar", "ventas", "métricas"}, "TrendingUp"},
	{[]string{"lanzamiento", "startup", "negocio nuevo"}, "Rocket"},
	{[]string{"plantilla", "template", "documento", "pdf"}, "FileText"},
	{[]string{"descarga", "recurso", "gratis"}, "Download"},
}

// Assign devuelve el ícono de la primera regla cuyo conjunto de palabras
// clave aparece en "titulo descripcion" (en minúsculas).
func Assign(titulo, descripcion string) string {
	text := strings.ToLower(titulo + " " + descripcion)

	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(text, kw) {
				return r.icon
			}
		}
	}

	return Default
}
