// Package csv genera el CSV de exportación de leads. Los consumidores del
// export esperan el formato histórico: cabecera sin comillas y todos los
// campos de datos entre comillas dobles, escapadas duplicándolas. El
// encoding/csv de la librería estándar solo cita campos cuando hace falta,
// así que el formato se escribe a mano.
package csv

import "strings"

// Generate arma un CSV con una fila por mapa, en el orden de headers.
// Los campos ausentes quedan como cadena vacía.
func Generate(rows []map[string]string, headers []string) string {
	var b strings.Builder
	b.WriteString(strings.Join(headers, ","))

	for _, row := range rows {
		fields := make([]string, len(headers))
		for i, h := range headers {
			fields[i] = `"` + strings.ReplaceAll(row[h], `"`, `""`) + `"`
		}
		b.WriteString("\n")
		b.WriteString(strings.Join(fields, ","))
	}

	return b.String()
}
