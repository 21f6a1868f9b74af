package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// La API espera números JSON (0, 12.5), no strings, en cantidades y precios.
	decimal.MarshalJSONWithoutQuotes = true
}

// TimestampLayout formato de fecha/hora que usa la API ("YYYY-MM-DD HH:mm:ss").
const TimestampLayout = "2006-01-02 15:04:05"

// ID identificador opaco. Acepta string o número en el JSON de entrada.
type ID string

// UnmarshalJSON decodifica "12", 12 o null.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*id = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("dto: id inválido: %w", err)
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("dto: id inválido: %s", string(b))
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string              `json:"code,omitempty"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// MessageResponse respuesta simple {"message": "..."}.
type MessageResponse struct {
	Message string `json:"message"`
}

// ParseTimestamp interpreta los formatos de fecha que devuelve la API. Vacío o inválido = tiempo cero.
func ParseTimestamp(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{TimestampLayout, time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// FormatTimestamp formatea en el layout de la API; tiempo cero = "".
func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(TimestampLayout)
}

func parseNullableTimestamp(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t := ParseTimestamp(*s)
	if t.IsZero() {
		return nil
	}
	return &t
}

func formatNullableTimestamp(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := FormatTimestamp(*t)
	return &s
}
