package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/devostorange/internal/domain/entity"
)

// MovementRequest body de POST /api/movimentacoes/{entrada|saida}.
type MovementRequest struct {
	ProductID string `json:"produto_id" validate:"required"`
	Quantity  int64  `json:"quantidade" validate:"gt=0"`
}

// MovementResponse salida canónica de un movimiento. Al decodificar acepta las
// variantes de nombre que usa el servidor (ver UnmarshalJSON).
type MovementResponse struct {
	ID          ID     `json:"id"`
	ProductID   ID     `json:"produto_id"`
	ProductName string `json:"produto_nome"`
	Category    string `json:"categoria"`
	UserID      ID     `json:"usuario_id"`
	UserName    string `json:"usuario_nome"`
	Type        string `json:"tipo"`
	Quantity    int64  `json:"quantidade"`
	Date        string `json:"data"`
}

type namedRef struct {
	ID       ID     `json:"id"`
	Name     string `json:"nome"`
	Category string `json:"categoria"`
}

type rawMovement struct {
	ID          ID              `json:"id"`
	ProductID   ID              `json:"produto_id"`
	Product     *namedRef       `json:"produto"`
	ProductName string          `json:"produto_nome"`
	NameAlt     string          `json:"nome_produto"`
	Category    string          `json:"categoria"`
	UserID      ID              `json:"usuario_id"`
	User        *namedRef       `json:"usuario"`
	UserName    string          `json:"usuario_nome"`
	Tipo        string          `json:"tipo"`
	Type        string          `json:"type"`
	Entry       json.RawMessage `json:"entrada"`
	Exit        json.RawMessage `json:"saida"`
	Quantidade  json.RawMessage `json:"quantidade"`
	Qtd         json.RawMessage `json:"qtd"`
	Valor       json.RawMessage `json:"valor"`
	Data        string          `json:"data"`
	CreatedAt   string          `json:"created_at"`
	Date        string          `json:"date"`
}

// UnmarshalJSON normaliza: fecha data|created_at|date, nombre de producto
// produto.nome|produto_nome|nome_produto, tipo tipo|type|entrada/saida booleanos,
// cantidad quantidade|qtd|valor.
func (m *MovementResponse) UnmarshalJSON(b []byte) error {
	var raw rawMovement
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("dto: movimiento inválido: %w", err)
	}
	out := MovementResponse{
		ID:          raw.ID,
		ProductID:   raw.ProductID,
		ProductName: firstNonEmpty(raw.ProductName, raw.NameAlt),
		Category:    raw.Category,
		UserID:      raw.UserID,
		UserName:    raw.UserName,
		Date:        firstNonEmpty(raw.Data, raw.CreatedAt, raw.Date),
	}
	if raw.Product != nil {
		out.ProductName = firstNonEmpty(raw.Product.Name, out.ProductName)
		out.Category = firstNonEmpty(out.Category, raw.Product.Category)
		if out.ProductID == "" {
			out.ProductID = raw.Product.ID
		}
	}
	if raw.User != nil {
		out.UserName = firstNonEmpty(out.UserName, raw.User.Name)
		if out.UserID == "" {
			out.UserID = raw.User.ID
		}
	}
	switch {
	case raw.Tipo != "":
		out.Type = strings.ToLower(raw.Tipo)
	case raw.Type != "":
		out.Type = strings.ToLower(raw.Type)
	case truthy(raw.Entry):
		out.Type = string(entity.MovementEntry)
	case truthy(raw.Exit):
		out.Type = string(entity.MovementExit)
	}
	for _, q := range []json.RawMessage{raw.Quantidade, raw.Qtd, raw.Valor} {
		if n, ok := number(q); ok && !n.IsZero() {
			out.Quantity = n.IntPart()
			break
		}
	}
	*m = out
	return nil
}

// ToEntity convierte en entidad.
func (m MovementResponse) ToEntity() entity.Movement {
	return entity.Movement{
		ID:          string(m.ID),
		ProductID:   string(m.ProductID),
		ProductName: m.ProductName,
		Category:    m.Category,
		UserID:      string(m.UserID),
		UserName:    m.UserName,
		Type:        entity.MovementType(m.Type),
		Quantity:    m.Quantity,
		Date:        m.Date,
	}
}

// MovementFromEntity arma la salida canónica.
func MovementFromEntity(m entity.Movement) MovementResponse {
	return MovementResponse{
		ID:          ID(m.ID),
		ProductID:   ID(m.ProductID),
		ProductName: m.ProductName,
		Category:    m.Category,
		UserID:      ID(m.UserID),
		UserName:    m.UserName,
		Type:        string(m.Type),
		Quantity:    m.Quantity,
		Date:        m.Date,
	}
}

// MovementsToEntities convierte un listado.
func MovementsToEntities(in []MovementResponse) []entity.Movement {
	out := make([]entity.Movement, 0, len(in))
	for _, m := range in {
		out = append(out, m.ToEntity())
	}
	return out
}

// RecordMovementResponse respuesta de registrar un movimiento. Ambos campos son opcionales.
type RecordMovementResponse struct {
	Message  string            `json:"message,omitempty"`
	Movement *MovementResponse `json:"movimentacao,omitempty"`
	Product  *ProductResponse  `json:"produto,omitempty"`
}

// MovementReportResponse listado de movimientos; el servidor puede enviar un array
// o un objeto con movimentacoes|data y el período aplicado.
type MovementReportResponse struct {
	Period    PeriodDTO          `json:"periodo"`
	Movements []MovementResponse `json:"movimentacoes"`
}

// UnmarshalJSON acepta las dos formas.
func (r *MovementReportResponse) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '[' {
		var list []MovementResponse
		if err := json.Unmarshal(b, &list); err != nil {
			return fmt.Errorf("dto: listado de movimientos inválido: %w", err)
		}
		*r = MovementReportResponse{Movements: list}
		return nil
	}
	var obj struct {
		Period    PeriodDTO          `json:"periodo"`
		Movements []MovementResponse `json:"movimentacoes"`
		Data      []MovementResponse `json:"data"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return fmt.Errorf("dto: listado de movimientos inválido: %w", err)
	}
	list := obj.Movements
	if list == nil {
		list = obj.Data
	}
	*r = MovementReportResponse{Period: obj.Period, Movements: list}
	return nil
}

// ToEntity convierte en reporte con el resumen calculado localmente.
func (r MovementReportResponse) ToEntity() entity.MovementReport {
	list := MovementsToEntities(r.Movements)
	return entity.MovementReport{
		Period:    entity.Period{Start: r.Period.Start, End: r.Period.End},
		Movements: list,
		Summary:   entity.SummarizeMovements(list),
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// truthy interpreta true, 1, "1", "true" como verdadero.
func truthy(raw json.RawMessage) bool {
	s := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	switch strings.ToLower(s) {
	case "true", "1":
		return true
	}
	return false
}

// number decodifica un número que puede llegar como string o número.
func number(raw json.RawMessage) (decimal.Decimal, bool) {
	s := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	if s == "" || s == "null" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
