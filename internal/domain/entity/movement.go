package entity

// MovementType tipo de movimiento de stock.
type MovementType string

// Tipos de movimiento.
const (
	MovementEntry MovementType = "entrada"
	MovementExit  MovementType = "saida"
)

// Valid indica si el tipo es entrada o saída.
func (t MovementType) Valid() bool {
	return t == MovementEntry || t == MovementExit
}

// Movement registro append-only de entrada o salida de stock.
// Date conserva el timestamp tal como lo envía el servidor ("YYYY-MM-DD HH:mm:ss").
type Movement struct {
	ID          string
	ProductID   string
	ProductName string
	Category    string
	UserID      string
	UserName    string
	Type        MovementType
	Quantity    int64
	Date        string
}

// Day devuelve el día calendario (prefijo YYYY-MM-DD) del timestamp.
func (m Movement) Day() string {
	return DayOf(m.Date)
}

// DayOf trunca un timestamp a su prefijo de 10 caracteres.
func DayOf(ts string) string {
	if len(ts) > 10 {
		return ts[:10]
	}
	return ts
}
