package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del inventario.
// Quantity es autoritativa del servidor y solo cambia como efecto de un Movement.
type Product struct {
	ID        string
	Name      string
	Category  string
	Quantity  decimal.Decimal
	Price     decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// TotalValue valor en stock del producto (precio × cantidad).
func (p Product) TotalValue() decimal.Decimal {
	return p.Price.Mul(p.Quantity)
}

// IsLowStock indica si la cantidad está por debajo del umbral.
func (p Product) IsLowStock(threshold int) bool {
	return p.Quantity.LessThan(decimal.NewFromInt(int64(threshold)))
}
