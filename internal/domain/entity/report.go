package entity

import "github.com/shopspring/decimal"

// StockReport resumen de stock calculado por el servidor.
type StockReport struct {
	TotalProducts int64
	TotalItems    decimal.Decimal
	TotalValue    decimal.Decimal
}

// Period intervalo de fechas (YYYY-MM-DD); vacío = abierto.
type Period struct {
	Start string
	End   string
}

// MovementSummary agregados del listado de movimientos.
type MovementSummary struct {
	Total         int
	Entries       int
	Exits         int
	TotalQuantity int64
}

// MovementReport resultado de la consulta de movimientos por período.
type MovementReport struct {
	Period    Period
	Movements []Movement
	Summary   MovementSummary
}

// SummarizeMovements calcula los agregados de un listado.
func SummarizeMovements(list []Movement) MovementSummary {
	s := MovementSummary{Total: len(list)}
	for _, m := range list {
		s.TotalQuantity += m.Quantity
		switch m.Type {
		case MovementEntry:
			s.Entries++
		case MovementExit:
			s.Exits++
		}
	}
	return s
}

// ReportFile metadatos de un archivo generado por el servidor. El contenido nunca pasa por el cliente.
type ReportFile struct {
	Name      string
	Size      int64
	SizeLabel string
	CreatedAt string
	URL       string
}
