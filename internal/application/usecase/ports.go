package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/devostorange/internal/domain/entity"
)

// ReportTotal línea de totales al pie de un reporte.
type ReportTotal struct {
	Label string
	Value string
}

// ReportDocument contenido tabular de un reporte, independiente del formato de salida.
type ReportDocument struct {
	Title       string
	Subtitle    string
	Headers     []string
	Widths      []int // columnas de la grilla de 12 (PDF); len == len(Headers)
	Rows        [][]string
	Totals      []ReportTotal
	GeneratedAt time.Time
}

// ReportRenderer convierte un ReportDocument en los bytes de un archivo.
type ReportRenderer interface {
	Render(ctx context.Context, doc ReportDocument) ([]byte, error)
	Extension() string
}

// FileStorage guarda y lista los archivos generados. Stat devuelve domain.ErrNotFound si no existe.
type FileStorage interface {
	Save(name string, data []byte) (entity.ReportFile, error)
	List() ([]entity.ReportFile, error)
	Stat(name string) (entity.ReportFile, error)
}
