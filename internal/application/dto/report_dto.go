package dto

import (
	"net/url"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/devostorange/internal/domain/entity"
)

// Tipos y formatos de reporte aceptados por /api/relatorios/{tipo}/{formato}.
const (
	ReportKindStock     = "estoque"
	ReportKindMovements = "movimentacoes"

	ReportFormatPDF   = "pdf"
	ReportFormatExcel = "excel"
)

// StockReportResponse salida de GET /api/relatorios/estoque.
type StockReportResponse struct {
	TotalProducts int64           `json:"total_produtos"`
	TotalItems    decimal.Decimal `json:"total_itens_estoque"`
	TotalValue    decimal.Decimal `json:"valor_total_estoque"`
}

// ToEntity convierte en entidad.
func (r StockReportResponse) ToEntity() entity.StockReport {
	return entity.StockReport{TotalProducts: r.TotalProducts, TotalItems: r.TotalItems, TotalValue: r.TotalValue}
}

// PeriodDTO período aplicado a un reporte.
type PeriodDTO struct {
	Start string `json:"inicio"`
	End   string `json:"fim"`
}

// FileResponse metadatos de un archivo generado.
type FileResponse struct {
	Name      string `json:"nome"`
	Size      int64  `json:"tamanho"`
	SizeLabel string `json:"tamanho_formatado"`
	CreatedAt string `json:"criado_em"`
	URL       string `json:"url,omitempty"`
}

// ToEntity convierte en entidad.
func (f FileResponse) ToEntity() entity.ReportFile {
	return entity.ReportFile{Name: f.Name, Size: f.Size, SizeLabel: f.SizeLabel, CreatedAt: f.CreatedAt, URL: f.URL}
}

// FilesResponse salida de GET /api/downloads.
type FilesResponse struct {
	Files []FileResponse `json:"arquivos"`
}

// ToEntities convierte el listado.
func (r FilesResponse) ToEntities() []entity.ReportFile {
	out := make([]entity.ReportFile, 0, len(r.Files))
	for _, f := range r.Files {
		out = append(out, f.ToEntity())
	}
	return out
}

// FileURLResponse salida de generar un reporte o pedir la URL de un archivo.
type FileURLResponse struct {
	Message string `json:"message,omitempty"`
	URL     string `json:"url,omitempty"`
	File    string `json:"arquivo,omitempty"`
}

// Location URL de descarga; si falta url se usa arquivo.
func (r FileURLResponse) Location() string {
	if r.URL != "" {
		return r.URL
	}
	return r.File
}

// MovementFilter filtros de movimientos. Fechas en YYYY-MM-DD; vacío = sin límite.
type MovementFilter struct {
	Start     string `json:"inicio,omitempty" validate:"omitempty,datetime=2006-01-02"`
	End       string `json:"fim,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ProductID string `json:"produto_id,omitempty"`
}

// IsZero indica que no hay ningún filtro.
func (f MovementFilter) IsZero() bool {
	return f.Start == "" && f.End == "" && f.ProductID == ""
}

// Query parámetros de query string (inicio, fim, produto_id) solo para los campos presentes.
func (f MovementFilter) Query() url.Values {
	q := url.Values{}
	if f.Start != "" {
		q.Set("inicio", f.Start)
	}
	if f.End != "" {
		q.Set("fim", f.End)
	}
	if f.ProductID != "" {
		q.Set("produto_id", f.ProductID)
	}
	return q
}

// Matches aplica el filtro comparando el prefijo de día del movimiento; el rango es inclusivo.
func (f MovementFilter) Matches(m entity.Movement) bool {
	day := m.Day()
	if f.Start != "" && day < f.Start {
		return false
	}
	if f.End != "" && day > f.End {
		return false
	}
	if f.ProductID != "" && m.ProductID != f.ProductID {
		return false
	}
	return true
}

// MovementFilterFromQuery lee inicio, fim y produto_id de una query string.
func MovementFilterFromQuery(get func(key string) string) MovementFilter {
	return MovementFilter{Start: get("inicio"), End: get("fim"), ProductID: get("produto_id")}
}
