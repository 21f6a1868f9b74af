// Package report renderiza los reportes del sandbox (PDF con Maroto, Excel con Excelize)
// y guarda los archivos generados en disco.
//
// Layout de la página A4 del PDF:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + período    │  Fecha de generación         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: columnas del reporte                                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES                                                     │
//	└─────────────────────────────────────────────────────────────┘
package report

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/devostorange/internal/application/usecase"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 230, Green: 110, Blue: 20}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Renderer ──────────────────────────────────────────────────────────────────

// MarotoPDFRenderer implementa usecase.ReportRenderer usando Maroto v2.
type MarotoPDFRenderer struct {
	author string
}

// NewMarotoPDFRenderer construye el renderer; author va en los metadatos del PDF.
func NewMarotoPDFRenderer(author string) *MarotoPDFRenderer {
	return &MarotoPDFRenderer{author: author}
}

// Extension extensión de los archivos generados.
func (r *MarotoPDFRenderer) Extension() string { return "pdf" }

// Render genera el PDF y devuelve sus bytes.
func (r *MarotoPDFRenderer) Render(_ context.Context, doc usecase.ReportDocument) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(doc.Title, true).
		WithAuthor(r.author, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow(doc))
	for _, rw := range tableRows(doc) {
		m.AddRows(rw)
	}
	if len(doc.Rows) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Nenhum registro encontrado.", props.Text{Size: 8, Align: align.Center, Color: colorGray, Top: 2}),
		)))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	for _, rw := range totalRows(doc.Totals) {
		m.AddRows(rw)
	}

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("report: generar pdf: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título y período (izq), fecha de generación (der).
func headerRow(doc usecase.ReportDocument) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(doc.Title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(doc.Subtitle, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Gerado em: "+doc.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow(doc usecase.ReportDocument) core.Row {
	cols := make([]core.Col, 0, len(doc.Headers))
	for i, h := range doc.Headers {
		cols = append(cols, col.New(width(doc, i)).Add(text.New(h, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(cols...)
}

func tableRows(doc usecase.ReportDocument) []core.Row {
	result := make([]core.Row, 0, len(doc.Rows))
	for _, cells := range doc.Rows {
		cols := make([]core.Col, 0, len(cells))
		for i, v := range cells {
			cols = append(cols, col.New(width(doc, i)).Add(text.New(v, props.Text{
				Size: 8, Top: 1, Left: 1, Right: 1,
			})))
		}
		result = append(result, row.New(7).Add(cols...))
	}
	return result
}

// totalRows: una fila por total alineada a la derecha.
func totalRows(totals []usecase.ReportTotal) []core.Row {
	rows := make([]core.Row, 0, len(totals))
	for _, t := range totals {
		rows = append(rows, row.New(6).Add(
			col.New(6),
			col.New(3).Add(text.New(t.Label+":", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
			})),
			col.New(3).Add(text.New(t.Value, props.Text{
				Size: 9, Align: align.Right, Right: 1,
			})),
		))
	}
	return rows
}

// width ancho de la columna i en la grilla de 12; reparte en partes iguales si faltan anchos.
func width(doc usecase.ReportDocument, i int) int {
	if i < len(doc.Widths) && doc.Widths[i] > 0 {
		return doc.Widths[i]
	}
	n := len(doc.Headers)
	if n == 0 {
		return 12
	}
	if w := 12 / n; w > 0 {
		return w
	}
	return 1
}
