package report

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/devostorange/internal/application/usecase"
)

const sheet = "Sheet1"

// ExcelRenderer implementa usecase.ReportRenderer generando un .xlsx con Excelize.
type ExcelRenderer struct{}

// NewExcelRenderer construye el renderer.
func NewExcelRenderer() *ExcelRenderer { return &ExcelRenderer{} }

// Extension extensión de los archivos generados.
func (r *ExcelRenderer) Extension() string { return "xlsx" }

// Render escribe título, encabezados, filas y totales en la primera hoja.
func (r *ExcelRenderer) Render(_ context.Context, doc usecase.ReportDocument) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("report: estilo excel: %w", err)
	}

	line := 1
	set := func(colIdx int, v any, style int) error {
		cell, err := excelize.CoordinatesToCellName(colIdx, line)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
		if style != 0 {
			return f.SetCellStyle(sheet, cell, cell, style)
		}
		return nil
	}

	if err := set(1, doc.Title, bold); err != nil {
		return nil, fmt.Errorf("report: escribir excel: %w", err)
	}
	line++
	if err := set(1, doc.Subtitle+" Gerado em "+doc.GeneratedAt.Format("02/01/2006 15:04"), 0); err != nil {
		return nil, fmt.Errorf("report: escribir excel: %w", err)
	}
	line += 2

	for i, h := range doc.Headers {
		if err := set(i+1, h, bold); err != nil {
			return nil, fmt.Errorf("report: escribir excel: %w", err)
		}
	}
	for _, cells := range doc.Rows {
		line++
		for i, v := range cells {
			if err := set(i+1, v, 0); err != nil {
				return nil, fmt.Errorf("report: escribir excel: %w", err)
			}
		}
	}
	line++
	for _, t := range doc.Totals {
		line++
		if err := set(1, t.Label, bold); err != nil {
			return nil, fmt.Errorf("report: escribir excel: %w", err)
		}
		if err := set(2, t.Value, 0); err != nil {
			return nil, fmt.Errorf("report: escribir excel: %w", err)
		}
	}

	if len(doc.Headers) > 0 {
		last, _ := excelize.ColumnNumberToName(len(doc.Headers))
		if err := f.SetColWidth(sheet, "A", last, 22); err != nil {
			return nil, fmt.Errorf("report: ancho de columnas: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("report: serializar excel: %w", err)
	}
	return buf.Bytes(), nil
}
