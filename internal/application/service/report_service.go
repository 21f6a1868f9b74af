package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/jhoicas/devostorange/internal/application/dto"
	"github.com/jhoicas/devostorange/internal/application/ports"
	"github.com/jhoicas/devostorange/internal/domain"
	"github.com/jhoicas/devostorange/internal/domain/entity"
)

// ReportService reportes y archivos generados por el servidor.
type ReportService struct {
	api ports.Transport
}

var _ ports.ReportAPI = (*ReportService)(nil)

// NewReportService crea el servicio.
func NewReportService(api ports.Transport) *ReportService {
	return &ReportService{api: api}
}

// Stock GET /api/relatorios/estoque.
func (s *ReportService) Stock(ctx context.Context) (entity.StockReport, error) {
	var out dto.StockReportResponse
	if err := s.api.Do(ctx, http.MethodGet, "/api/relatorios/estoque", nil, nil, &out); err != nil {
		return entity.StockReport{}, err
	}
	return out.ToEntity(), nil
}

// Movements GET /api/relatorios/movimentacoes; el resumen se calcula localmente.
func (s *ReportService) Movements(ctx context.Context, filter dto.MovementFilter) (entity.MovementReport, error) {
	var out dto.MovementReportResponse
	if err := s.api.Do(ctx, http.MethodGet, "/api/relatorios/movimentacoes", filter.Query(), nil, &out); err != nil {
		return entity.MovementReport{}, err
	}
	report := out.ToEntity()
	if report.Period.Start == "" && report.Period.End == "" {
		report.Period = entity.Period{Start: filter.Start, End: filter.End}
	}
	return report, nil
}

// MovementsByProduct GET /api/relatorios/produto/{id}/movimentacoes.
func (s *ReportService) MovementsByProduct(ctx context.Context, productID string) ([]entity.Movement, error) {
	var out dto.MovementReportResponse
	path := "/api/relatorios/produto/" + url.PathEscape(productID) + "/movimentacoes"
	if err := s.api.Do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return dto.MovementsToEntities(out.Movements), nil
}

// Files GET /api/downloads.
func (s *ReportService) Files(ctx context.Context) ([]entity.ReportFile, error) {
	var out dto.FilesResponse
	if err := s.api.Do(ctx, http.MethodGet, "/api/downloads", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.ToEntities(), nil
}

// Generate GET /api/relatorios/{tipo}/{formato}. El filtro solo aplica a movimentacoes.
// Devuelve la URL de descarga (url, o arquivo si falta).
func (s *ReportService) Generate(ctx context.Context, kind, format string, filter dto.MovementFilter) (string, error) {
	if err := checkReport(kind, format); err != nil {
		return "", err
	}
	var query url.Values
	if kind == dto.ReportKindMovements {
		query = filter.Query()
	}
	var out dto.FileURLResponse
	if err := s.api.Do(ctx, http.MethodGet, "/api/relatorios/"+kind+"/"+format, query, nil, &out); err != nil {
		return "", err
	}
	return out.Location(), nil
}

// FileURL GET /api/download/{nome}.
func (s *ReportService) FileURL(ctx context.Context, name string) (string, error) {
	var out dto.FileURLResponse
	if err := s.api.Do(ctx, http.MethodGet, "/api/download/"+url.PathEscape(name), nil, nil, &out); err != nil {
		return "", err
	}
	return out.Location(), nil
}

func checkReport(kind, format string) error {
	switch kind {
	case dto.ReportKindStock, dto.ReportKindMovements:
	default:
		return fmt.Errorf("%w: tipo de relatório %q", domain.ErrInvalidInput, kind)
	}
	switch format {
	case dto.ReportFormatPDF, dto.ReportFormatExcel:
	default:
		return fmt.Errorf("%w: formato %q", domain.ErrInvalidInput, format)
	}
	return nil
}
