package service

import (
	"context"
	"net/http"

	"github.com/jhoicas/devostorange/internal/application/dto"
	"github.com/jhoicas/devostorange/internal/application/ports"
	"github.com/jhoicas/devostorange/internal/domain/entity"
)

// MovementService registro (entrada/saída) y listado de movimientos.
type MovementService struct {
	api ports.Transport
}

var _ ports.MovementAPI = (*MovementService)(nil)

// NewMovementService crea el servicio.
func NewMovementService(api ports.Transport) *MovementService {
	return &MovementService{api: api}
}

// RecordEntry POST /api/movimentacoes/entrada.
func (s *MovementService) RecordEntry(ctx context.Context, productID string, qty int64) (*ports.MovementResult, error) {
	return s.record(ctx, entity.MovementEntry, productID, qty)
}

// RecordExit POST /api/movimentacoes/saida.
func (s *MovementService) RecordExit(ctx context.Context, productID string, qty int64) (*ports.MovementResult, error) {
	return s.record(ctx, entity.MovementExit, productID, qty)
}

func (s *MovementService) record(ctx context.Context, kind entity.MovementType, productID string, qty int64) (*ports.MovementResult, error) {
	req := dto.MovementRequest{ProductID: productID, Quantity: qty}
	var out dto.RecordMovementResponse
	if err := s.api.Do(ctx, http.MethodPost, "/api/movimentacoes/"+string(kind), nil, req, &out); err != nil {
		return nil, err
	}
	res := &ports.MovementResult{Message: out.Message}
	if out.Movement != nil {
		m := out.Movement.ToEntity()
		if m.Type == "" {
			m.Type = kind
		}
		if m.ProductID == "" {
			m.ProductID = productID
		}
		res.Movement = &m
	}
	if out.Product != nil && out.Product.ID != "" {
		res.Product = out.Product.ToEntity()
	}
	return res, nil
}

// List GET /api/relatorios/movimentacoes con inicio, fim y produto_id opcionales.
func (s *MovementService) List(ctx context.Context, filter dto.MovementFilter) ([]entity.Movement, error) {
	var out dto.MovementReportResponse
	if err := s.api.Do(ctx, http.MethodGet, "/api/relatorios/movimentacoes", filter.Query(), nil, &out); err != nil {
		return nil, err
	}
	return dto.MovementsToEntities(out.Movements), nil
}
