package service

import (
	"context"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/devostorange/internal/application/dto"
	"github.com/jhoicas/devostorange/internal/application/ports"
	"github.com/jhoicas/devostorange/internal/domain/entity"
)

// ProductService CRUD de /api/produtos.
type ProductService struct {
	api ports.Transport
}

var _ ports.ProductAPI = (*ProductService)(nil)

// NewProductService crea el servicio.
func NewProductService(api ports.Transport) *ProductService {
	return &ProductService{api: api}
}

func productPath(id string) string { return "/api/produtos/" + url.PathEscape(id) }

// List GET /api/produtos.
func (s *ProductService) List(ctx context.Context) ([]entity.Product, error) {
	var out []dto.ProductResponse
	if err := s.api.Do(ctx, http.MethodGet, "/api/produtos", nil, nil, &out); err != nil {
		return nil, err
	}
	return dto.ProductsToEntities(out), nil
}

// Get GET /api/produtos/{id}.
func (s *ProductService) Get(ctx context.Context, id string) (*entity.Product, error) {
	var out dto.ProductResponse
	if err := s.api.Do(ctx, http.MethodGet, productPath(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return out.ToEntity(), nil
}

// Create POST /api/produtos. La cantidad inicial siempre es 0.
func (s *ProductService) Create(ctx context.Context, name, category string, price decimal.Decimal) (*entity.Product, error) {
	req := dto.CreateProductRequest{Name: name, Category: category, Quantity: decimal.Zero, Price: price}
	var out dto.ProductResponse
	if err := s.api.Do(ctx, http.MethodPost, "/api/produtos", nil, req, &out); err != nil {
		return nil, err
	}
	return out.ToEntity(), nil
}

// Update PUT /api/produtos/{id}. El body no lleva cantidad.
func (s *ProductService) Update(ctx context.Context, id, name, category string, price decimal.Decimal) (*entity.Product, error) {
	req := dto.UpdateProductRequest{Name: name, Category: category, Price: price}
	var out dto.ProductResponse
	if err := s.api.Do(ctx, http.MethodPut, productPath(id), nil, req, &out); err != nil {
		return nil, err
	}
	return out.ToEntity(), nil
}

// Delete DELETE /api/produtos/{id}.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	return s.api.Do(ctx, http.MethodDelete, productPath(id), nil, nil, nil)
}
