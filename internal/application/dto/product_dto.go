package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/devostorange/internal/domain/entity"
)

// CreateProductRequest body de POST /api/produtos. Quantity siempre viaja en 0:
// el stock solo cambia mediante movimientos.
type CreateProductRequest struct {
	Name     string          `json:"nome" validate:"required,max=200"`
	Category string          `json:"categoria" validate:"required,max=120"`
	Quantity decimal.Decimal `json:"quantidade"`
	Price    decimal.Decimal `json:"preco" validate:"gte=0"`
}

// UpdateProductRequest body de PUT /api/produtos/{id}. No existe campo de cantidad.
type UpdateProductRequest struct {
	Name     string          `json:"nome" validate:"required,max=200"`
	Category string          `json:"categoria" validate:"required,max=120"`
	Price    decimal.Decimal `json:"preco" validate:"gte=0"`
}

// ProductResponse salida de un producto. quantidade y preco pueden llegar como string o número.
type ProductResponse struct {
	ID        ID              `json:"id"`
	Name      string          `json:"nome"`
	Category  string          `json:"categoria"`
	Quantity  decimal.Decimal `json:"quantidade"`
	Price     decimal.Decimal `json:"preco"`
	CreatedAt string          `json:"created_at"`
	UpdatedAt string          `json:"updated_at"`
	DeletedAt *string         `json:"deleted_at"`
}

// ToEntity convierte la respuesta en entidad.
func (r ProductResponse) ToEntity() *entity.Product {
	return &entity.Product{
		ID:        string(r.ID),
		Name:      r.Name,
		Category:  r.Category,
		Quantity:  r.Quantity,
		Price:     r.Price,
		CreatedAt: ParseTimestamp(r.CreatedAt),
		UpdatedAt: ParseTimestamp(r.UpdatedAt),
		DeletedAt: parseNullableTimestamp(r.DeletedAt),
	}
}

// ProductFromEntity arma la respuesta a partir de la entidad.
func ProductFromEntity(p *entity.Product) ProductResponse {
	if p == nil {
		return ProductResponse{}
	}
	return ProductResponse{
		ID:        ID(p.ID),
		Name:      p.Name,
		Category:  p.Category,
		Quantity:  p.Quantity,
		Price:     p.Price,
		CreatedAt: FormatTimestamp(p.CreatedAt),
		UpdatedAt: FormatTimestamp(p.UpdatedAt),
		DeletedAt: formatNullableTimestamp(p.DeletedAt),
	}
}

// ProductsToEntities convierte un listado.
func ProductsToEntities(in []ProductResponse) []entity.Product {
	out := make([]entity.Product, 0, len(in))
	for _, p := range in {
		out = append(out, *p.ToEntity())
	}
	return out
}
