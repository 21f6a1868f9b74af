package memory

import (
	"github.com/jhoicas/devostorange/internal/domain"
	"github.com/jhoicas/devostorange/internal/domain/entity"
	"github.com/jhoicas/devostorange/internal/domain/repository"
)

// ProductRepository implementa repository.ProductRepository.
type ProductRepository struct {
	s    *Store
	inTx bool
}

var _ repository.ProductRepository = (*ProductRepository)(nil)

// NewProductRepository construye el repositorio.
func NewProductRepository(s *Store) *ProductRepository {
	return &ProductRepository{s: s}
}

// Create inserta un producto.
func (r *ProductRepository) Create(product *entity.Product) error {
	defer r.s.lock(r.inTx)()
	if _, ok := r.s.products[product.ID]; ok {
		return domain.ErrConflict
	}
	cp := *product
	r.s.products[product.ID] = &cp
	r.s.prodOrder = append(r.s.prodOrder, product.ID)
	return nil
}

// GetByID devuelve una copia del producto o (nil, nil).
func (r *ProductRepository) GetByID(id string) (*entity.Product, error) {
	defer r.s.lock(r.inTx)()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

// Update reemplaza el producto existente.
func (r *ProductRepository) Update(product *entity.Product) error {
	defer r.s.lock(r.inTx)()
	if _, ok := r.s.products[product.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *product
	r.s.products[product.ID] = &cp
	return nil
}

// List devuelve los productos en orden de alta.
func (r *ProductRepository) List() ([]*entity.Product, error) {
	defer r.s.lock(r.inTx)()
	out := make([]*entity.Product, 0, len(r.s.prodOrder))
	for _, id := range r.s.prodOrder {
		cp := *r.s.products[id]
		out = append(out, &cp)
	}
	return out, nil
}

// Delete elimina el producto; el historial de movimientos se conserva.
func (r *ProductRepository) Delete(id string) error {
	defer r.s.lock(r.inTx)()
	if _, ok := r.s.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.products, id)
	r.s.prodOrder = removeID(r.s.prodOrder, id)
	return nil
}
