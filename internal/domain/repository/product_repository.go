package repository

import "github.com/jhoicas/devostorange/internal/domain/entity"

// ProductRepository puerto de persistencia para Product.
// GetByID devuelve (nil, nil) si el producto no existe.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	List() ([]*entity.Product, error)
	Delete(id string) error
}
