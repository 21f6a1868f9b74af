package repository

import "github.com/jhoicas/devostorange/internal/domain/entity"

// MovementRepository puerto para el historial append-only de movimientos.
// List devuelve los más recientes primero.
type MovementRepository interface {
	Create(movement *entity.Movement) error
	List() ([]*entity.Movement, error)
	ListByProduct(productID string) ([]*entity.Movement, error)
}
