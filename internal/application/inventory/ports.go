package inventory

import (
	"context"

	"github.com/jhoicas/devostorange/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a ella.
// Movimiento y cambio de stock se confirman juntos o no se confirman.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movRepo repository.MovementRepository,
	) error) error
}
