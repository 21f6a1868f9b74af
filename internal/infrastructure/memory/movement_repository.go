package memory

import (
	"github.com/jhoicas/devostorange/internal/domain/entity"
	"github.com/jhoicas/devostorange/internal/domain/repository"
)

// MovementRepository implementa repository.MovementRepository.
type MovementRepository struct {
	s    *Store
	inTx bool
}

var _ repository.MovementRepository = (*MovementRepository)(nil)

// NewMovementRepository construye el repositorio.
func NewMovementRepository(s *Store) *MovementRepository {
	return &MovementRepository{s: s}
}

// Create agrega un movimiento al final del historial.
func (r *MovementRepository) Create(movement *entity.Movement) error {
	defer r.s.lock(r.inTx)()
	cp := *movement
	r.s.movements = append(r.s.movements, &cp)
	return nil
}

// List devuelve todos los movimientos, más recientes primero.
func (r *MovementRepository) List() ([]*entity.Movement, error) {
	return r.collect(func(*entity.Movement) bool { return true }), nil
}

// ListByProduct devuelve los movimientos de un producto, más recientes primero.
func (r *MovementRepository) ListByProduct(productID string) ([]*entity.Movement, error) {
	return r.collect(func(m *entity.Movement) bool { return m.ProductID == productID }), nil
}

func (r *MovementRepository) collect(keep func(*entity.Movement) bool) []*entity.Movement {
	defer r.s.lock(r.inTx)()
	out := make([]*entity.Movement, 0, len(r.s.movements))
	for i := len(r.s.movements) - 1; i >= 0; i-- {
		if m := r.s.movements[i]; keep(m) {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out
}
