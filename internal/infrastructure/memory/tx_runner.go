package memory

import (
	"context"

	"github.com/jhoicas/devostorange/internal/domain/repository"
)

// TxRunner ejecuta una función con repositorios que operan bajo el mismo bloqueo.
// Si fn devuelve error se restauran productos y movimientos al estado previo.
type TxRunner struct {
	s *Store
}

// NewTxRunner crea el runner.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// Run ejecuta fn en una transacción.
func (t *TxRunner) Run(ctx context.Context, fn func(products repository.ProductRepository, movements repository.MovementRepository) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	snap := t.s.snapshot()
	err := fn(&ProductRepository{s: t.s, inTx: true}, &MovementRepository{s: t.s, inTx: true})
	if err != nil {
		t.s.restore(snap)
		return err
	}
	return nil
}
