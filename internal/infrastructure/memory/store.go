// Package memory implementa los repositorios del sandbox sobre mapas en memoria.
// Todas las vistas comparten un único Store; TxRunner serializa las transacciones
// y revierte los cambios si la función devuelve error.
package memory

import (
	"sync"

	"github.com/jhoicas/devostorange/internal/domain/entity"
)

type userRecord struct {
	user *entity.User
	hash string
}

// Store estado compartido del sandbox.
type Store struct {
	mu        sync.Mutex
	products  map[string]*entity.Product
	prodOrder []string
	users     map[string]userRecord
	userOrder []string
	movements []*entity.Movement // orden de inserción
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		products: make(map[string]*entity.Product),
		users:    make(map[string]userRecord),
	}
}

// lock toma el mutex salvo que la llamada ocurra dentro de una transacción (ya lo tiene).
func (s *Store) lock(inTx bool) func() {
	if inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

type snapshot struct {
	products  map[string]entity.Product
	prodOrder []string
	movements int
}

func (s *Store) snapshot() snapshot {
	snap := snapshot{
		products:  make(map[string]entity.Product, len(s.products)),
		prodOrder: append([]string(nil), s.prodOrder...),
		movements: len(s.movements),
	}
	for id, p := range s.products {
		snap.products[id] = *p
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.products = make(map[string]*entity.Product, len(snap.products))
	for id, p := range snap.products {
		s.products[id] = &p
	}
	s.prodOrder = snap.prodOrder
	s.movements = s.movements[:snap.movements]
}

func removeID(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i:i], ids[i+1:]...)
		}
	}
	return ids
}
