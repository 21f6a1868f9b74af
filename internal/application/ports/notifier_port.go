package ports

import (
	"context"

	"github.com/jhoicas/devostorange/internal/domain/entity"
)

// ProductChanged aviso de que el stock de un producto cambió.
// Product es nil cuando no se pudo obtener el producto actualizado.
type ProductChanged struct {
	ProductID string
	Product   *entity.Product
}

// ProductChangedHandler receptor de ProductChanged.
type ProductChangedHandler func(ctx context.Context, ev ProductChanged)

// Notifier bus de avisos entre vistas.
type Notifier interface {
	Publish(ctx context.Context, ev ProductChanged)
	Subscribe(h ProductChangedHandler) (unsubscribe func())
}
