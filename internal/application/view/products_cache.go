package view

import (
	"context"

	"github.com/jhoicas/devostorange/internal/application/ports"
	"github.com/jhoicas/devostorange/internal/domain/entity"
)

// productCache lista local de productos de una vista. La protege base.mu.
type productCache struct {
	items []entity.Product
}

func (c *productCache) set(list []entity.Product) {
	c.items = append([]entity.Product(nil), list...)
}

func (c *productCache) snapshot() []entity.Product {
	return append([]entity.Product(nil), c.items...)
}

func (c *productCache) index(id string) int {
	for i := range c.items {
		if c.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (c *productCache) has(id string) bool { return c.index(id) >= 0 }

// replace sustituye por id; false si no estaba.
func (c *productCache) replace(p entity.Product) bool {
	i := c.index(p.ID)
	if i < 0 {
		return false
	}
	c.items[i] = p
	return true
}

func (c *productCache) add(p entity.Product) {
	c.items = append(c.items, p)
}

func (c *productCache) remove(id string) bool {
	i := c.index(id)
	if i < 0 {
		return false
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	return true
}

// productChangedHandler aplica un aviso del bus sobre cache: reemplaza con el producto recibido
// o, si vino sin producto, lo vuelve a pedir por id en segundo plano. Ids ausentes se ignoran.
func (b *base) productChangedHandler(cache *productCache, products ports.ProductAPI) ports.ProductChangedHandler {
	return func(ctx context.Context, ev ports.ProductChanged) {
		b.mu.Lock()
		if !b.mounted || !cache.has(ev.ProductID) {
			b.mu.Unlock()
			return
		}
		if ev.Product != nil {
			cache.replace(*ev.Product)
			b.mu.Unlock()
			return
		}
		b.mu.Unlock()

		ctx = detach(ctx)
		b.background(func() {
			p, err := products.Get(ctx, ev.ProductID)
			if err != nil {
				b.logger.Warn().Err(err).Str("produto_id", ev.ProductID).Msg("resincronización de producto falló")
				return
			}
			b.mu.Lock()
			defer b.mu.Unlock()
			if b.mounted {
				cache.replace(*p)
			}
		})
	}
}
