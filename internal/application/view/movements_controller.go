package view

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/devostorange/internal/application/dto"
	"github.com/jhoicas/devostorange/internal/application/ports"
	"github.com/jhoicas/devostorange/internal/application/validation"
	"github.com/jhoicas/devostorange/internal/domain/entity"
)

// FormMovement formulario de registro en /movimentacoes.
const FormMovement = "movimentacao"

// MovementsController vista /movimentacoes: selector de productos, registro y listado filtrado.
type MovementsController struct {
	base
	movements ports.MovementAPI
	products  ports.ProductAPI
	recorder  recorder

	cache      productCache
	list       []entity.Movement
	filter     dto.MovementFilter
	onlyRecent bool
}

// NewMovementsController crea el controlador.
func NewMovementsController(env Env, movements ports.MovementAPI, products ports.ProductAPI) *MovementsController {
	c := &MovementsController{base: newBase(env, "view.movimentacoes"), movements: movements, products: products}
	c.recorder = recorder{movements: movements, products: products, bus: c.env.Bus, logger: c.logger}
	return c
}

// Mount se suscribe al bus y carga productos y movimientos.
func (c *MovementsController) Mount(ctx context.Context) error {
	c.attach(c.productChangedHandler(&c.cache, c.products))
	return c.Load(ctx)
}

// Load pide productos y movimientos (con el filtro vigente) en paralelo.
func (c *MovementsController) Load(ctx context.Context) error {
	if !c.Mounted() {
		return ErrNotMounted
	}
	filter := c.Filter()
	var (
		products  []entity.Product
		movements []entity.Movement
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = c.products.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		movements, err = c.movements.List(gctx, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return c.fail(err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mounted {
		c.cache.set(products)
		c.list = movements
	}
	return nil
}

// Record valida, registra y antepone el movimiento; el producto actualizado se anuncia en el bus.
func (c *MovementsController) Record(ctx context.Context, form MovementForm) (*ports.MovementResult, error) {
	if err := form.Validate(); err != nil {
		return nil, c.fail(err)
	}
	if err := c.begin(FormMovement); err != nil {
		return nil, err
	}
	defer c.end(FormMovement)

	res, err := c.recorder.record(ctx, form)
	if err != nil {
		return nil, c.fail(err)
	}

	if res.Movement != nil {
		m := *res.Movement
		if m.UserID == "" {
			if u := c.currentUser(); u != nil {
				m.UserID, m.UserName = u.ID, u.Name
			}
		}
		c.mu.Lock()
		if c.mounted {
			c.list = append([]entity.Movement{m}, c.list...)
		}
		c.mu.Unlock()
	} else {
		c.refreshList(ctx)
	}
	if res.Product != nil {
		c.mu.Lock()
		if c.mounted {
			c.cache.replace(*res.Product)
		}
		c.mu.Unlock()
	}
	c.succeed(movementSuccess(form.Type))
	return res, nil
}

// refreshList vuelve a pedir el listado cuando la respuesta no trajo el movimiento.
func (c *MovementsController) refreshList(ctx context.Context) {
	list, err := c.movements.List(ctx, c.Filter())
	if err != nil {
		c.logger.Warn().Err(err).Msg("no se pudo refrescar el listado de movimientos")
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mounted {
		c.list = list
	}
}

// ApplyFilter fija el filtro y pide al servidor el listado filtrado.
func (c *MovementsController) ApplyFilter(ctx context.Context, filter dto.MovementFilter) error {
	if err := validation.Struct(filter); err != nil {
		return c.fail(err)
	}
	if !c.Mounted() {
		return ErrNotMounted
	}
	c.mu.Lock()
	c.filter = filter
	c.mu.Unlock()

	list, err := c.movements.List(ctx, filter)
	if err != nil {
		return c.fail(err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mounted {
		c.list = list
	}
	return nil
}

// ClearFilter quita el filtro y recarga.
func (c *MovementsController) ClearFilter(ctx context.Context) error {
	return c.ApplyFilter(ctx, dto.MovementFilter{})
}

// Filter filtro vigente.
func (c *MovementsController) Filter() dto.MovementFilter {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter
}

// SetOnlyRecent limita Visible a los más recientes.
func (c *MovementsController) SetOnlyRecent(v bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onlyRecent = v
}

// Products productos del selector.
func (c *MovementsController) Products() []entity.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache.snapshot()
}

// Movements listado tal como lo tiene la vista, sin proyección.
func (c *MovementsController) Movements() []entity.Movement {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]entity.Movement(nil), c.list...)
}

// Visible proyección mostrada: sin CapViewAllMovements solo los movimientos propios;
// filtro de fechas (prefijo de día, inclusivo) y producto; "solo recientes" = primeros N.
func (c *MovementsController) Visible() []entity.Movement {
	user := c.currentUser()
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]entity.Movement, 0, len(c.list))
	for _, m := range c.list {
		if !user.Can(entity.CapViewAllMovements) && !ownedBy(m, user) {
			continue
		}
		if !c.filter.Matches(m) {
			continue
		}
		out = append(out, m)
	}
	if c.onlyRecent && len(out) > c.env.RecentLimit {
		out = out[:c.env.RecentLimit]
	}
	return out
}

func ownedBy(m entity.Movement, u *entity.User) bool {
	if u == nil {
		return false
	}
	if m.UserID != "" {
		return m.UserID == u.ID
	}
	return m.UserName != "" && m.UserName == u.Name
}
