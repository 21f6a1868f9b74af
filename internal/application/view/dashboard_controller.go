package view

import (
	"context"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/devostorange/internal/application/ports"
	"github.com/jhoicas/devostorange/internal/domain/entity"
)

// Stats agregados del dashboard. TotalUsers solo se informa con CapViewUserStats.
type Stats struct {
	TotalProducts int
	TotalValue    decimal.Decimal
	LowStock      int
	TotalUsers    int
	ShowUsers     bool
}

// DashboardController vista /dashboard.
type DashboardController struct {
	base
	products ports.ProductAPI
	users    ports.UserAPI

	cache      productCache
	totalUsers int
}

// NewDashboardController crea el controlador. users puede ser nil si no se muestran usuarios.
func NewDashboardController(env Env, products ports.ProductAPI, users ports.UserAPI) *DashboardController {
	return &DashboardController{base: newBase(env, "view.dashboard"), products: products, users: users}
}

// Mount se suscribe al bus y carga productos (y usuarios si corresponde) en paralelo.
func (c *DashboardController) Mount(ctx context.Context) error {
	c.attach(c.productChangedHandler(&c.cache, c.products))
	return c.Load(ctx)
}

// Load recarga todas las fuentes del dashboard.
func (c *DashboardController) Load(ctx context.Context) error {
	if !c.Mounted() {
		return ErrNotMounted
	}
	showUsers := c.users != nil && c.currentUser().Can(entity.CapViewUserStats)
	var (
		products []entity.Product
		users    []entity.User
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = c.products.List(gctx)
		return err
	})
	if showUsers {
		g.Go(func() error {
			var err error
			users, err = c.users.List(gctx)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return c.fail(err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mounted {
		c.cache.set(products)
		c.totalUsers = len(users)
	}
	return nil
}

// Stats calcula los agregados sobre el estado local actual.
func (c *DashboardController) Stats() Stats {
	showUsers := c.users != nil && c.currentUser().Can(entity.CapViewUserStats)
	c.mu.Lock()
	defer c.mu.Unlock()
	s := Stats{TotalProducts: len(c.cache.items), TotalValue: decimal.Zero, ShowUsers: showUsers}
	for _, p := range c.cache.items {
		s.TotalValue = s.TotalValue.Add(p.TotalValue())
		if p.IsLowStock(c.env.LowStockThreshold) {
			s.LowStock++
		}
	}
	if showUsers {
		s.TotalUsers = c.totalUsers
	}
	return s
}

// LowStockProducts productos por debajo del umbral.
func (c *DashboardController) LowStockProducts() []entity.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]entity.Product, 0)
	for _, p := range c.cache.items {
		if p.IsLowStock(c.env.LowStockThreshold) {
			out = append(out, p)
		}
	}
	return out
}

// Products listado completo usado para los agregados.
func (c *DashboardController) Products() []entity.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache.snapshot()
}
