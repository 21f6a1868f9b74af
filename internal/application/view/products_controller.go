package view

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/devostorange/internal/application/dto"
	"github.com/jhoicas/devostorange/internal/application/ports"
	"github.com/jhoicas/devostorange/internal/application/validation"
	"github.com/jhoicas/devostorange/internal/domain/entity"
)

// Formularios de la vista de productos.
const (
	FormProduct       = "produto"
	FormDelete        = "excluir"
	FormQuickMovement = "movimentacao-rapida"
)

// ProductForm campos editables de un producto. La cantidad no es editable.
type ProductForm struct {
	Name     string
	Category string
	Price    decimal.Decimal
}

// Validate nombre y categoría obligatorios; precio >= 0.
func (f ProductForm) Validate() error {
	return validation.Struct(dto.UpdateProductRequest{Name: f.Name, Category: f.Category, Price: f.Price})
}

// ProductsController vista /produtos: listado con búsqueda local, CRUD y movimiento rápido.
type ProductsController struct {
	base
	products ports.ProductAPI
	recorder recorder

	cache productCache
	query string
}

// NewProductsController crea el controlador.
func NewProductsController(env Env, products ports.ProductAPI, movements ports.MovementAPI) *ProductsController {
	c := &ProductsController{base: newBase(env, "view.produtos"), products: products}
	c.recorder = recorder{movements: movements, products: products, bus: c.env.Bus, logger: c.logger}
	return c
}

// Mount se suscribe al bus y carga el listado completo.
func (c *ProductsController) Mount(ctx context.Context) error {
	c.attach(c.productChangedHandler(&c.cache, c.products))
	return c.Load(ctx)
}

// Load reemplaza el listado con lo que devuelve el servidor.
func (c *ProductsController) Load(ctx context.Context) error {
	if !c.Mounted() {
		return ErrNotMounted
	}
	list, err := c.products.List(ctx)
	if err != nil {
		return c.fail(err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mounted {
		c.cache.set(list)
	}
	return nil
}

// Search fija la consulta local (nombre o categoría). No hace requests.
func (c *ProductsController) Search(query string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.query = query
}

// Query consulta vigente.
func (c *ProductsController) Query() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

// Products listado visible (filtrado por la consulta).
func (c *ProductsController) Products() []entity.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	return FilterProducts(c.cache.items, c.query)
}

// All listado completo sin filtrar.
func (c *ProductsController) All() []entity.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache.snapshot()
}

// Create da de alta un producto con cantidad 0 y lo agrega al listado.
func (c *ProductsController) Create(ctx context.Context, form ProductForm) (*entity.Product, error) {
	if err := form.Validate(); err != nil {
		return nil, c.fail(err)
	}
	if err := c.begin(FormProduct); err != nil {
		return nil, err
	}
	defer c.end(FormProduct)

	p, err := c.products.Create(ctx, form.Name, form.Category, form.Price)
	if err != nil {
		return nil, c.fail(err)
	}
	c.mu.Lock()
	if c.mounted && !c.cache.replace(*p) {
		c.cache.add(*p)
	}
	c.mu.Unlock()
	c.succeed("Produto criado com sucesso")
	return p, nil
}

// Update edita nombre, categoría y precio; reemplaza por id.
func (c *ProductsController) Update(ctx context.Context, id string, form ProductForm) (*entity.Product, error) {
	if err := form.Validate(); err != nil {
		return nil, c.fail(err)
	}
	if err := c.begin(FormProduct); err != nil {
		return nil, err
	}
	defer c.end(FormProduct)

	p, err := c.products.Update(ctx, id, form.Name, form.Category, form.Price)
	if err != nil {
		return nil, c.fail(err)
	}
	c.mu.Lock()
	if c.mounted {
		c.cache.replace(*p)
	}
	c.mu.Unlock()
	c.succeed("Produto atualizado com sucesso")
	return p, nil
}

// Delete elimina y quita el producto del listado.
func (c *ProductsController) Delete(ctx context.Context, id string) error {
	if err := c.begin(FormDelete); err != nil {
		return err
	}
	defer c.end(FormDelete)

	if err := c.products.Delete(ctx, id); err != nil {
		return c.fail(err)
	}
	c.mu.Lock()
	if c.mounted {
		c.cache.remove(id)
	}
	c.mu.Unlock()
	c.succeed("Produto excluído com sucesso")
	return nil
}

// QuickMovement registra entrada/saída desde la fila del producto y lo anuncia en el bus.
func (c *ProductsController) QuickMovement(ctx context.Context, form MovementForm) (*ports.MovementResult, error) {
	if err := form.Validate(); err != nil {
		return nil, c.fail(err)
	}
	if err := c.begin(FormQuickMovement); err != nil {
		return nil, err
	}
	defer c.end(FormQuickMovement)

	res, err := c.recorder.record(ctx, form)
	if err != nil {
		return nil, c.fail(err)
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
