package view

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/devostorange/internal/application/dto"
	"github.com/jhoicas/devostorange/internal/application/ports"
	"github.com/jhoicas/devostorange/internal/application/validation"
	"github.com/jhoicas/devostorange/internal/domain/entity"
)

// FormGenerate generación de archivo de reporte.
const FormGenerate = "gerar-relatorio"

// ReportsController vista /relatorios (solo administradores).
type ReportsController struct {
	base
	reports  ports.ReportAPI
	products ports.ProductAPI

	cache  productCache
	stock  entity.StockReport
	files  []entity.ReportFile
	report entity.MovementReport
	filter dto.MovementFilter
	denied bool
}

// NewReportsController crea el controlador.
func NewReportsController(env Env, reports ports.ReportAPI, products ports.ProductAPI) *ReportsController {
	return &ReportsController{base: newBase(env, "view.relatorios"), reports: reports, products: products}
}

// Mount sin CapViewReports deja la vista en acceso denegado sin hacer requests.
func (c *ReportsController) Mount(ctx context.Context) error {
	if !c.currentUser().Can(entity.CapViewReports) {
		c.attach(nil)
		c.mu.Lock()
		c.denied = true
		c.mu.Unlock()
		return nil
	}
	c.attach(c.productChangedHandler(&c.cache, c.products))
	c.mu.Lock()
	c.denied = false
	c.mu.Unlock()
	return c.Load(ctx)
}

// AccessDenied indica que la vista muestra acceso denegado.
func (c *ReportsController) AccessDenied() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.denied
}

func (c *ReportsController) ready() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.mounted {
		return ErrNotMounted
	}
	if c.denied {
		return ErrAccessDenied
	}
	return nil
}

// Load resumen de stock, productos y archivos en paralelo.
func (c *ReportsController) Load(ctx context.Context) error {
	if err := c.ready(); err != nil {
		return err
	}
	var (
		stock    entity.StockReport
		products []entity.Product
		files    []entity.ReportFile
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stock, err = c.reports.Stock(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		products, err = c.products.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		files, err = c.reports.Files(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return c.fail(err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mounted {
		c.stock = stock
		c.cache.set(products)
		c.files = files
	}
	return nil
}

// SearchMovements consulta movimientos por período/producto; el resumen se calcula sobre el resultado.
func (c *ReportsController) SearchMovements(ctx context.Context, filter dto.MovementFilter) (entity.MovementReport, error) {
	if err := c.ready(); err != nil {
		return entity.MovementReport{}, err
	}
	if err := validation.Struct(filter); err != nil {
		return entity.MovementReport{}, c.fail(err)
	}
	rep, err := c.reports.Movements(ctx, filter)
	if err != nil {
		return entity.MovementReport{}, c.fail(err)
	}
	c.mu.Lock()
	if c.mounted {
		c.filter = filter
		c.report = rep
	}
	c.mu.Unlock()
	return rep, nil
}

// ProductMovements historial de un producto.
func (c *ReportsController) ProductMovements(ctx context.Context, productID string) ([]entity.Movement, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}
	list, err := c.reports.MovementsByProduct(ctx, productID)
	if err != nil {
		return nil, c.fail(err)
	}
	return list, nil
}

// Generate pide al servidor el archivo (estoque|movimentacoes, pdf|excel) y devuelve su URL.
// Para movimentacoes usa el último filtro consultado. Luego refresca el listado de archivos.
func (c *ReportsController) Generate(ctx context.Context, kind, format string) (string, error) {
	if err := c.ready(); err != nil {
		return "", err
	}
	if err := c.begin(FormGenerate); err != nil {
		return "", err
	}
	defer c.end(FormGenerate)

	c.mu.Lock()
	filter := c.filter
	c.mu.Unlock()

	u, err := c.reports.Generate(ctx, kind, format, filter)
	if err != nil {
		return "", c.fail(err)
	}
	c.succeed("Relatório gerado com sucesso")

	files, err := c.reports.Files(ctx)
	if err != nil {
		c.logger.Warn().Err(err).Msg("no se pudo refrescar el listado de archivos")
		return u, nil
	}
	c.mu.Lock()
	if c.mounted {
		c.files = files
	}
	c.mu.Unlock()
	return u, nil
}

// DownloadURL URL de descarga de un archivo ya generado.
func (c *ReportsController) DownloadURL(ctx context.Context, name string) (string, error) {
	if err := c.ready(); err != nil {
		return "", err
	}
	u, err := c.reports.FileURL(ctx, name)
	if err != nil {
		return "", c.fail(err)
	}
	return u, nil
}

// Stock último resumen de stock.
func (c *ReportsController) Stock() entity.StockReport {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stock
}

// Products productos del selector de filtro.
func (c *ReportsController) Products() []entity.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache.snapshot()
}

// Files archivos generados.
func (c *ReportsController) Files() []entity.ReportFile {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]entity.ReportFile(nil), c.files...)
}

// Report último reporte de movimientos consultado.
func (c *ReportsController) Report() entity.MovementReport {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.report
}
