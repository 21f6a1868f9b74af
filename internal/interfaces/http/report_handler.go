package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/devostorange/internal/application/dto"
	"github.com/jhoicas/devostorange/internal/application/usecase"
)

// FileLocator resuelve el nombre de un archivo generado a su ruta en disco.
type FileLocator interface {
	Path(name string) (string, error)
}

// ReportHandler reportes, generación de archivos y descargas.
type ReportHandler struct {
	uc    *usecase.ReportUseCase
	files FileLocator
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *usecase.ReportUseCase, files FileLocator) *ReportHandler {
	return &ReportHandler{uc: uc, files: files}
}

func movementFilter(c *fiber.Ctx) dto.MovementFilter {
	return dto.MovementFilterFromQuery(func(key string) string { return c.Query(key) })
}

// Stock GET /api/relatorios/estoque.
func (h *ReportHandler) Stock(c *fiber.Ctx) error {
	out, err := h.uc.Stock()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Movements GET /api/relatorios/movimentacoes?inicio&fim&produto_id.
func (h *ReportHandler) Movements(c *fiber.Ctx) error {
	out, err := h.uc.Movements(movementFilter(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// MovementsByProduct GET /api/relatorios/produto/:id/movimentacoes.
func (h *ReportHandler) MovementsByProduct(c *fiber.Ctx) error {
	out, err := h.uc.MovementsByProduct(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Generate GET /api/relatorios/:kind/:format.
func (h *ReportHandler) Generate(c *fiber.Ctx) error {
	out, err := h.uc.Generate(c.UserContext(), c.Params("kind"), c.Params("format"), movementFilter(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Files GET /api/downloads.
func (h *ReportHandler) Files(c *fiber.Ctx) error {
	out, err := h.uc.Files()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// FileURL GET /api/download/:name.
func (h *ReportHandler) FileURL(c *fiber.Ctx) error {
	out, err := h.uc.FileURL(c.Params("name"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Serve GET /arquivos/:name (público, como un enlace de descarga).
func (h *ReportHandler) Serve(c *fiber.Ctx) error {
	name := c.Params("name")
	if _, err := h.uc.FileURL(name); err != nil {
		return writeError(c, err)
	}
	p, err := h.files.Path(name)
	if err != nil {
		return writeError(c, err)
	}
	return c.Download(p, name)
}
