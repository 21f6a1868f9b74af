package http

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/devostorange/internal/application/auth"
	"github.com/jhoicas/devostorange/internal/application/dto"
	"github.com/jhoicas/devostorange/internal/application/inventory"
	"github.com/jhoicas/devostorange/internal/application/usecase"
	"github.com/jhoicas/devostorange/internal/infrastructure/memory"
	"github.com/jhoicas/devostorange/internal/infrastructure/report"
	"github.com/jhoicas/devostorange/pkg/logger"
)

// SandboxOptions parámetros para armar la API en memoria.
type SandboxOptions struct {
	Name      string
	JWT       auth.JWTConfig
	FilesDir  string
	PublicURL string
	Logger    *logger.Logger
	Seed      bool
}

// NewSandbox arma repositorios en memoria, casos de uso, renderers y rutas.
func NewSandbox(ctx context.Context, opts SandboxOptions) (*fiber.App, error) {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	store := memory.NewStore()
	userRepo := memory.NewUserRepository(store)
	productRepo := memory.NewProductRepository(store)
	movementRepo := memory.NewMovementRepository(store)
	txRunner := memory.NewTxRunner(store)

	files, err := report.NewDiskStorage(opts.FilesDir)
	if err != nil {
		return nil, err
	}

	authUC := auth.NewAuthUseCase(userRepo, opts.JWT)
	userUC := usecase.NewUserUseCase(userRepo)
	productUC := usecase.NewProductUseCase(productRepo)
	registerMovementUC := inventory.NewRegisterMovementUseCase(txRunner, userRepo)
	reportUC := usecase.NewReportUseCase(productRepo, movementRepo, files, map[string]usecase.ReportRenderer{
		dto.ReportFormatPDF:   report.NewMarotoPDFRenderer(opts.Name),
		dto.ReportFormatExcel: report.NewExcelRenderer(),
	}, opts.PublicURL)

	if opts.Seed {
		if err := usecase.Seed(ctx, userUC, productUC, registerMovementUC); err != nil {
			return nil, fmt.Errorf("sandbox: %w", err)
		}
	}

	app := NewApp(opts.Name, log)
	Router(app, RouterDeps{
		AuthUC:           authUC,
		UserUC:           userUC,
		ProductUC:        productUC,
		RegisterMovement: registerMovementUC,
		ReportUC:         reportUC,
		Files:            files,
		JWTSecret:        opts.JWT.Secret,
	})
	return app, nil
}
