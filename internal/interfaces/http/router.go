package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/devostorange/internal/application/auth"
	"github.com/jhoicas/devostorange/internal/application/inventory"
	"github.com/jhoicas/devostorange/internal/application/usecase"
	"github.com/jhoicas/devostorange/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC           *auth.AuthUseCase
	UserUC           *usecase.UserUseCase
	ProductUC        *usecase.ProductUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	ReportUC         *usecase.ReportUseCase
	Files            FileLocator
	JWTSecret        string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	reportHandler := NewReportHandler(deps.ReportUC, deps.Files)

	// Descargas (públicas: la URL es el enlace que abre el navegador)
	app.Get(usecase.FilesRoute+"/:name", reportHandler.Serve)

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/users/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdministrator.String())

	protected.Get("/users/me", authHandler.Me)

	// Users (solo administrador)
	users := protected.Group("/users", adminOnly)
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Get("/:id", userHandler.GetByID)
	users.Patch("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	// Produtos
	products := protected.Group("/produtos")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Movimentações
	movements := protected.Group("/movimentacoes")
	inventoryHandler := NewInventoryHandler(deps.RegisterMovement)
	movements.Post("/entrada", inventoryHandler.Entry)
	movements.Post("/saida", inventoryHandler.Exit)

	// Relatórios: el listado de movimientos lo usa también el funcionario.
	protected.Get("/relatorios/movimentacoes", reportHandler.Movements)
	reports := protected.Group("/relatorios", adminOnly)
	reports.Get("/estoque", reportHandler.Stock)
	reports.Get("/produto/:id/movimentacoes", reportHandler.MovementsByProduct)
	reports.Get("/:kind/:format", reportHandler.Generate)

	protected.Get("/downloads", adminOnly, reportHandler.Files)
	protected.Get("/download/:name", adminOnly, reportHandler.FileURL)
}
