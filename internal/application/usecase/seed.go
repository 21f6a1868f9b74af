package usecase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/devostorange/internal/application/dto"
	"github.com/jhoicas/devostorange/internal/application/inventory"
	"github.com/jhoicas/devostorange/internal/domain/entity"
)

// Credenciales de demostración cargadas por Seed.
const (
	SeedAdminEmail    = "admin@local.com.br"
	SeedAdminPassword = "123456"
	SeedEmployeeEmail = "funcionario@local.com.br"
)

type seedProduct struct {
	name, category, price string
	stock                 int64
}

var seedProducts = []seedProduct{
	{"Caneta azul", "Papelaria", "2.50", 120},
	{"Caderno 96 folhas", "Papelaria", "18.90", 40},
	{"Mouse USB", "Informática", "49.90", 8},
	{"Teclado ABNT2", "Informática", "89.00", 3},
	{"Café 500g", "Copa", "21.75", 0},
}

// Seed carga el administrador, un funcionario y algunos productos con stock inicial.
// El stock entra como movimientos de entrada para que el historial sea coherente.
func Seed(ctx context.Context, users *UserUseCase, products *ProductUseCase, movements *inventory.RegisterMovementUseCase) error {
	admin, err := users.Create(dto.CreateUserRequest{
		Name: "Administrador", Email: SeedAdminEmail, Password: SeedAdminPassword, Role: string(entity.RoleAdministrator),
	})
	if err != nil {
		return fmt.Errorf("seed: administrador: %w", err)
	}
	if _, err := users.Create(dto.CreateUserRequest{
		Name: "Funcionário", Email: SeedEmployeeEmail, Password: SeedAdminPassword, Role: string(entity.RoleEmployee),
	}); err != nil {
		return fmt.Errorf("seed: funcionario: %w", err)
	}

	for _, sp := range seedProducts {
		p, err := products.Create(dto.CreateProductRequest{
			Name: sp.name, Category: sp.category, Price: decimal.RequireFromString(sp.price),
		})
		if err != nil {
			return fmt.Errorf("seed: produto %s: %w", sp.name, err)
		}
		if sp.stock == 0 {
			continue
		}
		if _, err := movements.RegisterMovement(ctx, inventory.MovementInputDTO{
			UserID: admin.ID.String(), ProductID: p.ID.String(), Type: entity.MovementEntry, Quantity: sp.stock,
		}); err != nil {
			return fmt.Errorf("seed: estoque %s: %w", sp.name, err)
		}
	}
	return nil
}
