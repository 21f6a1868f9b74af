package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/devostorange/internal/application/dto"
	"github.com/jhoicas/devostorange/internal/domain/entity"
)

// AuthAPI autenticación contra la API remota.
type AuthAPI interface {
	Login(ctx context.Context, req dto.LoginRequest) (*entity.User, error)
	Logout(ctx context.Context) error
	Profile(ctx context.Context) (*entity.User, error)
}

// UserAPI CRUD de usuarios.
type UserAPI interface {
	List(ctx context.Context) ([]entity.User, error)
	Get(ctx context.Context, id string) (*entity.User, error)
	Create(ctx context.Context, req dto.CreateUserRequest) (*entity.User, error)
	Update(ctx context.Context, id string, req dto.UpdateUserRequest) (*entity.User, error)
	Delete(ctx context.Context, id string) error
}

// ProductAPI CRUD de productos. La cantidad no se edita: solo cambia vía movimientos.
type ProductAPI interface {
	List(ctx context.Context) ([]entity.Product, error)
	Get(ctx context.Context, id string) (*entity.Product, error)
	Create(ctx context.Context, name, category string, price decimal.Decimal) (*entity.Product, error)
	Update(ctx context.Context, id, name, category string, price decimal.Decimal) (*entity.Product, error)
	Delete(ctx context.Context, id string) error
}

// MovementResult lo que devuelve el servidor al registrar un movimiento; ambos campos son opcionales.
type MovementResult struct {
	Message  string
	Movement *entity.Movement
	Product  *entity.Product
}

// MovementAPI registro y consulta de movimientos (append-only).
type MovementAPI interface {
	RecordEntry(ctx context.Context, productID string, qty int64) (*MovementResult, error)
	RecordExit(ctx context.Context, productID string, qty int64) (*MovementResult, error)
	List(ctx context.Context, filter dto.MovementFilter) ([]entity.Movement, error)
}

// ReportAPI reportes y archivos generados.
type ReportAPI interface {
	Stock(ctx context.Context) (entity.StockReport, error)
	Movements(ctx context.Context, filter dto.MovementFilter) (entity.MovementReport, error)
	MovementsByProduct(ctx context.Context, productID string) ([]entity.Movement, error)
	Files(ctx context.Context) ([]entity.ReportFile, error)
	Generate(ctx context.Context, kind, format string, filter dto.MovementFilter) (string, error)
	FileURL(ctx context.Context, name string) (string, error)
}
