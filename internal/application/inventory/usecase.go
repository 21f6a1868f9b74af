package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/devostorange/internal/application/dto"
	"github.com/jhoicas/devostorange/internal/application/validation"
	"github.com/jhoicas/devostorange/internal/domain"
	"github.com/jhoicas/devostorange/internal/domain/entity"
	"github.com/jhoicas/devostorange/internal/domain/repository"
)

// RegisterMovementUseCase registra entradas y salidas de forma transaccional.
type RegisterMovementUseCase struct {
	txRunner TxRunner
	userRepo repository.UserRepository
	now      func() time.Time
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(txRunner TxRunner, userRepo repository.UserRepository) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{txRunner: txRunner, userRepo: userRepo, now: time.Now}
}

// MovementInputDTO entrada para registrar un movimiento.
type MovementInputDTO struct {
	UserID    string
	ProductID string
	Type      entity.MovementType
	Quantity  int64
}

// MovementResult movimiento creado más el producto con su nueva cantidad.
type MovementResult struct {
	Movement *entity.Movement
	Product  *entity.Product
}

// RegisterMovement valida, bloquea el almacén y aplica el movimiento.
// Una salida mayor al stock devuelve ErrInsufficientStock sin modificar nada.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, input MovementInputDTO) (*MovementResult, error) {
	if !input.Type.Valid() {
		return nil, domain.ErrInvalidInput
	}
	if err := validation.Struct(dto.MovementRequest{ProductID: input.ProductID, Quantity: input.Quantity}); err != nil {
		return nil, err
	}

	var userName string
	if input.UserID != "" {
		if u, _ := uc.userRepo.GetByID(input.UserID); u != nil {
			userName = u.Name
		}
	}

	now := uc.now()
	var result MovementResult
	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, movRepo repository.MovementRepository) error {
		product, err := productRepo.GetByID(input.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		qty := decimal.NewFromInt(input.Quantity)
		switch input.Type {
		case entity.MovementEntry:
			product.Quantity = product.Quantity.Add(qty)
		case entity.MovementExit:
			if product.Quantity.LessThan(qty) {
				return domain.ErrInsufficientStock
			}
			product.Quantity = product.Quantity.Sub(qty)
		}
		product.UpdatedAt = now
		if err := productRepo.Update(product); err != nil {
			return err
		}

		mov := &entity.Movement{
			ID:          uuid.New().String(),
			ProductID:   product.ID,
			ProductName: product.Name,
			Category:    product.Category,
			UserID:      input.UserID,
			UserName:    userName,
			Type:        input.Type,
			Quantity:    input.Quantity,
			Date:        dto.FormatTimestamp(now),
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}
		result = MovementResult{Movement: mov, Product: product}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}
