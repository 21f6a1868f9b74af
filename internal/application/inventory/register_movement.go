package inventory

import (
	"context"

	"github.com/jhoicas/devostorange/internal/application/dto"
	"github.com/jhoicas/devostorange/internal/domain/entity"
)

// RegisterMovementFromRequest adapta el request HTTP al caso de uso y arma la respuesta del cable.
func (uc *RegisterMovementUseCase) RegisterMovementFromRequest(ctx context.Context, userID string, t entity.MovementType, in dto.MovementRequest) (*dto.RecordMovementResponse, error) {
	res, err := uc.RegisterMovement(ctx, MovementInputDTO{
		UserID:    userID,
		ProductID: in.ProductID,
		Type:      t,
		Quantity:  in.Quantity,
	})
	if err != nil {
		return nil, err
	}
	mov := dto.MovementFromEntity(*res.Movement)
	prod := dto.ProductFromEntity(res.Product)
	msg := "Entrada registrada com sucesso"
	if t == entity.MovementExit {
		msg = "Saída registrada com sucesso"
	}
	return &dto.RecordMovementResponse{Message: msg, Movement: &mov, Product: &prod}, nil
}
