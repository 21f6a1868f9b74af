package view

import (
	"context"

	"github.com/jhoicas/devostorange/internal/application/dto"
	"github.com/jhoicas/devostorange/internal/application/ports"
	"github.com/jhoicas/devostorange/internal/application/validation"
	"github.com/jhoicas/devostorange/internal/domain/entity"
	"github.com/jhoicas/devostorange/pkg/logger"
)

// MovementForm formulario de entrada/saída de stock.
type MovementForm struct {
	ProductID string
	Type      entity.MovementType
	Quantity  int64
}

// Validate producto seleccionado, cantidad > 0 y tipo válido.
func (f MovementForm) Validate() error {
	err := validation.Struct(dto.MovementRequest{ProductID: f.ProductID, Quantity: f.Quantity})
	if f.Type.Valid() {
		return err
	}
	verr, ok := err.(*validation.Error)
	if !ok {
		verr = &validation.Error{Fields: map[string]string{}}
	}
	verr.Fields["tipo"] = "Selecione o tipo de movimentação"
	return verr
}

// recorder registra un movimiento, obtiene el producto actualizado y lo anuncia en el bus.
type recorder struct {
	movements ports.MovementAPI
	products  ports.ProductAPI
	bus       ports.Notifier
	logger    *logger.Logger
}

// record valida antes de cualquier request. Si la respuesta no trae el producto se pide una vez por id;
// si eso falla se publica igual, con Product nil.
func (r recorder) record(ctx context.Context, form MovementForm) (*ports.MovementResult, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}
	var (
		res *ports.MovementResult
		err error
	)
	if form.Type == entity.MovementEntry {
		res, err = r.movements.RecordEntry(ctx, form.ProductID, form.Quantity)
	} else {
		res, err = r.movements.RecordExit(ctx, form.ProductID, form.Quantity)
	}
	if err != nil {
		return nil, err
	}
	if res.Product == nil {
		p, getErr := r.products.Get(ctx, form.ProductID)
		if getErr != nil {
			r.logger.Warn().Err(getErr).Str("produto_id", form.ProductID).Msg("no se pudo obtener el producto actualizado")
		} else {
			res.Product = p
		}
	}
	if r.bus != nil {
		r.bus.Publish(ctx, ports.ProductChanged{ProductID: form.ProductID, Product: res.Product})
	}
	return res, nil
}

func movementSuccess(t entity.MovementType) string {
	if t == entity.MovementEntry {
		return "Entrada registrada com sucesso"
	}
	return "Saída registrada com sucesso"
}
