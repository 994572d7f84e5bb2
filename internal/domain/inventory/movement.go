package inventory

import (
	"fmt"

	"github.com/jhoicas/warely-stock/internal/domain"
	"github.com/jhoicas/warely-stock/internal/domain/entity"
)

// ValidateMovement verifica la completitud estructural de una entrada del libro (servicio de dominio).
// No aplica reglas de negocio: solo cantidad positiva, tipo válido y forma de ubicaciones por tipo.
//
//	IN          solo destino
//	OUT         solo origen
//	TRANSFER    origen y destino distintos
//	ADJUSTMENT  exactamente uno de los dos (destino = aumento, origen = disminución)
func ValidateMovement(m *entity.StockMovement) error {
	if m == nil {
		return fmt.Errorf("%w: movimiento nulo", domain.ErrInvalidInput)
	}
	if m.ProductID == "" || m.WarehouseID == "" {
		return fmt.Errorf("%w: movimiento sin producto o bodega", domain.ErrInvalidInput)
	}
	if m.Quantity <= 0 {
		return fmt.Errorf("%w: cantidad del movimiento debe ser positiva (%d)", domain.ErrInvalidInput, m.Quantity)
	}
	if m.CreatedBy == "" {
		return fmt.Errorf("%w: movimiento sin usuario", domain.ErrInvalidInput)
	}
	from, to := present(m.FromLocationID), present(m.ToLocationID)

	switch m.Type {
	case entity.MovementTypeIN:
		if !to || from {
			return shapeError(m.Type)
		}
	case entity.MovementTypeOUT:
		if !from || to {
			return shapeError(m.Type)
		}
	case entity.MovementTypeTRANSFER:
		if !from || !to || *m.FromLocationID == *m.ToLocationID {
			return shapeError(m.Type)
		}
	case entity.MovementTypeADJUSTMENT:
		if from == to {
			return shapeError(m.Type)
		}
	default:
		return fmt.Errorf("%w: tipo de movimiento %q", domain.ErrInvalidInput, m.Type)
	}
	return nil
}

func present(id *string) bool { return id != nil && *id != "" }

func shapeError(movementType string) error {
	return fmt.Errorf("%w: ubicaciones no válidas para movimiento %s", domain.ErrInvalidInput, movementType)
}
