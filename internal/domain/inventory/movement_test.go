package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/warely-stock/internal/domain"
	"github.com/jhoicas/warely-stock/internal/domain/entity"
	"github.com/jhoicas/warely-stock/internal/domain/inventory"
)

func ptr(s string) *string { return &s }

func movement(typ string, qty int64, from, to *string) *entity.StockMovement {
	return &entity.StockMovement{
		WarehouseID:    "wh-1",
		ProductID:      "p-1",
		Type:           typ,
		Quantity:       qty,
		FromLocationID: from,
		ToLocationID:   to,
		CreatedBy:      "u-1",
	}
}

func TestValidateMovement_FormasValidas(t *testing.T) {
	valid := []*entity.StockMovement{
		movement(entity.MovementTypeIN, 5, nil, ptr("A")),
		movement(entity.MovementTypeOUT, 5, ptr("A"), nil),
		movement(entity.MovementTypeTRANSFER, 5, ptr("A"), ptr("B")),
		movement(entity.MovementTypeADJUSTMENT, 5, nil, ptr("A")),
		movement(entity.MovementTypeADJUSTMENT, 5, ptr("A"), nil),
	}
	for _, m := range valid {
		assert.NoError(t, inventory.ValidateMovement(m), m.Type)
	}
}

func TestValidateMovement_RechazaMalformados(t *testing.T) {
	invalid := map[string]*entity.StockMovement{
		"cantidad cero":          movement(entity.MovementTypeIN, 0, nil, ptr("A")),
		"cantidad negativa":      movement(entity.MovementTypeOUT, -3, ptr("A"), nil),
		"IN sin destino":         movement(entity.MovementTypeIN, 1, nil, nil),
		"IN con origen":          movement(entity.MovementTypeIN, 1, ptr("A"), ptr("B")),
		"OUT sin origen":         movement(entity.MovementTypeOUT, 1, nil, ptr("A")),
		"TRANSFER misma":         movement(entity.MovementTypeTRANSFER, 1, ptr("A"), ptr("A")),
		"TRANSFER sin destino":   movement(entity.MovementTypeTRANSFER, 1, ptr("A"), nil),
		"ADJUSTMENT sin ninguna": movement(entity.MovementTypeADJUSTMENT, 1, nil, nil),
		"ADJUSTMENT con ambas":   movement(entity.MovementTypeADJUSTMENT, 1, ptr("A"), ptr("B")),
		"tipo desconocido":       movement("LOSS", 1, ptr("A"), nil),
	}
	for name, m := range invalid {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, inventory.ValidateMovement(m), domain.ErrInvalidInput)
		})
	}

	noUser := movement(entity.MovementTypeIN, 1, nil, ptr("A"))
	noUser.CreatedBy = ""
	assert.ErrorIs(t, inventory.ValidateMovement(noUser), domain.ErrInvalidInput)
	assert.ErrorIs(t, inventory.ValidateMovement(nil), domain.ErrInvalidInput)
}

func TestReplay_ReconstruyeUbicacionesYTotal(t *testing.T) {
	in := movement(entity.MovementTypeIN, 50, nil, ptr("A"))
	in.Seq = 1
	transfer := movement(entity.MovementTypeTRANSFER, 20, ptr("A"), ptr("B"))
	transfer.Seq = 2
	out := movement(entity.MovementTypeOUT, 5, ptr("B"), nil)
	out.Seq = 3
	adj := movement(entity.MovementTypeADJUSTMENT, 2, ptr("A"), nil)
	adj.Seq = 4

	// desordenados a propósito: Replay ordena por Seq
	res := inventory.Replay([]*entity.StockMovement{out, adj, in, transfer})

	require.Equal(t, 4, res.Movements)
	assert.Equal(t, int64(43), res.CurrentStock)
	assert.Equal(t, int64(28), res.ByLocation["A"])
	assert.Equal(t, int64(15), res.ByLocation["B"])
	assert.Zero(t, res.NegativeAt)
}

func TestReplay_DetectaNegativo(t *testing.T) {
	out := movement(entity.MovementTypeOUT, 5, ptr("A"), nil)
	out.Seq = 7
	res := inventory.Replay([]*entity.StockMovement{out})
	assert.Equal(t, int64(7), res.NegativeAt)
	assert.Equal(t, int64(-5), res.CurrentStock)
}

func TestProductDelta(t *testing.T) {
	assert.Equal(t, int64(4), movement(entity.MovementTypeIN, 4, nil, ptr("A")).ProductDelta())
	assert.Equal(t, int64(-4), movement(entity.MovementTypeOUT, 4, ptr("A"), nil).ProductDelta())
	assert.Equal(t, int64(0), movement(entity.MovementTypeTRANSFER, 4, ptr("A"), ptr("B")).ProductDelta())
}
