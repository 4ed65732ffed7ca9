package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger/internal/domain/inventory"
)

func TestApplyMovement_EntradaSuma(t *testing.T) {
	got := inventory.ApplyMovement(decimal.NewFromInt(5), entity.DocumentTypeEntry, decimal.NewFromInt(20))
	assert.True(t, got.Equal(decimal.NewFromInt(25)), "got %s", got)
}

func TestApplyMovement_SalidaPuedeQuedarNegativa(t *testing.T) {
	got := inventory.ApplyMovement(decimal.NewFromInt(3), entity.DocumentTypeIssuance, decimal.NewFromInt(8))
	assert.True(t, got.Equal(decimal.NewFromInt(-5)), "got %s", got)
}

func TestClassify_UmbralInclusivo(t *testing.T) {
	ten := decimal.NewFromInt(10)
	assert.Equal(t, inventory.StockStatusLow, inventory.Classify(decimal.NewFromInt(10), ten))
	assert.Equal(t, inventory.StockStatusNormal, inventory.Classify(decimal.NewFromInt(11), ten))
	assert.Equal(t, inventory.StockStatusLow, inventory.Classify(decimal.NewFromInt(-2), ten))
}
