package basket

import (
	"testing"

	"asa-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestComputeFeasibilityRiceAndBeans(t *testing.T) {
	// Despensa: 10kg de arroz, 4kg de feijão; receita: 2kg arroz + 1kg feijão
	items := []models.StockItem{
		{ID: 1, Name: "Arroz", Quantity: 10, Unit: models.UnitMass, Category: models.CategoryFood},
		{ID: 2, Name: "Feijão", Quantity: 4, Unit: models.UnitMass, Category: models.CategoryFood},
	}
	cfg := &Configuration{Name: "Cesta Básica", Lines: []RecipeLine{
		{StockItemID: 1, QuantityRequired: 2},
		{StockItemID: 2, QuantityRequired: 1},
	}}

	// min(floor(10/2)=5, floor(4/1)=4) = 4
	assert.Equal(t, 4, ComputeFeasibility(cfg, items))
}

func TestComputeFeasibilityEmptyRecipe(t *testing.T) {
	items := []models.StockItem{
		{ID: 1, Name: "Arroz", Quantity: 100},
	}
	cfg := &Configuration{Name: "Cesta Básica"}

	assert.Equal(t, 0, ComputeFeasibility(cfg, items), "receita vazia nunca monta cesta, não importa o estoque")
	assert.Equal(t, 0, ComputeFeasibility(nil, items))
}

func TestComputeFeasibilityMissingStockItem(t *testing.T) {
	// A linha aponta para um item que foi removido do estoque: conta como 0
	items := []models.StockItem{
		{ID: 1, Name: "Arroz", Quantity: 10},
	}
	cfg := &Configuration{Lines: []RecipeLine{
		{StockItemID: 1, QuantityRequired: 2},
		{StockItemID: 99, QuantityRequired: 1},
	}}

	assert.Equal(t, 0, ComputeFeasibility(cfg, items))
}

func TestComputeFeasibilityZeroRequirementLineIsUnbounded(t *testing.T) {
	items := []models.StockItem{
		{ID: 1, Name: "Arroz", Quantity: 10},
		{ID: 2, Name: "Sacola", Quantity: 1},
	}
	cfg := &Configuration{Lines: []RecipeLine{
		{StockItemID: 1, QuantityRequired: 2},
		{StockItemID: 2, QuantityRequired: 0}, // linha degenerada, não limita
	}}

	assert.Equal(t, 5, ComputeFeasibility(cfg, items))
}

func TestComputeFeasibilityOnlyZeroRequirementLines(t *testing.T) {
	items := []models.StockItem{
		{ID: 1, Name: "Arroz", Quantity: 10},
	}
	cfg := &Configuration{Lines: []RecipeLine{
		{StockItemID: 1, QuantityRequired: 0},
	}}

	assert.Equal(t, 0, ComputeFeasibility(cfg, items))
}

func TestComputeFeasibilityNeverNegative(t *testing.T) {
	cfg := &Configuration{Lines: []RecipeLine{
		{StockItemID: 1, QuantityRequired: 3},
	}}

	assert.GreaterOrEqual(t, ComputeFeasibility(cfg, nil), 0)
	assert.GreaterOrEqual(t, ComputeFeasibility(cfg, []models.StockItem{{ID: 1, Quantity: 0}}), 0)
}

func TestComputeFeasibilityIsPure(t *testing.T) {
	items := []models.StockItem{
		{ID: 1, Name: "Arroz", Quantity: 7},
	}
	cfg := &Configuration{Lines: []RecipeLine{
		{StockItemID: 1, QuantityRequired: 2},
	}}

	first := ComputeFeasibility(cfg, items)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, ComputeFeasibility(cfg, items))
	}
	// Entrada intocada
	assert.Equal(t, 7.0, items[0].Quantity)
	assert.Equal(t, 2.0, cfg.Lines[0].QuantityRequired)
}
