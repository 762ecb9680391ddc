package basket

import (
	"testing"

	"asa-backend/internal/inventory"
	"asa-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Despensa do cenário de referência: 10kg de arroz, 4kg de feijão,
// receita de 2kg de arroz e 1kg de feijão por cesta.
func newRiceAndBeansStore(t *testing.T) (*MemoryStore, uint, uint) {
	t.Helper()
	store := NewMemoryStore()
	riceID := store.SeedItem(models.StockItem{Name: "Arroz", Quantity: 10, Unit: models.UnitMass, Category: models.CategoryFood})
	beansID := store.SeedItem(models.StockItem{Name: "Feijão", Quantity: 4, Unit: models.UnitMass, Category: models.CategoryFood})

	cfg, err := store.LoadConfiguration()
	require.NoError(t, err)
	require.NoError(t, cfg.AddLine(riceID, 2))
	require.NoError(t, cfg.AddLine(beansID, 1))
	require.NoError(t, store.SaveConfiguration(cfg))

	return store, riceID, beansID
}

func snapshot(t *testing.T, store *MemoryStore) (map[uint]float64, int64) {
	t.Helper()
	items, err := store.ListStockItems()
	require.NoError(t, err)
	quantities := make(map[uint]float64, len(items))
	for _, item := range items {
		quantities[item.ID] = item.Quantity
	}
	count, err := store.AssembledCount()
	require.NoError(t, err)
	return quantities, count
}

func TestAssembleHappyPath(t *testing.T) {
	store, riceID, beansID := newRiceAndBeansStore(t)
	assembler := NewAssembler(store)

	feasible, err := assembler.Feasibility()
	require.NoError(t, err)
	assert.Equal(t, 4, feasible)

	result, err := assembler.Assemble(4, "voluntaria@asa.org")
	require.NoError(t, err)

	assert.Equal(t, int64(4), result.NewCount)
	assert.NotEmpty(t, result.Reference)

	rice, err := store.GetStockItem(riceID)
	require.NoError(t, err)
	beans, err := store.GetStockItem(beansID)
	require.NoError(t, err)
	assert.Equal(t, 2.0, rice.Quantity) // 10 - 2*4
	assert.Equal(t, 0.0, beans.Quantity) // 4 - 1*4

	// A quinta cesta falha citando o feijão (precisa 1, tem 0)
	_, err = assembler.Assemble(1, "voluntaria@asa.org")
	var insuf *inventory.InsufficientStockError
	require.ErrorAs(t, err, &insuf)
	require.Len(t, insuf.Shortfalls, 1)
	assert.Equal(t, beansID, insuf.Shortfalls[0].StockItemID)
	assert.Equal(t, 1.0, insuf.Shortfalls[0].Required)
	assert.Equal(t, 0.0, insuf.Shortfalls[0].Available)
}

func TestAssembleFeasibilityBoundary(t *testing.T) {
	// Se a viabilidade diz k, montar k funciona e k+1 falha
	store, _, _ := newRiceAndBeansStore(t)
	assembler := NewAssembler(store)

	k, err := assembler.Feasibility()
	require.NoError(t, err)
	require.Greater(t, k, 0)

	before, _ := snapshot(t, store)

	_, err = assembler.Assemble(k+1, "voluntaria@asa.org")
	var insuf *inventory.InsufficientStockError
	require.ErrorAs(t, err, &insuf)

	// A tentativa que falhou não mexeu em nada
	after, count := snapshot(t, store)
	assert.Equal(t, before, after)
	assert.Equal(t, int64(0), count)

	_, err = assembler.Assemble(k, "voluntaria@asa.org")
	require.NoError(t, err)
}

func TestAssembleExactArithmetic(t *testing.T) {
	store, riceID, beansID := newRiceAndBeansStore(t)
	assembler := NewAssembler(store)

	before, beforeCount := snapshot(t, store)

	result, err := assembler.Assemble(3, "voluntaria@asa.org")
	require.NoError(t, err)

	after, afterCount := snapshot(t, store)
	assert.Equal(t, before[riceID]-2*3, after[riceID])
	assert.Equal(t, before[beansID]-1*3, after[beansID])
	assert.Equal(t, beforeCount+3, afterCount)
	assert.Equal(t, afterCount, result.NewCount)
}

func TestAssembleRejectsNonPositiveQuantity(t *testing.T) {
	store, _, _ := newRiceAndBeansStore(t)
	assembler := NewAssembler(store)

	_, err := assembler.Assemble(0, "voluntaria@asa.org")
	assert.ErrorIs(t, err, inventory.ErrInvalidQuantity)

	_, err = assembler.Assemble(-3, "voluntaria@asa.org")
	assert.ErrorIs(t, err, inventory.ErrInvalidQuantity)

	_, count := snapshot(t, store)
	assert.Equal(t, int64(0), count)
}

func TestAssembleReportsAllShortfallsAtOnce(t *testing.T) {
	store := NewMemoryStore()
	riceID := store.SeedItem(models.StockItem{Name: "Arroz", Quantity: 1, Unit: models.UnitMass, Category: models.CategoryFood})
	oilID := store.SeedItem(models.StockItem{Name: "Óleo", Quantity: 0, Unit: models.UnitVolume, Category: models.CategoryFood})

	cfg, err := store.LoadConfiguration()
	require.NoError(t, err)
	require.NoError(t, cfg.AddLine(riceID, 2))
	require.NoError(t, cfg.AddLine(oilID, 1))
	require.NoError(t, store.SaveConfiguration(cfg))

	_, err = NewAssembler(store).Assemble(1, "voluntaria@asa.org")
	var insuf *inventory.InsufficientStockError
	require.ErrorAs(t, err, &insuf)
	assert.Len(t, insuf.Shortfalls, 2, "todas as faltas de uma vez, não só a primeira")
}

func TestAssembleWithDanglingRecipeLine(t *testing.T) {
	store, riceID, beansID := newRiceAndBeansStore(t)
	assembler := NewAssembler(store)

	// Item removido manualmente do estoque, mas a linha continua na receita
	store.RemoveItem(beansID)

	feasible, err := assembler.Feasibility()
	require.NoError(t, err)
	assert.Equal(t, 0, feasible)

	before, beforeCount := snapshot(t, store)

	_, err = assembler.Assemble(1, "voluntaria@asa.org")
	var insuf *inventory.InsufficientStockError
	require.ErrorAs(t, err, &insuf)
	require.Len(t, insuf.Shortfalls, 1)
	assert.Equal(t, beansID, insuf.Shortfalls[0].StockItemID)
	assert.Equal(t, 0.0, insuf.Shortfalls[0].Available)

	after, afterCount := snapshot(t, store)
	assert.Equal(t, before, after)
	assert.Equal(t, beforeCount, afterCount)

	rice, err := store.GetStockItem(riceID)
	require.NoError(t, err)
	assert.Equal(t, 10.0, rice.Quantity)
}

func TestAssembleEmptyConfiguration(t *testing.T) {
	store := NewMemoryStore()
	store.SeedItem(models.StockItem{Name: "Arroz", Quantity: 100, Unit: models.UnitMass, Category: models.CategoryFood})

	_, err := NewAssembler(store).Assemble(1, "voluntaria@asa.org")
	assert.ErrorIs(t, err, ErrEmptyConfiguration)
}

func TestAssembleZeroRequirementLinesOnly(t *testing.T) {
	store := NewMemoryStore()
	bagID := store.SeedItem(models.StockItem{Name: "Sacola", Quantity: 50, Unit: models.UnitCount, Category: models.CategoryOther})

	cfg, err := store.LoadConfiguration()
	require.NoError(t, err)
	require.NoError(t, cfg.AddLine(bagID, 0))
	require.NoError(t, store.SaveConfiguration(cfg))

	// Receita que não consome nada é tratada como vazia
	_, err = NewAssembler(store).Assemble(1, "voluntaria@asa.org")
	assert.ErrorIs(t, err, ErrEmptyConfiguration)
}

func TestSetAssembledCountOverride(t *testing.T) {
	store, _, _ := newRiceAndBeansStore(t)

	require.NoError(t, store.SetAssembledCount(120))
	count, err := store.AssembledCount()
	require.NoError(t, err)
	assert.Equal(t, int64(120), count)

	assert.ErrorIs(t, store.SetAssembledCount(-1), inventory.ErrInvalidQuantity)
}

func TestAdjustStockQuantityNeverClampsToZero(t *testing.T) {
	store := NewMemoryStore()
	riceID := store.SeedItem(models.StockItem{Name: "Arroz", Quantity: 3, Unit: models.UnitMass, Category: models.CategoryFood})

	_, err := store.AdjustStockQuantity(riceID, -5)
	var insuf *inventory.InsufficientStockError
	require.ErrorAs(t, err, &insuf)

	// Rejeitado, não truncado: o saldo continua 3
	item, err := store.GetStockItem(riceID)
	require.NoError(t, err)
	assert.Equal(t, 3.0, item.Quantity)

	item, err = store.AdjustStockQuantity(riceID, -3)
	require.NoError(t, err)
	assert.Equal(t, 0.0, item.Quantity)

	_, err = store.AdjustStockQuantity(99, 1)
	assert.ErrorIs(t, err, inventory.ErrItemNotFound)
}
