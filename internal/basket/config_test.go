package basket

import (
	"testing"

	"asa-backend/internal/inventory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigurationAddLine(t *testing.T) {
	cfg := &Configuration{Name: "Cesta Básica"}

	require.NoError(t, cfg.AddLine(1, 2))
	require.NoError(t, cfg.AddLine(2, 0)) // consumo zero é permitido
	assert.Len(t, cfg.Lines, 2)

	err := cfg.AddLine(1, 5)
	assert.ErrorIs(t, err, ErrDuplicateLine)
	assert.Len(t, cfg.Lines, 2)

	err = cfg.AddLine(3, -1)
	assert.ErrorIs(t, err, inventory.ErrInvalidQuantity)
	assert.Len(t, cfg.Lines, 2)
}

func TestConfigurationUpdateLineQuantity(t *testing.T) {
	cfg := &Configuration{}
	require.NoError(t, cfg.AddLine(1, 2))

	require.NoError(t, cfg.UpdateLineQuantity(1, 3))
	assert.Equal(t, 3.0, cfg.Lines[0].QuantityRequired)

	assert.ErrorIs(t, cfg.UpdateLineQuantity(99, 1), ErrLineNotFound)
	assert.ErrorIs(t, cfg.UpdateLineQuantity(1, -2), inventory.ErrInvalidQuantity)
}

func TestConfigurationRemoveLine(t *testing.T) {
	cfg := &Configuration{}
	require.NoError(t, cfg.AddLine(1, 2))
	require.NoError(t, cfg.AddLine(2, 1))

	require.NoError(t, cfg.RemoveLine(1))
	assert.Len(t, cfg.Lines, 1)
	assert.Equal(t, uint(2), cfg.Lines[0].StockItemID)

	// Linha ausente é erro, não no-op
	assert.ErrorIs(t, cfg.RemoveLine(1), ErrLineNotFound)
}

func TestConfigurationAddThenRemoveRoundTrip(t *testing.T) {
	cfg := &Configuration{Name: "Cesta Básica"}
	require.NoError(t, cfg.AddLine(1, 2))
	require.NoError(t, cfg.AddLine(2, 1))
	original := Configuration{Name: cfg.Name, Lines: append([]RecipeLine{}, cfg.Lines...)}

	require.NoError(t, cfg.AddLine(7, 5))
	require.NoError(t, cfg.RemoveLine(7))

	assert.Equal(t, original.Name, cfg.Name)
	assert.ElementsMatch(t, original.Lines, cfg.Lines)
}

func TestConfigurationRename(t *testing.T) {
	cfg := &Configuration{Name: "Cesta Básica"}

	require.NoError(t, cfg.Rename("Cesta de Natal"))
	assert.Equal(t, "Cesta de Natal", cfg.Name)

	assert.Error(t, cfg.Rename("   "))
	assert.Equal(t, "Cesta de Natal", cfg.Name)
}
