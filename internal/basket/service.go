package basket

import (
	"fmt"

	"asa-backend/internal/inventory"
)

// Assembler orquestra a montagem de cestas em cima do Store.
type Assembler struct {
	store Store
}

func NewAssembler(store Store) *Assembler {
	return &Assembler{store: store}
}

// Feasibility - quantas cestas dá para montar com o estoque de agora
func (a *Assembler) Feasibility() (int, error) {
	cfg, err := a.store.LoadConfiguration()
	if err != nil {
		return 0, err
	}
	items, err := a.store.ListStockItems()
	if err != nil {
		return 0, err
	}
	return ComputeFeasibility(cfg, items), nil
}

// Assemble monta n cestas (n >= 1): calcula o consumo total por item e
// delega a aplicação atômica ao Store. Uma tentativa que falha não mexe em
// nada — pode ser repetida sem risco.
func (a *Assembler) Assemble(n int, performedBy string) (*AssemblyResult, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: número de cestas deve ser pelo menos 1", inventory.ErrInvalidQuantity)
	}

	cfg, err := a.store.LoadConfiguration()
	if err != nil {
		return nil, err
	}

	needs := make([]Need, 0, len(cfg.Lines))
	for _, line := range cfg.Lines {
		if line.QuantityRequired <= 0 {
			continue // linha degenerada: não consome nada
		}
		needs = append(needs, Need{
			StockItemID: line.StockItemID,
			Quantity:    line.QuantityRequired * float64(n),
		})
	}
	if len(needs) == 0 {
		return nil, ErrEmptyConfiguration
	}

	return a.store.ApplyAssembly(needs, n, performedBy)
}
