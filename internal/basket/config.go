package basket

import (
	"fmt"
	"strings"

	"asa-backend/internal/inventory"
)

// RecipeLine: consumo de um item por cesta montada. Referência fraca ao
// StockItem — o item pode ser removido do estoque depois, a linha fica.
type RecipeLine struct {
	StockItemID      uint    `json:"stock_item_id"`
	QuantityRequired float64 `json:"quantity_required"`
}

// Configuration: a receita da "cesta básica". No máximo uma linha por item.
// Edição puramente em memória; a persistência é papel do Store.
type Configuration struct {
	Name  string       `json:"name"`
	Lines []RecipeLine `json:"lines"`
}

// AddLine acrescenta uma linha. QuantityRequired zero é permitido (linha
// degenerada que não limita a montagem); negativo é rejeitado.
func (cfg *Configuration) AddLine(stockItemID uint, quantityRequired float64) error {
	if quantityRequired < 0 {
		return fmt.Errorf("%w: consumo por cesta não pode ser negativo", inventory.ErrInvalidQuantity)
	}
	for _, line := range cfg.Lines {
		if line.StockItemID == stockItemID {
			return ErrDuplicateLine
		}
	}
	cfg.Lines = append(cfg.Lines, RecipeLine{StockItemID: stockItemID, QuantityRequired: quantityRequired})
	return nil
}

func (cfg *Configuration) UpdateLineQuantity(stockItemID uint, quantityRequired float64) error {
	if quantityRequired < 0 {
		return fmt.Errorf("%w: consumo por cesta não pode ser negativo", inventory.ErrInvalidQuantity)
	}
	for i := range cfg.Lines {
		if cfg.Lines[i].StockItemID == stockItemID {
			cfg.Lines[i].QuantityRequired = quantityRequired
			return nil
		}
	}
	return ErrLineNotFound
}

// RemoveLine tira a linha do item. Linha ausente é erro (ErrLineNotFound),
// não no-op — coerente com UpdateLineQuantity.
func (cfg *Configuration) RemoveLine(stockItemID uint) error {
	for i := range cfg.Lines {
		if cfg.Lines[i].StockItemID == stockItemID {
			cfg.Lines = append(cfg.Lines[:i], cfg.Lines[i+1:]...)
			return nil
		}
	}
	return ErrLineNotFound
}

func (cfg *Configuration) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("nome da receita não pode ser vazio")
	}
	cfg.Name = name
	return nil
}
