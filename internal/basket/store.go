package basket

import (
	"fmt"

	"asa-backend/internal/inventory"
	"asa-backend/internal/models"
)

// Need - consumo total de um item para uma montagem (consumo por cesta * n)
type Need struct {
	StockItemID uint
	Quantity    float64
}

type AssemblyResult struct {
	Reference    string             `json:"reference"`
	NewCount     int64              `json:"new_count"`
	UpdatedItems []models.StockItem `json:"updated_items"`
}

// Store é o contrato de persistência do núcleo da cesta. A lógica em si não
// guarda estado entre chamadas; quem segura o estado é a implementação
// (Postgres em produção, memória nos testes).
type Store interface {
	ListStockItems() ([]models.StockItem, error)
	GetStockItem(id uint) (*models.StockItem, error)
	AdjustStockQuantity(id uint, delta float64) (*models.StockItem, error)

	LoadConfiguration() (*Configuration, error)
	SaveConfiguration(cfg *Configuration) error

	AssembledCount() (int64, error)
	SetAssembledCount(n int64) error

	// ApplyAssembly revalida o estoque e aplica todos os decrementos, o
	// incremento do contador e o registro da montagem como UMA unidade:
	// ou tudo, ou nada. Falta de estoque vem como InsufficientStockError
	// com TODAS as faltas.
	ApplyAssembly(needs []Need, n int, performedBy string) (*AssemblyResult, error)
}

// verifyNeeds confere cada necessidade contra o saldo atual e devolve todas
// as faltas de uma vez. Item inexistente conta como saldo zero.
func verifyNeeds(items map[uint]*models.StockItem, needs []Need) []inventory.Shortfall {
	var shortfalls []inventory.Shortfall
	for _, need := range needs {
		item, ok := items[need.StockItemID]
		if !ok {
			shortfalls = append(shortfalls, inventory.Shortfall{
				StockItemID: need.StockItemID,
				Name:        fmt.Sprintf("item #%d (removido do estoque)", need.StockItemID),
				Required:    need.Quantity,
				Available:   0,
			})
			continue
		}
		if item.Quantity < need.Quantity {
			shortfalls = append(shortfalls, inventory.Shortfall{
				StockItemID: item.ID,
				Name:        item.Name,
				Required:    need.Quantity,
				Available:   item.Quantity,
			})
		}
	}
	return shortfalls
}
