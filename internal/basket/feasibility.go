package basket

import (
	"math"

	"asa-backend/internal/models"
)

// ComputeFeasibility calcula quantas cestas dá para montar agora: o mínimo,
// entre as linhas da receita, de floor(quantidade em estoque / consumo por
// cesta). Função pura — mesma entrada, mesma saída, sem efeito colateral —
// segura para chamar a cada tecla na tela.
//
// Casos de borda:
//   - receita vazia: 0 (não existe "cesta indefinida")
//   - linha com consumo zero: não limita nada (fica fora do mínimo)
//   - linha apontando para item removido do estoque: conta como 0,
//     derrubando a viabilidade para 0
//
// O número é informativo: outra montagem pode consumir o estoque logo depois
// da leitura. Quem manda é a checagem dentro da própria transação de montagem.
func ComputeFeasibility(cfg *Configuration, items []models.StockItem) int {
	if cfg == nil || len(cfg.Lines) == 0 {
		return 0
	}

	quantities := make(map[uint]float64, len(items))
	for _, item := range items {
		quantities[item.ID] = item.Quantity
	}

	feasible := -1
	for _, line := range cfg.Lines {
		if line.QuantityRequired <= 0 {
			continue
		}
		possible := int(math.Floor(quantities[line.StockItemID] / line.QuantityRequired))
		if feasible < 0 || possible < feasible {
			feasible = possible
		}
	}

	// Só linhas degeneradas: nada limita, mas também nada compõe a cesta
	if feasible < 0 {
		return 0
	}
	return feasible
}
