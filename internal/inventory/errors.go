package inventory

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrItemNotFound    = errors.New("item de estoque não encontrado")
	ErrInvalidQuantity = errors.New("quantidade inválida")
)

// Shortfall - falta de um item: quanto precisava vs. quanto tem
type Shortfall struct {
	StockItemID uint    `json:"stock_item_id"`
	Name        string  `json:"name"`
	Required    float64 `json:"required"`
	Available   float64 `json:"available"`
}

// InsufficientStockError carrega TODAS as faltas de uma vez, não só a
// primeira — ajuda o voluntário a saber o que repor de uma viagem só.
type InsufficientStockError struct {
	Shortfalls []Shortfall
}

func (e *InsufficientStockError) Error() string {
	parts := make([]string, 0, len(e.Shortfalls))
	for _, s := range e.Shortfalls {
		parts = append(parts, fmt.Sprintf("%s (precisa %.2f, tem %.2f)", s.Name, s.Required, s.Available))
	}
	return "estoque insuficiente: " + strings.Join(parts, "; ")
}
