package basket

import "errors"

var (
	ErrDuplicateLine = errors.New("o item já está na receita da cesta")
	ErrLineNotFound  = errors.New("o item não está na receita da cesta")

	// Receita vazia (ou só com linhas de consumo zero): não há o que montar.
	ErrEmptyConfiguration = errors.New("a receita da cesta está vazia")
)
