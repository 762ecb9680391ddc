package models

import "time"

// StockUnit - Unidade de medida do item (conjunto fechado)
type StockUnit string

const (
	UnitMass    StockUnit = "mass"    // kg
	UnitCount   StockUnit = "count"   // unidade
	UnitVolume  StockUnit = "volume"  // litro
	UnitPackage StockUnit = "package" // pacote/fardo
)

// StockCategory - Classificação do item, usada só para relatório/filtro
type StockCategory string

const (
	CategoryFood     StockCategory = "food"
	CategoryHygiene  StockCategory = "hygiene"
	CategoryClothing StockCategory = "clothing"
	CategoryOther    StockCategory = "other"
)

func (u StockUnit) Valid() bool {
	switch u {
	case UnitMass, UnitCount, UnitVolume, UnitPackage:
		return true
	}
	return false
}

func (c StockCategory) Valid() bool {
	switch c {
	case CategoryFood, CategoryHygiene, CategoryClothing, CategoryOther:
		return true
	}
	return false
}

// StockItem: item da despensa com a quantidade atual em mãos.
// Invariante: Quantity >= 0 sempre (o ledger rejeita o delta antes de aplicar).
type StockItem struct {
	ID           uint          `gorm:"primaryKey"`
	Name         string        `gorm:"size:100;not null;unique"`
	Quantity     float64       `gorm:"not null;default:0"`
	Unit         StockUnit     `gorm:"size:20;not null"`
	Category     StockCategory `gorm:"size:20;not null;index"`
	MinThreshold float64       `gorm:"not null;default:0"` // alerta de estoque baixo (só exibição)
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
