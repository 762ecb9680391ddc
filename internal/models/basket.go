package models

import "time"

// BasketConfiguration: receita da cesta básica persistida como um único
// registro (blob jsonb). Salvar sobrescreve o anterior, não há histórico.
type BasketConfiguration struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null"`
	Items     string `gorm:"type:jsonb;not null;default:'[]'"` // []RecipeLine em JSON
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AssemblyCounter: contador acumulado de cestas montadas (linha única).
// Só a transação de montagem incrementa; admin pode sobrescrever manualmente.
type AssemblyCounter struct {
	ID        uint  `gorm:"primaryKey"`
	Count     int64 `gorm:"not null;default:0"`
	UpdatedAt time.Time
}

// AssemblyRecord: registro de cada montagem bem-sucedida.
type AssemblyRecord struct {
	ID          uint   `gorm:"primaryKey"`
	Reference   string `gorm:"size:36;uniqueIndex;not null"` // uuid
	Quantity    int    `gorm:"not null"`
	PerformedBy string `gorm:"size:100"` // e-mail do voluntário (do token)
	CreatedAt   time.Time
}
