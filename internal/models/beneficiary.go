package models

import "time"

// Beneficiary - Família/pessoa atendida pela ação social
type Beneficiary struct {
	ID         uint   `gorm:"primaryKey"`
	Name       string `gorm:"size:150;not null"`
	Document   string `gorm:"size:20;index"` // CPF (opcional)
	Phone      string `gorm:"size:30"`
	Address    string `gorm:"size:255"`
	FamilySize int    `gorm:"not null;default:1"`
	Notes      string `gorm:"size:500"`
	Active     bool   `gorm:"not null;default:true"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
