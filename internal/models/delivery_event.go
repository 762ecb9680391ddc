package models

import "time"

// DeliveryStatus - Situação do evento de entrega
type DeliveryStatus string

const (
	DeliveryScheduled DeliveryStatus = "scheduled"
	DeliveryCompleted DeliveryStatus = "completed"
	DeliveryCanceled  DeliveryStatus = "canceled"
)

func (s DeliveryStatus) Valid() bool {
	switch s {
	case DeliveryScheduled, DeliveryCompleted, DeliveryCanceled:
		return true
	}
	return false
}

// DeliveryEvent: ação de entrega agendada (ex: "Entrega de Natal")
type DeliveryEvent struct {
	ID        uint           `gorm:"primaryKey"`
	Title     string         `gorm:"size:150;not null"`
	Date      time.Time      `gorm:"index;not null"`
	Location  string         `gorm:"size:255"`
	Status    DeliveryStatus `gorm:"size:20;not null;default:'scheduled'"`
	Notes     string         `gorm:"size:500"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Assignments []DeliveryAssignment `gorm:"foreignKey:DeliveryEventID;constraint:OnDelete:CASCADE"`
}

// DeliveryAssignment: cestas reservadas para um beneficiário dentro do evento
type DeliveryAssignment struct {
	ID              uint `gorm:"primaryKey"`
	DeliveryEventID uint `gorm:"index;not null"`
	BeneficiaryID   uint `gorm:"index;not null"`
	Beneficiary     Beneficiary
	Baskets         int  `gorm:"not null;default:1"`
	Delivered       bool `gorm:"not null;default:false"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
