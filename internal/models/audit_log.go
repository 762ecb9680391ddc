package models

import "time"

type AuditAction string

const (
	AuditActionCreate   AuditAction = "create"
	AuditActionUpdate   AuditAction = "update"
	AuditActionDelete   AuditAction = "delete"
	AuditActionAdjust   AuditAction = "adjust"
	AuditActionAssemble AuditAction = "assemble"
)

// AuditLog: trilha simples de quem mexeu em quê (append-only, sem undo)
type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	// Quem? (e-mail vem do token, não há tabela de usuários local)
	UserEmail string `gorm:"size:100;index" json:"user_email"`

	// Em quê? (ex: "stock_item", "basket_config", "assembly")
	EntityType string `gorm:"size:50;index" json:"entity_type"`
	EntityID   uint   `gorm:"index" json:"entity_id"`

	Action      AuditAction `gorm:"size:20" json:"action"`
	Description string      `gorm:"size:255" json:"description"`

	// Estado antes e depois (JSON)
	BeforeData string `gorm:"type:jsonb" json:"before_data"`
	AfterData  string `gorm:"type:jsonb" json:"after_data"`
}
