package audit

import (
	"encoding/json"
	"log"

	"asa-backend/internal/database"
	"asa-backend/internal/models"
)

type LogOptions struct {
	UserEmail   string
	EntityType  string
	EntityID    uint
	Action      models.AuditAction
	Description string
	Before      any
	After       any
}

// WriteLog grava uma entrada na trilha. Falha de auditoria nunca derruba a
// operação principal — só registra no log do servidor.
func WriteLog(opts LogOptions) {
	// jsonb do Postgres não aceita string vazia, usamos "null"
	beforeStr := "null"
	afterStr := "null"

	if opts.Before != nil {
		if b, err := json.Marshal(opts.Before); err == nil {
			beforeStr = string(b)
		}
	}
	if opts.After != nil {
		if b, err := json.Marshal(opts.After); err == nil {
			afterStr = string(b)
		}
	}

	entry := models.AuditLog{
		UserEmail:   opts.UserEmail,
		EntityType:  opts.EntityType,
		EntityID:    opts.EntityID,
		Action:      opts.Action,
		Description: opts.Description,
		BeforeData:  beforeStr,
		AfterData:   afterStr,
	}

	if err := database.DB.Create(&entry).Error; err != nil {
		log.Printf("[WARN] Auditoria não gravada (%s %s#%d): %v",
			opts.Action, opts.EntityType, opts.EntityID, err)
	}
}
