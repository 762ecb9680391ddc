package inventory

import (
	"errors"

	"asa-backend/internal/models"

	"gorm.io/gorm"
)

// ApplyDelta soma delta (com sinal) à quantidade do item. Rejeita com
// InsufficientStockError se o resultado ficaria negativo — nunca trava em zero.
// O check e o update são um único UPDATE condicional, então dois decrementos
// simultâneos não passam os dois pelo mesmo saldo ("lost update").
func ApplyDelta(db *gorm.DB, itemID uint, delta float64) (*models.StockItem, error) {
	res := db.Model(&models.StockItem{}).
		Where("id = ? AND quantity + ? >= 0", itemID, delta).
		Update("quantity", gorm.Expr("quantity + ?", delta))
	if res.Error != nil {
		return nil, res.Error
	}

	if res.RowsAffected == 0 {
		// Ou o item não existe, ou ficaria negativo. Releitura para distinguir.
		var item models.StockItem
		if err := db.First(&item, "id = ?", itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrItemNotFound
			}
			return nil, err
		}
		return nil, &InsufficientStockError{Shortfalls: []Shortfall{{
			StockItemID: item.ID,
			Name:        item.Name,
			Required:    -delta,
			Available:   item.Quantity,
		}}}
	}

	var item models.StockItem
	if err := db.First(&item, "id = ?", itemID).Error; err != nil {
		return nil, err
	}
	return &item, nil
}
