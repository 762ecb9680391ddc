package inventory

import (
	"errors"
	"fmt"
	"strings"

	"asa-backend/internal/audit"
	"asa-backend/internal/auth"
	"asa-backend/internal/database"
	"asa-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type StockItemResponse struct {
	ID           uint                 `json:"id"`
	Name         string               `json:"name"`
	Quantity     float64              `json:"quantity"`
	Unit         models.StockUnit     `json:"unit"`
	Category     models.StockCategory `json:"category"`
	MinThreshold float64              `json:"min_threshold"`
	LowStock     bool                 `json:"low_stock"`
}

type CreateStockItemRequest struct {
	Name         string               `json:"name"`
	Quantity     float64              `json:"quantity"`
	Unit         models.StockUnit     `json:"unit"`
	Category     models.StockCategory `json:"category"`
	MinThreshold float64              `json:"min_threshold"`
}

type UpdateStockItemRequest struct {
	Name         *string               `json:"name"`
	Unit         *models.StockUnit     `json:"unit"`
	Category     *models.StockCategory `json:"category"`
	MinThreshold *float64              `json:"min_threshold"`
}

type AdjustStockRequest struct {
	Delta float64 `json:"delta"`
}

func toResponse(item *models.StockItem) StockItemResponse {
	return StockItemResponse{
		ID:           item.ID,
		Name:         item.Name,
		Quantity:     item.Quantity,
		Unit:         item.Unit,
		Category:     item.Category,
		MinThreshold: item.MinThreshold,
		LowStock:     item.Quantity <= item.MinThreshold,
	}
}

// GET /api/stock-items?category=food&low=true
func ListStockItemsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.StockItem{})

		if category := c.Query("category"); category != "" {
			cat := models.StockCategory(category)
			if !cat.Valid() {
				return fiber.NewError(fiber.StatusBadRequest, "Categoria inválida")
			}
			dbq = dbq.Where("category = ?", cat)
		}
		if c.Query("low") == "true" {
			dbq = dbq.Where("quantity <= min_threshold")
		}

		var items []models.StockItem
		if err := dbq.Order("name asc").Find(&items).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar os itens")
		}

		res := make([]StockItemResponse, 0, len(items))
		for i := range items {
			res = append(res, toResponse(&items[i]))
		}
		return c.JSON(res)
	}
}

// GET /api/stock-items/:id
func GetStockItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var item models.StockItem
		if err := database.DB.First(&item, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Item não encontrado")
		}
		return c.JSON(toResponse(&item))
	}
}

// POST /api/stock-items (editor/admin)
func CreateStockItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateStockItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Nome é obrigatório")
		}
		if !body.Unit.Valid() {
			return fiber.NewError(fiber.StatusBadRequest, "Unidade inválida (mass, count, volume, package)")
		}
		if !body.Category.Valid() {
			return fiber.NewError(fiber.StatusBadRequest, "Categoria inválida (food, hygiene, clothing, other)")
		}
		if body.Quantity < 0 || body.MinThreshold < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Quantidade não pode ser negativa")
		}

		var existing models.StockItem
		if err := database.DB.Where("name = ?", body.Name).First(&existing).Error; err == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Já existe um item com esse nome")
		}

		item := models.StockItem{
			Name:         body.Name,
			Quantity:     body.Quantity,
			Unit:         body.Unit,
			Category:     body.Category,
			MinThreshold: body.MinThreshold,
		}

		if err := database.DB.Create(&item).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível criar o item")
		}

		audit.WriteLog(audit.LogOptions{
			UserEmail:   auth.UserEmail(c),
			EntityType:  "stock_item",
			EntityID:    item.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Item criado: %s", item.Name),
			After:       item,
		})

		return c.Status(fiber.StatusCreated).JSON(toResponse(&item))
	}
}

// PUT /api/stock-items/:id (editor/admin) — quantidade NÃO muda por aqui,
// só pelo ajuste (/adjust) ou pela montagem de cestas
func UpdateStockItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var item models.StockItem
		if err := database.DB.First(&item, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Item não encontrado")
		}
		before := item

		var body UpdateStockItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Nome não pode ser vazio")
			}
			item.Name = name
		}
		if body.Unit != nil {
			if !body.Unit.Valid() {
				return fiber.NewError(fiber.StatusBadRequest, "Unidade inválida")
			}
			item.Unit = *body.Unit
		}
		if body.Category != nil {
			if !body.Category.Valid() {
				return fiber.NewError(fiber.StatusBadRequest, "Categoria inválida")
			}
			item.Category = *body.Category
		}
		if body.MinThreshold != nil {
			if *body.MinThreshold < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Limite mínimo não pode ser negativo")
			}
			item.MinThreshold = *body.MinThreshold
		}

		if err := database.DB.Save(&item).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível atualizar o item")
		}

		audit.WriteLog(audit.LogOptions{
			UserEmail:   auth.UserEmail(c),
			EntityType:  "stock_item",
			EntityID:    item.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Item atualizado: %s", item.Name),
			Before:      before,
			After:       item,
		})

		return c.JSON(toResponse(&item))
	}
}

// DELETE /api/stock-items/:id (somente admin)
func DeleteStockItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var item models.StockItem
		if err := database.DB.First(&item, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Item não encontrado")
		}

		if err := database.DB.Delete(&item).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível remover o item")
		}

		audit.WriteLog(audit.LogOptions{
			UserEmail:   auth.UserEmail(c),
			EntityType:  "stock_item",
			EntityID:    item.ID,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Item removido: %s", item.Name),
			Before:      item,
		})

		return c.SendStatus(fiber.StatusNoContent)
	}
}

// POST /api/stock-items/:id/adjust (editor/admin)
// Ajuste manual de quantidade: delta com sinal (entrada de doação ou correção)
func AdjustStockHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ID inválido")
		}

		var body AdjustStockRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}
		if body.Delta == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Delta não pode ser zero")
		}

		item, err := ApplyDelta(database.DB, uint(id), body.Delta)
		if err != nil {
			var insuf *InsufficientStockError
			switch {
			case errors.As(err, &insuf):
				return c.Status(fiber.StatusConflict).JSON(fiber.Map{
					"error":      insuf.Error(),
					"shortfalls": insuf.Shortfalls,
				})
			case errors.Is(err, ErrItemNotFound):
				return fiber.NewError(fiber.StatusNotFound, "Item não encontrado")
			default:
				return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível ajustar o estoque")
			}
		}

		audit.WriteLog(audit.LogOptions{
			UserEmail:   auth.UserEmail(c),
			EntityType:  "stock_item",
			EntityID:    item.ID,
			Action:      models.AuditActionAdjust,
			Description: fmt.Sprintf("Ajuste de %.2f em %s (novo saldo: %.2f)", body.Delta, item.Name, item.Quantity),
			After:       item,
		})

		return c.JSON(toResponse(item))
	}
}
