package basket

import (
	"errors"
	"fmt"

	"asa-backend/internal/audit"
	"asa-backend/internal/auth"
	"asa-backend/internal/database"
	"asa-backend/internal/inventory"
	"asa-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type ConfigurationResponse struct {
	Name        string       `json:"name"`
	Lines       []RecipeLine `json:"lines"`
	Feasibility int          `json:"feasibility"`
}

type AddLineRequest struct {
	StockItemID      uint    `json:"stock_item_id"`
	QuantityRequired float64 `json:"quantity_required"`
}

type UpdateLineRequest struct {
	QuantityRequired float64 `json:"quantity_required"`
}

type RenameRequest struct {
	Name string `json:"name"`
}

type AssembleRequest struct {
	Quantity int `json:"quantity"`
}

type SetCountRequest struct {
	Count int64 `json:"count"`
}

// Traduz os erros do núcleo para status HTTP. Falta de estoque vai com a
// lista completa de faltas no corpo.
func mapError(c *fiber.Ctx, err error) error {
	var insuf *inventory.InsufficientStockError
	switch {
	case errors.As(err, &insuf):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":      insuf.Error(),
			"shortfalls": insuf.Shortfalls,
		})
	case errors.Is(err, ErrDuplicateLine):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, ErrLineNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, ErrEmptyConfiguration):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, inventory.ErrInvalidQuantity):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, inventory.ErrItemNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "Erro interno ao processar a cesta")
	}
}

func configResponse(store Store) (*ConfigurationResponse, error) {
	cfg, err := store.LoadConfiguration()
	if err != nil {
		return nil, err
	}
	items, err := store.ListStockItems()
	if err != nil {
		return nil, err
	}
	return &ConfigurationResponse{
		Name:        cfg.Name,
		Lines:       cfg.Lines,
		Feasibility: ComputeFeasibility(cfg, items),
	}, nil
}

// GET /api/basket-config
func GetConfigHandler(store Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := configResponse(store)
		if err != nil {
			return mapError(c, err)
		}
		return c.JSON(res)
	}
}

// PUT /api/basket-config/name (editor/admin)
func RenameConfigHandler(store Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RenameRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		cfg, err := store.LoadConfiguration()
		if err != nil {
			return mapError(c, err)
		}
		if err := cfg.Rename(body.Name); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := store.SaveConfiguration(cfg); err != nil {
			return mapError(c, err)
		}

		audit.WriteLog(audit.LogOptions{
			UserEmail:   auth.UserEmail(c),
			EntityType:  "basket_config",
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Receita renomeada para %q", cfg.Name),
		})

		res, err := configResponse(store)
		if err != nil {
			return mapError(c, err)
		}
		return c.JSON(res)
	}
}

// POST /api/basket-config/lines (editor/admin)
func AddLineHandler(store Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body AddLineRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}
		if body.StockItemID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "stock_item_id é obrigatório")
		}

		// O item precisa existir AGORA; se for removido depois, a linha fica
		// e derruba a viabilidade para zero
		item, err := store.GetStockItem(body.StockItemID)
		if err != nil {
			return mapError(c, err)
		}

		cfg, err := store.LoadConfiguration()
		if err != nil {
			return mapError(c, err)
		}
		if err := cfg.AddLine(body.StockItemID, body.QuantityRequired); err != nil {
			return mapError(c, err)
		}
		if err := store.SaveConfiguration(cfg); err != nil {
			return mapError(c, err)
		}

		audit.WriteLog(audit.LogOptions{
			UserEmail:   auth.UserEmail(c),
			EntityType:  "basket_config",
			EntityID:    item.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Linha adicionada: %s (%.2f por cesta)", item.Name, body.QuantityRequired),
		})

		res, err := configResponse(store)
		if err != nil {
			return mapError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// PUT /api/basket-config/lines/:itemId (editor/admin)
func UpdateLineHandler(store Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		itemID, err := c.ParamsInt("itemId")
		if err != nil || itemID <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ID inválido")
		}

		var body UpdateLineRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		cfg, err := store.LoadConfiguration()
		if err != nil {
			return mapError(c, err)
		}
		if err := cfg.UpdateLineQuantity(uint(itemID), body.QuantityRequired); err != nil {
			return mapError(c, err)
		}
		if err := store.SaveConfiguration(cfg); err != nil {
			return mapError(c, err)
		}

		audit.WriteLog(audit.LogOptions{
			UserEmail:   auth.UserEmail(c),
			EntityType:  "basket_config",
			EntityID:    uint(itemID),
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Consumo do item %d alterado para %.2f por cesta", itemID, body.QuantityRequired),
		})

		res, err := configResponse(store)
		if err != nil {
			return mapError(c, err)
		}
		return c.JSON(res)
	}
}

// DELETE /api/basket-config/lines/:itemId (editor/admin)
func RemoveLineHandler(store Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		itemID, err := c.ParamsInt("itemId")
		if err != nil || itemID <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ID inválido")
		}

		cfg, err := store.LoadConfiguration()
		if err != nil {
			return mapError(c, err)
		}
		if err := cfg.RemoveLine(uint(itemID)); err != nil {
			return mapError(c, err)
		}
		if err := store.SaveConfiguration(cfg); err != nil {
			return mapError(c, err)
		}

		audit.WriteLog(audit.LogOptions{
			UserEmail:   auth.UserEmail(c),
			EntityType:  "basket_config",
			EntityID:    uint(itemID),
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Linha do item %d removida da receita", itemID),
		})

		res, err := configResponse(store)
		if err != nil {
			return mapError(c, err)
		}
		return c.JSON(res)
	}
}

// GET /api/basket-config/feasibility
func FeasibilityHandler(assembler *Assembler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		feasible, err := assembler.Feasibility()
		if err != nil {
			return mapError(c, err)
		}
		return c.JSON(fiber.Map{"feasibility": feasible})
	}
}

// POST /api/baskets/assemble (editor/admin)
func AssembleHandler(assembler *Assembler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body AssembleRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		result, err := assembler.Assemble(body.Quantity, auth.UserEmail(c))
		if err != nil {
			return mapError(c, err)
		}

		audit.WriteLog(audit.LogOptions{
			UserEmail:   auth.UserEmail(c),
			EntityType:  "assembly",
			Action:      models.AuditActionAssemble,
			Description: fmt.Sprintf("%d cesta(s) montada(s), total acumulado %d (ref %s)", body.Quantity, result.NewCount, result.Reference),
			After:       result,
		})

		return c.JSON(result)
	}
}

// GET /api/baskets/assemblies
func ListAssembliesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var records []models.AssemblyRecord
		if err := database.DB.Order("created_at desc").Limit(100).Find(&records).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar as montagens")
		}
		return c.JSON(records)
	}
}

// GET /api/assembled-count
func GetAssembledCountHandler(store Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		count, err := store.AssembledCount()
		if err != nil {
			return mapError(c, err)
		}
		return c.JSON(fiber.Map{"count": count})
	}
}

// PUT /api/assembled-count (somente admin — correção manual do acumulado)
func SetAssembledCountHandler(store Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body SetCountRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		before, err := store.AssembledCount()
		if err != nil {
			return mapError(c, err)
		}
		if err := store.SetAssembledCount(body.Count); err != nil {
			return mapError(c, err)
		}

		audit.WriteLog(audit.LogOptions{
			UserEmail:   auth.UserEmail(c),
			EntityType:  "assembly_counter",
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Contador ajustado manualmente de %d para %d", before, body.Count),
		})

		return c.JSON(fiber.Map{"count": body.Count})
	}
}
