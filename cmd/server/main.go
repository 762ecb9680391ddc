package main

import (
	"log"
	"strings"

	"asa-backend/internal/audit"
	"asa-backend/internal/auth"
	"asa-backend/internal/basket"
	"asa-backend/internal/beneficiary"
	"asa-backend/internal/config"
	"asa-backend/internal/database"
	"asa-backend/internal/delivery"
	"asa-backend/internal/inventory"
	"asa-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	store := basket.NewGormStore(database.DB)
	assembler := basket.NewAssembler(store)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Erro inesperado:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Erro inesperado no servidor",
			})
		},
	})

	app.Use(logger.New())

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Tudo protegido — os tokens vêm do provedor de autenticação hospedado
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	// Leitura (qualquer papel autenticado)
	protected.Get("/stock-items", inventory.ListStockItemsHandler())
	protected.Get("/stock-items/:id", inventory.GetStockItemHandler())
	protected.Get("/basket-config", basket.GetConfigHandler(store))
	protected.Get("/basket-config/feasibility", basket.FeasibilityHandler(assembler))
	protected.Get("/baskets/assemblies", basket.ListAssembliesHandler())
	protected.Get("/assembled-count", basket.GetAssembledCountHandler(store))
	protected.Get("/beneficiaries", beneficiary.ListBeneficiariesHandler())
	protected.Get("/beneficiaries/:id", beneficiary.GetBeneficiaryHandler())
	protected.Get("/delivery-events", delivery.ListEventsHandler())
	protected.Get("/delivery-events/:id", delivery.GetEventHandler())

	// Escrita (editor ou admin)
	editor := protected.Group("")
	editor.Use(auth.RequireRole(models.RoleEditor, models.RoleAdmin))

	// Despensa
	editor.Post("/stock-items", inventory.CreateStockItemHandler())
	editor.Put("/stock-items/:id", inventory.UpdateStockItemHandler())
	editor.Post("/stock-items/:id/adjust", inventory.AdjustStockHandler())

	// Receita da cesta
	editor.Put("/basket-config/name", basket.RenameConfigHandler(store))
	editor.Post("/basket-config/lines", basket.AddLineHandler(store))
	editor.Put("/basket-config/lines/:itemId", basket.UpdateLineHandler(store))
	editor.Delete("/basket-config/lines/:itemId", basket.RemoveLineHandler(store))

	// Montagem de cestas
	editor.Post("/baskets/assemble", basket.AssembleHandler(assembler))

	// Beneficiários
	editor.Post("/beneficiaries", beneficiary.CreateBeneficiaryHandler())
	editor.Put("/beneficiaries/:id", beneficiary.UpdateBeneficiaryHandler())
	editor.Delete("/beneficiaries/:id", beneficiary.DeleteBeneficiaryHandler())

	// Eventos de entrega
	editor.Post("/delivery-events", delivery.CreateEventHandler())
	editor.Put("/delivery-events/:id", delivery.UpdateEventHandler())
	editor.Delete("/delivery-events/:id", delivery.DeleteEventHandler())
	editor.Post("/delivery-events/:id/assignments", delivery.AddAssignmentHandler())
	editor.Put("/delivery-events/:id/assignments/:assignmentId/delivered", delivery.MarkDeliveredHandler())

	// Somente admin
	adminRoutes := protected.Group("")
	adminRoutes.Use(auth.RequireRole(models.RoleAdmin))

	adminRoutes.Delete("/stock-items/:id", inventory.DeleteStockItemHandler())
	adminRoutes.Put("/assembled-count", basket.SetAssembledCountHandler(store))
	adminRoutes.Get("/audit-logs", audit.ListAuditLogsHandler())

	log.Println("Servidor rodando na porta:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
