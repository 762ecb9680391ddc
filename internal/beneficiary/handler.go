package beneficiary

import (
	"fmt"
	"strings"

	"asa-backend/internal/audit"
	"asa-backend/internal/auth"
	"asa-backend/internal/database"
	"asa-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateBeneficiaryRequest struct {
	Name       string `json:"name"`
	Document   string `json:"document"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	FamilySize int    `json:"family_size"`
	Notes      string `json:"notes"`
}

type UpdateBeneficiaryRequest struct {
	Name       *string `json:"name"`
	Document   *string `json:"document"`
	Phone      *string `json:"phone"`
	Address    *string `json:"address"`
	FamilySize *int    `json:"family_size"`
	Notes      *string `json:"notes"`
	Active     *bool   `json:"active"`
}

type BeneficiaryResponse struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	Document   string `json:"document"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	FamilySize int    `json:"family_size"`
	Notes      string `json:"notes"`
	Active     bool   `json:"active"`
	CreatedAt  string `json:"created_at"`
}

func toResponse(b *models.Beneficiary) BeneficiaryResponse {
	return BeneficiaryResponse{
		ID:         b.ID,
		Name:       b.Name,
		Document:   b.Document,
		Phone:      b.Phone,
		Address:    b.Address,
		FamilySize: b.FamilySize,
		Notes:      b.Notes,
		Active:     b.Active,
		CreatedAt:  b.CreatedAt.Format("2006-01-02"),
	}
}

// GET /api/beneficiaries?active=true&q=maria
func ListBeneficiariesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Beneficiary{})

		if c.Query("active") == "true" {
			dbq = dbq.Where("active = ?", true)
		}
		if q := strings.TrimSpace(c.Query("q")); q != "" {
			dbq = dbq.Where("name ILIKE ?", "%"+q+"%")
		}

		var beneficiaries []models.Beneficiary
		if err := dbq.Order("name asc").Find(&beneficiaries).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar os beneficiários")
		}

		res := make([]BeneficiaryResponse, 0, len(beneficiaries))
		for i := range beneficiaries {
			res = append(res, toResponse(&beneficiaries[i]))
		}
		return c.JSON(res)
	}
}

// GET /api/beneficiaries/:id
func GetBeneficiaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var b models.Beneficiary
		if err := database.DB.First(&b, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Beneficiário não encontrado")
		}
		return c.JSON(toResponse(&b))
	}
}

// POST /api/beneficiaries (editor/admin)
func CreateBeneficiaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateBeneficiaryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Nome é obrigatório")
		}
		if body.FamilySize <= 0 {
			body.FamilySize = 1
		}

		b := models.Beneficiary{
			Name:       body.Name,
			Document:   strings.TrimSpace(body.Document),
			Phone:      strings.TrimSpace(body.Phone),
			Address:    strings.TrimSpace(body.Address),
			FamilySize: body.FamilySize,
			Notes:      body.Notes,
			Active:     true,
		}

		if err := database.DB.Create(&b).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível cadastrar o beneficiário")
		}

		audit.WriteLog(audit.LogOptions{
			UserEmail:   auth.UserEmail(c),
			EntityType:  "beneficiary",
			EntityID:    b.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Beneficiário cadastrado: %s", b.Name),
			After:       b,
		})

		return c.Status(fiber.StatusCreated).JSON(toResponse(&b))
	}
}

// PUT /api/beneficiaries/:id (editor/admin)
func UpdateBeneficiaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var b models.Beneficiary
		if err := database.DB.First(&b, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Beneficiário não encontrado")
		}
		before := b

		var body UpdateBeneficiaryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Nome não pode ser vazio")
			}
			b.Name = name
		}
		if body.Document != nil {
			b.Document = strings.TrimSpace(*body.Document)
		}
		if body.Phone != nil {
			b.Phone = strings.TrimSpace(*body.Phone)
		}
		if body.Address != nil {
			b.Address = strings.TrimSpace(*body.Address)
		}
		if body.FamilySize != nil {
			if *body.FamilySize <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Tamanho da família deve ser pelo menos 1")
			}
			b.FamilySize = *body.FamilySize
		}
		if body.Notes != nil {
			b.Notes = *body.Notes
		}
		if body.Active != nil {
			b.Active = *body.Active
		}

		if err := database.DB.Save(&b).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível atualizar o beneficiário")
		}

		audit.WriteLog(audit.LogOptions{
			UserEmail:   auth.UserEmail(c),
			EntityType:  "beneficiary",
			EntityID:    b.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Beneficiário atualizado: %s", b.Name),
			Before:      before,
			After:       b,
		})

		return c.JSON(toResponse(&b))
	}
}

// DELETE /api/beneficiaries/:id (editor/admin)
func DeleteBeneficiaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var b models.Beneficiary
		if err := database.DB.First(&b, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Beneficiário não encontrado")
		}

		// Beneficiário com entrega vinculada não some do histórico
		var assignmentCount int64
		database.DB.Model(&models.DeliveryAssignment{}).Where("beneficiary_id = ?", b.ID).Count(&assignmentCount)
		if assignmentCount > 0 {
			return fiber.NewError(fiber.StatusConflict, "Beneficiário tem entregas vinculadas; desative em vez de excluir")
		}

		if err := database.DB.Delete(&b).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível excluir o beneficiário")
		}

		audit.WriteLog(audit.LogOptions{
			UserEmail:   auth.UserEmail(c),
			EntityType:  "beneficiary",
			EntityID:    b.ID,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Beneficiário excluído: %s", b.Name),
			Before:      b,
		})

		return c.SendStatus(fiber.StatusNoContent)
	}
}
