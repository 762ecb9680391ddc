package delivery

import (
	"fmt"
	"strings"
	"time"

	"asa-backend/internal/audit"
	"asa-backend/internal/auth"
	"asa-backend/internal/database"
	"asa-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateEventRequest struct {
	Title    string `json:"title"`
	Date     string `json:"date"` // "2026-12-20"
	Location string `json:"location"`
	Notes    string `json:"notes"`
}

type UpdateEventRequest struct {
	Title    *string                `json:"title"`
	Date     *string                `json:"date"`
	Location *string                `json:"location"`
	Status   *models.DeliveryStatus `json:"status"`
	Notes    *string                `json:"notes"`
}

type AddAssignmentRequest struct {
	BeneficiaryID uint `json:"beneficiary_id"`
	Baskets       int  `json:"baskets"`
}

type AssignmentResponse struct {
	ID              uint   `json:"id"`
	BeneficiaryID   uint   `json:"beneficiary_id"`
	BeneficiaryName string `json:"beneficiary_name"`
	Baskets         int    `json:"baskets"`
	Delivered       bool   `json:"delivered"`
}

type EventResponse struct {
	ID          uint                  `json:"id"`
	Title       string                `json:"title"`
	Date        string                `json:"date"`
	Location    string                `json:"location"`
	Status      models.DeliveryStatus `json:"status"`
	Notes       string                `json:"notes"`
	Assignments []AssignmentResponse  `json:"assignments"`
}

func toResponse(e *models.DeliveryEvent) EventResponse {
	assignments := make([]AssignmentResponse, 0, len(e.Assignments))
	for _, a := range e.Assignments {
		assignments = append(assignments, AssignmentResponse{
			ID:              a.ID,
			BeneficiaryID:   a.BeneficiaryID,
			BeneficiaryName: a.Beneficiary.Name,
			Baskets:         a.Baskets,
			Delivered:       a.Delivered,
		})
	}
	return EventResponse{
		ID:          e.ID,
		Title:       e.Title,
		Date:        e.Date.Format("2006-01-02"),
		Location:    e.Location,
		Status:      e.Status,
		Notes:       e.Notes,
		Assignments: assignments,
	}
}

// GET /api/delivery-events?status=scheduled
func ListEventsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.DeliveryEvent{}).
			Preload("Assignments.Beneficiary")

		if status := c.Query("status"); status != "" {
			st := models.DeliveryStatus(status)
			if !st.Valid() {
				return fiber.NewError(fiber.StatusBadRequest, "Status inválido")
			}
			dbq = dbq.Where("status = ?", st)
		}

		var events []models.DeliveryEvent
		if err := dbq.Order("date desc").Find(&events).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar os eventos")
		}

		res := make([]EventResponse, 0, len(events))
		for i := range events {
			res = append(res, toResponse(&events[i]))
		}
		return c.JSON(res)
	}
}

// GET /api/delivery-events/:id
func GetEventHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var event models.DeliveryEvent
		if err := database.DB.Preload("Assignments.Beneficiary").First(&event, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Evento não encontrado")
		}
		return c.JSON(toResponse(&event))
	}
}

// POST /api/delivery-events (editor/admin)
func CreateEventHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateEventRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		body.Title = strings.TrimSpace(body.Title)
		if body.Title == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Título é obrigatório")
		}

		d, err := time.Parse("2006-01-02", body.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Data deve estar no formato 'YYYY-MM-DD'")
		}

		event := models.DeliveryEvent{
			Title:    body.Title,
			Date:     d,
			Location: strings.TrimSpace(body.Location),
			Status:   models.DeliveryScheduled,
			Notes:    body.Notes,
		}

		if err := database.DB.Create(&event).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível criar o evento")
		}

		audit.WriteLog(audit.LogOptions{
			UserEmail:   auth.UserEmail(c),
			EntityType:  "delivery_event",
			EntityID:    event.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Evento de entrega criado: %s (%s)", event.Title, body.Date),
			After:       event,
		})

		return c.Status(fiber.StatusCreated).JSON(toResponse(&event))
	}
}

// PUT /api/delivery-events/:id (editor/admin)
// Atualiza campos pontualmente — nunca apaga e recria o evento inteiro
func UpdateEventHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var event models.DeliveryEvent
		if err := database.DB.Preload("Assignments.Beneficiary").First(&event, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Evento não encontrado")
		}
		before := event

		var body UpdateEventRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		if body.Title != nil {
			title := strings.TrimSpace(*body.Title)
			if title == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Título não pode ser vazio")
			}
			event.Title = title
		}
		if body.Date != nil {
			d, err := time.Parse("2006-01-02", *body.Date)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Data deve estar no formato 'YYYY-MM-DD'")
			}
			event.Date = d
		}
		if body.Location != nil {
			event.Location = strings.TrimSpace(*body.Location)
		}
		if body.Status != nil {
			if !body.Status.Valid() {
				return fiber.NewError(fiber.StatusBadRequest, "Status inválido (scheduled, completed, canceled)")
			}
			event.Status = *body.Status
		}
		if body.Notes != nil {
			event.Notes = *body.Notes
		}

		if err := database.DB.Save(&event).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível atualizar o evento")
		}

		audit.WriteLog(audit.LogOptions{
			UserEmail:   auth.UserEmail(c),
			EntityType:  "delivery_event",
			EntityID:    event.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Evento atualizado: %s (%s)", event.Title, event.Status),
			Before:      before,
			After:       event,
		})

		return c.JSON(toResponse(&event))
	}
}

// DELETE /api/delivery-events/:id (editor/admin)
func DeleteEventHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var event models.DeliveryEvent
		if err := database.DB.First(&event, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Evento não encontrado")
		}

		if event.Status == models.DeliveryCompleted {
			return fiber.NewError(fiber.StatusConflict, "Evento concluído não pode ser excluído")
		}

		// Assignments caem junto via OnDelete:CASCADE
		if err := database.DB.Delete(&event).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível excluir o evento")
		}

		audit.WriteLog(audit.LogOptions{
			UserEmail:   auth.UserEmail(c),
			EntityType:  "delivery_event",
			EntityID:    event.ID,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Evento excluído: %s", event.Title),
			Before:      event,
		})

		return c.SendStatus(fiber.StatusNoContent)
	}
}

// POST /api/delivery-events/:id/assignments (editor/admin)
func AddAssignmentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var event models.DeliveryEvent
		if err := database.DB.First(&event, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Evento não encontrado")
		}
		if event.Status != models.DeliveryScheduled {
			return fiber.NewError(fiber.StatusConflict, "Só eventos agendados recebem beneficiários")
		}

		var body AddAssignmentRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}
		if body.Baskets <= 0 {
			body.Baskets = 1
		}

		var b models.Beneficiary
		if err := database.DB.First(&b, "id = ?", body.BeneficiaryID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Beneficiário não encontrado")
		}

		var existing models.DeliveryAssignment
		if err := database.DB.Where("delivery_event_id = ? AND beneficiary_id = ?", event.ID, b.ID).
			First(&existing).Error; err == nil {
			return fiber.NewError(fiber.StatusConflict, "Beneficiário já está neste evento")
		}

		assignment := models.DeliveryAssignment{
			DeliveryEventID: event.ID,
			BeneficiaryID:   b.ID,
			Baskets:         body.Baskets,
		}
		if err := database.DB.Create(&assignment).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível vincular o beneficiário")
		}

		audit.WriteLog(audit.LogOptions{
			UserEmail:   auth.UserEmail(c),
			EntityType:  "delivery_assignment",
			EntityID:    assignment.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("%s vinculado ao evento %s (%d cesta(s))", b.Name, event.Title, assignment.Baskets),
		})

		return c.Status(fiber.StatusCreated).JSON(AssignmentResponse{
			ID:              assignment.ID,
			BeneficiaryID:   b.ID,
			BeneficiaryName: b.Name,
			Baskets:         assignment.Baskets,
			Delivered:       false,
		})
	}
}

// PUT /api/delivery-events/:id/assignments/:assignmentId/delivered (editor/admin)
func MarkDeliveredHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		eventID := c.Params("id")
		assignmentID := c.Params("assignmentId")

		var assignment models.DeliveryAssignment
		if err := database.DB.Preload("Beneficiary").
			First(&assignment, "id = ? AND delivery_event_id = ?", assignmentID, eventID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Vínculo não encontrado")
		}

		if assignment.Delivered {
			return fiber.NewError(fiber.StatusConflict, "Entrega já registrada")
		}

		assignment.Delivered = true
		if err := database.DB.Save(&assignment).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível registrar a entrega")
		}

		audit.WriteLog(audit.LogOptions{
			UserEmail:   auth.UserEmail(c),
			EntityType:  "delivery_assignment",
			EntityID:    assignment.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Entrega registrada para %s", assignment.Beneficiary.Name),
		})

		return c.JSON(AssignmentResponse{
			ID:              assignment.ID,
			BeneficiaryID:   assignment.BeneficiaryID,
			BeneficiaryName: assignment.Beneficiary.Name,
			Baskets:         assignment.Baskets,
			Delivered:       true,
		})
	}
}
