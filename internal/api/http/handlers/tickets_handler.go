package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-bot/internal/api/dto"
	"github.com/spec-kit/ticket-bot/internal/service"
	apperrors "github.com/spec-kit/ticket-bot/pkg/util"
)

// TicketsHandler exposes the ticket lifecycle to the command layer.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// OpenTicket POST /guilds/:guildID/tickets.
func (h *TicketsHandler) OpenTicket(c *fiber.Ctx) error {
	var req dto.OpenTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.UserID == "" || strings.TrimSpace(req.Title) == "" {
		return apperrors.NewValidationError("user_id and title required", nil)
	}

	opened := h.service.Open(c.UserContext(), c.Params("guildID"), req.UserID, strings.TrimSpace(req.Title), req.SupportRoleID)
	status := http.StatusCreated
	if !opened {
		status = http.StatusBadGateway
	}
	return c.Status(status).JSON(fiber.Map{"data": dto.OpenTicketResponse{Success: opened}})
}

// ListTickets GET /guilds/:guildID/tickets.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	tickets, err := h.service.Registry().ListOpenTickets(c.UserContext(), c.Params("guildID"))
	if err != nil {
		return apperrors.MapError(err)
	}

	items := make([]dto.TicketSummary, 0, len(tickets))
	for _, channel := range tickets {
		ownerID, title, ok := service.ParseTicketTopic(channel.Topic)
		if !ok {
			continue
		}
		items = append(items, dto.TicketSummary{
			ChannelID:   channel.ID,
			Name:        channel.Name,
			OwnerUserID: ownerID,
			Title:       title,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

// CloseTicket POST /channels/:channelID/close.
func (h *TicketsHandler) CloseTicket(c *fiber.Ctx) error {
	var req dto.CloseTicketRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return apperrors.NewValidationError("invalid payload", nil)
		}
	}

	result := h.service.Close(c.UserContext(), c.Params("channelID"), req.ClosedByUserID, req.Reason)
	status := http.StatusOK
	if !result.Success {
		status = http.StatusConflict
	}
	return c.Status(status).JSON(fiber.Map{"data": result})
}

// CloseAllTickets POST /guilds/:guildID/tickets/close-all.
func (h *TicketsHandler) CloseAllTickets(c *fiber.Ctx) error {
	var req dto.CloseTicketRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return apperrors.NewValidationError("invalid payload", nil)
		}
	}

	succeeded, failed := h.service.CloseAll(c.UserContext(), c.Params("guildID"), req.ClosedByUserID)
	return c.JSON(fiber.Map{"data": dto.CloseAllResponse{Succeeded: succeeded, Failed: failed}})
}
