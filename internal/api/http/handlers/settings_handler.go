package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-bot/internal/api/dto"
	"github.com/spec-kit/ticket-bot/internal/domain"
	"github.com/spec-kit/ticket-bot/internal/repository"
	apperrors "github.com/spec-kit/ticket-bot/pkg/util"
)

// SettingsHandler manages guild configuration endpoints.
type SettingsHandler struct {
	settings repository.SettingsRepository
}

// NewSettingsHandler constructs handler.
func NewSettingsHandler(settings repository.SettingsRepository) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// GetSettings GET /guilds/:guildID/settings.
func (h *SettingsHandler) GetSettings(c *fiber.Ctx) error {
	settings, err := h.settings.GetSettings(c.UserContext(), c.Params("guildID"))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": dto.SettingsResponseFrom(settings)})
}

// UpdateSettings PUT /guilds/:guildID/settings.
func (h *SettingsHandler) UpdateSettings(c *fiber.Ctx) error {
	var req dto.SettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.TicketLimit < 0 {
		return apperrors.NewValidationError("ticket_limit must not be negative", nil)
	}

	settings := &domain.GuildSettings{
		GuildID: c.Params("guildID"),
		Ticket: domain.TicketSettings{
			LogChannelID:  req.TicketLogChannelID,
			SupportRoleID: req.TicketSupportRoleID,
			Limit:         req.TicketLimit,
		},
		Invite: domain.InviteSettings{
			TrackingEnabled: req.InviteTracking,
		},
	}
	if err := h.settings.UpdateSettings(c.UserContext(), settings); err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": dto.SettingsResponseFrom(settings)})
}
