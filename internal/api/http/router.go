package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-bot/internal/api/http/handlers"
	"github.com/spec-kit/ticket-bot/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Tickets        *handlers.TicketsHandler
	Settings       *handlers.SettingsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/token", cfg.Auth.IssueToken)

	protected := app.Group("", cfg.AuthMiddleware.Handle)
	protected.Post("/guilds/:guildID/tickets", cfg.Tickets.OpenTicket)
	protected.Get("/guilds/:guildID/tickets", cfg.Tickets.ListTickets)
	protected.Post("/guilds/:guildID/tickets/close-all", cfg.Tickets.CloseAllTickets)
	protected.Post("/channels/:channelID/close", cfg.Tickets.CloseTicket)

	protected.Get("/guilds/:guildID/settings", cfg.Settings.GetSettings)
	protected.Put("/guilds/:guildID/settings", cfg.Settings.UpdateSettings)
}
