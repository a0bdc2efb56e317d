package dto

import "github.com/spec-kit/ticket-bot/internal/domain"

// IssueTokenRequest exchanges the operator key for an API token.
type IssueTokenRequest struct {
	Operator string `json:"operator"`
	Key      string `json:"key"`
}

// IssueTokenResponse carries the signed token.
type IssueTokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}

// OpenTicketRequest opens a ticket for a platform user.
type OpenTicketRequest struct {
	UserID        string `json:"user_id"`
	Title         string `json:"title"`
	SupportRoleID string `json:"support_role_id,omitempty"`
}

// OpenTicketResponse reports the open outcome.
type OpenTicketResponse struct {
	Success bool `json:"success"`
}

// CloseTicketRequest closes one ticket channel.
type CloseTicketRequest struct {
	ClosedByUserID string `json:"closed_by_user_id,omitempty"`
	Reason         string `json:"reason,omitempty"`
}

// CloseAllResponse reports aggregate close-all counts.
type CloseAllResponse struct {
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// TicketSummary describes one open ticket derived from channel metadata.
type TicketSummary struct {
	ChannelID   string `json:"channel_id"`
	Name        string `json:"name"`
	OwnerUserID string `json:"owner_user_id"`
	Title       string `json:"title"`
}

// SettingsRequest updates a guild's configuration.
type SettingsRequest struct {
	TicketLogChannelID  string `json:"ticket_log_channel_id"`
	TicketSupportRoleID string `json:"ticket_support_role_id"`
	TicketLimit         int    `json:"ticket_limit"`
	InviteTracking      bool   `json:"invite_tracking"`
}

// SettingsResponse mirrors stored guild configuration.
type SettingsResponse struct {
	GuildID             string `json:"guild_id"`
	TicketLogChannelID  string `json:"ticket_log_channel_id"`
	TicketSupportRoleID string `json:"ticket_support_role_id"`
	TicketLimit         int    `json:"ticket_limit"`
	InviteTracking      bool   `json:"invite_tracking"`
}

// SettingsResponseFrom converts domain settings.
func SettingsResponseFrom(settings *domain.GuildSettings) SettingsResponse {
	return SettingsResponse{
		GuildID:             settings.GuildID,
		TicketLogChannelID:  settings.Ticket.LogChannelID,
		TicketSupportRoleID: settings.Ticket.SupportRoleID,
		TicketLimit:         settings.Ticket.Limit,
		InviteTracking:      settings.Invite.TrackingEnabled,
	}
}
