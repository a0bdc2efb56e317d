package domain

// GuildSettings is the per-guild configuration row. The ticket lifecycle
// reads it for the audit log channel; everything else is operator-managed.
type GuildSettings struct {
	GuildID string         `json:"guild_id"`
	Ticket  TicketSettings `json:"ticket"`
	Invite  InviteSettings `json:"invite"`
}

// TicketSettings configures ticket behavior for a guild.
type TicketSettings struct {
	LogChannelID  string `json:"log_channel_id"`
	SupportRoleID string `json:"support_role_id"`
	Limit         int    `json:"limit"`
}

// InviteSettings configures invite tracking for a guild.
type InviteSettings struct {
	TrackingEnabled bool `json:"tracking_enabled"`
}

// DefaultGuildSettings returns the settings applied to a guild with no row.
func DefaultGuildSettings(guildID string) *GuildSettings {
	return &GuildSettings{
		GuildID: guildID,
		Ticket: TicketSettings{
			Limit: 5,
		},
	}
}
