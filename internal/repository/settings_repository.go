package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/ticket-bot/internal/domain"
)

// SettingsRepository encapsulates guild configuration persistence. The
// ticket lifecycle only reads; updates come from the operator API.
type SettingsRepository interface {
	GetSettings(ctx context.Context, guildID string) (*domain.GuildSettings, error)
	UpdateSettings(ctx context.Context, settings *domain.GuildSettings) error
}

type settingsRepository struct {
	pool *pgxpool.Pool
}

// NewSettingsRepository instantiates repository.
func NewSettingsRepository(pool *pgxpool.Pool) SettingsRepository {
	return &settingsRepository{pool: pool}
}

// GetSettings loads a guild's settings, falling back to defaults for guilds
// that have never been configured.
func (r *settingsRepository) GetSettings(ctx context.Context, guildID string) (*domain.GuildSettings, error) {
	if r.pool == nil {
		return domain.DefaultGuildSettings(guildID), nil
	}

	const query = `
        SELECT guild_id, ticket_log_channel_id, ticket_support_role_id, ticket_limit, invite_tracking
        FROM guild_settings WHERE guild_id=$1`

	var settings domain.GuildSettings
	err := r.pool.QueryRow(ctx, query, guildID).Scan(
		&settings.GuildID,
		&settings.Ticket.LogChannelID,
		&settings.Ticket.SupportRoleID,
		&settings.Ticket.Limit,
		&settings.Invite.TrackingEnabled,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.DefaultGuildSettings(guildID), nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// UpdateSettings upserts a guild's settings row.
func (r *settingsRepository) UpdateSettings(ctx context.Context, settings *domain.GuildSettings) error {
	if r.pool == nil {
		return errors.New("settings store not configured")
	}

	const query = `
        INSERT INTO guild_settings (guild_id, ticket_log_channel_id, ticket_support_role_id, ticket_limit, invite_tracking, updated_at)
        VALUES ($1,$2,$3,$4,$5,NOW())
        ON CONFLICT (guild_id) DO UPDATE SET
            ticket_log_channel_id=EXCLUDED.ticket_log_channel_id,
            ticket_support_role_id=EXCLUDED.ticket_support_role_id,
            ticket_limit=EXCLUDED.ticket_limit,
            invite_tracking=EXCLUDED.invite_tracking,
            updated_at=NOW()`
	_, err := r.pool.Exec(ctx, query,
		settings.GuildID,
		settings.Ticket.LogChannelID,
		settings.Ticket.SupportRoleID,
		settings.Ticket.Limit,
		settings.Invite.TrackingEnabled,
	)
	return err
}
