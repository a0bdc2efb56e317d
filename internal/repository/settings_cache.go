package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-bot/internal/domain"
)

const settingsKeyPrefix = "guild_settings:"

// cachedSettingsRepository layers a Redis read-through cache over another
// SettingsRepository. Cache failures degrade to the underlying store.
type cachedSettingsRepository struct {
	inner  SettingsRepository
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedSettingsRepository wraps inner with a Redis cache. A nil client
// returns inner unchanged.
func NewCachedSettingsRepository(inner SettingsRepository, client *redis.Client, ttl time.Duration, logger *zap.Logger) SettingsRepository {
	if client == nil {
		return inner
	}
	return &cachedSettingsRepository{inner: inner, client: client, ttl: ttl, logger: logger}
}

func (r *cachedSettingsRepository) GetSettings(ctx context.Context, guildID string) (*domain.GuildSettings, error) {
	key := settingsKeyPrefix + guildID

	cached, err := r.client.Get(ctx, key).Bytes()
	if err == nil {
		var settings domain.GuildSettings
		if unmarshalErr := json.Unmarshal(cached, &settings); unmarshalErr == nil {
			return &settings, nil
		}
		// Corrupt entry; fall through to the store and rewrite it.
		r.logger.Warn("discarding corrupt settings cache entry", zap.String("guild_id", guildID))
	} else if err != redis.Nil {
		r.logger.Warn("settings cache read failed", zap.String("guild_id", guildID), zap.Error(err))
	}

	settings, err := r.inner.GetSettings(ctx, guildID)
	if err != nil {
		return nil, err
	}

	if encoded, marshalErr := json.Marshal(settings); marshalErr == nil {
		if setErr := r.client.Set(ctx, key, encoded, r.ttl).Err(); setErr != nil {
			r.logger.Warn("settings cache write failed", zap.String("guild_id", guildID), zap.Error(setErr))
		}
	}
	return settings, nil
}

func (r *cachedSettingsRepository) UpdateSettings(ctx context.Context, settings *domain.GuildSettings) error {
	if err := r.inner.UpdateSettings(ctx, settings); err != nil {
		return err
	}
	if err := r.client.Del(ctx, settingsKeyPrefix+settings.GuildID).Err(); err != nil {
		r.logger.Warn("settings cache invalidation failed", zap.String("guild_id", settings.GuildID), zap.Error(err))
	}
	return nil
}
