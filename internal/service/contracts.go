package service

import (
	"context"

	"github.com/spec-kit/ticket-bot/internal/platform"
)

// ChatGateway is the slice of the platform API the ticket lifecycle needs.
// *platform.Gateway implements it; tests substitute stubs.
type ChatGateway interface {
	GuildChannels(ctx context.Context, guildID string) ([]platform.Channel, error)
	Channel(ctx context.Context, channelID string) (*platform.Channel, error)
	CreateTicketChannel(ctx context.Context, guildID, name, topic string, overwrites []platform.Overwrite) (*platform.Channel, error)
	DeleteChannel(ctx context.Context, channelID string) error
	ChannelMessages(ctx context.Context, channelID string, limit int) ([]platform.Message, error)
	SendChannelMessage(ctx context.Context, channelID string, payload platform.MessagePayload) (*platform.Message, error)
	AddReaction(ctx context.Context, channelID, messageID, emoji string) error
	SendDirectMessage(ctx context.Context, userID string, payload platform.MessagePayload) error
	User(ctx context.Context, userID string) (*platform.User, error)
	Guild(ctx context.Context, guildID string) (*platform.Guild, error)
	BotTopRoleID(ctx context.Context, guildID string) (string, error)
	BotChannelPermissions(ctx context.Context, channelID string) (int64, error)
}

// ArchiveClient uploads a transcript and returns its retrievable URL.
type ArchiveClient interface {
	PostToBin(ctx context.Context, content, title string) (string, error)
}
