package platform

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-bot/internal/config"
)

// Gateway is the REST-only Discord client used by the ticket lifecycle. It
// never opens a gateway websocket; every call hits the HTTP API so channel
// state is always read fresh.
type Gateway struct {
	session *discordgo.Session
	logger  *zap.Logger
	botUser User
}

// NewGateway authenticates the bot session and resolves its own account.
func NewGateway(cfg config.DiscordConfig, logger *zap.Logger) (*Gateway, error) {
	session, err := discordgo.New("Bot " + cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("platform: create session: %w", err)
	}

	me, err := session.User("@me")
	if err != nil {
		return nil, fmt.Errorf("platform: resolve bot account: %w", err)
	}

	logger.Info("connected to discord", zap.String("bot_id", me.ID), zap.String("bot_tag", me.String()))
	return &Gateway{
		session: session,
		logger:  logger,
		botUser: User{ID: me.ID, Tag: me.String(), Bot: me.Bot},
	}, nil
}

// BotUser returns the bot's own account.
func (g *Gateway) BotUser() User {
	return g.botUser
}

// GuildChannels lists every channel in a guild.
func (g *Gateway) GuildChannels(ctx context.Context, guildID string) ([]Channel, error) {
	channels, err := g.session.GuildChannels(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("platform: list channels for guild %s: %w", guildID, err)
	}
	result := make([]Channel, 0, len(channels))
	for _, ch := range channels {
		result = append(result, channelFromAPI(ch))
	}
	return result, nil
}

// Channel fetches a single channel by ID.
func (g *Gateway) Channel(ctx context.Context, channelID string) (*Channel, error) {
	ch, err := g.session.Channel(channelID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("platform: fetch channel %s: %w", channelID, err)
	}
	converted := channelFromAPI(ch)
	return &converted, nil
}

// CreateTicketChannel provisions a guild text channel with its topic and
// permission overwrites written in the same request, so the channel never
// exists without its ticket metadata.
func (g *Gateway) CreateTicketChannel(ctx context.Context, guildID, name, topic string, overwrites []Overwrite) (*Channel, error) {
	apiOverwrites := make([]*discordgo.PermissionOverwrite, 0, len(overwrites))
	for _, overwrite := range overwrites {
		apiOverwrites = append(apiOverwrites, overwriteToAPI(overwrite))
	}

	ch, err := g.session.GuildChannelCreateComplex(guildID, discordgo.GuildChannelCreateData{
		Name:                 name,
		Type:                 discordgo.ChannelTypeGuildText,
		Topic:                topic,
		PermissionOverwrites: apiOverwrites,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("platform: create channel %q in guild %s: %w", name, guildID, err)
	}

	g.logger.Info("created ticket channel",
		zap.String("guild_id", guildID),
		zap.String("channel_id", ch.ID),
		zap.String("name", name),
	)
	converted := channelFromAPI(ch)
	return &converted, nil
}

// DeleteChannel deletes a channel. Deleting a ticket channel destroys the
// ticket; its topic metadata is unrecoverable afterwards.
func (g *Gateway) DeleteChannel(ctx context.Context, channelID string) error {
	if _, err := g.session.ChannelDelete(channelID, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("platform: delete channel %s: %w", channelID, err)
	}
	g.logger.Info("deleted channel", zap.String("channel_id", channelID))
	return nil
}

// ChannelMessages fetches up to limit messages from a channel, newest first
// as the platform returns them.
func (g *Gateway) ChannelMessages(ctx context.Context, channelID string, limit int) ([]Message, error) {
	messages, err := g.session.ChannelMessages(channelID, limit, "", "", "", discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("platform: fetch messages for channel %s: %w", channelID, err)
	}
	result := make([]Message, 0, len(messages))
	for _, msg := range messages {
		result = append(result, messageFromAPI(msg))
	}
	return result, nil
}

// SendChannelMessage posts a message into a channel.
func (g *Gateway) SendChannelMessage(ctx context.Context, channelID string, payload MessagePayload) (*Message, error) {
	sent, err := g.session.ChannelMessageSendComplex(channelID, payloadToAPI(payload), discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("platform: send message to channel %s: %w", channelID, err)
	}
	converted := messageFromAPI(sent)
	return &converted, nil
}

// AddReaction attaches an emoji reaction to a message.
func (g *Gateway) AddReaction(ctx context.Context, channelID, messageID, emoji string) error {
	if err := g.session.MessageReactionAdd(channelID, messageID, emoji, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("platform: react to message %s: %w", messageID, err)
	}
	return nil
}

// SendDirectMessage opens (or reuses) the DM channel with a user and posts
// the payload there.
func (g *Gateway) SendDirectMessage(ctx context.Context, userID string, payload MessagePayload) error {
	dm, err := g.session.UserChannelCreate(userID, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("platform: open DM with user %s: %w", userID, err)
	}
	if _, err := g.session.ChannelMessageSendComplex(dm.ID, payloadToAPI(payload), discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("platform: send DM to user %s: %w", userID, err)
	}
	return nil
}

// User fetches a platform account by ID.
func (g *Gateway) User(ctx context.Context, userID string) (*User, error) {
	user, err := g.session.User(userID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("platform: fetch user %s: %w", userID, err)
	}
	return &User{ID: user.ID, Tag: user.String(), Bot: user.Bot}, nil
}

// Guild fetches a guild by ID.
func (g *Gateway) Guild(ctx context.Context, guildID string) (*Guild, error) {
	guild, err := g.session.Guild(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("platform: fetch guild %s: %w", guildID, err)
	}
	return &Guild{ID: guild.ID, Name: guild.Name}, nil
}

// BotTopRoleID returns the bot's highest-positioned role in a guild, or the
// empty string when the bot only carries @everyone.
func (g *Gateway) BotTopRoleID(ctx context.Context, guildID string) (string, error) {
	member, err := g.session.GuildMember(guildID, g.botUser.ID, discordgo.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("platform: fetch bot member in guild %s: %w", guildID, err)
	}
	guild, err := g.session.Guild(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("platform: fetch guild %s: %w", guildID, err)
	}

	memberRoles := make(map[string]struct{}, len(member.Roles))
	for _, id := range member.Roles {
		memberRoles[id] = struct{}{}
	}

	topID := ""
	topPosition := -1
	for _, role := range guild.Roles {
		if _, ok := memberRoles[role.ID]; !ok {
			continue
		}
		if role.Position > topPosition {
			topPosition = role.Position
			topID = role.ID
		}
	}
	return topID, nil
}

// BotChannelPermissions computes the bot's effective permissions on a
// channel from fresh guild, member, and channel state.
func (g *Gateway) BotChannelPermissions(ctx context.Context, channelID string) (int64, error) {
	ch, err := g.session.Channel(channelID, discordgo.WithContext(ctx))
	if err != nil {
		return 0, fmt.Errorf("platform: fetch channel %s: %w", channelID, err)
	}
	guild, err := g.session.Guild(ch.GuildID, discordgo.WithContext(ctx))
	if err != nil {
		return 0, fmt.Errorf("platform: fetch guild %s: %w", ch.GuildID, err)
	}
	member, err := g.session.GuildMember(ch.GuildID, g.botUser.ID, discordgo.WithContext(ctx))
	if err != nil {
		return 0, fmt.Errorf("platform: fetch bot member in guild %s: %w", ch.GuildID, err)
	}
	return memberPermissions(guild, ch, g.botUser.ID, member.Roles), nil
}

func channelFromAPI(ch *discordgo.Channel) Channel {
	return Channel{
		ID:      ch.ID,
		GuildID: ch.GuildID,
		Name:    ch.Name,
		Topic:   ch.Topic,
		IsText:  ch.Type == discordgo.ChannelTypeGuildText,
	}
}

func messageFromAPI(msg *discordgo.Message) Message {
	converted := Message{
		ID:        msg.ID,
		ChannelID: msg.ChannelID,
		Content:   msg.ContentWithMentionsReplaced(),
		Timestamp: msg.Timestamp,
	}
	if msg.Author != nil {
		converted.AuthorID = msg.Author.ID
		converted.AuthorTag = msg.Author.String()
	}
	for _, attachment := range msg.Attachments {
		converted.AttachmentURLs = append(converted.AttachmentURLs, attachment.ProxyURL)
	}
	return converted
}

func overwriteToAPI(overwrite Overwrite) *discordgo.PermissionOverwrite {
	overwriteType := discordgo.PermissionOverwriteTypeRole
	if overwrite.Type == OverwriteMember {
		overwriteType = discordgo.PermissionOverwriteTypeMember
	}
	return &discordgo.PermissionOverwrite{
		ID:    overwrite.ID,
		Type:  overwriteType,
		Allow: overwrite.Allow,
		Deny:  overwrite.Deny,
	}
}

func payloadToAPI(payload MessagePayload) *discordgo.MessageSend {
	send := &discordgo.MessageSend{Content: payload.Content}
	if payload.Embed != nil {
		embed := &discordgo.MessageEmbed{
			Description: payload.Embed.Description,
			Color:       payload.Embed.Color,
		}
		if payload.Embed.AuthorName != "" {
			embed.Author = &discordgo.MessageEmbedAuthor{Name: payload.Embed.AuthorName}
		}
		if payload.Embed.FooterText != "" {
			embed.Footer = &discordgo.MessageEmbedFooter{Text: payload.Embed.FooterText}
		}
		send.Embeds = []*discordgo.MessageEmbed{embed}
	}
	return send
}
