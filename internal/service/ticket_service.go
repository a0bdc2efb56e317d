package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-bot/internal/domain"
	"github.com/spec-kit/ticket-bot/internal/events"
	"github.com/spec-kit/ticket-bot/internal/platform"
	"github.com/spec-kit/ticket-bot/internal/repository"
)

const (
	// closeEmoji is the closing-affordance reaction on the welcome message.
	closeEmoji = "🔒"

	// historyFetchLimit bounds a single history fetch, matching the
	// platform's per-request maximum.
	historyFetchLimit = 100

	closeAllReason = "force-closing all open tickets"

	embedColor = 0x5865F2

	// requiredClosePermissions must all be held by the bot on a channel
	// before any close side effect runs. ManageChannels covers deletability.
	requiredClosePermissions = platform.PermissionManageChannels |
		platform.PermissionReadMessageHistory |
		platform.PermissionManageMessages
)

// TicketService coordinates the ticket lifecycle. Tickets have no persistent
// record: the backing channel's name and topic are the only source of truth,
// so every operation re-derives state through the Registry.
type TicketService struct {
	gateway    ChatGateway
	registry   *Registry
	archive    ArchiveClient
	settings   repository.SettingsRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	Gateway    ChatGateway
	Registry   *Registry
	Archive    ArchiveClient
	Settings   repository.SettingsRepository
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		gateway:    deps.Gateway,
		registry:   deps.Registry,
		archive:    deps.Archive,
		settings:   deps.Settings,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// Registry exposes the ticket registry for read-only consumers.
func (s *TicketService) Registry() *Registry {
	return s.registry
}

// Open provisions a ticket channel for a user. The sequence number is the
// current open-ticket count plus one, so numbers are reused after closures.
// The channel is created with its topic and overwrites in a single write, so
// there is no window where it exists without ticket metadata. The
// confirmation DM is best-effort and never affects the outcome.
func (s *TicketService) Open(ctx context.Context, guildID, userID, title, supportRoleID string) bool {
	open, err := s.registry.ListOpenTickets(ctx, guildID)
	if err != nil {
		s.logger.Error("open ticket: listing open tickets failed", zap.String("guild_id", guildID), zap.Error(err))
		return false
	}
	sequence := len(open) + 1

	botRoleID, err := s.gateway.BotTopRoleID(ctx, guildID)
	if err != nil {
		s.logger.Error("open ticket: resolving bot role failed", zap.String("guild_id", guildID), zap.Error(err))
		return false
	}
	overwrites := BuildTicketOverwrites(guildID, userID, botRoleID, supportRoleID)

	name := domain.TicketNamePrefix + strconv.Itoa(sequence)
	topic := strings.Join([]string{domain.TicketTopicTag, userID, title}, domain.TicketTopicSep)

	channel, err := s.gateway.CreateTicketChannel(ctx, guildID, name, topic, overwrites)
	if err != nil {
		s.logger.Error("open ticket: channel creation failed", zap.String("guild_id", guildID), zap.Error(err))
		return false
	}

	welcome := platform.MessagePayload{
		Content: mention(userID),
		Embed: &platform.Embed{
			AuthorName: "Ticket #" + strconv.Itoa(sequence),
			Description: fmt.Sprintf("Hello %s\nSupport will be with you shortly\n\n**Ticket reason:**\n%s",
				mention(userID), title),
			FooterText: "react with the lock below to close your ticket",
			Color:      embedColor,
		},
	}
	sent, err := s.gateway.SendChannelMessage(ctx, channel.ID, welcome)
	if err != nil {
		s.logger.Error("open ticket: welcome message failed", zap.String("channel_id", channel.ID), zap.Error(err))
		return false
	}
	if err := s.gateway.AddReaction(ctx, channel.ID, sent.ID, closeEmoji); err != nil {
		s.logger.Error("open ticket: close reaction failed", zap.String("channel_id", channel.ID), zap.Error(err))
		return false
	}

	s.sendOpenConfirmation(ctx, guildID, userID, title, sequence, channel.ID, sent.ID)

	s.publishEvent(ctx, events.Event{
		Type:      events.EventTicketOpened,
		GuildID:   guildID,
		ChannelID: channel.ID,
		Payload: events.TicketOpenedPayload{
			OwnerUserID:    userID,
			Title:          title,
			SequenceNumber: sequence,
		},
	})
	return true
}

// Close archives and deletes a ticket channel. Preconditions are checked
// before any mutation; archival and notification failures are logged and
// swallowed. The topic metadata is parsed before deletion because deletion
// destroys it.
func (s *TicketService) Close(ctx context.Context, channelID, closedByUserID, reason string) domain.CloseResult {
	channel, err := s.gateway.Channel(ctx, channelID)
	if err != nil {
		s.logger.Error("close ticket: channel fetch failed", zap.String("channel_id", channelID), zap.Error(err))
		return domain.CloseFailed(domain.CloseFailureUnknown, "unexpected error")
	}

	perms, err := s.gateway.BotChannelPermissions(ctx, channelID)
	if err != nil {
		s.logger.Error("close ticket: permission check failed", zap.String("channel_id", channelID), zap.Error(err))
		return domain.CloseFailed(domain.CloseFailureUnknown, "unexpected error")
	}
	if !platform.HasPermissions(perms, requiredClosePermissions) {
		return domain.CloseFailed(domain.CloseFailurePermissionDenied, "missing permissions")
	}

	settings, err := s.settings.GetSettings(ctx, channel.GuildID)
	if err != nil {
		// Only the audit log target is lost; the close proceeds.
		s.logger.Warn("close ticket: settings unavailable", zap.String("guild_id", channel.GuildID), zap.Error(err))
		settings = nil
	}

	messages, err := s.gateway.ChannelMessages(ctx, channelID, historyFetchLimit)
	if err != nil {
		s.logger.Error("close ticket: history fetch failed", zap.String("channel_id", channelID), zap.Error(err))
		s.publishCloseFailed(ctx, channel, domain.CloseFailureHistoryFetch, "failed to fetch message history")
		return domain.CloseFailed(domain.CloseFailureHistoryFetch, "failed to fetch message history")
	}
	transcript := RenderTranscript(messages)

	archiveURL, err := s.archive.PostToBin(ctx, transcript, "Ticket logs for "+channel.Name)
	if err != nil {
		s.logger.Warn("close ticket: transcript upload failed", zap.String("channel_id", channelID), zap.Error(err))
		archiveURL = ""
	}

	details := s.registry.ParseTicketMetadata(ctx, *channel)
	if details == nil {
		details = &domain.TicketDetails{}
	}

	closerTag := ""
	if closedByUserID != "" {
		if closer, userErr := s.gateway.User(ctx, closedByUserID); userErr == nil {
			closerTag = closer.Tag
		}
	}
	summary := closeSummary(details, closerTag, reason, archiveURL)

	if err := s.gateway.DeleteChannel(ctx, channelID); err != nil {
		s.logger.Error("close ticket: channel deletion failed", zap.String("channel_id", channelID), zap.Error(err))
		s.publishCloseFailed(ctx, channel, domain.CloseFailureDeletion, "failed to delete channel")
		return domain.CloseFailed(domain.CloseFailureDeletion, "failed to delete channel")
	}

	closedEmbed := platform.MessagePayload{
		Embed: &platform.Embed{
			AuthorName:  "Ticket Closed",
			Description: summary,
			Color:       embedColor,
		},
	}
	if details.OwnerUserID != "" && details.OwnerTag != "" {
		if err := s.gateway.SendDirectMessage(ctx, details.OwnerUserID, closedEmbed); err != nil {
			s.logger.Warn("close ticket: owner DM failed", zap.String("owner_user_id", details.OwnerUserID), zap.Error(err))
		}
	}
	if settings != nil && settings.Ticket.LogChannelID != "" {
		if _, err := s.gateway.SendChannelMessage(ctx, settings.Ticket.LogChannelID, closedEmbed); err != nil {
			s.logger.Warn("close ticket: log channel delivery failed", zap.String("log_channel_id", settings.Ticket.LogChannelID), zap.Error(err))
		}
	}

	s.publishEvent(ctx, events.Event{
		Type:      events.EventTicketClosed,
		GuildID:   channel.GuildID,
		ChannelID: channel.ID,
		Payload: events.TicketClosedPayload{
			OwnerUserID:    details.OwnerUserID,
			Title:          details.Title,
			ClosedByUserID: closedByUserID,
			Reason:         reason,
			ArchiveURL:     archiveURL,
		},
	})
	return domain.CloseSucceeded()
}

// CloseAll force-closes every open ticket in a guild sequentially and
// returns the success and failure counts. Sequential execution keeps the
// archival and notification services under their rate limits.
func (s *TicketService) CloseAll(ctx context.Context, guildID, actorUserID string) (int, int) {
	open, err := s.registry.ListOpenTickets(ctx, guildID)
	if err != nil {
		s.logger.Error("close all: listing open tickets failed", zap.String("guild_id", guildID), zap.Error(err))
		return 0, 0
	}

	succeeded, failed := 0, 0
	for _, channel := range open {
		result := s.Close(ctx, channel.ID, actorUserID, closeAllReason)
		if result.Success {
			succeeded++
		} else {
			failed++
		}
	}

	s.publishEvent(ctx, events.Event{
		Type:    events.EventTicketsPurged,
		GuildID: guildID,
		Payload: events.TicketsPurgedPayload{
			ActorUserID: actorUserID,
			Succeeded:   succeeded,
			Failed:      failed,
		},
	})
	return succeeded, failed
}

// sendOpenConfirmation DMs the opener a summary with a deep link to the
// ticket channel. Every failure here is swallowed: the ticket is already
// open and must stay open.
func (s *TicketService) sendOpenConfirmation(ctx context.Context, guildID, userID, title string, sequence int, channelID, messageID string) {
	guildName := guildID
	if guild, err := s.gateway.Guild(ctx, guildID); err == nil {
		guildName = guild.Name
	}

	description := fmt.Sprintf("**Server:** %s\n**Title:** %s\n**Ticket:** #%d\n\n[View channel](%s)",
		guildName, title, sequence, platform.MessageLink(guildID, channelID, messageID))
	payload := platform.MessagePayload{
		Embed: &platform.Embed{
			AuthorName:  "Ticket Created",
			Description: description,
			Color:       embedColor,
		},
	}
	if err := s.gateway.SendDirectMessage(ctx, userID, payload); err != nil {
		s.logger.Debug("open ticket: confirmation DM failed", zap.String("user_id", userID), zap.Error(err))
	}
}

func closeSummary(details *domain.TicketDetails, closerTag, reason, archiveURL string) string {
	opener := details.OwnerTag
	if opener == "" {
		opener = domain.PlaceholderUserGone
	}
	closer := closerTag
	if closer == "" {
		closer = domain.PlaceholderUserGone
	}
	if reason == "" {
		reason = domain.PlaceholderNoReason
	}

	summary := fmt.Sprintf("**Title:** %s\n**Opened by:** %s\n**Closed by:** %s\n**Reason:** %s",
		details.Title, opener, closer, reason)
	if archiveURL != "" {
		summary += "\n\n[View transcript](" + archiveURL + ")"
	}
	return summary
}

func (s *TicketService) publishCloseFailed(ctx context.Context, channel *platform.Channel, failure domain.CloseFailure, message string) {
	s.publishEvent(ctx, events.Event{
		Type:      events.EventTicketCloseFailed,
		GuildID:   channel.GuildID,
		ChannelID: channel.ID,
		Payload: events.TicketCloseFailedPayload{
			Failure: failure,
			Message: message,
		},
	})
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func mention(userID string) string {
	return "<@" + userID + ">"
}
