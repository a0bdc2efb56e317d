package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-bot/internal/domain"
	"github.com/spec-kit/ticket-bot/internal/platform"
)

// Registry derives the set of open tickets from live channel metadata. It
// holds no state of its own; every call re-reads the platform so the answer
// is always current.
type Registry struct {
	gateway ChatGateway
	logger  *zap.Logger
}

// NewRegistry constructs the registry.
func NewRegistry(gateway ChatGateway, logger *zap.Logger) *Registry {
	return &Registry{gateway: gateway, logger: logger}
}

// IsTicketChannel reports whether a channel is an open ticket. Both the name
// prefix and the topic schema must match; a user-renamed channel that passes
// only one check is not a ticket.
func IsTicketChannel(channel platform.Channel) bool {
	if !channel.IsText {
		return false
	}
	if !strings.HasPrefix(channel.Name, domain.TicketNamePrefix) {
		return false
	}
	_, _, ok := ParseTicketTopic(channel.Topic)
	return ok
}

// ParseTicketTopic splits a "ticket|<ownerUserId>|<title>" topic. Only the
// first two delimiters are consumed; a title containing "|" survives intact.
func ParseTicketTopic(topic string) (ownerUserID, title string, ok bool) {
	parts := strings.SplitN(topic, domain.TicketTopicSep, 3)
	if len(parts) != 3 || parts[0] != domain.TicketTopicTag {
		return "", "", false
	}
	return parts[1], parts[2], true
}

// ListOpenTickets returns every open ticket channel in the guild.
func (r *Registry) ListOpenTickets(ctx context.Context, guildID string) ([]platform.Channel, error) {
	channels, err := r.gateway.GuildChannels(ctx, guildID)
	if err != nil {
		return nil, err
	}
	tickets := make([]platform.Channel, 0)
	for _, channel := range channels {
		if IsTicketChannel(channel) {
			tickets = append(tickets, channel)
		}
	}
	return tickets, nil
}

// FindTicketForUser returns the first open ticket owned by the user, or nil
// when none exists. At most one open ticket per user is assumed but not
// enforced here.
func (r *Registry) FindTicketForUser(ctx context.Context, guildID, userID string) (*platform.Channel, error) {
	tickets, err := r.ListOpenTickets(ctx, guildID)
	if err != nil {
		return nil, err
	}
	for i := range tickets {
		ownerID, _, ok := ParseTicketTopic(tickets[i].Topic)
		if ok && ownerID == userID {
			return &tickets[i], nil
		}
	}
	return nil, nil
}

// ParseTicketMetadata resolves a ticket channel's owner and title from its
// topic. The owner lookup is best-effort: when the account is gone the
// details carry an empty OwnerTag. Returns nil when the channel has no
// parseable topic.
func (r *Registry) ParseTicketMetadata(ctx context.Context, channel platform.Channel) *domain.TicketDetails {
	ownerID, title, ok := ParseTicketTopic(channel.Topic)
	if !ok {
		return nil
	}

	details := &domain.TicketDetails{OwnerUserID: ownerID, Title: title}
	user, err := r.gateway.User(ctx, ownerID)
	if err != nil {
		r.logger.Debug("ticket owner no longer resolvable",
			zap.String("channel_id", channel.ID),
			zap.String("owner_user_id", ownerID),
			zap.Error(err),
		)
		return details
	}
	details.OwnerTag = user.Tag
	return details
}
