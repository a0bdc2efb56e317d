package service

import (
	"context"
	"fmt"

	"github.com/spec-kit/ticket-bot/internal/domain"
	"github.com/spec-kit/ticket-bot/internal/platform"
)

// stubGateway is an in-memory ChatGateway that records every call so tests
// can assert on side effects and call counts.
type stubGateway struct {
	guild        platform.Guild
	botRoleID    string
	channels     map[string]*platform.Channel
	order        []string
	messages     map[string][]platform.Message
	perms        map[string]int64
	defaultPerms int64
	users        map[string]platform.User

	nextID       int
	createdNames []string
	deleteCalls  int
	dmCalls      int
	reactions    int
	channelSends []string

	createErr  error
	historyErr error
	deleteErr  error
	dmErr      error
}

func newStubGateway() *stubGateway {
	return &stubGateway{
		guild:        platform.Guild{ID: "guild-1", Name: "Test Guild"},
		botRoleID:    "bot-role",
		channels:     map[string]*platform.Channel{},
		messages:     map[string][]platform.Message{},
		perms:        map[string]int64{},
		defaultPerms: requiredClosePermissions,
		users:        map[string]platform.User{},
	}
}

func (g *stubGateway) addChannel(id, guildID, name, topic string) *platform.Channel {
	ch := &platform.Channel{ID: id, GuildID: guildID, Name: name, Topic: topic, IsText: true}
	g.channels[id] = ch
	g.order = append(g.order, id)
	return ch
}

func (g *stubGateway) addUser(id, tag string) {
	g.users[id] = platform.User{ID: id, Tag: tag}
}

func (g *stubGateway) GuildChannels(_ context.Context, guildID string) ([]platform.Channel, error) {
	var result []platform.Channel
	for _, id := range g.order {
		if ch, ok := g.channels[id]; ok && ch.GuildID == guildID {
			result = append(result, *ch)
		}
	}
	return result, nil
}

func (g *stubGateway) Channel(_ context.Context, channelID string) (*platform.Channel, error) {
	ch, ok := g.channels[channelID]
	if !ok {
		return nil, fmt.Errorf("channel %s not found", channelID)
	}
	copied := *ch
	return &copied, nil
}

func (g *stubGateway) CreateTicketChannel(_ context.Context, guildID, name, topic string, _ []platform.Overwrite) (*platform.Channel, error) {
	if g.createErr != nil {
		return nil, g.createErr
	}
	g.nextID++
	g.createdNames = append(g.createdNames, name)
	return g.addChannel(fmt.Sprintf("chan-%d", g.nextID), guildID, name, topic), nil
}

func (g *stubGateway) DeleteChannel(_ context.Context, channelID string) error {
	g.deleteCalls++
	if g.deleteErr != nil {
		return g.deleteErr
	}
	if _, ok := g.channels[channelID]; !ok {
		return fmt.Errorf("channel %s not found", channelID)
	}
	delete(g.channels, channelID)
	return nil
}

func (g *stubGateway) ChannelMessages(_ context.Context, channelID string, _ int) ([]platform.Message, error) {
	if g.historyErr != nil {
		return nil, g.historyErr
	}
	return g.messages[channelID], nil
}

func (g *stubGateway) SendChannelMessage(_ context.Context, channelID string, _ platform.MessagePayload) (*platform.Message, error) {
	g.channelSends = append(g.channelSends, channelID)
	return &platform.Message{ID: fmt.Sprintf("msg-%d", len(g.channelSends)), ChannelID: channelID}, nil
}

func (g *stubGateway) AddReaction(_ context.Context, _, _, _ string) error {
	g.reactions++
	return nil
}

func (g *stubGateway) SendDirectMessage(_ context.Context, _ string, _ platform.MessagePayload) error {
	g.dmCalls++
	return g.dmErr
}

func (g *stubGateway) User(_ context.Context, userID string) (*platform.User, error) {
	user, ok := g.users[userID]
	if !ok {
		return nil, fmt.Errorf("user %s not found", userID)
	}
	return &user, nil
}

func (g *stubGateway) Guild(_ context.Context, _ string) (*platform.Guild, error) {
	return &g.guild, nil
}

func (g *stubGateway) BotTopRoleID(_ context.Context, _ string) (string, error) {
	return g.botRoleID, nil
}

func (g *stubGateway) BotChannelPermissions(_ context.Context, channelID string) (int64, error) {
	if perms, ok := g.perms[channelID]; ok {
		return perms, nil
	}
	return g.defaultPerms, nil
}

// stubArchive counts uploads and captures the last transcript.
type stubArchive struct {
	url         string
	err         error
	calls       int
	lastContent string
	lastTitle   string
}

func (a *stubArchive) PostToBin(_ context.Context, content, title string) (string, error) {
	a.calls++
	a.lastContent = content
	a.lastTitle = title
	if a.err != nil {
		return "", a.err
	}
	return a.url, nil
}

// stubSettings serves fixed guild settings.
type stubSettings struct {
	settings *domain.GuildSettings
	err      error
}

func (s *stubSettings) GetSettings(_ context.Context, guildID string) (*domain.GuildSettings, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.settings != nil {
		return s.settings, nil
	}
	return domain.DefaultGuildSettings(guildID), nil
}

func (s *stubSettings) UpdateSettings(_ context.Context, _ *domain.GuildSettings) error {
	return nil
}
