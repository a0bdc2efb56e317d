package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-bot/internal/domain"
	"github.com/spec-kit/ticket-bot/internal/platform"
)

type ticketFixture struct {
	gateway  *stubGateway
	archive  *stubArchive
	settings *stubSettings
	service  *TicketService
}

func newTicketFixture() *ticketFixture {
	gateway := newStubGateway()
	archive := &stubArchive{url: "https://hastebin.com/abc123"}
	settings := &stubSettings{}
	logger := zap.NewNop()
	registry := NewRegistry(gateway, logger)
	svc := NewTicketService(TicketDependencies{
		Gateway:  gateway,
		Registry: registry,
		Archive:  archive,
		Settings: settings,
		Logger:   logger,
	})
	return &ticketFixture{gateway: gateway, archive: archive, settings: settings, service: svc}
}

func TestOpenCreatesListedTicket(t *testing.T) {
	f := newTicketFixture()
	ctx := context.Background()

	ok := f.service.Open(ctx, "guild-1", "user-1", "cannot log in", "")
	require.True(t, ok)

	tickets, err := f.service.Registry().ListOpenTickets(ctx, "guild-1")
	require.NoError(t, err)
	require.Len(t, tickets, 1)
	assert.Equal(t, "ticket-1", tickets[0].Name)
	assert.Equal(t, "ticket|user-1|cannot log in", tickets[0].Topic)
	assert.Equal(t, 1, f.gateway.reactions)
}

func TestOpenSequenceCountsOnlyOpenTickets(t *testing.T) {
	f := newTicketFixture()
	ctx := context.Background()

	f.gateway.addChannel("other-1", "guild-1", "general", "")
	f.gateway.addChannel("other-2", "guild-1", "ticket-archive", "not a ticket topic")

	require.True(t, f.service.Open(ctx, "guild-1", "user-1", "first", ""))
	require.True(t, f.service.Open(ctx, "guild-1", "user-2", "second", ""))

	assert.Equal(t, []string{"ticket-1", "ticket-2"}, f.gateway.createdNames)
}

func TestOpenReusesSequenceAfterClose(t *testing.T) {
	f := newTicketFixture()
	ctx := context.Background()

	require.True(t, f.service.Open(ctx, "guild-1", "user-1", "first", ""))

	tickets, err := f.service.Registry().ListOpenTickets(ctx, "guild-1")
	require.NoError(t, err)
	require.Len(t, tickets, 1)

	result := f.service.Close(ctx, tickets[0].ID, "mod-1", "resolved")
	require.True(t, result.Success)

	require.True(t, f.service.Open(ctx, "guild-1", "user-2", "second", ""))
	assert.Equal(t, []string{"ticket-1", "ticket-1"}, f.gateway.createdNames)
}

func TestOpenFailsWhenChannelCreationFails(t *testing.T) {
	f := newTicketFixture()
	f.gateway.createErr = errors.New("boom")

	ok := f.service.Open(context.Background(), "guild-1", "user-1", "title", "")
	assert.False(t, ok)
	assert.Empty(t, f.gateway.channelSends)
}

func TestOpenSurvivesConfirmationDMFailure(t *testing.T) {
	f := newTicketFixture()
	f.gateway.dmErr = errors.New("dms closed")

	ok := f.service.Open(context.Background(), "guild-1", "user-1", "title", "")
	assert.True(t, ok)
	assert.Equal(t, 1, f.gateway.dmCalls)
}

func TestCloseDeletesChannelAndUploadsTranscript(t *testing.T) {
	f := newTicketFixture()
	ctx := context.Background()
	f.gateway.addChannel("chan-9", "guild-1", "ticket-1", "ticket|user-1|login issue")
	f.gateway.addUser("user-1", "alice#1234")
	f.gateway.addUser("mod-1", "bob#5678")
	f.gateway.messages["chan-9"] = []platform.Message{
		{AuthorTag: "alice#1234", Content: "thanks", Timestamp: time.Date(2024, 3, 1, 12, 5, 0, 0, time.UTC)},
		{AuthorTag: "alice#1234", Content: "hello", Timestamp: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)},
	}

	result := f.service.Close(ctx, "chan-9", "mod-1", "resolved")

	require.True(t, result.Success)
	assert.Equal(t, 1, f.gateway.deleteCalls)
	assert.Equal(t, 1, f.archive.calls)
	assert.Equal(t, "Ticket logs for ticket-1", f.archive.lastTitle)
	assert.Less(t, strings.Index(f.archive.lastContent, "hello"), strings.Index(f.archive.lastContent, "thanks"))
	assert.Equal(t, 1, f.gateway.dmCalls)
	assert.NotContains(t, f.gateway.channels, "chan-9")
}

func TestCloseWithoutPermissionsHasNoSideEffects(t *testing.T) {
	f := newTicketFixture()
	f.gateway.addChannel("chan-9", "guild-1", "ticket-1", "ticket|user-1|login issue")
	f.gateway.perms["chan-9"] = platform.PermissionViewChannel

	result := f.service.Close(context.Background(), "chan-9", "mod-1", "resolved")

	assert.False(t, result.Success)
	assert.Equal(t, domain.CloseFailurePermissionDenied, result.Failure)
	assert.Equal(t, 0, f.gateway.deleteCalls)
	assert.Equal(t, 0, f.archive.calls)
	assert.Equal(t, 0, f.gateway.dmCalls)
	assert.Empty(t, f.gateway.channelSends)
	assert.Contains(t, f.gateway.channels, "chan-9")
}

func TestCloseUnknownChannel(t *testing.T) {
	f := newTicketFixture()

	result := f.service.Close(context.Background(), "missing", "mod-1", "")

	assert.False(t, result.Success)
	assert.Equal(t, domain.CloseFailureUnknown, result.Failure)
}

func TestCloseFailsWhenHistoryFetchFails(t *testing.T) {
	f := newTicketFixture()
	f.gateway.addChannel("chan-9", "guild-1", "ticket-1", "ticket|user-1|login issue")
	f.gateway.historyErr = errors.New("rate limited")

	result := f.service.Close(context.Background(), "chan-9", "mod-1", "")

	assert.False(t, result.Success)
	assert.Equal(t, domain.CloseFailureHistoryFetch, result.Failure)
	assert.Equal(t, 0, f.gateway.deleteCalls)
	assert.Equal(t, 0, f.archive.calls)
}

func TestCloseSucceedsWhenArchivalFails(t *testing.T) {
	f := newTicketFixture()
	f.gateway.addChannel("chan-9", "guild-1", "ticket-1", "ticket|user-1|login issue")
	f.gateway.addUser("user-1", "alice#1234")
	f.archive.err = errors.New("hastebin down")

	result := f.service.Close(context.Background(), "chan-9", "mod-1", "resolved")

	assert.True(t, result.Success)
	assert.Equal(t, 1, f.gateway.deleteCalls)
	assert.NotContains(t, f.gateway.channels, "chan-9")
}

func TestCloseFailsWhenDeletionFails(t *testing.T) {
	f := newTicketFixture()
	f.gateway.addChannel("chan-9", "guild-1", "ticket-1", "ticket|user-1|login issue")
	f.gateway.deleteErr = errors.New("forbidden")

	result := f.service.Close(context.Background(), "chan-9", "mod-1", "")

	assert.False(t, result.Success)
	assert.Equal(t, domain.CloseFailureDeletion, result.Failure)
}

func TestCloseSkipsDMWhenOwnerGone(t *testing.T) {
	f := newTicketFixture()
	f.gateway.addChannel("chan-9", "guild-1", "ticket-1", "ticket|gone-user|login issue")

	result := f.service.Close(context.Background(), "chan-9", "mod-1", "")

	assert.True(t, result.Success)
	assert.Equal(t, 0, f.gateway.dmCalls)
}

func TestClosePostsToConfiguredLogChannel(t *testing.T) {
	f := newTicketFixture()
	f.gateway.addChannel("chan-9", "guild-1", "ticket-1", "ticket|user-1|login issue")
	f.gateway.addChannel("log-1", "guild-1", "ticket-log", "")
	f.gateway.addUser("user-1", "alice#1234")
	settings := domain.DefaultGuildSettings("guild-1")
	settings.Ticket.LogChannelID = "log-1"
	f.settings.settings = settings

	result := f.service.Close(context.Background(), "chan-9", "mod-1", "done")

	require.True(t, result.Success)
	assert.Equal(t, []string{"log-1"}, f.gateway.channelSends)
}

func TestCloseProceedsWhenSettingsUnavailable(t *testing.T) {
	f := newTicketFixture()
	f.gateway.addChannel("chan-9", "guild-1", "ticket-1", "ticket|user-1|login issue")
	f.settings.err = errors.New("postgres down")

	result := f.service.Close(context.Background(), "chan-9", "mod-1", "")

	assert.True(t, result.Success)
	assert.Equal(t, 1, f.gateway.deleteCalls)
}

func TestCloseAllCountsSuccessesAndFailures(t *testing.T) {
	f := newTicketFixture()
	ctx := context.Background()
	f.gateway.addChannel("chan-1", "guild-1", "ticket-1", "ticket|user-1|a")
	f.gateway.addChannel("chan-2", "guild-1", "ticket-2", "ticket|user-2|b")
	f.gateway.addChannel("chan-3", "guild-1", "ticket-3", "ticket|user-3|c")
	f.gateway.perms["chan-2"] = 0

	succeeded, failed := f.service.CloseAll(ctx, "guild-1", "admin-1")

	assert.Equal(t, 2, succeeded)
	assert.Equal(t, 1, failed)

	remaining, err := f.service.Registry().ListOpenTickets(ctx, "guild-1")
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "chan-2", remaining[0].ID)
}

func TestCloseAllEmptyGuild(t *testing.T) {
	f := newTicketFixture()

	succeeded, failed := f.service.CloseAll(context.Background(), "guild-1", "admin-1")

	assert.Zero(t, succeeded)
	assert.Zero(t, failed)
	assert.Equal(t, 0, f.gateway.deleteCalls)
}

func TestCloseSummaryPlaceholders(t *testing.T) {
	summary := closeSummary(&domain.TicketDetails{Title: "login issue"}, "", "", "")

	assert.Contains(t, summary, "**Title:** login issue")
	assert.Contains(t, summary, "**Opened by:** "+domain.PlaceholderUserGone)
	assert.Contains(t, summary, "**Closed by:** "+domain.PlaceholderUserGone)
	assert.Contains(t, summary, "**Reason:** "+domain.PlaceholderNoReason)
	assert.NotContains(t, summary, "View transcript")
}

func TestCloseSummaryWithTranscriptLink(t *testing.T) {
	details := &domain.TicketDetails{OwnerTag: "alice#1234", Title: "login issue"}
	summary := closeSummary(details, "bob#5678", "resolved", "https://hastebin.com/abc123")

	assert.Contains(t, summary, "**Opened by:** alice#1234")
	assert.Contains(t, summary, "**Closed by:** bob#5678")
	assert.Contains(t, summary, "**Reason:** resolved")
	assert.Contains(t, summary, "[View transcript](https://hastebin.com/abc123)")
}
