package events

import (
	"time"

	"github.com/spec-kit/ticket-bot/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketOpened      EventType = "ticket_opened"
	EventTicketClosed      EventType = "ticket_closed"
	EventTicketCloseFailed EventType = "ticket_close_failed"
	EventTicketsPurged     EventType = "tickets_purged"
)

// Event represents a lifecycle event emitted by the ticket manager.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	GuildID   string      `json:"guild_id"`
	ChannelID string      `json:"channel_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketOpenedPayload payload.
type TicketOpenedPayload struct {
	OwnerUserID    string `json:"owner_user_id"`
	Title          string `json:"title"`
	SequenceNumber int    `json:"sequence_number"`
}

// TicketClosedPayload payload.
type TicketClosedPayload struct {
	OwnerUserID    string `json:"owner_user_id,omitempty"`
	Title          string `json:"title,omitempty"`
	ClosedByUserID string `json:"closed_by_user_id,omitempty"`
	Reason         string `json:"reason,omitempty"`
	ArchiveURL     string `json:"archive_url,omitempty"`
}

// TicketCloseFailedPayload payload.
type TicketCloseFailedPayload struct {
	Failure domain.CloseFailure `json:"failure"`
	Message string              `json:"message"`
}

// TicketsPurgedPayload payload.
type TicketsPurgedPayload struct {
	ActorUserID string `json:"actor_user_id"`
	Succeeded   int    `json:"succeeded"`
	Failed      int    `json:"failed"`
}
