package domain

// Wire-level ticket conventions. A guild channel is a ticket iff its name
// carries TicketNamePrefix AND its topic matches the
// "ticket|<ownerUserId>|<title>" schema. Both checks are required; a channel
// passing only one is not a ticket.
const (
	TicketNamePrefix = "ticket-"
	TicketTopicTag   = "ticket"
	TicketTopicSep   = "|"
)

// Sentinel text substituted when optional close-summary data is unavailable.
const (
	PlaceholderUserGone = "user is no longer in the server"
	PlaceholderNoReason = "no reason was given"
)

// Ticket is the virtual aggregate reconstructed from channel metadata.
// No record of it is persisted anywhere; the backing channel is the ticket.
type Ticket struct {
	ChannelID      string `json:"channel_id"`
	GuildID        string `json:"guild_id"`
	OwnerUserID    string `json:"owner_user_id"`
	Title          string `json:"title"`
	SequenceNumber int    `json:"sequence_number"`
}

// TicketDetails holds metadata parsed from a ticket channel topic. OwnerTag
// is empty when the owner could not be resolved (left the platform).
type TicketDetails struct {
	OwnerUserID string
	OwnerTag    string
	Title       string
}

// CloseFailure categorizes why a close attempt failed. Archival and
// notification failures are non-fatal and never appear here.
type CloseFailure string

const (
	CloseFailureNone             CloseFailure = ""
	CloseFailurePermissionDenied CloseFailure = "PERMISSION_DENIED"
	CloseFailureHistoryFetch     CloseFailure = "HISTORY_FETCH_FAILED"
	CloseFailureDeletion         CloseFailure = "DELETION_FAILED"
	CloseFailureUnknown          CloseFailure = "UNKNOWN"
)

// CloseResult reports the outcome of a single close attempt. It is consumed
// immediately by the caller and never persisted.
type CloseResult struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Failure CloseFailure `json:"failure,omitempty"`
}

// CloseSucceeded builds the success result.
func CloseSucceeded() CloseResult {
	return CloseResult{Success: true, Message: "success"}
}

// CloseFailed builds a failure result with its category.
func CloseFailed(failure CloseFailure, message string) CloseResult {
	return CloseResult{Success: false, Message: message, Failure: failure}
}
