// Package platform wraps the Discord REST API behind plain value types so
// the ticket lifecycle core never handles discordgo structures directly.
package platform

import (
	"fmt"
	"time"
)

// Channel is a guild text channel or DM channel.
type Channel struct {
	ID      string `json:"id"`
	GuildID string `json:"guild_id"`
	Name    string `json:"name"`
	Topic   string `json:"topic"`
	IsText  bool   `json:"is_text"`
}

// Message is a single channel message as returned by the history API.
type Message struct {
	ID             string
	ChannelID      string
	AuthorID       string
	AuthorTag      string
	Content        string
	AttachmentURLs []string
	Timestamp      time.Time
}

// User is a platform account.
type User struct {
	ID  string `json:"id"`
	Tag string `json:"tag"`
	Bot bool   `json:"bot"`
}

// Guild is a community the bot is a member of.
type Guild struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// OverwriteType distinguishes role and member permission overwrites.
type OverwriteType int

const (
	OverwriteRole OverwriteType = iota
	OverwriteMember
)

// Overwrite is a permission grant/deny rule scoped to one role or user on
// one channel. Overwrites form a set; duplicate target IDs are a caller
// error.
type Overwrite struct {
	ID    string
	Type  OverwriteType
	Allow int64
	Deny  int64
}

// Embed is the structured portion of a rich message.
type Embed struct {
	AuthorName  string
	Description string
	FooterText  string
	Color       int
}

// MessagePayload is the content of an outgoing message.
type MessagePayload struct {
	Content string
	Embed   *Embed
}

// MessageLink returns the deep link to a message within a guild channel.
func MessageLink(guildID, channelID, messageID string) string {
	return fmt.Sprintf("https://discord.com/channels/%s/%s/%s", guildID, channelID, messageID)
}
