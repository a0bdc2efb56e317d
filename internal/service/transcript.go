package service

import (
	"strings"

	"github.com/spec-kit/ticket-bot/internal/platform"
)

const transcriptTimeLayout = "2006-01-02 15:04:05"

// RenderTranscript renders a channel's message history as readable text.
// The platform returns history newest-first, so messages are walked in
// reverse to produce a chronological transcript: one header line with
// timestamp and author tag, the plain-text content when non-empty, a
// comma-joined attachment list when present, then a blank separator.
func RenderTranscript(messages []platform.Message) string {
	var b strings.Builder
	for i := len(messages) - 1; i >= 0; i-- {
		msg := messages[i]
		b.WriteString("[" + msg.Timestamp.UTC().Format(transcriptTimeLayout) + "] - " + msg.AuthorTag + "\n")
		if msg.Content != "" {
			b.WriteString(msg.Content + "\n")
		}
		if len(msg.AttachmentURLs) > 0 {
			b.WriteString(strings.Join(msg.AttachmentURLs, ", ") + "\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}
