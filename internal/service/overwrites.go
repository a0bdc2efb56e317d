package service

import "github.com/spec-kit/ticket-bot/internal/platform"

// ticketParticipantPermissions is the allow set granted to everyone who may
// take part in a ticket: the owner, the bot's role, and the support role.
const ticketParticipantPermissions = platform.PermissionViewChannel |
	platform.PermissionSendMessages |
	platform.PermissionReadMessageHistory

// BuildTicketOverwrites computes the permission overwrite set for a new
// ticket channel: deny visibility to the guild at large (the @everyone role
// shares the guild's ID), then grant view/send/read-history to the owner,
// the bot's own role, and the support role when one is configured.
//
// The result is a set, not a sequence. Duplicate target IDs are a caller
// error and are not deduplicated here.
func BuildTicketOverwrites(guildID, ownerUserID, botRoleID, supportRoleID string) []platform.Overwrite {
	overwrites := []platform.Overwrite{
		{
			ID:   guildID,
			Type: platform.OverwriteRole,
			Deny: platform.PermissionViewChannel,
		},
		{
			ID:    ownerUserID,
			Type:  platform.OverwriteMember,
			Allow: ticketParticipantPermissions,
		},
	}

	if botRoleID != "" {
		overwrites = append(overwrites, platform.Overwrite{
			ID:    botRoleID,
			Type:  platform.OverwriteRole,
			Allow: ticketParticipantPermissions,
		})
	}
	if supportRoleID != "" {
		overwrites = append(overwrites, platform.Overwrite{
			ID:    supportRoleID,
			Type:  platform.OverwriteRole,
			Allow: ticketParticipantPermissions,
		})
	}
	return overwrites
}
