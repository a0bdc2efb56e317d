package platform

import "github.com/bwmarrin/discordgo"

// Permission bits the ticket lifecycle cares about, aliased from discordgo
// so the values stay in sync with the wire protocol.
const (
	PermissionViewChannel        int64 = discordgo.PermissionViewChannel
	PermissionSendMessages       int64 = discordgo.PermissionSendMessages
	PermissionReadMessageHistory int64 = discordgo.PermissionReadMessageHistory
	PermissionEmbedLinks         int64 = discordgo.PermissionEmbedLinks
	PermissionAddReactions       int64 = discordgo.PermissionAddReactions
	PermissionManageChannels     int64 = discordgo.PermissionManageChannels
	PermissionManageMessages     int64 = discordgo.PermissionManageMessages
)

// HasPermissions reports whether perms contains every bit in required.
func HasPermissions(perms, required int64) bool {
	return perms&required == required
}

// memberPermissions computes a member's effective permissions on a channel
// following Discord's documented overwrite algorithm: base role permissions,
// then the @everyone overwrite, then role overwrites, then the member
// overwrite. Administrators and the guild owner hold every permission.
func memberPermissions(guild *discordgo.Guild, channel *discordgo.Channel, userID string, memberRoleIDs []string) int64 {
	if guild.OwnerID == userID {
		return discordgo.PermissionAll
	}

	roleSet := make(map[string]struct{}, len(memberRoleIDs))
	for _, id := range memberRoleIDs {
		roleSet[id] = struct{}{}
	}

	var base int64
	for _, role := range guild.Roles {
		if role.ID == guild.ID {
			base |= role.Permissions
			continue
		}
		if _, ok := roleSet[role.ID]; ok {
			base |= role.Permissions
		}
	}
	if base&discordgo.PermissionAdministrator != 0 {
		return discordgo.PermissionAll
	}

	for _, overwrite := range channel.PermissionOverwrites {
		if overwrite.Type == discordgo.PermissionOverwriteTypeRole && overwrite.ID == guild.ID {
			base &^= overwrite.Deny
			base |= overwrite.Allow
		}
	}

	var allow, deny int64
	for _, overwrite := range channel.PermissionOverwrites {
		if overwrite.Type != discordgo.PermissionOverwriteTypeRole || overwrite.ID == guild.ID {
			continue
		}
		if _, ok := roleSet[overwrite.ID]; ok {
			allow |= overwrite.Allow
			deny |= overwrite.Deny
		}
	}
	base &^= deny
	base |= allow

	for _, overwrite := range channel.PermissionOverwrites {
		if overwrite.Type == discordgo.PermissionOverwriteTypeMember && overwrite.ID == userID {
			base &^= overwrite.Deny
			base |= overwrite.Allow
		}
	}

	return base
}
