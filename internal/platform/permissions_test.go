package platform

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
)

func TestHasPermissions(t *testing.T) {
	perms := PermissionViewChannel | PermissionSendMessages

	assert.True(t, HasPermissions(perms, PermissionViewChannel))
	assert.True(t, HasPermissions(perms, PermissionViewChannel|PermissionSendMessages))
	assert.False(t, HasPermissions(perms, PermissionManageChannels))
	assert.False(t, HasPermissions(perms, PermissionViewChannel|PermissionManageChannels))
}

func testGuild() *discordgo.Guild {
	return &discordgo.Guild{
		ID:      "guild-1",
		OwnerID: "owner-1",
		Roles: []*discordgo.Role{
			{ID: "guild-1", Permissions: PermissionViewChannel | PermissionSendMessages},
			{ID: "mod-role", Permissions: PermissionManageMessages},
			{ID: "admin-role", Permissions: discordgo.PermissionAdministrator},
		},
	}
}

func TestMemberPermissionsBaseRoles(t *testing.T) {
	guild := testGuild()
	channel := &discordgo.Channel{ID: "chan-1"}

	perms := memberPermissions(guild, channel, "user-1", []string{"mod-role"})

	assert.True(t, HasPermissions(perms, PermissionViewChannel|PermissionSendMessages|PermissionManageMessages))
	assert.False(t, HasPermissions(perms, PermissionManageChannels))
}

func TestMemberPermissionsGuildOwnerHasAll(t *testing.T) {
	perms := memberPermissions(testGuild(), &discordgo.Channel{ID: "chan-1"}, "owner-1", nil)
	assert.Equal(t, int64(discordgo.PermissionAll), perms)
}

func TestMemberPermissionsAdministratorHasAll(t *testing.T) {
	perms := memberPermissions(testGuild(), &discordgo.Channel{ID: "chan-1"}, "user-1", []string{"admin-role"})
	assert.Equal(t, int64(discordgo.PermissionAll), perms)
}

func TestMemberPermissionsEveryoneOverwriteDeniesView(t *testing.T) {
	channel := &discordgo.Channel{
		ID: "chan-1",
		PermissionOverwrites: []*discordgo.PermissionOverwrite{
			{ID: "guild-1", Type: discordgo.PermissionOverwriteTypeRole, Deny: PermissionViewChannel},
		},
	}

	perms := memberPermissions(testGuild(), channel, "user-1", nil)

	assert.False(t, HasPermissions(perms, PermissionViewChannel))
	assert.True(t, HasPermissions(perms, PermissionSendMessages))
}

func TestMemberPermissionsRoleOverwriteRestoresView(t *testing.T) {
	channel := &discordgo.Channel{
		ID: "chan-1",
		PermissionOverwrites: []*discordgo.PermissionOverwrite{
			{ID: "guild-1", Type: discordgo.PermissionOverwriteTypeRole, Deny: PermissionViewChannel},
			{ID: "mod-role", Type: discordgo.PermissionOverwriteTypeRole, Allow: PermissionViewChannel},
		},
	}

	withRole := memberPermissions(testGuild(), channel, "user-1", []string{"mod-role"})
	withoutRole := memberPermissions(testGuild(), channel, "user-2", nil)

	assert.True(t, HasPermissions(withRole, PermissionViewChannel))
	assert.False(t, HasPermissions(withoutRole, PermissionViewChannel))
}

func TestMemberPermissionsMemberOverwriteWinsLast(t *testing.T) {
	channel := &discordgo.Channel{
		ID: "chan-1",
		PermissionOverwrites: []*discordgo.PermissionOverwrite{
			{ID: "guild-1", Type: discordgo.PermissionOverwriteTypeRole, Deny: PermissionViewChannel},
			{ID: "user-1", Type: discordgo.PermissionOverwriteTypeMember, Allow: PermissionViewChannel, Deny: PermissionSendMessages},
		},
	}

	perms := memberPermissions(testGuild(), channel, "user-1", nil)

	assert.True(t, HasPermissions(perms, PermissionViewChannel))
	assert.False(t, HasPermissions(perms, PermissionSendMessages))
}

func TestMessageLink(t *testing.T) {
	link := MessageLink("guild-1", "chan-1", "msg-1")
	assert.Equal(t, "https://discord.com/channels/guild-1/chan-1/msg-1", link)
}
