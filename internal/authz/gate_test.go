package authz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/soundstage/soundstage/internal/authz"
	"github.com/soundstage/soundstage/internal/modules/account/domain"
)

func TestAllowed_PermissionTable(t *testing.T) {
	cases := []struct {
		role   domain.Role
		action authz.Action
		want   bool
	}{
		{domain.RoleBasic, authz.ActionCreatePlaylist, true},
		{domain.RoleArtist, authz.ActionCreatePlaylist, false},
		{domain.RoleManager, authz.ActionCreatePlaylist, false},
		{domain.RoleModerator, authz.ActionCreatePlaylist, false},

		{domain.RoleBasic, authz.ActionAddPlaylistSong, true},
		{domain.RoleArtist, authz.ActionAddPlaylistSong, false},

		{domain.RoleArtist, authz.ActionCreateSong, true},
		{domain.RoleBasic, authz.ActionCreateSong, false},
		{domain.RoleManager, authz.ActionCreateSong, false},

		{domain.RoleArtist, authz.ActionCreateEvent, true},
		{domain.RoleManager, authz.ActionCreateEvent, true},
		{domain.RoleBasic, authz.ActionCreateEvent, false},
		{domain.RoleModerator, authz.ActionCreateEvent, false},

		{domain.RoleBasic, authz.ActionEditProfile, true},
		{domain.RoleArtist, authz.ActionEditProfile, true},
		{domain.RoleManager, authz.ActionEditProfile, true},
		{domain.RoleModerator, authz.ActionEditProfile, true},

		{domain.RoleArtist, authz.ActionCreateMerch, true},
		{domain.RoleManager, authz.ActionCreateMerch, true},
		{domain.RoleBasic, authz.ActionCreateMerch, false},

		{domain.RoleBasic, authz.ActionSubscribe, true},
		{domain.RoleArtist, authz.ActionSubscribe, false},
	}

	for _, c := range cases {
		got := authz.Allowed(c.role, c.action)
		assert.Equalf(t, c.want, got, "role=%s action=%s", c.role, c.action)
	}
}

func TestAllowed_FailsClosed(t *testing.T) {
	// Unknown actions and roles are denied, never an error.
	assert.False(t, authz.Allowed(domain.RoleBasic, authz.Action("merch.delete")))
	assert.False(t, authz.Allowed(domain.Role("superadmin"), authz.ActionCreateEvent))
	assert.False(t, authz.Allowed(domain.Role(""), authz.Action("")))
}
