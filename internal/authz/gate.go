// Package authz is the single authorization gate for every state-mutating
// operation. It is a pure lookup of (role, action) and fails closed: an
// action or role it does not know about is denied.
package authz

import (
	"github.com/soundstage/soundstage/internal/modules/account/domain"
)

type Action string

const (
	ActionCreatePlaylist  Action = "playlist.create"
	ActionAddPlaylistSong Action = "playlist.add_song"
	ActionCreateSong      Action = "song.create"
	ActionCreateEvent     Action = "event.create"
	ActionEditProfile     Action = "profile.edit"
	ActionCreateMerch     Action = "merch.create"
	ActionSubscribe       Action = "subscription.create"
)

var permissions = map[Action]map[domain.Role]bool{
	ActionCreatePlaylist:  {domain.RoleBasic: true},
	ActionAddPlaylistSong: {domain.RoleBasic: true},
	ActionCreateSong:      {domain.RoleArtist: true},
	ActionCreateEvent:     {domain.RoleArtist: true, domain.RoleManager: true},
	ActionCreateMerch:     {domain.RoleArtist: true, domain.RoleManager: true},
	ActionSubscribe:       {domain.RoleBasic: true},
	ActionEditProfile: {
		domain.RoleBasic:     true,
		domain.RoleArtist:    true,
		domain.RoleManager:   true,
		domain.RoleModerator: true,
	},
}

// Allowed reports whether role may perform action.
func Allowed(role domain.Role, action Action) bool {
	roles, ok := permissions[action]
	if !ok {
		return false
	}
	return roles[role]
}
