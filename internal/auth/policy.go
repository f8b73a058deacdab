package auth

import (
	"slices"

	"gamehub/backend/internal/models"
)

// Action is something a caller may be allowed to do.
type Action string

const (
	ActionAddGame        Action = "add_game"
	ActionDeleteGame     Action = "delete_game"
	ActionManageUsers    Action = "manage_users"
	ActionManageRequests Action = "manage_requests"
	ActionModerate       Action = "moderate"
	ActionLockThread     Action = "lock_thread"

	ActionComment      Action = "comment"
	ActionLike         Action = "like"
	ActionRate         Action = "rate"
	ActionFavorite     Action = "favorite"
	ActionRequestGame  Action = "request_game"
	ActionCreateThread Action = "create_thread"
	ActionPostMessage  Action = "post_message"
	ActionUpload       Action = "upload"
	ActionEditProfile  Action = "edit_profile"
)

var (
	everyone   = []models.Role{models.RoleBasic, models.RoleGameAdder, models.RoleAdmin}
	adminsOnly = []models.Role{models.RoleAdmin}
)

// permissions is the single source of truth for role-based access.
var permissions = map[Action][]models.Role{
	ActionAddGame:        {models.RoleGameAdder, models.RoleAdmin},
	ActionDeleteGame:     adminsOnly,
	ActionManageUsers:    adminsOnly,
	ActionManageRequests: adminsOnly,
	ActionModerate:       adminsOnly,
	ActionLockThread:     adminsOnly,

	ActionComment:      everyone,
	ActionLike:         everyone,
	ActionRate:         everyone,
	ActionFavorite:     everyone,
	ActionRequestGame:  everyone,
	ActionCreateThread: everyone,
	ActionPostMessage:  everyone,
	ActionUpload:       everyone,
	ActionEditProfile:  everyone,
}

// Allowed reports whether role may perform action. Unknown actions are denied.
func Allowed(role models.Role, action Action) bool {
	return slices.Contains(permissions[action], role)
}

// Identity is the caller as asserted by a verified session token. The role is
// the one embedded at issuance and is not re-read from storage.
type Identity struct {
	ID       int
	Username string
	Role     models.Role
}

func (id Identity) Can(action Action) bool {
	return Allowed(id.Role, action)
}

// CanModify reports whether id may change or delete content written by owner.
func (id Identity) CanModify(owner string) bool {
	return id.Username == owner || id.Can(ActionModerate)
}
