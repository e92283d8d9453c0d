package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleBasic     Role = "basic"
	RoleArtist    Role = "artist"
	RoleManager   Role = "manager"
	RoleModerator Role = "moderator"
)

// Valid reports whether r is one of the four known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleBasic, RoleArtist, RoleManager, RoleModerator:
		return true
	}
	return false
}

// User represents a platform account. Role is set once at registration and
// never changes; the role-specific fields live in the Profile variant.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	FullName     string    `json:"full_name" db:"full_name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         Role      `json:"role" db:"role"`
	Phone        *string   `json:"phone" db:"phone"`
	Link         *string   `json:"link" db:"link"`
	AvatarURL    *string   `json:"avatar_url" db:"avatar_url"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`

	Profile Profile `json:"profile,omitempty"`
}

// Profile is the role specialization attached 1:1 to a User. Exactly one
// variant exists per user, matching User.Role.
type Profile interface {
	Role() Role
}

// BasicProfile holds listener-specific fields, including subscription and
// payment metadata managed by the subscription module.
type BasicProfile struct {
	UserID            uuid.UUID  `json:"-" db:"user_id"`
	BirthDate         *time.Time `json:"birth_date" db:"birth_date"`
	Preferences       *string    `json:"preferences" db:"preferences"`
	Description       *string    `json:"description" db:"description"`
	CardReference     *string    `json:"card_reference" db:"card_reference"`
	SubscriptionType  *string    `json:"subscription_type" db:"subscription_type"`
	SubscriptionPrice *float64   `json:"subscription_price" db:"subscription_price"`
	SubscriptionDate  *time.Time `json:"subscription_date" db:"subscription_date"`
	BankInfo          *string    `json:"bank_info" db:"bank_info"`
}

func (BasicProfile) Role() Role { return RoleBasic }

type ArtistProfile struct {
	UserID      uuid.UUID `json:"-" db:"user_id"`
	Genre       *string   `json:"genre" db:"genre"`
	Biography   *string   `json:"biography" db:"biography"`
	Discography *string   `json:"discography" db:"discography"`
	PhotoURL    *string   `json:"photo_url" db:"photo_url"`
}

func (ArtistProfile) Role() Role { return RoleArtist }

type ManagerProfile struct {
	UserID          uuid.UUID `json:"-" db:"user_id"`
	ArtistRoleDescr *string   `json:"artist_role_description" db:"artist_role_description"`
	Tasks           *string   `json:"tasks" db:"tasks"`
}

func (ManagerProfile) Role() Role { return RoleManager }

type ModeratorProfile struct {
	UserID            uuid.UUID `json:"-" db:"user_id"`
	Tasks             *string   `json:"tasks" db:"tasks"`
	ModerationHistory *string   `json:"moderation_history" db:"moderation_history"`
}

func (ModeratorProfile) Role() Role { return RoleModerator }

// EmptyProfile returns the zero-valued specialization for a role. Register
// uses it so every account starts with exactly one profile row.
func EmptyProfile(role Role, userID uuid.UUID) Profile {
	switch role {
	case RoleBasic:
		return &BasicProfile{UserID: userID}
	case RoleArtist:
		return &ArtistProfile{UserID: userID}
	case RoleManager:
		return &ManagerProfile{UserID: userID}
	case RoleModerator:
		return &ModeratorProfile{UserID: userID}
	}
	return nil
}

// UserRepository defines the contract for account persistence.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	// ResolveRole derives the effective role by probing the specialization
	// tables in fixed precedence artist > manager > moderator > basic.
	// A username present in two tables resolves to the higher-precedence one.
	ResolveRole(ctx context.Context, username string) (Role, error)
	GetProfile(ctx context.Context, user *User) (Profile, error)
	// UpdateSharedAndProfile writes the shared user fields and, when profile
	// is non-nil, the matching specialization row in one transaction. Either
	// both writes commit or neither does.
	UpdateSharedAndProfile(ctx context.Context, id uuid.UUID, fullName, phone, link *string, profile Profile) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	UpdateAvatar(ctx context.Context, id uuid.UUID, avatarURL string) error
	UpdateProfile(ctx context.Context, id uuid.UUID, profile Profile) error
}

// UserFinder exposes account lookups to other modules.
type UserFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}
