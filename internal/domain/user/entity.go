package user

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser      Role = "User"
	RoleAdmin     Role = "Admin"
	RoleModerator Role = "Moderator"
)

type (
	UUID  = uuid.UUID
	Roles []Role

	User struct {
		UUID         UUID
		Username     string
		Email        string
		PasswordHash string
		Roles        Roles

		CreatedAt time.Time
		UpdatedAt time.Time

		DeletedAt *time.Time
	}
	Users []*User
)

// Caller is the authenticated identity an operation runs on behalf of.
// It is supplied by the dispatch layer and trusted as given.
type Caller struct {
	ID    UUID
	Roles Roles
}

func (rs Roles) Has(r Role) bool {
	for _, have := range rs {
		if have == r {
			return true
		}
	}
	return false
}

// Known reports whether every role is one of the declared role constants.
func (rs Roles) Known() bool {
	for _, r := range rs {
		switch r {
		case RoleUser, RoleAdmin, RoleModerator:
		default:
			return false
		}
	}
	return true
}

// Elevated reports whether the set grants anything beyond a plain user.
func (rs Roles) Elevated() bool {
	return rs.Has(RoleAdmin) || rs.Has(RoleModerator)
}

func (c Caller) IsAdmin() bool { return c.Roles.Has(RoleAdmin) }

// IsStaff reports whether the caller holds Admin or Moderator.
func (c Caller) IsStaff() bool { return c.Roles.Elevated() }

func (c Caller) Owns(u *User) bool { return c.ID == u.UUID }

// Anonymous reports whether no authenticated identity was attached.
func (c Caller) Anonymous() bool { return c.ID == uuid.Nil && len(c.Roles) == 0 }
