// Package views derives caller-appropriate response shapes from stored
// records. Each view class is a fixed struct; the credential hash has no
// field anywhere, so it can never cross the boundary.
package views

import (
	"time"

	"github.com/google/uuid"

	"user-directory-service/internal/domain/user"
)

type Class string

const (
	ClassSummary Class = "summary"
	ClassFull    Class = "full"
	ClassMeta    Class = "meta"
)

type View interface {
	Class() Class
}

// SummaryView is the minimum needed to display an identity.
type SummaryView struct {
	ID       uuid.UUID  `json:"id"`
	Username string     `json:"username"`
	Roles    user.Roles `json:"roles"`
}

func (SummaryView) Class() Class { return ClassSummary }

// FullView carries every record field except the credential.
type FullView struct {
	ID        uuid.UUID  `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Roles     user.Roles `json:"roles"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

func (FullView) Class() Class { return ClassFull }

// MetaView is FullView plus derived operational metadata. Admin only.
type MetaView struct {
	FullView
	AccountAgeDays int        `json:"accountAgeDays"`
	Removed        bool       `json:"removed"`
	RemovedAt      *time.Time `json:"removedAt,omitempty"`
}

func (MetaView) Class() Class { return ClassMeta }

type ListMeta struct {
	Total     int64 `json:"total"`
	Page      int   `json:"page"`
	PageSize  int   `json:"pageSize"`
	PageCount int   `json:"pageCount"`
}

type ListResponse struct {
	Items []View   `json:"items"`
	Meta  ListMeta `json:"meta"`
}
