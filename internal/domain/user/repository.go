package user

import (
	"context"
)

// KeyKind selects which globally-unique key a lookup resolves against.
type KeyKind string

const (
	KeyUsername KeyKind = "username"
	KeyEmail    KeyKind = "email"
)

// Draft is the caller-submitted material for a new record. Password is the
// raw credential; the service hashes it before anything reaches storage.
type Draft struct {
	Username string
	Email    string
	Password string
	Roles    Roles
}

// Patch is the caller-submitted partial update. Nil fields are untouched.
type Patch struct {
	Username *string
	Email    *string
	Password *string
	Roles    *Roles
}

func (p Patch) Empty() bool {
	return p.Username == nil && p.Email == nil && p.Password == nil && p.Roles == nil
}

// Change is the storage-facing form of a Patch: the credential has already
// been hashed.
type Change struct {
	Username     *string
	Email        *string
	PasswordHash *string
	Roles        *Roles
}

type ListFilter struct {
	IncludeRemoved bool
}

// Repository is the persistence boundary. Implementations must keep
// username/email uniqueness global across active and removed records and
// make the remove/restore transitions atomic, so concurrent transitions on
// one record resolve to exactly one winner.
type Repository interface {
	CreateUser(ctx context.Context, req User) (*User, error)
	FetchUserByID(ctx context.Context, uuid UUID, includeRemoved bool) (*User, error)
	FetchUserByKey(ctx context.Context, kind KeyKind, value string) (*User, error)
	FetchUsersPage(ctx context.Context, page, pageSize int, filter ListFilter) (Users, int64, error)
	UpdateUser(ctx context.Context, uuid UUID, change Change) (*User, error)
	SoftDeleteUser(ctx context.Context, uuid UUID) (*User, error)
	RestoreUser(ctx context.Context, uuid UUID) (*User, error)
}
