package ports

import (
	"context"

	"user-directory-service/internal/application/views"
	"user-directory-service/internal/domain/user"
)

// Directory is the sole entry point the dispatch layer calls. Identifier
// arguments arrive as raw strings so the service can reject malformed ones
// before persistence is consulted.
type Directory interface {
	Health() string
	Create(ctx context.Context, draft user.Draft, caller user.Caller) (views.View, error)
	FindAll(ctx context.Context, page, pageSize int, caller user.Caller) (*views.ListResponse, error)
	FindByID(ctx context.Context, id string, caller user.Caller) (views.View, error)
	FindByKey(ctx context.Context, kind user.KeyKind, value string, caller user.Caller) (views.View, error)
	FindMeta(ctx context.Context, id string, caller user.Caller) (views.View, error)
	FindSummary(ctx context.Context, id string, caller user.Caller) (views.View, error)
	Update(ctx context.Context, id string, patch user.Patch, caller user.Caller) (views.View, error)
	Remove(ctx context.Context, id string, caller user.Caller) (views.View, error)
	Restore(ctx context.Context, id string, caller user.Caller) (views.View, error)
}
