package ports

import (
	"context"

	"github.com/google/uuid"

	"user-directory-service/internal/application/views"
)

// SummaryCache is a best-effort read-through cache for summary views.
// Implementations swallow and log their own failures; a miss is always a
// safe answer.
type SummaryCache interface {
	GetSummary(ctx context.Context, id uuid.UUID) (*views.SummaryView, bool)
	SetSummary(ctx context.Context, id uuid.UUID, v views.SummaryView)
	Invalidate(ctx context.Context, id uuid.UUID)
}
