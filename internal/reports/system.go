package reports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pulse-works/pulse/internal/snapshots"
	"github.com/pulse-works/pulse/pkg/pagination"
)

// System defines the public contract for report domain operations.
// Reports are append-only: there is no update or delete.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Report], error)

	Latest(ctx context.Context) (*Report, error)
	Find(ctx context.Context, id uuid.UUID) (*Report, error)
	Create(ctx context.Context, cmd CreateCommand) (*Report, error)

	// ScoreSamples feeds the composite report scores into the snapshot
	// history view.
	ScoreSamples(ctx context.Context, from time.Time) ([]snapshots.ScoreSample, error)
}
