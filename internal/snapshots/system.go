package snapshots

import (
	"context"
	"time"

	"github.com/pulse-works/pulse/pkg/pagination"
)

// System defines the public contract for snapshot domain operations.
// Snapshots are read-only from this service's perspective.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Snapshot], error)

	History(ctx context.Context, baseline time.Time) ([]MetricDelta, error)
}

// ScoreSource supplies composite report score samples so the history view
// can chart them alongside the macro metrics. A nil source omits them.
type ScoreSource interface {
	ScoreSamples(ctx context.Context, from time.Time) ([]ScoreSample, error)
}
