package snapshots

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/pulse-works/pulse/pkg/pagination"
	"github.com/pulse-works/pulse/pkg/query"
	"github.com/pulse-works/pulse/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
	scores     ScoreSource
}

// New creates a snapshot repository implementing the System interface.
// A nil score source drops the composite score metrics from the history view.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config, scores ScoreSource) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "snapshots"),
		pagination: pagination,
		scores:     scores,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Snapshot], error) {
	page.Normalize(r.pagination)

	qb := query.NewBuilder(projection, defaultSort)
	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count snapshots: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanSnapshot)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) History(ctx context.Context, baseline time.Time) ([]MetricDelta, error) {
	from := baseline.Format("2006-01-02")
	q, args := query.
		NewBuilder(projection, defaultSort).
		WhereGte("SnapshotDate", &from).
		Build()

	items, err := repository.QueryMany(ctx, r.db, q, args, scanSnapshot)
	if err != nil {
		return nil, fmt.Errorf("query snapshot history: %w", err)
	}

	deltas := ComputeHistory(items, baseline)

	if r.scores != nil {
		samples, err := r.scores.ScoreSamples(ctx, baseline)
		if err != nil {
			return nil, fmt.Errorf("query score history: %w", err)
		}
		deltas = append(deltas, ComputeScoreHistory(samples, baseline)...)
	}

	return deltas, nil
}
