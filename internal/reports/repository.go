package reports

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pulse-works/pulse/internal/snapshots"
	"github.com/pulse-works/pulse/pkg/pagination"
	"github.com/pulse-works/pulse/pkg/query"
	"github.com/pulse-works/pulse/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a report repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "reports"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Report], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Summary", "SeriesTitle")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count reports: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanReport)
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Latest(ctx context.Context) (*Report, error) {
	q, args := query.
		NewBuilder(projection, query.SortField{Field: "CreatedAt", Descending: true}).
		BuildSingleOrNull()

	report, err := repository.QueryOne(ctx, r.db, q, args, scanReport)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &report, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Report, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	report, err := repository.QueryOne(ctx, r.db, q, args, scanReport)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &report, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Report, error) {
	id := uuid.New()

	var seriesData []byte
	if len(cmd.SeriesData) > 0 {
		encoded, err := json.Marshal(cmd.SeriesData)
		if err != nil {
			return nil, fmt.Errorf("encode series_data: %w", err)
		}
		seriesData = encoded
	}

	q := `
		INSERT INTO reports(id, rating, summary, productivity_insight, american_dream_impact,
			prod_labor_score, prod_labor_tooltip, american_dream_score, american_dream_tooltip,
			series_id, series_title, series_data)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, rating, summary, productivity_insight, american_dream_impact,
			prod_labor_score, prod_labor_tooltip, american_dream_score, american_dream_tooltip,
			series_id, series_title, series_data`

	insertArgs := []any{
		id,
		cmd.Rating,
		cmd.Summary,
		cmd.ProductivityInsight,
		cmd.AmericanDreamImpact,
		cmd.ProdLaborScore,
		cmd.ProdLaborTooltip,
		cmd.AmericanDreamScore,
		cmd.AmericanDreamTooltip,
		cmd.SeriesID,
		cmd.SeriesTitle,
		seriesData,
	}

	// Single INSERT ... RETURNING; atomic on its own, no transaction needed.
	report, err := repository.QueryOne(ctx, r.db, q, insertArgs, scanReport)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("report created", "id", report.ID, "rating", report.Rating)
	return &report, nil
}

func (r *repo) ScoreSamples(ctx context.Context, from time.Time) ([]snapshots.ScoreSample, error) {
	q := `
		SELECT created_at, prod_labor_score, american_dream_score
		FROM reports
		WHERE created_at >= $1
		ORDER BY created_at`

	samples, err := repository.QueryMany(ctx, r.db, q, []any{from},
		func(s repository.Scanner) (snapshots.ScoreSample, error) {
			var sample snapshots.ScoreSample
			err := s.Scan(&sample.Date, &sample.ProdLabor, &sample.AmericanDream)
			return sample, err
		})
	if err != nil {
		return nil, fmt.Errorf("query score samples: %w", err)
	}

	return samples, nil
}
