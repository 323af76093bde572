// Package pipeline orchestrates one report-generation run: fetch news and a
// sampled macro series, request a structured assessment from the model,
// validate it, and persist exactly one report row. Any failure aborts the
// run before the write; there are no partial writes and no retries.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pulse-works/pulse/internal/reports"
	"github.com/pulse-works/pulse/internal/sources/fred"
	"github.com/pulse-works/pulse/internal/sources/news"
	"github.com/pulse-works/pulse/pkg/formatting"
)

// NewsSource fetches recent articles for the prompt.
type NewsSource interface {
	FetchArticles(ctx context.Context) ([]news.Article, error)
}

// MacroSource fetches observations for a sampled series.
type MacroSource interface {
	Observations(ctx context.Context, seriesID string) ([]fred.Observation, error)
}

// ModelClient requests a chat completion.
type ModelClient interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// ReportCreator persists a validated report.
type ReportCreator interface {
	Create(ctx context.Context, cmd reports.CreateCommand) (*reports.Report, error)
}

// RawArchive keeps raw model output for diagnostics. Store failures are
// logged, never fatal; Retrieve and Delete back the raw-output endpoints.
type RawArchive interface {
	Store(ctx context.Context, key string, reader io.Reader, contentType string) error
	Retrieve(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// Result is the outcome of a successful run.
type Result struct {
	Report           *reports.Report
	ArticlesAnalyzed int
	SeriesTitle      string
}

// Runner executes pipeline runs.
type Runner struct {
	news     NewsSource
	macro    MacroSource
	model    ModelClient
	reports  ReportCreator
	archive  RawArchive
	pool     []fred.Series
	selector fred.Selector
	cfg      Config
	logger   *slog.Logger
}

// NewRunner creates a pipeline runner. A nil selector defaults to uniform
// random series selection; a nil archive disables raw output archiving.
func NewRunner(
	newsSource NewsSource,
	macroSource MacroSource,
	modelClient ModelClient,
	reportCreator ReportCreator,
	rawArchive RawArchive,
	cfg Config,
	logger *slog.Logger,
) *Runner {
	return &Runner{
		news:     newsSource,
		macro:    macroSource,
		model:    modelClient,
		reports:  reportCreator,
		archive:  rawArchive,
		pool:     fred.Pool,
		selector: fred.RandomSelector,
		cfg:      cfg,
		logger:   logger.With("system", "pipeline"),
	}
}

// WithSelector overrides the series selector. Tests use this to pin the
// sampled series deterministically.
func (r *Runner) WithSelector(selector fred.Selector) *Runner {
	r.selector = selector
	return r
}

// WithMacroSource overrides the macro source.
func (r *Runner) WithMacroSource(macro MacroSource) *Runner {
	r.macro = macro
	return r
}

// WithArchive overrides the raw output archive.
func (r *Runner) WithArchive(archive RawArchive) *Runner {
	r.archive = archive
	return r
}

// Run executes one pipeline run. The news and macro fetches have no mutual
// dependency and run concurrently; the model prompt depends only on the
// news result. Exactly one report row is written on success, zero on any
// failure path.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	started := time.Now()

	series := r.selector(r.pool)

	var articles []news.Article
	var observations []fred.Observation

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		fetched, err := r.news.FetchArticles(gctx)
		if err != nil {
			return &UpstreamError{Source: "news", Err: err}
		}
		articles = fetched
		return nil
	})

	g.Go(func() error {
		fetched, err := r.macro.Observations(gctx, series.ID)
		if err != nil {
			return &UpstreamError{Source: "macro", Err: err}
		}
		observations = fetched
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(articles) == 0 {
		return nil, ErrNoArticles
	}

	version := r.cfg.Version()
	prompt := BuildPrompt(articles, r.cfg.MaxPromptArticles, version)

	raw, err := r.model.Complete(ctx, systemPrompt, prompt)
	if err != nil {
		return nil, &UpstreamError{Source: "model", Err: err}
	}

	r.archiveRaw(ctx, raw)

	parsed, err := formatting.Parse[map[string]any](raw)
	if err != nil {
		return nil, &ParseError{Raw: raw, Err: err}
	}

	assessment, err := Validate(parsed, version, raw)
	if err != nil {
		return nil, err
	}

	cmd := buildCommand(assessment, series, observations)

	report, err := r.reports.Create(ctx, cmd)
	if err != nil {
		return nil, &StorageError{Err: err}
	}

	r.logger.Info("pipeline run complete",
		"report_id", report.ID,
		"rating", report.Rating,
		"articles", len(articles),
		"series", series.ID,
		"points", len(observations),
		"elapsed", time.Since(started),
	)

	return &Result{
		Report:           report,
		ArticlesAnalyzed: len(articles),
		SeriesTitle:      series.Title,
	}, nil
}

func buildCommand(a *Assessment, series fred.Series, observations []fred.Observation) reports.CreateCommand {
	cmd := reports.CreateCommand{
		Rating:               a.Rating,
		Summary:              a.Summary,
		ProductivityInsight:  a.ProductivityInsight,
		AmericanDreamImpact:  a.AmericanDreamImpact,
		ProdLaborScore:       a.ProdLaborScore,
		ProdLaborTooltip:     a.ProdLaborTooltip,
		AmericanDreamScore:   a.AmericanDreamScore,
		AmericanDreamTooltip: a.AmericanDreamTooltip,
	}

	// An empty series after sentinel filtering yields no chart data but
	// does not fail the run.
	if len(observations) > 0 {
		id := series.ID
		title := series.Title
		cmd.SeriesID = &id
		cmd.SeriesTitle = &title

		points := make([]reports.SeriesPoint, 0, len(observations))
		for _, obs := range observations {
			points = append(points, reports.SeriesPoint{
				Date:  obs.Date,
				Value: obs.Value,
			})
		}
		cmd.SeriesData = points
	}

	return cmd
}

const rawRunLayout = "2006-01-02T15-04-05.000000000"

// rawKey maps a run timestamp to its archive key. The raw-output endpoints
// accept the timestamp and reconstruct the key with this.
func rawKey(timestamp string) string {
	return fmt.Sprintf("runs/%s.txt", timestamp)
}

func (r *Runner) archiveRaw(ctx context.Context, raw string) {
	if r.archive == nil {
		return
	}

	key := rawKey(time.Now().UTC().Format(rawRunLayout))
	if err := r.archive.Store(ctx, key, strings.NewReader(raw), "text/plain"); err != nil {
		r.logger.Warn("raw output archive failed", "key", key, "error", err)
		return
	}

	r.logger.Info("raw output archived", "key", key)
}
