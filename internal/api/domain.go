package api

import (
	"github.com/pulse-works/pulse/internal/pipeline"
	"github.com/pulse-works/pulse/internal/reports"
	"github.com/pulse-works/pulse/internal/snapshots"
	"github.com/pulse-works/pulse/internal/sources/fred"
	"github.com/pulse-works/pulse/internal/sources/model"
	"github.com/pulse-works/pulse/internal/sources/news"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Reports   reports.System
	Snapshots snapshots.System
	Runner    *pipeline.Runner
}

// NewDomain creates all domain systems and the pipeline runner from the
// API runtime.
func NewDomain(runtime *Runtime) *Domain {
	reportsSystem := reports.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
	)

	snapshotsSystem := snapshots.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
		reportsSystem,
	)

	runner := pipeline.NewRunner(
		news.NewClient(&runtime.Sources.News, runtime.Logger),
		fred.NewClient(&runtime.Sources.Fred, runtime.Logger),
		model.NewClient(&runtime.Sources.Model, runtime.Logger),
		reportsSystem,
		runtime.Archive,
		runtime.Pipeline,
		runtime.Logger,
	)

	return &Domain{
		Reports:   reportsSystem,
		Snapshots: snapshotsSystem,
		Runner:    runner,
	}
}
