// Package app implements the application layer for prefab.
package app

import (
	"context"
	"runtime"

	"go.trai.ch/prefab/internal/core/domain"
	"go.trai.ch/prefab/internal/core/ports"
	"go.trai.ch/prefab/internal/engine/orchestrator"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// RunOptions control a single ensure invocation.
type RunOptions struct {
	// Force rebuilds targets even when their artifacts already exist.
	Force bool

	// NoCache disables both cache restore and cache save.
	NoCache bool

	// Parallelism caps concurrent targets. Zero means NumCPU.
	Parallelism int
}

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	orch         *orchestrator.Orchestrator
	logger       ports.Logger
	tracer       ports.Tracer
	configPath   string
}

// New creates a new App instance.
func New(loader ports.ConfigLoader, orch *orchestrator.Orchestrator, logger ports.Logger, tracer ports.Tracer) *App {
	return &App{
		configLoader: loader,
		orch:         orch,
		logger:       logger,
		tracer:       tracer,
		configPath:   "prefab.yaml",
	}
}

// WithConfigPath overrides the manifest path. Returns the App for chaining.
func (a *App) WithConfigPath(path string) *App {
	a.configPath = path
	return a
}

// ListTargets loads the manifest and returns all target names, sorted.
func (a *App) ListTargets() ([]string, error) {
	manifest, err := a.configLoader.Load(a.configPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	return manifest.Names(), nil
}

// Ensure makes the named targets' artifacts exist, building from source
// where the cache cannot satisfy them. Targets run concurrently; the
// reports come back in the order the targets were requested.
func (a *App) Ensure(ctx context.Context, targetNames []string, opts RunOptions) ([]*domain.RunReport, error) {
	manifest, err := a.configLoader.Load(a.configPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	specs, err := manifest.Select(targetNames)
	if err != nil {
		return nil, err
	}
	a.tracer.EmitPlan(ctx, targetNames)

	limit := opts.Parallelism
	if limit <= 0 {
		limit = runtime.NumCPU()
	}

	ensureOpts := orchestrator.Options{
		CacheEnabled: !opts.NoCache,
		Force:        opts.Force,
	}

	reports := make([]*domain.RunReport, len(specs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, spec := range specs {
		g.Go(func() error {
			report, err := a.orch.EnsureArtifact(gctx, spec, ensureOpts)
			if err != nil {
				return zerr.With(err, "target", spec.Target.Name)
			}
			reports[i] = report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, zerr.With(domain.ErrEnsureFailed, "cause", err.Error())
	}
	return reports, nil
}
