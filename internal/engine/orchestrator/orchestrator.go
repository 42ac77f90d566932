// Package orchestrator implements the ensure-artifact state machine.
package orchestrator

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.trai.ch/prefab/internal/core/domain"
	"go.trai.ch/prefab/internal/core/ports"
	"go.trai.ch/zerr"
)

// Options control a single ensure run.
type Options struct {
	// CacheEnabled gates both the restore and the save step.
	CacheEnabled bool

	// Force skips the initial presence short-circuit and rebuilds even
	// when the artifact already exists.
	Force bool
}

// Orchestrator ensures a build artifact exists, using the cache when it
// can and the full checkout/patch/build/install path when it must.
//
// Each run walks the phases
// NotStarted -> CacheChecked -> {Satisfied | SourceBuild} -> Verified ->
// {CacheSaved | Done}. Transitions are strictly forward and nothing is
// retried; the caller decides whether to re-invoke after a failure.
type Orchestrator struct {
	cache     ports.CacheBackend
	fetcher   ports.SourceFetcher
	patcher   ports.Patcher
	executor  ports.Executor
	artifacts ports.ArtifactStore
	logger    ports.Logger
	tracer    ports.Tracer
}

// New creates a new Orchestrator.
func New(
	cache ports.CacheBackend,
	fetcher ports.SourceFetcher,
	patcher ports.Patcher,
	executor ports.Executor,
	artifacts ports.ArtifactStore,
	logger ports.Logger,
	tracer ports.Tracer,
) *Orchestrator {
	return &Orchestrator{
		cache:     cache,
		fetcher:   fetcher,
		patcher:   patcher,
		executor:  executor,
		artifacts: artifacts,
		logger:    logger,
		tracer:    tracer,
	}
}

// EnsureArtifact guarantees spec's artifact exists at its path, returning
// a report of how the run satisfied the target. Success always implies
// the artifact is present.
func (o *Orchestrator) EnsureArtifact(ctx context.Context, spec *domain.TargetSpec, opts Options) (*domain.RunReport, error) {
	start := time.Now()
	target := spec.Target
	phase := domain.PhaseNotStarted

	report := func(outcome domain.Outcome, saved bool) *domain.RunReport {
		return &domain.RunReport{
			Target:     target.Name,
			Outcome:    outcome,
			CacheSaved: saved,
			Duration:   time.Since(start),
		}
	}

	// Idempotent no-op: a present artifact means zero external calls.
	// Force bypasses both short-circuits and goes straight to source.
	if !opts.Force && o.artifacts.Present(target.ArtifactPath) {
		o.logger.Info("artifact already present at " + target.ArtifactPath)
		return report(domain.OutcomeAlreadyPresent, false), nil
	}

	restored := false
	if !opts.Force && opts.CacheEnabled {
		restored = o.restore(ctx, target)
	}
	phase = domain.PhaseCacheChecked

	freshlyBuilt := false
	if opts.Force || !o.artifacts.Present(target.ArtifactPath) {
		phase = domain.PhaseSourceBuild
		if err := o.buildFromSource(ctx, spec); err != nil {
			return nil, zerr.With(err, "phase", string(phase))
		}
		freshlyBuilt = true
	} else {
		phase = domain.PhaseSatisfied
	}

	// A build or install step claiming success while the artifact is
	// absent is a contract violation, not a retryable condition.
	if !o.artifacts.Present(target.ArtifactPath) {
		return nil, zerr.With(zerr.With(zerr.With(domain.ErrArtifactMissing,
			"target", target.Name),
			"path", target.ArtifactPath),
			"phase", string(phase))
	}
	phase = domain.PhaseVerified

	saved := false
	if opts.CacheEnabled && freshlyBuilt {
		saved = o.save(ctx, target)
		if saved {
			phase = domain.PhaseCacheSaved
		}
	}
	phase = domain.PhaseDone

	outcome := domain.OutcomeAlreadyPresent
	switch {
	case freshlyBuilt:
		outcome = domain.OutcomeBuilt
	case restored:
		outcome = domain.OutcomeRestored
	}

	o.logger.Info(fmt.Sprintf("target %s %s in %s (%s)",
		target.Name, outcome, time.Since(start).Round(time.Millisecond), phase))
	return report(outcome, saved), nil
}

// restore attempts a cache restore. A miss is a normal outcome.
func (o *Orchestrator) restore(ctx context.Context, target domain.BuildTarget) bool {
	ctx, span := o.tracer.Start(ctx, "restore "+target.Name)
	defer span.End()
	span.SetAttribute("cache_key", target.CacheKey)

	if o.cache.Restore(ctx, target.CacheKey, target.ArtifactPath) {
		span.Cached()
		o.logger.Info("restored " + target.Name + " from cache")
		return true
	}
	return false
}

// buildFromSource runs the checkout/patch/build/install path.
func (o *Orchestrator) buildFromSource(ctx context.Context, spec *domain.TargetSpec) error {
	if err := o.checkout(ctx, spec); err != nil {
		return err
	}
	if err := o.applyPatches(ctx, spec); err != nil {
		return err
	}
	if err := o.build(ctx, spec); err != nil {
		return err
	}
	return o.install(ctx, spec)
}

func (o *Orchestrator) checkout(ctx context.Context, spec *domain.TargetSpec) error {
	ctx, span := o.tracer.Start(ctx, "checkout "+spec.Target.Name)
	defer span.End()
	span.SetAttribute("revision", spec.Source.Revision)

	if err := o.fetcher.Checkout(ctx, spec.Source); err != nil {
		span.RecordError(err)
		return zerr.Wrap(err, "failed to fetch source")
	}
	return nil
}

func (o *Orchestrator) applyPatches(ctx context.Context, spec *domain.TargetSpec) error {
	if len(spec.Patches) == 0 {
		return nil
	}

	_, span := o.tracer.Start(ctx, "patch "+spec.Target.Name)
	defer span.End()

	results, err := o.patcher.Apply(spec.Source.CheckoutPath, spec.Patches)
	if err != nil {
		span.RecordError(err)
		return zerr.With(zerr.With(domain.ErrPatchFailed,
			"cause", err.Error()),
			"target", spec.Target.Name)
	}

	// A patch that matched nothing is tolerated but never hidden: it
	// usually means the key moved or was renamed upstream.
	for _, r := range results {
		if r.Matches == 0 {
			o.logger.Warn(fmt.Sprintf("patch %q on %q matched no lines", r.Patch.Key, r.Patch.FilePattern))
		}
	}
	return nil
}

func (o *Orchestrator) build(ctx context.Context, spec *domain.TargetSpec) error {
	ctx, span := o.tracer.Start(ctx, "build "+spec.Target.Name)
	defer span.End()
	_, _ = fmt.Fprintln(span, strings.Join(spec.BuildCommand, " "))

	o.logger.Info("building " + spec.Target.Name + " from source")
	if err := o.executor.Execute(ctx, spec.BuildCommand, spec.Source.CheckoutPath, spec.Environment); err != nil {
		span.RecordError(err)
		e := zerr.With(domain.ErrBuildFailed, "target", spec.Target.Name)
		if zErr, ok := err.(*zerr.Error); ok {
			for k, v := range zErr.Metadata() {
				e = zerr.With(e, k, v)
			}
		}
		return e
	}
	return nil
}

func (o *Orchestrator) install(ctx context.Context, spec *domain.TargetSpec) error {
	_, span := o.tracer.Start(ctx, "install "+spec.Target.Name)
	defer span.End()

	src := filepath.Join(spec.Source.CheckoutPath, spec.BuildOutput)
	if err := o.artifacts.Install(src, spec.Target.ArtifactPath); err != nil {
		span.RecordError(err)
		return zerr.With(zerr.With(domain.ErrInstallFailed,
			"cause", err.Error()),
			"target", spec.Target.Name)
	}
	return nil
}

// save is best-effort: a failed save is logged, never fatal.
func (o *Orchestrator) save(ctx context.Context, target domain.BuildTarget) bool {
	ctx, span := o.tracer.Start(ctx, "save "+target.Name)
	defer span.End()
	span.SetAttribute("cache_key", target.CacheKey)

	if !o.cache.Save(ctx, target.CacheKey, target.ArtifactPath) {
		o.logger.Warn("cache save failed for " + target.Name + "; continuing")
		return false
	}
	return true
}
