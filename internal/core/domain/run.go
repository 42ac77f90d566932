package domain

import "time"

// Phase tracks the orchestrator's progress through a single ensure run.
// Transitions are strictly forward; there are no automatic retries.
type Phase string

const (
	// PhaseNotStarted is the initial phase before any probe.
	PhaseNotStarted Phase = "NotStarted"
	// PhaseCacheChecked indicates the cache restore step has run (or was
	// skipped because caching is disabled).
	PhaseCacheChecked Phase = "CacheChecked"
	// PhaseSatisfied indicates the artifact was present without a build.
	PhaseSatisfied Phase = "Satisfied"
	// PhaseSourceBuild indicates the checkout/patch/build/install path ran.
	PhaseSourceBuild Phase = "SourceBuild"
	// PhaseVerified indicates the final presence check passed.
	PhaseVerified Phase = "Verified"
	// PhaseCacheSaved indicates a freshly built artifact was saved to cache.
	PhaseCacheSaved Phase = "CacheSaved"
	// PhaseDone is the terminal success phase.
	PhaseDone Phase = "Done"
)

// Outcome describes how a successful ensure run satisfied its target.
type Outcome string

const (
	// OutcomeAlreadyPresent means the artifact existed before the run.
	OutcomeAlreadyPresent Outcome = "already-present"
	// OutcomeRestored means the artifact was repopulated from the cache.
	OutcomeRestored Outcome = "restored"
	// OutcomeBuilt means the artifact was built from source.
	OutcomeBuilt Outcome = "built"
)

// RunReport summarizes a completed ensure run for one target.
type RunReport struct {
	Target     string
	Outcome    Outcome
	CacheSaved bool
	Duration   time.Duration
}
