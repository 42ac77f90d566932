// Package domain contains the core types for the prefab orchestrator.
package domain

// BuildTarget identifies the artifact the orchestrator must guarantee
// exists at a known filesystem path. Presence is probed through the
// artifact store, never assumed.
type BuildTarget struct {
	// Name is the manifest key for this target, used in logs and errors.
	Name string

	// ArtifactPath is the absolute or cwd-relative path where the built
	// binary must exist at the end of a successful run.
	ArtifactPath string

	// CacheKey addresses a previously stored copy of the artifact in the
	// external cache. Opaque to the orchestrator.
	CacheKey string
}

// SourceRef pins the source repository used for the build-from-source
// path. Immutable once constructed.
type SourceRef struct {
	RepositoryURL string
	CheckoutPath  string
	Revision      string
}

// TargetSpec is the full recipe for one target: the artifact to ensure,
// the source to build it from when the cache cannot supply it, and the
// config patches applied between checkout and build.
type TargetSpec struct {
	Target  BuildTarget
	Source  SourceRef
	Patches []ConfigPatch

	// BuildCommand is invoked in the checkout directory with
	// production-release settings baked into its arguments.
	BuildCommand []string

	// BuildOutput is the path of the produced binary relative to the
	// checkout directory, copied to Target.ArtifactPath by the install
	// step.
	BuildOutput string

	// Environment holds extra environment variables for the build
	// command, layered over the process environment.
	Environment map[string]string
}

// Validate checks the spec for the fields the orchestrator cannot run
// without.
func (s *TargetSpec) Validate() error {
	if s.Target.ArtifactPath == "" {
		return ErrMissingArtifactPath
	}
	if s.Source.RepositoryURL == "" {
		return ErrMissingRepositoryURL
	}
	if s.Source.CheckoutPath == "" {
		return ErrMissingCheckoutPath
	}
	if s.Source.Revision == "" {
		return ErrMissingRevision
	}
	if len(s.BuildCommand) == 0 {
		return ErrMissingBuildCommand
	}
	if s.BuildOutput == "" {
		return ErrMissingBuildOutput
	}
	for _, p := range s.Patches {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	return nil
}
