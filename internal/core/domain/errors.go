package domain

import "go.trai.ch/zerr"

var (
	// ErrNoTargetsSpecified is returned when no targets are specified for the ensure command.
	ErrNoTargetsSpecified = zerr.New("no targets specified")

	// ErrTargetNotFound is returned when a requested target is not in the manifest.
	ErrTargetNotFound = zerr.New("target not found in manifest")

	// ErrDuplicateArtifactPath is returned when two selected targets would write the same artifact path.
	// Same-path runs must be serialized; within one invocation this is a hard error.
	ErrDuplicateArtifactPath = zerr.New("duplicate artifact path across targets")

	// ErrCheckoutFailed is returned when the source repository cannot be materialized
	// at the pinned revision.
	ErrCheckoutFailed = zerr.New("checkout failed")

	// ErrRevisionNotFound is returned when the pinned revision does not exist in the repository.
	ErrRevisionNotFound = zerr.New("revision not found")

	// ErrPatchFailed is returned when applying config patches to the checkout fails.
	ErrPatchFailed = zerr.New("config patch failed")

	// ErrBuildFailed is returned when the external build command exits non-zero.
	// Carries exit_code and output metadata.
	ErrBuildFailed = zerr.New("build command failed")

	// ErrInstallFailed is returned when the expected build output is absent or cannot
	// be copied to the artifact path.
	ErrInstallFailed = zerr.New("install failed")

	// ErrArtifactMissing is returned when the artifact is absent after the build path
	// claimed success. Fatal: it indicates a contract violation between build and install.
	ErrArtifactMissing = zerr.New("artifact missing after build")

	// ErrEnsureFailed is returned when one or more targets could not be ensured.
	ErrEnsureFailed = zerr.New("ensure failed")

	// ErrConfigReadFailed is returned when the manifest file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read manifest")

	// ErrConfigParseFailed is returned when the manifest file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse manifest")

	// ErrMissingArtifactPath is returned when a target omits the artifact path.
	ErrMissingArtifactPath = zerr.New("target is missing artifact path")

	// ErrMissingRepositoryURL is returned when a target omits the source repository URL.
	ErrMissingRepositoryURL = zerr.New("target is missing repository url")

	// ErrMissingCheckoutPath is returned when a target omits the checkout path.
	ErrMissingCheckoutPath = zerr.New("target is missing checkout path")

	// ErrMissingRevision is returned when a target omits the source revision.
	ErrMissingRevision = zerr.New("target is missing revision")

	// ErrMissingBuildCommand is returned when a target omits the build command.
	ErrMissingBuildCommand = zerr.New("target is missing build command")

	// ErrMissingBuildOutput is returned when a target omits the build output path.
	ErrMissingBuildOutput = zerr.New("target is missing build output path")

	// ErrMissingPatchPattern is returned when a patch omits its file pattern.
	ErrMissingPatchPattern = zerr.New("patch is missing file pattern")

	// ErrMissingPatchKey is returned when a patch omits its key.
	ErrMissingPatchKey = zerr.New("patch is missing key")
)
