package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/prefab/internal/core/domain"
)

func validSpec(name, artifact string) *domain.TargetSpec {
	return &domain.TargetSpec{
		Target: domain.BuildTarget{
			Name:         name,
			ArtifactPath: artifact,
			CacheKey:     "key-" + name,
		},
		Source: domain.SourceRef{
			RepositoryURL: "https://example.com/repo.git",
			CheckoutPath:  "/tmp/checkout/" + name,
			Revision:      "v1.0.0",
		},
		BuildCommand: []string{"make", "release"},
		BuildOutput:  "bin/node",
	}
}

func TestTargetSpec_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.TargetSpec)
		wantErr error
	}{
		{"valid", func(*domain.TargetSpec) {}, nil},
		{"missing artifact path", func(s *domain.TargetSpec) { s.Target.ArtifactPath = "" }, domain.ErrMissingArtifactPath},
		{"missing repository url", func(s *domain.TargetSpec) { s.Source.RepositoryURL = "" }, domain.ErrMissingRepositoryURL},
		{"missing checkout path", func(s *domain.TargetSpec) { s.Source.CheckoutPath = "" }, domain.ErrMissingCheckoutPath},
		{"missing revision", func(s *domain.TargetSpec) { s.Source.Revision = "" }, domain.ErrMissingRevision},
		{"missing build command", func(s *domain.TargetSpec) { s.BuildCommand = nil }, domain.ErrMissingBuildCommand},
		{"missing build output", func(s *domain.TargetSpec) { s.BuildOutput = "" }, domain.ErrMissingBuildOutput},
		{"missing patch key", func(s *domain.TargetSpec) {
			s.Patches = []domain.ConfigPatch{{FilePattern: "*.json"}}
		}, domain.ErrMissingPatchKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := validSpec("engine", "/tmp/bin/engine")
			tt.mutate(spec)
			err := spec.Validate()
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestManifest_Select(t *testing.T) {
	m := domain.NewManifest()
	require.NoError(t, m.AddTarget(validSpec("a", "/tmp/bin/a")))
	require.NoError(t, m.AddTarget(validSpec("b", "/tmp/bin/b")))

	specs, err := m.Select([]string{"a", "b"})
	require.NoError(t, err)
	require.Len(t, specs, 2)

	_, err = m.Select(nil)
	require.ErrorIs(t, err, domain.ErrNoTargetsSpecified)

	_, err = m.Select([]string{"missing"})
	require.ErrorIs(t, err, domain.ErrTargetNotFound)
}

func TestManifest_SelectRejectsSharedArtifactPath(t *testing.T) {
	m := domain.NewManifest()
	require.NoError(t, m.AddTarget(validSpec("a", "/tmp/bin/shared")))
	require.NoError(t, m.AddTarget(validSpec("b", "/tmp/bin/shared")))

	_, err := m.Select([]string{"a", "b"})
	require.True(t, errors.Is(err, domain.ErrDuplicateArtifactPath))
}

func TestManifest_Names(t *testing.T) {
	m := domain.NewManifest()
	require.NoError(t, m.AddTarget(validSpec("zeta", "/tmp/bin/z")))
	require.NoError(t, m.AddTarget(validSpec("alpha", "/tmp/bin/a")))

	require.Equal(t, []string{"alpha", "zeta"}, m.Names())
}

func TestConfigPatch_Render(t *testing.T) {
	p := domain.ConfigPatch{FilePattern: "*.json", Key: "chain_id", NewValue: "1313161556"}

	got := p.Render(`    "chain_id": 99,`)
	require.Equal(t, `    "chain_id": 1313161556,`, got)

	// No trailing comma on the original line means none on the replacement.
	got = p.Render(`	"chain_id": 99`)
	require.Equal(t, "\t"+`"chain_id": 1313161556`, got)

	// Rendering an already rendered line is a no-op.
	require.Equal(t, got, p.Render(got))
}
