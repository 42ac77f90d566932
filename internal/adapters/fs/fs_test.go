package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/prefab/internal/adapters/fs"
	"go.trai.ch/prefab/internal/core/domain"
)

func TestArtifactStore_Present(t *testing.T) {
	store := fs.NewArtifactStore()
	dir := t.TempDir()

	require.False(t, store.Present(filepath.Join(dir, "missing")))
	require.False(t, store.Present(dir), "directories are not artifacts")

	path := filepath.Join(dir, "engine")
	require.NoError(t, os.WriteFile(path, []byte("binary"), 0o644))
	require.True(t, store.Present(path))
}

func TestArtifactStore_Install(t *testing.T) {
	store := fs.NewArtifactStore()
	dir := t.TempDir()

	src := filepath.Join(dir, "target", "release", "engine")
	require.NoError(t, os.MkdirAll(filepath.Dir(src), 0o750))
	require.NoError(t, os.WriteFile(src, []byte("binary contents"), 0o644))

	dest := filepath.Join(dir, "bin", "engine")
	require.NoError(t, store.Install(src, dest))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	require.Equal(t, []byte("binary contents"), data)

	info, err := os.Stat(dest)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o755), info.Mode().Perm())
}

func TestArtifactStore_InstallMissingSource(t *testing.T) {
	store := fs.NewArtifactStore()
	dir := t.TempDir()

	err := store.Install(filepath.Join(dir, "nope"), filepath.Join(dir, "bin", "engine"))
	require.Error(t, err)
	require.False(t, store.Present(filepath.Join(dir, "bin", "engine")))
}

func TestFingerprint_Deterministic(t *testing.T) {
	source := domain.SourceRef{
		RepositoryURL: "https://example.com/engine.git",
		CheckoutPath:  "/tmp/engine",
		Revision:      "2.8.1",
	}
	patches := []domain.ConfigPatch{
		{FilePattern: "*.json", Key: "chain_id", NewValue: "1313161556"},
	}

	a := fs.Fingerprint(source, patches)
	b := fs.Fingerprint(source, patches)
	require.Equal(t, a, b)
	require.Len(t, a, 16)

	// Checkout path does not influence the key.
	moved := source
	moved.CheckoutPath = "/elsewhere"
	require.Equal(t, a, fs.Fingerprint(moved, patches))
}

func TestFingerprint_SensitiveToRecipe(t *testing.T) {
	source := domain.SourceRef{RepositoryURL: "https://example.com/engine.git", Revision: "2.8.1"}
	patches := []domain.ConfigPatch{{FilePattern: "*.json", Key: "chain_id", NewValue: "1"}}

	base := fs.Fingerprint(source, patches)

	bumped := source
	bumped.Revision = "2.8.2"
	require.NotEqual(t, base, fs.Fingerprint(bumped, patches))

	changed := []domain.ConfigPatch{{FilePattern: "*.json", Key: "chain_id", NewValue: "2"}}
	require.NotEqual(t, base, fs.Fingerprint(source, changed))

	require.NotEqual(t, base, fs.Fingerprint(source, nil))
}
