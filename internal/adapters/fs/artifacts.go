// Package fs implements filesystem adapters: the artifact store and the
// cache-key fingerprint.
package fs

import (
	"io"
	"os"
	"path/filepath"

	"go.trai.ch/prefab/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ArtifactStore = (*ArtifactStore)(nil)

// ArtifactStore probes and installs artifacts on the local filesystem.
type ArtifactStore struct{}

// NewArtifactStore creates a new ArtifactStore.
func NewArtifactStore() *ArtifactStore {
	return &ArtifactStore{}
}

// Present reports whether a regular file exists at path.
func (s *ArtifactStore) Present(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// Install copies the build output at srcPath to destPath, creating parent
// directories and marking the result executable. The copy goes through a
// temp file in the destination directory so a crash never leaves a
// truncated artifact at destPath.
func (s *ArtifactStore) Install(srcPath, destPath string) error {
	src, err := os.Open(srcPath) //nolint:gosec // Path comes from the manifest
	if err != nil {
		return zerr.With(zerr.Wrap(err, "build output not found"), "path", srcPath)
	}
	defer src.Close() //nolint:errcheck // Best effort close in defer

	dir := filepath.Dir(destPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create artifact directory"), "path", dir)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(destPath)+".tmp-*")
	if err != nil {
		return zerr.Wrap(err, "failed to create temp file for install")
	}
	tmpPath := tmp.Name()

	if _, err := io.Copy(tmp, src); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return zerr.With(zerr.Wrap(err, "failed to copy build output"), "path", srcPath)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return zerr.Wrap(err, "failed to flush installed artifact")
	}

	if err := os.Chmod(tmpPath, 0o755); err != nil { //nolint:gosec // Artifact is an executable
		_ = os.Remove(tmpPath)
		return zerr.Wrap(err, "failed to mark artifact executable")
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		_ = os.Remove(tmpPath)
		return zerr.With(zerr.Wrap(err, "failed to move artifact into place"), "path", destPath)
	}

	return nil
}
