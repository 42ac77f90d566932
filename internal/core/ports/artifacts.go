package ports

// ArtifactStore probes and installs build artifacts on the local
// filesystem.
//
//go:generate go run go.uber.org/mock/mockgen -source=artifacts.go -destination=mocks/mock_artifacts.go -package=mocks
type ArtifactStore interface {
	// Present reports whether a regular file exists at path.
	Present(path string) bool

	// Install copies the build output at srcPath to destPath, creating
	// parent directories and marking the result executable.
	Install(srcPath, destPath string) error
}
