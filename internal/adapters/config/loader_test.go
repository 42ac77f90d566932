package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/prefab/internal/adapters/config"
	"go.trai.ch/prefab/internal/core/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string) {}
func (nopLogger) Warn(string) {}
func (nopLogger) Error(error) {}

const manifestYAML = `version: "1"
targets:
  engine:
    artifact: bin/engine
    cacheKey: engine-2.8.1-testnet
    source:
      url: https://example.com/engine.git
      checkout: .prefab/src/engine
      revision: "2.8.1"
    build:
      cmd: ["cargo", "build", "--release"]
      output: target/release/engine
      environment:
        CARGO_PROFILE: release
    patches:
      - file: "*.json"
        key: chain_id
        value: "1313161556"
      - file: "*.json"
        key: max_bytes
        value: '"10485760"'
  relayer:
    artifact: bin/relayer
    source:
      url: https://example.com/relayer.git
      checkout: .prefab/src/relayer
      revision: v0.4.0
    build:
      cmd: ["make", "release"]
      output: out/relayer
`

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prefab.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoader_Load(t *testing.T) {
	l := config.NewLoader(nopLogger{})

	manifest, err := l.Load(writeManifest(t, manifestYAML))
	require.NoError(t, err)
	require.Equal(t, []string{"engine", "relayer"}, manifest.Names())

	engine, ok := manifest.Get("engine")
	require.True(t, ok)
	require.Equal(t, "bin/engine", engine.Target.ArtifactPath)
	require.Equal(t, "engine-2.8.1-testnet", engine.Target.CacheKey)
	require.Equal(t, "2.8.1", engine.Source.Revision)
	require.Equal(t, []string{"cargo", "build", "--release"}, engine.BuildCommand)
	require.Equal(t, "target/release/engine", engine.BuildOutput)
	require.Equal(t, map[string]string{"CARGO_PROFILE": "release"}, engine.Environment)
	require.Len(t, engine.Patches, 2)
	require.Equal(t, domain.ConfigPatch{
		FilePattern: "*.json",
		Key:         "chain_id",
		NewValue:    "1313161556",
	}, engine.Patches[0])
}

func TestLoader_DerivesCacheKeyWhenOmitted(t *testing.T) {
	l := config.NewLoader(nopLogger{})

	manifest, err := l.Load(writeManifest(t, manifestYAML))
	require.NoError(t, err)

	relayer, ok := manifest.Get("relayer")
	require.True(t, ok)
	require.Len(t, relayer.Target.CacheKey, 16, "derived keys are xxhash hex")

	// Same manifest loads to the same derived key.
	again, err := l.Load(writeManifest(t, manifestYAML))
	require.NoError(t, err)
	relayer2, _ := again.Get("relayer")
	require.Equal(t, relayer.Target.CacheKey, relayer2.Target.CacheKey)
}

func TestLoader_MissingFile(t *testing.T) {
	l := config.NewLoader(nopLogger{})
	_, err := l.Load(filepath.Join(t.TempDir(), "prefab.yaml"))
	require.ErrorIs(t, err, domain.ErrConfigReadFailed)
}

func TestLoader_MalformedYAML(t *testing.T) {
	l := config.NewLoader(nopLogger{})
	_, err := l.Load(writeManifest(t, "targets: ["))
	require.ErrorIs(t, err, domain.ErrConfigParseFailed)
}

func TestLoader_InvalidTarget(t *testing.T) {
	l := config.NewLoader(nopLogger{})
	_, err := l.Load(writeManifest(t, `version: "1"
targets:
  broken:
    artifact: bin/broken
    source:
      url: https://example.com/broken.git
      checkout: .prefab/src/broken
      revision: v1
    build:
      output: out/broken
`))
	require.ErrorIs(t, err, domain.ErrMissingBuildCommand)
}
