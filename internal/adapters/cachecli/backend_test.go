package cachecli_test

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/prefab/internal/adapters/cachecli"
)

type nopLogger struct{}

func (nopLogger) Info(string) {}
func (nopLogger) Warn(string) {}
func (nopLogger) Error(error) {}

// writeCacheTool installs a shell script that stores entries as files
// named after the key in a sidecar directory.
func writeCacheTool(t *testing.T) (tool []string, storeDir string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}

	dir := t.TempDir()
	storeDir = filepath.Join(dir, "store")
	require.NoError(t, os.MkdirAll(storeDir, 0o750))

	script := filepath.Join(dir, "cache-tool")
	body := `#!/bin/sh
op="$1"; key="$2"; path="$3"
case "$op" in
  restore) [ -f "` + storeDir + `/$key" ] || exit 1; cp "` + storeDir + `/$key" "$path" ;;
  save) cp "$path" "` + storeDir + `/$key" ;;
  *) exit 2 ;;
esac
`
	require.NoError(t, os.WriteFile(script, []byte(body), 0o755))
	return []string{script}, storeDir
}

func TestBackend_SaveThenRestore(t *testing.T) {
	tool, _ := writeCacheTool(t)
	b := cachecli.NewBackend(tool, nopLogger{})

	dir := t.TempDir()
	src := filepath.Join(dir, "engine")
	require.NoError(t, os.WriteFile(src, []byte("artifact"), 0o755))

	require.True(t, b.Save(context.Background(), "key1", src))

	dest := filepath.Join(dir, "restored")
	require.True(t, b.Restore(context.Background(), "key1", dest))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	require.Equal(t, []byte("artifact"), data)
}

func TestBackend_RestoreMissIsFalseNotError(t *testing.T) {
	tool, _ := writeCacheTool(t)
	b := cachecli.NewBackend(tool, nopLogger{})

	dest := filepath.Join(t.TempDir(), "restored")
	require.False(t, b.Restore(context.Background(), "absent", dest))
	_, err := os.Stat(dest)
	require.True(t, os.IsNotExist(err))
}

func TestBackend_SaveFailureIsFalse(t *testing.T) {
	tool, _ := writeCacheTool(t)
	b := cachecli.NewBackend(tool, nopLogger{})

	// Saving a nonexistent file makes cp fail.
	require.False(t, b.Save(context.Background(), "key", filepath.Join(t.TempDir(), "missing")))
}

func TestBackend_MissingToolIsFalse(t *testing.T) {
	b := cachecli.NewBackend([]string{"definitely-not-a-real-tool-p9q8"}, nopLogger{})

	require.False(t, b.Restore(context.Background(), "k", filepath.Join(t.TempDir(), "x")))
	require.False(t, b.Save(context.Background(), "k", filepath.Join(t.TempDir(), "x")))
}

func TestToolFromEnv(t *testing.T) {
	t.Setenv(cachecli.EnvTool, "my-tool --endpoint http://cache.local")
	require.Equal(t, []string{"my-tool", "--endpoint", "http://cache.local"}, cachecli.ToolFromEnv())

	t.Setenv(cachecli.EnvTool, "")
	require.Equal(t, []string{cachecli.DefaultTool}, cachecli.ToolFromEnv())
}
