package patch_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/prefab/internal/adapters/patch"
	"go.trai.ch/prefab/internal/core/domain"
)

const genesisJSON = `{
  "chain_id": 99,
  "genesis_time": "2020-01-01T00:00:00Z",
  "consensus_params": {
    "block": {
      "max_bytes": "22020096"
    }
  }
}
`

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		p := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o750))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	return root
}

func TestPatcher_ReplacesMatchingLines(t *testing.T) {
	root := writeTree(t, map[string]string{
		"config/genesis.json": genesisJSON,
	})

	p := patch.NewPatcher()
	results, err := p.Apply(root, []domain.ConfigPatch{
		{FilePattern: "genesis.json", Key: "chain_id", NewValue: "1313161556"},
		{FilePattern: "genesis.json", Key: "max_bytes", NewValue: `"10485760"`},
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Equal(t, 1, results[0].Matches)
	require.Equal(t, 1, results[1].Matches)

	data, err := os.ReadFile(filepath.Join(root, "config", "genesis.json"))
	require.NoError(t, err)
	require.Contains(t, string(data), `  "chain_id": 1313161556,`)
	require.Contains(t, string(data), `      "max_bytes": "10485760"`)
	require.NotContains(t, string(data), "22020096")
}

func TestPatcher_Idempotent(t *testing.T) {
	root := writeTree(t, map[string]string{
		"genesis.json": genesisJSON,
	})
	patches := []domain.ConfigPatch{
		{FilePattern: "*.json", Key: "chain_id", NewValue: "1"},
	}

	p := patch.NewPatcher()
	_, err := p.Apply(root, patches)
	require.NoError(t, err)

	once, err := os.ReadFile(filepath.Join(root, "genesis.json"))
	require.NoError(t, err)

	_, err = p.Apply(root, patches)
	require.NoError(t, err)

	twice, err := os.ReadFile(filepath.Join(root, "genesis.json"))
	require.NoError(t, err)
	require.Equal(t, string(once), string(twice))
}

func TestPatcher_MissingKeyIsNoOp(t *testing.T) {
	root := writeTree(t, map[string]string{
		"genesis.json": genesisJSON,
	})

	p := patch.NewPatcher()
	results, err := p.Apply(root, []domain.ConfigPatch{
		{FilePattern: "*.json", Key: "no_such_key", NewValue: "1"},
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, 0, results[0].Matches)

	data, err := os.ReadFile(filepath.Join(root, "genesis.json"))
	require.NoError(t, err)
	require.Equal(t, genesisJSON, string(data))
}

func TestPatcher_PatternWithSeparatorMatchesRelativePath(t *testing.T) {
	root := writeTree(t, map[string]string{
		"config/genesis.json": genesisJSON,
		"other/genesis.json":  genesisJSON,
	})

	p := patch.NewPatcher()
	results, err := p.Apply(root, []domain.ConfigPatch{
		{FilePattern: "config/*.json", Key: "chain_id", NewValue: "7"},
	})
	require.NoError(t, err)
	require.Equal(t, 1, results[0].Files)

	patched, err := os.ReadFile(filepath.Join(root, "config", "genesis.json"))
	require.NoError(t, err)
	require.Contains(t, string(patched), `"chain_id": 7,`)

	untouched, err := os.ReadFile(filepath.Join(root, "other", "genesis.json"))
	require.NoError(t, err)
	require.Equal(t, genesisJSON, string(untouched))
}

func TestPatcher_AppliesInListOrder(t *testing.T) {
	root := writeTree(t, map[string]string{
		"genesis.json": genesisJSON,
	})

	// Later patches see the output of earlier ones; the last write wins.
	p := patch.NewPatcher()
	_, err := p.Apply(root, []domain.ConfigPatch{
		{FilePattern: "*.json", Key: "chain_id", NewValue: "1"},
		{FilePattern: "*.json", Key: "chain_id", NewValue: "2"},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(root, "genesis.json"))
	require.NoError(t, err)
	require.Contains(t, string(data), `"chain_id": 2,`)
	require.NotContains(t, string(data), `"chain_id": 1,`)
}

func TestPatcher_SkipsGitMetadata(t *testing.T) {
	root := writeTree(t, map[string]string{
		".git/genesis.json": genesisJSON,
	})

	p := patch.NewPatcher()
	results, err := p.Apply(root, []domain.ConfigPatch{
		{FilePattern: "*.json", Key: "chain_id", NewValue: "1"},
	})
	require.NoError(t, err)
	require.Equal(t, 0, results[0].Files)
}
