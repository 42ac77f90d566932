// Package cachecli implements the cache backend by driving an external
// cache utility.
package cachecli

import (
	"context"
	"os"
	"os/exec"
	"strings"

	"go.trai.ch/prefab/internal/core/ports"
)

// DefaultTool is the cache utility invoked when PREFAB_CACHE_TOOL is unset.
const DefaultTool = "prefab-cache"

// EnvTool overrides the cache utility command, split on whitespace.
const EnvTool = "PREFAB_CACHE_TOOL"

var _ ports.CacheBackend = (*Backend)(nil)

// Backend shells out to a cache utility with the contract
// `<tool> restore <key> <path>` / `<tool> save <key> <path>`.
//
// Every failure mode is folded into the boolean result: a missing tool, a
// non-zero exit, or a restore that did not produce the file all read as
// "no". The cache is an optimization, never a correctness dependency.
type Backend struct {
	tool   []string
	logger ports.Logger
}

// NewBackend creates a Backend invoking the given tool command.
func NewBackend(tool []string, logger ports.Logger) *Backend {
	return &Backend{
		tool:   tool,
		logger: logger,
	}
}

// ToolFromEnv resolves the cache tool command from the environment.
func ToolFromEnv() []string {
	if v := os.Getenv(EnvTool); v != "" {
		return strings.Fields(v)
	}
	return []string{DefaultTool}
}

// Restore repopulates destPath from the cache entry addressed by key.
func (b *Backend) Restore(ctx context.Context, key, destPath string) bool {
	if err := b.run(ctx, "restore", key, destPath); err != nil {
		b.logger.Info("cache miss for key " + key)
		return false
	}
	// The tool exiting zero is not proof the file landed.
	if _, err := os.Stat(destPath); err != nil {
		b.logger.Warn("cache tool reported a hit but produced no file for key " + key)
		return false
	}
	return true
}

// Save stores srcPath under key.
func (b *Backend) Save(ctx context.Context, key, srcPath string) bool {
	if err := b.run(ctx, "save", key, srcPath); err != nil {
		b.logger.Warn("cache save failed for key " + key + ": " + err.Error())
		return false
	}
	return true
}

func (b *Backend) run(ctx context.Context, args ...string) error {
	if len(b.tool) == 0 {
		return exec.ErrNotFound
	}
	argv := append(append([]string{}, b.tool[1:]...), args...)
	cmd := exec.CommandContext(ctx, b.tool[0], argv...) //nolint:gosec // Tool is operator-configured
	cmd.Stdout = nil
	cmd.Stderr = nil
	return cmd.Run()
}
