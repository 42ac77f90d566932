// Package shell provides the shell executor adapter.
package shell

import (
	"context"
	"os"
	"os/exec"
	"strings"
	"sync"

	"go.trai.ch/prefab/internal/core/ports"
	"go.trai.ch/zerr"
)

// tailLimit bounds the captured output carried on a failure error.
const tailLimit = 8 * 1024

var _ ports.Executor = (*Executor)(nil)

// Executor implements ports.Executor using os/exec.
type Executor struct {
	logger ports.Logger
}

// NewExecutor creates a new Executor.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{
		logger: logger,
	}
}

// Execute runs command in dir with env layered over the process
// environment. Output streams to the logger line by line; a bounded tail
// is kept so a non-zero exit can carry diagnostics.
func (e *Executor) Execute(ctx context.Context, command []string, dir string, env map[string]string) error {
	if len(command) == 0 {
		return zerr.New("empty command")
	}

	cmd := exec.CommandContext(ctx, command[0], command[1:]...) //nolint:gosec // Command comes from the manifest
	cmd.Dir = dir
	cmd.Env = mergeEnv(os.Environ(), env)

	tail := &tailBuffer{limit: tailLimit}
	cmd.Stdout = &logWriter{logger: e.logger, tail: tail}
	cmd.Stderr = &logWriter{logger: e.logger, tail: tail, stderr: true}

	if err := cmd.Run(); err != nil {
		exitCode := -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
		return zerr.With(zerr.With(
			zerr.Wrap(err, "command failed"),
			"exit_code", exitCode),
			"output", tail.String())
	}

	return nil
}

// mergeEnv layers overrides over the base "KEY=VALUE" environment.
func mergeEnv(base []string, overrides map[string]string) []string {
	if len(overrides) == 0 {
		return base
	}

	envMap := make(map[string]string, len(base)+len(overrides))
	order := make([]string, 0, len(base)+len(overrides))
	for _, entry := range base {
		k, v, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if _, seen := envMap[k]; !seen {
			order = append(order, k)
		}
		envMap[k] = v
	}
	for k, v := range overrides {
		if _, seen := envMap[k]; !seen {
			order = append(order, k)
		}
		envMap[k] = v
	}

	result := make([]string, 0, len(order))
	for _, k := range order {
		result = append(result, k+"="+envMap[k])
	}
	return result
}

// tailBuffer keeps the last limit bytes written to it.
type tailBuffer struct {
	mu    sync.Mutex
	limit int
	data  []byte
}

func (b *tailBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data = append(b.data, p...)
	if len(b.data) > b.limit {
		b.data = b.data[len(b.data)-b.limit:]
	}
	return len(p), nil
}

func (b *tailBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return string(b.data)
}

// logWriter forwards process output to the logger one line at a time
// while feeding the shared tail buffer.
type logWriter struct {
	logger ports.Logger
	tail   *tailBuffer
	stderr bool
}

func (w *logWriter) Write(p []byte) (n int, err error) {
	_, _ = w.tail.Write(p)

	lines := strings.Split(strings.TrimSuffix(string(p), "\n"), "\n")
	for _, line := range lines {
		if w.stderr {
			w.logger.Warn(line)
		} else {
			w.logger.Info(line)
		}
	}
	return len(p), nil
}
