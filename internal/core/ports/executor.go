package ports

import "context"

// Executor runs an external command to completion.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs command in dir with env layered over the process
	// environment. Output is streamed to the logger; on non-zero exit
	// the returned error carries the exit code and a bounded output
	// tail as metadata.
	Execute(ctx context.Context, command []string, dir string, env map[string]string) error
}
