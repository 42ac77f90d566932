// Package ports defines the core interfaces for the application.
package ports

import "context"

// CacheBackend is the capability boundary to the external artifact cache.
//
// Both operations are best-effort by contract: a restore miss and a save
// failure are normal outcomes reported as booleans, never as errors.
//
//go:generate go run go.uber.org/mock/mockgen -source=cache.go -destination=mocks/mock_cache.go -package=mocks
type CacheBackend interface {
	// Restore repopulates destPath from the cache entry addressed by key.
	// Returns false on a miss.
	Restore(ctx context.Context, key, destPath string) (found bool)

	// Save stores srcPath under key. Returns false if the save did not
	// complete; the caller logs and moves on.
	Save(ctx context.Context, key, srcPath string) (ok bool)
}
