// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/prefab/internal/adapters/cachecli"
	_ "go.trai.ch/prefab/internal/adapters/config"
	_ "go.trai.ch/prefab/internal/adapters/fs"
	_ "go.trai.ch/prefab/internal/adapters/git"
	_ "go.trai.ch/prefab/internal/adapters/logger"
	_ "go.trai.ch/prefab/internal/adapters/patch"
	_ "go.trai.ch/prefab/internal/adapters/shell"
	_ "go.trai.ch/prefab/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "go.trai.ch/prefab/internal/app"
	_ "go.trai.ch/prefab/internal/engine/orchestrator"
)
