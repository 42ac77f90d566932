package ports

import "go.trai.ch/prefab/internal/core/domain"

// Patcher applies config patches to files under a checkout tree.
//
//go:generate go run go.uber.org/mock/mockgen -source=patcher.go -destination=mocks/mock_patcher.go -package=mocks
type Patcher interface {
	// Apply runs every patch, in list order, against all files matching
	// its pattern under root. A patch that matches no line is not an
	// error; its result reports zero matches.
	Apply(root string, patches []domain.ConfigPatch) ([]domain.PatchResult, error)
}
