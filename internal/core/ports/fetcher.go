package ports

import (
	"context"

	"go.trai.ch/prefab/internal/core/domain"
)

// SourceFetcher materializes a pinned source revision onto local disk.
//
//go:generate go run go.uber.org/mock/mockgen -source=fetcher.go -destination=mocks/mock_fetcher.go -package=mocks
type SourceFetcher interface {
	// Checkout clones ref.RepositoryURL into ref.CheckoutPath at
	// ref.Revision, replacing any previous checkout at that path.
	Checkout(ctx context.Context, ref domain.SourceRef) error
}
