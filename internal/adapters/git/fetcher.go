// Package git implements the source fetcher using go-git.
package git

import (
	"context"
	"os"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"go.trai.ch/prefab/internal/core/domain"
	"go.trai.ch/prefab/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.SourceFetcher = (*Fetcher)(nil)

// Fetcher materializes source checkouts with go-git.
type Fetcher struct {
	logger ports.Logger
}

// NewFetcher creates a new Fetcher.
func NewFetcher(logger ports.Logger) *Fetcher {
	return &Fetcher{logger: logger}
}

// Checkout clones ref.RepositoryURL into ref.CheckoutPath and checks out
// ref.Revision. Any previous checkout at that path is removed first so
// the tree always reflects exactly the pinned revision, with no leftover
// patched files from an earlier run.
func (f *Fetcher) Checkout(ctx context.Context, ref domain.SourceRef) error {
	if err := os.RemoveAll(ref.CheckoutPath); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to clean checkout path"), "path", ref.CheckoutPath)
	}

	f.logger.Info("cloning " + ref.RepositoryURL + " at " + ref.Revision)

	repo, err := gogit.PlainCloneContext(ctx, ref.CheckoutPath, false, &gogit.CloneOptions{
		URL: ref.RepositoryURL,
	})
	if err != nil {
		return zerr.With(zerr.With(
			zerr.With(domain.ErrCheckoutFailed, "cause", err.Error()),
			"url", ref.RepositoryURL),
			"path", ref.CheckoutPath)
	}

	hash, err := repo.ResolveRevision(plumbing.Revision(ref.Revision))
	if err != nil {
		return zerr.With(zerr.With(
			domain.ErrRevisionNotFound,
			"revision", ref.Revision),
			"url", ref.RepositoryURL)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return zerr.Wrap(err, "failed to open worktree")
	}

	if err := wt.Checkout(&gogit.CheckoutOptions{Hash: *hash}); err != nil {
		return zerr.With(zerr.With(
			zerr.With(domain.ErrCheckoutFailed, "cause", err.Error()),
			"revision", ref.Revision),
			"hash", hash.String())
	}

	return nil
}
