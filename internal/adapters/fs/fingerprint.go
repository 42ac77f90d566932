package fs

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/prefab/internal/core/domain"
)

// Fingerprint derives a cache key from everything that determines the
// built artifact: repository URL, revision, and the ordered patch list.
// Any change to a patch value yields a new key, so stale cache entries
// are never restored over a changed recipe.
func Fingerprint(source domain.SourceRef, patches []domain.ConfigPatch) string {
	hasher := xxhash.New()

	_, _ = hasher.WriteString(source.RepositoryURL)
	_, _ = hasher.Write([]byte{0})
	_, _ = hasher.WriteString(source.Revision)
	_, _ = hasher.Write([]byte{0})

	for _, p := range patches {
		_, _ = hasher.WriteString(p.FilePattern)
		_, _ = hasher.Write([]byte{0})
		_, _ = hasher.WriteString(p.Key)
		_, _ = hasher.Write([]byte{0})
		_, _ = hasher.WriteString(p.NewValue)
		_, _ = hasher.Write([]byte{0})
	}

	return fmt.Sprintf("%016x", hasher.Sum64())
}
