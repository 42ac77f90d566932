// Package patch implements line-oriented config patching of checkout trees.
package patch

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/prefab/internal/core/domain"
	"go.trai.ch/prefab/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Patcher = (*Patcher)(nil)

// Patcher rewrites config lines in files under a checkout tree.
//
// Matching is line-oriented: every line containing `"<key>":` is replaced
// wholesale with a rendered line embedding the new value. The file is
// never parsed structurally, so patching works on files that are
// otherwise malformed, but a key that is absent verbatim is silently left
// alone. Applying the same patch set twice yields identical content.
// Zero-match patches are surfaced by the orchestrator from the returned
// results.
type Patcher struct{}

// NewPatcher creates a new Patcher.
func NewPatcher() *Patcher {
	return &Patcher{}
}

// Apply runs every patch in list order against all files matching its
// pattern under root. Files are visited in sorted path order so repeated
// runs behave identically.
func (p *Patcher) Apply(root string, patches []domain.ConfigPatch) ([]domain.PatchResult, error) {
	results := make([]domain.PatchResult, 0, len(patches))

	for _, cp := range patches {
		files, err := matchFiles(root, cp.FilePattern)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to match patch pattern"), "pattern", cp.FilePattern)
		}

		result := domain.PatchResult{Patch: cp, Files: len(files)}
		for _, file := range files {
			n, err := patchFile(file, cp)
			if err != nil {
				return nil, err
			}
			result.Matches += n
		}
		results = append(results, result)
	}

	return results, nil
}

// matchFiles returns the sorted files under root matching pattern. A
// pattern without a separator matches basenames anywhere in the tree; a
// pattern with separators matches root-relative paths.
func matchFiles(root, pattern string) ([]string, error) {
	baseOnly := !strings.ContainsRune(pattern, '/')

	var files []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// Checkout metadata is never a patch target.
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}

		var matched bool
		if baseOnly {
			matched, err = path.Match(pattern, d.Name())
		} else {
			rel, relErr := filepath.Rel(root, p)
			if relErr != nil {
				return relErr
			}
			matched, err = path.Match(pattern, filepath.ToSlash(rel))
		}
		if err != nil {
			return err
		}
		if matched {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.Sort(files)
	return files, nil
}

// patchFile replaces every line containing the patch marker and reports
// how many lines changed hands. The file is rewritten only when at least
// one line matched.
func patchFile(file string, cp domain.ConfigPatch) (int, error) {
	data, err := os.ReadFile(file) //nolint:gosec // Path is under the checkout tree
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to read patch target"), "path", file)
	}

	content := string(data)
	trailingNewline := strings.HasSuffix(content, "\n")
	lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")

	matches := 0
	for i, line := range lines {
		if !strings.Contains(line, cp.Marker()) {
			continue
		}
		lines[i] = cp.Render(line)
		matches++
	}

	if matches == 0 {
		return 0, nil
	}

	out := strings.Join(lines, "\n")
	if trailingNewline {
		out += "\n"
	}

	info, err := os.Stat(file)
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to stat patch target"), "path", file)
	}
	if err := os.WriteFile(file, []byte(out), info.Mode().Perm()); err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to write patched file"), "path", file)
	}

	return matches, nil
}
