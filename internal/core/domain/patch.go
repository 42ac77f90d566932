package domain

import "strings"

// ConfigPatch is a targeted line replacement applied to text
// configuration files under the checkout tree before building.
//
// The patch is line-oriented, not structural: every line containing the
// quoted key is replaced wholesale with a newly rendered line embedding
// NewValue. A patch whose key appears in no matched file is a no-op; the
// patcher reports match counts so callers can surface that.
type ConfigPatch struct {
	// FilePattern selects the files to patch. A bare filename pattern
	// (no separator) matches basenames anywhere under the tree; a
	// pattern with separators matches checkout-relative paths.
	FilePattern string

	// Key is the config key whose line is replaced. Matched verbatim as
	// `"<key>":`.
	Key string

	// NewValue is the literal value rendered into the replacement line.
	// Quoting is the caller's responsibility: pass `"1"` for a JSON
	// string, `1` for a number.
	NewValue string
}

// Validate checks the patch fields.
func (p ConfigPatch) Validate() error {
	if p.FilePattern == "" {
		return ErrMissingPatchPattern
	}
	if p.Key == "" {
		return ErrMissingPatchKey
	}
	return nil
}

// Marker returns the substring that identifies a patchable line.
func (p ConfigPatch) Marker() string {
	return `"` + p.Key + `":`
}

// Render produces the replacement line, keeping the original line's
// indentation and trailing comma so repeated application is a no-op.
func (p ConfigPatch) Render(original string) string {
	trimmed := strings.TrimLeft(original, " \t")
	indent := original[:len(original)-len(trimmed)]

	line := indent + p.Marker() + " " + p.NewValue
	if strings.HasSuffix(strings.TrimRight(trimmed, " \t"), ",") {
		line += ","
	}
	return line
}

// PatchResult reports how many lines a single patch replaced across all
// files matching its pattern.
type PatchResult struct {
	Patch   ConfigPatch
	Files   int
	Matches int
}
