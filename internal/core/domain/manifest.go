package domain

import (
	"slices"

	"go.trai.ch/zerr"
)

// Manifest is the loaded set of build targets.
type Manifest struct {
	targets map[string]*TargetSpec
}

// NewManifest creates an empty manifest.
func NewManifest() *Manifest {
	return &Manifest{targets: make(map[string]*TargetSpec)}
}

// AddTarget validates and registers a target spec under its name.
func (m *Manifest) AddTarget(spec *TargetSpec) error {
	if err := spec.Validate(); err != nil {
		return zerr.With(err, "target", spec.Target.Name)
	}
	m.targets[spec.Target.Name] = spec
	return nil
}

// Get returns the target spec for the given name.
func (m *Manifest) Get(name string) (*TargetSpec, bool) {
	spec, ok := m.targets[name]
	return spec, ok
}

// Names returns all target names in sorted order.
func (m *Manifest) Names() []string {
	names := make([]string, 0, len(m.targets))
	for name := range m.targets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Select resolves the requested target names to specs and rejects
// selections in which two targets share an artifact path, since the
// orchestrator gives no mutual exclusion on a shared path.
func (m *Manifest) Select(names []string) ([]*TargetSpec, error) {
	if len(names) == 0 {
		return nil, ErrNoTargetsSpecified
	}

	seen := make(map[string]string, len(names))
	specs := make([]*TargetSpec, 0, len(names))
	for _, name := range names {
		spec, ok := m.targets[name]
		if !ok {
			return nil, zerr.With(ErrTargetNotFound, "target", name)
		}
		if prev, dup := seen[spec.Target.ArtifactPath]; dup {
			return nil, zerr.With(zerr.With(ErrDuplicateArtifactPath,
				"path", spec.Target.ArtifactPath), "targets", prev+","+name)
		}
		seen[spec.Target.ArtifactPath] = name
		specs = append(specs, spec)
	}
	return specs, nil
}
